// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileProviderSync(t *testing.T) {
	dir := t.TempDir()
	f, err := os.Create(filepath.Join(dir, "heap.img"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	p := NewFileProvider(f, 0)
	if _, err := p.Extend(64); err != nil {
		t.Fatal(err)
	}
	p.Bytes()[10] = 0x7A

	if err := p.Sync(); err != nil {
		t.Fatal(err)
	}

	got, err := os.ReadFile(f.Name())
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 64 || got[10] != 0x7A {
		t.Fatalf("snapshot mismatch: len=%d b[10]=%x", len(got), got[10])
	}
}
