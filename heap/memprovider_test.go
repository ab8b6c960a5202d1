// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

import "testing"

func TestExtendGrowsAndZeroes(t *testing.T) {
	p := NewMemProvider(0)
	old, err := p.Extend(4096)
	if err != nil {
		t.Fatal(err)
	}
	if g, e := old, uint32(0); g != e {
		t.Fatalf("old: got %d, want %d", g, e)
	}
	if g, e := p.Hi(), uint32(4095); g != e {
		t.Fatalf("hi: got %d, want %d", g, e)
	}
	for i, b := range p.Bytes() {
		if b != 0 {
			t.Fatalf("byte %d not zero", i)
		}
	}

	old2, err := p.Extend(128)
	if err != nil {
		t.Fatal(err)
	}
	if g, e := old2, uint32(4096); g != e {
		t.Fatalf("old2: got %d, want %d", g, e)
	}
	if g, e := p.Hi(), uint32(4223); g != e {
		t.Fatalf("hi2: got %d, want %d", g, e)
	}
}

func TestExtendRespectsMaxBytes(t *testing.T) {
	p := NewMemProvider(4096)
	if _, err := p.Extend(4096); err != nil {
		t.Fatal(err)
	}
	if _, err := p.Extend(1); err == nil {
		t.Fatal("expected Extend to fail past maxBytes")
	}
	if g, e := p.Hi(), uint32(4095); g != e {
		t.Fatalf("heap must be unchanged after a failed Extend: got hi %d, want %d", g, e)
	}
}

func TestBytesReflectsWrites(t *testing.T) {
	p := NewMemProvider(0)
	if _, err := p.Extend(16); err != nil {
		t.Fatal(err)
	}
	p.Bytes()[0] = 0xAB
	if g, e := p.Bytes()[0], byte(0xAB); g != e {
		t.Fatalf("got %x, want %x", g, e)
	}
}
