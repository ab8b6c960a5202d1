// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

import "os"

// FileProvider is a Provider whose region can be snapshotted to an
// os.File, adapted from lldb.SimpleFileFiler/lldb.OSFiler: like those,
// it does not implement any transactional integrity (no WAL, no
// rollback) - it is meant for reproducing a fixed trace against a
// provider whose growth can be capped deterministically, and for
// dumping a heap image for offline inspection, not for durability.
//
// Dropped relative to SimpleFileFiler: PunchHole. Releasing pages back
// to the OS is out of scope here.
type FileProvider struct {
	mem  MemProvider
	file *os.File
}

var _ Provider = (*FileProvider)(nil)

// NewFileProvider returns a FileProvider that mirrors its heap into f
// on every Sync call. maxBytes has the same meaning as in
// NewMemProvider.
func NewFileProvider(f *os.File, maxBytes uint32) *FileProvider {
	return &FileProvider{mem: MemProvider{maxBytes: maxBytes}, file: f}
}

// Lo implements Provider.
func (p *FileProvider) Lo() uint32 { return p.mem.Lo() }

// Hi implements Provider.
func (p *FileProvider) Hi() uint32 { return p.mem.Hi() }

// Bytes implements Provider.
func (p *FileProvider) Bytes() []byte { return p.mem.Bytes() }

// Extend implements Provider.
func (p *FileProvider) Extend(n uint32) (old uint32, err error) { return p.mem.Extend(n) }

// Sync writes the current heap image to the backing file, truncating
// it to match, mirroring OSFiler.Sync's fsync passthrough.
func (p *FileProvider) Sync() error {
	b := p.Bytes()
	if _, err := p.file.WriteAt(b, 0); err != nil {
		return err
	}
	if err := p.file.Truncate(int64(len(b))); err != nil {
		return err
	}
	return p.file.Sync()
}

// Close closes the backing file.
func (p *FileProvider) Close() error { return p.file.Close() }
