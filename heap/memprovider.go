// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

import "github.com/cznic/mathutil"

// base is the synthetic heap_lo() every MemProvider reports, mirroring
// original_source/mm.c's constant heap_base_ptr. It is 0: every offset
// the allocator hands out is already relative to it, so it also
// doubles as a raw index into the backing []byte.
const base = 0

// MemProvider is an in-memory Provider: the heap is a single []byte,
// grown geometrically. Grounded on lldb.MemFiler's growth strategy
// (doubling capacity, tracked by a running size kept in sync via
// mathutil.MaxInt64), simplified from MemFiler's page table to one
// contiguous slice since the allocator needs one contiguous region.
type MemProvider struct {
	buf      []byte
	size     uint32
	maxBytes uint32 // 0 means unbounded
}

var _ Provider = (*MemProvider)(nil)

// NewMemProvider returns an empty MemProvider. maxBytes, if nonzero,
// caps the heap's total size so callers can force a deterministic
// Extend failure.
func NewMemProvider(maxBytes uint32) *MemProvider {
	return &MemProvider{maxBytes: maxBytes}
}

// Lo implements Provider.
func (p *MemProvider) Lo() uint32 { return base }

// Hi implements Provider.
func (p *MemProvider) Hi() uint32 {
	if p.size == 0 {
		return base
	}
	return base + p.size - 1
}

// Bytes implements Provider.
func (p *MemProvider) Bytes() []byte { return p.buf[:p.size] }

// Extend implements Provider.
func (p *MemProvider) Extend(n uint32) (old uint32, err error) {
	if n == 0 {
		return p.size, nil
	}

	newSize := p.size + n
	if newSize < p.size { // overflow of the 32-bit size space
		return 0, &ErrExhausted{Requested: n, Reason: "size would overflow uint32"}
	}
	if p.maxBytes != 0 && newSize > p.maxBytes {
		return 0, &ErrExhausted{Requested: n, Reason: "exceeds configured maxBytes"}
	}

	if uint32(len(p.buf)) < newSize {
		cap := uint32(mathutil.MaxInt64(int64(newSize), int64(2*len(p.buf))))
		grown := make([]byte, cap)
		copy(grown, p.buf[:p.size])
		p.buf = grown
	}
	old = p.size
	p.size = newSize
	return old, nil
}
