// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package core

import (
	"github.com/cznic/mathutil"

	"github.com/cznic/segfree/blk"
	"github.com/cznic/segfree/list"
)

// grow extends the heap to satisfy request bytes, merging with a
// trailing free block when one exists. request is already 8-aligned.
// Returns Null if the Provider refuses to grow.
func (a *Allocator) grow(request uint32) uint32 {
	buf := a.p.Bytes()
	tail := uint32(len(buf))

	if blk.IsPrevAllocated(buf, tail) {
		extend := uint32(mathutil.MaxInt64(int64(request), int64(a.opts.ExtendChunk)))
		if _, err := a.p.Extend(extend); err != nil {
			return Null
		}
		buf = a.p.Bytes()

		blk.SetAlloc(buf, tail, false)
		blk.SetSize(buf, tail, extend)

		newTail := tail + extend
		blk.SetHeader(buf, newTail, 0)
		blk.SetAlloc(buf, newTail, true)
		blk.SetPrevAlloc(buf, newTail, false)

		return a.place(tail, request, extend)
	}

	t := blk.PhysPrev(buf, tail)
	s := blk.Size(buf, t)
	extend := uint32(mathutil.MaxInt64(int64(request-s), int64(a.opts.ExtendChunk)))
	if _, err := a.p.Extend(extend); err != nil {
		return Null
	}
	buf = a.p.Bytes()

	list.Unlink(buf, t)
	newSize := s + extend
	blk.SetSize(buf, t, newSize)

	newTail := t + newSize
	blk.SetHeader(buf, newTail, 0)
	blk.SetAlloc(buf, newTail, true)
	blk.SetPrevAlloc(buf, newTail, false)

	return a.place(t, request, newSize)
}
