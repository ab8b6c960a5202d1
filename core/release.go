// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package core

import (
	"github.com/cznic/segfree/blk"
	"github.com/cznic/segfree/list"
	"github.com/cznic/segfree/sizeclass"
)

// Free releases p back to its size class, immediately coalescing with
// a physically adjacent free predecessor and/or successor (four
// cases). A Null pointer is a silent no-op.
func (a *Allocator) Free(p uint32) {
	if p == Null {
		return
	}

	buf := a.p.Bytes()
	prevFree := !blk.IsPrevAllocated(buf, p)
	next := blk.PhysNext(buf, p)
	nextFree := !blk.IsAllocated(buf, next)

	switch {
	case !prevFree && !nextFree:
		size := blk.Size(buf, p)
		blk.SetAlloc(buf, p, false)
		blk.SetSize(buf, p, size)
		blk.SetPrevAlloc(buf, next, false)
		insert(buf, p, size)

	case prevFree && !nextFree:
		q := blk.PhysPrev(buf, p)
		list.Unlink(buf, q)
		size := blk.Size(buf, q) + blk.Size(buf, p)
		blk.SetSize(buf, q, size)
		blk.SetPrevAlloc(buf, next, false)
		insert(buf, q, size)

	case !prevFree && nextFree:
		r := next
		list.Unlink(buf, r)
		size := blk.Size(buf, p) + blk.Size(buf, r)
		blk.SetAlloc(buf, p, false)
		blk.SetSize(buf, p, size)
		insert(buf, p, size)

	default: // prevFree && nextFree
		q := blk.PhysPrev(buf, p)
		r := next
		list.Unlink(buf, q)
		list.Unlink(buf, r)
		size := blk.Size(buf, q) + blk.Size(buf, p) + blk.Size(buf, r)
		blk.SetSize(buf, q, size)
		insert(buf, q, size)
	}
}

func insert(buf []byte, p, size uint32) {
	list.Insert(buf, sizeclass.SentinelOffset(sizeclass.Of(size)), p)
}
