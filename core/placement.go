// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package core

import (
	"github.com/cznic/segfree/blk"
	"github.com/cznic/segfree/list"
	"github.com/cznic/segfree/sizeclass"
)

// place carves request bytes out of the free block p of blockSize
// bytes, assumed already unlinked from its size class. When the
// leftover would be smaller than the minimum block size, the whole
// block is handed over instead of splitting it.
func (a *Allocator) place(p, request, blockSize uint32) uint32 {
	buf := a.p.Bytes()
	remain := blockSize - request

	if remain < blk.MinSize {
		blk.SetAlloc(buf, p, true)
		blk.SetPrevAlloc(buf, blk.PhysNext(buf, p), true)
		return p
	}

	blk.SetSizeHeaderOnly(buf, p, request)
	blk.SetAlloc(buf, p, true)

	tail := p + request
	blk.SetHeader(buf, tail, 0)
	blk.SetAlloc(buf, tail, false)
	blk.SetPrevAlloc(buf, tail, true)
	blk.SetSize(buf, tail, remain)

	list.Insert(buf, sizeclass.SentinelOffset(sizeclass.Of(remain)), tail)
	return p
}
