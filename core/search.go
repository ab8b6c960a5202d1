// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package core

import (
	"github.com/cznic/segfree/blk"
	"github.com/cznic/segfree/list"
	"github.com/cznic/segfree/sizeclass"
)

// findFit performs first-fit search within the starting class,
// escalating toward class First (the largest-blocks class) on a miss.
// It returns Null if no class yields a fit.
func (a *Allocator) findFit(n uint32) uint32 {
	buf := a.p.Bytes()
	for i := sizeclass.Of(n); i >= sizeclass.First; i-- {
		sentinel := sizeclass.SentinelOffset(i)
		for q := blk.NextLink(buf, sentinel); q != sentinel; q = blk.NextLink(buf, q) {
			if sz := blk.Size(buf, q); sz >= n {
				list.Unlink(buf, q)
				return a.place(q, n, sz)
			}
		}
	}
	return Null
}
