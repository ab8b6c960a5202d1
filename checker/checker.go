// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package checker implements a debug-only heap verifier, grounded on
// lldb.Allocator.Verify's shape: a caller-supplied callback decides
// whether to keep scanning after each problem found, and a non-nil
// error return means the scan itself could not proceed (not merely
// that it found damage).
package checker

import (
	"fmt"
	"sort"

	"github.com/cznic/sortutil"

	"github.com/cznic/segfree/blk"
	"github.com/cznic/segfree/core"
	"github.com/cznic/segfree/sizeclass"
)

// nolog is the default used when CheckHeap is called with a nil log,
// mirroring lldb's nolog: stop at the first problem found.
var nolog = func(error) bool { return false }

// Stats is a non-authoritative byte/block accounting snapshot filled
// in by CheckHeap as it walks the heap, mirroring lldb.AllocStats.
// Valid only when CheckHeap returns nil.
type Stats struct {
	TotalBlocks int64
	AllocBlocks int64
	AllocBytes  int64
	FreeBlocks  int64
	FreeBytes   int64
}

// Problem identifies which invariant a reported error violated.
type Problem int

const (
	_ Problem = iota
	// ProblemPrevAllocMismatch: a block's prev_allocated bit disagrees
	// with its physical predecessor's allocated bit.
	ProblemPrevAllocMismatch
	// ProblemAdjacentFree: two physically adjacent blocks are both
	// free - Free should have coalesced them.
	ProblemAdjacentFree
	// ProblemFooterMismatch: a free block's footer disagrees with its
	// header.
	ProblemFooterMismatch
	// ProblemWrongClass: a free block sits in a list whose size range
	// does not contain the block's actual size.
	ProblemWrongClass
	// ProblemNotInList: a free block was seen on the physical heap
	// walk but never visited while walking any segregated list.
	ProblemNotInList
	// ProblemDuplicateInLists: the same free block offset was visited
	// twice across the segregated lists (a cycle, or a block linked
	// into more than one class).
	ProblemDuplicateInLists
	// ProblemOrphanInList: a segregated list names a block the
	// physical heap walk never reached.
	ProblemOrphanInList
	// ProblemBadSentinelLink: a sentinel's own prev/next does not
	// round-trip to itself through its neighbour.
	ProblemBadSentinelLink
	// ProblemTrailingSentinelSize: the trailing sentinel's size field
	// is non-zero.
	ProblemTrailingSentinelSize
)

// Error reports one detected structural problem.
type Error struct {
	Problem Problem
	Off     uint32
	Detail  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("checker: block 0x%x: %s", e.Off, e.Detail)
}

// CheckHeap walks a's live structure - the physical block chain and
// every segregated free list - cross-checking one against the other,
// and reports any disagreement to log. Passing a nil log works like a
// log always returning false: the first problem found stops the scan.
//
// CheckHeap returns a non-nil error only when log returned false for a
// reported problem; that problem is the returned error. Problems reported to log but
// not fatal to the scan do not, by themselves, produce an error
// return; callers that want "any damage is an error" should have log
// return false on the first call.
func CheckHeap(a *core.Allocator, buf []byte, log func(error) bool) (Stats, error) {
	if log == nil {
		log = nolog
	}

	var st Stats
	fromWalk := make(map[uint32]uint32) // offset -> size, free blocks only
	tail := uint32(len(buf))

	prevAllocated := true
	for p := uint32(sizeclass.FirstPayloadOffset); p < tail; {
		size := blk.Size(buf, p)
		st.TotalBlocks++

		if blk.IsPrevAllocated(buf, p) != prevAllocated {
			err := &Error{ProblemPrevAllocMismatch, p, fmt.Sprintf(
				"prev_allocated=%v but predecessor allocated=%v", blk.IsPrevAllocated(buf, p), prevAllocated)}
			if !log(err) {
				return st, err
			}
		}

		allocated := blk.IsAllocated(buf, p)
		if allocated {
			st.AllocBlocks++
			st.AllocBytes += int64(size)
		} else {
			st.FreeBlocks++
			st.FreeBytes += int64(size)

			if !prevAllocated {
				err := &Error{ProblemAdjacentFree, p, "free block follows another free block"}
				if !log(err) {
					return st, err
				}
			}

			if f := blk.Header(buf, p+size-blk.WordSize); size != f {
				err := &Error{ProblemFooterMismatch, p, fmt.Sprintf("header size 0x%08x != footer 0x%08x", size, f)}
				if !log(err) {
					return st, err
				}
			}

			fromWalk[p] = size
		}

		prevAllocated = allocated
		p += size
	}

	if p := tail; blk.Size(buf, p) != 0 {
		err := &Error{ProblemTrailingSentinelSize, p, "trailing sentinel has nonzero size"}
		if !log(err) {
			return st, err
		}
	}

	fromLists := make(map[uint32]bool, len(fromWalk))
	for i := sizeclass.First; i <= sizeclass.Last; i++ {
		sentinel := sizeclass.SentinelOffset(i)
		if blk.NextLink(buf, blk.PrevLink(buf, sentinel)) != sentinel {
			err := &Error{ProblemBadSentinelLink, sentinel, "sentinel.prev.next != sentinel"}
			if !log(err) {
				return st, err
			}
		}

		for q := blk.NextLink(buf, sentinel); q != sentinel; q = blk.NextLink(buf, q) {
			if fromLists[q] {
				err := &Error{ProblemDuplicateInLists, q, "block visited twice across segregated lists"}
				if !log(err) {
					return st, err
				}
				break
			}
			fromLists[q] = true

			size, onHeap := fromWalk[q]
			if !onHeap {
				err := &Error{ProblemOrphanInList, q, "list entry not found by the physical heap walk"}
				if !log(err) {
					return st, err
				}
				continue
			}
			if size < sizeclass.MinSize(i) || size >= sizeclass.MaxSize(i) {
				err := &Error{ProblemWrongClass, q, fmt.Sprintf("size %d does not belong in class %d", size, i)}
				if !log(err) {
					return st, err
				}
			}
		}
	}

	missing := make(sortutil.Int64Slice, 0, len(fromWalk))
	for p := range fromWalk {
		if !fromLists[p] {
			missing = append(missing, int64(p))
		}
	}
	sort.Sort(missing)
	for _, p := range missing {
		err := &Error{ProblemNotInList, uint32(p), "free block on the heap but absent from its segregated list"}
		if !log(err) {
			return st, err
		}
	}

	return st, nil
}
