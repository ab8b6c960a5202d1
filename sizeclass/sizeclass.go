// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sizeclass partitions block sizes into the 16 segregated
// free-list buckets and locates each bucket's sentinel in the heap's
// prologue. It plays the role lldb's FLT (free-list table) plays for
// an atom-indexed Filer, specialized to a fixed leading-zero-count
// partition instead of a pluggable bucket scheme.
package sizeclass

import "math/bits"

// First and Last are the class index bounds: classes First..Last are
// real, backed by a sentinel in the prologue; any computed index below
// First aliases class First (the catch-all "biggest blocks" bucket).
const (
	First = 12
	Last  = 27
	Count = Last - First + 1

	// PrologueSize is the number of bytes the sentinels occupy at the
	// start of the heap (Count slots * 8 bytes/slot).
	PrologueSize = Count * 8

	// GapSize is the zero-filled gap between the last sentinel and the
	// first real block's payload.
	GapSize = 8

	// FirstPayloadOffset is byte offset 136: PrologueSize + GapSize.
	FirstPayloadOffset = PrologueSize + GapSize
)

var minSize [Last + 1]uint32
var maxSize [Last + 1]uint32

func init() {
	for i := First; i <= Last; i++ {
		minSize[i] = 1 << uint(31-i)
		maxSize[i] = 1 << uint(32-i)
	}
	maxSize[First] = ^uint32(0)
}

// MinSize returns the minimum size (inclusive) a block must have to
// belong to class i.
func MinSize(i int) uint32 { return minSize[clamp(i)] }

// MaxSize returns the maximum size (exclusive, except for class First
// which is unbounded) a block may have to belong to class i.
func MaxSize(i int) uint32 { return maxSize[clamp(i)] }

func clamp(i int) int {
	if i < First {
		return First
	}
	if i > Last {
		return Last
	}
	return i
}

// Of returns the size class an 8-aligned size n belongs to. Classes
// are keyed by the number of leading zero bits of n as a 32-bit value;
// since class i covers [2^(31-i), 2^(32-i)), and leading-zero-count is
// monotonically decreasing as n grows, *lower* class indices hold
// *larger* blocks - class First is the catch-all for everything
// >= 2^20.
func Of(n uint32) int { return clamp(bits.LeadingZeros32(n)) }

// SentinelOffset returns the byte offset, inside the heap, of class i's
// sentinel. Classes are laid out from Last down to First across bytes
// 0..120 of the prologue (class Last at offset 0, class First at
// offset PrologueSize-8).
func SentinelOffset(i int) uint32 { return uint32(Last-clamp(i)) * 8 }
