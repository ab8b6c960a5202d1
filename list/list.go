// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package list implements the circular doubly linked list splice
// operations shared by every size class: insertion next to a sentinel
// and unlinking a node given only its own link words.
package list

import "github.com/cznic/segfree/blk"

// InitSentinel self-links a sentinel node so that an empty list's head
// points back at itself.
func InitSentinel(buf []byte, sentinel uint32) {
	blk.SetPrevLink(buf, sentinel, sentinel)
	blk.SetNextLink(buf, sentinel, sentinel)
}

// Insert splices p into the list headed by sentinel, next to the
// sentinel (LIFO at that end: the most recently freed block of a
// class is the first one Search tries).
func Insert(buf []byte, sentinel, p uint32) {
	old := blk.NextLink(buf, sentinel)
	blk.SetPrevLink(buf, p, sentinel)
	blk.SetNextLink(buf, p, old)
	blk.SetPrevLink(buf, old, p)
	blk.SetNextLink(buf, sentinel, p)
}

// Unlink splices p out of whatever list it currently belongs to, using
// only its own link words: the caller does not need to know p's size
// class.
func Unlink(buf []byte, p uint32) {
	prev := blk.PrevLink(buf, p)
	next := blk.NextLink(buf, p)
	blk.SetNextLink(buf, prev, next)
	blk.SetPrevLink(buf, next, prev)
}
