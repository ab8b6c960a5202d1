// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package blk

import "testing"

func newBuf(n uint32) []byte { return make([]byte, n) }

func TestHeaderRoundTrip(t *testing.T) {
	buf := newBuf(64)
	p := uint32(16)
	SetHeader(buf, p, 32)
	if g, e := Header(buf, p), uint32(32); g != e {
		t.Fatalf("got %d, want %d", g, e)
	}
	if g, e := Size(buf, p), uint32(32); g != e {
		t.Fatalf("got %d, want %d", g, e)
	}
	if IsAllocated(buf, p) || IsPrevAllocated(buf, p) {
		t.Fatal("unexpected flags")
	}
}

func TestFlags(t *testing.T) {
	buf := newBuf(64)
	p := uint32(16)
	SetHeader(buf, p, 32)

	SetAlloc(buf, p, true)
	if !IsAllocated(buf, p) {
		t.Fatal("alloc flag not set")
	}
	if g, e := Size(buf, p), uint32(32); g != e {
		t.Fatalf("size clobbered: got %d, want %d", g, e)
	}

	SetPrevAlloc(buf, p, true)
	if !IsAllocated(buf, p) || !IsPrevAllocated(buf, p) {
		t.Fatal("flags not independent")
	}

	SetAlloc(buf, p, false)
	if IsAllocated(buf, p) {
		t.Fatal("alloc flag not cleared")
	}
	if !IsPrevAllocated(buf, p) {
		t.Fatal("prev-alloc flag clobbered by SetAlloc")
	}
}

func TestSetSizeWritesFooter(t *testing.T) {
	buf := newBuf(64)
	p := uint32(16)
	SetHeader(buf, p, 0)
	SetPrevAlloc(buf, p, true)
	SetSize(buf, p, 32)

	if g, e := Size(buf, p), uint32(32); g != e {
		t.Fatalf("got %d, want %d", g, e)
	}
	if g, e := getWord(buf, p+32-2*WordSize), uint32(32); g != e {
		t.Fatalf("footer: got %d, want %d", g, e)
	}
	if !IsPrevAllocated(buf, p) {
		t.Fatal("SetSize must preserve flags")
	}
}

func TestPhysNeighbours(t *testing.T) {
	buf := newBuf(128)
	p := uint32(16)
	SetHeader(buf, p, 0)
	SetSize(buf, p, 32) // free block [16, 48)

	next := PhysNext(buf, p)
	if g, e := next, uint32(48); g != e {
		t.Fatalf("phys next: got %d, want %d", g, e)
	}

	SetHeader(buf, next, 0)
	SetPrevAlloc(buf, next, false)
	SetSize(buf, next, 16)

	if g, e := PhysPrev(buf, next), p; g != e {
		t.Fatalf("phys prev: got %d, want %d", g, e)
	}
}

func TestLinks(t *testing.T) {
	buf := newBuf(64)
	p := uint32(16)
	SetPrevLink(buf, p, 100)
	SetNextLink(buf, p, 200)
	if g, e := PrevLink(buf, p), uint32(100); g != e {
		t.Fatalf("prev link: got %d, want %d", g, e)
	}
	if g, e := NextLink(buf, p), uint32(200); g != e {
		t.Fatalf("next link: got %d, want %d", g, e)
	}
}
