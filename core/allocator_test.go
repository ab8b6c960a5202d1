// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package core

import (
	"testing"

	"github.com/cznic/segfree/heap"
)

func newTestAllocator(t *testing.T) (*Allocator, heap.Provider) {
	t.Helper()
	p := heap.NewMemProvider(0)
	a, err := Init(p, Options{})
	if err != nil {
		t.Fatal(err)
	}
	return a, p
}

func TestAlignTable(t *testing.T) {
	a, _ := newTestAllocator(t)
	cases := []struct{ in, out uint32 }{
		{1, 16},
		{8, 16},
		{12, 16},
		{16, 24},
		{20, 24},
		{448, 520},
	}
	for _, c := range cases {
		if g := a.align(c.in); g != c.out {
			t.Fatalf("align(%d): got %d, want %d", c.in, g, c.out)
		}
	}
}

func TestAlign448BumpDisabled(t *testing.T) {
	p := heap.NewMemProvider(0)
	f := false
	a, err := Init(p, Options{Align448Bump: &f})
	if err != nil {
		t.Fatal(err)
	}
	if g, e := a.align(448), uint32(456); g != e {
		t.Fatalf("align(448) with bump disabled: got %d, want %d", g, e)
	}
}

func TestAllocateZeroIsNull(t *testing.T) {
	a, _ := newTestAllocator(t)
	if p := a.Allocate(0); p != Null {
		t.Fatalf("Allocate(0) = %d, want Null", p)
	}
}

func TestFreeNullIsNoop(t *testing.T) {
	a, _ := newTestAllocator(t)
	a.Free(Null) // must not panic
}

func TestSmallAllocFree(t *testing.T) {
	a, _ := newTestAllocator(t)
	p := a.Allocate(1)
	if p == Null {
		t.Fatal("Allocate(1) returned Null")
	}
	st := a.Stats()
	if st.AllocBlocks != 1 {
		t.Fatalf("alloc blocks: got %d, want 1", st.AllocBlocks)
	}
	a.Free(p)
	st = a.Stats()
	if st.AllocBlocks != 0 || st.FreeBlocks != 1 {
		t.Fatalf("after free: alloc=%d free=%d, want 0,1", st.AllocBlocks, st.FreeBlocks)
	}
}

func TestZeroedAllocateIsZero(t *testing.T) {
	a, p := newTestAllocator(t)
	ptr := a.ZeroedAllocate(4, 8)
	if ptr == Null {
		t.Fatal("ZeroedAllocate returned Null")
	}
	buf := p.Bytes()
	for i := uint32(0); i < 32; i++ {
		if buf[ptr+i] != 0 {
			t.Fatalf("byte %d not zero", i)
		}
	}
}

func TestReallocateNullIsAllocate(t *testing.T) {
	a, _ := newTestAllocator(t)
	p := a.Reallocate(Null, 32)
	if p == Null {
		t.Fatal("Reallocate(Null, 32) returned Null")
	}
}

func TestReallocateZeroSizeFrees(t *testing.T) {
	a, _ := newTestAllocator(t)
	p := a.Allocate(32)
	if r := a.Reallocate(p, 0); r != Null {
		t.Fatalf("Reallocate(p, 0) = %d, want Null", r)
	}
	if st := a.Stats(); st.AllocBlocks != 0 {
		t.Fatalf("alloc blocks after Reallocate(p,0): got %d, want 0", st.AllocBlocks)
	}
}

func TestGrowPastInitialChunk(t *testing.T) {
	a, _ := newTestAllocator(t)
	var ptrs []uint32
	for i := 0; i < 400; i++ {
		p := a.Allocate(64)
		if p == Null {
			t.Fatalf("Allocate failed at i=%d", i)
		}
		ptrs = append(ptrs, p)
	}
	for _, p := range ptrs {
		a.Free(p)
	}
	st := a.Stats()
	if st.AllocBlocks != 0 {
		t.Fatalf("alloc blocks remain: %d", st.AllocBlocks)
	}
}

func TestInitRejectsTooSmallExtendChunk(t *testing.T) {
	p := heap.NewMemProvider(0)
	_, err := Init(p, Options{ExtendChunk: 8})
	if err == nil {
		t.Fatal("expected Init to reject an ExtendChunk too small to fit the prologue and one block")
	}
	if _, ok := err.(*ErrInvalid); !ok {
		t.Fatalf("expected *ErrInvalid, got %T: %v", err, err)
	}
}

func TestProviderExhaustionSurfacesNull(t *testing.T) {
	p := heap.NewMemProvider(8192)
	a, err := Init(p, Options{})
	if err != nil {
		t.Fatal(err)
	}
	var last uint32 = 1
	for last != Null {
		last = a.Allocate(4096)
	}
}
