// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package heap implements the growable-region provider the allocator
// core sits on top of: an sbrk-style collaborator exposing
// heap_lo/heap_hi/heap_extend, concretely. It plays the role
// lldb.Filer plays for lldb.Allocator, simplified from an arbitrary
// []byte-like file abstraction down to what the core actually needs:
// one contiguous, monotonically growable region and raw byte access
// to it.
package heap

import "fmt"

// Provider is the memory region collaborator the allocator core is
// built against. It is never safe for concurrent use, mirroring the
// allocator itself.
type Provider interface {
	// Lo is the heap's fixed base, constant for the provider's
	// lifetime. Every link and payload address the core hands out is
	// relative to Lo.
	Lo() uint32

	// Hi is the offset of the current last valid byte of the heap.
	// It grows only via Extend.
	Hi() uint32

	// Extend grows the heap by n bytes, zero-filled, and returns the
	// offset at which the new region begins (the old Hi()+1, or 0 when
	// the heap was empty). It
	// fails, leaving the heap unchanged, if the provider cannot or
	// will not grow further.
	Extend(n uint32) (old uint32, err error)

	// Bytes exposes the raw backing storage, length Hi()+1 (empty before
	// the first Extend, when Hi() reports 0). Only the
	// allocator core reads or writes through it.
	Bytes() []byte
}

// ErrExhausted is returned by Extend when the provider refuses to grow
// the heap further.
type ErrExhausted struct {
	Requested uint32
	Reason    string
}

func (e *ErrExhausted) Error() string {
	return fmt.Sprintf("heap: cannot extend by %d bytes: %s", e.Requested, e.Reason)
}
