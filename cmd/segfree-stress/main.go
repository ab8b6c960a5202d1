// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command segfree-stress drives a random allocate/free/realloc
// workload against the allocator and periodically runs the structural
// checker over it, grounded on dbm/crash's random-workload-plus-verify
// shape and lldb/lab/1's flag-driven soak loop.
package main

import (
	"flag"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/cznic/segfree/checker"
	"github.com/cznic/segfree/core"
	"github.com/cznic/segfree/heap"
)

var (
	oSeed        = flag.Int64("seed", 1, "PRNG seed")
	oLive        = flag.Int("live", 2000, "target number of simultaneously live blocks")
	oOps         = flag.Int64("ops", 1000000, "total operations to perform")
	oMaxSize     = flag.Int("max", 4096, "maximum single-block payload size")
	oCheckEvery  = flag.Int64("checkevery", 10000, "run the structural checker every N operations")
	oReportEvery = flag.Duration("report", 2*time.Second, "stats reporting interval")
	oMaxHeap     = flag.Uint64("maxheap", 0, "cap the heap size in bytes (0: unbounded)")
)

type live struct {
	ptr  uint32
	size uint32
}

func main() {
	flag.Parse()
	log.SetFlags(log.Flags() | log.Lshortfile)

	rng := rand.New(rand.NewSource(*oSeed))
	p := heap.NewMemProvider(uint32(*oMaxHeap))
	a, err := core.Init(p, core.Options{})
	if err != nil {
		log.Fatal(err)
	}

	var blocks []live
	ticker := time.NewTicker(*oReportEvery)
	defer ticker.Stop()

	var allocs, frees, reallocs, failures int64
	start := time.Now()

	for op := int64(0); op < *oOps; op++ {
		select {
		case <-ticker.C:
			st := a.Stats()
			log.Printf("op=%d live=%d allocs=%d frees=%d reallocs=%d failures=%d alloc_bytes=%d free_bytes=%d elapsed=%s",
				op, len(blocks), allocs, frees, reallocs, failures, st.AllocBytes, st.FreeBytes, time.Since(start))
		default:
		}

		switch {
		case len(blocks) == 0 || (len(blocks) < *oLive && rng.Intn(3) != 0):
			size := uint32(1 + rng.Intn(*oMaxSize))
			ptr := a.Allocate(size)
			allocs++
			if ptr == core.Null {
				failures++
				continue
			}
			blocks = append(blocks, live{ptr, size})

		case rng.Intn(2) == 0:
			i := rng.Intn(len(blocks))
			b := blocks[i]
			newSize := uint32(1 + rng.Intn(*oMaxSize))
			np := a.Reallocate(b.ptr, newSize)
			reallocs++
			if np == core.Null {
				failures++
				blocks[i] = blocks[len(blocks)-1]
				blocks = blocks[:len(blocks)-1]
				continue
			}
			blocks[i] = live{np, newSize}

		default:
			i := rng.Intn(len(blocks))
			a.Free(blocks[i].ptr)
			frees++
			blocks[i] = blocks[len(blocks)-1]
			blocks = blocks[:len(blocks)-1]
		}

		if op > 0 && op%*oCheckEvery == 0 {
			var problems int
			logFn := func(err error) bool {
				log.Print(err)
				problems++
				return problems < 20
			}
			if _, err := checker.CheckHeap(a, p.Bytes(), logFn); err != nil {
				log.Fatalf("checker aborted at op %d: %v", op, err)
			}
			if problems > 0 {
				log.Fatalf("checker found %d structural problems at op %d", problems, op)
			}
		}
	}

	st := a.Stats()
	log.Printf("done: %d ops, %d live blocks, alloc_bytes=%d free_bytes=%d", *oOps, len(blocks), st.AllocBytes, st.FreeBytes)
	os.Exit(0)
}
