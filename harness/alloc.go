package harness

import "sync"

// Backing store for allocator buffers. Small allocations are served
// from a pool so that repeated testcases do not churn the heap.
//
// Guidelines:
//   - Buffers handed out are zeroed, so run behavior never depends on
//     what a previous testcase left behind.
//   - Only buffers with the pooled capacity go back on Free; odd sizes
//     are left to the garbage collector.

const pooledCap = 1024

var blockPool = sync.Pool{New: func() any {
	b := make([]byte, 0, pooledCap)
	return &b
}}

func getBlock(n int) []byte {
	if n > pooledCap {
		return make([]byte, n)
	}
	p := blockPool.Get().(*[]byte)
	b := (*p)[:n]
	clear(b)
	return b
}

func putBlock(b []byte) {
	if cap(b) != pooledCap {
		return
	}
	b = b[:0]
	blockPool.Put(&b)
}

// FaultAllocator implements Allocator with deterministic fault
// injection. It counts allocate and reallocate calls; when the current
// count names a scheduled ordinal, the call fails and the count does
// not advance, so the same schedule replays bit-for-bit on the same
// testcase. Free is never counted and never fails.
//
// A FaultAllocator is scoped to a single testcase run. It is not safe
// for concurrent use, matching the strictly sequential run model.
type FaultAllocator struct {
	schedule map[uint32]struct{}
	count    uint32
	frees    uint64
}

// NewFaultAllocator builds an allocator that fails the allocation
// calls named by failAt (0-based ordinals within this allocator's
// lifetime).
func NewFaultAllocator(failAt []uint32) *FaultAllocator {
	a := &FaultAllocator{schedule: make(map[uint32]struct{}, len(failAt))}
	for _, n := range failAt {
		a.schedule[n] = struct{}{}
	}
	return a
}

// Allocate implements Allocator.
func (a *FaultAllocator) Allocate(n int) []byte {
	if a.failNow() {
		return nil
	}
	a.count++
	if n < 0 {
		return nil
	}
	return getBlock(n)
}

// Reallocate implements Allocator.
func (a *FaultAllocator) Reallocate(b []byte, n int) []byte {
	if a.failNow() {
		return nil
	}
	a.count++
	switch {
	case n < 0:
		return nil
	case n <= cap(b):
		return b[:n]
	default:
		nb := getBlock(n)
		copy(nb, b)
		putBlock(b)
		return nb
	}
}

// Free implements Allocator.
func (a *FaultAllocator) Free(b []byte) {
	if b == nil {
		return
	}
	a.frees++
	putBlock(b)
}

// Count returns the number of successful allocate/reallocate calls so
// far.
func (a *FaultAllocator) Count() uint32 { return a.count }

// Frees returns the number of Free calls observed.
func (a *FaultAllocator) Frees() uint64 { return a.frees }

// failNow reports whether the current call ordinal is scheduled to
// fail. The decision precedes the count update: a failing call leaves
// the counter at the failing ordinal.
func (a *FaultAllocator) failNow() bool {
	_, fail := a.schedule[a.count]
	return fail
}
