// Copyright 2021-2023 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package alloctr

// Allocator is the upstream allocation interface TrackAlloc delegates
// to. Allocate returns a buffer of at least size bytes or nil on
// failure (an upstream enforcing memory limits may fail; SysAlloc never
// does). Free releases a buffer previously returned by Allocate.
type Allocator interface {
	Allocate(size uint) []byte
	Free(buf []byte)
}

type allocOp int

const (
	opAlloc allocOp = iota
	opFree
)

// TrackAlloc wraps an upstream Allocator and accounts every external
// allocation and free in TrackStats and in the global symbol table.
// It always delegates to the upstream and returns its result unchanged:
// tracking never fails or alters an allocation.
// Safe for concurrent use from any goroutine, including before
// InitSymTable was called (such allocations are counted only in the
// aggregate total).
type TrackAlloc struct {
	upstream Allocator
}

func NewTrackAlloc(upstream Allocator) *TrackAlloc {
	return &TrackAlloc{upstream: upstream}
}

// Allocate delegates to the upstream allocator and, for external
// traffic (reentrancy guard clear), records the allocation.
// The accounted size is the capacity actually reserved (cap of the
// returned buffer), so that a later Free of the same buffer balances
// exactly even when the upstream rounds sizes up.
func (a *TrackAlloc) Allocate(size uint) []byte {
	buf := a.upstream.Allocate(size)
	if buf == nil {
		if allocTracking {
			TrackStats.Failures.Inc(1)
		}
		return nil
	}
	if allocTracking && !guardSet() {
		a.trace(uint(cap(buf)), opAlloc)
	}
	return buf
}

// Free records the deallocation for external traffic and delegates to
// the upstream allocator.
func (a *TrackAlloc) Free(buf []byte) {
	if buf != nil && allocTracking && !guardSet() {
		a.trace(uint(cap(buf)), opFree)
	}
	a.upstream.Free(buf)
}

// Allocated returns the current number of outstanding tracked bytes
// (process-wide, see TrackStats).
func (a *TrackAlloc) Allocated() uint64 {
	return TrackStats.TotalSize.Get()
}

// trace updates the aggregate counters and the symbol table for one
// externally requested operation. It runs with the reentrancy guard
// set so that its own allocations (stack walk, label formatting, map
// growth) are not accounted and cannot recurse into the table lock.
// The guard is cleared via defer: no exit path, panic included, may
// leave it set (that would silently disable tracking for the
// goroutine).
func (a *TrackAlloc) trace(size uint, op allocOp) {
	enterAlloc()
	defer exitAlloc()
	switch op {
	case opAlloc:
		TrackStats.NewCalls.Inc(1)
		TrackStats.TotalSize.Inc(size)
		symTabAlloc(size)
	case opFree:
		TrackStats.FreeCalls.Inc(1)
		if uint64(size) > TrackStats.TotalSize.Get() {
			// unbalanced free: fault is recorded, counter wraps
			TrackStats.Underflows.Inc(1)
			WARN("free of %d bytes exceeds outstanding total\n", size)
		}
		TrackStats.TotalSize.Dec(size)
		symTabDealloc(size)
	}
}
