// Copyright 2021-2023 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package alloctr

import (
	"sync/atomic"
)

const AllocRoundTo = 16
const MemPoolsNo = 1024

// StatCounter is an atomic counter used for allocation statistics.
type StatCounter uint64

func (c *StatCounter) Inc(v uint) uint64 {
	return atomic.AddUint64((*uint64)(c), uint64(v))
}

func (c *StatCounter) Dec(v uint) uint64 {
	return atomic.AddUint64((*uint64)(c), ^uint64(v-1))
}

func (c *StatCounter) Get() uint64 {
	return atomic.LoadUint64((*uint64)(c))
}

// AllocStats holds the global allocation statistics.
// TotalSize is the current number of outstanding bytes (allocated and
// not yet freed), restricted to externally requested allocations (the
// tracker's own internal allocations are never counted).
// Underflows counts frees that exceeded the outstanding total at the
// time of the call (possible only on unbalanced alloc/free use, e.g.
// buffers allocated before tracking was compiled in); the counters
// wrap in that case instead of trapping.
type AllocStats struct {
	TotalSize  StatCounter
	NewCalls   StatCounter
	FreeCalls  StatCounter
	Failures   StatCounter
	Underflows StatCounter
}

// TrackStats holds the process-wide counters for all TrackAlloc
// instances.
var TrackStats AllocStats

// TotalAllocated returns the current number of outstanding tracked
// bytes. Always usable, even before InitSymTable.
func TotalAllocated() uint64 {
	return TrackStats.TotalSize.Get()
}
