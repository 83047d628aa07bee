// Copyright 2021-2023 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package alloctr

import (
	"sync"
)

// PoolStats holds the pool hit/miss counters of a PoolAlloc.
type PoolStats struct {
	Hits StatCounter
	Miss StatCounter
	// too big for any pool, allocated directly
	Oversize StatCounter
}

// PoolAlloc is an upstream allocator that recycles freed buffers
// through an array of sync.Pool, one per size class of AllocRoundTo
// bytes (requested sizes are rounded up to the class size). Sizes
// above MemPoolsNo*AllocRoundTo bypass the pools.
// Useful when measuring a program whose own allocation churn would
// otherwise drown in GC noise.
type PoolAlloc struct {
	// pools[i] holds buffers of capacity i*AllocRoundTo
	pools [MemPoolsNo]sync.Pool
	stats PoolStats
}

func NewPoolAlloc() *PoolAlloc {
	return &PoolAlloc{}
}

// Stats returns a snapshot of the pool hit/miss counters.
func (p *PoolAlloc) Stats() PoolStats {
	return PoolStats{
		Hits:     StatCounter(p.stats.Hits.Get()),
		Miss:     StatCounter(p.stats.Miss.Get()),
		Oversize: StatCounter(p.stats.Oversize.Get()),
	}
}

func (p *PoolAlloc) Allocate(size uint) []byte {
	if size == 0 {
		return make([]byte, 0)
	}
	totalSize := ((size-1)/AllocRoundTo + 1) * AllocRoundTo // round up
	pNo := int(totalSize / AllocRoundTo)
	if pNo < MemPoolsNo {
		if v := p.pools[pNo].Get(); v != nil {
			p.stats.Hits.Inc(1)
			buf := *(v.(*[]byte))
			return buf[:size]
		}
		p.stats.Miss.Inc(1)
	} else {
		p.stats.Oversize.Inc(1)
	}
	return make([]byte, size, totalSize)
}

func (p *PoolAlloc) Free(buf []byte) {
	c := uint(cap(buf))
	if c == 0 || c%AllocRoundTo != 0 {
		// not one of ours (or zero sized), leave it to the GC
		return
	}
	pNo := int(c / AllocRoundTo)
	if pNo >= MemPoolsNo {
		return
	}
	buf = buf[:c]
	// stored as *[]byte to keep the sync.Pool interface conversion
	// allocation-free
	p.pools[pNo].Put(&buf)
}
