// Copyright 2021-2023 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

//go:build !alloctr_notrack
// +build !alloctr_notrack

package alloctr

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	chainASym = "github.com/intuitivelabs/alloctr.tpChainA"
	chainBSym = "github.com/intuitivelabs/alloctr.tpChainB"
	chainCSym = "github.com/intuitivelabs/alloctr.tpChainC"
)

// a -> b -> c probe chain; c allocates, runs the mid check with the
// buffer live, then frees from the same call site (so the free is
// attributed to the same symbol as the allocation)
func tpChainA(n uint, mid func()) {
	tpChainB(n, mid)
}

func tpChainB(n uint, mid func()) {
	tpChainC(n, mid)
}

func tpChainC(n uint, mid func()) {
	buf := probeTracker.Allocate(n)
	mid()
	probeTracker.Free(buf)
}

// InitSymTable is first-call-wins: the allow-list set by TestMain must
// survive any later call.
func TestInitSymTableFirstWins(t *testing.T) {
	InitSymTable([]string{"something/else/entirely"})
	err := WithSymTable(func(tab *SymTable) {
		require.Equal(t, probeModules, tab.Modules())
	})
	require.NoError(t, err)
}

// the allocation made by TestMain before InitSymTable was counted in
// the aggregate total but must not have produced a symbol entry
func TestPreInitNotAttributed(t *testing.T) {
	err := WithSymTable(func(tab *SymTable) {
		require.Nil(t,
			tab.Get("github.com/intuitivelabs/alloctr.TestMain"))
	})
	require.NoError(t, err)
}

func TestAttributeChain(t *testing.T) {
	const n = 4096

	var mid *Symbol
	var midAllocated, midCount uint64
	tpChainA(n, func() {
		err := WithSymTable(func(tab *SymTable) {
			mid = tab.Get(chainCSym)
			if mid != nil {
				midAllocated = mid.Allocated()
				midCount = mid.Count()
			}
		})
		require.NoError(t, err)
	})

	// exactly one entry for the whole chain, on the innermost frame
	require.NotNil(t, mid, "no entry for %s", chainCSym)
	require.Equal(t, uint64(n), midAllocated)
	require.Equal(t, uint64(1), midCount)

	// after the free the entry stays present, with zeroed counters
	err := WithSymTable(func(tab *SymTable) {
		sym := tab.Get(chainCSym)
		require.Same(t, mid, sym, "entry was recreated")
		require.Equal(t, uint64(0), sym.Allocated())
		require.Equal(t, uint64(0), sym.Count())
		require.Nil(t, tab.Get(chainASym))
		require.Nil(t, tab.Get(chainBSym))
	})
	require.NoError(t, err)
}

func tpLoneFree(buf []byte) {
	probeTracker.Free(buf)
}

// a free attributed to a label with no entry (here: the matching
// allocation ran under the guard) is dropped from the table silently;
// the aggregate total still accounts it
func TestUntrackedFreeDropped(t *testing.T) {
	ballast := probeTracker.Allocate(4096) // keeps the total positive
	enterAlloc()
	buf := probeTracker.Allocate(256) // guarded: no entry, not counted
	exitAlloc()

	base := TotalAllocated()
	baseUnder := TrackStats.Underflows.Get()
	tpLoneFree(buf)
	require.Equal(t, base-256, TotalAllocated())
	require.Equal(t, baseUnder, TrackStats.Underflows.Get())
	err := WithSymTable(func(tab *SymTable) {
		require.Nil(t,
			tab.Get("github.com/intuitivelabs/alloctr.tpLoneFree"))
	})
	require.NoError(t, err)

	// put back what the guarded alloc never added, drop the ballast
	TrackStats.TotalSize.Inc(256)
	probeTracker.Free(ballast)
}

func TestIterate(t *testing.T) {
	// TestAttributeChain ran in this process, so at least the chain
	// entry must be visited
	seen := false
	err := WithSymTable(func(tab *SymTable) {
		tab.Iterate(func(name string, s *Symbol) {
			require.NotNil(t, s)
			if name == chainCSym {
				seen = true
			}
		})
	})
	require.NoError(t, err)
	require.True(t, seen, "Iterate did not visit %s", chainCSym)
}
