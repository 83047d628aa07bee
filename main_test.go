// Copyright 2021-2023 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

//go:build !alloctr_notrack
// +build !alloctr_notrack

package alloctr

import (
	"fmt"
	"os"
	"testing"
)

// module prefix matching this package, used as the allow-list for all
// the tests
var probeModules = []string{"github.com/intuitivelabs/alloctr"}

// shared tracker, system allocator upstream
var probeTracker = NewTrackAlloc(SysAlloc{})

// TestMain checks the pre-initialization behavior (the global symbol
// table can only be created once per process, so this has to happen
// before any test initializes it) and then sets the table up for the
// rest of the tests.
func TestMain(m *testing.M) {
	// read access before InitSymTable must fail with ErrNoSymTable,
	// not with an empty success
	if err := WithSymTable(func(*SymTable) {}); err != ErrNoSymTable {
		fmt.Fprintf(os.Stderr,
			"uninitialized symbol table access: expected %q, got %v\n",
			ErrNoSymTable, err)
		os.Exit(1)
	}
	// the aggregate total is usable before InitSymTable; such
	// allocations are counted there and only there (no attribution,
	// checked later in TestPreInitNotAttributed)
	buf := probeTracker.Allocate(17)
	if TotalAllocated() != 17 {
		fmt.Fprintf(os.Stderr,
			"pre-init alloc not counted: total %d, expected 17\n",
			TotalAllocated())
		os.Exit(1)
	}
	probeTracker.Free(buf)
	if TotalAllocated() != 0 {
		fmt.Fprintf(os.Stderr,
			"pre-init free not counted: total %d, expected 0\n",
			TotalAllocated())
		os.Exit(1)
	}

	InitSymTable(probeModules)
	os.Exit(m.Run())
}
