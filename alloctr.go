// Copyright 2021-2023 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

// Package alloctr tracks heap allocations and attributes them to the
// call site that requested them.
//
// Buffer traffic is routed through a TrackAlloc, which delegates to an
// upstream Allocator (SysAlloc or PoolAlloc by default) and keeps a
// process-wide running total of the outstanding bytes plus a per
// call-site symbol table with live byte and allocation counts.
// Attribution walks the current call stack and picks the innermost
// frame matching one of the module prefixes passed to InitSymTable.
//
// Typical use:
//
//	alloctr.InitSymTable([]string{"github.com/myorg/myapp"})
//	a := alloctr.NewTrackAlloc(alloctr.SysAlloc{})
//	// ... route buffer allocations through a.Allocate()/a.Free() ...
//	alloctr.WithSymTable(func(t *alloctr.SymTable) {
//		t.Iterate(func(name string, s *alloctr.Symbol) {
//			fmt.Printf("%s: %d bytes / %d allocs\n",
//				name, s.Allocated(), s.Count())
//		})
//	})
//
// Tracking is best-effort by design: allocations made before
// InitSymTable or from outside the configured modules are counted only
// in the aggregate total, never in a symbol entry. The stack walk is
// expensive, so production builds that only want the raw byte total can
// use the alloctr_notrack build tag to compile all tracking to no-ops.
package alloctr

// BuildTags contains the build options used to compile this package
// (filled by the conditionally built files).
var BuildTags []string
