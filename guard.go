// Copyright 2021-2023 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package alloctr

// per goroutine reentrancy guard

import (
	"sync"

	"github.com/petermattis/goid"
)

// inAlloc marks the goroutines currently executing the tracker's own
// bookkeeping. Allocations requested while the flag is set for the
// calling goroutine are internal (stack walk, label interning, map
// growth) and must be neither counted nor attributed: counting them
// would pollute the stats with the tracker's noise and re-entering the
// symbol table lock from the same goroutine would deadlock.
// Each goroutine has an independent entry, so no flag update ever
// synchronizes goroutines against each other.
var inAlloc sync.Map // goroutine id -> struct{}

// guardSet reports whether the calling goroutine is inside the
// tracker's own bookkeeping.
func guardSet() bool {
	_, ok := inAlloc.Load(goid.Get())
	return ok
}

func enterAlloc() {
	inAlloc.Store(goid.Get(), struct{}{})
}

func exitAlloc() {
	inAlloc.Delete(goid.Get())
}
