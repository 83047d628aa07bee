// Copyright 2021-2023 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package alloctr

import (
	"sync"
)

// internTab holds one canonical copy of every attributed name for the
// life of the process. The symbol table keys and any reference handed
// out stay valid forever without the tracker having to account for its
// own string storage (which would be self-referential).
// Entries are never removed; the set is bounded by the program's call
// sites.
var internTab = struct {
	sync.Mutex
	m map[string]string
}{
	m: make(map[string]string, DefaultSymTableSize),
}

// internSymbol returns the canonical, process-lifetime copy of name.
// Must run with the reentrancy guard set (first-time interning
// allocates).
func internSymbol(name string) string {
	internTab.Lock()
	defer internTab.Unlock()
	if s, ok := internTab.m[name]; ok {
		return s
	}
	internTab.m[name] = name
	return name
}
