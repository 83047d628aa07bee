// Copyright 2021-2023 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package alloctr

import (
	"sync"

	"go.uber.org/atomic"
)

// DefaultSymTableSize is the initial symbol table capacity,
// preallocated to reduce first-use allocation noise.
const DefaultSymTableSize = 1024

// Symbol holds the live counters for one attributed call site:
// outstanding bytes and outstanding allocation count.
// Both are updated with lock-free atomics; a reader may observe the
// two mid-update relative to each other, but each converges.
type Symbol struct {
	allocated StatCounter
	count     StatCounter
}

// Allocated returns the outstanding bytes attributed to this symbol.
func (s *Symbol) Allocated() uint64 {
	return s.allocated.Get()
}

// Count returns the outstanding allocation count attributed to this
// symbol.
func (s *Symbol) Count() uint64 {
	return s.count.Get()
}

// SymTable maps attributed call-site names to their Symbol counters.
// The module prefix allow-list is fixed at creation. Entries are
// created lazily on the first allocation attributed to a name and are
// never removed (the name set is bounded by the program's call sites).
type SymTable struct {
	modules []string // allowed module prefixes, immutable after init
	lock    sync.Mutex
	symbols map[string]*Symbol
}

var (
	symTabInit sync.Once
	symTab     *SymTable
	symTabOn   atomic.Bool // fast path check, avoids the lock
)

// InitSymTable creates the global symbol table with the given module
// prefix allow-list (e.g. []string{"github.com/myorg/myapp"}).
// Only call sites matching one of the prefixes get attributed; the
// match is case insensitive. Idempotent: the first call wins, later
// calls are no-ops.
// Allocations tracked before this call are counted in the aggregate
// total only.
func InitSymTable(modules []string) {
	symTabInit.Do(func() {
		symTab = &SymTable{
			modules: append([]string(nil), modules...),
			symbols: make(map[string]*Symbol, DefaultSymTableSize),
		}
		symTabOn.Store(true)
	})
}

// WithSymTable runs f with read access to the global symbol table,
// holding the table lock. It sets the reentrancy guard for the
// duration, so f may freely allocate through a TrackAlloc (those
// allocations are not tracked and cannot re-enter the lock).
// Returns ErrNoSymTable if InitSymTable was not called yet.
func WithSymTable(f func(t *SymTable)) error {
	if !symTabOn.Load() {
		return ErrNoSymTable.ErrorConv()
	}
	enterAlloc()
	defer exitAlloc()
	t := symTab
	t.lock.Lock()
	defer t.lock.Unlock()
	f(t)
	return nil
}

// Iterate calls f for every tracked symbol. Iteration order is not
// meaningful. Must be called from inside a WithSymTable closure (the
// table lock protects the map).
func (t *SymTable) Iterate(f func(name string, s *Symbol)) {
	for name, s := range t.symbols {
		f(name, s)
	}
}

// Get returns the Symbol for name or nil. Must be called from inside a
// WithSymTable closure.
func (t *SymTable) Get(name string) *Symbol {
	return t.symbols[name]
}

// Modules returns the configured module prefix allow-list.
func (t *SymTable) Modules() []string {
	return t.modules
}

// symTabAlloc attributes an externally requested allocation of the
// given size to the caller's symbol, creating the entry on first use.
// No-op before InitSymTable. Caller must hold the reentrancy guard.
func symTabAlloc(bytes uint) {
	if !symTabOn.Load() {
		return
	}
	t := symTab
	name := callerSymbol(t.modules)
	t.lock.Lock()
	s := t.symbols[name]
	if s == nil {
		s = &Symbol{}
		t.symbols[name] = s
	}
	t.lock.Unlock()
	// entry counters are updated outside the lock: concurrent traffic
	// on an existing symbol never contends on the table lock
	s.allocated.Inc(bytes)
	s.count.Inc(1)
}

// symTabDealloc attributes an externally requested free to the
// caller's symbol. A free attributed to a name with no entry (e.g.
// the matching allocation happened before InitSymTable) is dropped
// silently. No-op before InitSymTable. Caller must hold the
// reentrancy guard.
func symTabDealloc(bytes uint) {
	if !symTabOn.Load() {
		return
	}
	t := symTab
	name := callerSymbol(t.modules)
	t.lock.Lock()
	s := t.symbols[name]
	t.lock.Unlock()
	if s == nil {
		// alloc happened before init or under the guard
		if DBGon() {
			DBG("untracked free of %d bytes for %q\n", bytes, name)
		}
		return
	}
	s.allocated.Dec(bytes)
	s.count.Dec(1)
}
