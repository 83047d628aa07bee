// Copyright 2021-2023 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package alloctr

// call stack attribution

import (
	"runtime"
	"strings"

	"github.com/intuitivelabs/bytescase"
)

// UnknownSymbol is the attribution used when no stack frame matches
// the configured module prefixes.
const UnknownSymbol = "<unknown>"

// maximum number of stack frames examined for attribution
const maxStackDepth = 64

// ignoreLst contains the tracker's own call sites, always present on
// the stack between the user's call and the stack capture. They must
// never be picked as the attributed frame, even when the allow-list
// covers this package (the package's own tests do exactly that).
var ignoreLst = [...]string{
	"github.com/intuitivelabs/alloctr.callerSymbol",
	"github.com/intuitivelabs/alloctr.internSymbol",
	"github.com/intuitivelabs/alloctr.symTabAlloc",
	"github.com/intuitivelabs/alloctr.symTabDealloc",
	"github.com/intuitivelabs/alloctr.(*TrackAlloc).trace",
	"github.com/intuitivelabs/alloctr.(*TrackAlloc).Allocate",
	"github.com/intuitivelabs/alloctr.(*TrackAlloc).Free",
	"github.com/intuitivelabs/alloctr.WithSymTable",
}

// callerSymbol walks the current call stack and returns the interned,
// suffix-stripped name of the frame responsible for the current
// allocation, or UnknownSymbol.
// Frames are scanned innermost first (the order runtime.Callers
// produces); the first frame that is not on ignoreLst and matches one
// of the module prefixes wins. When several allowed frames are on the
// stack (nested calls inside tracked modules) this attributes to the
// innermost one, the most useful answer when hunting a leak.
// Must run with the reentrancy guard set (it allocates).
func callerSymbol(modules []string) string {
	var pcs [maxStackDepth]uintptr
	// skip runtime.Callers and callerSymbol itself
	n := runtime.Callers(2, pcs[:])
	if n == 0 {
		return UnknownSymbol
	}
	frames := runtime.CallersFrames(pcs[:n])
	for {
		frame, more := frames.Next()
		name := frame.Function
		if name != "" && !ignoredSymbol(name) &&
			matchModule(modules, name) {
			return internSymbol(stripGenSuffix(name))
		}
		if !more {
			break
		}
	}
	return UnknownSymbol
}

// ignoredSymbol reports whether name is one of the tracker's own call
// sites (exact prefix match).
func ignoredSymbol(name string) bool {
	for _, p := range ignoreLst {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}

// matchModule reports whether name starts with one of the configured
// module prefixes. The match is case insensitive: symbol casing is not
// reliable for frames coming from cgo or foreign toolchains.
func matchModule(modules []string, name string) bool {
	b := []byte(name)
	for _, m := range modules {
		if _, ok := bytescase.Prefix([]byte(m), b); ok {
			return true
		}
	}
	return false
}

// stripGenSuffix removes trailing compiler generated components from a
// fully qualified function name, leaving a stable human readable name:
// "pkg.F.func1" -> "pkg.F", "pkg.F.func2.1" -> "pkg.F",
// "pkg.main.gowrap1" -> "pkg.main". Names without generated suffixes
// are returned unchanged.
func stripGenSuffix(name string) string {
	for {
		i := strings.LastIndexByte(name, '.')
		if i <= strings.LastIndexByte(name, '/') {
			// no '.' past the import path: nothing left to strip
			return name
		}
		if !genComponent(name[i+1:]) {
			return name
		}
		name = name[:i]
	}
}

// genComponent reports whether a name component was compiler
// generated: "funcN", "gowrapN", "deferwrapN", a bare number (closure
// nesting level) or empty (the extra separator in "glob.." names).
func genComponent(s string) bool {
	if s == "" || allDigits(s) {
		return true
	}
	for _, p := range [...]string{"func", "gowrap", "deferwrap"} {
		if len(s) > len(p) && s[:len(p)] == p && allDigits(s[len(p):]) {
			return true
		}
	}
	return false
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
