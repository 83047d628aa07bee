// Copyright 2021-2023 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package alloctr

import (
	"reflect"
	"testing"
	"unsafe"
)

func strData(s string) uintptr {
	return (*reflect.StringHeader)(unsafe.Pointer(&s)).Data
}

// interning equal but distinct strings must always return the first,
// canonical copy
func TestInternSymbol(t *testing.T) {
	s1 := internSymbol("probe::intern" + string(rune('A')))
	s2 := internSymbol(string([]byte("probe::internA")))
	if s1 != s2 {
		t.Fatalf("interned copies differ: %q / %q", s1, s2)
	}
	if strData(s1) != strData(s2) {
		t.Errorf("interned copies do not share storage")
	}
	// a different name gets its own canonical copy
	s3 := internSymbol("probe::internB")
	if s3 == s1 {
		t.Errorf("distinct names interned to the same string")
	}
}
