// Copyright 2021-2023 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package alloctr

import (
	"testing"
)

func TestErrorConv(t *testing.T) {
	if err := ErrOk.ErrorConv(); err != nil {
		t.Errorf("ErrOk.ErrorConv() = %v, expected nil", err)
	}
	if err := ErrNoSymTable.ErrorConv(); err != ErrNoSymTable {
		t.Errorf("ErrNoSymTable.ErrorConv() = %v", err)
	}
	// out of range values convert to the conversion bug marker
	if err := ErrorTrk(9999).ErrorConv(); err != ErrConvBug {
		t.Errorf("ErrorTrk(9999).ErrorConv() = %v", err)
	}
}

func TestErrorStr(t *testing.T) {
	if s := ErrNoSymTable.Error(); s != "symbol table not initialized" {
		t.Errorf("ErrNoSymTable.Error() = %q", s)
	}
}
