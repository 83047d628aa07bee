// Copyright 2021-2023 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package alloctr

// ErrorTrk is the type for the errors returned by the tracker's
// accessors. It implements the error interface. The zero value is by
// convention a non-error, so to convert from ErrorTrk to error one
// should use ErrorConv() (similar to syscall.Errno).
type ErrorTrk uint32

// Possible error values.
const (
	ErrOk         ErrorTrk = iota // no error, equiv. to nil
	ErrNoSymTable                 // symbol table not initialized
	ErrConvBug
)

// error values corresp. to each ErrorTrk value: this way the interface
// allocations are done only once
// NOTE: keep in sync with the const above
var err2ErrorVal = [...]error{
	nil, // 0 corresp. to nil
	ErrNoSymTable,
	ErrConvBug,
}

var errTrkStr = [...]string{
	ErrOk:         "no error",
	ErrNoSymTable: "symbol table not initialized",
	ErrConvBug:    "error conversion BUG",
}

func (e ErrorTrk) Error() string {
	return errTrkStr[e]
}

// ErrorConv() converts the ErrorTrk value to error.
// It uses "boxed" values to prevent runtime allocations.
func (e ErrorTrk) ErrorConv() error {
	if 0 <= int(e) && int(e) < len(err2ErrorVal) {
		return err2ErrorVal[e]
	}
	return ErrConvBug
}
