// Copyright 2021-2023 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package alloctr

// SysAlloc is the default upstream allocator, backed by the Go
// runtime. Allocate never fails (the runtime aborts on OOM) and Free
// is a no-op: the GC reclaims the buffer once unreferenced. Freed
// buffers still have to be passed to Free so the tracker can account
// them.
type SysAlloc struct{}

func (SysAlloc) Allocate(size uint) []byte {
	return make([]byte, size)
}

func (SysAlloc) Free(buf []byte) {
}
