//go:build arm64

package jitregion

import "unsafe"

// cacheLineSize is conservative for ARM64's typical 64-byte D/I cache line;
// real hardware reports this via ctr_el0, but walking every line at this
// stride is correct even when the true line is larger.
const cacheLineSize = 64

// maintainCache cleans the data cache and invalidates the instruction
// cache over mem's range, with the barriers the architecture requires
// between "data is visible" and "instruction fetch sees it" — the step
// that makes freshly written bytes safe to branch into.
func maintainCache(mem []byte) error {
	if len(mem) == 0 {
		return nil
	}
	addr := uintptr(unsafe.Pointer(&mem[0]))
	size := uintptr(len(mem))
	cacheMaintain(addr, size)
	return nil
}

// cacheMaintain and callRegion are implemented in cache_arm64.s.
func cacheMaintain(addr, size uintptr)
func callRegion(p *byte, arg uintptr) uintptr
