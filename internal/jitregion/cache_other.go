//go:build !arm64

package jitregion

// maintainCache has no implementation outside ARM64: the Loader's machine
// code and cache-maintenance sequence are both specified in terms of the
// ARM64 Mach-O target (spec.md §1), so a non-arm64 build can still compile
// and decode hex into the region, it just can't seal or execute it.
func maintainCache(mem []byte) error {
	return ErrUnsupportedArch
}

func callRegion(p *byte, arg uintptr) uintptr {
	panic("jitregion: callRegion unsupported on this architecture")
}
