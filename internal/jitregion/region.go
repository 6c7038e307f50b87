// Package jitregion owns the Loader's single write-then-execute memory
// region: a page allocated RW, written in place as the hex stream is
// decoded, then sealed RX with ARM64 cache maintenance before control ever
// branches into it. The W→X transition happens exactly once per region and
// is irrevocable.
package jitregion

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// ErrUnsupportedArch is returned by Seal on platforms this package has no
// cache-maintenance sequence for.
var ErrUnsupportedArch = errors.New("jitregion: unsupported architecture")

type state int

const (
	stateWritable state = iota
	stateExecutable
	stateClosed
)

// Region is an owned mmap'd page, writable until Seal, executable after.
type Region struct {
	mem   []byte
	state state
}

// stateError reports a call made while the region was in the wrong state,
// a programming error rather than a runtime condition, so callers (and
// tests) can assert on it without recovering a panic.
type stateError struct {
	op   string
	have state
}

func (e stateError) Error() string {
	return fmt.Sprintf("jitregion: %s: invalid in state %v", e.op, e.have)
}

func (s state) String() string {
	switch s {
	case stateWritable:
		return "writable"
	case stateExecutable:
		return "executable"
	case stateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// NewRegion allocates a fresh RW anonymous mapping of at least size bytes,
// starting Writable.
func NewRegion(size int) (*Region, error) {
	if size <= 0 {
		return nil, fmt.Errorf("jitregion: invalid size %d", size)
	}
	mem, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("jitregion: mmap: %w", err)
	}
	return &Region{mem: mem}, nil
}

// Len returns the region's total capacity in bytes.
func (r *Region) Len() int { return len(r.mem) }

// Write copies b into the region at byte offset off. Only valid while the
// region is Writable.
func (r *Region) Write(off int, b []byte) error {
	if r.state != stateWritable {
		return stateError{"write", r.state}
	}
	if off < 0 || off+len(b) > len(r.mem) {
		return fmt.Errorf("jitregion: write out of bounds: off=%d len=%d cap=%d", off, len(b), len(r.mem))
	}
	copy(r.mem[off:], b)
	return nil
}

// Seal performs ARM64 cache maintenance over the written range and
// transitions the region Writable→Executable via mprotect. It is a
// programming error to call Seal twice.
func (r *Region) Seal() error {
	if r.state != stateWritable {
		return stateError{"seal", r.state}
	}
	if err := maintainCache(r.mem); err != nil {
		return err
	}
	if err := unix.Mprotect(r.mem, unix.PROT_READ|unix.PROT_EXEC); err != nil {
		return fmt.Errorf("jitregion: mprotect: %w", err)
	}
	r.state = stateExecutable
	return nil
}

// Call branches into the region's first byte, passing arg in the
// platform's first argument register, and returns its result. Only valid
// once the region is Executable.
func (r *Region) Call(arg uintptr) (uintptr, error) {
	if r.state != stateExecutable {
		return 0, stateError{"call", r.state}
	}
	return callRegion(&r.mem[0], arg), nil
}

// Close unmaps the region. The region is unusable afterward.
func (r *Region) Close() error {
	if r.state == stateClosed {
		return nil
	}
	mem := r.mem
	r.mem = nil
	r.state = stateClosed
	return unix.Munmap(mem)
}
