package forth

import (
	"strings"

	"trustboot/internal/mem"
)

// here and latest read/write the two dictionary cursors kept in the fixed
// memory layout, per the spec's Here/Latest state.
func (vm *VM) here() uint      { return uint(vm.loadCell(offHere)) }
func (vm *VM) setHere(h uint)  { vm.storeCell(offHere, int(h)) }
func (vm *VM) latest() uint    { return uint(vm.loadCell(offLatest)) }
func (vm *VM) setLatest(a uint) { vm.storeCell(offLatest, int(a)) }

func (vm *VM) state() int     { return vm.loadCell(offState) }
func (vm *VM) setState(s int) { vm.storeCell(offState, s) }

func (vm *VM) base() int {
	b := vm.loadCell(offBase)
	if b < 2 || b > 36 {
		return 10
	}
	return b
}
func (vm *VM) setBase(b int) { vm.storeCell(offBase, b) }

func (vm *VM) loadCell(addr uint) int {
	v, err := vm.mem.LoadCell(addr)
	vm.haltif(err)
	return v
}

func (vm *VM) storeCell(addr uint, val int) {
	vm.haltif(vm.mem.StoreCell(addr, val))
}

func (vm *VM) load8(addr uint) byte {
	b, err := vm.mem.Load8(addr)
	vm.haltif(err)
	return b
}

func (vm *VM) store8(addr uint, b byte) {
	vm.haltif(vm.mem.Store8(addr, b))
}

// compileCell appends one cell to the dictionary at HERE, advancing HERE —
// the `,` primitive, and the internal workhorse for every other compiling
// operation.
func (vm *VM) compileCell(v int) {
	h := vm.here()
	vm.storeCell(h, v)
	vm.setHere(h + mem.CellSize)
}

// compileByte appends one byte to the dictionary at HERE — `C,`.
func (vm *VM) compileByte(b byte) {
	h := vm.here()
	vm.store8(h, b)
	vm.setHere(h + 1)
}

// align rounds HERE up to a cell boundary — ALIGN.
func (vm *VM) align() {
	h := vm.here()
	if r := h % mem.CellSize; r != 0 {
		vm.setHere(h + (mem.CellSize - r))
	}
}

// Alloc bumps HERE by n bytes (cell-aligned first) and returns the
// starting address, satisfying ccomp.Scratch so a hosted compiler can use
// the live VM's dictionary as its own scratch space rather than private
// Go memory, per the bootstrap's single-writer-per-region discipline.
func (vm *VM) Alloc(n int) (uint, error) {
	vm.align()
	addr := vm.here()
	vm.allot(n)
	return addr, nil
}

func (vm *VM) allot(n int) {
	h := int(vm.here())
	h += n
	if h < 0 {
		vm.halt(errDictOverflow)
	}
	vm.setHere(uint(h))
}

// dictEntry describes a parsed dictionary header, read back out of the
// byte-addressable region for lookup and introspection.
type dictEntry struct {
	addr  uint // entry start (the link cell)
	link  uint
	flags byte
	name  string
	cfa   uint // code field address
}

func (vm *VM) readEntry(addr uint) dictEntry {
	link := uint(vm.loadCell(addr))
	flagsLen := vm.load8(addr + mem.CellSize)
	n := int(flagsLen & flagLenMask)
	nameAddr := addr + mem.CellSize + 1
	buf := make([]byte, n)
	vm.haltif(vm.mem.LoadBytes(nameAddr, buf))
	cfa := alignUp(nameAddr + uint(n))
	return dictEntry{addr: addr, link: link, flags: flagsLen, name: string(buf), cfa: cfa}
}

func alignUp(addr uint) uint {
	if r := addr % mem.CellSize; r != 0 {
		addr += mem.CellSize - r
	}
	return addr
}

// compileHeader appends a new (hidden) dictionary header for name, leaving
// HERE at the start of its code field. Callers compile the code field and
// any parameter-field cells immediately after.
func (vm *VM) compileHeader(name string) dictEntry {
	if len(name) > maxNameLen {
		name = name[:maxNameLen]
	}
	addr := vm.here()
	vm.compileCell(int(vm.latest()))
	vm.compileByte(byte(len(name)) | flagHidden)
	for i := 0; i < len(name); i++ {
		vm.compileByte(name[i])
	}
	vm.align()
	vm.setLatest(addr)
	return vm.readEntry(addr)
}

// reveal clears HIDDEN on the entry at addr — the effect of `;`.
func (vm *VM) reveal(addr uint) {
	flagsAddr := addr + mem.CellSize
	f := vm.load8(flagsAddr)
	vm.store8(flagsAddr, f&^flagHidden)
}

func (vm *VM) setImmediate(addr uint) {
	flagsAddr := addr + mem.CellSize
	f := vm.load8(flagsAddr)
	vm.store8(flagsAddr, f|flagImmediate)
}

// lookup performs the spec's backward linear scan from LATEST, case-folding
// both sides, skipping HIDDEN entries (a word being defined is invisible to
// lookups of its own body until `;` reveals it — matching the bootstrap's
// append-only, self-referential dictionary).
func (vm *VM) lookup(name string) (dictEntry, bool) {
	upper := strings.ToUpper(name)
	for addr := vm.latest(); addr != 0; {
		ent := vm.readEntry(addr)
		if ent.flags&flagHidden == 0 && strings.ToUpper(ent.name) == upper {
			return ent, true
		}
		addr = ent.link
	}
	return dictEntry{}, false
}

// defineBuiltin registers a primitive both in the Go-side dispatch table and
// as a dictionary entry, mirroring the teacher's compileBuiltins loop: each
// builtin gets a normal header (immediate ones additionally flagged) whose
// code field is the primitive's 1-based table index.
func (vm *VM) defineBuiltin(name string, immediate bool, fn func(vm *VM) error) {
	idx := len(vm.primitives)
	vm.primitives = append(vm.primitives, primitive{name: name, immediate: immediate, fn: fn})
	vm.primIndex[strings.ToUpper(name)] = idx

	ent := vm.compileHeader(name)
	vm.compileCell(idx + 1) // code field: primitive dispatch marker
	vm.reveal(ent.addr)
	if immediate {
		vm.setImmediate(ent.addr)
	}
}
