package forth

import "trustboot/internal/mem"

// Memory layout constants, fixed byte offsets into the VM's single
// contiguous address space: STATE, HERE, BASE and LATEST each occupy one
// cell, followed by an input buffer, a word-scratch buffer, and dictionary
// space. No stack region is reserved in this address space: the return
// stack and the parameter stack are both Go slices (see stacks.go) — both
// stacks are described in the spec as fixed-capacity LIFOs
// addressed only through stack primitives, never through @/!, so modeling
// them as slices rather than mapping them into the byte-addressable region
// loses no addressable behavior while keeping push/pop allocation-free.
const (
	offState  = 0 * mem.CellSize
	offHere   = 1 * mem.CellSize
	offBase   = 2 * mem.CellSize
	offLatest = 3 * mem.CellSize

	offInputBuf = 4 * mem.CellSize
	inputBufLen = 256

	offWordBuf = offInputBuf + inputBufLen
	wordBufLen = 64

	offDictSpace = offWordBuf + wordBufLen

	// minDictSpace is the floor on dictionary space the memory-layout
	// contract demands (≥48KiB); Bytes pages grow on demand past it.
	minDictSpace = 48 * 1024
)

const (
	stateInterpret = 0
	stateCompile   = 1
)

// defaultParamStackCap and defaultReturnStackCap satisfy the ≥256 capacity
// floor for both stacks.
const (
	defaultParamStackCap  = 1024
	defaultReturnStackCap = 1024
)

// flag bits for a dictionary entry's flags+length byte.
const (
	flagImmediate = 0x80
	flagHidden    = 0x40
	flagLenMask   = 0x1F
	maxNameLen    = 0x1F
)

// codeDOCOL marks a dictionary entry's code field as a colon definition:
// execution continues into the parameter field as a thread of XTs. Any
// other code-field value is 1+primitive-table-index.
const codeDOCOL = 0

// cellSizeInt mirrors mem.CellSize as a plain int for use in arithmetic
// primitives (CELLS) that operate on the parameter stack's int values.
const cellSizeInt = int(mem.CellSize)
