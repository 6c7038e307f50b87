package forth

import (
	"bytes"
	"fmt"
	"io"

	"trustboot/internal/fileinput"
	"trustboot/internal/flushio"
	"trustboot/internal/mem"
)

// VM is the Forth machine: memory, stacks, dictionary cursors, and the I/O
// core the inner and outer interpreters read and write through.
type VM struct {
	fileinput.Input
	out flushio.WriteFlusher

	logfn func(mess string, args ...interface{})

	mem      mem.Bytes
	memLimit uint

	stack  []int
	rstack []int

	ip       uint // instruction pointer: byte address of the next thread cell
	returned bool // set by EXIT when unwinding past a returnSentinel

	primitives []primitive
	primIndex  map[string]int

	// unread holds a single pushed-back byte for the word scanner, per the
	// one-byte unread-push slot the input head carries.
	unread    rune
	hasUnread bool

	noExtensions bool
	ccTrace      io.Writer
}

type primitive struct {
	name      string
	immediate bool
	fn        func(vm *VM) error
}

// New builds a VM with the given options applied over sane defaults: a nil
// input (immediate EOF), output discarded, default stack capacities, and
// the builtin dictionary compiled in.
func New(opts ...Option) *VM {
	vm := &VM{
		stack:  make([]int, 0, defaultParamStackCap),
		rstack: make([]int, 0, defaultReturnStackCap),
	}
	vm.mem.PageSize = mem.DefaultBytesPageSize
	defaultOptions.apply(vm)
	Options(opts...).apply(vm)

	// The memory limit is lifted while the builtin primitives are compiled
	// in and restored before New returns. preloadExtensions only queues the
	// Forth Extensions source, so its definitions are compiled when Run
	// reads them, with the limit in force.
	limit := vm.mem.Limit
	vm.mem.Limit = 0
	vm.init()
	if !vm.noExtensions {
		vm.preloadExtensions()
	}
	vm.mem.Limit = limit
	return vm
}

// preloadExtensions splices the Forth Extensions source in ahead of
// whatever input the VM was given, so IF/ELSE/THEN and the BEGIN loop
// shapes are available before the first user-supplied token is scanned.
func (vm *VM) preloadExtensions() {
	var buf bytes.Buffer
	if _, err := ExtensionsSource.WriteTo(&buf); err != nil {
		vm.halt(err)
	}
	vm.Input.Queue = append([]io.Reader{&buf}, vm.Input.Queue...)
}

func (vm *VM) init() {
	vm.mem.StoreCell(offState, stateInterpret)
	vm.mem.StoreCell(offHere, int(offDictSpace))
	vm.mem.StoreCell(offBase, 10)
	vm.mem.StoreCell(offLatest, 0)
	vm.primIndex = make(map[string]int, len(builtins))
	for _, b := range builtins {
		vm.defineBuiltin(b.name, b.immediate, b.fn)
	}
}

func (vm *VM) logf(mess string, args ...interface{}) {
	if vm.logfn == nil {
		return
	}
	if len(args) > 0 {
		mess = fmt.Sprintf(mess, args...)
	}
	vm.logfn("%v", mess)
}

func (vm *VM) halt(err error) {
	if vm.out != nil {
		if ferr := vm.out.Flush(); err == nil {
			err = ferr
		}
	}
	switch err {
	case nil, io.EOF:
		vm.logf("halt")
		panic(haltError{nil})
	default:
		vm.logf("halt error: %v", err)
		panic(haltError{err})
	}
}

func (vm *VM) haltif(err error) {
	if err != nil {
		vm.halt(err)
	}
}

func (vm *VM) writeByte(b byte) error {
	_, err := vm.out.Write([]byte{b})
	return err
}

func (vm *VM) writeString(s string) error {
	_, err := io.WriteString(vm.out, s)
	return err
}
