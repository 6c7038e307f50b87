package forth

import "trustboot/internal/ccomp"

// opCompileC implements COMPILE-C, the trampoline word the combined
// pipeline appends after preloading the Forth Extensions: it hands
// whatever remains of stdin to the C compiler, using the VM's own
// dictionary as the compiler's scratch space (per §9's "compiler shares
// the Forth VM's dictionary as its own scratch space") and the VM's
// output stream as the assembly sink. The compiler consumes input to
// EOF, so this word never returns to the outer interpreter; it halts the
// VM with whatever error (nil on success) the compile produced.
func opCompileC(vm *VM) error {
	r := vm.Input.AsReader()
	ccOpts := []ccomp.Option{ccomp.WithScratch(vm)}
	if vm.ccTrace != nil {
		ccOpts = append(ccOpts, ccomp.WithTrace(vm.ccTrace))
	}
	err := ccomp.Compile(r, vm.out, ccOpts...)
	vm.halt(err)
	return nil
}

func init() {
	builtins = append(builtins, primitive{"COMPILE-C", false, opCompileC})
}
