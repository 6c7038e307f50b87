package forth

// interpretWord implements the spec's Interpret-vs-Compile dispatch for a
// single scanned token. Looked-up words always run immediately in
// Interpret state; in Compile state, non-immediate words are appended to
// the definition in progress and immediate words still run immediately.
// Numeric literals are pushed directly when interpreting, or compiled as
// LIT n when compiling. An unresolved token is a diagnostic-and-continue in
// Interpret state, but fatal in Compile state.
func (vm *VM) interpretWord(token string) {
	if ent, ok := vm.lookup(token); ok {
		if vm.state() == stateCompile && ent.flags&flagImmediate == 0 {
			vm.compileCell(int(ent.cfa))
			return
		}
		vm.executeXT(ent.cfa)
		return
	}

	if n, ok := vm.parseNumber(token); ok {
		if vm.state() == stateCompile {
			vm.compileLiteral(n)
		} else {
			vm.push(n)
		}
		return
	}

	if vm.state() == stateCompile {
		vm.halt(unknownWordError(token))
		return
	}
	vm.logf("? %v", token)
}

// compileLiteral compiles `LIT n`: the cell for LIT's own code field
// followed by the literal value cell that opLit consumes.
func (vm *VM) compileLiteral(n int) {
	ent, ok := vm.lookup("LIT")
	if !ok {
		vm.halt(unknownWordError("LIT"))
		return
	}
	vm.compileCell(int(ent.cfa))
	vm.compileCell(n)
}

// Interpret runs the outer interpreter over whatever input remains,
// consuming tokens until EOF. It is the entry point both for the VM's own
// Run and for nested interpretation (e.g. evaluating the Forth extensions
// source before user input).
func (vm *VM) Interpret() {
	for {
		token, ok := vm.scanWord()
		if !ok {
			return
		}
		vm.interpretWord(token)
	}
}

func opColon(vm *VM) error {
	name, ok := vm.scanWord()
	if !ok {
		return errHalt
	}
	vm.compileHeader(name)
	vm.compileCell(codeDOCOL)
	vm.setState(stateCompile)
	return nil
}

func opSemi(vm *VM) error {
	exitEnt, ok := vm.lookup("EXIT")
	if !ok {
		return unknownWordError("EXIT")
	}
	vm.compileCell(int(exitEnt.cfa))
	vm.reveal(vm.latest())
	vm.setState(stateInterpret)
	return nil
}

func opImmediateWord(vm *VM) error {
	vm.setImmediate(vm.latest())
	return nil
}

// opTick implements ': read the next word and push its code-field address.
func opTick(vm *VM) error {
	name, ok := vm.scanWord()
	if !ok {
		return errHalt
	}
	ent, ok := vm.lookup(name)
	if !ok {
		return unknownWordError(name)
	}
	vm.push(int(ent.cfa))
	return nil
}

// opBracketTick implements ['] as an immediate word: at compile time, read
// the next word and compile its XT as a literal.
func opBracketTick(vm *VM) error {
	name, ok := vm.scanWord()
	if !ok {
		return errHalt
	}
	ent, ok := vm.lookup(name)
	if !ok {
		return unknownWordError(name)
	}
	vm.compileLiteral(int(ent.cfa))
	return nil
}

// opLeftBracket implements [: drop to Interpret state mid-definition.
func opLeftBracket(vm *VM) error {
	vm.setState(stateInterpret)
	return nil
}

// opRightBracket implements ]: return to Compile state.
func opRightBracket(vm *VM) error {
	vm.setState(stateCompile)
	return nil
}
