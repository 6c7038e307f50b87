package forth

// builtins lists every word compiled into a fresh VM's dictionary at init
// time, in definition order (so LATEST's backward scan finds later entries
// first, matching the bootstrap's shadowing rules). Each entry is both a Go
// dispatch target and, via defineBuiltin, a real dictionary header.
var builtins = []primitive{
	// inner interpreter primitives, exercised directly by executeXT.
	{"EXIT", false, opExit},
	{"LIT", false, opLit},
	{"BRANCH", false, opBranch},
	{"0BRANCH", false, op0Branch},
	{"EXECUTE", false, opExecute},

	// outer interpreter / compiling words.
	{":", false, opColon},
	{";", true, opSemi},
	{"IMMEDIATE", true, opImmediateWord},
	{"'", false, opTick},
	{"[']", true, opBracketTick},
	{"[", true, opLeftBracket},
	{"]", false, opRightBracket},

	// stack manipulation.
	{"DROP", false, opDrop},
	{"DUP", false, opDup},
	{"?DUP", false, opQDup},
	{"SWAP", false, opSwap},
	{"OVER", false, opOver},
	{"ROT", false, opRot},
	{"NIP", false, opNip},
	{"TUCK", false, opTuck},
	{"2DUP", false, op2Dup},
	{"2DROP", false, op2Drop},
	{"2SWAP", false, op2Swap},
	{"PICK", false, opPick},
	{"DEPTH", false, opDepth},
	{">R", false, opToR},
	{"R>", false, opFromR},
	{"R@", false, opRFetch},
	{"RDROP", false, opRDrop},

	// arithmetic and bitwise.
	{"+", false, opAdd},
	{"-", false, opSub},
	{"*", false, opMul},
	{"/", false, opDiv},
	{"MOD", false, opMod},
	{"/MOD", false, opDivMod},
	{"NEGATE", false, opNegate},
	{"ABS", false, opAbs},
	{"1+", false, opIncr},
	{"1-", false, opDecr},
	{"2*", false, opShl1},
	{"2/", false, opShr1},
	{"CELLS", false, opCells},
	{"MIN", false, opMin},
	{"MAX", false, opMax},
	{"AND", false, opAnd},
	{"OR", false, opOr},
	{"XOR", false, opXor},
	{"INVERT", false, opInvert},
	{"LSHIFT", false, opLshift},
	{"RSHIFT", false, opRshift},

	// comparisons: canonical Forth booleans, all-bits-set true / zero false.
	{"=", false, opEq},
	{"<>", false, opNe},
	{"<", false, opLt},
	{">", false, opGt},
	{"<=", false, opLe},
	{">=", false, opGe},
	{"0=", false, opZeroEq},
	{"0<>", false, opZeroNe},
	{"0<", false, opZeroLt},
	{"0>", false, opZeroGt},

	// memory access.
	{"@", false, opFetch},
	{"!", false, opStore},
	{"C@", false, opCFetch},
	{"C!", false, opCStore},
	{"+!", false, opPlusStore},
	{"FILL", false, opFill},
	{"CMOVE", false, opCMove},

	// I/O.
	{"EMIT", false, opEmit},
	{"KEY", false, opKey},
	{"TYPE", false, opType},
	{".", false, opDot},
	{"SPACE", false, opSpace},
	{"CR", false, opCR},

	// dictionary / compilation state.
	{"HERE", false, opHere},
	{"LATEST", false, opLatest},
	{"STATE", false, opStateFetch},
	{"BASE", false, opBaseFetch},
	{",", false, opComma},
	{"C,", false, opCComma},
	{"ALLOT", false, opAllot},
	{"ALIGN", false, opAlign},

	{"BYE", false, opBye},

	// comments and string literals: all four read past the normal
	// whitespace-delimited word boundary, so each must run immediately
	// regardless of Interpret/Compile state to do its own scanning.
	{"\\", true, opBackslash},
	{"(", true, opParen},
	{"S\"", true, opSQuote},
	{".\"", true, opDotQuote},
}

func boolCell(b bool) int {
	if b {
		return -1
	}
	return 0
}

// --- stack manipulation ---

func opDrop(vm *VM) error { vm.pop(); return nil }
func opDup(vm *VM) error  { v := vm.pop(); vm.push(v); vm.push(v); return nil }

func opQDup(vm *VM) error {
	v := vm.pop()
	vm.push(v)
	if v != 0 {
		vm.push(v)
	}
	return nil
}

func opSwap(vm *VM) error {
	b, a := vm.pop(), vm.pop()
	vm.push(b)
	vm.push(a)
	return nil
}

func opOver(vm *VM) error {
	b, a := vm.pop(), vm.pop()
	vm.push(a)
	vm.push(b)
	vm.push(a)
	return nil
}

func opRot(vm *VM) error {
	c, b, a := vm.pop(), vm.pop(), vm.pop()
	vm.push(b)
	vm.push(c)
	vm.push(a)
	return nil
}

func opNip(vm *VM) error {
	b, a := vm.pop(), vm.pop()
	_ = a
	vm.push(b)
	return nil
}

func opTuck(vm *VM) error {
	b, a := vm.pop(), vm.pop()
	vm.push(b)
	vm.push(a)
	vm.push(b)
	return nil
}

func op2Dup(vm *VM) error {
	b, a := vm.pop(), vm.pop()
	vm.push(a)
	vm.push(b)
	vm.push(a)
	vm.push(b)
	return nil
}

func op2Drop(vm *VM) error { vm.pop(); vm.pop(); return nil }

func op2Swap(vm *VM) error {
	d, c, b, a := vm.pop(), vm.pop(), vm.pop(), vm.pop()
	vm.push(c)
	vm.push(d)
	vm.push(a)
	vm.push(b)
	return nil
}

func opPick(vm *VM) error { vm.push(vm.pick(vm.pop())); return nil }
func opDepth(vm *VM) error { vm.push(vm.depth()); return nil }

func opToR(vm *VM) error    { vm.rpush(vm.pop()); return nil }
func opFromR(vm *VM) error  { vm.push(vm.rpop()); return nil }
func opRFetch(vm *VM) error { vm.push(vm.rpeek()); return nil }
func opRDrop(vm *VM) error  { vm.rpop(); return nil }

// --- arithmetic and bitwise ---

func opAdd(vm *VM) error { b, a := vm.pop(), vm.pop(); vm.push(a + b); return nil }
func opSub(vm *VM) error { b, a := vm.pop(), vm.pop(); vm.push(a - b); return nil }
func opMul(vm *VM) error { b, a := vm.pop(), vm.pop(); vm.push(a * b); return nil }

func opDiv(vm *VM) error {
	b, a := vm.pop(), vm.pop()
	if b == 0 {
		return errDivByZero
	}
	vm.push(floorDiv(a, b))
	return nil
}

func opMod(vm *VM) error {
	b, a := vm.pop(), vm.pop()
	if b == 0 {
		return errDivByZero
	}
	vm.push(floorMod(a, b))
	return nil
}

func opDivMod(vm *VM) error {
	b, a := vm.pop(), vm.pop()
	if b == 0 {
		return errDivByZero
	}
	vm.push(floorMod(a, b))
	vm.push(floorDiv(a, b))
	return nil
}

// floorDiv and floorMod give Forth's floored-division semantics, as opposed
// to Go's truncated-toward-zero / and %.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	r := a % b
	if r != 0 && (r < 0) != (b < 0) {
		r += b
	}
	return r
}

func opNegate(vm *VM) error { vm.push(-vm.pop()); return nil }

func opAbs(vm *VM) error {
	v := vm.pop()
	if v < 0 {
		v = -v
	}
	vm.push(v)
	return nil
}

func opIncr(vm *VM) error { vm.push(vm.pop() + 1); return nil }
func opDecr(vm *VM) error { vm.push(vm.pop() - 1); return nil }
func opShl1(vm *VM) error { vm.push(vm.pop() << 1); return nil }
func opShr1(vm *VM) error { vm.push(vm.pop() >> 1); return nil }

func opCells(vm *VM) error { vm.push(vm.pop() * cellSizeInt); return nil }

func opMin(vm *VM) error {
	b, a := vm.pop(), vm.pop()
	if a < b {
		vm.push(a)
	} else {
		vm.push(b)
	}
	return nil
}

func opMax(vm *VM) error {
	b, a := vm.pop(), vm.pop()
	if a > b {
		vm.push(a)
	} else {
		vm.push(b)
	}
	return nil
}

func opAnd(vm *VM) error    { b, a := vm.pop(), vm.pop(); vm.push(a & b); return nil }
func opOr(vm *VM) error     { b, a := vm.pop(), vm.pop(); vm.push(a | b); return nil }
func opXor(vm *VM) error    { b, a := vm.pop(), vm.pop(); vm.push(a ^ b); return nil }
func opInvert(vm *VM) error { vm.push(^vm.pop()); return nil }
func opLshift(vm *VM) error { n, a := vm.pop(), vm.pop(); vm.push(a << uint(n)); return nil }
func opRshift(vm *VM) error { n, a := vm.pop(), vm.pop(); vm.push(int(uint(a) >> uint(n))); return nil }

// --- comparisons ---

func opEq(vm *VM) error  { b, a := vm.pop(), vm.pop(); vm.push(boolCell(a == b)); return nil }
func opNe(vm *VM) error  { b, a := vm.pop(), vm.pop(); vm.push(boolCell(a != b)); return nil }
func opLt(vm *VM) error  { b, a := vm.pop(), vm.pop(); vm.push(boolCell(a < b)); return nil }
func opGt(vm *VM) error  { b, a := vm.pop(), vm.pop(); vm.push(boolCell(a > b)); return nil }
func opLe(vm *VM) error  { b, a := vm.pop(), vm.pop(); vm.push(boolCell(a <= b)); return nil }
func opGe(vm *VM) error  { b, a := vm.pop(), vm.pop(); vm.push(boolCell(a >= b)); return nil }

func opZeroEq(vm *VM) error { vm.push(boolCell(vm.pop() == 0)); return nil }
func opZeroNe(vm *VM) error { vm.push(boolCell(vm.pop() != 0)); return nil }
func opZeroLt(vm *VM) error { vm.push(boolCell(vm.pop() < 0)); return nil }
func opZeroGt(vm *VM) error { vm.push(boolCell(vm.pop() > 0)); return nil }

// --- memory access ---

func opFetch(vm *VM) error { vm.push(vm.loadCell(uint(vm.pop()))); return nil }

func opStore(vm *VM) error {
	addr := uint(vm.pop())
	v := vm.pop()
	vm.storeCell(addr, v)
	return nil
}

func opCFetch(vm *VM) error { vm.push(int(vm.load8(uint(vm.pop())))); return nil }

func opCStore(vm *VM) error {
	addr := uint(vm.pop())
	v := vm.pop()
	vm.store8(addr, byte(v))
	return nil
}

func opPlusStore(vm *VM) error {
	addr := uint(vm.pop())
	n := vm.pop()
	vm.storeCell(addr, vm.loadCell(addr)+n)
	return nil
}

func opFill(vm *VM) error {
	v := byte(vm.pop())
	n := vm.pop()
	addr := uint(vm.pop())
	if n <= 0 {
		return nil
	}
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = v
	}
	return vm.mem.StoreBytes(addr, buf)
}

func opCMove(vm *VM) error {
	n := vm.pop()
	dst := uint(vm.pop())
	src := uint(vm.pop())
	if n <= 0 {
		return nil
	}
	buf := make([]byte, n)
	if err := vm.mem.LoadBytes(src, buf); err != nil {
		return err
	}
	return vm.mem.StoreBytes(dst, buf)
}

// --- I/O ---

func opEmit(vm *VM) error { return vm.writeByte(byte(vm.pop())) }

func opKey(vm *VM) error {
	r, err := vm.readRune()
	vm.haltif(ignoreEOF(err))
	if err != nil {
		vm.push(-1)
		return nil
	}
	vm.push(int(r))
	return nil
}

func opType(vm *VM) error {
	n := vm.pop()
	addr := uint(vm.pop())
	if n <= 0 {
		return nil
	}
	buf := make([]byte, n)
	if err := vm.mem.LoadBytes(addr, buf); err != nil {
		return err
	}
	return vm.writeString(string(buf))
}

func opDot(vm *VM) error {
	return vm.writeString(formatCell(vm.pop(), vm.base()))
}

func opSpace(vm *VM) error { return vm.writeByte(' ') }
func opCR(vm *VM) error    { return vm.writeByte('\n') }

// --- dictionary / compilation state ---

func opHere(vm *VM) error        { vm.push(int(vm.here())); return nil }
func opLatest(vm *VM) error      { vm.push(int(vm.latest())); return nil }
func opStateFetch(vm *VM) error  { vm.push(vm.state()); return nil }
func opBaseFetch(vm *VM) error   { vm.push(vm.base()); return nil }
func opComma(vm *VM) error       { vm.compileCell(vm.pop()); return nil }
func opCComma(vm *VM) error      { vm.compileByte(byte(vm.pop())); return nil }
func opAllot(vm *VM) error       { vm.allot(vm.pop()); return nil }
func opAlign(vm *VM) error       { vm.align(); return nil }

func opBye(vm *VM) error { return errHalt }

// --- comments and string literals ---

// opBackslash implements `\`: discard through end of line.
func opBackslash(vm *VM) error {
	vm.scanUntil('\n')
	return nil
}

// opParen implements `(`: discard through the closing paren.
func opParen(vm *VM) error {
	vm.scanUntil(')')
	return nil
}

// storeString appends s's bytes at HERE and returns the starting address,
// the same dictionary-as-scratch-space storage ALLOT/`,` use, so quoted
// strings live in the one memory region everything else does. In Compile
// state the bytes land inside the definition's thread, so a BRANCH over
// them is compiled first and they are never executed as XTs.
func (vm *VM) storeString(s string) uint {
	var at uint
	inThread := vm.state() == stateCompile
	if inThread {
		br, ok := vm.lookup("BRANCH")
		if !ok {
			vm.halt(unknownWordError("BRANCH"))
		}
		at = vm.here()
		vm.compileCell(int(br.cfa))
		vm.compileCell(0)
	}
	addr := vm.here()
	for i := 0; i < len(s); i++ {
		vm.compileByte(s[i])
	}
	vm.align()
	if inThread {
		vm.storeCell(at+uint(cellSizeInt), int(vm.here()-at))
	}
	return addr
}

// opSQuote implements S" ( -- addr len ): in Interpret state the string is
// stored and its address/length pushed now; in Compile state two LITs are
// compiled so the same addr/length are pushed each time the definition runs.
func opSQuote(vm *VM) error {
	s, _ := vm.scanUntil('"')
	addr := vm.storeString(s)
	if vm.state() == stateCompile {
		vm.compileLiteral(int(addr))
		vm.compileLiteral(len(s))
		return nil
	}
	vm.push(int(addr))
	vm.push(len(s))
	return nil
}

// opDotQuote implements ." ( -- ): prints the string now when interpreting,
// or compiles a literal addr/len pair followed by a call to TYPE so the
// print happens each time the definition runs.
func opDotQuote(vm *VM) error {
	s, _ := vm.scanUntil('"')
	if vm.state() != stateCompile {
		return vm.writeString(s)
	}
	addr := vm.storeString(s)
	vm.compileLiteral(int(addr))
	vm.compileLiteral(len(s))
	ent, ok := vm.lookup("TYPE")
	if !ok {
		return unknownWordError("TYPE")
	}
	vm.compileCell(int(ent.cfa))
	return nil
}
