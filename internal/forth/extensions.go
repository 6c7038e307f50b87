package forth

import (
	"bytes"
	"io"
)

// ExtensionsSource is the Forth Extensions layer: everything above the bare
// primitive dictionary that can be written in Forth itself rather than Go,
// kept as data so it can be embedded, traced, or skipped (-no-extensions)
// without touching the VM's Go code. It defines the control-flow words the
// bulk of any real program needs — IF/ELSE/THEN, the three BEGIN loop
// shapes, [COMPILE] — plus a handful of non-primitive defining and utility
// words built out of them.
var ExtensionsSource = extensionsSource{}

type extensionsSource struct{}

func (extensionsSource) Name() string { return "extensions.fs" }

// WriteTo renders the extensions as Forth source text, following the
// teacher's thirdSource.WriteTo shape: build up one line at a time into a
// scratch buffer and flush each as it completes, short-circuiting on the
// first write error.
func (extensionsSource) WriteTo(w io.Writer) (n int64, err error) {
	var buf bytes.Buffer
	line := func(parts ...string) {
		if err != nil {
			return
		}
		for i, s := range parts {
			if i > 0 {
				buf.WriteByte(' ')
			}
			buf.WriteString(s)
		}
		buf.WriteByte('\n')
		var m int64
		m, err = buf.WriteTo(w)
		n += m
	}

	// IF/ELSE/THEN compile around 0BRANCH/BRANCH, back-patching the branch
	// offset once the destination address is known. Per this machine's
	// branch convention the offset stored after a BRANCH/0BRANCH opcode is
	// relative to the opcode's own cell address, not the offset cell's —
	// so every patch computes (targetAddr - opcodeAddr) and stores it at
	// opcodeAddr+CELLS.
	line(`: IF immediate`, ` HERE ['] 0BRANCH , 0 ,`, `;`)
	line(`: THEN immediate`, ` DUP HERE SWAP - SWAP 8 + !`, `;`)
	line(`: ELSE immediate`,
		` HERE ['] BRANCH , 0 ,`,
		` SWAP`,
		` DUP HERE SWAP - SWAP 8 + !`,
		`;`)

	// BEGIN leaves the loop-top address on the stack for UNTIL/AGAIN/WHILE
	// to consume; it compiles nothing itself.
	line(`: BEGIN immediate`, ` HERE`, `;`)
	line(`: UNTIL immediate`, ` HERE ['] 0BRANCH , - ,`, `;`)
	line(`: AGAIN immediate`, ` HERE ['] BRANCH , - ,`, `;`)
	line(`: WHILE immediate`, ` HERE ['] 0BRANCH , 0 ,`, `;`)
	line(`: REPEAT immediate`,
		` SWAP HERE ['] BRANCH , - ,`,
		` DUP HERE SWAP - SWAP 8 + !`,
		`;`)

	// [COMPILE] forces compilation of an otherwise-immediate word, the
	// standard escape hatch for building one control word out of another.
	line(`: [COMPILE] immediate`, ` ' ,`, `;`)

	// A handful of utility words that need no special compile-time
	// behavior, just ordinary colon definitions over the primitive set.
	line(`: SPACES`, ` BEGIN DUP 0 > WHILE SPACE 1 - REPEAT DROP`, `;`)
	line(`: NOT`, ` 0=`, `;`)
	line(`: 2>R`, ` SWAP >R >R`, `;`)
	line(`: 2R>`, ` R> R> SWAP`, `;`)

	return n, err
}
