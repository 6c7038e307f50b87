package ccomp

import (
	"bytes"
	"io"
)

// Compile reads a translation unit from r, lexes, parses, and generates
// ARM64 assembly text to w, per spec.md §4.C. On the first compile
// error it writes the four-byte diagnostic `ERR\n` to w instead of any
// partial assembly and returns the error, matching §7's "Compile error
// (any) → Compiler → Emit ERR, abort" — there is no partial output and
// no recovery.
func Compile(r io.Reader, w io.Writer, opts ...Option) error {
	var cfg config
	Options(opts...).apply(&cfg)

	prog, err := parseProgram(r)
	if err != nil {
		io.WriteString(w, "ERR\n")
		return err
	}

	var asm bytes.Buffer
	if err := Generate(&asm, prog, &cfg); err != nil {
		io.WriteString(w, "ERR\n")
		return err
	}
	_, err = w.Write(asm.Bytes())
	return err
}

func parseProgram(r io.Reader) (*Program, error) {
	lx := NewLexer(r)
	p, err := NewParser(lx)
	if err != nil {
		return nil, err
	}
	return p.ParseProgram()
}
