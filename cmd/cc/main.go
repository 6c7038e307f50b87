package main

import (
	"flag"
	"fmt"
	"os"

	"trustboot/internal/ccomp"
)

func main() {
	var trace bool
	flag.BoolVar(&trace, "trace", false, "emit compiler-internal diagnostics to stderr")
	flag.Parse()

	var opts []ccomp.Option
	if trace {
		opts = append(opts, ccomp.WithTrace(os.Stderr))
	}

	if err := ccomp.Compile(os.Stdin, os.Stdout, opts...); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %+v\n", err)
		os.Exit(1)
	}
}
