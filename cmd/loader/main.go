package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"trustboot/internal/loader"
)

func main() {
	var trace bool
	var memLimit int
	flag.BoolVar(&trace, "trace", false, "enable trace logging")
	flag.IntVar(&memLimit, "mem-limit", 0, "override the JIT region size in bytes")
	flag.Parse()

	var opts []loader.Option
	if trace {
		opts = append(opts, loader.WithLogf(log.Printf))
	}
	if memLimit != 0 {
		opts = append(opts, loader.WithMemLimit(memLimit))
	}
	ld := loader.New(opts...)

	code, err := ld.Run(context.Background(), os.Stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %+v\n", err)
		os.Exit(1)
	}
	os.Exit(int(code))
}
