package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"trustboot/internal/pipeline"
)

func main() {
	ctx := context.Background()

	var timeout time.Duration
	var trace bool
	var memLimit int
	var noExtensions bool
	flag.DurationVar(&timeout, "timeout", 0, "specify a time limit")
	flag.BoolVar(&trace, "trace", false, "enable trace logging")
	flag.IntVar(&memLimit, "mem-limit", 0, "enable memory limit")
	flag.BoolVar(&noExtensions, "no-extensions", false, "skip preloading the Forth Extensions")
	flag.Parse()

	var opts []pipeline.Option
	if trace {
		opts = append(opts, pipeline.WithLogf(log.Printf), pipeline.WithCCTrace(os.Stderr))
	}
	if memLimit != 0 {
		opts = append(opts, pipeline.WithMemLimit(uint(memLimit)))
	}
	if noExtensions {
		opts = append(opts, pipeline.WithNoExtensions())
	}

	if timeout != 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	if err := pipeline.Run(ctx, os.Stdin, os.Stdout, opts...); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %+v\n", err)
		os.Exit(1)
	}
}
