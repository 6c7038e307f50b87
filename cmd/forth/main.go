package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"trustboot/internal/forth"
)

func main() {
	var timeout time.Duration
	var trace bool
	var memLimit int
	var noExtensions bool
	flag.DurationVar(&timeout, "timeout", 0, "specify a time limit")
	flag.BoolVar(&trace, "trace", false, "enable trace logging")
	flag.IntVar(&memLimit, "mem-limit", 0, "enable memory limit")
	flag.BoolVar(&noExtensions, "no-extensions", false, "skip preloading the Forth Extensions")
	flag.Parse()

	opts := []forth.Option{
		forth.WithInput(os.Stdin),
		forth.WithOutput(os.Stdout),
	}
	if trace {
		opts = append(opts, forth.WithLogf(log.Printf))
	}
	if memLimit != 0 {
		opts = append(opts, forth.WithMemLimit(uint(memLimit)))
	}
	if noExtensions {
		opts = append(opts, forth.WithNoExtensions())
	}
	vm := forth.New(opts...)

	errch := make(chan error, 1)
	go func() { errch <- vm.Run() }()

	var err error
	if timeout != 0 {
		select {
		case err = <-errch:
		case <-time.After(timeout):
			err = fmt.Errorf("forth: timed out after %v", timeout)
		}
	} else {
		err = <-errch
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %+v\n", err)
		os.Exit(1)
	}
}
