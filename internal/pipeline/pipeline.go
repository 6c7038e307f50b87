package pipeline

import (
	"context"
	"io"
	"strings"

	"golang.org/x/sync/errgroup"

	"trustboot/internal/forth"
	"trustboot/internal/loader"
	"trustboot/internal/panicerr"
)

// trampoline is the one word of Forth source the combined pipeline
// appends after the Forth Extensions and before the raw C source: it
// hands the rest of stdin to the hosted C compiler, per spec.md §2's
// "the VM then reads its own stdin as Forth source and evaluates E
// followed by C".
const trampoline = "COMPILE-C\n"

// Run wires L→F→(E then C) over one io.Reader, exactly matching spec.md
// §2's control-flow paragraph: the Loader consumes stdin's hex prefix up
// to and including the sentinel byte and transfers control to its JIT
// region, then the same underlying reader is handed to a fresh Forth VM,
// which evaluates the Forth Extensions followed by the trampoline word
// that delegates to the C compiler for whatever source remains. Each
// stage runs to completion, strictly sequentially, before the next
// starts; golang.org/x/sync/errgroup only isolates each stage's
// panic/goroutine boundary uniformly via internal/panicerr, matching
// §7's "exit status is that of the innermost layer to fail".
func Run(ctx context.Context, in io.Reader, out io.Writer, opts ...Option) error {
	var cfg config
	Options(opts...).apply(&cfg)

	ld := newLoader(cfg)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return panicerr.Recover("loader", func() error {
			_, err := ld.Run(gctx, in)
			return err
		})
	})
	if err := g.Wait(); err != nil {
		return err
	}

	vm := newVM(cfg, ld.Remainder(), out)

	g2, _ := errgroup.WithContext(ctx)
	g2.Go(vm.Run)
	return g2.Wait()
}

func newLoader(cfg config) *loader.Loader {
	var opts []loader.Option
	if cfg.regionSize > 0 {
		opts = append(opts, loader.WithMemLimit(cfg.regionSize))
	}
	if cfg.logfn != nil {
		opts = append(opts, loader.WithLogf(cfg.logfn))
	}
	return loader.New(opts...)
}

func newVM(cfg config, rest io.Reader, out io.Writer) *forth.VM {
	full := io.MultiReader(strings.NewReader(trampoline), rest)
	opts := []forth.Option{
		forth.WithInput(full),
		forth.WithOutput(out),
	}
	if cfg.memLimit > 0 {
		opts = append(opts, forth.WithMemLimit(cfg.memLimit))
	}
	if cfg.noExtensions {
		opts = append(opts, forth.WithNoExtensions())
	}
	if cfg.logfn != nil {
		opts = append(opts, forth.WithLogf(cfg.logfn))
	}
	if cfg.ccTrace != nil {
		opts = append(opts, forth.WithCCTrace(cfg.ccTrace))
	}
	return forth.New(opts...)
}
