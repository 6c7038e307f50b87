package ccomp

import "io"

// Option configures a Compile call at invocation time, following the
// teacher's functional-options idiom (internal/forth.Option).
type Option interface{ apply(c *config) }

type config struct {
	scratch Scratch
	trace   io.Writer
}

// Options composes a slice of Option into one, filtering nils.
func Options(opts ...Option) Option { return optionSlice(opts) }

type optionSlice []Option

func (opts optionSlice) apply(c *config) {
	for _, opt := range opts {
		if opt != nil {
			opt.apply(c)
		}
	}
}

// WithScratch backs the compiler's name-allocation needs with scratch,
// e.g. a live internal/forth.VM's own dictionary, per §9's "compiler
// shares the Forth VM's dictionary as its own scratch space". Omitting
// this option falls back to a private in-process buffer.
func WithScratch(s Scratch) Option { return scratchOption{s} }

// WithTrace writes one line per generated label to w, mirroring the
// teacher's WithLogf trace hook, scaled down to this package's single
// diagnostic: label allocation during code generation.
func WithTrace(w io.Writer) Option { return traceOption{w} }

type scratchOption struct{ Scratch }
type traceOption struct{ io.Writer }

func (o scratchOption) apply(c *config) { c.scratch = o.Scratch }
func (o traceOption) apply(c *config)   { c.trace = o.Writer }
