package pipeline

import "io"

// Option configures a Run call, following the same functional-options
// idiom as internal/forth.Option and internal/loader.Option.
type Option interface{ apply(cfg *config) }

type config struct {
	regionSize   int
	memLimit     uint
	noExtensions bool
	logfn        func(mess string, args ...interface{})
	ccTrace      io.Writer
}

// Options composes a slice of Option into one, filtering nils.
func Options(opts ...Option) Option { return optionSlice(opts) }

type optionSlice []Option

func (opts optionSlice) apply(cfg *config) {
	for _, opt := range opts {
		if opt != nil {
			opt.apply(cfg)
		}
	}
}

// WithRegionSize overrides the Loader's JIT region size, passed through
// to internal/loader.WithMemLimit.
func WithRegionSize(n int) Option { return regionSizeOption(n) }

// WithMemLimit caps the Forth VM's dictionary memory growth.
func WithMemLimit(n uint) Option { return memLimitOption(n) }

// WithNoExtensions skips preloading the Forth Extensions source, leaving
// the C compiler's Forth-hosted trampoline as the only thing besides the
// bare primitives available on the VM's input.
func WithNoExtensions() Option { return noExtensionsOption{} }

// WithLogf installs a trace sink shared by the Loader and the Forth VM.
func WithLogf(logfn func(mess string, args ...interface{})) Option { return logfOption(logfn) }

// WithCCTrace installs a diagnostic sink for the C compiler's label
// allocation trace, forwarded to internal/forth.WithCCTrace.
func WithCCTrace(w io.Writer) Option { return ccTraceOption{w} }

type regionSizeOption int
type memLimitOption uint
type noExtensionsOption struct{}
type logfOption func(mess string, args ...interface{})
type ccTraceOption struct{ io.Writer }

func (n regionSizeOption) apply(cfg *config)    { cfg.regionSize = int(n) }
func (n memLimitOption) apply(cfg *config)      { cfg.memLimit = uint(n) }
func (noExtensionsOption) apply(cfg *config)    { cfg.noExtensions = true }
func (f logfOption) apply(cfg *config)          { cfg.logfn = f }
func (o ccTraceOption) apply(cfg *config)       { cfg.ccTrace = o.Writer }
