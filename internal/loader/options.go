package loader

// Option configures a Loader at construction time, following the same
// functional-options idiom as internal/forth.Option.
type Option interface{ apply(ld *Loader) }

type memLimitOption int

func (n memLimitOption) apply(ld *Loader) { ld.regionSize = int(n) }

// WithMemLimit sets the JIT region's size in bytes, overriding
// DefaultRegionSize.
func WithMemLimit(n int) Option { return memLimitOption(n) }

type logfOption func(mess string, args ...interface{})

func (f logfOption) apply(ld *Loader) { ld.logfn = f }

// WithLogf installs a trace sink; nil (the default) disables tracing.
func WithLogf(logfn func(mess string, args ...interface{})) Option { return logfOption(logfn) }
