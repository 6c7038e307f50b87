package forth

import (
	"bytes"
	"io"
	"io/ioutil"

	"trustboot/internal/flushio"
	"trustboot/internal/fileinput"
)

func vmInput(r io.Reader) fileinput.Input {
	return fileinput.Input{Queue: []io.Reader{r}}
}

// Option configures a VM at construction time, following the teacher's
// functional-options idiom.
type Option interface{ apply(vm *VM) }

var defaultOptions = Options(
	withInput(bytes.NewReader(nil)),
	withOutput(ioutil.Discard),
)

// Options composes a slice of Option into one, filtering nils so callers
// may build a conditional option list without guarding every append.
func Options(opts ...Option) Option { return optionSlice(opts) }

type optionSlice []Option

func (opts optionSlice) apply(vm *VM) {
	for _, opt := range opts {
		if opt != nil {
			opt.apply(vm)
		}
	}
}

// WithInput sets the VM's stdin-equivalent source.
func WithInput(r io.Reader) Option { return withInput(r) }

// WithOutput sets the VM's stdout-equivalent sink.
func WithOutput(w io.Writer) Option { return withOutput(w) }

// WithTee additionally mirrors output to w, e.g. for capturing a trace
// alongside the real output stream.
func WithTee(w io.Writer) Option { return teeOption{w} }

// WithMemLimit caps dictionary memory growth; 0 (the default) means
// unlimited.
func WithMemLimit(limit uint) Option { return memLimitOption(limit) }

// WithLogf installs a trace sink; nil (the default) disables tracing.
func WithLogf(logfn func(mess string, args ...interface{})) Option { return withLogfn(logfn) }

// WithNoExtensions skips preloading the Forth Extensions source, leaving a
// VM with only the bare primitive dictionary — for auditing §4.F in
// isolation from §4.E.
func WithNoExtensions() Option { return noExtensionsOption{} }

type noExtensionsOption struct{}

func (noExtensionsOption) apply(vm *VM) { vm.noExtensions = true }

// WithCCTrace installs a diagnostic sink that COMPILE-C forwards to the
// hosted C compiler as its own trace output (see internal/ccomp's
// WithTrace), for auditing label allocation during the combined pipeline
// without touching the VM's own -trace stream.
func WithCCTrace(w io.Writer) Option { return ccTraceOption{w} }

type ccTraceOption struct{ io.Writer }

func (o ccTraceOption) apply(vm *VM) { vm.ccTrace = o.Writer }

type inputOption struct{ io.Reader }
type outputOption struct{ io.Writer }
type teeOption struct{ io.Writer }
type memLimitOption uint
type withLogfn func(mess string, args ...interface{})

func withInput(r io.Reader) inputOption   { return inputOption{r} }
func withOutput(w io.Writer) outputOption { return outputOption{w} }

func (o inputOption) apply(vm *VM) {
	vm.Input = vmInput(o.Reader)
}

func (o outputOption) apply(vm *VM) {
	if vm.out != nil {
		vm.out.Flush()
	}
	vm.out = flushio.NewWriteFlusher(o.Writer)
}

func (o teeOption) apply(vm *VM) {
	vm.out = flushio.WriteFlushers(vm.out, flushio.NewWriteFlusher(o.Writer))
}

func (lim memLimitOption) apply(vm *VM) {
	vm.memLimit = uint(lim)
	vm.mem.Limit = uint(lim)
}

func (logfn withLogfn) apply(vm *VM) {
	vm.logfn = logfn
}
