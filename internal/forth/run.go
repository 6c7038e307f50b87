package forth

import (
	"errors"

	"trustboot/internal/panicerr"
)

// Run interprets input to EOF (the common case, returning nil) or until a
// halt — either BYE or a fatal runtime error — unwinds the VM via panic.
// Recovery goes through panicerr.Recover, the same panic-as-error-boundary
// isolation the rest of this module's stages use, so a VM failure surfaces
// as an ordinary error rather than crashing whatever embeds it.
func (vm *VM) Run() error {
	err := panicerr.Recover("forth", func() error {
		vm.Interpret()
		return nil
	})

	var he haltError
	if errors.As(err, &he) {
		return he.error
	}
	return err
}
