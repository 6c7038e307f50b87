package forth

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_VM_compileCTrampolineEmitsAssembly(t *testing.T) {
	_, out, err := runVM(t, "COMPILE-C\nint main() { return 0; }")
	require.NoError(t, err)
	require.Contains(t, out, ".global _main")
	require.Contains(t, out, "_main:")
}

func Test_VM_compileCErrorHaltsWithERR(t *testing.T) {
	_, out, err := runVM(t, "COMPILE-C\nint main() { return x; }")
	require.Error(t, err)
	require.Equal(t, "ERR\n", out)
}

func Test_VM_compileCUsesVMDictionaryAsScratch(t *testing.T) {
	before := New(WithInput(strings.NewReader("")), WithOutput(&bytes.Buffer{})).here()
	vm := New(WithInput(strings.NewReader("COMPILE-C\nint f() { int a; return a; }")), WithOutput(&bytes.Buffer{}))
	require.NoError(t, vm.Run())
	require.Greater(t, vm.here(), before, "declaring a local must grow the VM's own dictionary via Alloc")
}

func Test_VM_compileCTraceGoesToCCTrace(t *testing.T) {
	var trace bytes.Buffer
	_, _, err := runVM(t, "COMPILE-C\nint f() { return 0; }", WithCCTrace(&trace))
	require.NoError(t, err)
	require.Contains(t, trace.String(), "f:")
}
