package ccomp

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_Compile_success(t *testing.T) {
	var out bytes.Buffer
	err := Compile(bytes.NewReader([]byte("int main() { return 0; }")), &out)
	require.NoError(t, err)
	require.Contains(t, out.String(), ".global _main")
	require.NotContains(t, out.String(), "ERR")
}

func Test_Compile_lexErrorEmitsERR(t *testing.T) {
	var out bytes.Buffer
	err := Compile(bytes.NewReader([]byte("int main() { @ }")), &out)
	require.Error(t, err)
	require.Equal(t, "ERR\n", out.String())
}

func Test_Compile_parseErrorEmitsERR(t *testing.T) {
	var out bytes.Buffer
	err := Compile(bytes.NewReader([]byte("int main() { return 1 }")), &out)
	require.Error(t, err)
	require.Equal(t, "ERR\n", out.String())
}

func Test_Compile_codegenErrorEmitsERRNotPartialAssembly(t *testing.T) {
	var out bytes.Buffer
	err := Compile(bytes.NewReader([]byte("int main() { return x; }")), &out)
	require.Error(t, err)
	require.Equal(t, "ERR\n", out.String(), "must not leak any assembly generated before the error")
}

func Test_Compile_usesScratchOption(t *testing.T) {
	rs := &recordingScratch{}
	var out bytes.Buffer
	err := Compile(bytes.NewReader([]byte("int f() { int a; return a; }")), &out, WithScratch(rs))
	require.NoError(t, err)
	require.Equal(t, []int{1}, rs.calls)
}

func Test_Compile_multipleFunctions(t *testing.T) {
	var out bytes.Buffer
	err := Compile(bytes.NewReader([]byte(
		"int add(int a, int b) { return a + b; }\n"+
			"int main() { return add(1, 2); }",
	)), &out)
	require.NoError(t, err)
	require.Contains(t, out.String(), "_add:")
	require.Contains(t, out.String(), "_main:")
	require.Contains(t, out.String(), "bl _add")
}
