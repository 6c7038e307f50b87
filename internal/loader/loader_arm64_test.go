//go:build arm64

package loader

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_Loader_runSealsAndCallsRetOpcode(t *testing.T) {
	ld := New(WithMemLimit(4096))
	_, err := ld.Run(context.Background(), strings.NewReader("c0035fd6`REST"))
	require.NoError(t, err)

	rest, err := io.ReadAll(ld.Remainder())
	require.NoError(t, err)
	require.Equal(t, "REST", string(rest))
}

func Test_Loader_runDiscardsCommentsAndWhitespace(t *testing.T) {
	ld := New(WithMemLimit(4096))
	_, err := ld.Run(context.Background(), strings.NewReader("; leading comment\nc0 03\n5f d6 `"))
	require.NoError(t, err)
}

func Test_Loader_runTwiceErrors(t *testing.T) {
	ld := New(WithMemLimit(4096))
	_, err := ld.Run(context.Background(), strings.NewReader("c0035fd6`"))
	require.NoError(t, err)

	_, err = ld.Run(context.Background(), strings.NewReader("c0035fd6`"))
	require.Error(t, err)
}
