//go:build !arm64

package jitregion

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_Region_sealUnsupportedArch(t *testing.T) {
	r, err := NewRegion(4096)
	require.NoError(t, err)
	defer r.Close()

	require.NoError(t, r.Write(0, []byte{0x00}))
	err = r.Seal()
	require.ErrorIs(t, err, ErrUnsupportedArch)
	require.Equal(t, stateWritable, r.state, "a failed seal must not transition state")
}
