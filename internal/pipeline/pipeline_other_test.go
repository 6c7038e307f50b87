//go:build !arm64

package pipeline

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"trustboot/internal/jitregion"
)

func Test_Run_loaderSealFailsOffArm64(t *testing.T) {
	var out bytes.Buffer
	in := strings.NewReader("c0035fd6`int main() { return 0; }")

	err := Run(context.Background(), in, &out, WithRegionSize(4096))
	require.ErrorIs(t, err, jitregion.ErrUnsupportedArch)
}
