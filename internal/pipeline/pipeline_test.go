package pipeline

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_Options_applyAllFields(t *testing.T) {
	var trace bytes.Buffer
	var logged []string

	var cfg config
	Options(
		WithRegionSize(4096),
		WithMemLimit(128),
		WithNoExtensions(),
		WithLogf(func(mess string, args ...interface{}) { logged = append(logged, mess) }),
		WithCCTrace(&trace),
	).apply(&cfg)

	require.Equal(t, 4096, cfg.regionSize)
	require.Equal(t, uint(128), cfg.memLimit)
	require.True(t, cfg.noExtensions)
	require.NotNil(t, cfg.logfn)
	require.Equal(t, &trace, cfg.ccTrace)

	cfg.logfn("hi")
	require.Equal(t, []string{"hi"}, logged)
}

func Test_Options_nilOptionIgnored(t *testing.T) {
	var cfg config
	require.NotPanics(t, func() {
		Options(nil, WithRegionSize(8)).apply(&cfg)
	})
	require.Equal(t, 8, cfg.regionSize)
}

func Test_newLoader_defaultsSkipZeroRegionSize(t *testing.T) {
	ld := newLoader(config{})
	require.NotNil(t, ld)
}

func Test_newVM_prependsTrampolineToRemainder(t *testing.T) {
	vm := newVM(config{}, bytes.NewReader([]byte("rest")), &bytes.Buffer{})
	require.NotNil(t, vm)
}
