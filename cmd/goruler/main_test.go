package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	measureCmd.Flags().VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestMeasureCommand(t *testing.T) {
	out, err := execute(t, "", "measure",
		"--x1", "0", "--y1", "0", "--z1", "0",
		"--x2", "0.3", "--y2", "0", "--z2", "0.4")
	require.NoError(t, err)

	assert.Contains(t, out, "Distance: 50.00cm")
	assert.Contains(t, out, "Label anchor: (0.290, 0.010, 0.400)")
	assert.Contains(t, out, "Label scale:  (0.010, 0.010, 0.010)")
}

func TestMeasureNeedsAllFlags(t *testing.T) {
	_, err := execute(t, "", "measure", "--x1", "1")
	assert.Error(t, err)
}

func TestReplayCommandFromStdin(t *testing.T) {
	script := "tap 0 0 0\nmiss\ntap 0 0.03 0.04\n"

	out, err := execute(t, script, "replay", "-")
	require.NoError(t, err)

	assert.Contains(t, out, `+ label  "Distance: 5.00cm"`)
	assert.Contains(t, out, "2 taps, 1 misses, 1 measurements")
}

func TestReplayCommandRejectsBadScript(t *testing.T) {
	_, err := execute(t, "tap 1 2\n", "replay", "-")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 1")
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "goruler dev (commit unknown"))
}
