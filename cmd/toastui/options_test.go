package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/toastui/internal/toast"
)

func parseToastFlags(t *testing.T, withType bool, args ...string) (toast.Partial, error) {
	t.Helper()
	var flags toastFlags
	cmd := &cobra.Command{Use: "test"}
	flags.register(cmd, withType)
	require.NoError(t, cmd.ParseFlags(args))
	return flags.partial(cmd)
}

func TestToastFlags_OnlyChanged(t *testing.T) {
	p, err := parseToastFlags(t, true)
	require.NoError(t, err)
	assert.Equal(t, toast.Partial{}, p)
}

func TestToastFlags_All(t *testing.T) {
	p, err := parseToastFlags(t, true,
		"--type", "Error", "-p", "bottom-center", "-d", "0", "--closable=false",
		"--animation", "zoom", "--theme", "dark", "--icon", "!")
	require.NoError(t, err)

	assert.Equal(t, toast.TypeError, *p.Type)
	assert.Equal(t, toast.BottomCenter, *p.Position)
	assert.Equal(t, time.Duration(0), *p.Duration)
	assert.False(t, *p.Closable)
	assert.Equal(t, toast.AnimationZoom, *p.Animation)
	assert.Equal(t, toast.ThemeDark, *p.Theme)
	assert.Equal(t, "!", *p.Icon)
}

func TestToastFlags_Invalid(t *testing.T) {
	tests := [][]string{
		{"--type", "critical"},
		{"--position", "middle"},
		{"--animation", "spin"},
		{"--theme", "solarized"},
		{"--duration", "-1s"},
	}
	for _, args := range tests {
		_, err := parseToastFlags(t, true, args...)
		assert.Error(t, err, args)
	}
}

func TestToastFlags_WithoutType(t *testing.T) {
	var flags toastFlags
	cmd := &cobra.Command{Use: "test"}
	flags.register(cmd, false)
	assert.Nil(t, cmd.Flags().Lookup("type"))
}

func TestMergePartial(t *testing.T) {
	info, errType := toast.TypeInfo, toast.TypeError
	long, short := 10*time.Second, time.Second
	icon := "*"

	base := toast.Partial{Type: &info, Duration: &long, Icon: &icon}
	top := toast.Partial{Type: &errType, Duration: &short}

	got := mergePartial(base, top)
	assert.Equal(t, toast.TypeError, *got.Type)
	assert.Equal(t, time.Second, *got.Duration)
	assert.Equal(t, "*", *got.Icon)
	assert.Nil(t, got.Position)
}

func TestWriteDefaults(t *testing.T) {
	c := toast.DefaultConfig()

	var buf bytes.Buffer
	require.NoError(t, writeDefaults(&buf, c, "yaml"))
	assert.Contains(t, buf.String(), "position: "+string(c.Position))
	assert.Contains(t, buf.String(), "duration: "+c.Duration.String())
	assert.NotContains(t, buf.String(), "icon:")

	buf.Reset()
	require.NoError(t, writeDefaults(&buf, c, "json"))
	assert.Contains(t, buf.String(), `"type": "`+string(c.Type)+`"`)

	assert.Error(t, writeDefaults(&buf, c, "toml"))
}
