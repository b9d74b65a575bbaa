package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInterval(t *testing.T) {
	t.Run("accepted", func(t *testing.T) {
		for _, in := range []string{"100", "1000", "500000000", "1000000000", "200000000"} {
			_, err := ParseInterval(in)
			assert.NoError(t, err, in)
		}
		v, err := ParseInterval("500000000")
		require.NoError(t, err)
		assert.Equal(t, uint32(500_000_000), v)
	})

	t.Run("rejected", func(t *testing.T) {
		for _, in := range []string{"99", "1000000001", "7", "0", "-100", "", "1e6", "abc", "300"} {
			_, err := ParseInterval(in)
			assert.ErrorIs(t, err, ErrInvalidInterval, in)
		}
	})
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pps-ram-gen.yml")
	data := `
interval: 200000000
seed: 17
log_pulses: true
metrics:
  listen: "127.0.0.1:9600"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, uint32(200_000_000), c.Interval)
	assert.Equal(t, int64(17), c.Seed)
	assert.True(t, c.LogPulses)
	assert.Equal(t, "realtime", c.Clock)
	assert.Equal(t, "127.0.0.1:9600", c.Metrics.Listen)
	assert.Equal(t, "/metrics", c.Metrics.Path)
	assert.NoError(t, c.Validate())
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yml")
	require.NoError(t, os.WriteFile(path, []byte("interval: [1, 2"), 0o644))
	_, err = Load(path)
	assert.ErrorContains(t, err, "parse config")
}

func TestConfig_Validate(t *testing.T) {
	c := Default()
	assert.ErrorIs(t, c.Validate(), ErrInvalidInterval)

	c.Interval = 1000
	assert.NoError(t, c.Validate())

	c.Clock = "sundial"
	assert.ErrorIs(t, c.Validate(), ErrUnknownClock)
}
