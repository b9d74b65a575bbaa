package ppsgen

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiwa/timecard-mini/pps-ram-gen/internal/clock"
	"github.com/shiwa/timecard-mini/pps-ram-gen/internal/config"
	"github.com/shiwa/timecard-mini/pps-ram-gen/internal/membuf"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"canceled", fmt.Errorf("run: %w", context.Canceled), ExitOK},
		{"interval", fmt.Errorf("%w: 7", config.ErrInvalidInterval), ExitUsage},
		{"clock name", config.ErrUnknownClock, ExitUsage},
		{"allocation", fmt.Errorf("%w: need more", membuf.ErrAllocation), ExitAllocation},
		{"calibration", &CalibrationError{Err: clock.Wrap("precision", errors.New("EINVAL"))}, ExitCalibration},
		{"pulse", clock.Wrap("pulse", errors.New("EINVAL")), ExitPulseFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func TestReport(t *testing.T) {
	r := NewReport(membuf.SizeBytes, 200_000_000, 20, 115)
	var b bytes.Buffer
	_, err := r.WriteTo(&b)
	require.NoError(t, err)
	want := "Buffer size     : 128 MB\n" +
		"Pulse interval  : 200000000 ns\n" +
		"Clock precision : 20 ns\n" +
		"Read latency    : 95 ns\n"
	assert.Equal(t, want, b.String())
}

func TestNewReport_LatencyBelowPrecision(t *testing.T) {
	assert.Zero(t, NewReport(membuf.SizeBytes, 1000, 100, 40).LatencyNs)
	assert.Zero(t, NewReport(membuf.SizeBytes, 1000, 100, 100).LatencyNs)
}

func TestRun_InvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Interval = 7
	err := Run(context.Background(), cfg, &bytes.Buffer{})
	require.ErrorIs(t, err, config.ErrInvalidInterval)
	assert.Equal(t, ExitUsage, ExitCode(err))

	assert.Error(t, Run(context.Background(), nil, &bytes.Buffer{}))
}

func TestRun_Canceled(t *testing.T) {
	if testing.Short() {
		t.Skip("allocates a 128 MiB buffer and calibrates on the real clock")
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := config.Default()
	cfg.Interval = 200_000_000
	cfg.Seed = 1
	cfg.SkipMemoryCheck = true

	var out bytes.Buffer
	err := Run(ctx, cfg, &out)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, ExitOK, ExitCode(err))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Buffer size     : 128 MB", lines[0])
	assert.Equal(t, "Pulse interval  : 200000000 ns", lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "Clock precision : "))
	assert.True(t, strings.HasPrefix(lines[3], "Read latency    : "))
}
