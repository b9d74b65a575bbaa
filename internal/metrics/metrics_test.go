package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedCounter uint64

func (f fixedCounter) Pulses() uint64 { return uint64(f) }

func TestHandler(t *testing.T) {
	reg := NewRegistry(fixedCounter(3), Calibration{
		IntervalNs:  200_000_000,
		PrecisionNs: 20,
		LatencyNs:   95,
	})
	srv := httptest.NewServer(Handler(reg))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	text := string(body)
	assert.Contains(t, text, "pps_ram_gen_pulses_total 3")
	assert.Contains(t, text, "pps_ram_gen_interval_nanoseconds 2e+08")
	assert.Contains(t, text, "pps_ram_gen_clock_precision_nanoseconds 20")
	assert.Contains(t, text, "pps_ram_gen_read_latency_nanoseconds 95")
}
