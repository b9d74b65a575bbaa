// Package metrics — необязательный Prometheus endpoint: число импульсов и результаты калибровки.
// Цикл импульсов только увеличивает атомарный счётчик; значения читаются при scrape.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shiwa/timecard-mini/pps-ram-gen/internal/logger"
)

const namespace = "pps_ram_gen"

// PulseCounter — источник числа импульсов (pulse.Scheduler).
type PulseCounter interface {
	Pulses() uint64
}

// Calibration — значения, измеренные до запуска цикла.
type Calibration struct {
	IntervalNs  uint32
	PrecisionNs uint32
	LatencyNs   uint32
}

// NewRegistry создаёт реестр с метриками генератора.
func NewRegistry(pc PulseCounter, c Calibration) *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pulses_total",
			Help:      "Number of cache-defeating reads emitted as pulses.",
		}, func() float64 { return float64(pc.Pulses()) }),
		constGauge("interval_nanoseconds", "Configured pulse interval.", c.IntervalNs),
		constGauge("clock_precision_nanoseconds", "Measured clock granularity, also the pulse window width.", c.PrecisionNs),
		constGauge("read_latency_nanoseconds", "Median clock query plus memory read duration, precision subtracted.", c.LatencyNs),
	)
	return reg
}

func constGauge(name, help string, v uint32) prometheus.GaugeFunc {
	return prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      name,
		Help:      help,
	}, func() float64 { return float64(v) })
}

// Handler возвращает HTTP handler для реестра.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

// Serve слушает addr и отдаёт метрики по path до отмены ctx.
func Serve(ctx context.Context, addr, path string, reg *prometheus.Registry) error {
	mux := http.NewServeMux()
	mux.Handle(path, Handler(reg))
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("metrics: listening on %s%s", addr, path)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
