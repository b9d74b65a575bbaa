// Package ppsgen запускает программный генератор PPS: подготовка буфера, калибровка
// часов и задержки чтения, затем бесконечный цикл импульсов. Используется из cmd/pps-ram-gen.
package ppsgen

import (
	"context"
	"errors"
	"io"
	"math/rand"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/shiwa/timecard-mini/pps-ram-gen/internal/calib"
	"github.com/shiwa/timecard-mini/pps-ram-gen/internal/clock"
	"github.com/shiwa/timecard-mini/pps-ram-gen/internal/config"
	"github.com/shiwa/timecard-mini/pps-ram-gen/internal/host"
	"github.com/shiwa/timecard-mini/pps-ram-gen/internal/logger"
	"github.com/shiwa/timecard-mini/pps-ram-gen/internal/membuf"
	"github.com/shiwa/timecard-mini/pps-ram-gen/internal/metrics"
	"github.com/shiwa/timecard-mini/pps-ram-gen/internal/pulse"
)

// Run выполняет всю цепочку и пишет отчёт калибровки в out. Без отмены ctx
// возвращается только с ошибкой; код завершения — ExitCode(err).
func Run(ctx context.Context, cfg *config.Config, out io.Writer) error {
	if cfg == nil {
		return errors.New("ppsgen: nil config")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	clk, err := clock.Open(cfg.Clock)
	if err != nil {
		return err
	}
	if res, err := clk.Resolution(); err == nil {
		logger.Info("clock %s: kernel resolution %v", clk.Name(), res)
	}

	info := host.Probe()
	logger.Info("host: cpu=%q cache=%s available=%s",
		info.CPUModel, humanize.IBytes(info.CacheBytes), humanize.IBytes(info.AvailableMemory))
	var available uint64
	if !cfg.SkipMemoryCheck {
		available = info.AvailableMemory
	}
	buf, err := membuf.New(available)
	if err != nil {
		return err
	}
	if !info.ExceedsCache(membuf.SizeBytes) {
		logger.Info("warning: buffer %s does not exceed CPU cache %s, reads may hit cache",
			humanize.IBytes(membuf.SizeBytes), humanize.IBytes(info.CacheBytes))
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	buf.Fill(rand.New(rand.NewSource(seed)))

	precision, err := calib.Precision(clk)
	if err != nil {
		return &CalibrationError{Err: err}
	}
	latency, err := calib.ReadLatency(clk, buf)
	if err != nil {
		return &CalibrationError{Err: err}
	}

	report := NewReport(buf.SizeBytes(), cfg.Interval, precision, latency)
	if _, err := report.WriteTo(out); err != nil {
		return err
	}

	sched := pulse.New(clk, buf, cfg.Interval, precision)
	if cfg.LogPulses {
		sched.OnPulse = func(nsec uint32) {
			logger.Info("pulse at .%09d", nsec)
		}
	}
	if cfg.Metrics.Listen != "" {
		reg := metrics.NewRegistry(sched, metrics.Calibration{
			IntervalNs:  report.IntervalNs,
			PrecisionNs: report.PrecisionNs,
			LatencyNs:   report.LatencyNs,
		})
		go func() {
			if err := metrics.Serve(ctx, cfg.Metrics.Listen, cfg.Metrics.Path, reg); err != nil {
				logger.Error("metrics: %v", err)
			}
		}()
	}

	logger.Info("pulse: clock=%s interval=%d ns window=%d ns", clk.Name(), cfg.Interval, precision)
	return sched.Run(ctx)
}
