// pps-ram-gen — программный генератор PPS: в заданные моменты каждой секунды
// выполняется чтение основной памяти мимо кэша, активность шины видна снаружи
// (осциллограф, устройство захвата времени) как импульс.
//
// Использование:
//
//	pps-ram-gen [флаги] INTERVAL
//
// INTERVAL — период импульсов в наносекундах (>= 100, делит 1e9 без остатка).
// Коды завершения: 1 — ошибка часов в цикле, 2 — неверный аргумент,
// 3 — буфер не выделен, 4 — ошибка часов при калибровке.
//
// Приоритет процесса не повышается; для стабильных импульсов процессу нужен
// свободный CPU (например, запуск через chrt/taskset).
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/shiwa/timecard-mini/pps-ram-gen/internal/clock"
	"github.com/shiwa/timecard-mini/pps-ram-gen/internal/config"
	"github.com/shiwa/timecard-mini/pps-ram-gen/internal/logger"
	"github.com/shiwa/timecard-mini/pps-ram-gen/pkg/ppsgen"
)

const defaultConfigPath = "pps-ram-gen.yml"

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "путь к YAML конфигу (по умолчанию "+defaultConfigPath+", если есть)")
	clockName := flag.String("clock", "", fmt.Sprintf("часы %v (переопределяет config)", clock.Names()))
	seed := flag.Int64("seed", 0, "seed генератора для заполнения буфера (0 — от времени)")
	metricsListen := flag.String("metrics.listen", "", "адрес Prometheus endpoint, например :9600 (пусто — выключен)")
	logPulses := flag.Bool("log-pulses", false, "логировать каждый импульс (влияет на точность)")
	quiet := flag.Bool("quiet", false, "меньше вывода")
	flag.Usage = printUsage
	flag.Parse()
	logger.Quiet = *quiet

	cfg, err := loadConfig(*configPath)
	if err != nil {
		logger.Error("config: %v", err)
		return ppsgen.ExitUsage
	}
	if cfg == nil {
		cfg = config.Default()
	}

	switch {
	case flag.NArg() > 0:
		interval, err := config.ParseInterval(flag.Arg(0))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid interval: %v\n", err)
			return ppsgen.ExitUsage
		}
		cfg.Interval = interval
	case cfg.Interval == 0:
		printUsage()
		return ppsgen.ExitUsage
	}
	if *clockName != "" {
		cfg.Clock = *clockName
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if *metricsListen != "" {
		cfg.Metrics.Listen = *metricsListen
	}
	if *logPulses {
		cfg.LogPulses = true
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("получен сигнал %v, завершение...", sig)
		cancel()
	}()

	err = ppsgen.Run(ctx, cfg, os.Stdout)
	code := ppsgen.ExitCode(err)
	if code != ppsgen.ExitOK {
		logger.Error("%v", err)
	}
	return code
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		path = defaultConfigPath
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil, nil
		}
	}
	return config.Load(path)
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: pps-ram-gen [flags] INTERVAL\n")
	flag.PrintDefaults()
}
