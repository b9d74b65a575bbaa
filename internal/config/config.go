package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/shiwa/timecard-mini/pps-ram-gen/internal/clock"
)

// MinInterval — минимальный интервал импульсов в наносекундах.
const MinInterval = 100

var (
	// ErrInvalidInterval — интервал не число, меньше MinInterval или не делит секунду.
	ErrInvalidInterval = errors.New("invalid interval")
	// ErrUnknownClock — в конфиге указаны часы, недоступные на платформе.
	ErrUnknownClock = errors.New("unknown clock")
)

// Config — конфигурация pps-ram-gen. Позиционный INTERVAL и флаги переопределяют файл.
type Config struct {
	Interval uint32 `yaml:"interval"` // нс, 1e9 % Interval == 0
	Clock    string `yaml:"clock"`    // realtime, tai, monotonic, boottime
	Seed     int64  `yaml:"seed"`     // 0 — от текущего времени
	// SkipMemoryCheck отключает проверку свободной памяти перед выделением буфера.
	SkipMemoryCheck bool          `yaml:"skip_memory_check"`
	LogPulses       bool          `yaml:"log_pulses"`
	Metrics         MetricsConfig `yaml:"metrics"`
}

// MetricsConfig — Prometheus endpoint; пустой Listen — отключён.
type MetricsConfig struct {
	Listen string `yaml:"listen"`
	Path   string `yaml:"path"`
}

// Default возвращает конфиг по умолчанию (без интервала — он обязателен).
func Default() *Config {
	return &Config{
		Clock: clock.Realtime,
		Metrics: MetricsConfig{
			Path: "/metrics",
		},
	}
}

// Load читает конфиг из YAML
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	applyDefaults(&c)
	return &c, nil
}

// ParseInterval разбирает интервал в наносекундах: целое, не меньше MinInterval,
// 1e9 делится на него без остатка.
func ParseInterval(s string) (uint32, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", ErrInvalidInterval, s)
	}
	if err := ValidateInterval(v); err != nil {
		return 0, err
	}
	return uint32(v), nil
}

// ValidateInterval проверяет интервал в наносекундах.
func ValidateInterval(v int64) error {
	if v < MinInterval {
		return fmt.Errorf("%w: %d ns is below %d ns", ErrInvalidInterval, v, MinInterval)
	}
	if clock.NanosPerSecond%v != 0 {
		return fmt.Errorf("%w: %d ns does not divide one second", ErrInvalidInterval, v)
	}
	return nil
}

// Validate проверяет конфиг целиком.
func (c *Config) Validate() error {
	if err := ValidateInterval(int64(c.Interval)); err != nil {
		return err
	}
	if !clock.Supported(c.Clock) {
		return fmt.Errorf("%w: %q (available: %v)", ErrUnknownClock, c.Clock, clock.Names())
	}
	return nil
}

func applyDefaults(c *Config) {
	d := Default()
	if c.Clock == "" {
		c.Clock = d.Clock
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = d.Metrics.Path
	}
}
