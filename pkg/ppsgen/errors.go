package ppsgen

import (
	"context"
	"errors"

	"github.com/shiwa/timecard-mini/pps-ram-gen/internal/clock"
	"github.com/shiwa/timecard-mini/pps-ram-gen/internal/config"
	"github.com/shiwa/timecard-mini/pps-ram-gen/internal/membuf"
)

// Коды завершения процесса.
const (
	ExitOK          = 0
	ExitPulseFailed = 1 // ошибка часов в цикле импульсов
	ExitUsage       = 2 // неверный аргумент
	ExitAllocation  = 3 // буфер не выделен
	ExitCalibration = 4 // ошибка часов при калибровке
)

// CalibrationError — ошибка часов во время калибровки (гранулярность или задержка чтения).
type CalibrationError struct {
	Err error
}

func (e *CalibrationError) Error() string {
	return "calibration: " + e.Err.Error()
}

func (e *CalibrationError) Unwrap() error {
	return e.Err
}

// ExitCode возвращает код завершения для ошибки Run. Отмена контекста — штатная остановка.
func ExitCode(err error) int {
	var ce *CalibrationError
	switch {
	case err == nil, errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ExitOK
	case errors.Is(err, config.ErrInvalidInterval),
		errors.Is(err, config.ErrUnknownClock),
		errors.Is(err, clock.ErrUnknown):
		return ExitUsage
	case errors.Is(err, membuf.ErrAllocation):
		return ExitAllocation
	case errors.As(err, &ce):
		return ExitCalibration
	default:
		return ExitPulseFailed
	}
}
