//go:build linux

package clock

import (
	"time"

	"golang.org/x/sys/unix"
)

var clockIDs = map[string]int32{
	Realtime:  unix.CLOCK_REALTIME,
	TAI:       unix.CLOCK_TAI,
	Monotonic: unix.CLOCK_MONOTONIC,
	Boottime:  unix.CLOCK_BOOTTIME,
}

// Nanosecond выполняет clock_gettime и возвращает tv_nsec.
func (s *System) Nanosecond() (uint32, error) {
	var ts unix.Timespec
	if err := unix.ClockGettime(s.id, &ts); err != nil {
		return 0, err
	}
	return uint32(ts.Nsec), nil
}

// Resolution возвращает разрешение часов, заявленное ядром (clock_getres).
func (s *System) Resolution() (time.Duration, error) {
	var ts unix.Timespec
	if err := unix.ClockGetres(s.id, &ts); err != nil {
		return 0, err
	}
	return time.Duration(ts.Nano()), nil
}
