//go:build !linux

package clock

import (
	"errors"
	"time"
)

var clockIDs = map[string]int32{
	Realtime: 0,
}

// Nanosecond — через time.Now на не-Linux.
func (s *System) Nanosecond() (uint32, error) {
	return uint32(time.Now().Nanosecond()), nil
}

// Resolution — не поддерживается на не-Linux.
func (s *System) Resolution() (time.Duration, error) {
	return 0, errors.New("clock_getres not supported on this platform")
}
