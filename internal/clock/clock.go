// Package clock — опрос системных часов с точностью до наносекунды внутри секунды.
// На Linux используется clock_gettime (golang.org/x/sys/unix) с выбором clock id,
// на остальных платформах — time.Now и только realtime.
package clock

import (
	"errors"
	"fmt"
	"sort"
)

// NanosPerSecond — длина секунды в наносекундах.
const NanosPerSecond = 1_000_000_000

// Clock — источник времени: возвращает наносекунду текущей секунды, [0, 1e9).
type Clock interface {
	Nanosecond() (uint32, error)
}

// Имена поддерживаемых часов (как в конфиге).
const (
	Realtime  = "realtime"
	TAI       = "tai"
	Monotonic = "monotonic"
	Boottime  = "boottime"
)

// ErrUnknown — запрошены часы, которых нет на этой платформе.
var ErrUnknown = errors.New("unknown clock")

// Error — ошибка опроса часов (ClockError). Фатальна на любой стадии.
type Error struct {
	Op  string // стадия: precision, latency, pulse
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("clock %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Wrap оборачивает ошибку источника времени в *Error; nil остаётся nil.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Err: err}
}

// Supported возвращает true, если часы name доступны на этой платформе.
func Supported(name string) bool {
	_, ok := clockIDs[name]
	return ok
}

// Names возвращает отсортированный список доступных часов.
func Names() []string {
	names := make([]string, 0, len(clockIDs))
	for n := range clockIDs {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// System — системные часы с фиксированным clock id.
type System struct {
	name string
	id   int32
}

// Open возвращает системные часы по имени; пустое имя — realtime.
func Open(name string) (*System, error) {
	if name == "" {
		name = Realtime
	}
	id, ok := clockIDs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknown, name, Names())
	}
	return &System{name: name, id: id}, nil
}

// Name возвращает имя часов.
func (s *System) Name() string {
	return s.name
}
