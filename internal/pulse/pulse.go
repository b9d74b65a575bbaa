// Package pulse — генерация импульсов: одно чтение буфера мимо кэша на каждой
// границе интервала внутри секунды.
//
// Цикл опрашивает часы без пауз и не повышает приоритет процесса: точность зависит
// от того, насколько быстро планировщик ОС отдаёт процессу CPU.
package pulse

import (
	"context"
	"sync/atomic"

	"github.com/shiwa/timecard-mini/pps-ram-gen/internal/clock"
	"github.com/shiwa/timecard-mini/pps-ram-gen/internal/sink"
)

// cancelCheckMask — как часто (в итерациях) проверяется отмена ctx.
const cancelCheckMask = 1<<10 - 1

// Reader — чтение слова буфера по псевдослучайному значению (membuf.Buffer).
type Reader interface {
	Read(rnd uint32) uint32
}

// State — результат одной итерации цикла.
type State int

const (
	BeforeBoundary State = iota // граница ещё не наступила, состояние не меняется
	WithinWindow                // now в [граница, граница+precision], выполнено чтение
	AfterWindow                 // окно пропущено, граница перенесена без чтения
)

func (s State) String() string {
	switch s {
	case BeforeBoundary:
		return "before-boundary"
	case WithinWindow:
		return "within-pulse-window"
	case AfterWindow:
		return "after-window"
	default:
		return "unknown"
	}
}

// Scheduler — состояние генератора. Не потокобезопасен, кроме Pulses.
type Scheduler struct {
	clock     clock.Clock
	reader    Reader
	interval  uint32
	precision uint32

	next uint32 // ближайшая граница, нс внутри секунды, [0, 1e9)
	prev uint32 // предыдущий опрос часов
	sum  uint32 // контрольная сумма всех прочитанных слов

	pulses atomic.Uint64

	// OnPulse, если задан, вызывается после каждого чтения с временем импульса.
	OnPulse func(nsec uint32)
}

// New создаёт генератор. interval должен делить 1e9 без остатка (config.ParseInterval),
// precision — ширина окна импульса, обычно измеренная гранулярность часов.
func New(c clock.Clock, r Reader, interval, precision uint32) *Scheduler {
	return &Scheduler{
		clock:     c,
		reader:    r,
		interval:  interval,
		precision: precision,
	}
}

// Next возвращает ближайшую запланированную границу.
func (s *Scheduler) Next() uint32 {
	return s.next
}

// Pulses возвращает число выполненных импульсов. Безопасен из других горутин.
func (s *Scheduler) Pulses() uint64 {
	return s.pulses.Load()
}

// Step обрабатывает один опрос часов now (нс внутри секунды).
func (s *Scheduler) Step(now uint32) State {
	// ещё до границы и секунда не сменилась
	if now < s.next && now >= s.prev {
		return BeforeBoundary
	}

	state := AfterWindow
	if now >= s.next && now <= s.next+s.precision {
		s.sum += s.reader.Read(now ^ s.sum)
		s.pulses.Add(1)
		state = WithinWindow
	}

	s.next = (now/s.interval + 1) * s.interval
	if s.next >= clock.NanosPerSecond {
		s.next = 0
	}
	// иначе после переноса границы на 0 следующий импульс был бы принят за «ещё до границы»
	s.prev = now
	if s.prev > s.next {
		s.prev = s.next
	}

	if state == WithinWindow && s.OnPulse != nil {
		s.OnPulse(now)
	}
	return state
}

// Run опрашивает часы до отмены ctx или ошибки часов. Без отмены не возвращается;
// ошибка часов возвращается как *clock.Error.
func (s *Scheduler) Run(ctx context.Context) error {
	defer func() { sink.Keep(s.sum) }()

	done := ctx.Done()
	for i := uint64(0); ; i++ {
		if done != nil && i&cancelCheckMask == 0 {
			select {
			case <-done:
				return ctx.Err()
			default:
			}
		}
		now, err := s.clock.Nanosecond()
		if err != nil {
			return clock.Wrap("pulse", err)
		}
		s.Step(now)
	}
}
