// Package calib — калибровка перед генерацией импульсов: гранулярность часов
// и типичная длительность чтения, не попадающего в кэш.
package calib

import (
	"slices"

	"github.com/shiwa/timecard-mini/pps-ram-gen/internal/clock"
	"github.com/shiwa/timecard-mini/pps-ram-gen/internal/sink"
)

const (
	// PrecisionSamples — число опросов часов при измерении гранулярности.
	PrecisionSamples = 10_000
	// LatencySamples — число сэмплов при измерении задержки чтения.
	LatencySamples = 100_000
)

// Reader — чтение слова буфера по псевдослучайному значению (membuf.Buffer).
type Reader interface {
	Read(rnd uint32) uint32
}

// Precision возвращает минимальную положительную разницу между соседними
// опросами часов в наносекундах. Нулевые разницы (тик не прошёл) пропускаются.
func Precision(c clock.Clock) (uint32, error) {
	return precision(c, PrecisionSamples)
}

func precision(c clock.Clock, samples int) (uint32, error) {
	prev, err := c.Nanosecond()
	if err != nil {
		return 0, clock.Wrap("precision", err)
	}
	best := uint32(clock.NanosPerSecond)
	for i := 1; i < samples; i++ {
		now, err := c.Nanosecond()
		if err != nil {
			return 0, clock.Wrap("precision", err)
		}
		// при переходе через секунду разница переполняется и минимумом не станет
		if diff := now - prev; diff > 0 && diff < best {
			best = diff
		}
		prev = now
	}
	return best, nil
}

// ReadLatency возвращает медиану длительности цикла «опрос часов + чтение буфера».
// Накладные расходы опроса часов входят в результат.
func ReadLatency(c clock.Clock, r Reader) (uint32, error) {
	return readLatency(c, r, LatencySamples)
}

func readLatency(c clock.Clock, r Reader, samples int) (uint32, error) {
	diffs := make([]uint32, samples)
	prev, err := c.Nanosecond()
	if err != nil {
		return 0, clock.Wrap("latency", err)
	}
	var sum uint32
	for i := range diffs {
		now, err := c.Nanosecond()
		if err != nil {
			return 0, clock.Wrap("latency", err)
		}
		sum += r.Read(now ^ sum)
		diffs[i] = now - prev
		prev = now
	}
	sink.Keep(sum)
	return Median(diffs), nil
}

// Median сортирует s на месте и возвращает элемент s[len(s)/2];
// для чётной длины это верхний из двух средних, без усреднения. Пустой срез — 0.
func Median(s []uint32) uint32 {
	if len(s) == 0 {
		return 0
	}
	slices.Sort(s)
	return s[len(s)/2]
}
