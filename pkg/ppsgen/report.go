package ppsgen

import (
	"fmt"
	"io"
)

// Report — отчёт калибровки, печатается в stdout перед запуском цикла.
type Report struct {
	BufferBytes int
	IntervalNs  uint32
	PrecisionNs uint32
	LatencyNs   uint32 // медиана задержки за вычетом precision
}

// NewReport строит отчёт; из задержки вычитается precision, чтобы приблизить
// стоимость самого обращения к памяти. Результат не уходит ниже 0.
func NewReport(bufferBytes int, interval, precision, latency uint32) Report {
	if latency > precision {
		latency -= precision
	} else {
		latency = 0
	}
	return Report{
		BufferBytes: bufferBytes,
		IntervalNs:  interval,
		PrecisionNs: precision,
		LatencyNs:   latency,
	}
}

// WriteTo печатает отчёт по строке на значение.
func (r Report) WriteTo(w io.Writer) (int64, error) {
	n, err := fmt.Fprintf(w,
		"Buffer size     : %d MB\n"+
			"Pulse interval  : %d ns\n"+
			"Clock precision : %d ns\n"+
			"Read latency    : %d ns\n",
		r.BufferBytes/(1<<20), r.IntervalNs, r.PrecisionNs, r.LatencyNs)
	return int64(n), err
}
