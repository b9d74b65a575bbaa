// Package membuf — буфер больше кэша CPU, из которого читаются слова так,
// чтобы каждое чтение уходило в основную память.
package membuf

import (
	"errors"
	"fmt"
	"math/rand"
	"sync/atomic"
	"unsafe"

	"github.com/dustin/go-humanize"
)

const (
	// SizeBytes — размер буфера: 128 MiB, заведомо больше кэша.
	SizeBytes = 1 << 27
	// Length — число 32-битных слов в буфере.
	Length = SizeBytes / 4
	// LineShift — log2 числа слов в 64-байтной кэш-линии.
	LineShift = 4
)

// ErrAllocation — буфер не может быть выделен (AllocationFailure).
var ErrAllocation = errors.New("buffer allocation failed")

// Buffer — слова, заполненные псевдослучайными значениями до первого чтения.
// Используется одним потоком; размер не меняется.
type Buffer struct {
	words []uint32
}

// New выделяет буфер. available — свободная память хоста в байтах (0 = неизвестно,
// проверка пропускается). Go не возвращает ошибку при нехватке памяти в make,
// поэтому нехватка обнаруживается заранее.
func New(available uint64) (*Buffer, error) {
	if available != 0 && available < SizeBytes {
		return nil, fmt.Errorf("%w: need %s, available %s",
			ErrAllocation, humanize.IBytes(SizeBytes), humanize.IBytes(available))
	}
	return &Buffer{words: make([]uint32, Length)}, nil
}

// Len возвращает число слов.
func (b *Buffer) Len() int {
	return len(b.words)
}

// SizeBytes возвращает занимаемый размер в байтах.
func (b *Buffer) SizeBytes() int {
	return len(b.words) * int(unsafe.Sizeof(b.words[0]))
}

// Fill заполняет каждое слово двумя независимыми значениями генератора:
// одно сдвинуто в старшие 16 бит, второе накладывается через xor.
// Int31 даёт только 31 бит, поэтому одного значения мало для всего диапазона.
func (b *Buffer) Fill(r *rand.Rand) {
	for i := range b.words {
		b.words[i] = uint32(r.Int31())<<16 ^ uint32(r.Int31())
	}
}

// Index отображает rnd в индекс слова: сдвиг на LineShift разводит соседние
// значения по разным кэш-линиям, модуль удерживает индекс в границах буфера.
func Index(rnd uint32) uint32 {
	return (rnd << LineShift) % Length
}

// Read читает слово по Index(rnd). Атомарная загрузка за границей noinline
// не даёт компилятору выбросить чтение или переставить его относительно опроса часов.
//
//go:noinline
func (b *Buffer) Read(rnd uint32) uint32 {
	return atomic.LoadUint32(&b.words[Index(rnd)])
}
