// Package sink — явный «наблюдатель» значений: результат, переданный в Keep,
// считается использованным, и компилятор не может выбросить вычисление, которое его дало.
package sink

import "sync/atomic"

var last atomic.Uint32

// Keep сохраняет v в глобальный слот через атомарную запись.
// Порядок относительно других потоков не гарантируется и не нужен.
//
//go:noinline
func Keep(v uint32) {
	last.Store(v)
}

// Last возвращает последнее значение, переданное в Keep.
func Last() uint32 {
	return last.Load()
}
