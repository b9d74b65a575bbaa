// Package host собирает сведения о хосте, важные для буфера: свободную память и размер кэша.
package host

import (
	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"
)

// Info — сведения о хосте. Нулевое поле — значение узнать не удалось.
type Info struct {
	AvailableMemory uint64 // байт
	TotalMemory     uint64 // байт
	CacheBytes      uint64 // кэш CPU (последний уровень, как его сообщает ОС)
	CPUModel        string
}

// Probe опрашивает ОС через gopsutil. Ошибки не фатальны: соответствующие поля остаются нулевыми.
func Probe() Info {
	var info Info
	if vm, err := mem.VirtualMemory(); err == nil && vm != nil {
		info.AvailableMemory = vm.Available
		info.TotalMemory = vm.Total
	}
	if cpus, err := cpu.Info(); err == nil && len(cpus) > 0 {
		// gopsutil сообщает cache size в KB
		if cpus[0].CacheSize > 0 {
			info.CacheBytes = uint64(cpus[0].CacheSize) * 1024
		}
		info.CPUModel = cpus[0].ModelName
	}
	return info
}

// ExceedsCache возвращает false, только если размер кэша известен и не меньше size.
func (i Info) ExceedsCache(size uint64) bool {
	return i.CacheBytes == 0 || size > i.CacheBytes
}
