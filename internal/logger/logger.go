// Package logger — единый вывод диагностики pps-ram-gen с префиксом и учётом quiet.
// Отчёт калибровки печатается в stdout напрямую, логгер пишет только в stderr.
package logger

import "log"

// Quiet при true отключает информационные сообщения (Info); Error выводится всегда.
var Quiet bool

// Info выводит сообщение с префиксом "pps-ram-gen: ", если Quiet == false.
func Info(format string, args ...interface{}) {
	if Quiet {
		return
	}
	log.Printf("pps-ram-gen: "+format, args...)
}

// Error выводит сообщение об ошибке с префиксом "pps-ram-gen: " всегда.
func Error(format string, args ...interface{}) {
	log.Printf("pps-ram-gen: "+format, args...)
}
