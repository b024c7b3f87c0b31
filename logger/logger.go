// Package logger prints emoji-tagged log lines with an optional component prefix.
package logger

import "log"

type Logger struct {
	prefix string
}

// New returns a logger that tags every line with [prefix].
func New(prefix string) *Logger {
	return &Logger{prefix: prefix}
}

func (l *Logger) line(emoji, msg string) string {
	if l.prefix == "" {
		return emoji + " " + msg
	}
	return emoji + " [" + l.prefix + "] " + msg
}

func (l *Logger) Info(msg string, args ...interface{}) {
	log.Printf(l.line("ℹ️", msg), args...)
}

func (l *Logger) Success(msg string, args ...interface{}) {
	log.Printf(l.line("✅", msg), args...)
}

func (l *Logger) Warning(msg string, args ...interface{}) {
	log.Printf(l.line("⚠️", msg), args...)
}

// Error logs msg followed by err when err is non-nil.
func (l *Logger) Error(msg string, err error, args ...interface{}) {
	if err != nil {
		log.Printf(l.line("❌", msg+" - %v"), append(args, err)...)
		return
	}
	log.Printf(l.line("❌", msg), args...)
}

func (l *Logger) Fatal(msg string, err error, args ...interface{}) {
	if err != nil {
		log.Fatalf(l.line("💀", msg+" - %v"), append(args, err)...)
	}
	log.Fatalf(l.line("💀", msg), args...)
}
