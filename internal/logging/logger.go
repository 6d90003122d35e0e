/*
author: akashmaji
email: akashmaji@iisc.ac.in
file: kvredis/internal/logging/logger.go
*/

// Package logging provides the leveled logger used across the server.
package logging

import (
	"log"
	"os"
)

// Level names. New writes each one, bracketed, as a literal prefix of its
// logger rather than referring to these constants.
const (
	levelInfo  = "INFO"
	levelWarn  = "WARN"
	levelError = "ERROR"
)

// Logger is a thin wrapper around *log.Logger giving each severity its own
// prefix, all writing to stderr.
type Logger struct {
	info  *log.Logger
	warn  *log.Logger
	error *log.Logger
}

// New builds a Logger writing to stderr with date/time prefixes.
func New() *Logger {
	flags := log.Ldate | log.Ltime
	return &Logger{
		info:  log.New(os.Stderr, "[INFO]  ", flags),
		warn:  log.New(os.Stderr, "[WARN]  ", flags),
		error: log.New(os.Stderr, "[ERROR] ", flags),
	}
}

// Info logs an informational message.
func (l *Logger) Info(format string, v ...any) { l.info.Printf(format, v...) }

// Warn logs a warning.
func (l *Logger) Warn(format string, v ...any) { l.warn.Printf(format, v...) }

// Error logs an error.
func (l *Logger) Error(format string, v ...any) { l.error.Printf(format, v...) }
