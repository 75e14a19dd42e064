// Package logger provides leveled logging on top of the standard log package.
// Messages carry the same [DEBUG]/[INFO]/[WARN]/[ERROR] tags used across the
// code base; lines below the configured level are dropped.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

// Level represents a logging level
type Level int

const (
	// DebugLevel logs are voluminous and usually disabled.
	DebugLevel Level = iota
	// InfoLevel is the default logging priority.
	InfoLevel
	// WarnLevel logs are recoverable problems: a bad CSV cell, a failed render.
	WarnLevel
	// ErrorLevel logs are failures the session continues past.
	ErrorLevel
)

// Logger provides leveled logging
type Logger struct {
	level  Level
	logger *log.Logger
}

var (
	mu            sync.RWMutex
	defaultLogger = &Logger{level: InfoLevel, logger: log.New(os.Stderr, "", log.LstdFlags)}
)

// ParseLevel maps a level name to a Level. Unknown names map to InfoLevel.
func ParseLevel(level string) (Level, bool) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return DebugLevel, true
	case "info":
		return InfoLevel, true
	case "warn", "warning":
		return WarnLevel, true
	case "error":
		return ErrorLevel, true
	default:
		return InfoLevel, false
	}
}

// Init initializes the default logger with the specified level and format.
// The "text" format adds the caller's file and line.
func Init(level string, format string) {
	InitWriter(os.Stderr, level, format)
}

// InitWriter is Init with an explicit destination.
func InitWriter(w io.Writer, level string, format string) {
	l, _ := ParseLevel(level)
	flags := log.LstdFlags | log.Lmicroseconds
	if strings.ToLower(format) == "text" {
		flags |= log.Lshortfile
	}

	mu.Lock()
	defaultLogger = &Logger{level: l, logger: log.New(w, "", flags)}
	mu.Unlock()
}

func output(l Level, tag, format string, args ...interface{}) {
	mu.RLock()
	d := defaultLogger
	mu.RUnlock()
	if d.level > l {
		return
	}
	_ = d.logger.Output(3, fmt.Sprintf(tag+format, args...))
}

// Debug logs a message at DebugLevel
func Debug(format string, args ...interface{}) {
	output(DebugLevel, "[DEBUG] ", format, args...)
}

// Info logs a message at InfoLevel
func Info(format string, args ...interface{}) {
	output(InfoLevel, "[INFO] ", format, args...)
}

// Warn logs a message at WarnLevel
func Warn(format string, args ...interface{}) {
	output(WarnLevel, "[WARN] ", format, args...)
}

// Error logs a message at ErrorLevel
func Error(format string, args ...interface{}) {
	output(ErrorLevel, "[ERROR] ", format, args...)
}

// Fatal logs a message regardless of level and exits
func Fatal(format string, args ...interface{}) {
	mu.RLock()
	d := defaultLogger
	mu.RUnlock()
	_ = d.logger.Output(2, fmt.Sprintf("[FATAL] "+format, args...))
	os.Exit(1)
}
