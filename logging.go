// Package-level structured logging for the kernel.
//
// Design: a package-level global logger is appropriate here because logging
// is an infrastructure cross-cutting concern and every kernel instance in a
// process shares the same diagnostic stream (mirrors how a real target would
// have exactly one UART/trace sink). Entries carry no kernel-instance
// identifier.
package kernel

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

var globalLogger struct {
	sync.RWMutex
	logger Logger
}

// SetStructuredLogger installs the process-wide structured logger.
func SetStructuredLogger(logger Logger) {
	globalLogger.Lock()
	defer globalLogger.Unlock()
	globalLogger.logger = logger
}

func getGlobalLogger() Logger {
	globalLogger.RLock()
	defer globalLogger.RUnlock()
	if globalLogger.logger != nil {
		return globalLogger.logger
	}
	return NewNoOpLogger()
}

// LogLevel is the severity of a log entry.
type LogLevel int32

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", l)
	}
}

// LogEntry is a single structured diagnostic record.
type LogEntry struct {
	Level     LogLevel
	Subsystem string // "kernel", "task", "timer", "sem", "queue"
	TaskID    uint32
	ObjID     uint32
	Message   string
	Err       error
	Timestamp time.Time
}

// Logger is the structured logging interface. Integrators supply their own
// (zerolog, logrus, a UART-backed sink) in place of DefaultLogger.
type Logger interface {
	Log(entry LogEntry)
	IsEnabled(level LogLevel) bool
}

// NoOpLogger discards every entry; it is the default when no logger is set.
type NoOpLogger struct{}

// NewNoOpLogger returns a Logger that discards everything.
func NewNoOpLogger() *NoOpLogger { return &NoOpLogger{} }

func (NoOpLogger) Log(LogEntry) {}

func (NoOpLogger) IsEnabled(LogLevel) bool { return false }

// DefaultLogger is a minimal dependency-free Logger writing to an *os.File.
type DefaultLogger struct {
	level atomic.Int32
	mu    sync.Mutex
	Out   *os.File
}

// NewDefaultLogger creates a logger writing to stdout at the given minimum level.
func NewDefaultLogger(level LogLevel) *DefaultLogger {
	l := &DefaultLogger{Out: os.Stdout}
	l.level.Store(int32(level))
	return l
}

// SetLevel dynamically changes the minimum log level.
func (l *DefaultLogger) SetLevel(level LogLevel) { l.level.Store(int32(level)) }

func (l *DefaultLogger) IsEnabled(level LogLevel) bool {
	return level >= LogLevel(l.level.Load())
}

func (l *DefaultLogger) Log(entry LogEntry) {
	if !l.IsEnabled(entry.Level) {
		return
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintf(l.Out, "%s %s [%-9s]", entry.Timestamp.Format("15:04:05.000"), entry.Level, entry.Subsystem)
	if entry.TaskID != 0 {
		fmt.Fprintf(l.Out, " task=%d", entry.TaskID)
	}
	if entry.ObjID != 0 {
		fmt.Fprintf(l.Out, " obj=%d", entry.ObjID)
	}
	fmt.Fprintf(l.Out, " %s", entry.Message)
	if entry.Err != nil {
		fmt.Fprintf(l.Out, ": %v", entry.Err)
	}
	fmt.Fprintln(l.Out)
}

func logDebug(subsystem, message string, taskID, objID uint32) {
	log := getGlobalLogger()
	if !log.IsEnabled(LevelDebug) {
		return
	}
	log.Log(LogEntry{Level: LevelDebug, Subsystem: subsystem, Message: message, TaskID: taskID, ObjID: objID})
}

func logWarn(subsystem, message string, taskID, objID uint32, err error) {
	log := getGlobalLogger()
	if !log.IsEnabled(LevelWarn) {
		return
	}
	log.Log(LogEntry{Level: LevelWarn, Subsystem: subsystem, Message: message, TaskID: taskID, ObjID: objID, Err: err})
}
