package storage

import (
	"CardioPipeline/src/config"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

// LogLevel is the severity of a log entry.
type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARNING
	ERROR
	FATAL
)

// Logger appends leveled entries to a single log file. Writes are
// mutex-guarded so the watch-mode re-runs can share one instance.
type Logger struct {
	file *os.File
	name string
	mu   sync.Mutex
}

// NewLogger opens (or creates) the log file in append mode.
func NewLogger(filename string) (*Logger, error) {
	file, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}

	return &Logger{
		file: file,
		name: filename,
	}, nil
}

// Close releases the underlying log file.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

// Reopen switches logging to a new file, closing the old one.
func (l *Logger) Reopen(filename string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file != nil {
		_ = l.file.Close()
	}

	file, err := os.OpenFile(filename, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	l.file = file
	l.name = filename
	return nil
}

// Log writes one formatted entry: [timestamp] LEVEL: message.
func (l *Logger) Log(level LogLevel, message string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry := fmt.Sprintf("[%s] %s: %s\n",
		time.Now().Format("2006-01-02 15:04:05"),
		level.String(),
		message)

	l.file.WriteString(entry)
}

// CheckRotate rotates the log file when it exceeds the configured
// maximum size.
func (l *Logger) CheckRotate(cfg *config.Config) {
	info, err := l.file.Stat()
	if err != nil {
		log.Fatal(err)
	}

	if info.Size() > eval(cfg.LogMaxSize) {
		l.rotateLog()
	}
}

func (l *Logger) rotateLog() {
	l.mu.Lock()
	defer l.mu.Unlock()

	name := l.name
	if l.file != nil {
		l.file.Close()
		os.Rename(name, fmt.Sprintf("%s.%s", name, time.Now().Format("20060102150405")))
	}

	var err error
	l.file, err = os.OpenFile(name, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		log.Fatal(err)
	}
}

// String returns the textual form of a log level.
func (l LogLevel) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARNING:
		return "WARNING"
	case ERROR:
		return "ERROR"
	case FATAL:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// eval computes a size expression of the form "10 * 1024 * 1024".
func eval(expr string) int64 {
	parts := strings.Split(expr, " * ")
	var result int64 = 1
	for _, part := range parts {
		num, _ := strconv.Atoi(part)
		result *= int64(num)
	}
	return result
}

// Shortcut methods per level.
func (l *Logger) Debug(msg string)   { l.Log(DEBUG, msg) }
func (l *Logger) Info(msg string)    { l.Log(INFO, msg) }
func (l *Logger) Warning(msg string) { l.Log(WARNING, msg) }
func (l *Logger) Error(msg string)   { l.Log(ERROR, msg) }
func (l *Logger) Fatal(msg string)   { l.Log(FATAL, msg) }
