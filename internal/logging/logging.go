package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

const defaultLogFile = "tmux-bitflags.log"

var (
	mu           sync.Mutex
	traceEnabled bool
	debugEnabled bool
	logPath      = defaultLogFile
	out          io.Writer
	file         *os.File

	textLogger  = newLogger(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	traceLogger = newLogger(&logrus.JSONFormatter{FieldMap: logrus.FieldMap{logrus.FieldKeyMsg: "event"}})
)

func newLogger(formatter logrus.Formatter) *logrus.Logger {
	l := logrus.New()
	l.SetFormatter(formatter)
	l.SetLevel(logrus.DebugLevel)
	l.SetOutput(io.Discard)
	return l
}

// writer returns the current destination, opening the log file on first use.
// Callers must hold mu.
func writer() io.Writer {
	if out != nil {
		return out
	}
	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging failed: %v\n", err)
		return nil
	}
	file = f
	out = f
	return out
}

func emit(l *logrus.Logger, fn func(*logrus.Logger)) {
	mu.Lock()
	defer mu.Unlock()
	w := writer()
	if w == nil {
		return
	}
	l.SetOutput(w)
	fn(l)
}

// Error writes err to the shared log file.
func Error(err error) {
	if err == nil {
		return
	}
	emit(textLogger, func(l *logrus.Logger) { l.Error(err) })
}

// Warn records a recoverable problem, such as a dropped configuration entry.
func Warn(msg string, fields map[string]interface{}) {
	emit(textLogger, func(l *logrus.Logger) { l.WithFields(fields).Warn(msg) })
}

// Debugf writes a diagnostic line when debug logging is enabled.
func Debugf(format string, args ...interface{}) {
	mu.Lock()
	enabled := debugEnabled
	mu.Unlock()
	if !enabled {
		return
	}
	emit(textLogger, func(l *logrus.Logger) { l.Debugf(format, args...) })
}

// SetTraceEnabled toggles emission of structured trace entries.
func SetTraceEnabled(enabled bool) {
	mu.Lock()
	traceEnabled = enabled
	mu.Unlock()
}

// SetDebugEnabled toggles Debugf output. The dictionary file's debug switch
// is applied here on every load.
func SetDebugEnabled(enabled bool) {
	mu.Lock()
	debugEnabled = enabled
	mu.Unlock()
}

// Trace appends a structured JSON entry to the shared log when tracing is enabled.
func Trace(event string, payload interface{}) {
	mu.Lock()
	enabled := traceEnabled
	mu.Unlock()
	if !enabled {
		return
	}
	emit(traceLogger, func(l *logrus.Logger) {
		entry := logrus.NewEntry(l)
		if payload != nil {
			entry = entry.WithField("payload", payload)
		}
		entry.Info(event)
	})
}

// Configure sets the log destination. Empty values fall back to the default
// path. Directories are created automatically when missing.
func Configure(path string) {
	mu.Lock()
	defer mu.Unlock()
	closeFile()
	if strings.TrimSpace(path) == "" {
		logPath = defaultLogFile
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "unable to create log directory: %v\n", err)
		logPath = defaultLogFile
		return
	}
	logPath = path
}

// SetOutput redirects all log output to w. Passing nil restores the file.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	closeFile()
	out = w
}

func closeFile() {
	if file != nil {
		file.Close()
		file = nil
	}
	out = nil
}
