// Package loglib provides the leveled logger used across the analysis
package loglib

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

type Logger struct {
	mu     sync.Mutex
	stdout *logrus.Logger
}

var DefaultLogger *Logger
var defaultLoggerInit sync.Once

// New returns a logger writing to stdout at info level. The first logger
// created becomes the package default.
func New() *Logger {
	l := &Logger{
		stdout: logrus.New(),
	}
	l.SetLevel("info")
	if DefaultLogger == nil {
		defaultLoggerInit.Do(func() {
			DefaultLogger = l
		})
	}
	return l
}

// decorate attaches the calling position so log lines point back at the
// pipeline stage that emitted them
func (l *Logger) decorate(skip int) *logrus.Entry {
	if _, file, line, ok := runtime.Caller(skip); ok {
		path := strings.Split(file, string(os.PathSeparator))
		var position string
		if len(path) > 2 {
			position = fmt.Sprintf("%s:%d", strings.Join(path[len(path)-2:], string(os.PathSeparator)), line)
		} else {
			position = fmt.Sprintf("%s:%d", strings.Join(path, string(os.PathSeparator)), line)
		}
		return l.stdout.WithField("position", position)
	}
	return logrus.NewEntry(l.stdout)
}

func (l *Logger) Debug(format string, v ...interface{}) {
	l.decorate(2).Debugf(format, v...)
}

func (l *Logger) Info(format string, v ...interface{}) {
	l.decorate(2).Infof(format, v...)
}

func (l *Logger) Warn(format string, v ...interface{}) {
	l.decorate(2).Warnf(format, v...)
}

func (l *Logger) Error(format string, v ...interface{}) {
	l.decorate(2).Errorf(format, v...)
}

func (l *Logger) Fatal(format string, v ...interface{}) {
	l.decorate(2).Fatalf(format, v...)
}

// SetLevel accepts debug, info, warn or error; anything else falls back to info
func (l *Logger) SetLevel(level string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	switch strings.ToLower(level) {
	case "debug":
		l.stdout.Level = logrus.DebugLevel
	case "info":
		l.stdout.Level = logrus.InfoLevel
	case "warn":
		l.stdout.Level = logrus.WarnLevel
	case "error":
		l.stdout.Level = logrus.ErrorLevel
	default:
		l.stdout.Level = logrus.InfoLevel
	}
}

func (l *Logger) SetOutput(out io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.stdout.Out = out
}

func (l *Logger) GetOutput() io.Writer {
	if l.stdout != nil && l.stdout.Out != nil {
		return l.stdout.Out
	}
	return nil
}

// LogToFile tees the logger into dir/name next to stdout, creating dir when
// missing. The opened file stays open for the life of the process.
func (l *Logger) LogToFile(dir, name string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating log dir %s: %w", dir, err)
	}
	f, err := os.OpenFile(filepath.Join(dir, name), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	l.SetOutput(io.MultiWriter(os.Stdout, f))
	return nil
}
