// Package logging provides the program's levelled logging facade.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"framerec/internal/domain/consts"

	"github.com/rs/zerolog"
)

var (
	Level int = -1 // Pre initialization
	mu    sync.Mutex

	console = zerolog.New(zerolog.ConsoleWriter{
		Out:          os.Stdout,
		PartsExclude: []string{zerolog.TimestampFieldName},
	})
	fileLog  *zerolog.Logger
	fileDest io.Closer
)

// SetupLogging opens (or creates) the log file and attaches a JSON logger to it.
func SetupLogging(logFilePath string) error {
	mu.Lock()
	defer mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(logFilePath), consts.PermsGenericDir); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, consts.PermsLogFile)
	if err != nil {
		return fmt.Errorf("failed to open log file %q: %w", logFilePath, err)
	}

	l := zerolog.New(f).With().Timestamp().Logger()
	fileLog = &l
	fileDest = f
	return nil
}

// SetOutput redirects console output, mainly for tests and quiet runs.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()

	console = zerolog.New(zerolog.ConsoleWriter{
		Out:          w,
		NoColor:      true,
		PartsExclude: []string{zerolog.TimestampFieldName},
	})
}

// Close flushes and closes the log file, if one is open.
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	if fileDest == nil {
		return nil
	}
	err := fileDest.Close()
	fileDest = nil
	fileLog = nil
	return err
}

// E logs an error with the calling function, file and line attached.
func E(format string, args ...any) {
	pc, file, line, _ := runtime.Caller(1)
	funcName := filepath.Base(runtime.FuncForPC(pc).Name())

	write(zerolog.ErrorLevel, func(e *zerolog.Event) *zerolog.Event {
		return e.Str("function", funcName).Str("file", filepath.Base(file)).Int("line", line)
	}, format, args...)
}

// W logs a warning.
func W(format string, args ...any) {
	write(zerolog.WarnLevel, nil, format, args...)
}

// I logs an info message.
func I(format string, args ...any) {
	write(zerolog.InfoLevel, nil, format, args...)
}

// P prints a plain message without a level tag.
func P(format string, args ...any) {
	write(zerolog.NoLevel, nil, format, args...)
}

// S logs a success message if the debug level is at least l.
func S(l int, format string, args ...any) {
	if l > Level {
		return
	}
	write(zerolog.InfoLevel, func(e *zerolog.Event) *zerolog.Event {
		return e.Bool("success", true)
	}, format, args...)
}

// D logs a debug message if the debug level is at least l.
func D(l int, format string, args ...any) {
	if l > Level {
		return
	}
	pc, _, line, _ := runtime.Caller(1)
	funcName := filepath.Base(runtime.FuncForPC(pc).Name())

	write(zerolog.DebugLevel, func(e *zerolog.Event) *zerolog.Event {
		return e.Str("function", funcName).Int("line", line)
	}, format, args...)
}

// ******************************** Private ********************************

// write sends a formatted message to the console and, when set up, the log file.
func write(lvl zerolog.Level, decorate func(*zerolog.Event) *zerolog.Event, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()

	msg := format
	if len(args) != 0 {
		msg = fmt.Sprintf(format, args...)
	}

	emit := func(l zerolog.Logger) {
		e := l.WithLevel(lvl)
		if decorate != nil {
			e = decorate(e)
		}
		e.Msg(msg)
	}

	emit(console)
	if fileLog != nil {
		emit(*fileLog)
	}
}
