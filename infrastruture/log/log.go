// Package log writes prefixed, leveled and colored log lines.
package log

import (
	"errors"
	"fmt"
	"io"
	"log"
	"sync/atomic"

	"github.com/beka-birhanu/vinom-explorer/config"
)

// Logger implements i.Logger on top of the standard logger. Lines look like
//
//	2025/02/08 11:01:49 [APP] [INFO] Router initialized
//
// with the prefix in the logger color and the level in its own.
type Logger struct {
	out   *log.Logger
	debug atomic.Bool
}

// New returns a logger writing to w. Debug lines are off until SetDebug(true).
func New(prefix, color string, w io.Writer) (*Logger, error) {
	if w == nil {
		return nil, errors.New("log: nil writer")
	}
	if prefix == "" {
		return nil, errors.New("log: empty prefix")
	}
	return &Logger{
		out: log.New(w, fmt.Sprintf("%s[%s]%s ", color, prefix, config.ColorReset), log.LstdFlags|log.Lmsgprefix),
	}, nil
}

// SetDebug turns debug lines on or off.
func (l *Logger) SetDebug(on bool) {
	l.debug.Store(on)
}

func (l *Logger) Info(msg string) {
	l.print(config.LogInfoColor, "INFO", msg)
}

func (l *Logger) Warn(msg string) {
	l.print(config.LogWarnColor, "WARN", msg)
}

func (l *Logger) Error(msg string) {
	l.print(config.LogErrorColor, "ERROR", msg)
}

func (l *Logger) Debug(msg string) {
	if l.debug.Load() {
		l.print(config.LogDebugColor, "DEBUG", msg)
	}
}

func (l *Logger) print(color, level, msg string) {
	l.out.Printf("%s[%s]%s %s", color, level, config.LogColorReset, msg)
}
