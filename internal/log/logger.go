package log

import (
	"io"
	stdlog "log"
	"strings"
	"sync/atomic"
)

type Level int32

const (
	Debug Level = iota
	Info
	Warn
	Error
)

var current atomic.Int32

func init() {
	current.Store(int32(Info))
}

func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return Debug
	case "info", "":
		return Info
	case "warn", "warning":
		return Warn
	case "err", "error":
		return Error
	default:
		return Info
	}
}

func (l Level) String() string {
	switch l {
	case Debug:
		return "debug"
	case Warn:
		return "warn"
	case Error:
		return "error"
	default:
		return "info"
	}
}

func SetLevel(l Level) { current.Store(int32(l)) }

func CurrentLevel() Level { return Level(current.Load()) }

// SetOutput redirects the underlying standard logger. The terminal belongs
// to the UI, so callers point this at a file or io.Discard.
func SetOutput(w io.Writer) { stdlog.SetOutput(w) }

func Debugf(format string, v ...any) { logf(Debug, "[DEBUG] ", format, v...) }
func Infof(format string, v ...any)  { logf(Info, "[INFO] ", format, v...) }
func Warnf(format string, v ...any)  { logf(Warn, "[WARN] ", format, v...) }
func Errorf(format string, v ...any) { logf(Error, "[ERROR] ", format, v...) }

func logf(l Level, prefix, format string, v ...any) {
	if CurrentLevel() <= l {
		stdlog.Printf(prefix+format, v...)
	}
}
