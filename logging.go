// SPDX-License-Identifier: EPL-2.0

package gameaudio

import (
	"log/slog"
	"os"
	"sync/atomic"
)

// LogLevel controls how much the engine reports about its own activity.
// Logging is purely diagnostic and never changes engine behavior.
type LogLevel int

const (
	LogOff LogLevel = iota
	LogError
	LogWarn
	LogInfo
	LogDebug
)

// String returns the level name for diagnostics.
func (l LogLevel) String() string {
	switch l {
	case LogOff:
		return "off"
	case LogError:
		return "error"
	case LogWarn:
		return "warn"
	case LogInfo:
		return "info"
	case LogDebug:
		return "debug"
	default:
		return "unknown"
	}
}

// logOffLevel sits above every slog level so nothing passes the filter.
const logOffLevel = slog.Level(1 << 10)

var (
	logVar   = func() *slog.LevelVar { v := new(slog.LevelVar); v.Set(logOffLevel); return v }()
	logLevel atomic.Int32
	logger   = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logVar}))
)

// SetLogLevel sets the process-wide engine log level. The default is
// LogOff. Safe to call from any goroutine.
func SetLogLevel(l LogLevel) {
	logLevel.Store(int32(l))
	switch l {
	case LogError:
		logVar.Set(slog.LevelError)
	case LogWarn:
		logVar.Set(slog.LevelWarn)
	case LogInfo:
		logVar.Set(slog.LevelInfo)
	case LogDebug:
		logVar.Set(slog.LevelDebug)
	default:
		logVar.Set(logOffLevel)
	}
}

// CurrentLogLevel returns the last level passed to SetLogLevel.
func CurrentLogLevel() LogLevel {
	return LogLevel(logLevel.Load())
}
