package logger

import (
	"fmt"
	"sync/atomic"
	"time"
)

// Logger writes leveled, subsystem-tagged messages into a Backend. A
// Logger's level gates which calls actually produce output: messages below
// it are dropped before they are formatted, and the rest are handed to the
// backend's write channel, where each writer's own level does the final
// filtering. The level is read and written atomically, so SetLevel takes
// effect immediately and may be called while other goroutines log.
type Logger struct {
	level        uint32 // atomic access only, see Level/SetLevel
	subsystemTag string
	backend      *Backend
	writeChan    chan logEntry
}

// Level returns the logger's current severity threshold.
func (l *Logger) Level() Level {
	return Level(atomic.LoadUint32(&l.level))
}

// SetLevel changes the logger's severity threshold.
func (l *Logger) SetLevel(level Level) {
	atomic.StoreUint32(&l.level, uint32(level))
}

func (l *Logger) write(level Level, msg string) {
	if level < l.Level() {
		return
	}
	line := fmt.Sprintf("%s [%s] %s: %s\n", time.Now().Format("2006-01-02 15:04:05.000"), level, l.subsystemTag, msg)
	l.writeChan <- logEntry{level: level, log: []byte(line)}
}

// Tracef logs a formatted message at LevelTrace.
func (l *Logger) Tracef(format string, args ...interface{}) { l.write(LevelTrace, fmt.Sprintf(format, args...)) }

// Debugf logs a formatted message at LevelDebug.
func (l *Logger) Debugf(format string, args ...interface{}) { l.write(LevelDebug, fmt.Sprintf(format, args...)) }

// Infof logs a formatted message at LevelInfo.
func (l *Logger) Infof(format string, args ...interface{}) { l.write(LevelInfo, fmt.Sprintf(format, args...)) }

// Warnf logs a formatted message at LevelWarn.
func (l *Logger) Warnf(format string, args ...interface{}) { l.write(LevelWarn, fmt.Sprintf(format, args...)) }

// Errorf logs a formatted message at LevelError.
func (l *Logger) Errorf(format string, args ...interface{}) { l.write(LevelError, fmt.Sprintf(format, args...)) }

// Criticalf logs a formatted message at LevelCritical.
func (l *Logger) Criticalf(format string, args ...interface{}) {
	l.write(LevelCritical, fmt.Sprintf(format, args...))
}
