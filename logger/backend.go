// Package logger provides a leveled, subsystem-tagged logging backend for
// muhashutxostat and the utxoset collaborator, in the shape kaspad's
// infrastructure/logger uses: a Backend fans a stream of log entries out to
// one or more level-gated, rotated writers.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/jrick/logrotate/rotator"
	"github.com/pkg/errors"
)

// defaultFlags holds the flags that NewBackend gives a new Backend. It is
// set during package init from the LOGFLAGS environment variable. New
// logger backends can use other flags via NewBackendWithFlags.
var defaultFlags = getDefaultFlags()

// Flags recorded on a Backend. A Backend stores its flags, but no Logger
// output depends on them: log lines carry no callsite information
// whichever flags are set.
const (
	// LogFlagLongFile names the full-path callsite format, e.g.
	// /a/b/c/main.go:123 (LOGFLAGS=longfile).
	LogFlagLongFile uint32 = 1 << iota

	// LogFlagShortFile names the filename-only callsite format, e.g.
	// main.go:123 (LOGFLAGS=shortfile).
	LogFlagShortFile
)

func getDefaultFlags() (flags uint32) {
	for _, f := range strings.Split(os.Getenv("LOGFLAGS"), ",") {
		switch f {
		case "longfile":
			flags |= LogFlagLongFile
		case "shortfile":
			flags |= LogFlagShortFile
		}
	}
	return
}

const logsBuffer = 0

// Backend is a logging backend. Subsystems created from the backend write
// to the backend's writers. Backend provides atomic writes to the writers
// from all subsystems.
type Backend struct {
	flag      uint32
	isRunning uint32
	writers   []logWriter
	writeChan chan logEntry
	syncClose sync.Mutex
}

// NewBackendWithFlags configures a Backend to use the specified flags
// rather than the package defaults determined via the LOGFLAGS
// environment variable.
func NewBackendWithFlags(flags uint32) *Backend {
	return &Backend{flag: flags, writeChan: make(chan logEntry, logsBuffer)}
}

// NewBackend creates a new logger backend using the package's default flags.
func NewBackend() *Backend {
	return NewBackendWithFlags(defaultFlags)
}

const (
	defaultThresholdKB = 100 * 1000 // 100 MB logs by default.
	defaultMaxRolls    = 8          // keep 8 last logs by default.
)

type logEntry struct {
	level Level
	log   []byte
}

type logWriter interface {
	io.WriteCloser
	LogLevel() Level
}

type logWriterWrap struct {
	io.WriteCloser
	logLevel Level
}

func (lw logWriterWrap) LogLevel() Level {
	return lw.logLevel
}

// AddLogFile adds a file which the log will write into on a certain log
// level with the default log rotation settings. It creates the file if it
// doesn't already exist.
func (b *Backend) AddLogFile(logFile string, logLevel Level) error {
	return b.AddLogFileWithCustomRotator(logFile, logLevel, defaultThresholdKB, defaultMaxRolls)
}

// AddLogWriter adds an io.WriteCloser which the log will write into on a
// certain log level.
func (b *Backend) AddLogWriter(w io.WriteCloser, logLevel Level) error {
	if b.IsRunning() {
		return errors.New("the logger is already running")
	}
	b.writers = append(b.writers, logWriterWrap{WriteCloser: w, logLevel: logLevel})
	return nil
}

// AddLogFileWithCustomRotator adds a file which the log will write into on
// a certain log level, with the specified log rotation settings. It
// creates the file if it doesn't already exist.
func (b *Backend) AddLogFileWithCustomRotator(logFile string, logLevel Level, thresholdKB int64, maxRolls int) error {
	if b.IsRunning() {
		return errors.New("the logger is already running")
	}
	logDir, _ := filepath.Split(logFile)
	if logDir != "" {
		if err := os.MkdirAll(logDir, 0700); err != nil {
			return errors.Errorf("failed to create log directory: %+v", err)
		}
	}
	r, err := rotator.New(logFile, thresholdKB, false, maxRolls)
	if err != nil {
		return errors.Errorf("failed to create file rotator: %s", err)
	}
	b.writers = append(b.writers, logWriterWrap{WriteCloser: r, logLevel: logLevel})
	return nil
}

// Run launches the logger backend in a separate goroutine. It should only
// be called once.
func (b *Backend) Run() error {
	if !atomic.CompareAndSwapUint32(&b.isRunning, 0, 1) {
		return errors.New("the logger is already running")
	}
	go func() {
		defer func() {
			if err := recover(); err != nil {
				fmt.Fprintf(os.Stderr, "fatal error in logger.Backend goroutine: %+v\n", err)
				fmt.Fprintf(os.Stderr, "goroutine stacktrace: %s\n", debug.Stack())
			}
		}()
		b.runBlocking()
	}()
	return nil
}

func (b *Backend) runBlocking() {
	defer atomic.StoreUint32(&b.isRunning, 0)
	b.syncClose.Lock()
	defer b.syncClose.Unlock()

	for entry := range b.writeChan {
		for _, w := range b.writers {
			if entry.level >= w.LogLevel() {
				_, _ = w.Write(entry.log)
			}
		}
	}
}

// IsRunning returns true if Run has been called and Close has not.
func (b *Backend) IsRunning() bool {
	return atomic.LoadUint32(&b.isRunning) != 0
}

// Close finalizes all log rotators for this backend.
func (b *Backend) Close() {
	close(b.writeChan)
	b.syncClose.Lock()
	defer b.syncClose.Unlock()
	for _, w := range b.writers {
		_ = w.Close()
	}
}

// Logger returns a new logger for a particular subsystem that writes to
// Backend b. A tag describes the subsystem and is included in all log
// messages. The logger uses LevelOff by default until SetLevel is called.
func (b *Backend) Logger(subsystemTag string) *Logger {
	return &Logger{uint32(LevelOff), subsystemTag, b, b.writeChan}
}
