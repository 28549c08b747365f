package logger

import "github.com/pkg/errors"

// BackendLog is the logging backend used to create all of
// muhashutxostat's subsystem loggers.
var BackendLog = NewBackend()

var subsystemLoggers []*Logger

// InitLog attaches a trace-level log file and a warn-level error log file
// to BackendLog and starts it running.
func InitLog(logFile, errLogFile string) error {
	if err := BackendLog.AddLogFile(logFile, LevelTrace); err != nil {
		return errors.Errorf("error adding log file %s: %s", logFile, err)
	}
	if err := BackendLog.AddLogFile(errLogFile, LevelWarn); err != nil {
		return errors.Errorf("error adding log file %s: %s", errLogFile, err)
	}
	return BackendLog.Run()
}

// Subsystem returns a new logger for the given subsystem tag, registered
// so that SetLogLevels can later adjust every subsystem's level at once.
func Subsystem(tag string) *Logger {
	log := BackendLog.Logger(tag)
	subsystemLoggers = append(subsystemLoggers, log)
	return log
}

// SetLogLevels sets the logging level for every subsystem logger created
// so far via Subsystem.
func SetLogLevels(level string) error {
	lvl, ok := LevelFromString(level)
	if !ok {
		return errors.Errorf("invalid log level %s", level)
	}
	for _, log := range subsystemLoggers {
		log.SetLevel(lvl)
	}
	return nil
}
