package logger

import "time"

// LogAndMeasureExecutionTime logs functionName's start at LevelDebug and
// returns a func to be deferred that logs its completion along with the
// elapsed time.
func LogAndMeasureExecutionTime(log *Logger, functionName string) (onEnd func()) {
	start := time.Now()
	log.Debugf("%s start", functionName)
	return func() {
		log.Debugf("%s end. Took: %s", functionName, time.Since(start))
	}
}
