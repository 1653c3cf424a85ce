// Package monitoring provides the module's pluggable diagnostic logging.
package monitoring

import (
	"log"
	"os"
)

// Logf is the package-level diagnostic logger. It defaults to log.Printf but may
// be replaced by SetLogger. Tests or embedding code can redirect or mute it.
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger replaces the package logger. Passing nil will set a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

var debugEnabled = os.Getenv("POINTTRACK_DEBUG") != ""

// Debugf logs through Logf only when POINTTRACK_DEBUG is set in the
// environment.
func Debugf(format string, v ...interface{}) {
	if debugEnabled {
		Logf("[debug] "+format, v...)
	}
}
