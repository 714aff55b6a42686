package logging

import (
	"fmt"
	"os"
	"sync/atomic"
)

var debugEnabled atomic.Bool

// SetDebug turns debug output on or off. The root command sets it from
// the resolved configuration (TM_APP_DEBUG or --debug).
func SetDebug(on bool) {
	debugEnabled.Store(on)
}

// DebugEnabled returns true if debug mode has been switched on
func DebugEnabled() bool {
	return debugEnabled.Load()
}

// Debugf prints a formatted debug message to stderr only if debug mode is enabled
func Debugf(format string, args ...interface{}) {
	if DebugEnabled() {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}
