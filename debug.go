package microfiche

import "github.com/BrugadaSyndrome/bslogger"

// SetDebugMode enables or disables engine logging. When enabled, moves,
// wraps, calibrations and skipped commands are logged under the
// "microfiche" name.
func (e *Engine) SetDebugMode(enabled bool) {
	e.debug = enabled
	if enabled && e.log == nil {
		l := bslogger.NewLogger("microfiche", bslogger.Normal, nil)
		e.log = &l
	}
}

// debugf logs a line when debug mode is on.
func (e *Engine) debugf(format string, args ...interface{}) {
	if !e.debug || e.log == nil {
		return
	}
	e.log.Infof(format, args...)
}

// warnf logs a warning when debug mode is on.
func (e *Engine) warnf(format string, args ...interface{}) {
	if !e.debug || e.log == nil {
		return
	}
	e.log.Warningf(format, args...)
}
