// Package logger holds the process-wide zap logger used by spyglass.
package logger

import "go.uber.org/zap"

// Log is the shared logger. It defaults to a no-op logger so library
// consumers that never call Init pay nothing for it.
var Log = zap.NewNop()

// Init replaces the shared logger with a development logger.
// Call once at startup, before any systems run.
func Init(debug bool) error {
	var (
		l   *zap.Logger
		err error
	)
	if debug {
		l, err = zap.NewDevelopment()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		return err
	}
	Log = l
	return nil
}
