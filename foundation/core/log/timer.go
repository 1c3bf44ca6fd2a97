// File: timer.go
// Title: Operation Timer
// Description: Measures the duration of an operation and logs it on Stop.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-16
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation
// - 2026-10-16 v0.2.0: Duration carried on the entry instead of fields

package log

import (
	"time"
)

// Timer measures a single operation
type Timer struct {
	logger    *Logger
	operation string
	start     time.Time
	fields    Fields
	level     Level
	stopped   bool
}

// NewTimer creates and starts a timer for operation
func NewTimer(logger *Logger, operation string) *Timer {
	return &Timer{
		logger:    logger,
		operation: operation,
		start:     time.Now(),
		fields:    Fields{"operation": operation},
		level:     LevelDebug,
	}
}

// WithField adds a field to the completion message
func (t *Timer) WithField(key string, value interface{}) *Timer {
	t.fields[key] = value
	return t
}

// Elapsed returns the time since the timer was started
func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.start)
}

// Stop logs the completion message once and returns the elapsed time.
// Later calls return zero.
func (t *Timer) Stop() time.Duration {
	return t.stop(t.level, nil)
}

// StopWithError logs a failed completion at error level
func (t *Timer) StopWithError(err error) time.Duration {
	return t.stop(LevelError, err)
}

func (t *Timer) stop(level Level, err error) time.Duration {
	if t.stopped {
		return 0
	}
	t.stopped = true

	elapsed := t.Elapsed()
	if t.logger == nil {
		return elapsed
	}
	message := t.operation + " completed"
	if err != nil {
		message = t.operation + " failed"
	}
	t.logger.log(level, message, err, elapsed, t.fields)
	return elapsed
}
