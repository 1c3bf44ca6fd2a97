// File: severity.go
// Title: Error Severity Levels
// Description: Severity levels used to decide how loudly an error is logged.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-16
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with severity levels
// - 2026-10-16 v0.2.0: Severity mapping for calendar codes

package error

// Severity represents the severity level of an error
type Severity int

const (
	// SeverityLow is a caller mistake, e.g. a date that does not exist
	SeverityLow Severity = iota

	// SeverityMedium affects a single request
	SeverityMedium

	// SeverityHigh affects the whole service, e.g. a failed startup
	SeverityHigh

	// SeverityCritical makes the service unusable
	SeverityCritical
)

// String returns the string representation of the severity level
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// ShouldAlert returns true if this severity level should trigger alerts
func (s Severity) ShouldAlert() bool {
	return s >= SeverityHigh
}

// GetSeverityFromCode determines the default severity for an error code
func GetSeverityFromCode(code Code) Severity {
	switch code {
	case CodeServiceUnavailable:
		return SeverityCritical
	case CodeServiceInitialization, CodeConnectionFailed, CodeInvalidConfig, CodeConfigError:
		return SeverityHigh
	case CodeInvalidDate, CodeInvalidArgumentType, CodeInvalidInput, CodeNotFound:
		return SeverityLow
	default:
		return SeverityMedium
	}
}
