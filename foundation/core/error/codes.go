// File: codes.go
// Title: Error Code Definitions
// Description: Standardized error codes used to classify failures of the
//              calendar engine, the configuration layer and the service.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-16
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with core error codes
// - 2026-10-16 v0.2.0: Calendar codes, dropped platform specific codes

package error

// Code represents a structured error code for categorizing errors
type Code string

const (
	// Generic codes
	CodeUnknown      Code = "UNKNOWN"
	CodeInternal     Code = "INTERNAL"
	CodeNotFound     Code = "NOT_FOUND"
	CodeInvalidInput Code = "INVALID_INPUT"
	CodeTimeout      Code = "TIMEOUT"

	// Calendar
	CodeInvalidDate         Code = "INVALID_DATE"
	CodeInvalidArgumentType Code = "INVALID_ARGUMENT_TYPE"

	// Service and network
	CodeServiceUnavailable    Code = "SERVICE_UNAVAILABLE"
	CodeServiceInitialization Code = "SERVICE_INITIALIZATION"
	CodeConnectionFailed      Code = "CONNECTION_FAILED"

	// Configuration
	CodeConfigError   Code = "CONFIG_ERROR"
	CodeInvalidConfig Code = "INVALID_CONFIG"
)

// String returns the string representation of the error code
func (c Code) String() string {
	return string(c)
}

// IsValid checks if the error code is a known code
func (c Code) IsValid() bool {
	switch c {
	case CodeUnknown, CodeInternal, CodeNotFound, CodeInvalidInput, CodeTimeout,
		CodeInvalidDate, CodeInvalidArgumentType,
		CodeServiceUnavailable, CodeServiceInitialization, CodeConnectionFailed,
		CodeConfigError, CodeInvalidConfig:
		return true
	default:
		return false
	}
}

// Category returns the high-level category of the error code
func (c Code) Category() string {
	switch c {
	case CodeInvalidDate, CodeInvalidArgumentType:
		return "calendar"
	case CodeServiceUnavailable, CodeServiceInitialization, CodeConnectionFailed:
		return "service"
	case CodeConfigError, CodeInvalidConfig:
		return "configuration"
	default:
		return "generic"
	}
}

// IsCallerError reports whether the code means the caller must supply
// different input. Such errors are never worth retrying.
func (c Code) IsCallerError() bool {
	switch c {
	case CodeInvalidDate, CodeInvalidArgumentType, CodeInvalidInput, CodeNotFound:
		return true
	default:
		return false
	}
}
