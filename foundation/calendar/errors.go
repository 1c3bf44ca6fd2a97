// File: errors.go
// Title: Calendar Errors
// Description: Constructors for the two failures the engine reports.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-16
// Modified: 2026-10-16
//
// Change History:
// - 2026-10-16 v0.1.0: Initial implementation

package calendar

import (
	mdwerror "github.com/msto63/scaliger/foundation/core/error"
)

func invalidDate(operation string, details map[string]interface{}) error {
	return mdwerror.New("invalid date").
		WithCode(mdwerror.CodeInvalidDate).
		WithOperation(operation).
		WithDetails(details)
}

func invalidArgumentType(operation string, operand interface{}) error {
	return mdwerror.Newf("expected a day count, got %T", operand).
		WithCode(mdwerror.CodeInvalidArgumentType).
		WithOperation(operation)
}

// IsInvalidDate reports whether err means a field combination names no day.
func IsInvalidDate(err error) bool {
	return mdwerror.HasCode(err, mdwerror.CodeInvalidDate)
}

// IsInvalidArgumentType reports whether err means an operand had the wrong kind.
func IsInvalidArgumentType(err error) bool {
	return mdwerror.HasCode(err, mdwerror.CodeInvalidArgumentType)
}
