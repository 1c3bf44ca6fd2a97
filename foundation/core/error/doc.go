// Package error provides the coded error type used across scaliger.
//
// Package: error
// Title: scaliger Error Handling
// Description: Structured errors carrying a classification code, a severity,
//              free-form details and the failing operation. The calendar engine
//              reports invalid field combinations and wrong operand kinds through
//              this type; the service layer maps codes onto gRPC status codes.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-16
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with contextual errors and codes
// - 2026-10-16 v0.2.0: Calendar codes, errors.As aware helpers, trimmed metadata
//
// Usage:
//
//	import mdwerror "github.com/msto63/scaliger/foundation/core/error"
//
//	err := mdwerror.New("no such calendar day").
//		WithCode(mdwerror.CodeInvalidDate).
//		WithDetail("year", 1582)
//
//	if mdwerror.HasCode(err, mdwerror.CodeInvalidDate) {
//		// ask the caller for different fields
//	}
package error
