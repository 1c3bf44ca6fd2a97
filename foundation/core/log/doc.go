// Package log provides structured logging for scaliger.
//
// Package: log
// Title: scaliger Structured Logging
// Description: Leveled, structured logger with JSON, text and logfmt output.
//              Loggers are immutable from the caller's point of view: every
//              With* method returns a configured clone, so request scoped
//              loggers can be derived freely from a shared base logger.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-16
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with structured logging
// - 2026-10-16 v0.2.0: Deterministic field order, severity aware LogError,
//                      removed async mode and console colors
//
// Usage:
//
//	logger := log.NewWithConfig(log.Config{Level: log.LevelDebug, Format: log.FormatText, Name: "scaliger"})
//	logger.WithRequestID(id).Info("resolved", log.Fields{"jd": 2451604})
package log
