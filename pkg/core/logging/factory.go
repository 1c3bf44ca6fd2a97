// ============================================================================
// Scaliger - Calendar Arithmetic Service
// ============================================================================
//
// Package:     logging
// Description: Factory functions for creating service loggers
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package logging

import (
	"io"
	"os"

	mdwlog "github.com/msto63/scaliger/foundation/core/log"
)

// Environment variables read by DefaultLoggerConfig
const (
	EnvLogLevel  = "SCALIGER_LOG_LEVEL"
	EnvLogFormat = "SCALIGER_LOG_FORMAT"
)

// LoggerConfig holds configuration for creating loggers
type LoggerConfig struct {
	// Service name
	ServiceName string

	// Log level (trace, debug, info, warn, error, fatal)
	Level string

	// Output format: json, text or logfmt (default: json)
	Format string

	// Output writer (default: stdout)
	Output io.Writer

	// Additional outputs besides Output
	AdditionalOutputs []io.Writer
}

// DefaultLoggerConfig returns a default configuration, taking level and
// format from the environment when set
func DefaultLoggerConfig(serviceName string) LoggerConfig {
	cfg := LoggerConfig{
		ServiceName: serviceName,
		Level:       "info",
		Format:      "json",
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		cfg.Format = v
	}
	return cfg
}

// NewLogger creates a new Foundation logger
func NewLogger(cfg LoggerConfig) *mdwlog.Logger {
	var output io.Writer = os.Stdout
	if cfg.Output != nil {
		output = cfg.Output
	}

	if len(cfg.AdditionalOutputs) > 0 {
		writers := append([]io.Writer{output}, cfg.AdditionalOutputs...)
		output = io.MultiWriter(writers...)
	}

	return mdwlog.NewWithConfig(mdwlog.Config{
		Level:  parseLevel(cfg.Level),
		Format: parseFormat(cfg.Format),
		Output: output,
		Name:   cfg.ServiceName,
	})
}

// NewServiceLogger creates a logger for a service at the given level
func NewServiceLogger(serviceName string, level string) *mdwlog.Logger {
	cfg := DefaultLoggerConfig(serviceName)
	if level != "" {
		cfg.Level = level
	}
	return NewLogger(cfg)
}

// NewSimpleLogger creates a logger with the default configuration
func NewSimpleLogger(serviceName string) *mdwlog.Logger {
	return NewLogger(DefaultLoggerConfig(serviceName))
}

// parseLevel converts a string level to mdwlog.Level; unknown names mean info
func parseLevel(level string) mdwlog.Level {
	l, err := mdwlog.ParseLevel(level)
	if err != nil {
		return mdwlog.LevelInfo
	}
	return l
}

func parseFormat(format string) mdwlog.Format {
	f, err := mdwlog.ParseFormat(format)
	if err != nil {
		return mdwlog.FormatJSON
	}
	return f
}
