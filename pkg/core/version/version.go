// ============================================================================
// Scaliger - Calendar Arithmetic Service
// ============================================================================
//
// Package:     version
// Description: Central version management for all binaries
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package version

import (
	"fmt"
	"runtime"
)

// Version constants for all components
const (
	// Platform version
	Platform = "1.0.0"

	// Component versions
	Calendar = "1.0.0" // foundation/calendar
	Server   = "1.0.0" // cmd/scaliger
	CLI      = "1.0.0" // cmd/scal
	API      = "v1"    // scaliger.v1.Calendar
)

// Build metadata, set with -ldflags "-X ...version.Commit=..."
var (
	Commit    = "unknown"
	BuildDate = "unknown"
)

// ServiceVersion returns the version for a given component name
func ServiceVersion(name string) string {
	switch name {
	case "calendar":
		return Calendar
	case "scaliger", "server":
		return Server
	case "scal", "cli":
		return CLI
	default:
		return Platform
	}
}

// String returns a one-line description of the named component's build
func String(name string) string {
	return fmt.Sprintf("%s %s (api %s, commit %s, built %s, %s)",
		name, ServiceVersion(name), API, Commit, BuildDate, runtime.Version())
}
