// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

// Package version supplies the build/version record described by spec
// §6, supplemented from original_source's version.c/info.c (see
// SPEC_FULL §4): a monotonic build id, a "major.minor.rev" string, a
// build kind, and the probed system/arch/feature fields from env.Probe.
package version

import (
	"fmt"

	"github.com/TomCrypto/ordo/internal/env"
)

// buildID is incremented whenever the wire-visible behavior of this
// module changes in a way a caller might need to branch on. It is not
// tied to the module's semver tag.
const buildID = 1

// Major, Minor, Rev make up this build's "major.minor.rev" version
// string.
const (
	Major = 0
	Minor = 1
	Rev   = 0
)

// Build identifies whether this binary was built with assertions/debug
// instrumentation enabled. Ordo does not currently distinguish builds, so
// this is always "Release".
const Build = "Release"

// Info is the version record exposed by ordo.Version().
type Info struct {
	// ID is this build's monotonic identifier.
	ID int

	// Version is "major.minor.rev".
	Version string

	// Build is "Debug" or "Release".
	Build string

	// System is the probed OS family name.
	System string

	// Arch is the probed CPU architecture.
	Arch string

	// FeatureList is Features joined with a comma, for display.
	FeatureList string

	// Features lists the probed runtime feature/capability names.
	Features []string
}

// Current reports this build's version record, probing the environment
// fresh each call (the probe itself is cheap and side-effect free; it is
// ordo.Init's job, not version's, to freeze this once per process if a
// caller wants a stable snapshot).
func Current() Info {
	p := env.Current()
	return Info{
		ID:          buildID,
		Version:     fmt.Sprintf("%d.%d.%d", Major, Minor, Rev),
		Build:       Build,
		System:      p.System,
		Arch:        p.Arch,
		FeatureList: joinComma(p.Features),
		Features:    p.Features,
	}
}

func joinComma(ss []string) string {
	out := ""
	for i, s := range ss {
		if i > 0 {
			out += ","
		}
		out += s
	}
	return out
}
