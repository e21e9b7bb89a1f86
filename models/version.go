// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"fmt"
	"regexp"
	"strconv"
)

var (
	// versionPattern accepts exactly a semantic triple, nothing more.
	versionPattern = regexp.MustCompile(`^(\d+)\.(\d+)\.(\d+)$`)

	// migrationVersionPattern extracts the schema version embedded in a
	// migration identifier of the form
	// <timestamp>_<major.minor.patch>-<description>.
	migrationVersionPattern = regexp.MustCompile(`_(\d+\.\d+\.\d+)-`)
)

// VaultVersion is the schema version of a vault snapshot: a semantic
// triple plus the migration identifier it was extracted from.
type VaultVersion struct {
	Major int `json:"major"`
	Minor int `json:"minor"`
	Patch int `json:"patch"`

	// Migration is the identifier the version was parsed out of,
	// kept opaque for diagnostics. Empty when the version came from
	// a bare version string.
	Migration string `json:"migration,omitempty"`
}

// ParseVaultVersion parses a bare major.minor.patch string.
func ParseVaultVersion(s string) (VaultVersion, error) {
	m := versionPattern.FindStringSubmatch(s)
	if m == nil {
		return VaultVersion{}, fmt.Errorf("malformed vault version %q", s)
	}

	major, _ := strconv.Atoi(m[1])
	minor, _ := strconv.Atoi(m[2])
	patch, _ := strconv.Atoi(m[3])

	return VaultVersion{Major: major, Minor: minor, Patch: patch}, nil
}

// ExtractVaultVersion pulls the schema version out of a migration
// identifier. Identifiers carry the version between the first underscore
// and the dash that starts the description.
func ExtractVaultVersion(migration string) (VaultVersion, error) {
	m := migrationVersionPattern.FindStringSubmatch(migration)
	if m == nil {
		return VaultVersion{}, fmt.Errorf("no vault version in migration identifier %q", migration)
	}

	v, err := ParseVaultVersion(m[1])
	if err != nil {
		return VaultVersion{}, err
	}
	v.Migration = migration

	return v, nil
}

// String renders the version as major.minor.patch.
func (v VaultVersion) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// SameMajor reports whether both versions share a major version,
// the condition under which snapshots are considered mergeable.
func (v VaultVersion) SameMajor(other VaultVersion) bool {
	return v.Major == other.Major
}

// CompatibilityResult is the outcome of checking a remote snapshot's
// version against the running client's version registry.
type CompatibilityResult struct {
	// IsCompatible is true when the remote snapshot may be merged:
	// either an exactly known version or an unknown version sharing
	// the native major.
	IsCompatible bool `json:"is_compatible"`

	// IsKnownVersion is true only when the remote version exactly
	// matches an entry of the registry.
	IsKnownVersion bool `json:"is_known_version"`

	// Native is the running client's own schema version.
	Native string `json:"native"`

	// Remote is the version the check was performed against.
	Remote string `json:"remote"`
}
