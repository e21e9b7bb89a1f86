package service

import (
	"fmt"

	"github.com/MKhiriev/go-vault-sync/models"
)

// compatService is the concrete implementation of CompatService.
// It holds an ordered, append-only registry of schema versions known to
// the running client; the last entry is the client's native version.
// Checking is a purely in-memory comparison, so no storage layer or
// logger is required.
type compatService struct {
	registry []models.VaultVersion
	known    map[string]struct{}
	native   models.VaultVersion
}

// NewCompatService constructs a CompatService from version strings in
// ascending release order. At least one version is required; the last
// one becomes the native version.
func NewCompatService(versions []string) (CompatService, error) {
	if len(versions) == 0 {
		return nil, fmt.Errorf("version registry is empty")
	}

	registry := make([]models.VaultVersion, 0, len(versions))
	known := make(map[string]struct{}, len(versions))
	for _, raw := range versions {
		v, err := models.ParseVaultVersion(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid registry entry: %w", err)
		}
		if _, dup := known[v.String()]; dup {
			continue
		}
		registry = append(registry, v)
		known[v.String()] = struct{}{}
	}

	return &compatService{
		registry: registry,
		known:    known,
		native:   registry[len(registry)-1],
	}, nil
}

// NewCompatServiceFromMigrations builds the registry from an ordered
// migration history. Each identifier embeds its schema version as
// <timestamp>_<major.minor.patch>-<description>; consecutive migrations
// may repeat a version and are collapsed into one registry entry.
func NewCompatServiceFromMigrations(migrations []string) (CompatService, error) {
	versions := make([]string, 0, len(migrations))
	for _, m := range migrations {
		v, err := models.ExtractVaultVersion(m)
		if err != nil {
			return nil, fmt.Errorf("building version registry: %w", err)
		}
		versions = append(versions, v.String())
	}

	return NewCompatService(versions)
}

// CheckCompatibility implements CompatService.
//
// Decision order:
//  1. malformed version string → incompatible, unknown;
//  2. exact registry match → compatible, known;
//  3. same major as native → compatible but unknown (schema evolution
//     within a major is assumed additive);
//  4. different major → incompatible.
//
// The check is pure: it never mutates the registry and has no side
// effects. Callers must treat IsCompatible=false as a hard gate and
// refuse to merge rather than attempt a lossy reconciliation.
func (s *compatService) CheckCompatibility(remote string) models.CompatibilityResult {
	result := models.CompatibilityResult{
		Native: s.native.String(),
		Remote: remote,
	}

	remoteVersion, err := models.ParseVaultVersion(remote)
	if err != nil {
		return result
	}

	if _, ok := s.known[remoteVersion.String()]; ok {
		result.IsCompatible = true
		result.IsKnownVersion = true
		return result
	}

	if remoteVersion.SameMajor(s.native) {
		result.IsCompatible = true
		return result
	}

	return result
}

// Native implements CompatService.
func (s *compatService) Native() models.VaultVersion {
	return s.native
}
