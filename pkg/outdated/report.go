// Package outdated joins manifest dependencies with registry metadata and
// classifies each one as outdated, up to date, unknown, or skipped.
package outdated

import (
	"context"
	"fmt"
	"sort"

	"github.com/crateup/crateup/pkg/constants"
	"github.com/crateup/crateup/pkg/manifest"
	"github.com/crateup/crateup/pkg/registry"
	"github.com/crateup/crateup/pkg/versions"
)

// Entry is one direct dependency with its resolved metadata and
// classification.
//
// Fields:
//   - Dependency: The manifest declaration with its installed version
//   - Metadata: Registry or local-manifest metadata (nil when the lookup failed)
//   - Status: One of the constants.Status* classification values
//   - Reason: The human-readable cause for Skipped entries
//   - Err: The lookup error for Unknown entries
type Entry struct {
	Dependency manifest.Dependency
	Metadata   *registry.CrateMetadata
	Status     string
	Reason     string
	Err        error
}

// Latest returns the latest known version, or "" when the lookup failed.
func (e Entry) Latest() string {
	if e.Metadata == nil {
		return ""
	}
	return e.Metadata.LatestVersion
}

// Installed returns the resolved installed version.
func (e Entry) Installed() string {
	return e.Dependency.Installed
}

// Report is the outcome of a full dependency scan.
type Report struct {
	// Entries holds every scanned dependency, sorted by kind, then name.
	Entries []Entry

	// Total is the number of direct dependencies scanned.
	Total int
}

// Outdated returns the entries that belong in the update checklist.
func (r *Report) Outdated() []Entry {
	return r.withStatus(constants.StatusOutdated)
}

// UpToDate returns the entries already at their latest version.
func (r *Report) UpToDate() []Entry {
	return r.withStatus(constants.StatusUpToDate)
}

// Unknown returns the entries whose registry lookup failed.
func (r *Report) Unknown() []Entry {
	return r.withStatus(constants.StatusUnknown)
}

// Skipped returns the entries excluded from comparison.
func (r *Report) Skipped() []Entry {
	return r.withStatus(constants.StatusSkipped)
}

// RegistryUnreachable reports whether every registry lookup of the scan
// failed. Local and skipped-before-lookup dependencies do not count; a scan
// that never reached the registry is not "unreachable".
func (r *Report) RegistryUnreachable() bool {
	attempted, failed := 0, 0
	for _, e := range r.Entries {
		if e.Dependency.IsLocal() || e.Dependency.Requirement == "" {
			continue
		}
		attempted++
		if e.Status == constants.StatusUnknown {
			failed++
		}
	}
	return attempted > 0 && failed == attempted
}

func (r *Report) withStatus(status string) []Entry {
	var entries []Entry
	for _, e := range r.Entries {
		if e.Status == status {
			entries = append(entries, e)
		}
	}
	return entries
}

// classify assigns the status of a single dependency once its metadata
// lookup has completed.
func classify(dep manifest.Dependency, meta *registry.CrateMetadata, err error) Entry {
	entry := Entry{Dependency: dep, Metadata: meta, Err: err}

	switch {
	case err != nil:
		entry.Status = constants.StatusUnknown
	case meta == nil:
		entry.Status = constants.StatusSkipped
		entry.Reason = skipReason(dep)
	case dep.Installed == "":
		entry.Status = constants.StatusSkipped
		entry.Reason = "installed version unknown"
	case !versions.IsValid(dep.Installed) || !versions.IsValid(meta.LatestVersion):
		entry.Status = constants.StatusSkipped
		entry.Reason = fmt.Sprintf("cannot compare %q against %q", dep.Installed, meta.LatestVersion)
	case versions.IsNewer(meta.LatestVersion, dep.Installed):
		entry.Status = constants.StatusOutdated
	default:
		entry.Status = constants.StatusUpToDate
	}

	return entry
}

// skipReason names why a dependency never reached a metadata lookup.
func skipReason(dep manifest.Dependency) string {
	if dep.Git != "" {
		return "git dependency"
	}
	return "no version requirement"
}

// BuildReport resolves the latest version of every dependency and classifies
// the results.
//
// It performs the following operations:
//   - Reads path dependencies from their local manifests
//   - Looks up registry dependencies concurrently, bounded by concurrency
//   - Skips dependencies that declare no comparable version
//   - Sorts the classified entries by kind, then name
//
// The progress callback, when non-nil, fires once per processed dependency
// and must be safe for concurrent use.
func BuildReport(ctx context.Context, client *registry.Client, m *manifest.Manifest, concurrency int, progress func()) *Report {
	deps := m.Dependencies
	entries := make([]Entry, len(deps))

	var reqs []registry.Request
	var reqIdx []int

	for i, dep := range deps {
		switch {
		case dep.IsLocal():
			meta, err := localMetadata(m.Dir, dep)
			entries[i] = classify(dep, meta, err)
			tick(progress)
		case dep.Requirement == "":
			entries[i] = classify(dep, nil, nil)
			tick(progress)
		default:
			reqs = append(reqs, registry.Request{Crate: dep.Crate, Installed: dep.Installed})
			reqIdx = append(reqIdx, i)
		}
	}

	outcomes := client.FetchAll(ctx, reqs, concurrency, progress)
	for n, outcome := range outcomes {
		i := reqIdx[n]
		entries[i] = classify(deps[i], outcome.Metadata, outcome.Err)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Dependency.Kind != entries[j].Dependency.Kind {
			return entries[i].Dependency.Kind < entries[j].Dependency.Kind
		}
		return entries[i].Dependency.Name < entries[j].Dependency.Name
	})

	return &Report{Entries: entries, Total: len(deps)}
}

// localMetadata builds registry-shaped metadata for a path dependency from
// its own manifest. An unreadable local manifest classifies the entry as
// unknown, like a failed registry lookup.
func localMetadata(baseDir string, dep manifest.Dependency) (*registry.CrateMetadata, error) {
	local, err := manifest.ReadLocal(baseDir, dep.Path)
	if err != nil {
		return nil, err
	}
	return &registry.CrateMetadata{
		LatestVersion: local.Version,
		Repository:    local.Repository,
		Description:   local.Description,
	}, nil
}

func tick(progress func()) {
	if progress != nil {
		progress()
	}
}
