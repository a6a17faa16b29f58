package manifest

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/BurntSushi/toml"

	"github.com/crateup/crateup/pkg/verbose"
	"github.com/crateup/crateup/pkg/warnings"
)

// maxLockfileDepth bounds the upward directory walk when locating Cargo.lock,
// covering workspaces where the lockfile lives at the workspace root.
const maxLockfileDepth = 7

// LockPackage is one resolved package entry recorded in Cargo.lock.
type LockPackage struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
	Source  string `toml:"source"`
}

// Lockfile holds the resolved package set recorded in Cargo.lock, sorted by
// package name.
type Lockfile struct {
	Path     string
	Packages []LockPackage
}

type rawLockfile struct {
	Packages []LockPackage `toml:"package"`
}

// FindLockfile locates the nearest Cargo.lock, starting at dir and walking up
// at most maxLockfileDepth directories.
func FindLockfile(dir string) (string, error) {
	current := dir
	for i := 0; i < maxLockfileDepth; i++ {
		path := filepath.Join(current, "Cargo.lock")
		if Exists(path) {
			return path, nil
		}
		parent := filepath.Dir(current)
		if parent == current {
			break
		}
		current = parent
	}
	return "", fmt.Errorf("no Cargo.lock found within %d directories of %s", maxLockfileDepth, dir)
}

// ParseLockfile reads and decodes the lockfile at path. Package entries are
// sorted by name, then version, so lookups can binary search.
func ParseLockfile(path string) (*Lockfile, error) {
	var raw rawLockfile
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse lockfile %s: %w", path, err)
	}

	sort.SliceStable(raw.Packages, func(i, j int) bool {
		if raw.Packages[i].Name != raw.Packages[j].Name {
			return raw.Packages[i].Name < raw.Packages[j].Name
		}
		return raw.Packages[i].Version < raw.Packages[j].Version
	})

	return &Lockfile{Path: path, Packages: raw.Packages}, nil
}

// LoadLockfile locates and parses the nearest Cargo.lock. A missing or
// unreadable lockfile is not fatal; installed versions then fall back to the
// manifest requirement.
func LoadLockfile(dir string) *Lockfile {
	path, err := FindLockfile(dir)
	if err != nil {
		verbose.Infof("%v", err)
		return nil
	}
	lock, err := ParseLockfile(path)
	if err != nil {
		warnings.Warnf("%v", err)
		return nil
	}
	verbose.Infof("Using lockfile %s (%d packages)", path, len(lock.Packages))
	return lock
}

// Resolve returns the lock entry for crate whose version satisfies the
// requirement. When the lockfile pins several versions of the same crate, the
// requirement decides which one the manifest actually resolves to. An empty
// requirement matches the first entry with the name.
func (l *Lockfile) Resolve(crate, requirement string) (LockPackage, bool) {
	i := sort.Search(len(l.Packages), func(i int) bool {
		return l.Packages[i].Name >= crate
	})
	for ; i < len(l.Packages) && l.Packages[i].Name == crate; i++ {
		if requirement == "" || Satisfies(l.Packages[i].Version, requirement) {
			return l.Packages[i], true
		}
	}
	return LockPackage{}, false
}

// ResolveInstalled fills in the Installed and Source fields of every
// dependency. Versions come from the lockfile when a matching entry exists,
// otherwise from the declared requirement with its operator trimmed. The lock
// may be nil.
func ResolveInstalled(deps []Dependency, lock *Lockfile) {
	for i := range deps {
		dep := &deps[i]

		if lock != nil {
			if pkg, ok := lock.Resolve(dep.Crate, dep.Requirement); ok {
				dep.Installed = pkg.Version
				dep.Source = pkg.Source
				verbose.VersionResolved(dep.Crate, pkg.Version, "Cargo.lock")
				continue
			}
		}

		if fallback := TrimRequirement(dep.Requirement); fallback != "" {
			dep.Installed = fallback
			verbose.VersionResolved(dep.Crate, fallback, "manifest requirement")
		}
	}
}
