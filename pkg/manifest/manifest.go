// Package manifest reads Cargo.toml dependency declarations and resolves the
// installed version of each dependency against the nearest Cargo.lock.
//
// It parses the four dependency tables (dependencies, dev-dependencies,
// build-dependencies, workspace.dependencies), handles both the bare string
// form (`serde = "1.0"`) and the table form (`serde = { version = "1.0" }`),
// and records renames declared through the `package` key.
package manifest

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/BurntSushi/toml"

	"github.com/crateup/crateup/pkg/errors"
	"github.com/crateup/crateup/pkg/verbose"
)

// CratesIOSource is the source id Cargo.lock records for crates.io packages.
const CratesIOSource = "registry+https://github.com/rust-lang/crates.io-index"

// Kind identifies the dependency table a dependency was declared in.
type Kind int

// Dependency kinds in their canonical display order.
const (
	KindNormal Kind = iota
	KindDev
	KindBuild
	KindWorkspace
)

// String returns the short kind label used in listings.
func (k Kind) String() string {
	switch k {
	case KindNormal:
		return "normal"
	case KindDev:
		return "dev"
	case KindBuild:
		return "build"
	case KindWorkspace:
		return "workspace"
	default:
		return "unknown"
	}
}

// Section returns the Cargo.toml table name the kind is declared under.
func (k Kind) Section() string {
	switch k {
	case KindNormal:
		return "dependencies"
	case KindDev:
		return "dev-dependencies"
	case KindBuild:
		return "build-dependencies"
	case KindWorkspace:
		return "workspace.dependencies"
	default:
		return ""
	}
}

// Dependency is a single direct dependency declared in the manifest.
//
// Fields:
//   - Name: The key the dependency is declared under in Cargo.toml
//   - Crate: The registry crate name; differs from Name when the declaration
//     renames the crate with `package = "..."`
//   - Requirement: The raw version requirement string ("" for git or path
//     declarations without a version)
//   - Installed: The resolved version, taken from Cargo.lock when a matching
//     entry exists, otherwise derived from the requirement
//   - Kind: The dependency table the declaration came from
//   - Path: The local directory for path dependencies ("" otherwise)
//   - Git: The git URL for git dependencies ("" otherwise)
//   - Source: The source id recorded in Cargo.lock for the resolved entry
type Dependency struct {
	Name        string
	Crate       string
	Requirement string
	Installed   string
	Kind        Kind
	Path        string
	Git         string
	Source      string
}

// IsLocal reports whether the dependency is declared with a local path.
func (d Dependency) IsLocal() bool {
	return d.Path != ""
}

// IsRenamed reports whether the declared name differs from the crate name.
func (d Dependency) IsRenamed() bool {
	return d.Name != d.Crate
}

// Manifest is the parsed Cargo.toml with its direct dependencies.
type Manifest struct {
	Path         string
	Dir          string
	Dependencies []Dependency
}

// rawManifest captures the dependency tables without committing to a value
// shape; each entry is decoded in a second phase because declarations may be
// either a bare requirement string or a table.
type rawManifest struct {
	Dependencies      map[string]toml.Primitive `toml:"dependencies"`
	DevDependencies   map[string]toml.Primitive `toml:"dev-dependencies"`
	BuildDependencies map[string]toml.Primitive `toml:"build-dependencies"`
	Workspace         struct {
		Dependencies map[string]toml.Primitive `toml:"dependencies"`
	} `toml:"workspace"`
}

// rawDependency is the table form of a dependency declaration.
type rawDependency struct {
	Workspace bool   `toml:"workspace"`
	Package   string `toml:"package"`
	Version   string `toml:"version"`
	Path      string `toml:"path"`
	Git       string `toml:"git"`
}

// Parse reads and decodes the manifest at path.
//
// It performs the following operations:
//   - Decodes the TOML document and extracts all four dependency tables
//   - Decodes each declaration as a bare requirement string or a table
//   - Skips entries inherited from the workspace (`workspace = true`)
//   - Resolves crate renames declared with `package = "..."`
//
// Returns:
//   - *Manifest: The parsed manifest with dependencies in table order
//   - error: Returns a ManifestError if the file is missing, unreadable, or
//     not valid TOML; returns nil on success
func Parse(path string) (*Manifest, error) {
	var raw rawManifest
	md, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return nil, errors.NewManifestError(path, err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	m := &Manifest{
		Path: abs,
		Dir:  filepath.Dir(abs),
	}
	m.Dependencies = append(m.Dependencies, decodeSection(md, raw.Dependencies, KindNormal)...)
	m.Dependencies = append(m.Dependencies, decodeSection(md, raw.DevDependencies, KindDev)...)
	m.Dependencies = append(m.Dependencies, decodeSection(md, raw.BuildDependencies, KindBuild)...)
	m.Dependencies = append(m.Dependencies, decodeSection(md, raw.Workspace.Dependencies, KindWorkspace)...)

	return m, nil
}

// decodeSection decodes one dependency table. Entries are visited in name
// order so parse results are deterministic.
func decodeSection(md toml.MetaData, section map[string]toml.Primitive, kind Kind) []Dependency {
	if len(section) == 0 {
		return nil
	}

	names := make([]string, 0, len(section))
	for name := range section {
		names = append(names, name)
	}
	sort.Strings(names)

	deps := make([]Dependency, 0, len(names))
	for _, name := range names {
		dep, ok := decodeEntry(md, name, section[name], kind)
		if !ok {
			continue
		}
		deps = append(deps, dep)
	}
	return deps
}

// decodeEntry decodes a single declaration, which is either a bare
// requirement string or a table with version/package/path/git keys.
func decodeEntry(md toml.MetaData, name string, prim toml.Primitive, kind Kind) (Dependency, bool) {
	var requirement string
	if err := md.PrimitiveDecode(prim, &requirement); err == nil {
		return Dependency{
			Name:        name,
			Crate:       name,
			Requirement: requirement,
			Kind:        kind,
		}, true
	}

	var detail rawDependency
	if err := md.PrimitiveDecode(prim, &detail); err != nil {
		verbose.CrateSkipped(name, "unrecognized declaration form")
		return Dependency{}, false
	}

	// Entries inheriting from [workspace.dependencies] are covered by the
	// workspace table itself.
	if detail.Workspace {
		verbose.CrateSkipped(name, "inherited from workspace")
		return Dependency{}, false
	}

	crate := detail.Package
	if crate == "" {
		crate = name
	}

	return Dependency{
		Name:        name,
		Crate:       crate,
		Requirement: detail.Version,
		Kind:        kind,
		Path:        detail.Path,
		Git:         detail.Git,
	}, true
}

// SortDependencies orders dependencies by kind, then by declared name.
func SortDependencies(deps []Dependency) {
	sort.SliceStable(deps, func(i, j int) bool {
		if deps[i].Kind != deps[j].Kind {
			return deps[i].Kind < deps[j].Kind
		}
		return deps[i].Name < deps[j].Name
	})
}

// DefaultManifestPath returns dir/Cargo.toml, verifying nothing; existence is
// checked by Parse.
func DefaultManifestPath(dir string) string {
	return filepath.Join(dir, "Cargo.toml")
}

// Exists reports whether a manifest file is present at path.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
