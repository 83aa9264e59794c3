package lockfile

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/nightconcept/scif-go/internal/core/resolver"
)

const LockfileName = "scif-lock.toml"
const APIVersion = "1"

// PackageEntry records the version chosen for one dependency.
// Example:
// [package."pygments"]
//
//	version = "2.5.0"
//	constraint = ">=2.1.3"
type PackageEntry struct {
	Version    string `toml:"version"`
	Constraint string `toml:"constraint"`
}

// Lockfile represents the structure of the scif-lock.toml file.
type Lockfile struct {
	ApiVersion   string                  `toml:"api_version"`
	ManifestHash string                  `toml:"manifest_hash"`
	Package      map[string]PackageEntry `toml:"package"`
}

// New creates a new Lockfile instance with default values.
func New() *Lockfile {
	return &Lockfile{
		ApiVersion: APIVersion,
		Package:    make(map[string]PackageEntry),
	}
}

// Load loads the lockfile from dir.
// If the lockfile doesn't exist, it returns a new Lockfile instance.
func Load(dir string) (*Lockfile, error) {
	lockfilePath := filepath.Join(dir, LockfileName)
	lf := New()

	if _, err := os.Stat(lockfilePath); os.IsNotExist(err) {
		return lf, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to stat lockfile %s: %w", lockfilePath, err)
	}

	if _, err := toml.DecodeFile(lockfilePath, lf); err != nil {
		return nil, fmt.Errorf("failed to decode lockfile %s: %w", lockfilePath, err)
	}
	if lf.ApiVersion == "" {
		lf.ApiVersion = APIVersion
	}
	if lf.Package == nil {
		lf.Package = make(map[string]PackageEntry)
	}
	return lf, nil
}

// Save writes the lockfile to dir, replacing any existing one.
func Save(dir string, lf *Lockfile) error {
	lockfilePath := filepath.Join(dir, LockfileName)
	file, err := os.Create(lockfilePath)
	if err != nil {
		return fmt.Errorf("failed to create/truncate lockfile %s: %w", lockfilePath, err)
	}
	defer func() { _ = file.Close() }()

	if err := toml.NewEncoder(file).Encode(lf); err != nil {
		return fmt.Errorf("failed to encode lockfile %s: %w", lockfilePath, err)
	}
	return nil
}

// SetPackage adds or replaces the entry for name.
func (lf *Lockfile) SetPackage(name, version, constraint string) {
	if lf.Package == nil {
		lf.Package = make(map[string]PackageEntry)
	}
	lf.Package[name] = PackageEntry{Version: version, Constraint: constraint}
}

// Record replaces the lockfile contents with selections resolved from the
// manifest whose digest is manifestHash.
func (lf *Lockfile) Record(manifestHash string, selections []resolver.Selection) {
	lf.ManifestHash = manifestHash
	lf.Package = make(map[string]PackageEntry, len(selections))
	for _, s := range selections {
		lf.SetPackage(s.Name, s.Version, s.Constraint.Operator()+s.Constraint.Value())
	}
}

// Stale reports whether the lockfile was produced from a different manifest.
func (lf *Lockfile) Stale(manifestHash string) bool {
	return lf.ManifestHash != manifestHash
}
