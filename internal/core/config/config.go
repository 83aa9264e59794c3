// Package config reads and writes submodule manifest files. A submodule
// manifest lists extra dependencies composed onto the base manifest for a
// full install:
//
//	[[dependency]]
//	name = "numpy"
//	min_version = "1.13.0"
package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/samber/lo"

	"github.com/nightconcept/scif-go/internal/core/manifest"
)

// ManifestFileName is the conventional name of a submodule manifest.
const ManifestFileName = "scif-requires.toml"

// File is the on-disk form of a manifest.
type File struct {
	Dependency []Entry `toml:"dependency"`
}

// Entry is a single dependency table. Exactly one version field is set.
type Entry struct {
	Name         string `toml:"name"`
	ExactVersion string `toml:"exact_version,omitempty"`
	MinVersion   string `toml:"min_version,omitempty"`
}

// Declaration converts the entry, rejecting entries that set neither or
// both version fields.
func (e Entry) Declaration() (manifest.Declaration, error) {
	switch {
	case e.ExactVersion != "" && e.MinVersion != "":
		return manifest.Declaration{}, fmt.Errorf("dependency %q: %s and %s are mutually exclusive", e.Name, manifest.KindExact, manifest.KindMin)
	case e.ExactVersion != "":
		return manifest.Exact(e.Name, e.ExactVersion), nil
	case e.MinVersion != "":
		return manifest.Min(e.Name, e.MinVersion), nil
	default:
		return manifest.Declaration{}, &manifest.MissingConstraintError{Package: e.Name}
	}
}

// DecodeManifest parses a manifest document. Unknown keys are an error so a
// misspelled constraint kind cannot silently drop a constraint.
func DecodeManifest(data []byte) (*manifest.Manifest, error) {
	var f File
	md, err := toml.Decode(string(data), &f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode manifest: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := lo.Map(undecoded, func(k toml.Key, _ int) string { return k.String() })
		return nil, fmt.Errorf("unknown keys in manifest: %s", strings.Join(keys, ", "))
	}

	decls := make([]manifest.Declaration, 0, len(f.Dependency))
	for _, e := range f.Dependency {
		d, err := e.Declaration()
		if err != nil {
			return nil, err
		}
		decls = append(decls, d)
	}
	return manifest.New(decls...)
}

// LoadManifest reads and validates the manifest file at path.
func LoadManifest(path string) (*manifest.Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	m, err := DecodeManifest(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// LoadManifests loads each path in order.
func LoadManifests(paths []string) ([]*manifest.Manifest, error) {
	out := make([]*manifest.Manifest, 0, len(paths))
	for _, p := range paths {
		m, err := LoadManifest(p)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

// EncodeManifest renders m in the same document form DecodeManifest reads.
func EncodeManifest(m *manifest.Manifest) ([]byte, error) {
	f := File{Dependency: make([]Entry, 0, m.Len())}
	for _, d := range m.Declarations() {
		e := Entry{Name: d.Name}
		switch c := d.Constraint.(type) {
		case manifest.ExactVersion:
			e.ExactVersion = c.Version
		case manifest.MinVersion:
			e.MinVersion = c.Version
		}
		f.Dependency = append(f.Dependency, e)
	}

	buf := new(bytes.Buffer)
	if err := toml.NewEncoder(buf).Encode(f); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteManifest writes m to path, overwriting any existing file.
func WriteManifest(path string, m *manifest.Manifest) error {
	data, err := EncodeManifest(m)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
