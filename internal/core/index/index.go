// Package index loads the set of installable versions per package, from a
// local TOML file or from a URL serving the same document.
package index

import (
	"context"
	"fmt"
	"net/url"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/nightconcept/scif-go/internal/core/downloader"
	"github.com/nightconcept/scif-go/internal/core/manifest"
)

// Index maps package names to their available versions.
// Example:
//
//	[packages]
//	demjson = ["2.2.4", "2.3.0"]
//	pygments = ["2.1.3", "2.5.0"]
type Index struct {
	Packages map[string][]string `toml:"packages"`

	normalized map[string][]string
}

// New builds an Index from a name to versions map.
func New(packages map[string][]string) *Index {
	idx := &Index{Packages: packages}
	idx.normalize()
	return idx
}

func (idx *Index) normalize() {
	if idx.Packages == nil {
		idx.Packages = make(map[string][]string)
	}
	idx.normalized = make(map[string][]string, len(idx.Packages))
	for name, versions := range idx.Packages {
		key := manifest.NormalizeName(name)
		idx.normalized[key] = append(idx.normalized[key], versions...)
	}
}

// Versions returns the versions listed for name, matched after normalization.
func (idx *Index) Versions(name string) ([]string, bool) {
	v, ok := idx.normalized[manifest.NormalizeName(name)]
	return v, ok
}

// Decode parses an index document.
func Decode(data []byte) (*Index, error) {
	var idx Index
	if _, err := toml.Decode(string(data), &idx); err != nil {
		return nil, fmt.Errorf("failed to decode index: %w", err)
	}
	idx.normalize()
	return &idx, nil
}

// Load reads an index document from disk.
func Load(path string) (*Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read index %s: %w", path, err)
	}
	return Decode(data)
}

// Fetch downloads an index document from rawURL.
func Fetch(ctx context.Context, rawURL, userAgent string) (*Index, error) {
	data, err := downloader.Download(ctx, rawURL, userAgent)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

// Open loads location as a URL when it has an http or https scheme and as
// a file path otherwise.
func Open(ctx context.Context, location, userAgent string) (*Index, error) {
	if u, err := url.Parse(location); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		return Fetch(ctx, location, userAgent)
	}
	return Load(location)
}
