// Package pkginfo assembles the package identity and dependency manifests
// into the single read-only Info value the rest of the tool is handed.
package pkginfo

import (
	"fmt"

	"github.com/nightconcept/scif-go/internal/core/identity"
	"github.com/nightconcept/scif-go/internal/core/manifest"
)

// Info is built once at startup and passed by pointer to consumers.
// Nothing modifies it after Load returns.
type Info struct {
	Identity  identity.Identity
	base      *manifest.Manifest
	aggregate *manifest.Manifest
}

// requirements lists the runtime dependencies of scif.
func requirements() []manifest.Declaration {
	return []manifest.Declaration{
		manifest.Exact("demjson", "2.2.4"),
		manifest.Exact("python-dateutil", "2.5.3"),
		manifest.Exact("requests", "2.18.4"),
		manifest.Exact("requests-toolbelt", "0.8.0"),
		manifest.Exact("retrying", "1.3.3"),
		manifest.Min("pygments", "2.1.3"),
	}
}

// Load validates the identity and builds the base manifest, then composes
// the aggregate manifest from it and any submodule manifests.
func Load(submodules ...*manifest.Manifest) (*Info, error) {
	return build(identity.Scif(), requirements(), submodules...)
}

func build(id identity.Identity, decls []manifest.Declaration, submodules ...*manifest.Manifest) (*Info, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	base, err := manifest.New(decls...)
	if err != nil {
		return nil, fmt.Errorf("invalid dependency manifest: %w", err)
	}
	aggregate, err := manifest.Compose(base, submodules...)
	if err != nil {
		return nil, fmt.Errorf("invalid aggregate manifest: %w", err)
	}
	return &Info{Identity: id, base: base, aggregate: aggregate}, nil
}

// Manifest returns the base dependency manifest.
func (i *Info) Manifest() *manifest.Manifest { return i.base }

// AggregateManifest returns the manifest used for a full install.
func (i *Info) AggregateManifest() *manifest.Manifest { return i.aggregate }

// WithSubmodules returns a copy of i whose aggregate manifest also includes
// extra. i itself is left unchanged.
func (i *Info) WithSubmodules(extra ...*manifest.Manifest) (*Info, error) {
	if len(extra) == 0 {
		return i, nil
	}
	aggregate, err := manifest.Compose(i.aggregate, extra...)
	if err != nil {
		return nil, fmt.Errorf("invalid aggregate manifest: %w", err)
	}
	return &Info{Identity: i.Identity, base: i.base, aggregate: aggregate}, nil
}
