// Package common holds flags and helpers shared by the scif subcommands.
package common

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/nightconcept/scif-go/internal/core/config"
	"github.com/nightconcept/scif-go/internal/core/manifest"
	"github.com/nightconcept/scif-go/internal/core/pkginfo"
)

// ManifestFlags selects which manifest a command operates on.
func ManifestFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:    "all",
			Aliases: []string{"a"},
			Usage:   "Use the aggregate manifest (base plus submodule requirements)",
		},
		&cli.StringSliceFlag{
			Name:    "with",
			Aliases: []string{"w"},
			Usage:   "Compose a submodule manifest file onto the aggregate manifest (repeatable, implies --all)",
			EnvVars: []string{"SCIF_WITH"},
		},
	}
}

// SelectManifest returns the base manifest, or the aggregate manifest when
// --all or --with is given. Submodule files are loaded and composed in the
// order they were passed.
func SelectManifest(c *cli.Context, info *pkginfo.Info) (*manifest.Manifest, error) {
	paths := c.StringSlice("with")
	if len(paths) == 0 && !c.Bool("all") {
		return info.Manifest(), nil
	}

	extra, err := config.LoadManifests(paths)
	if err != nil {
		return nil, fmt.Errorf("failed to load submodule manifest: %w", err)
	}
	full, err := info.WithSubmodules(extra...)
	if err != nil {
		return nil, err
	}
	return full.AggregateManifest(), nil
}
