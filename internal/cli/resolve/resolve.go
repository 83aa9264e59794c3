package resolve

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/nightconcept/scif-go/internal/cli/common"
	"github.com/nightconcept/scif-go/internal/core/hasher"
	"github.com/nightconcept/scif-go/internal/core/index"
	"github.com/nightconcept/scif-go/internal/core/lockfile"
	"github.com/nightconcept/scif-go/internal/core/manifest"
	"github.com/nightconcept/scif-go/internal/core/pkginfo"
	"github.com/nightconcept/scif-go/internal/core/resolver"
)

// NewResolveCommand creates the "resolve" command, which picks a version for
// every dependency from an index of available versions.
func NewResolveCommand(info *pkginfo.Info) *cli.Command {
	return &cli.Command{
		Name:  "resolve",
		Usage: "Selects the versions an installer must pick for each dependency",
		Flags: append(common.ManifestFlags(),
			&cli.StringFlag{
				Name:     "index",
				Aliases:  []string{"i"},
				Usage:    "Path or http(s) URL of the available-versions index",
				EnvVars:  []string{"SCIF_INDEX"},
				Required: true,
			},
			&cli.BoolFlag{
				Name:  "lock",
				Usage: "Write the selections to " + lockfile.LockfileName,
			},
			&cli.BoolFlag{
				Name:  "frozen",
				Usage: "Fail if " + lockfile.LockfileName + " does not match the resolved versions",
			},
			&cli.StringFlag{
				Name:    "dir",
				Aliases: []string{"d"},
				Usage:   "Directory holding " + lockfile.LockfileName,
				Value:   ".",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable verbose output",
			},
		),
		Action: action(info),
	}
}

func action(info *pkginfo.Info) cli.ActionFunc {
	return func(c *cli.Context) error {
		w := c.App.Writer
		verbose := c.Bool("verbose")

		m, err := common.SelectManifest(c, info)
		if err != nil {
			return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
		}
		if verbose {
			_, _ = fmt.Fprintf(w, "Resolving %d dependencies against %s\n", m.Len(), c.String("index"))
		}

		idx, err := index.Open(c.Context, c.String("index"), info.Identity.UserAgent())
		if err != nil {
			return cli.Exit(fmt.Sprintf("Error loading index: %v", err), 1)
		}

		selections, err := resolver.Resolve(m, idx)
		if err != nil {
			return cli.Exit(describe(err), 1)
		}

		versionColor := color.New(color.FgGreen).SprintFunc()
		constraintColor := color.New(color.FgHiBlack).SprintFunc()
		for _, s := range selections {
			_, _ = fmt.Fprintf(w, "%s %s %s\n", s.Name, versionColor(s.Version),
				constraintColor("("+s.Constraint.Operator()+s.Constraint.Value()+")"))
		}

		if !c.Bool("lock") && !c.Bool("frozen") {
			return nil
		}

		dir := c.String("dir")
		lf, err := lockfile.Load(dir)
		if err != nil {
			return cli.Exit(fmt.Sprintf("Error loading %s: %v", lockfile.LockfileName, err), 1)
		}
		digest := hasher.Manifest(m)

		if c.Bool("frozen") {
			if err := verify(lf, digest, selections); err != nil {
				return cli.Exit(fmt.Sprintf("Error: %s is out of date: %v", lockfile.LockfileName, err), 1)
			}
			if verbose {
				_, _ = fmt.Fprintf(w, "%s is up to date.\n", lockfile.LockfileName)
			}
			return nil
		}

		if verbose && lf.ManifestHash != "" && lf.Stale(digest) {
			_, _ = fmt.Fprintln(w, "Manifest changed since the lockfile was written; replacing entries.")
		}
		lf.Record(digest, selections)
		if err := lockfile.Save(dir, lf); err != nil {
			return cli.Exit(fmt.Sprintf("Error saving %s: %v", lockfile.LockfileName, err), 1)
		}
		_, _ = fmt.Fprintf(w, "Wrote %d entries to %s\n", len(selections), lockfile.LockfileName)
		return nil
	}
}

func verify(lf *lockfile.Lockfile, digest string, selections []resolver.Selection) error {
	if lf.Stale(digest) {
		return errors.New("manifest hash differs")
	}
	if len(lf.Package) != len(selections) {
		return fmt.Errorf("lockfile has %d entries, expected %d", len(lf.Package), len(selections))
	}
	for _, s := range selections {
		entry, ok := lf.Package[s.Name]
		if !ok {
			return fmt.Errorf("%s is not locked", s.Name)
		}
		if entry.Version != s.Version {
			return fmt.Errorf("%s is locked at %s, resolved %s", s.Name, entry.Version, s.Version)
		}
	}
	return nil
}

// describe renders resolution failures so the offending package and
// constraint lead the message.
func describe(err error) string {
	var notFound *resolver.PackageNotFoundError
	var unsat *resolver.UnsatisfiableError
	var malformed *manifest.MalformedVersionError
	switch {
	case errors.As(err, &notFound):
		return fmt.Sprintf("Error: dependency %q is not listed in the index", notFound.Package)
	case errors.As(err, &unsat):
		return fmt.Sprintf("Error: dependency %q %s%s cannot be satisfied (available: %v)",
			unsat.Package, unsat.Constraint.Operator(), unsat.Constraint.Value(), unsat.Available)
	case errors.As(err, &malformed):
		return fmt.Sprintf("Error: invalid version in index: %v", err)
	default:
		return fmt.Sprintf("Error resolving dependencies: %v", err)
	}
}
