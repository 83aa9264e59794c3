// Package resolver selects concrete versions for a manifest the way an
// installer honouring its constraints must: exact constraints pick that
// version, minimum constraints pick the newest version at or above it.
package resolver

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/samber/lo"

	"github.com/nightconcept/scif-go/internal/core/manifest"
)

// Available reports which versions of a package can be installed.
type Available interface {
	Versions(name string) ([]string, bool)
}

// Selection is the version chosen for one declaration.
type Selection struct {
	Name       string
	Version    string
	Constraint manifest.Constraint
}

// PackageNotFoundError is returned when the index has no entry for a package.
type PackageNotFoundError struct {
	Package string
}

func (e *PackageNotFoundError) Error() string {
	return fmt.Sprintf("package %q not found in index", e.Package)
}

// UnsatisfiableError is returned when no available version meets a constraint.
type UnsatisfiableError struct {
	Package    string
	Constraint manifest.Constraint
	Available  []string
}

func (e *UnsatisfiableError) Error() string {
	return fmt.Sprintf("no version of %q satisfies %s%s (available: %s)",
		e.Package, e.Constraint.Operator(), e.Constraint.Value(), strings.Join(e.Available, ", "))
}

// Resolve picks a version for every declaration in m, in manifest order.
func Resolve(m *manifest.Manifest, available Available) ([]Selection, error) {
	selections := make([]Selection, 0, m.Len())
	for _, d := range m.Declarations() {
		raw, ok := available.Versions(d.Name)
		if !ok || len(raw) == 0 {
			return nil, &PackageNotFoundError{Package: d.Name}
		}
		v, err := pick(d, raw)
		if err != nil {
			return nil, err
		}
		selections = append(selections, Selection{Name: d.Name, Version: v, Constraint: d.Constraint})
	}
	return selections, nil
}

func pick(d manifest.Declaration, raw []string) (string, error) {
	var best *semver.Version
	var bestRaw string
	for _, r := range raw {
		ok, err := manifest.Satisfies(d.Constraint, r)
		if err != nil {
			return "", fmt.Errorf("index entry for %q: %w", d.Name, err)
		}
		if !ok {
			continue
		}
		v := semver.MustParse(r)
		switch d.Constraint.(type) {
		case manifest.ExactVersion:
			// Prefer the spelling the manifest used when the index lists
			// equivalent versions more than once.
			if r == d.Constraint.Value() || best == nil {
				best, bestRaw = v, r
			}
		case manifest.MinVersion:
			if best == nil || v.GreaterThan(best) {
				best, bestRaw = v, r
			}
		}
	}
	if best == nil {
		return "", &UnsatisfiableError{Package: d.Name, Constraint: d.Constraint, Available: lo.Uniq(raw)}
	}
	return bestRaw, nil
}

// Map returns the selections keyed by package name.
func Map(selections []Selection) map[string]string {
	return lo.SliceToMap(selections, func(s Selection) (string, string) { return s.Name, s.Version })
}
