// Package manifest models the ordered list of runtime dependencies a package
// declares, each paired with an exact or minimum version constraint.
package manifest

import (
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/samber/lo"
)

// Declaration pairs a package name with its version constraint.
type Declaration struct {
	Name       string
	Constraint Constraint
}

// Exact is shorthand for a declaration pinned to a single version.
func Exact(name, version string) Declaration {
	return Declaration{Name: name, Constraint: ExactVersion{Version: version}}
}

// Min is shorthand for a declaration requiring at least version.
func Min(name, version string) Declaration {
	return Declaration{Name: name, Constraint: MinVersion{Version: version}}
}

// Requirement renders the declaration the way pip requirement files do,
// e.g. "demjson==2.2.4" or "pygments>=2.1.3".
func (d Declaration) Requirement() string {
	return d.Name + d.Constraint.Operator() + d.Constraint.Value()
}

// Manifest is an ordered, validated set of declarations. It is never
// modified after New returns, so it is safe to share between goroutines.
type Manifest struct {
	decls []Declaration
	index map[string]int
}

var separatorRuns = regexp.MustCompile(`[-_.]+`)

// NormalizeName folds a package name the way package indexes compare them:
// case-insensitive, with runs of '-', '_' and '.' treated as a single '-'.
func NormalizeName(name string) string {
	return separatorRuns.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
}

// New validates decls and returns them as a Manifest in the order given.
// It fails on the first empty name, missing constraint, unparsable version
// or repeated package name.
func New(decls ...Declaration) (*Manifest, error) {
	m := &Manifest{
		decls: make([]Declaration, 0, len(decls)),
		index: make(map[string]int, len(decls)),
	}
	for _, d := range decls {
		if err := m.add(d); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Manifest) add(d Declaration) error {
	if strings.TrimSpace(d.Name) == "" {
		return ErrEmptyName
	}
	if d.Constraint == nil {
		return &MissingConstraintError{Package: d.Name}
	}
	if _, err := semver.NewVersion(d.Constraint.Value()); err != nil {
		return &MalformedVersionError{
			Package: d.Name,
			Kind:    d.Constraint.Kind(),
			Value:   d.Constraint.Value(),
			Err:     err,
		}
	}
	key := NormalizeName(d.Name)
	if i, ok := m.index[key]; ok {
		return &DuplicateDependencyError{
			Package:  d.Name,
			First:    m.decls[i].Constraint,
			Conflict: d.Constraint,
		}
	}
	m.index[key] = len(m.decls)
	m.decls = append(m.decls, d)
	return nil
}

// Compose merges base with any extra manifests, base first and then each
// extra in order. A package declared in more than one input is rejected with
// a DuplicateDependencyError. With no extras the result equals base.
func Compose(base *Manifest, extra ...*Manifest) (*Manifest, error) {
	all := base.Declarations()
	for _, e := range extra {
		if e == nil {
			continue
		}
		all = append(all, e.decls...)
	}
	return New(all...)
}

// Declarations returns a copy of the declarations in declaration order.
func (m *Manifest) Declarations() []Declaration {
	if m == nil {
		return nil
	}
	out := make([]Declaration, len(m.decls))
	copy(out, m.decls)
	return out
}

// Len returns the number of declarations.
func (m *Manifest) Len() int {
	if m == nil {
		return 0
	}
	return len(m.decls)
}

// Names returns the declared package names in order.
func (m *Manifest) Names() []string {
	return lo.Map(m.Declarations(), func(d Declaration, _ int) string { return d.Name })
}

// Lookup finds the constraint declared for name, compared after normalization.
func (m *Manifest) Lookup(name string) (Constraint, bool) {
	if m == nil {
		return nil, false
	}
	i, ok := m.index[NormalizeName(name)]
	if !ok {
		return nil, false
	}
	return m.decls[i].Constraint, true
}

// Requirements returns pip-style requirement strings in declaration order.
func (m *Manifest) Requirements() []string {
	return lo.Map(m.Declarations(), func(d Declaration, _ int) string { return d.Requirement() })
}

// Equal reports whether both manifests hold the same declarations in the same order.
func (m *Manifest) Equal(other *Manifest) bool {
	if m.Len() != other.Len() {
		return false
	}
	for i, d := range m.Declarations() {
		o := other.decls[i]
		if d.Name != o.Name || d.Constraint.Kind() != o.Constraint.Kind() || d.Constraint.Value() != o.Constraint.Value() {
			return false
		}
	}
	return true
}
