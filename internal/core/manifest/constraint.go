package manifest

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// Kind identifies which variant a Constraint is.
type Kind string

const (
	KindExact Kind = "exact_version"
	KindMin   Kind = "min_version"
)

// Constraint is the version requirement attached to a dependency.
// The only implementations are ExactVersion and MinVersion; consumers
// are expected to switch on the concrete type.
type Constraint interface {
	Kind() Kind
	Value() string
	// Operator returns the requirement operator used in pip-style strings.
	Operator() string
	// Semver returns the constraint in Masterminds/semver form.
	Semver() (*semver.Constraints, error)

	sealed()
}

// ExactVersion requires the dependency to resolve to exactly Version.
type ExactVersion struct {
	Version string
}

// MinVersion requires the dependency to resolve to Version or anything newer.
type MinVersion struct {
	Version string
}

func (ExactVersion) Kind() Kind { return KindExact }
func (c ExactVersion) Value() string { return c.Version }
func (ExactVersion) Operator() string { return "==" }
func (c ExactVersion) String() string { return "==" + c.Version }
func (ExactVersion) sealed() {}
func (MinVersion) Kind() Kind { return KindMin }
func (c MinVersion) Value() string { return c.Version }
func (MinVersion) Operator() string { return ">=" }
func (c MinVersion) String() string { return ">=" + c.Version }
func (MinVersion) sealed() {}

func (c ExactVersion) Semver() (*semver.Constraints, error) {
	return semver.NewConstraint("= " + c.Version)
}

func (c MinVersion) Semver() (*semver.Constraints, error) {
	return semver.NewConstraint(">= " + c.Version)
}

// NewConstraint builds a Constraint from its wire kind, as found in the
// consumer-facing `{constraint_kind: value}` mapping.
func NewConstraint(kind Kind, value string) (Constraint, error) {
	switch kind {
	case KindExact:
		return ExactVersion{Version: value}, nil
	case KindMin:
		return MinVersion{Version: value}, nil
	default:
		return nil, fmt.Errorf("unknown constraint kind %q (expected %q or %q)", kind, KindExact, KindMin)
	}
}

// Satisfies reports whether version meets the constraint. Both the
// constraint value and version must be valid semantic versions.
func Satisfies(c Constraint, version string) (bool, error) {
	v, err := semver.NewVersion(version)
	if err != nil {
		return false, &MalformedVersionError{Value: version, Err: err}
	}
	switch c := c.(type) {
	case ExactVersion:
		want, err := semver.NewVersion(c.Version)
		if err != nil {
			return false, &MalformedVersionError{Value: c.Version, Err: err}
		}
		return v.Equal(want), nil
	case MinVersion:
		sc, err := c.Semver()
		if err != nil {
			return false, &MalformedVersionError{Value: c.Version, Err: err}
		}
		return sc.Check(v), nil
	default:
		return false, fmt.Errorf("unsupported constraint type %T", c)
	}
}
