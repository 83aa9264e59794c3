package manifest

import (
	"errors"
	"fmt"
)

// ErrEmptyName is returned when a declaration has no package name.
var ErrEmptyName = errors.New("dependency name must not be empty")

// DuplicateDependencyError reports a package declared more than once.
type DuplicateDependencyError struct {
	Package  string
	First    Constraint
	Conflict Constraint
}

func (e *DuplicateDependencyError) Error() string {
	return fmt.Sprintf("duplicate dependency %q: already declared as %s, redeclared as %s",
		e.Package, describe(e.First), describe(e.Conflict))
}

// MalformedVersionError reports a constraint value that does not parse as a version.
type MalformedVersionError struct {
	Package string
	Kind    Kind
	Value   string
	Err     error
}

func (e *MalformedVersionError) Error() string {
	if e.Package == "" {
		return fmt.Sprintf("malformed version %q: %v", e.Value, e.Err)
	}
	return fmt.Sprintf("dependency %q: malformed %s %q: %v", e.Package, e.Kind, e.Value, e.Err)
}

func (e *MalformedVersionError) Unwrap() error { return e.Err }

// MissingConstraintError reports a declaration without a constraint.
type MissingConstraintError struct {
	Package string
}

func (e *MissingConstraintError) Error() string {
	return fmt.Sprintf("dependency %q: exactly one of %s or %s must be set", e.Package, KindExact, KindMin)
}

func describe(c Constraint) string {
	if c == nil {
		return "<none>"
	}
	return fmt.Sprintf("%s=%s", c.Kind(), c.Value())
}
