// Package identity holds the descriptive metadata of the scif package.
package identity

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// Identity is the package metadata read by packaging tools.
type Identity struct {
	Version     string `toml:"version" yaml:"version" json:"version"`
	Name        string `toml:"name" yaml:"name" json:"name"`
	Author      string `toml:"author" yaml:"author" json:"author"`
	AuthorEmail string `toml:"author_email" yaml:"author_email" json:"author_email"`
	URL         string `toml:"url" yaml:"url" json:"url"`
	Keywords    string `toml:"keywords" yaml:"keywords" json:"keywords"`
	Description string `toml:"description" yaml:"description" json:"description"`
	License     string `toml:"license" yaml:"license" json:"license"`
}

// Scif returns the identity of the scif tool.
func Scif() Identity {
	return Identity{
		Version:     "0.0.5",
		Name:        "scif",
		Author:      "Vanessa Sochat",
		AuthorEmail: "vsochat@stanford.edu",
		URL:         "http://www.github.com/containers-ftw/scif-cli",
		Keywords:    "the scientific filesystem",
		Description: "a filesystem organization for scientific software and metadata",
		License:     "LICENSE",
	}
}

// Field is a named identity attribute, in the order packaging tools list them.
type Field struct {
	Key   string
	Value string
}

// Fields returns the identity as flat key/value attributes.
func (id Identity) Fields() []Field {
	return []Field{
		{"version", id.Version},
		{"name", id.Name},
		{"author", id.Author},
		{"author_email", id.AuthorEmail},
		{"url", id.URL},
		{"keywords", id.Keywords},
		{"description", id.Description},
		{"license", id.License},
	}
}

// Validate checks that every field is set and that Version is a semantic version.
func (id Identity) Validate() error {
	for _, f := range id.Fields() {
		if f.Value == "" {
			return fmt.Errorf("package identity: %s must not be empty", f.Key)
		}
	}
	if _, err := semver.NewVersion(id.Version); err != nil {
		return fmt.Errorf("package identity: invalid version %q: %w", id.Version, err)
	}
	return nil
}

// UserAgent is sent with outgoing HTTP requests.
func (id Identity) UserAgent() string {
	return fmt.Sprintf("%s/%s (+%s)", id.Name, id.Version, id.URL)
}
