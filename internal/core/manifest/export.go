package manifest

// Exported is the shape handed to packaging tools: a package name followed
// by a single-entry mapping of constraint kind to value, e.g.
// ["pygments", {"min_version": "2.1.3"}].
type Exported [2]any

// Export returns the manifest in consumer shape, in declaration order.
func (m *Manifest) Export() []Exported {
	decls := m.Declarations()
	out := make([]Exported, 0, len(decls))
	for _, d := range decls {
		out = append(out, Exported{d.Name, map[string]string{string(d.Constraint.Kind()): d.Constraint.Value()}})
	}
	return out
}
