package manifest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nightconcept/scif-go/internal/core/manifest"
)

func TestNewConstraint(t *testing.T) {
	t.Parallel()

	c, err := manifest.NewConstraint(manifest.KindExact, "2.2.4")
	require.NoError(t, err)
	assert.Equal(t, manifest.ExactVersion{Version: "2.2.4"}, c)
	assert.Equal(t, "==", c.Operator())

	c, err = manifest.NewConstraint(manifest.KindMin, "2.1.3")
	require.NoError(t, err)
	assert.Equal(t, manifest.MinVersion{Version: "2.1.3"}, c)
	assert.Equal(t, ">=", c.Operator())

	_, err = manifest.NewConstraint("exact_verison", "2.5.3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown constraint kind "exact_verison"`)
}

func TestSatisfies(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name       string
		constraint manifest.Constraint
		version    string
		want       bool
	}{
		{"exact match", manifest.ExactVersion{Version: "2.2.4"}, "2.2.4", true},
		{"exact newer", manifest.ExactVersion{Version: "2.2.4"}, "2.3.0", false},
		{"exact older", manifest.ExactVersion{Version: "2.18.4"}, "2.9.0", false},
		{"min equal", manifest.MinVersion{Version: "2.1.3"}, "2.1.3", true},
		{"min greater", manifest.MinVersion{Version: "2.1.3"}, "2.5.0", true},
		{"min two digit minor", manifest.MinVersion{Version: "2.9.0"}, "2.10.0", true},
		{"min lower", manifest.MinVersion{Version: "2.1.3"}, "2.1.2", false},
		{"min excludes prerelease", manifest.MinVersion{Version: "2.1.3"}, "3.0.0-rc1", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := manifest.Satisfies(tt.constraint, tt.version)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSatisfies_MalformedCandidate(t *testing.T) {
	t.Parallel()
	_, err := manifest.Satisfies(manifest.MinVersion{Version: "1.0.0"}, "latest")
	var verErr *manifest.MalformedVersionError
	require.ErrorAs(t, err, &verErr)
	assert.Equal(t, "latest", verErr.Value)
}
