package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nightconcept/scif-go/internal/core/manifest"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ManifestFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadManifest_Valid(t *testing.T) {
	path := writeManifest(t, `
[[dependency]]
name = "numpy"
min_version = "1.13.0"

[[dependency]]
name = "scipy"
exact_version = "1.0.0"
`)

	m, err := LoadManifest(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"numpy>=1.13.0", "scipy==1.0.0"}, m.Requirements())
}

func TestLoadManifest_NotFound(t *testing.T) {
	_, err := LoadManifest(filepath.Join(t.TempDir(), ManifestFileName))
	assert.Error(t, err)
	assert.True(t, os.IsNotExist(err), "Error should be a 'file not found' type error")
}

func TestLoadManifest_InvalidFormat(t *testing.T) {
	path := writeManifest(t, `
[[dependency
name = "numpy"
`)
	_, err := LoadManifest(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode manifest")
}

func TestLoadManifest_MisspelledKind(t *testing.T) {
	path := writeManifest(t, `
[[dependency]]
name = "python-dateutil"
exact_verison = "2.5.3"
`)
	_, err := LoadManifest(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown keys in manifest: dependency.exact_verison")
}

func TestLoadManifest_ConstraintRules(t *testing.T) {
	_, err := LoadManifest(writeManifest(t, `
[[dependency]]
name = "retrying"
`))
	var missing *manifest.MissingConstraintError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "retrying", missing.Package)

	_, err = LoadManifest(writeManifest(t, `
[[dependency]]
name = "retrying"
exact_version = "1.3.3"
min_version = "1.3.0"
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestLoadManifest_ValidationErrors(t *testing.T) {
	_, err := LoadManifest(writeManifest(t, `
[[dependency]]
name = "demjson"
exact_version = "2.2.4"

[[dependency]]
name = "demjson"
min_version = "2.3.0"
`))
	var dupErr *manifest.DuplicateDependencyError
	require.ErrorAs(t, err, &dupErr)
	assert.Equal(t, "demjson", dupErr.Package)

	_, err = LoadManifest(writeManifest(t, `
[[dependency]]
name = "demjson"
exact_version = "not-a-version"
`))
	var verErr *manifest.MalformedVersionError
	require.ErrorAs(t, err, &verErr)
	assert.Equal(t, "not-a-version", verErr.Value)
}

func TestWriteManifest_RoundTrip(t *testing.T) {
	m, err := manifest.New(manifest.Exact("demjson", "2.2.4"), manifest.Min("pygments", "2.1.3"))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), ManifestFileName)
	require.NoError(t, WriteManifest(path, m))

	loaded, err := LoadManifest(path)
	require.NoError(t, err)
	assert.True(t, loaded.Equal(m))
}

func TestLoadManifests(t *testing.T) {
	a := writeManifest(t, "[[dependency]]\nname = \"numpy\"\nmin_version = \"1.13.0\"\n")
	b := writeManifest(t, "[[dependency]]\nname = \"scipy\"\nexact_version = \"1.0.0\"\n")

	ms, err := LoadManifests([]string{a, b})
	require.NoError(t, err)
	require.Len(t, ms, 2)
	assert.Equal(t, []string{"numpy"}, ms[0].Names())
	assert.Equal(t, []string{"scipy"}, ms[1].Names())

	_, err = LoadManifests([]string{a, filepath.Join(t.TempDir(), "missing.toml")})
	assert.Error(t, err)
}
