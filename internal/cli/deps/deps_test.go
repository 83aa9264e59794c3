package deps

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/nightconcept/scif-go/internal/core/config"
	"github.com/nightconcept/scif-go/internal/core/pkginfo"
)

// runDepsCommand executes the deps command and captures what it writes.
func runDepsCommand(t *testing.T, appArgs ...string) (string, error) {
	t.Helper()

	info, err := pkginfo.Load()
	require.NoError(t, err)

	color.NoColor = true
	var out bytes.Buffer
	app := &cli.App{
		Writer:    &out,
		ErrWriter: &out,
		Commands:  []*cli.Command{NewDepsCommand(info)},
		// Prevent os.Exit from being called by urfave/cli during tests
		ExitErrHandler: func(_ *cli.Context, _ error) {},
	}
	cmdErr := app.Run(append([]string{"scif"}, appArgs...))
	return out.String(), cmdErr
}

func writeSubmodule(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), config.ManifestFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDepsCommand_Text(t *testing.T) {
	output, err := runDepsCommand(t, "deps")
	require.NoError(t, err)

	assert.Contains(t, output, "scif@0.0.5")
	assert.Contains(t, output, "dependencies:")
	assert.Contains(t, output, "demjson ==2.2.4 (exact_version)")
	assert.Contains(t, output, "python-dateutil ==2.5.3 (exact_version)")
	assert.Contains(t, output, "pygments >=2.1.3 (min_version)")
}

func TestDepsCommand_Requirements(t *testing.T) {
	output, err := runDepsCommand(t, "deps", "--format", "requirements")
	require.NoError(t, err)

	expected := "demjson==2.2.4\n" +
		"python-dateutil==2.5.3\n" +
		"requests==2.18.4\n" +
		"requests-toolbelt==0.8.0\n" +
		"retrying==1.3.3\n" +
		"pygments>=2.1.3\n"
	assert.Equal(t, expected, output)
}

func TestDepsCommand_JSON(t *testing.T) {
	output, err := runDepsCommand(t, "ls", "-f", "json")
	require.NoError(t, err)

	var decoded [][]any
	require.NoError(t, json.Unmarshal([]byte(output), &decoded))
	require.Len(t, decoded, 6)
	assert.Equal(t, "demjson", decoded[0][0])
	assert.Equal(t, map[string]any{"exact_version": "2.2.4"}, decoded[0][1])
	assert.Equal(t, "pygments", decoded[5][0])
	assert.Equal(t, map[string]any{"min_version": "2.1.3"}, decoded[5][1])
}

func TestDepsCommand_YAML(t *testing.T) {
	output, err := runDepsCommand(t, "deps", "--format", "yaml")
	require.NoError(t, err)

	var decoded [][]any
	require.NoError(t, yaml.Unmarshal([]byte(output), &decoded))
	require.Len(t, decoded, 6)
	assert.Equal(t, "requests-toolbelt", decoded[3][0])
	assert.Equal(t, map[string]any{"exact_version": "0.8.0"}, decoded[3][1])
}

func TestDepsCommand_TOMLRoundTrips(t *testing.T) {
	output, err := runDepsCommand(t, "deps", "--format", "toml")
	require.NoError(t, err)

	m, err := config.DecodeManifest([]byte(output))
	require.NoError(t, err)

	info, err := pkginfo.Load()
	require.NoError(t, err)
	assert.True(t, m.Equal(info.Manifest()))
}

func TestDepsCommand_WithSubmodule(t *testing.T) {
	sub := writeSubmodule(t, "[[dependency]]\nname = \"numpy\"\nmin_version = \"1.13.0\"\n")

	output, err := runDepsCommand(t, "deps", "--with", sub, "--format", "requirements")
	require.NoError(t, err)
	assert.Contains(t, output, "pygments>=2.1.3\nnumpy>=1.13.0\n")
}

func TestDepsCommand_AllWithoutSubmodulesMatchesBase(t *testing.T) {
	base, err := runDepsCommand(t, "deps", "--format", "requirements")
	require.NoError(t, err)
	all, err := runDepsCommand(t, "deps", "--all", "--format", "requirements")
	require.NoError(t, err)
	assert.Equal(t, base, all)
}

func TestDepsCommand_SubmoduleConflict(t *testing.T) {
	sub := writeSubmodule(t, "[[dependency]]\nname = \"demjson\"\nexact_version = \"2.3.0\"\n")

	_, err := runDepsCommand(t, "deps", "--with", sub)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate dependency "demjson"`)
}

func TestDepsCommand_UnknownFormat(t *testing.T) {
	_, err := runDepsCommand(t, "deps", "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown format "xml"`)
}
