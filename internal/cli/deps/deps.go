package deps

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/nightconcept/scif-go/internal/cli/common"
	"github.com/nightconcept/scif-go/internal/core/config"
	"github.com/nightconcept/scif-go/internal/core/manifest"
	"github.com/nightconcept/scif-go/internal/core/pkginfo"
)

var formats = []string{"text", "requirements", "json", "yaml", "toml"}

// NewDepsCommand creates the "deps" command, which prints the dependency manifest.
func NewDepsCommand(info *pkginfo.Info) *cli.Command {
	return &cli.Command{
		Name:    "deps",
		Aliases: []string{"ls"},
		Usage:   "Displays the runtime dependencies and their version constraints",
		Flags: append(common.ManifestFlags(),
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: " + strings.Join(formats, ", "),
				Value:   "text",
			},
		),
		Action: func(c *cli.Context) error {
			m, err := common.SelectManifest(c, info)
			if err != nil {
				return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
			}
			if err := write(c.App.Writer, c.String("format"), info, m); err != nil {
				return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
			}
			return nil
		},
	}
}

func write(w io.Writer, format string, info *pkginfo.Info, m *manifest.Manifest) error {
	switch format {
	case "text":
		writeText(w, info, m)
		return nil
	case "requirements":
		for _, r := range m.Requirements() {
			_, _ = fmt.Fprintln(w, r)
		}
		return nil
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(m.Export())
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(m.Export()); err != nil {
			return err
		}
		return enc.Close()
	case "toml":
		data, err := config.EncodeManifest(m)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	default:
		return fmt.Errorf("unknown format %q (expected one of %s)", format, strings.Join(formats, ", "))
	}
}

func writeText(w io.Writer, info *pkginfo.Info, m *manifest.Manifest) {
	nameColor := color.New(color.FgMagenta, color.Bold, color.Underline).SprintFunc()
	versionColor := color.New(color.FgMagenta).SprintFunc()
	headerColor := color.New(color.FgCyan, color.Bold).SprintFunc()
	depNameColor := color.New(color.FgWhite).SprintFunc()
	opColor := color.New(color.FgYellow).SprintFunc()
	kindColor := color.New(color.FgHiBlack).SprintFunc()

	_, _ = fmt.Fprintf(w, "%s@%s\n\n", nameColor(info.Identity.Name), versionColor(info.Identity.Version))
	_, _ = fmt.Fprintln(w, headerColor("dependencies:"))
	if m.Len() == 0 {
		_, _ = fmt.Fprintln(w, "No dependencies declared.")
		return
	}
	for _, d := range m.Declarations() {
		_, _ = fmt.Fprintf(w, "%s %s %s\n",
			depNameColor(d.Name),
			opColor(d.Constraint.Operator()+d.Constraint.Value()),
			kindColor("("+string(d.Constraint.Kind())+")"))
	}
}
