// Package info implements the "info" command, which prints the package identity.
package info

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/nightconcept/scif-go/internal/core/pkginfo"
)

// NewInfoCommand creates the "info" command.
func NewInfoCommand(pi *pkginfo.Info) *cli.Command {
	return &cli.Command{
		Name:  "info",
		Usage: "Displays the package name, version, author and license",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Print the identity as a JSON object",
			},
		},
		Action: func(c *cli.Context) error {
			w := c.App.Writer
			if c.Bool("json") {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				if err := enc.Encode(pi.Identity); err != nil {
					return cli.Exit(fmt.Sprintf("Error encoding identity: %v", err), 1)
				}
				return nil
			}

			keyColor := color.New(color.FgCyan).SprintFunc()
			for _, f := range pi.Identity.Fields() {
				_, _ = fmt.Fprintf(w, "%s: %s\n", keyColor(f.Key), f.Value)
			}
			return nil
		},
	}
}
