package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/nightconcept/scif-go/internal/cli/deps"
	"github.com/nightconcept/scif-go/internal/cli/info"
	"github.com/nightconcept/scif-go/internal/cli/resolve"
	"github.com/nightconcept/scif-go/internal/cli/self"
	"github.com/nightconcept/scif-go/internal/core/pkginfo"
)

func main() {
	// A broken manifest must stop the tool before any command runs.
	pi, err := pkginfo.Load()
	if err != nil {
		log.Fatal(err)
	}

	app := &cli.App{
		Name:    pi.Identity.Name,
		Usage:   pi.Identity.Description,
		Version: "v" + pi.Identity.Version,
		Authors: []*cli.Author{{Name: pi.Identity.Author, Email: pi.Identity.AuthorEmail}},
		Action: func(c *cli.Context) error {
			_ = cli.ShowAppHelp(c)
			return nil
		},
		Commands: []*cli.Command{
			info.NewInfoCommand(pi),
			deps.NewDepsCommand(pi),
			resolve.NewResolveCommand(pi),
			self.NewSelfCommand(pi),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
