package self

import (
	"bufio"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/creativeprojects/go-selfupdate"
	"github.com/urfave/cli/v2"

	"github.com/nightconcept/scif-go/internal/core/pkginfo"
)

// NewSelfCommand creates a new command for self-management.
func NewSelfCommand(info *pkginfo.Info) *cli.Command {
	return &cli.Command{
		Name:  "self",
		Usage: "Manage the scif CLI application itself",
		Subcommands: []*cli.Command{
			{
				Name:  "update",
				Usage: "Update scif to the latest release",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "yes",
						Aliases: []string{"y"},
						Usage:   "Automatically confirm the update",
					},
					&cli.BoolFlag{
						Name:  "check",
						Usage: "Check for available updates without installing",
					},
					&cli.StringFlag{
						Name:  "source",
						Usage: "Specify a custom GitHub update source as 'owner/repo'",
					},
					&cli.BoolFlag{
						Name:  "verbose",
						Usage: "Enable verbose output",
					},
				},
				Action: func(c *cli.Context) error { return updateAction(c, info) },
			},
		},
	}
}

// repoSlug derives "owner/repo" from a GitHub project URL.
func repoSlug(projectURL string) (string, error) {
	u, err := url.Parse(projectURL)
	if err != nil {
		return "", err
	}
	host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if host != "github.com" || len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", fmt.Errorf("%s is not a GitHub repository URL", projectURL)
	}
	return parts[0] + "/" + parts[1], nil
}

func validSlug(slug string) bool {
	parts := strings.Split(slug, "/")
	return len(parts) == 2 && parts[0] != "" && parts[1] != ""
}

func updateAction(c *cli.Context, info *pkginfo.Info) error {
	w := c.App.Writer
	currentVersionStr := info.Identity.Version
	verbose := c.Bool("verbose")

	currentSemVer, err := semver.NewVersion(strings.TrimPrefix(currentVersionStr, "v"))
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error parsing current version '%s': %v", currentVersionStr, err), 1)
	}
	if verbose {
		_, _ = fmt.Fprintf(w, "scif current version: %s\n", currentSemVer.String())
	}

	slug := c.String("source")
	if slug != "" {
		if !validSlug(slug) {
			return cli.Exit(fmt.Sprintf("Invalid --source format. Expected 'owner/repo', got: %s.", slug), 1)
		}
	} else {
		slug, err = repoSlug(info.Identity.URL)
		if err != nil {
			return cli.Exit(fmt.Sprintf("Error determining update source: %v", err), 1)
		}
	}
	if verbose {
		_, _ = fmt.Fprintf(w, "Using GitHub source: %s\n", slug)
	}

	ghSource, err := selfupdate.NewGitHubSource(selfupdate.GitHubConfig{})
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error creating GitHub source: %v", err), 1)
	}
	updater, err := selfupdate.NewUpdater(selfupdate.Config{Source: ghSource})
	if err != nil {
		return cli.Exit(fmt.Sprintf("Failed to initialize updater: %v", err), 1)
	}

	latestRelease, found, err := updater.DetectLatest(c.Context, selfupdate.ParseSlug(slug))
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error detecting latest version: %v", err), 1)
	}
	if !found || !latestRelease.GreaterThan(currentSemVer.String()) {
		_, _ = fmt.Fprintf(w, "Current version %s is already the latest.\n", currentVersionStr)
		return nil
	}

	if verbose {
		_, _ = fmt.Fprintf(w, "Latest version detected: %s (Release URL: %s)\n", latestRelease.Version(), latestRelease.URL)
		if latestRelease.ReleaseNotes != "" {
			_, _ = fmt.Fprintf(w, "Release Notes:\n%s\n", latestRelease.ReleaseNotes)
		}
	}
	_, _ = fmt.Fprintf(w, "New version available: %s (current: %s)\n", latestRelease.Version(), currentVersionStr)

	if c.Bool("check") {
		return nil
	}

	if !c.Bool("yes") {
		_, _ = fmt.Fprint(w, "Do you want to update? (y/N): ")
		input, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		if strings.TrimSpace(strings.ToLower(input)) != "y" {
			_, _ = fmt.Fprintln(w, "Update cancelled.")
			return nil
		}
	}

	execPath, err := os.Executable()
	if err != nil {
		return cli.Exit(fmt.Sprintf("Could not get executable path: %v", err), 1)
	}
	if err := updater.UpdateTo(c.Context, latestRelease, execPath); err != nil {
		return cli.Exit(fmt.Sprintf("Failed to update: %v", err), 1)
	}

	_, _ = fmt.Fprintf(w, "Successfully updated to version %s.\n", latestRelease.Version())
	return nil
}
