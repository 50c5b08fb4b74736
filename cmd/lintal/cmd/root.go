package cmd

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/eleventy7/lintal/internal/version"
)

// NewApp creates the CLI application.
func NewApp() *cli.Command {
	return &cli.Command{
		Name:    "lintal",
		Usage:   "A fast, checkstyle-compatible linter for Java",
		Version: version.Version(),
		Description: `lintal lints Java source files against a checkstyle-compatible rule set.

Examples:
  lintal check Sample.java
  lintal check src/
  lintal fix --diff src/
  lintal fix src/`,
		Commands: []*cli.Command{
			checkCommand(),
			fixCommand(),
			versionCommand(),
		},
	}
}

// Execute runs the CLI application.
func Execute() error {
	return NewApp().Run(context.Background(), os.Args)
}
