package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/eleventy7/lintal/internal/linter"
	"github.com/eleventy7/lintal/internal/logging"
	"github.com/eleventy7/lintal/internal/reporter"
	"github.com/eleventy7/lintal/internal/rules"
	"github.com/eleventy7/lintal/internal/version"
)

func checkCommand() *cli.Command {
	flags := append([]cli.Flag{
		&cli.StringFlag{
			Name:  "format",
			Usage: "Output format: text, json, sarif, github-actions, markdown",
		},
	}, sharedFlags()...)

	return &cli.Command{
		Name:      "check",
		Usage:     "Lint Java source file(s) for issues",
		ArgsUsage: "PATHS...",
		Flags:     flags,
		Action:    runCheck,
	}
}

func runCheck(_ context.Context, cmd *cli.Command) error {
	paths := cmd.Args().Slice()
	if len(paths) == 0 {
		fmt.Fprintln(os.Stderr, "Error: check requires at least one path")
		return cli.Exit("", 2)
	}

	files, err := discoverFiles(paths)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return cli.Exit("", 2)
	}

	cfg, err := resolveConfig(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return cli.Exit("", 2)
	}

	channel := logging.NewChannel(logging.New(cmd.Bool("debug")))
	diagnostics, sources, errs := checkAll(files, cfg, channel)
	for _, e := range errs {
		fmt.Fprintf(os.Stderr, "Error: %v\n", e)
	}
	if len(errs) > 0 {
		return cli.Exit("", 2)
	}

	sorted := reporter.SortViolations(diagnostics)

	format := cmd.String("format")
	if format == "" || format == "text" {
		printStableFormat(os.Stdout, sorted)
	} else {
		rulesEnabled := len(linter.RulesFor(cfg.Merged))
		if err := printOtherFormat(os.Stdout, format, sorted, sources, len(files), rulesEnabled); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return cli.Exit("", 2)
		}
	}

	if len(sorted) > 0 {
		return cli.Exit("", 1)
	}
	return nil
}

// printStableFormat writes the stable, required-by-spec text output:
// one line per diagnostic, then a one-line summary. This format's byte
// contract doesn't go through internal/reporter's richer TextReporter,
// which is reserved for when a user explicitly asks for it.
func printStableFormat(w io.Writer, diagnostics []rules.Diagnostic) {
	fixable := 0
	for _, d := range diagnostics {
		fmt.Fprintf(w, "%s:%d:%d: [%s] %s\n", d.Location.File, d.Location.Start.Line, d.Location.Start.Column, d.RuleCode, d.Message)
		if d.Fix != nil {
			fixable++
		}
	}
	fmt.Fprintf(w, "Found %d violations (%d fixable)\n", len(diagnostics), fixable)
}

func printOtherFormat(w io.Writer, format string, diagnostics []rules.Diagnostic, sources map[string][]byte, filesScanned, rulesEnabled int) error {
	f, err := reporter.ParseFormat(format)
	if err != nil {
		return err
	}
	rep, err := reporter.New(reporter.Options{
		Format:      f,
		Writer:      w,
		ToolVersion: version.RawVersion(),
	})
	if err != nil {
		return err
	}

	return rep.Report(diagnostics, sources, reporter.ReportMetadata{
		FilesScanned: filesScanned,
		RulesEnabled: rulesEnabled,
	})
}
