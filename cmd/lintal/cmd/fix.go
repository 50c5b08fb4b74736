package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/eleventy7/lintal/internal/diffrender"
	"github.com/eleventy7/lintal/internal/fix"
	"github.com/eleventy7/lintal/internal/logging"
)

func fixCommand() *cli.Command {
	flags := append([]cli.Flag{
		&cli.BoolFlag{
			Name:  "diff",
			Usage: "Print a unified diff instead of writing files",
		},
		&cli.BoolFlag{
			Name:  "unsafe",
			Usage: "Also apply fixes marked unsafe",
		},
	}, sharedFlags()...)

	return &cli.Command{
		Name:      "fix",
		Usage:     "Apply available fixes to Java source file(s)",
		ArgsUsage: "PATHS...",
		Flags:     flags,
		Action:    runFix,
	}
}

func runFix(_ context.Context, cmd *cli.Command) error {
	paths := cmd.Args().Slice()
	if len(paths) == 0 {
		fmt.Fprintln(os.Stderr, "Error: fix requires at least one path")
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

	mode := fix.ModeSafeOnly
	if cmd.Bool("unsafe") {
		mode = fix.ModeIncludeUnsafe
	}

	fixer := &fix.Fixer{Mode: mode}
	result := fixer.Apply(diagnostics, sources)

	if cmd.Bool("diff") {
		return printDiffs(os.Stdout, files, result)
	}
	return writeFixed(files, result)
}

// printDiffs writes a unified diff per modified file, in the order files
// were discovered, so output is deterministic across runs.
func printDiffs(w *os.File, files []string, result *fix.Result) error {
	for _, path := range files {
		fc, ok := result.Changes[filepath.Clean(path)]
		if !ok || !fc.HasChanges() {
			continue
		}
		diff := diffrender.Unified(path, fc.OriginalContent, fc.ModifiedContent)
		if diff == "" {
			continue
		}
		if _, err := fmt.Fprint(w, diff); err != nil {
			return err
		}
	}
	return nil
}

// writeFixed writes each modified file's content back to disk. Exit code
// stays 0 on success; only an I/O error produces a non-zero exit, per the
// fix subcommand's contract.
func writeFixed(files []string, result *fix.Result) error {
	for _, path := range files {
		fc, ok := result.Changes[filepath.Clean(path)]
		if !ok || !fc.HasChanges() {
			continue
		}
		info, err := os.Stat(path)
		mode := os.FileMode(0o644)
		if err == nil {
			mode = info.Mode()
		}
		if err := os.WriteFile(path, fc.ModifiedContent, mode); err != nil {
			fmt.Fprintf(os.Stderr, "Error: write %s: %v\n", path, err)
			return cli.Exit("", 2)
		}
	}
	return nil
}
