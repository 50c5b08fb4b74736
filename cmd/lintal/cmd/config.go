package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/eleventy7/lintal/internal/checkstylecfg"
	"github.com/eleventy7/lintal/internal/hostconfig"
	"github.com/eleventy7/lintal/internal/suppress"
)

// resolvedConfig bundles everything linter.CheckFile and the fixer need to
// run a pass over the discovered files.
type resolvedConfig struct {
	Merged   *hostconfig.MergedConfig
	Filters  []suppress.Filter
	FileTable *suppress.FileTable
}

// sharedFlags are the config/config-root overrides common to both check
// and fix, per the CLI surface's two-subcommand contract.
func sharedFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "config",
			Usage: "Path to the checkstyle XML configuration (default: auto-discover)",
		},
		&cli.StringFlag{
			Name:  "config-root",
			Usage: "Directory to start host TOML config discovery from (default: current directory)",
		},
		&cli.BoolFlag{
			Name:  "debug",
			Usage: "Log debug-level diagnostics to stderr",
		},
	}
}

// resolveConfig loads and merges the checkstyle XML and host TOML layers.
func resolveConfig(cmd *cli.Command) (*resolvedConfig, error) {
	root := cmd.String("config-root")
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("resolve config root: %w", err)
		}
		root = wd
	}

	// Discover starts from its argument's parent directory, so pass a
	// path inside root for the search to begin at root itself.
	hostOverrides, err := hostconfig.Load(filepath.Join(root, hostconfig.ConfigFileNames[0]))
	if err != nil {
		return nil, fmt.Errorf("load host config: %w", err)
	}

	var cs *checkstylecfg.Config
	checkstylePath := cmd.String("config")
	if checkstylePath == "" {
		checkstylePath = discoverCheckstyleConfig(root)
	}
	if checkstylePath != "" {
		cs, err = checkstylecfg.Load(checkstylePath)
		if err != nil {
			return nil, fmt.Errorf("load checkstyle config: %w", err)
		}
	}

	merged := hostconfig.Merge(cs, hostOverrides)

	var fileTable *suppress.FileTable
	var filters []suppress.Filter
	if cs != nil {
		filters = cs.Filters
		if cs.SuppressionFilePath != "" {
			fileTable, err = loadSuppressionFile(cs.SuppressionFilePath)
			if err != nil {
				return nil, fmt.Errorf("load suppression file: %w", err)
			}
		}
	}

	return &resolvedConfig{Merged: merged, Filters: filters, FileTable: fileTable}, nil
}

// checkstyleConfigNames mirrors hostconfig's ConfigFileNames convention
// for the checkstyle XML layer, which has no env-var override surface.
var checkstyleConfigNames = []string{"checkstyle.xml", ".checkstyle.xml"}

func discoverCheckstyleConfig(root string) string {
	dir := root
	for {
		for _, name := range checkstyleConfigNames {
			candidate := filepath.Join(dir, name)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

func loadSuppressionFile(path string) (*suppress.FileTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return suppress.ParseFileTable(f)
}
