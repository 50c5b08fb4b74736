package version

import (
	"runtime"
	"runtime/debug"
	"slices"
)

var version = "dev"

// Version returns the current version string with the bound Java grammar
// version suffix.
func Version() string {
	grammarVersion := JavaGrammarVersion()
	if grammarVersion != "" {
		return version + " (tree-sitter-java " + grammarVersion + ")"
	}
	return version
}

// RawVersion returns the semantic version string without any suffix.
func RawVersion() string {
	return version
}

// JavaGrammarVersion returns the linked tree-sitter-java grammar version
// from build info.
func JavaGrammarVersion() string {
	grammar, _ := readBuildInfo()
	return grammar
}

// GoVersion returns the Go toolchain version used for the build.
func GoVersion() string {
	return runtime.Version()
}

// readBuildInfo reads debug.ReadBuildInfo once and extracts both the
// tree-sitter-java grammar version and the VCS revision.
func readBuildInfo() (string, string) {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "", ""
	}
	var grammarVersion, commit string
	if idx := slices.IndexFunc(info.Deps, func(dep *debug.Module) bool {
		return dep.Path == "github.com/tree-sitter-grammars/tree-sitter-java"
	}); idx >= 0 {
		grammarVersion = info.Deps[idx].Version
	}
	if idx := slices.IndexFunc(info.Settings, func(s debug.BuildSetting) bool {
		return s.Key == "vcs.revision"
	}); idx >= 0 {
		val := info.Settings[idx].Value
		if len(val) > 12 {
			commit = val[:12]
		} else {
			commit = val
		}
	}
	return grammarVersion, commit
}

// Info holds structured version information for machine-readable output.
type Info struct {
	Version            string   `json:"version"`
	JavaGrammarVersion string   `json:"javaGrammarVersion,omitempty"`
	Platform           Platform `json:"platform"`
	GoVersion          string   `json:"goVersion"`
	GitCommit          string   `json:"gitCommit,omitempty"`
}

// Platform describes the OS and architecture.
type Platform struct {
	OS   string `json:"os"`
	Arch string `json:"arch"`
}

// GetInfo returns structured version information.
func GetInfo() Info {
	grammarVersion, commit := readBuildInfo()
	return Info{
		Version:            RawVersion(),
		JavaGrammarVersion: grammarVersion,
		Platform: Platform{
			OS:   runtime.GOOS,
			Arch: runtime.GOARCH,
		},
		GoVersion: GoVersion(),
		GitCommit: commit,
	}
}
