// Package checkstylecfg parses a checkstyle XML configuration: the
// `<module>` tree plus the two suppression-related module kinds the core
// engine consumes directly.
package checkstylecfg

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/eleventy7/lintal/internal/suppress"
)

// xmlProperty is one <property name="..." value="..."/> element.
type xmlProperty struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

// xmlModule is one <module name="..."> element, recursively nested.
type xmlModule struct {
	Name       string        `xml:"name,attr"`
	Properties []xmlProperty `xml:"property"`
	Children   []xmlModule   `xml:"module"`
}

type xmlRoot struct {
	XMLName xml.Name  `xml:"module"`
	xmlModule
}

// Module is a parsed checkstyle module: a name plus flattened properties.
// "TreeWalker" and "Checker" are structural containers, not rule modules.
type Module struct {
	Name       string
	Properties map[string]string
}

// Config is a parsed checkstyle configuration.
type Config struct {
	// RuleModules lists every module under TreeWalker (or the root) that
	// isn't one of the two suppression module kinds, keyed by its name
	// (the checkstyle check name, e.g. "MagicNumber").
	RuleModules map[string]Module

	// Filters are the comment-directive filters contributed by
	// SuppressWithPlainTextCommentFilter modules.
	Filters []suppress.Filter

	// SuppressionFilePath is the resolved path of a SuppressionFilter
	// module's `file` attribute, or empty if none was configured.
	SuppressionFilePath string
}

// Load parses the checkstyle XML file at path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("checkstylecfg: open %s: %w", path, err)
	}
	defer f.Close()

	cfg, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("checkstylecfg: parse %s: %w", path, err)
	}
	cfg.resolveConfigLoc(filepath.Dir(path))
	return cfg, nil
}

// Parse parses a checkstyle XML document from r.
func Parse(r io.Reader) (*Config, error) {
	var root xmlRoot
	if err := xml.NewDecoder(r).Decode(&root); err != nil {
		return nil, err
	}

	cfg := &Config{RuleModules: make(map[string]Module)}
	collectModules(root.xmlModule, cfg)
	return cfg, nil
}

// collectModules walks the module tree: Checker and TreeWalker are
// transparent containers, SuppressWithPlainTextCommentFilter and
// SuppressionFilter are handled specially, everything else is a rule
// module.
func collectModules(m xmlModule, cfg *Config) {
	switch m.Name {
	case "Checker", "TreeWalker":
		for _, child := range m.Children {
			collectModules(child, cfg)
		}
		return
	case "SuppressWithPlainTextCommentFilter":
		cfg.Filters = append(cfg.Filters, filterFromModule(m))
		return
	case "SuppressionFilter":
		cfg.SuppressionFilePath = propertyValue(m, "file")
		return
	}

	props := make(map[string]string, len(m.Properties))
	for _, p := range m.Properties {
		props[p.Name] = p.Value
	}
	cfg.RuleModules[m.Name] = Module{Name: m.Name, Properties: props}

	for _, child := range m.Children {
		collectModules(child, cfg)
	}
}

func propertyValue(m xmlModule, name string) string {
	for _, p := range m.Properties {
		if p.Name == name {
			return p.Value
		}
	}
	return ""
}

// filterFromModule builds a suppress.Filter from a
// SuppressWithPlainTextCommentFilter module's offCommentFormat/
// onCommentFormat/checkFormat properties. checkFormat names the capture
// group ($N) that holds the rule name; group 1 is assumed when absent.
func filterFromModule(m xmlModule) suppress.Filter {
	off := propertyValueOr(m, "offCommentFormat", `CHECKSTYLE:OFF:(\w+)`)
	on := propertyValueOr(m, "onCommentFormat", `CHECKSTYLE:ON:(\w+)`)
	group := 1
	if cf := propertyValue(m, "checkFormat"); cf != "" {
		if n, ok := captureGroupIndex(cf); ok {
			group = n
		}
	}
	return suppress.Filter{
		OffPattern:   regexp.MustCompile(off),
		OnPattern:    regexp.MustCompile(on),
		CaptureGroup: group,
	}
}

func propertyValueOr(m xmlModule, name, fallback string) string {
	if v := propertyValue(m, name); v != "" {
		return v
	}
	return fallback
}

// captureGroupIndex parses a "$N" checkFormat spec. Group 0 is valid and
// means "the whole match", which suppress.Filter treats as the wildcard
// rule name "*" rather than a literal capture group.
func captureGroupIndex(spec string) (int, bool) {
	spec = strings.TrimPrefix(spec, "$")
	if spec == "" {
		return 0, false
	}
	n := 0
	for _, r := range spec {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	return n, true
}

// resolveConfigLoc expands a `${config_loc}` placeholder in
// SuppressionFilePath to configDir, the directory the checkstyle XML file
// itself lives in.
func (c *Config) resolveConfigLoc(configDir string) {
	if c.SuppressionFilePath == "" {
		return
	}
	c.SuppressionFilePath = strings.ReplaceAll(c.SuppressionFilePath, "${config_loc}", configDir)
	if !filepath.IsAbs(c.SuppressionFilePath) {
		c.SuppressionFilePath = filepath.Join(configDir, c.SuppressionFilePath)
	}
}
