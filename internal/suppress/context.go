package suppress

import (
	"github.com/eleventy7/lintal/internal/javacst"
	"github.com/eleventy7/lintal/internal/textrange"
)

// Context is the per-file suppression index: range regions from comment
// directives plus annotation-scoped regions from the CST. Built once per
// file check and consulted once per diagnostic.
type Context struct {
	regions []Region
}

// NewContext scans source for comment-directive regions using filters
// (DefaultFilter is always included, ahead of any given filters) and,
// when root is non-zero, annotation regions from the CST.
func NewContext(source []byte, filters []Filter, root javacst.Node) *Context {
	if len(filters) == 0 {
		filters = []Filter{DefaultFilter()}
	} else {
		filters = append([]Filter{DefaultFilter()}, filters...)
	}

	ctx := &Context{regions: ScanComments(source, filters)}
	if !root.IsZero() {
		ctx.regions = append(ctx.regions, ScanAnnotations(root)...)
	}
	return ctx
}

// HasSuppressions reports whether any region exists at all, letting the
// check driver skip the per-node suppression query entirely on files with
// no directives and no @SuppressWarnings.
func (c *Context) HasSuppressions() bool {
	return len(c.regions) > 0
}

// IsSuppressed reports whether offset is silenced for ruleCode by any
// region, comment-based or annotation-based.
func (c *Context) IsSuppressed(ruleCode string, offset textrange.Size) bool {
	for _, r := range c.regions {
		if r.Suppresses(ruleCode) && r.Contains(offset) {
			return true
		}
	}
	return false
}
