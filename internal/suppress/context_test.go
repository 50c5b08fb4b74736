package suppress

import (
	"testing"

	"github.com/eleventy7/lintal/internal/javacst"
	"github.com/eleventy7/lintal/internal/textrange"
)

func TestContext_HasSuppressions_Empty(t *testing.T) {
	ctx := NewContext([]byte("int a;"), nil, javacst.Node{})
	if ctx.HasSuppressions() {
		t.Error("expected no suppressions for a plain file")
	}
}

func TestContext_IsSuppressed_CommentRegion(t *testing.T) {
	src := []byte("int a; // CHECKSTYLE:OFF:RuleX\nint b;\n// CHECKSTYLE:ON:RuleX\nint c;")
	ctx := NewContext(src, nil, javacst.Node{})

	if !ctx.HasSuppressions() {
		t.Fatal("expected at least one suppression region")
	}

	offInsideRegion := textrange.Size(len("int a; // CHECKSTYLE:OFF:RuleX\nint "))
	if !ctx.IsSuppressed("RuleX", offInsideRegion) {
		t.Error("expected RuleX suppressed inside the OFF/ON region")
	}
	if ctx.IsSuppressed("RuleY", offInsideRegion) {
		t.Error("an OFF:RuleX region must not suppress an unrelated rule")
	}
}

func TestContext_IsSuppressed_OutsideRegion(t *testing.T) {
	src := []byte("int a; // CHECKSTYLE:OFF:RuleX\nint b;\n// CHECKSTYLE:ON:RuleX\nint c;")
	ctx := NewContext(src, nil, javacst.Node{})

	lastOffset := textrange.Size(len(src) - 1)
	if ctx.IsSuppressed("RuleX", lastOffset) {
		t.Error("offset after the ON comment must not be suppressed")
	}
}
