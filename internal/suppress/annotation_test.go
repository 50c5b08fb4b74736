package suppress

import (
	"testing"

	"github.com/eleventy7/lintal/internal/javaparser"
)

func TestScanAnnotations_MethodLevelSuppression(t *testing.T) {
	src := []byte(`class Main {
    @SuppressWarnings("checkstyle:MagicNumber")
    void compute() {
        int x = 42;
    }
}`)

	pool := javaparser.NewPool()
	tree, err := pool.Parse(src)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	defer tree.Close()

	regions := ScanAnnotations(tree.Root())
	if len(regions) != 1 {
		t.Fatalf("got %d regions, want 1: %v", len(regions), regions)
	}
	if regions[0].Rule != "MagicNumber" {
		t.Errorf("Rule = %q, want MagicNumber", regions[0].Rule)
	}
}

func TestScanAnnotations_ArrayOfStrings(t *testing.T) {
	src := []byte(`class Main {
    @SuppressWarnings({"checkstyle:MagicNumber", "checkstyle:FinalParameters"})
    void compute(int x) {}
}`)

	pool := javaparser.NewPool()
	tree, err := pool.Parse(src)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	defer tree.Close()

	regions := ScanAnnotations(tree.Root())
	if len(regions) != 2 {
		t.Fatalf("got %d regions, want 2: %v", len(regions), regions)
	}
}

func TestScanAnnotations_NonCheckstyleAnnotationsIgnored(t *testing.T) {
	src := []byte(`class Main {
    @SuppressWarnings("unchecked")
    void compute() {}
}`)

	pool := javaparser.NewPool()
	tree, err := pool.Parse(src)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	defer tree.Close()

	regions := ScanAnnotations(tree.Root())
	if len(regions) != 0 {
		t.Fatalf("got %d regions, want 0 for a non-checkstyle suppression", len(regions))
	}
}
