package rules

import (
	"encoding/json"
	"testing"

	"github.com/eleventy7/lintal/internal/sourcemap"
	"github.com/eleventy7/lintal/internal/textrange"
)

func TestNewFileLocation(t *testing.T) {
	loc := NewFileLocation("Main.java")

	if loc.File != "Main.java" {
		t.Errorf("File = %q, want %q", loc.File, "Main.java")
	}
	if !loc.IsFileLevel() {
		t.Error("IsFileLevel() = false, want true")
	}
}

func TestNewLocationFromRange(t *testing.T) {
	sm := sourcemap.New([]byte("class A {\nvoid m() {}\n}"))
	loc := NewLocation("Main.java", textrange.NewRange(0, 9), sm)

	if loc.File != "Main.java" {
		t.Errorf("File = %q, want %q", loc.File, "Main.java")
	}
	if loc.Start.Line != 1 || loc.Start.Column != 1 {
		t.Errorf("Start = %+v, want line 1 col 1", loc.Start)
	}
	if loc.End.Line != 1 || loc.End.Column != 10 {
		t.Errorf("End = %+v, want line 1 col 10", loc.End)
	}
	if loc.IsFileLevel() {
		t.Error("IsFileLevel() = true, want false")
	}
	if loc.IsPointLocation() {
		t.Error("IsPointLocation() = true, want false")
	}
}

func TestNewPointLocation(t *testing.T) {
	sm := sourcemap.New([]byte("class A {}"))
	loc := NewPointLocation("Main.java", 6, sm)

	if !loc.IsPointLocation() {
		t.Error("IsPointLocation() = false, want true")
	}
	if loc.IsFileLevel() {
		t.Error("IsFileLevel() = true, want false")
	}
}

func TestLocation_JSON(t *testing.T) {
	sm := sourcemap.New([]byte("class A {\nvoid m() {}\n}"))
	loc := NewLocation("Main.java", textrange.NewRange(1, 20), sm)

	data, err := json.Marshal(loc)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}

	var parsed Location
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}

	if parsed.File != loc.File {
		t.Errorf("File = %q, want %q", parsed.File, loc.File)
	}
	if parsed.Start.Line != loc.Start.Line {
		t.Errorf("Start.Line = %d, want %d", parsed.Start.Line, loc.Start.Line)
	}
}
