package bmx

import (
	"errors"
	"testing"
)

func TestApplyIncludes(t *testing.T) {
	data := NewData()
	data.Texts["lib"] = "X\n"
	data.Texts["vertex"] = "before\n@include(lib)\nafter\n"

	if err := ApplyIncludes(data, "vertex"); err != nil {
		t.Fatalf("ApplyIncludes() failed: %v", err)
	}

	expected := "before\nX\nafter\n"
	if data.Texts["vertex"] != expected {
		t.Errorf("Expected %q, got %q", expected, data.Texts["vertex"])
	}
	if data.Texts["lib"] != "X\n" {
		t.Errorf("Included block changed: %q", data.Texts["lib"])
	}
}

func TestApplyIncludes_DirectiveForms(t *testing.T) {
	tests := []struct {
		line   string
		target string
	}{
		{"@include(lib)", "lib"},
		{"@include ( lib )", "lib"},
		{"@include(my lib)", "mylib"},
		{"@include lib", "lib"},
	}

	for _, test := range tests {
		if got := includeTarget(test.line); got != test.target {
			t.Errorf("includeTarget(%q): expected %q, got %q", test.line, test.target, got)
		}
	}
}

func TestApplyIncludes_OnlyAtLineStart(t *testing.T) {
	data := NewData()
	data.Texts["lib"] = "X\n"
	data.Texts["main"] = "  @include(lib)\n// @include(lib)\n"

	if err := ApplyIncludes(data, "main"); err != nil {
		t.Fatalf("ApplyIncludes() failed: %v", err)
	}
	if data.Texts["main"] != "  @include(lib)\n// @include(lib)\n" {
		t.Errorf("Indented directives must be left alone, got %q", data.Texts["main"])
	}
}

func TestApplyIncludes_SingleLevel(t *testing.T) {
	data := NewData()
	data.Texts["inner"] = "I\n"
	data.Texts["outer"] = "O\n@include(inner)\n"
	data.Texts["main"] = "@include(outer)\n"

	if err := ApplyIncludes(data, "main", "outer"); err != nil {
		t.Fatalf("ApplyIncludes() failed: %v", err)
	}

	// main receives outer as it was before expansion.
	if data.Texts["main"] != "O\n@include(inner)\n" {
		t.Errorf("Expected nested directive to stay, got %q", data.Texts["main"])
	}
	if data.Texts["outer"] != "O\nI\n" {
		t.Errorf("Expected outer expanded, got %q", data.Texts["outer"])
	}
}

func TestApplyIncludes_MissingTarget(t *testing.T) {
	data := NewData()
	data.Texts["vertex"] = "a\n@include(nope)\n"
	data.Texts["fragment"] = "@include(vertex)\n"

	err := ApplyIncludes(data, "vertex", "fragment")

	var ie *IncludeError
	if !errors.As(err, &ie) {
		t.Fatalf("Expected IncludeError, got %v", err)
	}
	if ie.Block != "vertex" || ie.Target != "nope" || ie.LineNumber != 2 {
		t.Errorf("Unexpected error detail: %+v", ie)
	}

	// Nothing is written when any block fails.
	if data.Texts["fragment"] != "@include(vertex)\n" {
		t.Errorf("Expected fragment untouched, got %q", data.Texts["fragment"])
	}
}

func TestApplyIncludes_BodyWithoutNewline(t *testing.T) {
	data := NewData()
	data.Texts["lib"] = "X"
	data.Texts["empty"] = ""
	data.Texts["main"] = "@include(lib)\n@include(empty)\nend"

	if err := ApplyIncludes(data, "main", "absent"); err != nil {
		t.Fatalf("ApplyIncludes() failed: %v", err)
	}
	if data.Texts["main"] != "X\nend\n" {
		t.Errorf("Expected %q, got %q", "X\nend\n", data.Texts["main"])
	}
	if _, ok := data.Texts["absent"]; ok {
		t.Error("ApplyIncludes() must not create blocks")
	}
}

func TestApplyIncludes_Parsed(t *testing.T) {
	input := `[ common ]
uniform mat4 u_mvp;
[ vertex ]
#version 330 core
@include(common)
void main() {}
`
	data, err := ParseString(input)
	if err != nil {
		t.Fatalf("ParseString() failed: %v", err)
	}
	if err := ApplyIncludes(data, "vertex", "fragment"); err != nil {
		t.Fatalf("ApplyIncludes() failed: %v", err)
	}

	expected := "#version 330 core\nuniform mat4 u_mvp;\nvoid main() {}\n"
	if data.Texts["vertex"] != expected {
		t.Errorf("Expected %q, got %q", expected, data.Texts["vertex"])
	}
}
