package bmx

import (
	"errors"
	"testing"
)

func TestTrim(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"  name  ", "name"},
		{"name", "name"},
		{"    ", ""},
		{"", ""},
		{"\tname\t", "\tname\t"},
		{" a b ", "a b"},
	}

	for _, test := range tests {
		if got := trim(test.input); got != test.expected {
			t.Errorf("trim(%q): expected %q, got %q", test.input, test.expected, got)
		}
	}
}

func TestReadBlockHeader(t *testing.T) {
	tests := []struct {
		line string
		name string
		kind Kind
	}{
		{"[ vertex ]", "vertex", KindText},
		{"[vertex]", "vertex", KindText},
		{"[ @material ]", "material", KindAttribute},
		{"[ #notes ]", "notes", KindComment},
		{"[ @ ]", "", KindAttribute},
		{"[ @ spaced ]", " spaced", KindAttribute},
		{"[ two words ]", "two words", KindText},
		{"[ a ] trailing", "a", KindText},
	}

	for _, test := range tests {
		name, kind, err := readBlockHeader(test.line, 1)
		if err != nil {
			t.Errorf("readBlockHeader(%q) failed: %v", test.line, err)
			continue
		}
		if name != test.name || kind != test.kind {
			t.Errorf("readBlockHeader(%q): expected (%q, %s), got (%q, %s)",
				test.line, test.name, test.kind, name, kind)
		}
	}
}

func TestReadBlockHeader_LastBracketCloses(t *testing.T) {
	_, _, err := readBlockHeader("[ a ] b ]", 7)

	var se *SyntaxError
	if !errors.As(err, &se) {
		t.Fatalf("Expected SyntaxError, got %v", err)
	}
	if se.Column != 4 || se.LineNumber != 7 || se.Line != "[ a ] b ]" {
		t.Errorf("Unexpected error detail: %+v", se)
	}
}

func TestReadAttribute(t *testing.T) {
	tests := []struct {
		line  string
		key   string
		value string
	}{
		{"@!flag", "flag", ""},
		{"@! spaced flag ", "spaced flag", ""},
		{"@!a:b", "a:b", ""},
		{"@mode: fast", "mode", "fast"},
		{"@mode:fast", "mode", "fast"},
		{"@url: http://host:80", "url", "http://host:80"},
		{"@blank:   ", "blank", ""},
		{"@tab:\tx", "tab", "\tx"},
	}

	for _, test := range tests {
		key, value, err := readAttribute(test.line, 1)
		if err != nil {
			t.Errorf("readAttribute(%q) failed: %v", test.line, err)
			continue
		}
		if key != test.key || value != test.value {
			t.Errorf("readAttribute(%q): expected (%q, %q), got (%q, %q)",
				test.line, test.key, test.value, key, value)
		}
	}
}

func TestReadAttribute_LoneSign(t *testing.T) {
	_, _, err := readAttribute("@", 2)

	var se *SyntaxError
	if !errors.As(err, &se) {
		t.Fatalf("Expected SyntaxError, got %v", err)
	}
	if se.Column != 0 || se.LineNumber != 2 {
		t.Errorf("Expected line 2 column 0, got line %d column %d", se.LineNumber, se.Column)
	}
}

func TestSyntaxError_Caret(t *testing.T) {
	se := &SyntaxError{Msg: "boom", Line: "\t[ a[b ]", LineNumber: 4, Column: 4}

	expected := "\t[ a[b ]\n\t   ^\n"
	if got := se.Caret(); got != expected {
		t.Errorf("Caret(): expected %q, got %q", expected, got)
	}
	if got := se.Error(); got != "line 4, column 4: boom" {
		t.Errorf("Error(): got %q", got)
	}
}

func TestKindString(t *testing.T) {
	if KindText.String() != "text" || KindAttribute.String() != "attribute" || KindComment.String() != "comment" {
		t.Error("Unexpected Kind names")
	}
	if Kind(42).String() != "unknown" {
		t.Errorf("Expected 'unknown', got %q", Kind(42).String())
	}
}
