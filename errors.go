package bmx

import (
	"errors"
	"fmt"
	"strings"
)

// Configuration errors. They are reported before any line is classified.
var (
	ErrEmptyInput = errors.New("bmx: failed to load data from an empty string")
	ErrUnreadable = errors.New("bmx: input is not readable")
)

// SyntaxError represents a malformed line with location information.
type SyntaxError struct {
	Msg        string
	Line       string // offending source line
	LineNumber int    // 1-based
	Column     int    // 0-based index into Line
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d, column %d: %s", e.LineNumber, e.Column, e.Msg)
}

// Caret renders the offending line with a '^' under Column.
func (e *SyntaxError) Caret() string {
	var b strings.Builder
	b.WriteString(e.Line)
	b.WriteByte('\n')

	// Keep tabs so the pointer lines up with the source.
	for i := 0; i < e.Column; i++ {
		if i < len(e.Line) && e.Line[i] == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteByte(' ')
		}
	}
	b.WriteString("^\n")
	return b.String()
}

func syntaxError(line string, lineNumber, column int, format string, args ...any) *SyntaxError {
	if column < 0 {
		column = 0
	}
	return &SyntaxError{
		Msg:        fmt.Sprintf(format, args...),
		Line:       line,
		LineNumber: lineNumber,
		Column:     column,
	}
}

// IncludeError reports an @include directive naming a missing text block.
type IncludeError struct {
	Block      string // block holding the directive
	Target     string // referenced block
	LineNumber int    // 1-based line within Block
}

func (e *IncludeError) Error() string {
	return fmt.Sprintf("failed to process includer command: block %q line %d: text block %q not found",
		e.Block, e.LineNumber, e.Target)
}
