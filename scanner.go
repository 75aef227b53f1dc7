package bmx

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
)

// DefaultMaxLineSize is the longest line a stream Scanner accepts.
const DefaultMaxLineSize = 1 << 20

// LineSource yields input lines without their trailing newline.
type LineSource interface {
	// NextLine returns the next line, or false once the input is exhausted.
	NextLine() (string, bool)

	// Err returns the first read error, if any.
	Err() error
}

// Scanner wraps a bufio.Scanner with a line counter.
type Scanner struct {
	*bufio.Scanner
	lineNum int
}

// NewScanner creates a new Scanner from an io.Reader.
// Lines are cut on '\n' only; a '\r' stays part of the line.
func NewScanner(r io.Reader) *Scanner {
	return newScanner(r, DefaultMaxLineSize)
}

func newScanner(r io.Reader, maxLineSize int) *Scanner {
	s := bufio.NewScanner(r)
	s.Split(scanRawLines)
	s.Buffer(make([]byte, 0, min(bufio.MaxScanTokenSize, maxLineSize)), maxLineSize)
	return &Scanner{Scanner: s}
}

// NextLine advances the scanner and returns the current line.
func (s *Scanner) NextLine() (string, bool) {
	if !s.Scan() {
		return "", false
	}
	s.lineNum++
	return s.Text(), true
}

// LineNum returns the number of lines read so far.
func (s *Scanner) LineNum() int {
	return s.lineNum
}

// scanRawLines is bufio.ScanLines without the carriage return handling.
func scanRawLines(data []byte, atEOF bool) (int, []byte, error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

// stringSource serves lines of an in-memory string.
type stringSource struct {
	rest string
	done bool
}

// NewStringSource returns a LineSource over s. A trailing fragment without a
// newline is still yielded; a trailing newline does not produce an empty line.
func NewStringSource(s string) LineSource {
	return &stringSource{rest: s, done: s == ""}
}

func (s *stringSource) NextLine() (string, bool) {
	if s.done {
		return "", false
	}
	line, rest, found := strings.Cut(s.rest, "\n")
	s.rest = rest
	if !found || rest == "" {
		s.done = true
	}
	if !found && line == "" {
		return "", false
	}
	return line, true
}

func (s *stringSource) Err() error { return nil }

// checkReadable probes r before any line is read.
func checkReadable(r io.Reader) error {
	if r == nil {
		return fmt.Errorf("%w: nil reader", ErrUnreadable)
	}
	if st, ok := r.(interface{ Stat() (os.FileInfo, error) }); ok {
		if _, err := st.Stat(); err != nil {
			return fmt.Errorf("%w: %w", ErrUnreadable, err)
		}
	}
	return nil
}
