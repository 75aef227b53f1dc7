package bmx

import (
	"fmt"
	"io"
	"os"
)

// Parser provides configurable parsing functionality.
type Parser struct {
	maxLineSize int
}

// NewParser creates a new Parser with default configuration.
func NewParser() *Parser {
	return &Parser{
		maxLineSize: DefaultMaxLineSize,
	}
}

// WithMaxLineSize sets the longest line accepted from a stream.
// Values below one keep the default.
func (p *Parser) WithMaxLineSize(n int) *Parser {
	if n > 0 {
		p.maxLineSize = n
	}
	return p
}

// Parse reads a document from r. The reader is not closed.
func (p *Parser) Parse(r io.Reader) (*Data, error) {
	if err := checkReadable(r); err != nil {
		return nil, err
	}
	return p.ParseLines(newScanner(r, p.maxLineSize))
}

// ParseString reads a document held in memory. Empty input is rejected.
func (p *Parser) ParseString(s string) (*Data, error) {
	if s == "" {
		return nil, ErrEmptyInput
	}
	return p.ParseLines(NewStringSource(s))
}

// ParseLines runs the block state machine over src. On error no partial
// document is returned.
func (p *Parser) ParseLines(src LineSource) (*Data, error) {
	data := NewData()

	ctx := lineContext{
		block:   GlobalBlock,
		kind:    KindAttribute,
		lineNum: 1,
	}

	for {
		line, ok := src.NextLine()
		if !ok {
			break
		}
		if err := ctx.consume(data, line); err != nil {
			return nil, err
		}
		ctx.lineNum++
	}

	if err := src.Err(); err != nil {
		return nil, fmt.Errorf("%w: line %d: %w", ErrUnreadable, ctx.lineNum, err)
	}

	return data, nil
}

// lineContext is the parser state: the block lines are currently fed to.
type lineContext struct {
	block   string
	kind    Kind
	lineNum int
}

func (c *lineContext) consume(data *Data, line string) error {
	if line != "" && line[0] == BlockBeginSign {
		name, kind, err := readBlockHeader(line, c.lineNum)
		if err != nil {
			return err
		}
		// Names are unique among text blocks whatever kind the new block has.
		if _, exists := data.Texts[name]; exists {
			return syntaxError(line, c.lineNum, len(line)-1, "block %q already exists", name)
		}
		c.block, c.kind = name, kind
		return nil
	}

	switch c.kind {
	case KindComment:
		return nil
	case KindText:
		data.Texts[c.block] += line + "\n"
		return nil
	}

	if line == "" || line[0] != AttrBeginSign {
		return nil
	}

	key, value, err := readAttribute(line, c.lineNum)
	if err != nil {
		return err
	}

	attrs := data.Attributes[c.block]
	if attrs == nil {
		attrs = make(Attributes)
		data.Attributes[c.block] = attrs
	}
	if _, exists := attrs[key]; exists {
		return syntaxError(line, c.lineNum, len(line)-1, "attribute %q already exists", key)
	}
	attrs[key] = value
	return nil
}

// Parse reads a document from r using the default Parser.
func Parse(r io.Reader) (*Data, error) {
	return NewParser().Parse(r)
}

// ParseString reads a document from s using the default Parser.
func ParseString(s string) (*Data, error) {
	return NewParser().ParseString(s)
}

// ParseFile opens, parses and closes the named file.
func ParseFile(path string) (*Data, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreadable, err)
	}
	defer f.Close()

	data, err := NewParser().Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return data, nil
}
