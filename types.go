// Package bmx reads and writes Block Mixture documents.
//
// A Block Mixture file is line oriented. A line starting with '[' opens a
// block; the first character of the block name selects its kind:
//
//	[ vertex ]      text block, body lines are kept verbatim
//	[ @material ]   attribute block, body lines are "@key: value" or "@!key"
//	[ #notes ]      comment block, body lines are dropped
//
// Lines before the first header belong to the attribute block named
// GlobalBlock.
package bmx

import (
	"maps"
)

// GlobalBlock names the attribute block that is active before any header.
const GlobalBlock = "__global__"

// Reserved signs of the format.
const (
	BlockBeginSign   = '['
	BlockEndSign     = ']'
	AttrBeginSign    = '@'
	AttrEndSign      = ':'
	AttrEmptySign    = '!'
	CommentBeginSign = '#'
)

// Kind is the kind of a block, selected by its header.
type Kind int

const (
	KindText Kind = iota
	KindAttribute
	KindComment
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindAttribute:
		return "attribute"
	case KindComment:
		return "comment"
	default:
		return "unknown"
	}
}

// Attributes holds the key/value pairs of one attribute block.
type Attributes map[string]string

// Data is a parsed Block Mixture document.
type Data struct {
	// Texts maps a text block name to its body, one "\n" terminated line per source line.
	Texts map[string]string

	// Attributes maps an attribute block name to its pairs.
	Attributes map[string]Attributes
}

// NewData returns an empty document.
func NewData() *Data {
	return &Data{
		Texts:      make(map[string]string),
		Attributes: make(map[string]Attributes),
	}
}

// Text returns the body of a text block.
func (d *Data) Text(name string) (string, bool) {
	s, ok := d.Texts[name]
	return s, ok
}

// Attribute returns the value stored under key in the named attribute block.
func (d *Data) Attribute(block, key string) (string, bool) {
	attrs, ok := d.Attributes[block]
	if !ok {
		return "", false
	}
	v, ok := attrs[key]
	return v, ok
}

// Clone returns a deep copy of d.
func (d *Data) Clone() *Data {
	c := &Data{
		Texts:      maps.Clone(d.Texts),
		Attributes: make(map[string]Attributes, len(d.Attributes)),
	}
	if c.Texts == nil {
		c.Texts = make(map[string]string)
	}
	for name, attrs := range d.Attributes {
		c.Attributes[name] = maps.Clone(attrs)
	}
	return c
}

// Equal reports whether d and other hold the same blocks with the same content.
func (d *Data) Equal(other *Data) bool {
	if d == nil || other == nil {
		return d == other
	}
	if !maps.Equal(d.Texts, other.Texts) {
		return false
	}
	return maps.EqualFunc(d.Attributes, other.Attributes, func(a, b Attributes) bool {
		return maps.Equal(a, b)
	})
}
