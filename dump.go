package bmx

import (
	"io"
	"maps"
	"slices"
	"strings"
)

// Dump renders d as Block Mixture text: attribute blocks first, then text
// blocks, each group in name order. The global block has no header and is
// written before every other block. Comments and source order are not kept.
//
// Text bodies are not followed by a blank line, so output differs from files
// written by older serializers. Empty text blocks are left out since a
// reparse would not restore them.
func Dump(d *Data) string {
	var b strings.Builder
	b.WriteByte('\n')

	if attrs, ok := d.Attributes[GlobalBlock]; ok {
		dumpAttributes(&b, attrs)
	}
	for _, name := range slices.Sorted(maps.Keys(d.Attributes)) {
		if name == GlobalBlock {
			continue
		}
		b.WriteString("[ @" + name + " ]\n")
		dumpAttributes(&b, d.Attributes[name])
	}

	for _, name := range slices.Sorted(maps.Keys(d.Texts)) {
		body := d.Texts[name]
		if body == "" {
			continue
		}
		b.WriteString("[ " + name + " ]\n")
		b.WriteString(body)
		// Bodies keep exactly their own newlines so a reparse yields the same text.
		if !strings.HasSuffix(body, "\n") {
			b.WriteByte('\n')
		}
	}

	return b.String()
}

func dumpAttributes(b *strings.Builder, attrs Attributes) {
	for _, key := range slices.Sorted(maps.Keys(attrs)) {
		v := attrs[key]
		switch {
		case v == "":
			b.WriteString("@!" + key + "\n")
		case key[0] == AttrEmptySign:
			// A space keeps the key from reading back as an empty declaration.
			b.WriteString("@ " + key + ": " + v + "\n")
		default:
			b.WriteString("@" + key + ": " + v + "\n")
		}
	}
	b.WriteByte('\n')
}

var _ io.WriterTo = (*Data)(nil)

// WriteTo writes the Dump form of d to w.
func (d *Data) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, Dump(d))
	return int64(n), err
}
