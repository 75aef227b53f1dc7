package bmx

import (
	"slices"
	"strings"
)

// IncludeDirective starts a line that inlines another text block:
//
//	@include(common)
const IncludeDirective = "@include"

// ApplyIncludes expands @include directives found in the named text blocks.
//
// Each directive line is replaced by the full body of the referenced text
// block as it was before this call. Inlined bodies are not scanned again, so
// a directive inside an included block survives unexpanded. Names that are
// not text blocks are skipped. On error d is left untouched.
func ApplyIncludes(d *Data, blocks ...string) error {
	names := slices.Clone(blocks)
	slices.Sort(names)
	names = slices.Compact(names)

	snapshot := d.Texts
	expanded := make(map[string]string, len(names))

	for _, name := range names {
		body, ok := snapshot[name]
		if !ok {
			continue
		}
		out, err := expandIncludes(name, body, snapshot)
		if err != nil {
			return err
		}
		expanded[name] = out
	}

	for name, body := range expanded {
		d.Texts[name] = body
	}
	return nil
}

func expandIncludes(block, body string, texts map[string]string) (string, error) {
	var b strings.Builder
	b.Grow(len(body))

	src := NewStringSource(body)
	for n := 1; ; n++ {
		line, ok := src.NextLine()
		if !ok {
			break
		}
		if !strings.HasPrefix(line, IncludeDirective) {
			b.WriteString(line)
			b.WriteByte('\n')
			continue
		}

		target := includeTarget(line)
		included, ok := texts[target]
		if !ok {
			return "", &IncludeError{Block: block, Target: target, LineNumber: n}
		}
		b.WriteString(included)
		if included != "" && !strings.HasSuffix(included, "\n") {
			b.WriteByte('\n')
		}
	}

	return b.String(), nil
}

// includeTarget extracts the block name from a directive line.
func includeTarget(line string) string {
	s := strings.ReplaceAll(line, " ", "")
	s = strings.TrimPrefix(s, IncludeDirective)
	s = strings.TrimPrefix(s, "(")
	return strings.TrimSuffix(s, ")")
}
