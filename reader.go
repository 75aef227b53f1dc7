package bmx

import (
	"strings"
)

// trim strips leading and trailing ' ' characters. Tabs are kept.
func trim(s string) string {
	return strings.Trim(s, " ")
}

// readBlockHeader parses a line starting with '[' into a block name and kind.
func readBlockHeader(line string, lineNum int) (string, Kind, error) {
	last := len(line) - 1

	end := strings.LastIndexByte(line, BlockEndSign)
	if end == -1 {
		return "", 0, syntaxError(line, lineNum, last, "block declaration isn't closed")
	}

	// Only the span between the brackets is checked; text after ']' is ignored.
	for i := 1; i < end; i++ {
		if line[i] == BlockBeginSign || line[i] == BlockEndSign {
			return "", 0, syntaxError(line, lineNum, i, "unexpected bracket in block declaration")
		}
	}

	name := trim(line[1:end])
	if name == "" {
		return "", 0, syntaxError(line, lineNum, last, "block's name cannot be empty")
	}

	switch name[0] {
	case AttrBeginSign:
		return name[1:], KindAttribute, nil
	case CommentBeginSign:
		return name[1:], KindComment, nil
	default:
		return name, KindText, nil
	}
}

// readAttribute parses a line starting with '@' into a key and value.
//
//	@!key          empty declaration, value is ""
//	@key: value
func readAttribute(line string, lineNum int) (string, string, error) {
	last := len(line) - 1

	if len(line) > 1 && line[1] == AttrEmptySign {
		key := trim(line[2:])
		if key == "" {
			return "", "", syntaxError(line, lineNum, last, "attribute key is empty")
		}
		return key, "", nil
	}

	colon := strings.IndexByte(line[1:], AttrEndSign)
	if colon == -1 {
		return "", "", syntaxError(line, lineNum, last, "failed to find ':' after attribute's key")
	}
	colon++

	key := trim(line[1:colon])
	if key == "" {
		return "", "", syntaxError(line, lineNum, last, "attribute's key is empty")
	}

	if colon == last {
		return "", "", syntaxError(line, lineNum, last, "attribute's value is empty")
	}

	return key, trim(line[colon+1:]), nil
}
