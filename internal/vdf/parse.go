package vdf

import (
	"fmt"
	"strings"

	"github.com/iancoleman/orderedmap"
)

// FormatError describes a malformed KeyValues document. Line is 1-based.
type FormatError struct {
	Line int
	Msg  string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

func formatErr(line int, format string, args ...any) *FormatError {
	return &FormatError{Line: line, Msg: fmt.Sprintf(format, args...)}
}

// Parse reads a KeyValues document into a Tree.
//
// The grammar is line-oriented: a lone quoted token opens a nested mapping
// (the `{` follows on its own line), a `"key" "value"` pair inserts a string
// leaf, and a lone `}` closes the current mapping. Whitespace outside quotes
// is insignificant. Duplicate keys at the same level are last-write-wins.
//
// Parsing uses an explicit stack of open mappings rather than recursion, so
// nesting depth is bounded only by memory and error positions are tracked
// per line.
func Parse(data []byte) (*Tree, error) {
	tree := NewTree()
	text := string(data)
	if strings.Contains(text, "\r\n") {
		tree.newline = "\r\n"
		text = strings.ReplaceAll(text, "\r\n", "\n")
	}

	stack := []*orderedmap.OrderedMap{tree.Root}
	pendingKey := ""
	havePending := false
	indentCaptured := false

	for i, line := range strings.Split(text, "\n") {
		lineNum := i + 1
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		// Capture the indent unit from the first indented depth-1 line.
		if !indentCaptured && len(stack) == 2 {
			if ws := leadingWhitespace(line); ws != "" {
				tree.indent = ws
				indentCaptured = true
			}
		}

		switch {
		case trimmed == "{":
			if !havePending {
				return nil, formatErr(lineNum, "unexpected '{' with no preceding key")
			}
			child := orderedmap.New()
			stack[len(stack)-1].Set(pendingKey, child)
			stack = append(stack, child)
			havePending = false

		case trimmed == "}":
			if havePending {
				return nil, formatErr(lineNum, "expected '{' after key %q, got '}'", pendingKey)
			}
			if len(stack) == 1 {
				return nil, formatErr(lineNum, "unbalanced braces: '}' at top level")
			}
			stack = stack[:len(stack)-1]

		default:
			if havePending {
				return nil, formatErr(lineNum, "expected '{' after key %q", pendingKey)
			}
			key, rest, err := readQuoted(trimmed, lineNum)
			if err != nil {
				return nil, err
			}
			rest = strings.TrimSpace(rest)
			if rest == "" {
				// Block key; the '{' must follow on its own line.
				pendingKey = key
				havePending = true
				continue
			}
			value, rest, err := readQuoted(rest, lineNum)
			if err != nil {
				return nil, err
			}
			if strings.TrimSpace(rest) != "" {
				return nil, formatErr(lineNum, "unexpected trailing content %q", strings.TrimSpace(rest))
			}
			stack[len(stack)-1].Set(key, value)
		}
	}

	if havePending {
		return nil, formatErr(lineCount(text), "expected '{' after key %q", pendingKey)
	}
	if len(stack) != 1 {
		return nil, formatErr(lineCount(text), "unbalanced braces: %d mapping(s) left open", len(stack)-1)
	}
	return tree, nil
}

// readQuoted consumes one quoted token from the start of s, unescaping
// backslash-escaped quotes and backslashes. Returns the token value and the
// unconsumed remainder of the line.
func readQuoted(s string, lineNum int) (string, string, error) {
	if len(s) == 0 || s[0] != '"' {
		return "", "", formatErr(lineNum, "expected quoted token, got %q", s)
	}
	var b strings.Builder
	i := 1
	for i < len(s) {
		c := s[i]
		switch c {
		case '\\':
			if i+1 < len(s) && (s[i+1] == '"' || s[i+1] == '\\') {
				b.WriteByte(s[i+1])
				i += 2
				continue
			}
			// A backslash before any other character is literal.
			b.WriteByte(c)
			i++
		case '"':
			return b.String(), s[i+1:], nil
		default:
			b.WriteByte(c)
			i++
		}
	}
	return "", "", formatErr(lineNum, "unterminated quoted token")
}

func leadingWhitespace(line string) string {
	for i := 0; i < len(line); i++ {
		if line[i] != ' ' && line[i] != '\t' {
			return line[:i]
		}
	}
	return line
}

func lineCount(text string) int {
	return strings.Count(text, "\n") + 1
}
