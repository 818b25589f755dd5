package vdf

import (
	"strings"

	"github.com/iancoleman/orderedmap"
)

// Serialize writes the tree back to KeyValues text using the line-ending
// and indentation conventions captured at parse time. It is total for any
// tree built by Parse: every value is either a string leaf or a mapping.
//
// Serializing a parsed document and parsing it again yields a structurally
// equal tree, and serializing that tree reproduces the bytes exactly.
func (t *Tree) Serialize() []byte {
	var b strings.Builder
	writeMap(&b, t.Root, 0, t.indent, t.newline)
	return []byte(b.String())
}

func writeMap(b *strings.Builder, m *orderedmap.OrderedMap, depth int, indent, newline string) {
	prefix := strings.Repeat(indent, depth)
	for _, key := range m.Keys() {
		v, _ := m.Get(key)
		if child := AsMap(v); child != nil {
			b.WriteString(prefix)
			b.WriteString(quote(key))
			b.WriteString(newline)
			b.WriteString(prefix)
			b.WriteString("{")
			b.WriteString(newline)
			writeMap(b, child, depth+1, indent, newline)
			b.WriteString(prefix)
			b.WriteString("}")
			b.WriteString(newline)
			continue
		}
		s, _ := v.(string)
		b.WriteString(prefix)
		b.WriteString(quote(key))
		b.WriteString("\t\t")
		b.WriteString(quote(s))
		b.WriteString(newline)
	}
}

// quote wraps s in double quotes, escaping backslashes and embedded quotes.
func quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"', '\\':
			b.WriteByte('\\')
		}
		b.WriteByte(s[i])
	}
	b.WriteByte('"')
	return b.String()
}
