// Package vdf parses and serializes the subset of Valve's KeyValues text
// format used by Steam's localconfig.vdf and appmanifest_*.acf files:
// nested mappings of quoted keys to quoted string values.
package vdf

import "github.com/iancoleman/orderedmap"

// Tree is a parsed KeyValues document: an ordered root mapping plus the
// line-ending and indentation conventions of the source text, captured so
// serialization reproduces them.
type Tree struct {
	Root *orderedmap.OrderedMap

	newline string
	indent  string
}

// NewTree creates an empty Tree with LF line endings and tab indentation,
// the conventions Steam itself writes.
func NewTree() *Tree {
	return &Tree{
		Root:    orderedmap.New(),
		newline: "\n",
		indent:  "\t",
	}
}

// Newline returns the line-ending convention of the source document.
func (t *Tree) Newline() string { return t.newline }

// Indent returns the indentation unit of the source document.
func (t *Tree) Indent() string { return t.indent }

// AsMap returns v as an ordered map pointer, handling both the value and
// pointer forms orderedmap can produce. Returns nil for string leaves and
// anything else that is not a mapping.
func AsMap(v any) *orderedmap.OrderedMap {
	switch val := v.(type) {
	case *orderedmap.OrderedMap:
		return val
	case orderedmap.OrderedMap:
		return &val
	default:
		return nil
	}
}

// ChildMap looks up key in m and returns it as a mapping.
// The second result is false if the key is absent or bound to a leaf.
func ChildMap(m *orderedmap.OrderedMap, key string) (*orderedmap.OrderedMap, bool) {
	v, ok := m.Get(key)
	if !ok {
		return nil, false
	}
	child := AsMap(v)
	if child == nil {
		return nil, false
	}
	return child, true
}
