// Package edit mutates single fields of a parsed config tree, reporting
// previous values so callers can confirm, skip, or back out of a change.
package edit

import (
	"fmt"
	"strings"

	"github.com/iancoleman/orderedmap"
	"github.com/veldrin/ce-autostart/internal/vdf"
)

// Action selects what an Op does to its target field.
type Action int

const (
	// ActionSet inserts or overwrites the field with Op.Value.
	ActionSet Action = iota
	// ActionRemove deletes the field if present.
	ActionRemove
)

func (a Action) String() string {
	switch a {
	case ActionSet:
		return "set"
	case ActionRemove:
		return "remove"
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// Op is one requested edit: descend Path from the root to a mapping, then
// set or remove Field within it.
type Op struct {
	Path   []string
	Field  string
	Action Action
	Value  string // used when Action == ActionSet
}

// Result reports the outcome of one Op.
type Result struct {
	Path   []string
	Field  string
	Action Action

	// Previous is the field's value before the edit; HadPrevious is false
	// when the field did not exist.
	Previous    string
	HadPrevious bool

	// Changed is false when the edit was a no-op: removing an absent field
	// or setting a field to its current value.
	Changed bool
}

// NotFoundError reports that an intermediate key of an Op's path does not
// exist in the tree.
type NotFoundError struct {
	Path    []string
	Missing string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("key %q not found under %q", e.Missing, strings.Join(e.Path, "/"))
}

// Preview computes the Result of applying op without mutating the tree.
// The interactive layer uses this to show what would change before asking
// for confirmation.
func Preview(tree *vdf.Tree, op Op) (Result, error) {
	target, err := resolve(tree, op.Path)
	if err != nil {
		return Result{}, err
	}
	return describe(target, op), nil
}

// Get reads the field at path without modifying anything. The second
// result is false when the field does not exist; a missing intermediate
// path key is a NotFoundError.
func Get(tree *vdf.Tree, path []string, field string) (string, bool, error) {
	target, err := resolve(tree, path)
	if err != nil {
		return "", false, err
	}
	v, ok := target.Get(field)
	if !ok {
		return "", false, nil
	}
	s, _ := v.(string)
	return s, true, nil
}

// Apply performs op on tree in place and returns what changed. The final
// field may be absent (that is a "no prior value" outcome, not an error),
// but every intermediate path key must exist.
func Apply(tree *vdf.Tree, op Op) (Result, error) {
	target, err := resolve(tree, op.Path)
	if err != nil {
		return Result{}, err
	}
	res := describe(target, op)

	switch op.Action {
	case ActionSet:
		target.Set(op.Field, op.Value)
	case ActionRemove:
		target.Delete(op.Field)
	}
	return res, nil
}

// resolve descends mapping children key by key from the root.
func resolve(tree *vdf.Tree, path []string) (*orderedmap.OrderedMap, error) {
	current := tree.Root
	for i, key := range path {
		child, ok := vdf.ChildMap(current, key)
		if !ok {
			return nil, &NotFoundError{Path: path[:i], Missing: key}
		}
		current = child
	}
	return current, nil
}

func describe(target *orderedmap.OrderedMap, op Op) Result {
	res := Result{
		Path:   op.Path,
		Field:  op.Field,
		Action: op.Action,
	}
	if prev, ok := target.Get(op.Field); ok {
		res.Previous, _ = prev.(string)
		res.HadPrevious = true
	}
	switch op.Action {
	case ActionSet:
		res.Changed = !res.HadPrevious || res.Previous != op.Value
	case ActionRemove:
		res.Changed = res.HadPrevious
	}
	return res
}
