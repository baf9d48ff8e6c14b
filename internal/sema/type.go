package sema

import (
	"strings"
	"unicode"
)

// Type is a resolved static type. Identity is textual: two types are the
// same exactly when their whitespace-normalized spellings agree. There are
// no coercions and no subtyping.
type Type struct {
	Name string
}

// NewType builds a Type from a source spelling.
func NewType(name string) *Type {
	return &Type{Name: normalizeType(name)}
}

// Equal reports whether both types resolved to the same spelling. A nil
// Type is unknown and equal to nothing, itself included.
func (t *Type) Equal(other *Type) bool {
	if t == nil || other == nil {
		return false
	}
	return t.Name == other.Name
}

func (t *Type) String() string {
	if t == nil {
		return "{unknown}"
	}
	return t.Name
}

func normalizeType(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if !unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
