// Package symbols holds variable symbols and the caller-owned variable store
// that persists between evaluations.
package symbols

import (
	"silver/internal/types"
)

// Variable is a declared name and its static type. Two variables are the same
// variable when their names match; the type is what the name is bound to now.
type Variable struct {
	Name string
	Type types.Kind
}

// Same reports identity by name alone.
func (v Variable) Same(o Variable) bool {
	return v.Name == o.Name
}

func (v Variable) String() string {
	return v.Name + ": " + v.Type.String()
}
