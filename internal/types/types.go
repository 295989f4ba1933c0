// Package types is Silver's closed static type domain and its operator tables.
package types

// Kind is a static type. Invalid is the poison type given to expressions that
// already failed to bind; it is never reported again by enclosing nodes.
type Kind uint8

const (
	Invalid Kind = iota
	Number
	Boolean
)

func (k Kind) String() string {
	switch k {
	case Number:
		return "Number"
	case Boolean:
		return "Boolean"
	default:
		return "?"
	}
}

// IsPoison reports whether k is the error type.
func (k Kind) IsPoison() bool { return k == Invalid }

// Family returns the family bit used by the operator tables.
func (k Kind) Family() FamilyMask {
	switch k {
	case Number:
		return FamilyNumber
	case Boolean:
		return FamilyBool
	default:
		return FamilyNone
	}
}
