package types

import (
	"strconv"
)

// Value is a runtime Silver value. Its Kind doubles as its static type, so a
// Value never carries Invalid once produced by evaluation.
type Value struct {
	Kind Kind    `msgpack:"k"`
	Num  float64 `msgpack:"n,omitempty"`
	Bool bool    `msgpack:"b,omitempty"`
}

func NumberValue(v float64) Value { return Value{Kind: Number, Num: v} }
func BoolValue(v bool) Value      { return Value{Kind: Boolean, Bool: v} }

// Type returns the static type of v.
func (v Value) Type() Kind { return v.Kind }

func (v Value) String() string {
	switch v.Kind {
	case Number:
		return strconv.FormatFloat(v.Num, 'g', -1, 64)
	case Boolean:
		return strconv.FormatBool(v.Bool)
	default:
		return "<invalid>"
	}
}

// Equal compares tag and payload. NaN is unequal to itself, as in Go.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case Number:
		return v.Num == o.Num
	case Boolean:
		return v.Bool == o.Bool
	}
	return true
}
