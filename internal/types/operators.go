package types

import "silver/internal/token"

// FamilyMask describes the categories of types an operator accepts.
type FamilyMask uint8

const (
	FamilyNone   FamilyMask = 0
	FamilyNumber FamilyMask = 1 << iota
	FamilyBool
)

const FamilyAny = FamilyNumber | FamilyBool

type UnaryOp uint8

const (
	UnaryInvalid UnaryOp = iota
	UnaryPlus
	UnaryMinus
	UnaryNot
)

func (op UnaryOp) String() string {
	switch op {
	case UnaryPlus:
		return "+"
	case UnaryMinus:
		return "-"
	case UnaryNot:
		return "!"
	default:
		return "?"
	}
}

type BinaryOp uint8

const (
	BinaryInvalid BinaryOp = iota
	BinaryAdd
	BinarySub
	BinaryMul
	BinaryDiv
	BinaryEq
	BinaryNotEq
	BinaryLogicalAnd
	BinaryLogicalOr
)

func (op BinaryOp) String() string {
	switch op {
	case BinaryAdd:
		return "+"
	case BinarySub:
		return "-"
	case BinaryMul:
		return "*"
	case BinaryDiv:
		return "/"
	case BinaryEq:
		return "=="
	case BinaryNotEq:
		return "!="
	case BinaryLogicalAnd:
		return "&&"
	case BinaryLogicalOr:
		return "||"
	default:
		return "?"
	}
}

// UnaryOpFor maps a prefix operator token to its operator.
func UnaryOpFor(k token.Kind) UnaryOp {
	switch k {
	case token.Plus:
		return UnaryPlus
	case token.Minus:
		return UnaryMinus
	case token.Bang:
		return UnaryNot
	default:
		return UnaryInvalid
	}
}

// BinaryOpFor maps an infix operator token to its operator.
func BinaryOpFor(k token.Kind) BinaryOp {
	switch k {
	case token.Plus:
		return BinaryAdd
	case token.Minus:
		return BinarySub
	case token.Star:
		return BinaryMul
	case token.Slash:
		return BinaryDiv
	case token.EqEq:
		return BinaryEq
	case token.BangEq:
		return BinaryNotEq
	case token.AndAnd:
		return BinaryLogicalAnd
	case token.OrOr:
		return BinaryLogicalOr
	default:
		return BinaryInvalid
	}
}

// BinaryResult describes how to derive the result type.
type BinaryResult uint8

const (
	BinaryResultUnknown BinaryResult = iota
	BinaryResultLeft
	BinaryResultBool
)

// BinaryFlags annotate special handling for binary operators.
type BinaryFlags uint8

const (
	BinaryFlagNone       BinaryFlags = 0
	BinaryFlagSameFamily BinaryFlags = 1 << iota // both operands must have the same type
	BinaryFlagLogical                            // both operands are always evaluated
)

// BinarySpec lists operand families and the result for one overload.
type BinarySpec struct {
	Left   FamilyMask
	Right  FamilyMask
	Result BinaryResult
	Flags  BinaryFlags
}

// UnaryResult indicates how to derive the resulting type.
type UnaryResult uint8

const (
	UnaryResultUnknown UnaryResult = iota
	UnaryResultSame
	UnaryResultBool
)

// UnarySpec describes operand expectations for unary operators.
type UnarySpec struct {
	Operand FamilyMask
	Result  UnaryResult
}

var binarySpecTable = map[BinaryOp][]BinarySpec{
	BinaryAdd: {{Left: FamilyNumber, Right: FamilyNumber, Result: BinaryResultLeft}},
	BinarySub: {{Left: FamilyNumber, Right: FamilyNumber, Result: BinaryResultLeft}},
	BinaryMul: {{Left: FamilyNumber, Right: FamilyNumber, Result: BinaryResultLeft}},
	BinaryDiv: {{Left: FamilyNumber, Right: FamilyNumber, Result: BinaryResultLeft}},
	BinaryEq: {
		{Left: FamilyAny, Right: FamilyAny, Result: BinaryResultBool, Flags: BinaryFlagSameFamily},
	},
	BinaryNotEq: {
		{Left: FamilyAny, Right: FamilyAny, Result: BinaryResultBool, Flags: BinaryFlagSameFamily},
	},
	BinaryLogicalAnd: {
		{Left: FamilyBool, Right: FamilyBool, Result: BinaryResultBool, Flags: BinaryFlagLogical},
	},
	BinaryLogicalOr: {
		{Left: FamilyBool, Right: FamilyBool, Result: BinaryResultBool, Flags: BinaryFlagLogical},
	},
}

var unarySpecTable = map[UnaryOp]UnarySpec{
	UnaryPlus:  {Operand: FamilyNumber, Result: UnaryResultSame},
	UnaryMinus: {Operand: FamilyNumber, Result: UnaryResultSame},
	UnaryNot:   {Operand: FamilyBool, Result: UnaryResultBool},
}

// BinarySpecs returns operand rules for op.
func BinarySpecs(op BinaryOp) []BinarySpec {
	return binarySpecTable[op]
}

// UnarySpecFor returns operand/result hints for op.
func UnarySpecFor(op UnaryOp) (UnarySpec, bool) {
	spec, ok := unarySpecTable[op]
	return spec, ok
}

// LookupUnary resolves (op, operand) to a result type.
func LookupUnary(op UnaryOp, operand Kind) (Kind, bool) {
	spec, ok := UnarySpecFor(op)
	if !ok || spec.Operand&operand.Family() == 0 {
		return Invalid, false
	}
	switch spec.Result {
	case UnaryResultSame:
		return operand, true
	case UnaryResultBool:
		return Boolean, true
	}
	return Invalid, false
}

// LookupBinary resolves (op, left, right) to a result type using the first
// matching overload.
func LookupBinary(op BinaryOp, left, right Kind) (Kind, bool) {
	for _, spec := range BinarySpecs(op) {
		if spec.Left&left.Family() == 0 || spec.Right&right.Family() == 0 {
			continue
		}
		if spec.Flags&BinaryFlagSameFamily != 0 && left != right {
			continue
		}
		switch spec.Result {
		case BinaryResultLeft:
			return left, true
		case BinaryResultBool:
			return Boolean, true
		}
	}
	return Invalid, false
}
