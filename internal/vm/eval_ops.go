package vm

import (
	"silver/internal/types"
)

// Operand types were settled by the binder; only the operator is dispatched.

func (vm *VM) evalUnaryOp(op types.UnaryOp, operand Value) (Value, *VMError) {
	switch op {
	case types.UnaryPlus:
		return operand, nil
	case types.UnaryMinus:
		return types.NumberValue(-operand.Num), nil
	case types.UnaryNot:
		return types.BoolValue(!operand.Bool), nil
	default:
		return Value{}, vm.eb.unsupportedOp(op)
	}
}

func (vm *VM) evalBinaryOp(op types.BinaryOp, left, right Value) (Value, *VMError) {
	switch op {
	case types.BinaryAdd:
		return types.NumberValue(left.Num + right.Num), nil
	case types.BinarySub:
		return types.NumberValue(left.Num - right.Num), nil
	case types.BinaryMul:
		return types.NumberValue(left.Num * right.Num), nil
	case types.BinaryDiv:
		// IEEE-754: 1/0 is +Inf and 0/0 is NaN.
		return types.NumberValue(left.Num / right.Num), nil
	case types.BinaryEq:
		return types.BoolValue(left.Equal(right)), nil
	case types.BinaryNotEq:
		return types.BoolValue(!left.Equal(right)), nil
	case types.BinaryLogicalAnd:
		return types.BoolValue(left.Bool && right.Bool), nil
	case types.BinaryLogicalOr:
		return types.BoolValue(left.Bool || right.Bool), nil
	default:
		return Value{}, vm.eb.unsupportedOp(op)
	}
}
