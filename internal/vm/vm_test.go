package vm

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"silver/internal/sema"
	"silver/internal/source"
	"silver/internal/symbols"
	"silver/internal/trace"
	"silver/internal/types"
)

func num(v float64) sema.BoundExpr {
	return &sema.BoundLiteral{Value: types.NumberValue(v)}
}

func boolean(v bool) sema.BoundExpr {
	return &sema.BoundLiteral{Value: types.BoolValue(v)}
}

func bin(l sema.BoundExpr, op types.BinaryOp, r sema.BoundExpr) sema.BoundExpr {
	typ, ok := types.LookupBinary(op, l.Type(), r.Type())
	if !ok {
		typ = types.Invalid
	}
	return &sema.BoundBinary{Left: l, Op: op, Right: r, Typ: typ}
}

func assign(name string, value sema.BoundExpr) sema.BoundExpr {
	return &sema.BoundAssign{
		Var:   symbols.Variable{Name: name, Type: value.Type()},
		Value: value,
		Typ:   value.Type(),
	}
}

func run(t *testing.T, store *symbols.Store, expr sema.BoundExpr) Value {
	t.Helper()
	v, vmErr := New(store, nil).Run(expr)
	require.Nil(t, vmErr)
	return v
}

func TestArithmetic(t *testing.T) {
	store := symbols.NewStore()
	// 1 + 2 * 3
	v := run(t, store, bin(num(1), types.BinaryAdd, bin(num(2), types.BinaryMul, num(3))))
	assert.Equal(t, types.NumberValue(7), v)

	// (1 + 2) * 3
	v = run(t, store, bin(bin(num(1), types.BinaryAdd, num(2)), types.BinaryMul, num(3)))
	assert.Equal(t, types.NumberValue(9), v)

	v = run(t, store, &sema.BoundUnary{Op: types.UnaryMinus, Operand: num(2), Typ: types.Number})
	assert.Equal(t, types.NumberValue(-2), v)
}

func TestDivisionIsIEEE(t *testing.T) {
	store := symbols.NewStore()
	v := run(t, store, bin(num(1), types.BinaryDiv, num(0)))
	assert.True(t, math.IsInf(v.Num, 1))

	v = run(t, store, bin(num(0), types.BinaryDiv, num(0)))
	assert.True(t, math.IsNaN(v.Num))

	v = run(t, store, bin(num(7), types.BinaryDiv, num(2)))
	assert.Equal(t, 3.5, v.Num)
}

func TestEqualityAndLogic(t *testing.T) {
	store := symbols.NewStore()
	tests := []struct {
		name string
		expr sema.BoundExpr
		want bool
	}{
		{"num eq", bin(num(1), types.BinaryEq, num(1)), true},
		{"num neq", bin(num(1), types.BinaryNotEq, num(2)), true},
		{"bool eq", bin(boolean(true), types.BinaryEq, boolean(false)), false},
		{"and", bin(boolean(true), types.BinaryLogicalAnd, boolean(false)), false},
		{"or", bin(boolean(false), types.BinaryLogicalOr, boolean(true)), true},
		{"not", &sema.BoundUnary{Op: types.UnaryNot, Operand: boolean(true), Typ: types.Boolean}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, types.BoolValue(tt.want), run(t, store, tt.expr))
		})
	}
}

func TestNoShortCircuit(t *testing.T) {
	store := symbols.NewStore()
	// false && (b = true): the right side still assigns.
	expr := bin(boolean(false), types.BinaryLogicalAnd, assign("b", boolean(true)))
	assert.Equal(t, types.BoolValue(false), run(t, store, expr))

	b, ok := store.Lookup("b")
	require.True(t, ok)
	assert.Equal(t, types.BoolValue(true), b.Value)
}

func TestAssignmentWritesStore(t *testing.T) {
	store := symbols.NewStore()
	v := run(t, store, assign("x", num(5)))
	assert.Equal(t, types.NumberValue(5), v)

	read := &sema.BoundName{Var: symbols.Variable{Name: "x", Type: types.Number}}
	v = run(t, store, bin(read, types.BinaryMul, num(2)))
	assert.Equal(t, types.NumberValue(10), v)
}

func TestPoisonPanics(t *testing.T) {
	store := symbols.NewStore()
	poison := &sema.BoundName{
		Var: symbols.Variable{Name: "y", Type: types.Invalid},
		Sp:  source.Span{Start: 4, End: 5},
	}
	expr := &sema.BoundBinary{Left: num(1), Op: types.BinaryAdd, Right: poison, Typ: types.Invalid, Sp: source.Span{End: 5}}

	_, vmErr := New(store, nil).Run(expr)
	require.NotNil(t, vmErr)
	assert.Equal(t, PanicPoisonNode, vmErr.Code)
	assert.Equal(t, "VM1001", vmErr.Code.String())
}

func TestUndefinedVariable(t *testing.T) {
	store := symbols.NewStore()
	read := &sema.BoundName{
		Var: symbols.Variable{Name: "ghost", Type: types.Number},
		Sp:  source.Span{Start: 4, End: 9},
	}
	expr := &sema.BoundBinary{Left: num(1), Op: types.BinaryAdd, Right: read, Typ: types.Number, Sp: source.Span{End: 9}}

	_, vmErr := New(store, nil).Run(expr)
	require.NotNil(t, vmErr)
	assert.Equal(t, PanicUndefinedVar, vmErr.Code)
	assert.Equal(t, source.Span{Start: 4, End: 9}, vmErr.Span)
	require.Len(t, vmErr.Backtrace, 2)
	assert.Equal(t, "name", vmErr.Backtrace[0].Node)
	assert.Equal(t, "binary", vmErr.Backtrace[1].Node)
}

func TestFormatWithFiles(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("in.sv", []byte("1 + ghost"))
	vmErr := &VMError{
		Code:      PanicUndefinedVar,
		Message:   `variable "ghost" is not in the store`,
		Span:      source.Span{File: id, Start: 4, End: 9},
		Backtrace: []BacktraceFrame{{Node: "name", Span: source.Span{File: id, Start: 4, End: 9}}},
	}
	out := vmErr.FormatWithFiles(fs)
	assert.Contains(t, out, "panic VM1002")
	assert.Contains(t, out, "at in.sv:1:5")
	assert.Contains(t, out, "0: name at in.sv:1:5")
}

func TestNodeTracing(t *testing.T) {
	ring := trace.NewRingTracer(64, trace.LevelDebug)
	vm := New(symbols.NewStore(), ring)
	_, vmErr := vm.Run(bin(num(1), types.BinaryAdd, num(2)))
	require.Nil(t, vmErr)
	assert.Equal(t, 3, vm.Steps())

	snap := ring.Snapshot()
	require.Len(t, snap, 6)
	assert.Equal(t, "binary", snap[0].Name)
	assert.Equal(t, trace.KindSpanEnd, snap[5].Kind)
	assert.Equal(t, "3", snap[5].Detail)
	assert.Equal(t, snap[0].SpanID, snap[1].ParentID)
}

func TestBoundTypesAreTrusted(t *testing.T) {
	store := symbols.NewStore()
	// Only poison is asserted; operand kinds come from the binder as-is.
	expr := &sema.BoundBinary{Left: num(2), Op: types.BinaryLogicalOr, Right: num(3), Typ: types.Boolean}
	v, vmErr := New(store, nil).Run(expr)
	require.Nil(t, vmErr)
	assert.Equal(t, types.BoolValue(false), v)

	v, vmErr = New(store, nil).Run(assign("n", num(4)))
	require.Nil(t, vmErr)
	assert.Equal(t, types.NumberValue(4), v)
}

func TestUnsupportedOperator(t *testing.T) {
	expr := &sema.BoundUnary{Op: types.UnaryOp(99), Operand: num(1), Typ: types.Number}
	_, vmErr := New(symbols.NewStore(), nil).Run(expr)
	require.NotNil(t, vmErr)
	assert.Equal(t, PanicUnsupportedOp, vmErr.Code)
}
