// Package vm evaluates bound Silver expressions against a variable store.
package vm

import (
	"silver/internal/sema"
	"silver/internal/symbols"
	"silver/internal/trace"
	"silver/internal/types"
)

// Value is a runtime Silver value.
type Value = types.Value

// VM walks one bound tree. It is not safe for concurrent use; a batch run
// creates one VM per file.
type VM struct {
	Store  *symbols.Store
	Tracer trace.Tracer
	// Parent is the span ID node spans are attached to.
	Parent uint64

	stack []BacktraceFrame
	eb    errorBuilder
	steps int
}

// New creates a VM writing assignments to store. A nil tracer disables node
// tracing.
func New(store *symbols.Store, tracer trace.Tracer) *VM {
	if tracer == nil {
		tracer = trace.Nop
	}
	vm := &VM{Store: store, Tracer: tracer}
	vm.eb = errorBuilder{vm: vm}
	return vm
}

// Run evaluates expr. Callers only pass trees that bound without errors;
// anything else is reported as a *VMError.
func (vm *VM) Run(expr sema.BoundExpr) (Value, *VMError) {
	vm.stack = vm.stack[:0]
	vm.steps = 0
	return vm.eval(expr)
}

// Steps returns the number of nodes evaluated by the last Run.
func (vm *VM) Steps() int {
	return vm.steps
}

func (vm *VM) eval(expr sema.BoundExpr) (Value, *VMError) {
	name := nodeName(expr)
	vm.stack = append(vm.stack, BacktraceFrame{Node: name, Span: expr.Span()})
	defer func() { vm.stack = vm.stack[:len(vm.stack)-1] }()
	vm.steps++

	span := trace.Begin(vm.Tracer, trace.ScopeNode, name, vm.Parent)
	outer := vm.Parent
	if id := span.ID(); id != 0 {
		vm.Parent = id
	}
	v, vmErr := vm.evalNode(expr)
	vm.Parent = outer
	if vmErr != nil {
		span.End(vmErr.Code.String())
	} else {
		span.End(v.String())
	}
	return v, vmErr
}

func (vm *VM) evalNode(expr sema.BoundExpr) (Value, *VMError) {
	if expr.Type().IsPoison() {
		return Value{}, vm.eb.poison(nodeName(expr))
	}

	switch e := expr.(type) {
	case *sema.BoundLiteral:
		return e.Value, nil

	case *sema.BoundUnary:
		operand, vmErr := vm.eval(e.Operand)
		if vmErr != nil {
			return Value{}, vmErr
		}
		return vm.evalUnaryOp(e.Op, operand)

	case *sema.BoundBinary:
		// Both sides always run, so assignments on the right take effect
		// even when the left side decides the result.
		left, vmErr := vm.eval(e.Left)
		if vmErr != nil {
			return Value{}, vmErr
		}
		right, vmErr := vm.eval(e.Right)
		if vmErr != nil {
			return Value{}, vmErr
		}
		return vm.evalBinaryOp(e.Op, left, right)

	case *sema.BoundName:
		b, ok := vm.Store.Lookup(e.Var.Name)
		if !ok {
			return Value{}, vm.eb.undefinedVar(e.Var.Name)
		}
		return b.Value, nil

	case *sema.BoundAssign:
		v, vmErr := vm.eval(e.Value)
		if vmErr != nil {
			return Value{}, vmErr
		}
		vm.Store.Set(e.Var, v)
		return v, nil

	default:
		return Value{}, vm.eb.unknownNode(expr)
	}
}

func nodeName(expr sema.BoundExpr) string {
	switch expr.(type) {
	case *sema.BoundLiteral:
		return "literal"
	case *sema.BoundUnary:
		return "unary"
	case *sema.BoundBinary:
		return "binary"
	case *sema.BoundName:
		return "name"
	case *sema.BoundAssign:
		return "assign"
	default:
		return "unknown"
	}
}

