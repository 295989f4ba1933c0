package vm

import (
	"fmt"
	"strings"

	"silver/internal/source"
)

// PanicCode identifies the type of VM panic.
type PanicCode int

// Stable panic codes - do not change values.
const (
	PanicPoisonNode    PanicCode = 1001 // VM1001: poison node reached evaluation
	PanicUndefinedVar  PanicCode = 1002 // VM1002: variable missing from the store
	PanicUnknownNode   PanicCode = 1004 // VM1004: bound node the evaluator does not know
	PanicUnsupportedOp PanicCode = 1005 // VM1005: operator without an implementation
	PanicUnimplemented PanicCode = 1999 // VM1999: unimplemented
)

// String returns the code as "VM1001".
func (c PanicCode) String() string {
	return fmt.Sprintf("VM%d", c)
}

// BacktraceFrame is one enclosing node at the time of the panic.
type BacktraceFrame struct {
	Node string
	Span source.Span
}

// VMError is an evaluator invariant violation. A tree that bound without
// errors never produces one.
type VMError struct {
	Code      PanicCode
	Message   string
	Span      source.Span
	Backtrace []BacktraceFrame // innermost first
}

func (p *VMError) Error() string {
	return fmt.Sprintf("panic %s: %s", p.Code, p.Message)
}

// FormatWithFiles formats the panic with resolved file:line:col locations.
func (p *VMError) FormatWithFiles(files *source.FileSet) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "panic %s: %s\n", p.Code, p.Message)
	sb.WriteString("at ")
	sb.WriteString(formatSpan(p.Span, files))
	sb.WriteString("\n")
	if len(p.Backtrace) > 0 {
		sb.WriteString("backtrace:\n")
		for i, frame := range p.Backtrace {
			fmt.Fprintf(&sb, "  %d: %s at %s\n", i, frame.Node, formatSpan(frame.Span, files))
		}
	}
	return sb.String()
}

func formatSpan(span source.Span, files *source.FileSet) string {
	if files == nil || !files.Has(span.File) {
		return "<no-span>"
	}
	file := files.Get(span.File)
	start, _ := files.Resolve(span)
	return fmt.Sprintf("%s:%d:%d", file.Path, start.Line, start.Col)
}

// errorBuilder captures the node stack into VMError values.
type errorBuilder struct {
	vm *VM
}

func (eb *errorBuilder) makeError(code PanicCode, msg string) *VMError {
	e := &VMError{Code: code, Message: msg}
	stack := eb.vm.stack
	if len(stack) > 0 {
		e.Span = stack[len(stack)-1].Span
	}
	e.Backtrace = make([]BacktraceFrame, 0, len(stack))
	for i := len(stack) - 1; i >= 0; i-- {
		e.Backtrace = append(e.Backtrace, stack[i])
	}
	return e
}

func (eb *errorBuilder) poison(node string) *VMError {
	return eb.makeError(PanicPoisonNode, fmt.Sprintf("poison %s reached evaluation", node))
}

func (eb *errorBuilder) undefinedVar(name string) *VMError {
	return eb.makeError(PanicUndefinedVar, fmt.Sprintf("variable %q is not in the store", name))
}

func (eb *errorBuilder) unknownNode(node any) *VMError {
	return eb.makeError(PanicUnknownNode, fmt.Sprintf("unexpected bound node %T", node))
}

func (eb *errorBuilder) unsupportedOp(op fmt.Stringer) *VMError {
	return eb.makeError(PanicUnsupportedOp, fmt.Sprintf("no implementation for operator '%s'", op))
}
