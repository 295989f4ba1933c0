package diag

import (
	"silver/internal/source"
)

type Note struct {
	Span source.Span
	Msg  string
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}

// Kind is the pipeline stage the diagnostic came from.
func (d Diagnostic) Kind() Kind {
	return d.Code.Kind()
}

func (d Diagnostic) String() string {
	return d.Message
}

// Kind classifies diagnostics by producing stage.
type Kind uint8

const (
	UnknownKind Kind = iota
	LexerError
	ParserError
	BinderError
)

func (k Kind) String() string {
	switch k {
	case LexerError:
		return "LexerError"
	case ParserError:
		return "ParserError"
	case BinderError:
		return "BinderError"
	default:
		return "Unknown"
	}
}
