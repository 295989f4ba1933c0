package diag

import (
	"fmt"
	"strings"

	"silver/internal/source"
)

// FormatShortDiagnostics renders one line per diagnostic:
//
//	error SYN2001 path:line:col message
//
// Notes follow their diagnostic when includeNotes is set.
func FormatShortDiagnostics(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if len(diags) == 0 {
		return ""
	}
	lines := make([]string, 0, len(diags))
	for i := range diags {
		d := &diags[i]
		lines = append(lines, shortLine(severityLabel(d.Severity), d.Code, fs, d.Primary, d.Message))
		if !includeNotes {
			continue
		}
		for _, n := range d.Notes {
			lines = append(lines, shortLine("note", d.Code, fs, n.Span, n.Msg))
		}
	}
	return strings.Join(lines, "\n")
}

func shortLine(label string, code Code, fs *source.FileSet, sp source.Span, msg string) string {
	loc := fmt.Sprintf("%d:%d", sp.Start, sp.End)
	if fs != nil && fs.Has(sp.File) {
		start, _ := fs.Resolve(sp)
		loc = fmt.Sprintf("%s:%d:%d", fs.Get(sp.File).Path, start.Line, start.Col)
	}
	return fmt.Sprintf("%s %s %s %s", label, code.ID(), loc, sanitizeMessage(msg))
}

func severityLabel(sev Severity) string {
	switch sev {
	case SevError:
		return "error"
	case SevWarning:
		return "warning"
	default:
		return "info"
	}
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\r", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
