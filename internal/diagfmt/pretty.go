package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"silver/internal/diag"
	"silver/internal/source"
)

type palette struct {
	err, warn, info, code, gutter, caret, note *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		code:   color.New(color.Faint),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgGreen, color.Bold),
		note:   color.New(color.FgCyan),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.code, p.gutter, p.caret, p.note} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty writes diagnostics in a human-readable form, in bag order (call
// bag.Sort() first for source order):
//
//	in.sv:1:3: error[SEM3016]: binary operator '+' is not defined for types Number and Boolean
//	  1 | 1 + true
//	    |   ^
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) error {
	p := newPalette(opts.Color)
	items := bag.Items()
	for i := range items {
		if err := prettyOne(w, &items[i], fs, opts, p); err != nil {
			return err
		}
	}
	if dropped := bag.Dropped(); dropped > 0 {
		if _, err := fmt.Fprintf(w, "... and %d more diagnostics not shown\n", dropped); err != nil {
			return err
		}
	}
	return nil
}

func prettyOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, p palette) error {
	var sb strings.Builder
	sev := strings.ToLower(d.Severity.String())
	fmt.Fprintf(&sb, "%s: %s%s: %s\n",
		location(fs, d.Primary, opts),
		p.severity(d.Severity).Sprint(sev),
		p.code.Sprint("["+d.Code.ID()+"]"),
		d.Message,
	)
	writeSnippet(&sb, fs, d.Primary, opts, p)

	if opts.ShowNotes {
		for _, n := range d.Notes {
			fmt.Fprintf(&sb, "  %s %s: %s\n", p.note.Sprint("note:"), location(fs, n.Span, opts), n.Msg)
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func location(fs *source.FileSet, sp source.Span, opts PrettyOpts) string {
	if fs == nil || !fs.Has(sp.File) {
		return "<unknown>"
	}
	start, _ := fs.Resolve(sp)
	path := displayPath(fs.Get(sp.File), opts.PathMode, opts.BaseDir)
	return fmt.Sprintf("%s:%d:%d", path, start.Line, start.Col)
}

// writeSnippet prints the first line of sp with a caret underline. Columns
// are measured in terminal cells, so wide runes shift the carets correctly.
func writeSnippet(sb *strings.Builder, fs *source.FileSet, sp source.Span, opts PrettyOpts, p palette) {
	if fs == nil || !fs.Has(sp.File) {
		return
	}
	file := fs.Get(sp.File)
	start, end := fs.Resolve(sp)
	line := strings.TrimRight(file.GetLine(start.Line), "\r")

	startCol := int(start.Col) - 1
	startCol = min(max(startCol, 0), len(line))
	endCol := len(line)
	if end.Line == start.Line {
		endCol = min(max(int(end.Col)-1, startCol), len(line))
	}

	prefix := strings.ReplaceAll(line[:startCol], "\t", "    ")
	marked := strings.ReplaceAll(line[startCol:endCol], "\t", "    ")
	shown := strings.ReplaceAll(line, "\t", "    ")
	if opts.Width > 0 {
		shown = runewidth.Truncate(shown, opts.Width, "…")
	}

	pad := runewidth.StringWidth(prefix)
	width := max(runewidth.StringWidth(marked), 1)

	num := strconv.FormatUint(uint64(start.Line), 10)
	gutter := strings.Repeat(" ", len(num))
	fmt.Fprintf(sb, "  %s %s %s\n", p.gutter.Sprint(num), p.gutter.Sprint("|"), shown)
	fmt.Fprintf(sb, "  %s %s %s%s\n", gutter, p.gutter.Sprint("|"), strings.Repeat(" ", pad),
		p.caret.Sprint("^"+strings.Repeat("~", width-1)))
}
