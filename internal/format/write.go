package format

import (
	"silver/internal/source"
)

// Writer accumulates formatted output and copies source fragments verbatim.
type Writer struct {
	sf  *source.File
	buf []byte
}

// NewWriter creates a writer over sf.
func NewWriter(sf *source.File) *Writer {
	return &Writer{
		sf:  sf,
		buf: make([]byte, 0, len(sf.Content)+1),
	}
}

// Bytes returns the accumulated formatted output.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// WriteString appends s.
func (w *Writer) WriteString(s string) {
	w.buf = append(w.buf, s...)
}

// WriteByte appends a single byte.
func (w *Writer) WriteByte(b byte) error {
	w.buf = append(w.buf, b)
	return nil
}

// Space writes a single space if the output doesn't already end with whitespace.
func (w *Writer) Space() {
	if len(w.buf) == 0 {
		return
	}
	last := w.buf[len(w.buf)-1]
	if last == ' ' || last == '\n' {
		return
	}
	w.buf = append(w.buf, ' ')
}

// Newline writes a newline if the output doesn't already end with one.
func (w *Writer) Newline() {
	if len(w.buf) == 0 || w.buf[len(w.buf)-1] != '\n' {
		w.buf = append(w.buf, '\n')
	}
}

// CopySpan copies a span of the source file to the output.
func (w *Writer) CopySpan(sp source.Span) {
	if sp.File != w.sf.ID || sp.End <= sp.Start {
		return
	}
	start, end := int(sp.Start), min(int(sp.End), len(w.sf.Content))
	if start >= end {
		return
	}
	w.buf = append(w.buf, w.sf.Content[start:end]...)
}
