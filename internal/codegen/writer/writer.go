package writer

import (
	"fmt"
	"strings"
)

// Writer accumulates generated source text with indentation tracking. All
// output is buffered in memory; the caller writes the final document once.
type Writer struct {
	sb          strings.Builder
	indent      string
	level       int
	needsIndent bool
}

// New creates a writer using the given indentation unit.
func New(indent string) *Writer {
	return &Writer{indent: indent, needsIndent: true}
}

// Indent increases the indentation level.
func (w *Writer) Indent() {
	w.level++
}

// Dedent decreases the indentation level.
func (w *Writer) Dedent() {
	if w.level > 0 {
		w.level--
	}
}

// Write appends s to the current line, indenting first if the line is fresh.
func (w *Writer) Write(s string) {
	if w.needsIndent && s != "" {
		w.sb.WriteString(strings.Repeat(w.indent, w.level))
		w.needsIndent = false
	}
	w.sb.WriteString(s)
}

// Writef appends a formatted string to the current line.
func (w *Writer) Writef(format string, args ...any) {
	w.Write(fmt.Sprintf(format, args...))
}

// Line writes s followed by a newline.
func (w *Writer) Line(s string) {
	w.Write(s)
	w.Newline()
}

// Linef writes a formatted line.
func (w *Writer) Linef(format string, args ...any) {
	w.Writef(format, args...)
	w.Newline()
}

// Newline terminates the current line.
func (w *Writer) Newline() {
	w.sb.WriteString("\n")
	w.needsIndent = true
}

// BlankLine writes an empty line.
func (w *Writer) BlankLine() {
	w.Newline()
}

// String returns the buffered document.
func (w *Writer) String() string {
	return w.sb.String()
}

// Bytes returns the buffered document as a byte slice.
func (w *Writer) Bytes() []byte {
	return []byte(w.sb.String())
}
