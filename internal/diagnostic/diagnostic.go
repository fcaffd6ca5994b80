// Package diagnostic defines the single error shape surfaced by the pytd
// front end. Lexical, syntax, and semantic failures are all normalized to
// one structure carrying the message, file name, 1-based line and column,
// and the text of the offending source line, so callers need only one
// handling path.
package diagnostic

import (
	"fmt"
	"strings"

	"github.com/mvcisback/pytypedecl/internal/position"
)

// Category classifies a diagnostic by the pipeline stage that produced it.
type Category int

const (
	// Lexical covers illegal characters, tabs, and indentation that
	// matches no enclosing level.
	Lexical Category = iota
	// Syntax covers token sequences that match no grammar production,
	// including unexpected end of input.
	Syntax
	// Semantic covers duplicate identifiers across constants, functions,
	// and classes at module or class scope.
	Semantic
)

func (c Category) String() string {
	switch c {
	case Lexical:
		return "lexical error"
	case Syntax:
		return "syntax error"
	case Semantic:
		return "semantic error"
	default:
		return "error"
	}
}

// Diagnostic is a structured parse failure. It satisfies the error
// interface; parsing stops at the first one (no recovery, no batching).
type Diagnostic struct {
	Category Category
	Message  string
	Filename string // source file name, or "<string>" for in-memory input
	Line     int    // 1-based line number
	Column   int    // 1-based column within the line
	LineText string // full text of the offending source line
}

// New builds a diagnostic at pos, quoting the offending line from file.
// A nil file leaves LineText empty.
func New(cat Category, msg string, file *position.SourceFile, pos position.Position) *Diagnostic {
	d := &Diagnostic{
		Category: cat,
		Message:  msg,
		Filename: pos.Filename,
		Line:     pos.Line,
		Column:   pos.Column,
	}
	if file != nil {
		d.LineText = file.GetLine(pos.Line)
	}
	return d
}

// Error returns the single-line form "file:line:col: category: message".
func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s: %s", d.Filename, d.Line, d.Column, d.Category, d.Message)
}

// Render returns the multi-line form: the single-line header, the offending
// source line, and a caret marking the column.
func (d *Diagnostic) Render() string {
	var b strings.Builder
	b.WriteString(d.Error())
	if d.LineText != "" {
		b.WriteString("\n")
		b.WriteString(d.LineText)
		b.WriteString("\n")
		b.WriteString(d.Caret())
	}
	return b.String()
}

// Caret returns the marker line that points at Column under LineText.
func (d *Diagnostic) Caret() string {
	return caretLine(d.LineText, d.Column)
}

// caretLine builds the marker line under text pointing at column (1-based).
// Leading whitespace is mirrored so the caret lines up even if the line
// were to contain tabs.
func caretLine(text string, column int) string {
	if column < 1 {
		column = 1
	}
	var b strings.Builder
	for i := 0; i < column-1; i++ {
		if i < len(text) && text[i] == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteByte(' ')
		}
	}
	b.WriteByte('^')
	return b.String()
}
