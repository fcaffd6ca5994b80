// Package lexer implements the tokenizer for the pytd type declaration
// language. Indentation is significant: the lexer keeps an explicit indent
// stack and synthesizes INDENT/DEDENT tokens, except inside parentheses and
// angle brackets where all whitespace is insignificant. Tabs are rejected
// outright since their width is ambiguous.
package lexer

import (
	"fmt"

	"github.com/mvcisback/pytypedecl/internal/diagnostic"
	"github.com/mvcisback/pytypedecl/internal/position"
)

// Lexer scans pytd source text into tokens.
type Lexer struct {
	input        string
	filename     string
	file         *position.SourceFile
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           byte // current char under examination
	line         int  // 1-based line of the current char
	column       int  // 1-based column of the current char

	indentStack  []int   // enclosing indentation widths, always starts [0]
	openBrackets int     // depth of ( and < nesting; nonzero suppresses indentation
	queue        []Token // synthesized tokens (dedents) waiting to be returned
}

// New creates a lexer for an in-memory string. Diagnostics use the
// "<string>" placeholder as the file name.
func New(input string) *Lexer {
	return NewWithFilename(input, "<string>")
}

// NewWithFilename creates a lexer with a file name for error reporting.
func NewWithFilename(input, filename string) *Lexer {
	l := &Lexer{
		input:       input,
		filename:    filename,
		file:        position.NewSourceFile(filename, input),
		line:        1,
		column:      0,
		indentStack: []int{0},
	}
	l.readChar()
	return l
}

// File returns the source file being scanned, for diagnostic rendering.
func (l *Lexer) File() *position.SourceFile {
	return l.file
}

// Tokenize scans the whole input and returns all tokens up to and including
// EOF, or the first lexical error.
func (l *Lexer) Tokenize() ([]Token, error) {
	var tokens []Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			return tokens, nil
		}
	}
}

// NextToken returns the next token, or a *diagnostic.Diagnostic describing
// the first lexical error. Errors are fatal: the caller must not continue
// scanning after one.
func (l *Lexer) NextToken() (Token, error) {
	if len(l.queue) > 0 {
		tok := l.queue[0]
		l.queue = l.queue[1:]
		return tok, nil
	}

	for {
		switch {
		case l.ch == 0:
			return l.eof(), nil

		case l.ch == '\t':
			return Token{}, l.errorf(l.pos(), "Use spaces, not tabs")

		case l.ch == '\n' || l.ch == '\r' || l.ch == ' ':
			tok, ok, err := l.scanWhitespace()
			if err != nil {
				return Token{}, err
			}
			if ok {
				return tok, nil
			}
			// Insignificant whitespace, keep scanning.

		case l.ch == '#':
			l.skipComment()

		default:
			return l.scanToken()
		}
	}
}

// readChar reads the next character and advances position.
func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0 // ASCII NUL represents "EOF"
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++

	if l.ch == '\n' {
		l.line++
		l.column = 0
	} else {
		l.column++
	}
}

// peekChar returns the next character without advancing position.
func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

// pos returns the position of the current character.
func (l *Lexer) pos() position.Position {
	return position.Position{
		Filename: l.filename,
		Line:     l.line,
		Column:   l.column,
		Offset:   l.position,
	}
}

// eof drains any open indentation levels before emitting EOF, so block
// structure closes even when the input lacks a trailing newline.
func (l *Lexer) eof() Token {
	here := l.pos()
	for len(l.indentStack) > 1 {
		l.indentStack = l.indentStack[:len(l.indentStack)-1]
		l.queue = append(l.queue, Token{Type: TokenDedent, Span: position.Span{Start: here, End: here}})
	}
	if len(l.queue) > 0 {
		tok := l.queue[0]
		l.queue = l.queue[1:]
		return tok
	}
	return Token{Type: TokenEOF, Span: position.Span{Start: here, End: here}}
}

// scanWhitespace consumes a run of spaces, newlines, and carriage returns.
// At bracket depth zero, a run containing a newline re-measures indentation:
// the width is the number of spaces after the last newline. A deeper width
// pushes and emits INDENT; a shallower width pops and emits one DEDENT per
// level (queued, returned one at a time); a width matching no enclosing
// level is a lexical error. Runs inside brackets, and runs without a
// newline, produce nothing.
func (l *Lexer) scanWhitespace() (Token, bool, error) {
	sawNewline := false
	indent := 0

	for l.ch == '\n' || l.ch == '\r' || l.ch == ' ' {
		switch l.ch {
		case '\n':
			sawNewline = true
			indent = 0
		case ' ':
			indent++
		}
		// '\r' is ignored entirely.
		l.readChar()
	}

	if l.openBrackets != 0 || !sawNewline {
		return Token{}, false, nil
	}

	here := l.pos() // first character of the freshly indented line
	span := position.Span{Start: here, End: here}
	top := l.indentStack[len(l.indentStack)-1]

	switch {
	case indent > top:
		l.indentStack = append(l.indentStack, indent)
		return Token{Type: TokenIndent, Span: span}, true, nil

	case indent < top:
		pops := 0
		for indent < l.indentStack[len(l.indentStack)-1] {
			l.indentStack = l.indentStack[:len(l.indentStack)-1]
			pops++
		}
		if indent != l.indentStack[len(l.indentStack)-1] {
			return Token{}, false, l.errorf(here, "invalid dedent")
		}
		for i := 0; i < pops; i++ {
			l.queue = append(l.queue, Token{Type: TokenDedent, Span: span})
		}
		tok := l.queue[0]
		l.queue = l.queue[1:]
		return tok, true, nil

	default:
		return Token{}, false, nil
	}
}

// skipComment consumes a '#' comment up to (not including) the newline.
func (l *Lexer) skipComment() {
	for l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}
}

// scanToken scans a single non-whitespace token starting at the current
// character.
func (l *Lexer) scanToken() (Token, error) {
	start := l.pos()

	switch {
	case isLetter(l.ch) || l.ch == '_':
		lit := l.readIdentifier()
		return l.makeToken(LookupKeyword(lit), lit, start), nil

	case l.ch == '`':
		return l.readBacktickName(start)

	case l.ch == '\'' || l.ch == '"':
		return l.readString(start)

	case isDigit(l.ch):
		return l.makeToken(TokenNumber, l.readNumber(), start), nil

	case l.ch == '-' && l.peekChar() == '>':
		l.readChar()
		l.readChar()
		return l.makeToken(TokenArrow, "->", start), nil

	case (l.ch == '-' || l.ch == '+') && isDigit(l.peekChar()):
		sign := string(l.ch)
		l.readChar()
		return l.makeToken(TokenNumber, sign+l.readNumber(), start), nil

	case l.ch == ':':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return l.makeToken(TokenColonEquals, ":=", start), nil
		}
		l.readChar()
		return l.makeToken(TokenColon, ":", start), nil

	case l.ch == '.':
		if l.peekChar() == '.' {
			l.readChar()
			if l.peekChar() == '.' {
				l.readChar()
				l.readChar()
				return l.makeToken(TokenEllipsis, "...", start), nil
			}
		}
		return Token{}, l.errorf(start, "Illegal character '.'")

	case l.ch == ',':
		l.readChar()
		return l.makeToken(TokenComma, ",", start), nil

	case l.ch == '?':
		l.readChar()
		return l.makeToken(TokenQuestion, "?", start), nil

	case l.ch == '@':
		l.readChar()
		return l.makeToken(TokenAt, "@", start), nil

	case l.ch == '<':
		l.openBrackets++
		l.readChar()
		return l.makeToken(TokenLAngle, "<", start), nil

	case l.ch == '>':
		l.openBrackets--
		l.readChar()
		return l.makeToken(TokenRAngle, ">", start), nil

	case l.ch == '(':
		l.openBrackets++
		l.readChar()
		return l.makeToken(TokenLParen, "(", start), nil

	case l.ch == ')':
		l.openBrackets--
		l.readChar()
		return l.makeToken(TokenRParen, ")", start), nil

	default:
		return Token{}, l.errorf(start, "Illegal character '%c'", l.ch)
	}
}

// readIdentifier reads a plain identifier. Dots are allowed after the first
// character so dotted module references scan as one name.
func (l *Lexer) readIdentifier() string {
	start := l.position
	l.readChar()
	for isLetter(l.ch) || isDigit(l.ch) || l.ch == '_' || l.ch == '.' {
		l.readChar()
	}
	return l.input[start:l.position]
}

// readBacktickName reads a backtick-quoted identifier. The quotes allow
// reserved words to be used as ordinary names; the resulting token is
// always a NAME regardless of content.
func (l *Lexer) readBacktickName(start position.Position) (Token, error) {
	l.readChar() // consume opening backtick
	lit := l.position
	for l.ch != '`' {
		if l.ch == 0 {
			return Token{}, l.errorf(start, "Illegal character '`'")
		}
		l.readChar()
	}
	name := l.input[lit:l.position]
	l.readChar() // consume closing backtick
	return l.makeToken(TokenName, name, start), nil
}

// readString reads a single- or double-quoted string literal. A backslash
// escapes the matching quote or another backslash; any other backslash is
// kept verbatim. Newlines inside strings are allowed.
func (l *Lexer) readString(start position.Position) (Token, error) {
	quote := l.ch
	l.readChar() // consume opening quote

	var out []byte
	for l.ch != quote {
		if l.ch == 0 {
			return Token{}, l.errorf(start, "Illegal character '%c'", quote)
		}
		if l.ch == '\\' && (l.peekChar() == quote || l.peekChar() == '\\') {
			l.readChar()
		}
		out = append(out, l.ch)
		l.readChar()
	}
	l.readChar() // consume closing quote
	return l.makeToken(TokenString, string(out), start), nil
}

// readNumber reads an unsigned number: digits optionally followed by a dot
// and more digits. "5." is a valid float literal.
func (l *Lexer) readNumber() string {
	start := l.position
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	} else if l.ch == '.' && l.peekChar() != '.' {
		// Trailing dot with no fraction digits still makes a float.
		l.readChar()
	}
	return l.input[start:l.position]
}

func (l *Lexer) makeToken(tt TokenType, literal string, start position.Position) Token {
	return Token{
		Type:    tt,
		Literal: literal,
		Span:    position.Span{Start: start, End: l.pos()},
	}
}

func (l *Lexer) errorf(pos position.Position, format string, args ...any) *diagnostic.Diagnostic {
	return diagnostic.New(diagnostic.Lexical, fmt.Sprintf(format, args...), l.file, pos)
}

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}
