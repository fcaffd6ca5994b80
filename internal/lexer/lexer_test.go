package lexer

import (
	"errors"
	"strings"
	"testing"

	"github.com/mvcisback/pytypedecl/internal/diagnostic"
)

func TestBasicTokens(t *testing.T) {
	input := `def fib(n: int) -> int raises OverflowError`

	tests := []struct {
		expectedType  TokenType
		expectedValue string
	}{
		{TokenDef, "def"},
		{TokenName, "fib"},
		{TokenLParen, "("},
		{TokenName, "n"},
		{TokenColon, ":"},
		{TokenName, "int"},
		{TokenRParen, ")"},
		{TokenArrow, "->"},
		{TokenName, "int"},
		{TokenRaises, "raises"},
		{TokenName, "OverflowError"},
		{TokenEOF, ""},
	}

	l := New(input)

	for i, tt := range tests {
		tok, err := l.NextToken()
		if err != nil {
			t.Fatalf("tests[%d] - unexpected error: %v", i, err)
		}

		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q",
				i, tt.expectedType, tok.Type)
		}

		if tok.Literal != tt.expectedValue {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q",
				i, tt.expectedValue, tok.Literal)
		}
	}
}

func TestKeywords(t *testing.T) {
	input := `class def pass and or nothing raises extends`

	tests := []struct {
		expectedType  TokenType
		expectedValue string
	}{
		{TokenClass, "class"},
		{TokenDef, "def"},
		{TokenPass, "pass"},
		{TokenAnd, "and"},
		{TokenOr, "or"},
		{TokenNothing, "nothing"},
		{TokenRaises, "raises"},
		{TokenExtends, "extends"},
		{TokenEOF, ""},
	}

	l := New(input)

	for i, tt := range tests {
		tok, err := l.NextToken()
		if err != nil {
			t.Fatalf("tests[%d] - unexpected error: %v", i, err)
		}

		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q",
				i, tt.expectedType, tok.Type)
		}

		if tok.Literal != tt.expectedValue {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q",
				i, tt.expectedValue, tok.Literal)
		}
	}
}

func TestBacktickedNames(t *testing.T) {
	// Backticks turn reserved words into ordinary names.
	input := "`class`: `def`"

	tests := []struct {
		expectedType  TokenType
		expectedValue string
	}{
		{TokenName, "class"},
		{TokenColon, ":"},
		{TokenName, "def"},
		{TokenEOF, ""},
	}

	l := New(input)

	for i, tt := range tests {
		tok, err := l.NextToken()
		if err != nil {
			t.Fatalf("tests[%d] - unexpected error: %v", i, err)
		}

		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q",
				i, tt.expectedType, tok.Type)
		}

		if tok.Literal != tt.expectedValue {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q",
				i, tt.expectedValue, tok.Literal)
		}
	}
}

func TestDottedNames(t *testing.T) {
	l := New("collections.OrderedDict")

	tok, err := l.NextToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok.Type != TokenName || tok.Literal != "collections.OrderedDict" {
		t.Fatalf("dotted name scanned as %v", tok)
	}
}

func TestIndentDedent(t *testing.T) {
	input := "class Foo:\n" +
		"    def bar()\n" +
		"x: int\n"

	tests := []struct {
		expectedType  TokenType
		expectedValue string
	}{
		{TokenClass, "class"},
		{TokenName, "Foo"},
		{TokenColon, ":"},
		{TokenIndent, ""},
		{TokenDef, "def"},
		{TokenName, "bar"},
		{TokenLParen, "("},
		{TokenRParen, ")"},
		{TokenDedent, ""},
		{TokenName, "x"},
		{TokenColon, ":"},
		{TokenName, "int"},
		{TokenEOF, ""},
	}

	l := New(input)

	for i, tt := range tests {
		tok, err := l.NextToken()
		if err != nil {
			t.Fatalf("tests[%d] - unexpected error: %v", i, err)
		}

		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q",
				i, tt.expectedType, tok.Type)
		}
	}
}

func TestMultipleDedents(t *testing.T) {
	// Dropping from depth two straight to column zero must emit two
	// DEDENT tokens from the single whitespace run.
	input := "class A:\n" +
		"  class B:\n" +
		"    pass\n" +
		"y: str\n"

	toks := mustTokenize(t, input)

	var kinds []TokenType
	for _, tok := range toks {
		if tok.Type == TokenIndent || tok.Type == TokenDedent {
			kinds = append(kinds, tok.Type)
		}
	}

	expected := []TokenType{TokenIndent, TokenIndent, TokenDedent, TokenDedent}
	if len(kinds) != len(expected) {
		t.Fatalf("indent token sequence %v, want %v", kinds, expected)
	}
	for i := range expected {
		if kinds[i] != expected[i] {
			t.Fatalf("indent token sequence %v, want %v", kinds, expected)
		}
	}
}

func TestEOFDrainsIndentation(t *testing.T) {
	// No trailing newline: the dedent is synthesized at end of input.
	input := "class A:\n    pass"

	toks := mustTokenize(t, input)

	if toks[len(toks)-1].Type != TokenEOF {
		t.Fatalf("last token = %v, want EOF", toks[len(toks)-1])
	}
	if toks[len(toks)-2].Type != TokenDedent {
		t.Fatalf("token before EOF = %v, want DEDENT", toks[len(toks)-2])
	}
}

func TestIndentationBalance(t *testing.T) {
	// For valid programs INDENT and DEDENT counts always match over a
	// full scan.
	sources := []string{
		"",
		"x: int\n",
		"class A:\n    pass\n",
		"class A:\n    pass",
		"class A:\n  def f()\n  def g()\nclass B:\n  pass\n",
		"class A:\n  class B:\n    def f()\nx: int\n",
		"def f(\n    x: int,\n    y: str)\n",
	}

	for i, src := range sources {
		toks, err := New(src).Tokenize()
		if err != nil {
			t.Fatalf("sources[%d] - unexpected error: %v", i, err)
		}

		balance := 0
		for _, tok := range toks {
			switch tok.Type {
			case TokenIndent:
				balance++
			case TokenDedent:
				balance--
			}
		}
		if balance != 0 {
			t.Errorf("sources[%d] - indent/dedent balance = %d, want 0", i, balance)
		}
	}
}

func TestBracketsSuppressIndentation(t *testing.T) {
	// Inside parentheses and angle brackets, newlines and indentation are
	// insignificant, so multi-line parameter lists scan flat.
	input := "def f(x: int,\n" +
		"      y: dict<str,\n" +
		"              int>)\n"

	toks := mustTokenize(t, input)

	for _, tok := range toks {
		if tok.Type == TokenIndent || tok.Type == TokenDedent {
			t.Fatalf("unexpected %v inside brackets", tok.Type)
		}
	}
}

func TestTabIsFatal(t *testing.T) {
	inputs := []string{
		"\tx: int",
		"x:\tint",
		"class A:\n\tpass",
		"x: int\t",
	}

	for i, input := range inputs {
		_, err := New(input).Tokenize()
		if err == nil {
			t.Fatalf("inputs[%d] - expected tab error, got none", i)
		}

		var d *diagnostic.Diagnostic
		if !errors.As(err, &d) {
			t.Fatalf("inputs[%d] - error is not a *diagnostic.Diagnostic: %v", i, err)
		}
		if d.Category != diagnostic.Lexical {
			t.Errorf("inputs[%d] - category = %v, want Lexical", i, d.Category)
		}
		if d.Message != "Use spaces, not tabs" {
			t.Errorf("inputs[%d] - message = %q, want %q", i, d.Message, "Use spaces, not tabs")
		}
	}
}

func TestTabInsideStringAllowed(t *testing.T) {
	toks := mustTokenize(t, "x: \"a\tb\"\n")

	if toks[2].Type != TokenString || toks[2].Literal != "a\tb" {
		t.Fatalf("string with tab scanned as %v", toks[2])
	}
}

func TestInvalidDedent(t *testing.T) {
	input := "class A:\n" +
		"    def f()\n" +
		"  x: int\n"

	_, err := New(input).Tokenize()
	if err == nil {
		t.Fatal("expected invalid dedent error, got none")
	}

	var d *diagnostic.Diagnostic
	if !errors.As(err, &d) {
		t.Fatalf("error is not a *diagnostic.Diagnostic: %v", err)
	}
	if d.Message != "invalid dedent" {
		t.Errorf("message = %q, want %q", d.Message, "invalid dedent")
	}
	if d.Line != 3 {
		t.Errorf("line = %d, want 3", d.Line)
	}
	if d.LineText != "  x: int" {
		t.Errorf("line text = %q, want %q", d.LineText, "  x: int")
	}
}

func TestIllegalCharacter(t *testing.T) {
	_, err := New("x: $int").Tokenize()
	if err == nil {
		t.Fatal("expected illegal character error, got none")
	}

	var d *diagnostic.Diagnostic
	if !errors.As(err, &d) {
		t.Fatalf("error is not a *diagnostic.Diagnostic: %v", err)
	}
	if d.Message != "Illegal character '$'" {
		t.Errorf("message = %q, want %q", d.Message, "Illegal character '$'")
	}
	if d.Line != 1 || d.Column != 4 {
		t.Errorf("position = %d:%d, want 1:4", d.Line, d.Column)
	}
}

func TestStrings(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`"hello"`, "hello"},
		{`'hello'`, "hello"},
		{`"it's"`, "it's"},
		{`'say "hi"'`, `say "hi"`},
		{`"escaped \" quote"`, `escaped " quote`},
		{`'escaped \' quote'`, "escaped ' quote"},
		{`"back\\slash"`, `back\slash`},
	}

	for i, tt := range tests {
		toks, err := New(tt.input).Tokenize()
		if err != nil {
			t.Fatalf("tests[%d] - unexpected error: %v", i, err)
		}

		if toks[0].Type != TokenString {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q",
				i, TokenString, toks[0].Type)
		}
		if toks[0].Literal != tt.expected {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q",
				i, tt.expected, toks[0].Literal)
		}
	}
}

func TestUnterminatedString(t *testing.T) {
	_, err := New(`x: "oops`).Tokenize()
	if err == nil {
		t.Fatal("expected error for unterminated string, got none")
	}
	if !strings.Contains(err.Error(), `Illegal character '"'`) {
		t.Errorf("error = %v, want illegal character for the opening quote", err)
	}
}

func TestNumbers(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"42", "42"},
		{"-42", "-42"},
		{"+7", "+7"},
		{"3.14", "3.14"},
		{"5.", "5."},
		{"-2.5", "-2.5"},
	}

	for i, tt := range tests {
		toks, err := New(tt.input).Tokenize()
		if err != nil {
			t.Fatalf("tests[%d] - unexpected error: %v", i, err)
		}

		if toks[0].Type != TokenNumber {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q",
				i, TokenNumber, toks[0].Type)
		}
		if toks[0].Literal != tt.expected {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q",
				i, tt.expected, toks[0].Literal)
		}
	}
}

func TestPunctuation(t *testing.T) {
	input := "-> := : , ... ? < > ( ) @"

	tests := []TokenType{
		TokenArrow,
		TokenColonEquals,
		TokenColon,
		TokenComma,
		TokenEllipsis,
		TokenQuestion,
		TokenLAngle,
		TokenRAngle,
		TokenLParen,
		TokenRParen,
		TokenAt,
		TokenEOF,
	}

	l := New(input)

	for i, expected := range tests {
		tok, err := l.NextToken()
		if err != nil {
			t.Fatalf("tests[%d] - unexpected error: %v", i, err)
		}
		if tok.Type != expected {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q",
				i, expected, tok.Type)
		}
	}
}

func TestStrayDot(t *testing.T) {
	_, err := New("x: ..").Tokenize()
	if err == nil {
		t.Fatal("expected error for stray dots, got none")
	}
	if !strings.Contains(err.Error(), "Illegal character '.'") {
		t.Errorf("error = %v, want illegal character '.'", err)
	}
}

func TestComments(t *testing.T) {
	input := "x: int  # trailing comment\n" +
		"# full-line comment\n" +
		"y: str\n"

	toks := mustTokenize(t, input)

	tests := []struct {
		expectedType  TokenType
		expectedValue string
	}{
		{TokenName, "x"},
		{TokenColon, ":"},
		{TokenName, "int"},
		{TokenName, "y"},
		{TokenColon, ":"},
		{TokenName, "str"},
		{TokenEOF, ""},
	}

	if len(toks) != len(tests) {
		t.Fatalf("token count = %d, want %d (%v)", len(toks), len(tests), toks)
	}
	for i, tt := range tests {
		if toks[i].Type != tt.expectedType || toks[i].Literal != tt.expectedValue {
			t.Fatalf("tests[%d] - got %v, want {%q %q}", i, toks[i], tt.expectedType, tt.expectedValue)
		}
	}
}

func TestTokenPositions(t *testing.T) {
	l := NewWithFilename("x: int\ny: str\n", "pos.pytd")

	toks, err := l.Tokenize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// toks: x : int y : str EOF
	y := toks[3]
	if y.Literal != "y" {
		t.Fatalf("expected 4th token to be y, got %v", y)
	}
	if y.Span.Start.Line != 2 || y.Span.Start.Column != 1 {
		t.Errorf("y position = %d:%d, want 2:1", y.Span.Start.Line, y.Span.Start.Column)
	}
	if y.Span.Start.Filename != "pos.pytd" {
		t.Errorf("y filename = %q, want %q", y.Span.Start.Filename, "pos.pytd")
	}
}

func TestLeadingWhitespaceOnFirstLineIgnored(t *testing.T) {
	// Spaces with no preceding newline are mid-line whitespace, never
	// indentation.
	toks := mustTokenize(t, "   x: int")

	if toks[0].Type != TokenName || toks[0].Literal != "x" {
		t.Fatalf("first token = %v, want NAME x", toks[0])
	}
}

func mustTokenize(t *testing.T, input string) []Token {
	t.Helper()
	toks, err := New(input).Tokenize()
	if err != nil {
		t.Fatalf("unexpected lexical error: %v", err)
	}
	return toks
}
