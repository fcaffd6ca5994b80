// Package parser implements the recursive descent parser for pytd
// type declaration files.
//
// The parser consumes the token stream produced by the lexer package
// and builds an ast.Module. There is no error recovery: the first
// lexical, syntactic or semantic failure terminates the parse and is
// returned as a *diagnostic.Diagnostic.
package parser

import (
	"os"
	"strconv"
	"strings"

	"github.com/mvcisback/pytypedecl/internal/ast"
	"github.com/mvcisback/pytypedecl/internal/diagnostic"
	"github.com/mvcisback/pytypedecl/internal/lexer"
	"github.com/mvcisback/pytypedecl/internal/position"
)

// Parser holds the token stream for one parse.
type Parser struct {
	file   *position.SourceFile
	tokens []lexer.Token
	pos    int
}

// ParseString parses an in-memory pytd source string. Diagnostics use
// the placeholder file name "<string>".
func ParseString(src string) (*ast.Module, error) {
	return Parse(src, "<string>")
}

// ParseFile reads and parses the pytd file at path.
func ParseFile(path string) (*ast.Module, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(string(data), path)
}

// Parse parses src, labelling diagnostics with filename.
func Parse(src, filename string) (*ast.Module, error) {
	p, err := newParser(src, filename)
	if err != nil {
		return nil, err
	}
	return p.parseModule()
}

// ParseTypeString parses a standalone type expression, e.g. "a or b".
func ParseTypeString(src string) (ast.Type, error) {
	p, err := newParser(src, "<string>")
	if err != nil {
		return nil, err
	}
	t, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if !p.at(lexer.TokenEOF) {
		return nil, p.parseError()
	}
	return t, nil
}

func newParser(src, filename string) (*Parser, error) {
	l := lexer.NewWithFilename(src, filename)
	tokens, err := l.Tokenize()
	if err != nil {
		return nil, err
	}
	return &Parser{file: l.File(), tokens: tokens}, nil
}

func (p *Parser) current() lexer.Token {
	return p.tokens[p.pos]
}

func (p *Parser) peek() lexer.Token {
	if p.tokens[p.pos].Type == lexer.TokenEOF {
		return p.tokens[p.pos]
	}
	return p.tokens[p.pos+1]
}

func (p *Parser) advance() {
	if p.tokens[p.pos].Type != lexer.TokenEOF {
		p.pos++
	}
}

func (p *Parser) at(t lexer.TokenType) bool {
	return p.current().Type == t
}

// expect consumes the current token if it has the wanted type and
// fails the parse otherwise.
func (p *Parser) expect(t lexer.TokenType) (lexer.Token, error) {
	if !p.at(t) {
		return lexer.Token{}, p.parseError()
	}
	tok := p.current()
	p.advance()
	return tok, nil
}

// parseError reports an unexpected token at the current position.
func (p *Parser) parseError() error {
	return diagnostic.New(diagnostic.Syntax, "Parse error", p.file, p.current().Span.Start)
}

func (p *Parser) semanticError(msg string, pos position.Position) error {
	return diagnostic.New(diagnostic.Semantic, msg, p.file, pos)
}

// declKind distinguishes the three declaration kinds for duplicate
// checking. Within one kind repetition is legal (overloads merge,
// repeated constants are kept); one name spanning two kinds is not.
type declKind int

const (
	kindConstant declKind = iota
	kindFunction
	kindClass
)

type declRecord struct {
	name string
	kind declKind
	pos  position.Position
}

// checkDuplicates rejects any name declared under more than one kind,
// reporting at the position of the later declaration.
func (p *Parser) checkDuplicates(records []declRecord) error {
	kinds := make(map[string]declKind, len(records))
	for _, r := range records {
		prev, seen := kinds[r.name]
		if seen && prev != r.kind {
			return p.semanticError("Duplicate identifier(s)", r.pos)
		}
		if !seen {
			kinds[r.name] = r.kind
		}
	}
	return nil
}

// parseModule parses a whole file: any number of constants, classes
// and functions in any order.
func (p *Parser) parseModule() (*ast.Module, error) {
	var (
		constants []*ast.Constant
		classes   []*ast.Class
		funcs     []NameAndSig
		records   []declRecord
	)

	for !p.at(lexer.TokenEOF) {
		pos := p.current().Span.Start
		switch p.current().Type {
		case lexer.TokenClass:
			cls, err := p.parseClass()
			if err != nil {
				return nil, err
			}
			classes = append(classes, cls)
			records = append(records, declRecord{cls.Name, kindClass, pos})

		case lexer.TokenDef:
			ns, err := p.parseFuncDef()
			if err != nil {
				return nil, err
			}
			funcs = append(funcs, ns)
			records = append(records, declRecord{ns.Name, kindFunction, pos})

		case lexer.TokenName:
			c, err := p.parseConstant()
			if err != nil {
				return nil, err
			}
			constants = append(constants, c)
			records = append(records, declRecord{c.Name, kindConstant, pos})

		default:
			return nil, p.parseError()
		}
	}

	if err := p.checkDuplicates(records); err != nil {
		return nil, err
	}

	return &ast.Module{
		Constants: constants,
		Functions: MergeSignatures(funcs),
		Classes:   classes,
		Modules:   map[string]*ast.Module{},
	}, nil
}

// parseConstant parses `NAME : type`.
func (p *Parser) parseConstant() (*ast.Constant, error) {
	name, err := p.expect(lexer.TokenName)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenColon); err != nil {
		return nil, err
	}
	typ, err := p.parseType()
	if err != nil {
		return nil, err
	}
	return &ast.Constant{Name: name.Literal, Type: typ}, nil
}

// parseClass parses `class [<template>] NAME [(parents)] : block`.
// The block is either the single keyword pass or a run of method and
// constant declarations.
func (p *Parser) parseClass() (*ast.Class, error) {
	if _, err := p.expect(lexer.TokenClass); err != nil {
		return nil, err
	}
	template, err := p.parseTemplate()
	if err != nil {
		return nil, err
	}
	name, err := p.expect(lexer.TokenName)
	if err != nil {
		return nil, err
	}

	var parents []ast.Type
	if p.at(lexer.TokenLParen) {
		p.advance()
		parents, err = p.parseTypeList()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.TokenRParen); err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(lexer.TokenColon); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenIndent); err != nil {
		return nil, err
	}

	var (
		constants []*ast.Constant
		funcs     []NameAndSig
		records   []declRecord
	)
	if p.at(lexer.TokenPass) {
		p.advance()
	} else {
		for !p.at(lexer.TokenDedent) && !p.at(lexer.TokenEOF) {
			pos := p.current().Span.Start
			switch p.current().Type {
			case lexer.TokenDef:
				ns, err := p.parseFuncDef()
				if err != nil {
					return nil, err
				}
				funcs = append(funcs, ns)
				records = append(records, declRecord{ns.Name, kindFunction, pos})

			case lexer.TokenName:
				c, err := p.parseConstant()
				if err != nil {
					return nil, err
				}
				constants = append(constants, c)
				records = append(records, declRecord{c.Name, kindConstant, pos})

			default:
				return nil, p.parseError()
			}
		}
	}

	if _, err := p.expect(lexer.TokenDedent); err != nil {
		return nil, err
	}

	if err := p.checkDuplicates(records); err != nil {
		return nil, err
	}

	return &ast.Class{
		Name:      name.Literal,
		Parents:   parents,
		Methods:   MergeSignatures(funcs),
		Constants: constants,
		Template:  template,
	}, nil
}

// parseFuncDef parses one def block:
//
//	def [<template>] NAME(params) [-> type] [raises t, ...] [@ STRING] [: mutators]
//
// and returns the declared name with its signature, mutators already
// applied.
func (p *Parser) parseFuncDef() (NameAndSig, error) {
	if _, err := p.expect(lexer.TokenDef); err != nil {
		return NameAndSig{}, err
	}
	template, err := p.parseTemplate()
	if err != nil {
		return NameAndSig{}, err
	}
	name, err := p.expect(lexer.TokenName)
	if err != nil {
		return NameAndSig{}, err
	}
	if _, err := p.expect(lexer.TokenLParen); err != nil {
		return NameAndSig{}, err
	}
	params, hasOptional, err := p.parseParams()
	if err != nil {
		return NameAndSig{}, err
	}
	if _, err := p.expect(lexer.TokenRParen); err != nil {
		return NameAndSig{}, err
	}

	// A missing "-> type" means the return type is not specified.
	var returnType ast.Type = &ast.UnknownType{}
	if p.at(lexer.TokenArrow) {
		p.advance()
		returnType, err = p.parseType()
		if err != nil {
			return NameAndSig{}, err
		}
	}

	var exceptions []ast.Type
	if p.at(lexer.TokenRaises) {
		p.advance()
		exceptions, err = p.parseTypeList()
		if err != nil {
			return NameAndSig{}, err
		}
	}

	var docstring string
	if p.at(lexer.TokenAt) {
		p.advance()
		doc, err := p.expect(lexer.TokenString)
		if err != nil {
			return NameAndSig{}, err
		}
		docstring = doc.Literal
	}

	sig := &ast.Signature{
		Params:      params,
		ReturnType:  returnType,
		Exceptions:  exceptions,
		Template:    template,
		HasOptional: hasOptional,
		Docstring:   docstring,
	}

	if p.at(lexer.TokenColon) {
		p.advance()
		mutators, err := p.parseBody()
		if err != nil {
			return NameAndSig{}, err
		}
		sig = applyMutators(sig, mutators)
	}

	return NameAndSig{Name: name.Literal, Signature: sig}, nil
}

// parseParams parses the inside of a parameter list. A bare trailing
// "..." sets the optional flag without contributing a parameter, and
// is only legal as the final entry.
func (p *Parser) parseParams() ([]ast.Param, bool, error) {
	if p.at(lexer.TokenRParen) {
		return nil, false, nil
	}
	if p.at(lexer.TokenEllipsis) {
		p.advance()
		return nil, true, nil
	}

	first, err := p.parseParam()
	if err != nil {
		return nil, false, err
	}
	params := []ast.Param{first}

	for p.at(lexer.TokenComma) {
		p.advance()
		if p.at(lexer.TokenEllipsis) {
			p.advance()
			return params, true, nil
		}
		next, err := p.parseParam()
		if err != nil {
			return nil, false, err
		}
		params = append(params, next)
	}
	return params, false, nil
}

// parseParam parses `NAME` or `NAME : type`. An omitted type defaults
// to the object type.
func (p *Parser) parseParam() (ast.Param, error) {
	name, err := p.expect(lexer.TokenName)
	if err != nil {
		return nil, err
	}
	var typ ast.Type = &ast.NamedType{Name: "object"}
	if p.at(lexer.TokenColon) {
		p.advance()
		typ, err = p.parseType()
		if err != nil {
			return nil, err
		}
	}
	return &ast.Parameter{Name: name.Literal, Type: typ}, nil
}

// parseTemplate parses an optional `< item, item >` template list.
// Each item is `NAME` or `NAME extends type`; an omitted bound
// defaults to the object type.
func (p *Parser) parseTemplate() ([]*ast.TemplateItem, error) {
	if !p.at(lexer.TokenLAngle) {
		return nil, nil
	}
	p.advance()

	var items []*ast.TemplateItem
	for {
		item, err := p.parseTemplateItem()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		if !p.at(lexer.TokenComma) {
			break
		}
		p.advance()
	}
	if _, err := p.expect(lexer.TokenRAngle); err != nil {
		return nil, err
	}
	return items, nil
}

func (p *Parser) parseTemplateItem() (*ast.TemplateItem, error) {
	name, err := p.expect(lexer.TokenName)
	if err != nil {
		return nil, err
	}
	var bound ast.Type = &ast.NamedType{Name: "object"}
	if p.at(lexer.TokenExtends) {
		p.advance()
		bound, err = p.parseType()
		if err != nil {
			return nil, err
		}
	}
	return &ast.TemplateItem{Name: name.Literal, WithinType: bound, Level: 0}, nil
}

// parseBody parses the mutator statements after a def's trailing
// colon: either an indented block of one or more `NAME := type`
// lines, or the same statements inline on the def's own line.
func (p *Parser) parseBody() ([]Mutator, error) {
	if p.at(lexer.TokenIndent) {
		p.advance()
		var mutators []Mutator
		for {
			m, err := p.parseMutator()
			if err != nil {
				return nil, err
			}
			mutators = append(mutators, m)
			if p.at(lexer.TokenDedent) {
				break
			}
		}
		p.advance()
		return mutators, nil
	}

	// Inline form. At least one mutator is required; further NAME :=
	// pairs on the same line extend the list, while a plain NAME (the
	// start of another declaration) ends it.
	m, err := p.parseMutator()
	if err != nil {
		return nil, err
	}
	mutators := []Mutator{m}
	for p.at(lexer.TokenName) && p.peek().Type == lexer.TokenColonEquals {
		m, err := p.parseMutator()
		if err != nil {
			return nil, err
		}
		mutators = append(mutators, m)
	}
	return mutators, nil
}

// parseMutator parses `NAME := type`.
func (p *Parser) parseMutator() (Mutator, error) {
	name, err := p.expect(lexer.TokenName)
	if err != nil {
		return Mutator{}, err
	}
	if _, err := p.expect(lexer.TokenColonEquals); err != nil {
		return Mutator{}, err
	}
	typ, err := p.parseType()
	if err != nil {
		return Mutator{}, err
	}
	return Mutator{Name: name.Literal, NewType: typ}, nil
}

// scalarValue decodes a NUMBER literal: a string containing "." is a
// floating value, anything else an integer.
func scalarValue(literal string) (any, error) {
	if strings.Contains(literal, ".") {
		f, err := strconv.ParseFloat(literal, 64)
		if err != nil {
			return nil, err
		}
		return f, nil
	}
	n, err := strconv.ParseInt(literal, 10, 64)
	if err != nil {
		return nil, err
	}
	return n, nil
}
