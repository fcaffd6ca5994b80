// Type-expression grammar: unions, intersections, generics, scalars.
package parser

import (
	"github.com/mvcisback/pytypedecl/internal/ast"
	"github.com/mvcisback/pytypedecl/internal/lexer"
)

// parseType parses a full type expression. "or" binds looser than
// "and"; both are left associative and bind looser than the commas of
// any enclosing list, so each comma-separated position holds a whole
// union.
func (p *Parser) parseType() (ast.Type, error) {
	left, err := p.parseIntersection()
	if err != nil {
		return nil, err
	}
	for p.at(lexer.TokenOr) {
		p.advance()
		right, err := p.parseIntersection()
		if err != nil {
			return nil, err
		}
		left = unionOf(left, right)
	}
	return left, nil
}

func (p *Parser) parseIntersection() (ast.Type, error) {
	left, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	for p.at(lexer.TokenAnd) {
		p.advance()
		right, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		left = intersectionOf(left, right)
	}
	return left, nil
}

// parseAtom parses the operand of a union or intersection: a name, a
// parameterized name, "?", "nothing", a literal scalar, or a
// parenthesized type expression.
func (p *Parser) parseAtom() (ast.Type, error) {
	switch p.current().Type {
	case lexer.TokenQuestion:
		p.advance()
		return &ast.UnknownType{}, nil

	case lexer.TokenNothing:
		p.advance()
		return &ast.NothingType{}, nil

	case lexer.TokenString:
		tok := p.current()
		p.advance()
		return &ast.Scalar{Value: tok.Literal}, nil

	case lexer.TokenNumber:
		tok := p.current()
		p.advance()
		value, err := scalarValue(tok.Literal)
		if err != nil {
			return nil, p.parseError()
		}
		return &ast.Scalar{Value: value}, nil

	case lexer.TokenLParen:
		// Parentheses are transparent: they group, nothing more.
		p.advance()
		inner, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.TokenRParen); err != nil {
			return nil, err
		}
		return inner, nil

	case lexer.TokenName:
		name := p.current()
		p.advance()
		if p.at(lexer.TokenLAngle) {
			return p.parseParameterized(name.Literal)
		}
		return &ast.NamedType{Name: name.Literal}, nil

	default:
		return nil, p.parseError()
	}
}

// parseParameterized parses the `< ... >` suffix of a generic type.
// The base must be a bare identifier; the parameters are full type
// expressions. Exactly one parameter with no trailing comma gives a
// HomogeneousContainerType, every other shape a GenericType.
func (p *Parser) parseParameterized(base string) (ast.Type, error) {
	if _, err := p.expect(lexer.TokenLAngle); err != nil {
		return nil, err
	}

	first, err := p.parseType()
	if err != nil {
		return nil, err
	}
	parameters := []ast.Type{first}
	trailingComma := false

	for p.at(lexer.TokenComma) {
		p.advance()
		if p.at(lexer.TokenRAngle) {
			trailingComma = true
			break
		}
		next, err := p.parseType()
		if err != nil {
			return nil, err
		}
		parameters = append(parameters, next)
	}
	if _, err := p.expect(lexer.TokenRAngle); err != nil {
		return nil, err
	}

	if len(parameters) == 1 && !trailingComma {
		return &ast.HomogeneousContainerType{
			Base:    &ast.NamedType{Name: base},
			Element: parameters[0],
		}, nil
	}
	return &ast.GenericType{
		Base:       &ast.NamedType{Name: base},
		Parameters: parameters,
	}, nil
}

// parseTypeList parses one or more comma-separated type expressions,
// as used for class parents and raises clauses.
func (p *Parser) parseTypeList() ([]ast.Type, error) {
	first, err := p.parseType()
	if err != nil {
		return nil, err
	}
	types := []ast.Type{first}
	for p.at(lexer.TokenComma) {
		p.advance()
		next, err := p.parseType()
		if err != nil {
			return nil, err
		}
		types = append(types, next)
	}
	return types, nil
}

// unionOf combines two types into a union. An existing union on one
// side absorbs a plain named type on the other; any other pairing
// nests. The asymmetry (two unions do not merge) matches the
// construction rules this language has always had, and the printer
// and tests rely on it.
func unionOf(left, right ast.Type) ast.Type {
	if u, ok := left.(*ast.UnionType); ok {
		if n, isNamed := right.(*ast.NamedType); isNamed {
			return &ast.UnionType{Types: appendType(u.Types, n)}
		}
	}
	if n, isNamed := left.(*ast.NamedType); isNamed {
		if u, ok := right.(*ast.UnionType); ok {
			return &ast.UnionType{Types: prependType(n, u.Types)}
		}
	}
	return &ast.UnionType{Types: []ast.Type{left, right}}
}

// intersectionOf is unionOf for "and", with the same one-sided
// flattening.
func intersectionOf(left, right ast.Type) ast.Type {
	if i, ok := left.(*ast.IntersectionType); ok {
		if n, isNamed := right.(*ast.NamedType); isNamed {
			return &ast.IntersectionType{Types: appendType(i.Types, n)}
		}
	}
	if n, isNamed := left.(*ast.NamedType); isNamed {
		if i, ok := right.(*ast.IntersectionType); ok {
			return &ast.IntersectionType{Types: prependType(n, i.Types)}
		}
	}
	return &ast.IntersectionType{Types: []ast.Type{left, right}}
}

func appendType(types []ast.Type, t ast.Type) []ast.Type {
	out := make([]ast.Type, 0, len(types)+1)
	out = append(out, types...)
	return append(out, t)
}

func prependType(t ast.Type, types []ast.Type) []ast.Type {
	out := make([]ast.Type, 0, len(types)+1)
	out = append(out, t)
	return append(out, types...)
}
