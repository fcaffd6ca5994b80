package format

import (
	"fmt"
	"strconv"
	"strings"

	gfn "github.com/panyam/goutils/fn"

	"github.com/mvcisback/pytypedecl/internal/ast"
	"github.com/mvcisback/pytypedecl/internal/lexer"
)

// PrintOptions controls canonical rendering of pytd trees.
type PrintOptions struct {
	// IndentSize is the number of spaces per indentation level.
	IndentSize int
}

// DefaultPrintOptions returns the canonical style: four-space indents.
func DefaultPrintOptions() PrintOptions {
	return PrintOptions{IndentSize: 4}
}

// Printer renders pytd trees to canonical source text. Rendering a
// parsed tree and re-parsing the output yields a structurally equal
// tree.
type Printer struct {
	options PrintOptions
	buffer  strings.Builder
	indent  int
}

// NewPrinter creates a printer with the given options.
func NewPrinter(options PrintOptions) *Printer {
	return &Printer{options: options}
}

// Print renders a node using the default options.
func Print(node ast.Node) string {
	return NewPrinter(DefaultPrintOptions()).Print(node)
}

// Print renders the node to canonical pytd source text. Top-level
// declarations come out grouped (constants, then functions, then
// classes) with one blank line between groups; overloaded functions
// print one def per signature.
func (p *Printer) Print(node ast.Node) string {
	p.buffer.Reset()
	p.indent = 0

	switch n := node.(type) {
	case *ast.Module:
		p.printModule(n)
	case *ast.Class:
		p.printClass(n)
	case *ast.Function:
		p.printFunction(n)
	case *ast.Constant:
		p.writeLine(constantString(n))
	case ast.Type:
		p.buffer.WriteString(typeString(n))
	default:
		p.buffer.WriteString(node.String())
	}
	return p.buffer.String()
}

func (p *Printer) writeLine(line string) {
	if line != "" {
		p.buffer.WriteString(strings.Repeat(" ", p.indent*p.options.IndentSize))
		p.buffer.WriteString(line)
	}
	p.buffer.WriteString("\n")
}

func (p *Printer) printModule(m *ast.Module) {
	first := true
	separate := func() {
		if !first {
			p.buffer.WriteString("\n")
		}
		first = false
	}

	if len(m.Constants) > 0 {
		separate()
		for _, c := range m.Constants {
			p.writeLine(constantString(c))
		}
	}
	for _, f := range m.Functions {
		separate()
		p.printFunction(f)
	}
	for _, c := range m.Classes {
		separate()
		p.printClass(c)
	}
}

func (p *Printer) printClass(c *ast.Class) {
	header := "class "
	if t := templateString(c.Template); t != "" {
		header += t + " "
	}
	header += quoteName(c.Name)
	if len(c.Parents) > 0 {
		header += "(" + strings.Join(gfn.Map(c.Parents, typeString), ", ") + ")"
	}
	p.writeLine(header + ":")

	p.indent++
	if len(c.Constants) == 0 && len(c.Methods) == 0 {
		p.writeLine("pass")
	} else {
		for _, konst := range c.Constants {
			p.writeLine(constantString(konst))
		}
		for _, m := range c.Methods {
			p.printFunction(m)
		}
	}
	p.indent--
}

func (p *Printer) printFunction(f *ast.Function) {
	for _, sig := range f.Signatures {
		p.printSignature(f.Name, sig)
	}
}

func (p *Printer) printSignature(name string, sig *ast.Signature) {
	var b strings.Builder
	b.WriteString("def ")
	if t := templateString(sig.Template); t != "" {
		b.WriteString(t)
		b.WriteString(" ")
	}
	b.WriteString(quoteName(name))
	b.WriteString("(")
	parts := gfn.Map(sig.Params, paramString)
	if sig.HasOptional {
		parts = append(parts, "...")
	}
	b.WriteString(strings.Join(parts, ", "))
	b.WriteString(")")
	if sig.ReturnType != nil {
		if _, unknown := sig.ReturnType.(*ast.UnknownType); !unknown {
			b.WriteString(" -> ")
			b.WriteString(typeString(sig.ReturnType))
		}
	}
	if len(sig.Exceptions) > 0 {
		b.WriteString(" raises ")
		b.WriteString(strings.Join(gfn.Map(sig.Exceptions, typeString), ", "))
	}
	if sig.Docstring != "" {
		b.WriteString(" @ ")
		b.WriteString(quoteString(sig.Docstring))
	}

	mutators := mutatorLines(sig)
	if len(mutators) == 0 {
		p.writeLine(b.String())
		return
	}
	p.writeLine(b.String() + ":")
	p.indent++
	for _, m := range mutators {
		p.writeLine(m)
	}
	p.indent--
}

// mutatorLines recovers the "name := type" body statements from the
// mutable parameters of a signature, in parameter order.
func mutatorLines(sig *ast.Signature) []string {
	var lines []string
	for _, param := range sig.Params {
		if mp, ok := param.(*ast.MutableParameter); ok {
			lines = append(lines, quoteName(mp.Name)+" := "+typeString(mp.NewType))
		}
	}
	return lines
}

func constantString(c *ast.Constant) string {
	return quoteName(c.Name) + ": " + typeString(c.Type)
}

// paramString omits the ": object" annotation, the implied type of an
// unannotated parameter.
func paramString(param ast.Param) string {
	name := quoteName(param.ParamName())
	t := param.ParamType()
	if named, ok := t.(*ast.NamedType); ok && named.Name == "object" {
		return name
	}
	return name + ": " + typeString(t)
}

func templateString(items []*ast.TemplateItem) string {
	if len(items) == 0 {
		return ""
	}
	return "<" + strings.Join(gfn.Map(items, templateItemString), ", ") + ">"
}

// templateItemString omits the "extends object" bound, the implied
// bound of a bare template parameter.
func templateItemString(item *ast.TemplateItem) string {
	s := quoteName(item.Name)
	if named, ok := item.WithinType.(*ast.NamedType); ok && named.Name == "object" {
		return s
	}
	if item.WithinType != nil {
		s += " extends " + typeString(item.WithinType)
	}
	return s
}

func typeString(t ast.Type) string {
	switch n := t.(type) {
	case nil:
		return "?"
	case *ast.NamedType:
		return quoteName(n.Name)
	case *ast.NativeType:
		return n.Name
	case *ast.ClassType:
		return quoteName(n.Name)
	case *ast.UnknownType:
		return "?"
	case *ast.NothingType:
		return "nothing"
	case *ast.Scalar:
		return scalarString(n.Value)
	case *ast.UnionType:
		return strings.Join(gfn.Map(n.Types, unionMemberString), " or ")
	case *ast.IntersectionType:
		return strings.Join(gfn.Map(n.Types, intersectionMemberString), " and ")
	case *ast.HomogeneousContainerType:
		return typeString(n.Base) + "<" + typeString(n.Element) + ">"
	case *ast.GenericType:
		params := gfn.Map(n.Parameters, typeString)
		// The trailing comma keeps a one-parameter instantiation
		// distinct from the homogeneous container form.
		if len(params) == 1 {
			return typeString(n.Base) + "<" + params[0] + ",>"
		}
		return typeString(n.Base) + "<" + strings.Join(params, ", ") + ">"
	default:
		return t.String()
	}
}

// unionMemberString parenthesizes nested unions so they survive the
// flattening a bare "a or b or c" undergoes. Intersections bind
// tighter than unions and need no parentheses here.
func unionMemberString(t ast.Type) string {
	if _, ok := t.(*ast.UnionType); ok {
		return "(" + typeString(t) + ")"
	}
	return typeString(t)
}

func intersectionMemberString(t ast.Type) string {
	switch t.(type) {
	case *ast.UnionType, *ast.IntersectionType:
		return "(" + typeString(t) + ")"
	}
	return typeString(t)
}

func scalarString(v any) string {
	switch s := v.(type) {
	case string:
		return quoteString(s)
	case int64:
		return strconv.FormatInt(s, 10)
	case float64:
		out := strconv.FormatFloat(s, 'f', -1, 64)
		if !strings.Contains(out, ".") {
			out += ".0"
		}
		return out
	default:
		return fmt.Sprintf("%v", v)
	}
}

// quoteName backtick-quotes names that the lexer would not read back
// as a plain NAME: reserved words and names with characters outside
// the identifier alphabet.
func quoteName(name string) string {
	if lexer.LookupKeyword(name) != lexer.TokenName || !isPlainName(name) {
		return "`" + name + "`"
	}
	return name
}

func isPlainName(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '_':
		case c >= '0' && c <= '9', c == '.':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func quoteString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '"' || c == '\\' {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
	b.WriteByte('"')
	return b.String()
}
