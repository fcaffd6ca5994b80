// Package ast defines the syntax tree for pytd type declaration files.
//
// Nodes are built once by the parser and never mutated afterwards; two
// nodes with equal field values are interchangeable. The one exception
// is ClassType, whose back-reference is filled in by a later resolution
// pass and is documented on the type itself.
package ast

import (
	"fmt"
	"strings"
)

// Node is the base interface for all AST nodes.
type Node interface {
	// String returns a compact, human-readable representation of the
	// node. It is meant for debugging and error messages; use the
	// format package to render canonical source text.
	String() string
	// Accept dispatches to the per-kind method of the visitor.
	Accept(v Visitor) Node
}

// Type is implemented by every type-expression node.
type Type interface {
	Node
	typeNode() // Marker method to distinguish type expressions
}

// Param is implemented by Parameter and MutableParameter.
type Param interface {
	Node
	ParamName() string
	ParamType() Type
}

// Module is the root node of a parsed file. It holds the module's
// constants, functions and classes, plus a name-to-submodule mapping
// (always empty after parsing; populated by later passes).
type Module struct {
	Constants []*Constant
	Functions []*Function
	Classes   []*Class
	Modules   map[string]*Module
}

func (m *Module) String() string {
	return fmt.Sprintf("module(%d constants, %d functions, %d classes)",
		len(m.Constants), len(m.Functions), len(m.Classes))
}
func (m *Module) Accept(v Visitor) Node { return v.VisitModule(m) }

// Lookup finds a constant, function or class by name at module scope.
func (m *Module) Lookup(name string) (Node, bool) {
	for _, c := range m.Constants {
		if c.Name == name {
			return c, true
		}
	}
	for _, f := range m.Functions {
		if f.Name == name {
			return f, true
		}
	}
	for _, c := range m.Classes {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// Constant is a typed module-level or class-level constant.
type Constant struct {
	Name string
	Type Type
}

func (c *Constant) String() string        { return fmt.Sprintf("%s: %s", c.Name, c.Type) }
func (c *Constant) Accept(v Visitor) Node { return v.VisitConstant(c) }

// Class is a class declaration with its supertypes, members and
// generic template parameters.
type Class struct {
	Name      string
	Parents   []Type
	Methods   []*Function
	Constants []*Constant
	Template  []*TemplateItem
}

func (c *Class) String() string        { return fmt.Sprintf("class %s", c.Name) }
func (c *Class) Accept(v Visitor) Node { return v.VisitClass(c) }

// Lookup finds a method or constant by name in the class namespace.
func (c *Class) Lookup(name string) (Node, bool) {
	for _, f := range c.Methods {
		if f.Name == name {
			return f, true
		}
	}
	for _, k := range c.Constants {
		if k.Name == name {
			return k, true
		}
	}
	return nil, false
}

// Function is a named function or method. Overloaded declarations are
// grouped into one Function holding every signature in source order.
type Function struct {
	Name       string
	Signatures []*Signature
}

func (f *Function) String() string        { return fmt.Sprintf("def %s", f.Name) }
func (f *Function) Accept(v Visitor) Node { return v.VisitFunction(f) }

// Signature is one parameter/return/exception combination of a
// function. HasOptional records a trailing "..." in the parameter
// list. Docstring carries the optional @-string verbatim and is unused
// beyond round-tripping.
type Signature struct {
	Params      []Param
	ReturnType  Type
	Exceptions  []Type
	Template    []*TemplateItem
	HasOptional bool
	Docstring   string
}

func (s *Signature) String() string {
	parts := make([]string, 0, len(s.Params)+1)
	for _, p := range s.Params {
		parts = append(parts, p.String())
	}
	if s.HasOptional {
		parts = append(parts, "...")
	}
	return fmt.Sprintf("(%s) -> %s", strings.Join(parts, ", "), s.ReturnType)
}
func (s *Signature) Accept(v Visitor) Node { return v.VisitSignature(s) }
func (s *Signature) typeNode()             {}

// Parameter is a formal parameter of a signature.
type Parameter struct {
	Name string
	Type Type
}

func (p *Parameter) String() string        { return fmt.Sprintf("%s: %s", p.Name, p.Type) }
func (p *Parameter) Accept(v Visitor) Node { return v.VisitParameter(p) }
func (p *Parameter) ParamName() string     { return p.Name }
func (p *Parameter) ParamType() Type       { return p.Type }

// MutableParameter is a parameter whose declared type changes to
// NewType as an observable effect of calling the function. It is
// produced only by the mutator rewrite, never directly by the grammar.
type MutableParameter struct {
	Name    string
	Type    Type
	NewType Type
}

func (p *MutableParameter) String() string {
	return fmt.Sprintf("%s: %s := %s", p.Name, p.Type, p.NewType)
}
func (p *MutableParameter) Accept(v Visitor) Node { return v.VisitMutableParameter(p) }
func (p *MutableParameter) ParamName() string     { return p.Name }
func (p *MutableParameter) ParamType() Type       { return p.Type }

// TemplateItem is one generic type parameter of a class or signature,
// "name extends bound". Level is always zero at parse time; a later
// pass records how many scopes up the name was bound.
type TemplateItem struct {
	Name       string
	WithinType Type
	Level      int
}

func (t *TemplateItem) String() string {
	if n, ok := t.WithinType.(*NamedType); ok && n.Name == "object" {
		return t.Name
	}
	return fmt.Sprintf("%s extends %s", t.Name, t.WithinType)
}
func (t *TemplateItem) Accept(v Visitor) Node { return v.VisitTemplateItem(t) }

// NamedType is a type referenced by name, not yet resolved.
type NamedType struct {
	Name string
}

func (t *NamedType) String() string        { return t.Name }
func (t *NamedType) Accept(v Visitor) Node { return v.VisitNamedType(t) }
func (t *NamedType) typeNode()             {}

// NativeType is a type backed by a host runtime type. The parser never
// constructs one; runtime checking passes introduce it.
type NativeType struct {
	Name string
}

func (t *NativeType) String() string        { return t.Name }
func (t *NativeType) Accept(v Visitor) Node { return v.VisitNativeType(t) }
func (t *NativeType) typeNode()             {}

// ClassType names a class and, once resolved, points back at its
// declaration. The Class field is the single mutable back-reference in
// the tree: the parser always leaves it nil, a later resolution pass
// fills it in, and visitors never descend through it because the
// target lives elsewhere in the same tree.
type ClassType struct {
	Name  string
	Class *Class
}

func (t *ClassType) String() string {
	if t.Class != nil {
		return t.Class.Name
	}
	return t.Name
}
func (t *ClassType) Accept(v Visitor) Node { return v.VisitClassType(t) }
func (t *ClassType) typeNode()             {}

// UnknownType is the "anything, not yet known" marker, written "?".
type UnknownType struct{}

func (t *UnknownType) String() string        { return "?" }
func (t *UnknownType) Accept(v Visitor) Node { return v.VisitUnknownType(t) }
func (t *UnknownType) typeNode()             {}

// NothingType is the uninhabited type: no instances. Used for empty
// containers and functions that never return.
type NothingType struct{}

func (t *NothingType) String() string        { return "nothing" }
func (t *NothingType) Accept(v Visitor) Node { return v.VisitNothingType(t) }
func (t *NothingType) typeNode()             {}

// Scalar is a literal value used as a type, e.g. an enum tag. Value is
// a string, int64 or float64.
type Scalar struct {
	Value any
}

func (t *Scalar) String() string        { return fmt.Sprintf("%v", t.Value) }
func (t *Scalar) Accept(v Visitor) Node { return v.VisitScalar(t) }
func (t *Scalar) typeNode()             {}

// UnionType is "a or b". The member list is ordered and duplicate
// tolerant.
type UnionType struct {
	Types []Type
}

func (t *UnionType) String() string        { return joinTypes(t.Types, " or ") }
func (t *UnionType) Accept(v Visitor) Node { return v.VisitUnionType(t) }
func (t *UnionType) typeNode()             {}

// IntersectionType is "a and b".
type IntersectionType struct {
	Types []Type
}

func (t *IntersectionType) String() string        { return joinTypes(t.Types, " and ") }
func (t *IntersectionType) Accept(v Visitor) Node { return v.VisitIntersectionType(t) }
func (t *IntersectionType) typeNode()             {}

// HomogeneousContainerType is a generic with exactly one type
// parameter and no trailing comma, e.g. list<int>.
type HomogeneousContainerType struct {
	Base    Type
	Element Type
}

func (t *HomogeneousContainerType) String() string {
	return fmt.Sprintf("%s<%s>", t.Base, t.Element)
}
func (t *HomogeneousContainerType) Accept(v Visitor) Node { return v.VisitHomogeneousContainerType(t) }
func (t *HomogeneousContainerType) typeNode()             {}

// GenericType is a parameterized type, e.g. dict<str, int>. A single
// parameter followed by a trailing comma also lands here rather than
// in HomogeneousContainerType.
type GenericType struct {
	Base       Type
	Parameters []Type
}

func (t *GenericType) String() string {
	return fmt.Sprintf("%s<%s>", t.Base, joinTypes(t.Parameters, ", "))
}
func (t *GenericType) Accept(v Visitor) Node { return v.VisitGenericType(t) }
func (t *GenericType) typeNode()             {}

func joinTypes(types []Type, sep string) string {
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = t.String()
	}
	return strings.Join(parts, sep)
}
