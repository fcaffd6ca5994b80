package ast

import (
	"reflect"
	"testing"
)

// renameVisitor rewrites every NamedType with a matching name.
type renameVisitor struct {
	BaseVisitor
	from, to string
}

func (v *renameVisitor) VisitNamedType(node *NamedType) Node {
	if node.Name == v.from {
		return &NamedType{Name: v.to}
	}
	return nil
}

// TestTransformIdentity tests that a visitor with no rewrites returns
// the original tree unchanged, sharing every node.
func TestTransformIdentity(t *testing.T) {
	module := &Module{
		Constants: []*Constant{{Name: "x", Type: &NamedType{Name: "int"}}},
		Functions: []*Function{{
			Name: "f",
			Signatures: []*Signature{{
				Params:     []Param{&Parameter{Name: "a", Type: &NamedType{Name: "str"}}},
				ReturnType: &UnknownType{},
			}},
		}},
	}

	result := Transform(module, &BaseVisitor{})
	if result != Node(module) {
		t.Error("identity transform should return the original node")
	}
}

// TestTransformRewritesNestedTypes tests post-order rewriting deep in a
// signature, leaving the input tree untouched.
func TestTransformRewritesNestedTypes(t *testing.T) {
	sig := &Signature{
		Params: []Param{
			&Parameter{Name: "a", Type: &NamedType{Name: "old"}},
			&Parameter{Name: "b", Type: &NamedType{Name: "int"}},
		},
		ReturnType: &UnionType{Types: []Type{
			&NamedType{Name: "old"},
			&NothingType{},
		}},
	}

	result := Transform(sig, &renameVisitor{from: "old", to: "new"}).(*Signature)

	if got := result.Params[0].ParamType().(*NamedType).Name; got != "new" {
		t.Errorf("param type = %q, want %q", got, "new")
	}
	if got := result.ReturnType.(*UnionType).Types[0].(*NamedType).Name; got != "new" {
		t.Errorf("union member = %q, want %q", got, "new")
	}

	// The input tree is immutable.
	if sig.Params[0].ParamType().(*NamedType).Name != "old" {
		t.Error("input tree was modified")
	}

	// Untouched subtrees are shared between input and output.
	if result.Params[1] != sig.Params[1] {
		t.Error("unchanged parameter should be shared, not copied")
	}
}

// parameterRewriter substitutes a parameter by name, the same shape of
// rewrite the mutator step performs.
type parameterRewriter struct {
	BaseVisitor
	name    string
	newType Type
}

func (v *parameterRewriter) VisitParameter(node *Parameter) Node {
	if node.Name == v.name {
		return &MutableParameter{Name: node.Name, Type: node.Type, NewType: v.newType}
	}
	return nil
}

// TestTransformReplacesParameterKind tests that a Parameter can be
// swapped for a MutableParameter inside a signature's parameter list.
func TestTransformReplacesParameterKind(t *testing.T) {
	sig := &Signature{
		Params: []Param{
			&Parameter{Name: "x", Type: &NamedType{Name: "int"}},
			&Parameter{Name: "y", Type: &NamedType{Name: "str"}},
		},
		ReturnType: &UnknownType{},
	}

	rewriter := &parameterRewriter{name: "x", newType: &NamedType{Name: "str"}}
	result := Transform(sig, rewriter).(*Signature)

	mp, ok := result.Params[0].(*MutableParameter)
	if !ok {
		t.Fatalf("params[0] = %T, want *MutableParameter", result.Params[0])
	}

	expected := &MutableParameter{
		Name:    "x",
		Type:    &NamedType{Name: "int"},
		NewType: &NamedType{Name: "str"},
	}
	if !reflect.DeepEqual(mp, expected) {
		t.Errorf("params[0] = %v, want %v", mp, expected)
	}

	if _, ok := result.Params[1].(*Parameter); !ok {
		t.Errorf("params[1] = %T, want untouched *Parameter", result.Params[1])
	}
}

// classRenamer rewrites every Class node.
type classRenamer struct {
	BaseVisitor
}

func (v *classRenamer) VisitClass(node *Class) Node {
	return &Class{
		Name:      node.Name + "Renamed",
		Parents:   node.Parents,
		Methods:   node.Methods,
		Constants: node.Constants,
		Template:  node.Template,
	}
}

// TestTransformSkipsClassTypeBackReference tests that the class behind
// a ClassType back-reference is not visited through the reference.
func TestTransformSkipsClassTypeBackReference(t *testing.T) {
	cls := &Class{Name: "Foo"}
	ct := &ClassType{Name: "Foo", Class: cls}

	result := Transform(ct, &classRenamer{})

	rt, ok := result.(*ClassType)
	if !ok {
		t.Fatalf("result = %T, want *ClassType", result)
	}
	if rt.Class != cls || rt.Class.Name != "Foo" {
		t.Error("back-referenced class should not be transformed")
	}
}

// TestTransformTypeNarrowing tests the Type-typed convenience wrapper.
func TestTransformTypeNarrowing(t *testing.T) {
	union := &UnionType{Types: []Type{
		&NamedType{Name: "a"},
		&HomogeneousContainerType{Base: &NamedType{Name: "list"}, Element: &NamedType{Name: "a"}},
	}}

	result := TransformType(union, &renameVisitor{from: "a", to: "b"})

	expected := &UnionType{Types: []Type{
		&NamedType{Name: "b"},
		&HomogeneousContainerType{Base: &NamedType{Name: "list"}, Element: &NamedType{Name: "b"}},
	}}
	if !reflect.DeepEqual(result, expected) {
		t.Errorf("TransformType = %v, want %v", result, expected)
	}
}
