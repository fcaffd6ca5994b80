package ast

import (
	"testing"
)

// TestTypeStrings tests the debug rendering of type-expression nodes.
func TestTypeStrings(t *testing.T) {
	tests := []struct {
		node     Node
		expected string
	}{
		{&NamedType{Name: "int"}, "int"},
		{&UnknownType{}, "?"},
		{&NothingType{}, "nothing"},
		{&Scalar{Value: int64(42)}, "42"},
		{&Scalar{Value: "red"}, "red"},
		{&UnionType{Types: []Type{&NamedType{Name: "a"}, &NamedType{Name: "b"}}}, "a or b"},
		{&IntersectionType{Types: []Type{&NamedType{Name: "a"}, &NamedType{Name: "b"}}}, "a and b"},
		{&HomogeneousContainerType{Base: &NamedType{Name: "list"}, Element: &NamedType{Name: "int"}}, "list<int>"},
		{&GenericType{
			Base:       &NamedType{Name: "dict"},
			Parameters: []Type{&NamedType{Name: "str"}, &NamedType{Name: "int"}},
		}, "dict<str, int>"},
		{&Parameter{Name: "x", Type: &NamedType{Name: "int"}}, "x: int"},
		{&MutableParameter{
			Name:    "x",
			Type:    &NamedType{Name: "int"},
			NewType: &NamedType{Name: "str"},
		}, "x: int := str"},
		{&Constant{Name: "MAX", Type: &NamedType{Name: "int"}}, "MAX: int"},
		{&TemplateItem{Name: "T", WithinType: &NamedType{Name: "object"}}, "T"},
		{&TemplateItem{Name: "T", WithinType: &NamedType{Name: "int"}}, "T extends int"},
	}

	for i, tt := range tests {
		if got := tt.node.String(); got != tt.expected {
			t.Errorf("tests[%d] - String() = %q, want %q", i, got, tt.expected)
		}
	}
}

// TestModuleLookup tests name lookup across all three module-scope kinds.
func TestModuleLookup(t *testing.T) {
	module := &Module{
		Constants: []*Constant{{Name: "MAX", Type: &NamedType{Name: "int"}}},
		Functions: []*Function{{Name: "f", Signatures: []*Signature{{ReturnType: &UnknownType{}}}}},
		Classes:   []*Class{{Name: "Foo"}},
	}

	if n, ok := module.Lookup("MAX"); !ok {
		t.Error("Lookup(MAX) failed")
	} else if _, isConst := n.(*Constant); !isConst {
		t.Errorf("Lookup(MAX) = %T, want *Constant", n)
	}

	if n, ok := module.Lookup("f"); !ok {
		t.Error("Lookup(f) failed")
	} else if _, isFunc := n.(*Function); !isFunc {
		t.Errorf("Lookup(f) = %T, want *Function", n)
	}

	if n, ok := module.Lookup("Foo"); !ok {
		t.Error("Lookup(Foo) failed")
	} else if _, isClass := n.(*Class); !isClass {
		t.Errorf("Lookup(Foo) = %T, want *Class", n)
	}

	if _, ok := module.Lookup("missing"); ok {
		t.Error("Lookup(missing) succeeded, want miss")
	}
}

// TestClassLookup tests method and constant lookup in a class namespace.
func TestClassLookup(t *testing.T) {
	cls := &Class{
		Name:      "Foo",
		Methods:   []*Function{{Name: "bar"}},
		Constants: []*Constant{{Name: "baz", Type: &NamedType{Name: "int"}}},
	}

	if _, ok := cls.Lookup("bar"); !ok {
		t.Error("Lookup(bar) failed")
	}
	if _, ok := cls.Lookup("baz"); !ok {
		t.Error("Lookup(baz) failed")
	}
	if _, ok := cls.Lookup("qux"); ok {
		t.Error("Lookup(qux) succeeded, want miss")
	}
}

// TestClassTypeResolution tests the unresolved and resolved renderings.
func TestClassTypeResolution(t *testing.T) {
	ct := &ClassType{Name: "Foo"}
	if ct.String() != "Foo" {
		t.Errorf("unresolved ClassType String() = %q, want %q", ct.String(), "Foo")
	}

	ct.Class = &Class{Name: "Foo"}
	if ct.String() != "Foo" {
		t.Errorf("resolved ClassType String() = %q, want %q", ct.String(), "Foo")
	}
}

// TestSignatureString tests the debug rendering of a full signature.
func TestSignatureString(t *testing.T) {
	sig := &Signature{
		Params: []Param{
			&Parameter{Name: "x", Type: &NamedType{Name: "int"}},
			&Parameter{Name: "y", Type: &NamedType{Name: "str"}},
		},
		ReturnType:  &NamedType{Name: "bool"},
		HasOptional: true,
	}

	expected := "(x: int, y: str, ...) -> bool"
	if got := sig.String(); got != expected {
		t.Errorf("Signature String() = %q, want %q", got, expected)
	}
}
