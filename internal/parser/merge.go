// Overload grouping and mutator application.
package parser

import (
	"github.com/mvcisback/pytypedecl/internal/ast"
)

// NameAndSig pairs a declared function name with one signature, the
// unit the declaration grammar produces per def block.
type NameAndSig struct {
	Name      string
	Signature *ast.Signature
}

// MergeSignatures groups the collected (name, signature) pairs of one
// scope into Functions, one per distinct name. Names keep their
// first-seen order and each function's signatures keep declaration
// order. Identical signatures are not deduplicated.
func MergeSignatures(signatures []NameAndSig) []*ast.Function {
	byName := make(map[string]*ast.Function)
	var order []*ast.Function

	for _, ns := range signatures {
		fn, ok := byName[ns.Name]
		if !ok {
			fn = &ast.Function{Name: ns.Name}
			byName[ns.Name] = fn
			order = append(order, fn)
		}
		fn.Signatures = append(fn.Signatures, ns.Signature)
	}
	return order
}

// Mutator is one `name := type` statement from a def body: after the
// call, the named parameter's type becomes NewType.
type Mutator struct {
	Name    string
	NewType ast.Type
}

// mutatorVisitor substitutes the matching plain parameter with a
// MutableParameter. A parameter already made mutable by an earlier
// mutator is not matched again, and a mutator naming a parameter the
// signature lacks rewrites nothing.
type mutatorVisitor struct {
	ast.BaseVisitor
	name    string
	newType ast.Type
}

func (v *mutatorVisitor) VisitParameter(node *ast.Parameter) ast.Node {
	if node.Name == v.name {
		return &ast.MutableParameter{Name: node.Name, Type: node.Type, NewType: v.newType}
	}
	return nil
}

// applyMutators rewrites the signature once per mutator, in statement
// order.
func applyMutators(sig *ast.Signature, mutators []Mutator) *ast.Signature {
	for _, m := range mutators {
		v := &mutatorVisitor{name: m.Name, newType: m.NewType}
		sig = ast.Transform(sig, v).(*ast.Signature)
	}
	return sig
}
