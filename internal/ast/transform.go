// Tree transformation infrastructure: rebuild-on-change traversal.
package ast

// Transform produces a new tree with the visitor's rewrites applied.
// Children are transformed before their parent is offered to the
// visitor (post-order), and a node whose subtree did not change is
// reused as is, so untouched regions of the input tree are shared with
// the output. The input tree is never modified.
//
// ClassType back-references are deliberately not descended into: the
// referenced class lives elsewhere in the same tree and following the
// link would revisit it (or cycle, once resolution has run).
func Transform(n Node, v Visitor) Node {
	if n == nil {
		return nil
	}
	rebuilt := transformChildren(n, v)
	if r := rebuilt.Accept(v); r != nil {
		return r
	}
	return rebuilt
}

// TransformType is Transform narrowed to type expressions.
func TransformType(t Type, v Visitor) Type {
	r, _ := transformType(t, v)
	return r
}

func transformChildren(n Node, v Visitor) Node {
	switch n := n.(type) {
	case *Module:
		constants, c1 := transformSlice(n.Constants, v)
		functions, c2 := transformSlice(n.Functions, v)
		classes, c3 := transformSlice(n.Classes, v)
		if !c1 && !c2 && !c3 {
			return n
		}
		return &Module{
			Constants: constants,
			Functions: functions,
			Classes:   classes,
			Modules:   n.Modules,
		}

	case *Constant:
		typ, changed := transformType(n.Type, v)
		if !changed {
			return n
		}
		return &Constant{Name: n.Name, Type: typ}

	case *Class:
		parents, c1 := transformSlice(n.Parents, v)
		methods, c2 := transformSlice(n.Methods, v)
		constants, c3 := transformSlice(n.Constants, v)
		template, c4 := transformSlice(n.Template, v)
		if !c1 && !c2 && !c3 && !c4 {
			return n
		}
		return &Class{
			Name:      n.Name,
			Parents:   parents,
			Methods:   methods,
			Constants: constants,
			Template:  template,
		}

	case *Function:
		signatures, changed := transformSlice(n.Signatures, v)
		if !changed {
			return n
		}
		return &Function{Name: n.Name, Signatures: signatures}

	case *Signature:
		params, c1 := transformSlice(n.Params, v)
		ret, c2 := transformType(n.ReturnType, v)
		exceptions, c3 := transformSlice(n.Exceptions, v)
		template, c4 := transformSlice(n.Template, v)
		if !c1 && !c2 && !c3 && !c4 {
			return n
		}
		return &Signature{
			Params:      params,
			ReturnType:  ret,
			Exceptions:  exceptions,
			Template:    template,
			HasOptional: n.HasOptional,
			Docstring:   n.Docstring,
		}

	case *Parameter:
		typ, changed := transformType(n.Type, v)
		if !changed {
			return n
		}
		return &Parameter{Name: n.Name, Type: typ}

	case *MutableParameter:
		typ, c1 := transformType(n.Type, v)
		newType, c2 := transformType(n.NewType, v)
		if !c1 && !c2 {
			return n
		}
		return &MutableParameter{Name: n.Name, Type: typ, NewType: newType}

	case *TemplateItem:
		within, changed := transformType(n.WithinType, v)
		if !changed {
			return n
		}
		return &TemplateItem{Name: n.Name, WithinType: within, Level: n.Level}

	case *UnionType:
		types, changed := transformSlice(n.Types, v)
		if !changed {
			return n
		}
		return &UnionType{Types: types}

	case *IntersectionType:
		types, changed := transformSlice(n.Types, v)
		if !changed {
			return n
		}
		return &IntersectionType{Types: types}

	case *HomogeneousContainerType:
		base, c1 := transformType(n.Base, v)
		elem, c2 := transformType(n.Element, v)
		if !c1 && !c2 {
			return n
		}
		return &HomogeneousContainerType{Base: base, Element: elem}

	case *GenericType:
		base, c1 := transformType(n.Base, v)
		params, c2 := transformSlice(n.Parameters, v)
		if !c1 && !c2 {
			return n
		}
		return &GenericType{Base: base, Parameters: params}

	default:
		// NamedType, NativeType, ClassType, UnknownType, NothingType
		// and Scalar have no owned children.
		return n
	}
}

// transformSlice maps Transform over a slice of nodes, reporting
// whether any element was replaced. The visitor must return a node
// assignable to the element kind of the slice; a mismatch is a
// programming error in the visitor and panics on the type assertion.
func transformSlice[T Node](nodes []T, v Visitor) ([]T, bool) {
	changed := false
	out := make([]T, len(nodes))
	for i, n := range nodes {
		r := Transform(n, v).(T)
		out[i] = r
		if Node(r) != Node(n) {
			changed = true
		}
	}
	if !changed {
		return nodes, false
	}
	return out, true
}

func transformType(t Type, v Visitor) (Type, bool) {
	if t == nil {
		return nil, false
	}
	r := Transform(t, v).(Type)
	return r, r != t
}
