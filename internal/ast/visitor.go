// Visitor pattern for pytd tree traversal and rewriting.
package ast

// Visitor is implemented by tree-rewriting passes. Each method may
// return a replacement for the visited node, or nil to keep it
// unchanged. Use Transform to apply a visitor over a whole tree;
// calling Accept directly visits a single node without descending.
type Visitor interface {
	VisitModule(node *Module) Node
	VisitConstant(node *Constant) Node
	VisitClass(node *Class) Node
	VisitFunction(node *Function) Node
	VisitSignature(node *Signature) Node
	VisitParameter(node *Parameter) Node
	VisitMutableParameter(node *MutableParameter) Node
	VisitTemplateItem(node *TemplateItem) Node

	// Type-expression visitors.
	VisitNamedType(node *NamedType) Node
	VisitNativeType(node *NativeType) Node
	VisitClassType(node *ClassType) Node
	VisitUnknownType(node *UnknownType) Node
	VisitNothingType(node *NothingType) Node
	VisitScalar(node *Scalar) Node
	VisitUnionType(node *UnionType) Node
	VisitIntersectionType(node *IntersectionType) Node
	VisitHomogeneousContainerType(node *HomogeneousContainerType) Node
	VisitGenericType(node *GenericType) Node
}

// BaseVisitor keeps every node unchanged. Concrete visitors embed it
// and override only the methods for the kinds they rewrite.
type BaseVisitor struct{}

func (BaseVisitor) VisitModule(node *Module) Node                     { return nil }
func (BaseVisitor) VisitConstant(node *Constant) Node                 { return nil }
func (BaseVisitor) VisitClass(node *Class) Node                       { return nil }
func (BaseVisitor) VisitFunction(node *Function) Node                 { return nil }
func (BaseVisitor) VisitSignature(node *Signature) Node               { return nil }
func (BaseVisitor) VisitParameter(node *Parameter) Node               { return nil }
func (BaseVisitor) VisitMutableParameter(node *MutableParameter) Node { return nil }
func (BaseVisitor) VisitTemplateItem(node *TemplateItem) Node         { return nil }
func (BaseVisitor) VisitNamedType(node *NamedType) Node               { return nil }
func (BaseVisitor) VisitNativeType(node *NativeType) Node             { return nil }
func (BaseVisitor) VisitClassType(node *ClassType) Node               { return nil }
func (BaseVisitor) VisitUnknownType(node *UnknownType) Node           { return nil }
func (BaseVisitor) VisitNothingType(node *NothingType) Node           { return nil }
func (BaseVisitor) VisitScalar(node *Scalar) Node                     { return nil }
func (BaseVisitor) VisitUnionType(node *UnionType) Node               { return nil }
func (BaseVisitor) VisitIntersectionType(node *IntersectionType) Node { return nil }
func (BaseVisitor) VisitHomogeneousContainerType(node *HomogeneousContainerType) Node {
	return nil
}
func (BaseVisitor) VisitGenericType(node *GenericType) Node { return nil }
