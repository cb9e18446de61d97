package generator

import "fmt"

// This file houses the data model shared across generator phases
// (decode -> resolve -> generate -> order -> assemble).

// DeclKind identifies the kind of a source declaration.
type DeclKind int

const (
	KindClass DeclKind = iota
	KindEnum
	KindTypeAlias
)

func (k DeclKind) String() string {
	switch k {
	case KindClass:
		return "class"
	case KindEnum:
		return "enum"
	case KindTypeAlias:
		return "typealias"
	}
	return fmt.Sprintf("DeclKind(%d)", int(k))
}

// SourceLocation points at the schema source that produced a declaration or
// property.
type SourceLocation struct {
	File string
	Line int
}

func (l SourceLocation) String() string {
	if l.File == "" {
		return "<unknown>"
	}
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

// Property is one typed member of a class declaration.
type Property struct {
	Name     string
	Type     TypeExpr
	Location SourceLocation
}

// Declaration is a class, enumeration, or type alias defined in the reflected
// schema module. Immutable once constructed from the reflected input.
type Declaration struct {
	Kind         DeclKind
	Name         string // source name as written in the schema
	Module       string // qualified name of the enclosing module
	Location     SourceLocation
	IsModuleRoot bool

	Superclass *Mapping   // classes only; nil when the class has no parent
	Properties []Property // classes only
	Cases      []string   // enums only
	Aliased    TypeExpr   // type aliases only
}

// QualifiedName is the fully qualified source name used in error payloads and
// registered identifiers: the module name for the module-root declaration,
// `Module#Name` otherwise.
func (d *Declaration) QualifiedName() string {
	if d.IsModuleRoot {
		return d.Module
	}
	return d.Module + "#" + d.Name
}

// Mapping binds one source declaration to a target identifier and a target
// namespace. Renames are applied upstream; the core only verifies uniqueness.
type Mapping struct {
	Decl      *Declaration
	Target    string
	Namespace string
}

// TypeExpr is the closed sum of type-expression shapes the renderer accepts.
// Decoding never fails on an unrecognized shape; it produces UnknownType so
// the renderer can report it with the original spelling and location.
type TypeExpr interface {
	isTypeExpr()
	// Display returns the source-facing form used in error payloads.
	Display() string
}

// PrimitiveType is a built-in schema type such as String or Int.
type PrimitiveType struct {
	Name string
}

// NullableType wraps a type that also admits null.
type NullableType struct {
	Inner TypeExpr
}

// UnionType is an ordered union of member types. Member order affects only
// readability of the output, but is preserved for determinism.
type UnionType struct {
	Members []TypeExpr
}

// DeclaredType references a declaration through its mapping.
type DeclaredType struct {
	Ref *Mapping
}

// StringLiteralType admits exactly one string value.
type StringLiteralType struct {
	Value string
}

// GenericType applies ordered type arguments to a base type.
type GenericType struct {
	Base TypeExpr
	Args []TypeExpr
}

// FunctionType describes a function value with parameter and result types.
type FunctionType struct {
	Params []TypeExpr
	Result TypeExpr
}

// UnknownType preserves an input shape the decoder does not recognize.
type UnknownType struct {
	Tag      string
	Location SourceLocation
}

func (*PrimitiveType) isTypeExpr()     {}
func (*NullableType) isTypeExpr()      {}
func (*UnionType) isTypeExpr()         {}
func (*DeclaredType) isTypeExpr()      {}
func (*StringLiteralType) isTypeExpr() {}
func (*GenericType) isTypeExpr()       {}
func (*FunctionType) isTypeExpr()      {}
func (*UnknownType) isTypeExpr()       {}

func (t *PrimitiveType) Display() string { return t.Name }

func (t *NullableType) Display() string { return t.Inner.Display() + "?" }

func (t *UnionType) Display() string {
	s := ""
	for i, m := range t.Members {
		if i > 0 {
			s += "|"
		}
		s += m.Display()
	}
	return s
}

func (t *DeclaredType) Display() string { return t.Ref.Decl.QualifiedName() }

func (t *StringLiteralType) Display() string { return fmt.Sprintf("%q", t.Value) }

func (t *GenericType) Display() string {
	s := t.Base.Display() + "<"
	for i, a := range t.Args {
		if i > 0 {
			s += ", "
		}
		s += a.Display()
	}
	return s + ">"
}

func (t *FunctionType) Display() string {
	s := "("
	for i, p := range t.Params {
		if i > 0 {
			s += ", "
		}
		s += p.Display()
	}
	return s + ") -> " + t.Result.Display()
}

func (t *UnknownType) Display() string { return t.Tag }

// generatedMember is the output of one body-generator collaborator for a
// single declaration.
type generatedMember struct {
	Name         string
	Kind         DeclKind
	Body         string
	TopLevelAux  string // optional text emitted once per namespace
	IsModuleRoot bool
	Superclass   *generatedMember // direct superclass member, same namespace only
	index        int              // original declaration order, the ordering tie-break
}

// genContext carries the per-namespace inputs each component needs, replacing
// implicitly shared state with an explicit value.
type genContext struct {
	namespace string
	mappings  []*Mapping
	indent    string
}

// ModuleInfo is one reflected module with its resolved mappings, in source
// declaration order.
type ModuleInfo struct {
	Name     string
	Mappings []*Mapping
}

// Config holds generation settings for the pklgen pipeline.
type Config struct {
	Input  string // reflected module description to load ("-" for stdin)
	Indent string // indentation unit for generated Python bodies
}

// defaultIndent is used when Config.Indent is empty.
const defaultIndent = "    "

// Generated is one assembled output document with its derived file name.
type Generated struct {
	Namespace string
	FileName  string
	Document  string
}
