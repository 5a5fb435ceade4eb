// Copyright (c) 2024 Michael D Henderson. All rights reserved.

package rast

// ====== Expr Interface ======

// Expr is implemented by every RAST node variant.
type Expr interface {
	ExprType() string
}

// ====== Leaf Nodes ======

type Int struct {
	Value int64
}

type Float struct {
	Value float64
}

type String struct {
	Value string
}

// Path is a resolved path value: absolute or home-prefixed. Absolute and
// relative literals are canonicalized (no "." or ".." segments, no
// redundant separators); a "~/" literal is the home path joined with the
// rest of the literal as written.
type Path struct {
	Value string
}

type Var struct {
	Name string
}

// ====== Compound Nodes ======

type Select struct {
	Subject   Expr
	OrDefault Expr // nil when no `or` default
	Path      []AttrName
}

type OpHasAttr struct {
	Subject Expr
	Path    []AttrName
}

// Attrs is an attribute set. Attrs is sorted ascending by name (byte
// order) with unique names; DynamicAttrs keeps source order.
type Attrs struct {
	Rec          bool
	Attrs        []AttrDef
	DynamicAttrs []DynamicAttrDef
}

type List struct {
	Items []Expr
}

type Lambda struct {
	Arg     string // "" when the lambda has no named argument
	Formals *Formals
	Body    Expr
}

// Call is a fully flattened n-ary application: Fun is never itself a
// Call, and Args is non-empty.
type Call struct {
	Fun  Expr
	Args []Expr
}

// Let binds Attrs (always an *Attrs) in Body.
type Let struct {
	Attrs Expr
	Body  Expr
}

type With struct {
	Attrs Expr
	Body  Expr
}

type If struct {
	Cond Expr
	Then Expr
	Else Expr
}

type Assert struct {
	Cond Expr
	Body Expr
}

// ====== Operators ======

type OpNot struct {
	Expr Expr
}

type OpEq struct{ Lhs, Rhs Expr }

type OpNEq struct{ Lhs, Rhs Expr }

type OpAnd struct{ Lhs, Rhs Expr }

type OpOr struct{ Lhs, Rhs Expr }

type OpImpl struct{ Lhs, Rhs Expr }

type OpUpdate struct{ Lhs, Rhs Expr }

type OpConcatLists struct{ Lhs, Rhs Expr }

// OpConcatStrings is string/path concatenation. ForceString is true only
// for string interpolation; addition and path interpolation leave it
// false. Es has at least two elements, except for a string that is one
// lone interpolation ("${x}"), which yields a single element.
type OpConcatStrings struct {
	ForceString bool
	Es          []Expr
}

func (e *Int) ExprType() string             { return "Int" }
func (e *Float) ExprType() string           { return "Float" }
func (e *String) ExprType() string          { return "String" }
func (e *Path) ExprType() string            { return "Path" }
func (e *Var) ExprType() string             { return "Var" }
func (e *Select) ExprType() string          { return "Select" }
func (e *OpHasAttr) ExprType() string       { return "OpHasAttr" }
func (e *Attrs) ExprType() string           { return "Attrs" }
func (e *List) ExprType() string            { return "List" }
func (e *Lambda) ExprType() string          { return "Lambda" }
func (e *Call) ExprType() string            { return "Call" }
func (e *Let) ExprType() string             { return "Let" }
func (e *With) ExprType() string            { return "With" }
func (e *If) ExprType() string              { return "If" }
func (e *Assert) ExprType() string          { return "Assert" }
func (e *OpNot) ExprType() string           { return "OpNot" }
func (e *OpEq) ExprType() string            { return "OpEq" }
func (e *OpNEq) ExprType() string           { return "OpNEq" }
func (e *OpAnd) ExprType() string           { return "OpAnd" }
func (e *OpOr) ExprType() string            { return "OpOr" }
func (e *OpImpl) ExprType() string          { return "OpImpl" }
func (e *OpUpdate) ExprType() string        { return "OpUpdate" }
func (e *OpConcatLists) ExprType() string   { return "OpConcatLists" }
func (e *OpConcatStrings) ExprType() string { return "OpConcatStrings" }

// ====== Attribute Definitions ======

// AttrName is one part of a select or has-attr path: a static symbol or a
// dynamic expression. Expr == nil means symbol.
type AttrName struct {
	Sym  string
	Expr Expr
}

// Symbol returns a static attribute name.
func Symbol(name string) AttrName {
	return AttrName{Sym: name}
}

// ExprName returns a dynamic attribute name.
func ExprName(expr Expr) AttrName {
	return AttrName{Expr: expr}
}

// IsSymbol reports whether the name is static.
func (n AttrName) IsSymbol() bool { return n.Expr == nil }

// AttrDef is a static attribute binding.
type AttrDef struct {
	Name      string
	Inherited bool
	Expr      Expr
}

// DynamicAttrDef is a binding whose key is not known until evaluation.
type DynamicAttrDef struct {
	NameExpr  Expr
	ValueExpr Expr
}

// Formal is one pattern entry; Default is nil when the formal has none.
type Formal struct {
	Default Expr
}

// Formals is a lambda's destructuring pattern. Entries maps parameter
// name to its optional default; iteration order is unspecified and fixed
// at serialization time by sorted keys.
type Formals struct {
	Ellipsis bool
	Entries  map[string]Formal
}
