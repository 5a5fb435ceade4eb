// Copyright (c) 2024 Michael D Henderson. All rights reserved.

package cst

// ====== Node Interface & Kinds ======

// Node is implemented by every CST node variant.
type Node interface {
	NodeKind() string
}

// ====== Expression Nodes ======

// Apply is a function application `lambda argument`.
type Apply struct {
	Lambda   Node
	Argument Node
}

// Assert is `assert condition; body`.
type Assert struct {
	Condition Node
	Body      Node
}

// IfElse is `if condition then body else else_body`.
type IfElse struct {
	Condition Node
	Body      Node
	ElseBody  Node
}

// Select is `expr.attrpath` or `expr.attrpath or default`.
// The full dotted path is packed into one node.
type Select struct {
	Expr     Node
	Attrpath Attrpath
	Default  Node // nil when no `or` default is present
}

// HasAttr is `expr ? attrpath`.
type HasAttr struct {
	Expr     Node
	Attrpath Attrpath
}

// Str is a string literal, possibly with interpolations.
type Str struct {
	Parts []Part
}

// Path is a path literal, possibly with interpolations.
// The first part is always a LiteralPart.
type Path struct {
	Parts []Part
}

// LiteralKind_e tags the payload of a Literal node.
type LiteralKind_e int

const (
	Integer LiteralKind_e = iota
	Float
	Uri
)

// Literal is a numeric or URI literal. Exactly one of the payload
// fields is meaningful, selected by Kind.
type Literal struct {
	Kind  LiteralKind_e
	Int   int64
	Float float64
	Uri   string
}

// Lambda is `param: body`.
type Lambda struct {
	Param Param
	Body  Node
}

// LegacyLet is the obsolete `let { ... body = e; }` form.
type LegacyLet struct {
	Entries []Entry
}

// LetIn is `let entries in body`.
type LetIn struct {
	Entries []Entry
	Body    Node
}

// List is `[ items ]`.
type List struct {
	Items []Node
}

// BinOp_e enumerates binary operators in their surface form.
type BinOp_e int

const (
	Concat BinOp_e = iota
	Update
	Add
	Sub
	Mul
	Div
	And
	Or
	Equal
	NotEqual
	Implication
	Less
	LessOrEq
	More
	MoreOrEq
)

// BinOp is `lhs operator rhs`.
type BinOp struct {
	Lhs Node
	Rhs Node
	Op  BinOp_e
}

// Paren is a parenthesized expression; transparent to normalization.
type Paren struct {
	Expr Node
}

// AttrSet is `{ entries }` or `rec { entries }`.
type AttrSet struct {
	Entries   []Entry
	Recursive bool
}

// UnaryOp_e enumerates unary operators.
type UnaryOp_e int

const (
	Invert UnaryOp_e = iota
	Negate
)

// UnaryOp is `!expr` or `-expr`.
type UnaryOp struct {
	Op   UnaryOp_e
	Expr Node
}

// Ident is a bare identifier.
type Ident struct {
	Name string
}

// With is `with namespace; body`.
type With struct {
	Namespace Node
	Body      Node
}

// Root wraps the top-level expression; transparent to normalization.
type Root struct {
	Expr Node
}

func (n *Apply) NodeKind() string     { return "Apply" }
func (n *Assert) NodeKind() string    { return "Assert" }
func (n *IfElse) NodeKind() string    { return "IfElse" }
func (n *Select) NodeKind() string    { return "Select" }
func (n *HasAttr) NodeKind() string   { return "HasAttr" }
func (n *Str) NodeKind() string       { return "Str" }
func (n *Path) NodeKind() string      { return "Path" }
func (n *Literal) NodeKind() string   { return "Literal" }
func (n *Lambda) NodeKind() string    { return "Lambda" }
func (n *LegacyLet) NodeKind() string { return "LegacyLet" }
func (n *LetIn) NodeKind() string     { return "LetIn" }
func (n *List) NodeKind() string      { return "List" }
func (n *BinOp) NodeKind() string     { return "BinOp" }
func (n *Paren) NodeKind() string     { return "Paren" }
func (n *AttrSet) NodeKind() string   { return "AttrSet" }
func (n *UnaryOp) NodeKind() string   { return "UnaryOp" }
func (n *Ident) NodeKind() string     { return "Ident" }
func (n *With) NodeKind() string      { return "With" }
func (n *Root) NodeKind() string      { return "Root" }

// ====== String & Path Parts ======

// Part is one piece of a string or path literal.
type Part interface {
	isPart()
}

// LiteralPart is a run of literal text.
type LiteralPart struct {
	Text string
}

// Interpolation is a `${expr}` interpolation.
type Interpolation struct {
	Expr Node
}

func (p *LiteralPart) isPart()   {}
func (p *Interpolation) isPart() {}

// ====== Attribute Paths ======

// Attrpath is a non-empty ordered sequence of attribute parts.
type Attrpath []Attr

// Attr is one part of an attribute path.
type Attr interface {
	isAttr()
}

// AttrIdent is a bare identifier part, `x` in `a.x`.
type AttrIdent struct {
	Name string
}

// AttrStr is a string part, `"x y"` in `a."x y"`.
type AttrStr struct {
	Parts []Part
}

// AttrDynamic is a dynamic part, `${e}` in `a.${e}`.
type AttrDynamic struct {
	Expr Node
}

func (a *AttrIdent) isAttr()   {}
func (a *AttrStr) isAttr()     {}
func (a *AttrDynamic) isAttr() {}

// ====== Binding Entries ======

// Entry is a single binding in an attr set or let.
type Entry interface {
	isEntry()
}

// Inherit is `inherit a b;` or `inherit (from) a b;`.
type Inherit struct {
	From   Node // nil for the plain form
	Idents []string
}

// AttrpathValue is `attrpath = value;`.
type AttrpathValue struct {
	Attrpath Attrpath
	Value    Node
}

func (e *Inherit) isEntry()       {}
func (e *AttrpathValue) isEntry() {}

// ====== Lambda Parameters ======

// Param is the parameter form of a lambda.
type Param interface {
	isParam()
}

// IdentParam is a simple identifier parameter, `x: ...`.
type IdentParam struct {
	Name string
}

// PatEntry is one formal in a pattern, with an optional default.
type PatEntry struct {
	Name    string
	Default Node // nil when no default
}

// Pattern is a destructuring parameter, `{ a, b ? 0, ... } @ inp: ...`.
type Pattern struct {
	Entries  []PatEntry
	Ellipsis bool
	At       string // "" when no @-binding
}

func (p *IdentParam) isParam() {}
func (p *Pattern) isParam()    {}
