// Copyright (c) 2024 Michael D Henderson. All rights reserved.

package norm

import (
	"fmt"

	"github.com/playbymail/nixdiff/cerrs"
	"github.com/playbymail/nixdiff/internal/cst"
	"github.com/playbymail/nixdiff/internal/paths"
	"github.com/playbymail/nixdiff/internal/rast"
)

// Normalize transforms a CST into the reference-canonical AST. The base
// path resolves relative path literals and the home path resolves
// "~/"-anchored literals; both must be absolute directories.
func Normalize(node cst.Node, basePath, homePath string) (rast.Expr, error) {
	n := &normalizer{basePath: basePath, homePath: homePath}
	return n.normalize(node)
}

// normalizer carries the two configuration strings. It has no other
// state; normalization is a pure function over the tree.
type normalizer struct {
	basePath string
	homePath string
}

func (n *normalizer) normalize(node cst.Node) (rast.Expr, error) {
	switch node := node.(type) {
	case *cst.Root:
		// the reference impl has no concept of a root, so discard it
		return n.normalize(node.Expr)
	case *cst.Paren:
		// the reference impl has no concept of parens either
		return n.normalize(node.Expr)
	case *cst.Ident:
		return &rast.Var{Name: node.Name}, nil
	case *cst.Literal:
		return n.normalizeLiteral(node)
	case *cst.Str:
		return n.normalizeStr(node)
	case *cst.Path:
		return n.normalizePath(node)
	case *cst.UnaryOp:
		return n.normalizeUnaryOp(node)
	case *cst.BinOp:
		return n.normalizeBinOp(node)
	case *cst.Apply:
		return n.normalizeApply(node)
	case *cst.Assert:
		return n.normalizeAssert(node)
	case *cst.IfElse:
		return n.normalizeIfElse(node)
	case *cst.With:
		return n.normalizeWith(node)
	case *cst.List:
		return n.normalizeList(node)
	case *cst.Select:
		return n.normalizeSelect(node)
	case *cst.HasAttr:
		return n.normalizeHasAttr(node)
	case *cst.Lambda:
		return n.normalizeLambda(node)
	case *cst.LetIn:
		return n.normalizeLetIn(node)
	case *cst.LegacyLet:
		return n.normalizeLegacyLet(node)
	case *cst.AttrSet:
		return n.normalizeAttrSet(node.Entries, node.Recursive)
	default:
		return nil, fmt.Errorf("%w: %s", cerrs.ErrUnhandledVariant, node.NodeKind())
	}
}

func (n *normalizer) normalizeLiteral(lit *cst.Literal) (rast.Expr, error) {
	switch lit.Kind {
	case cst.Integer:
		return &rast.Int{Value: lit.Int}, nil
	case cst.Float:
		return &rast.Float{Value: lit.Float}, nil
	case cst.Uri:
		// the reference parser flattens the legacy URI form to a string
		return &rast.String{Value: lit.Uri}, nil
	default:
		return nil, fmt.Errorf("%w: literal kind %d", cerrs.ErrUnhandledVariant, lit.Kind)
	}
}

// normalizeStr turns a string without interpolations into a plain String
// and one with interpolations into OpConcatStrings with force_string set,
// the way the reference parser does.
func (n *normalizer) normalizeStr(str *cst.Str) (rast.Expr, error) {
	if !hasInterpolation(str.Parts) {
		switch len(str.Parts) {
		case 0:
			return &rast.String{Value: ""}, nil
		case 1:
			return &rast.String{Value: str.Parts[0].(*cst.LiteralPart).Text}, nil
		default:
			return nil, fmt.Errorf("%w: Str with %d adjacent literal parts and no interpolation", cerrs.ErrProducerInvariant, len(str.Parts))
		}
	}

	es := make([]rast.Expr, 0, len(str.Parts))
	for _, part := range str.Parts {
		switch part := part.(type) {
		case *cst.LiteralPart:
			es = append(es, &rast.String{Value: part.Text})
		case *cst.Interpolation:
			e, err := n.normalize(part.Expr)
			if err != nil {
				return nil, err
			}
			es = append(es, e)
		}
	}
	return &rast.OpConcatStrings{ForceString: true, Es: es}, nil
}

func (n *normalizer) normalizeUnaryOp(op *cst.UnaryOp) (rast.Expr, error) {
	expr, err := n.normalize(op.Expr)
	if err != nil {
		return nil, err
	}
	switch op.Op {
	case cst.Invert:
		return &rast.OpNot{Expr: expr}, nil
	case cst.Negate:
		// the reference parser treats negation as subtraction from 0
		return &rast.Call{
			Fun:  &rast.Var{Name: "__sub"},
			Args: []rast.Expr{&rast.Int{Value: 0}, expr},
		}, nil
	default:
		return nil, fmt.Errorf("%w: unary %d", cerrs.ErrUnknownOperator, op.Op)
	}
}

func (n *normalizer) normalizeBinOp(op *cst.BinOp) (rast.Expr, error) {
	lhs, err := n.normalize(op.Lhs)
	if err != nil {
		return nil, err
	}
	rhs, err := n.normalize(op.Rhs)
	if err != nil {
		return nil, err
	}

	switch op.Op {
	case cst.Concat:
		return &rast.OpConcatLists{Lhs: lhs, Rhs: rhs}, nil
	case cst.Update:
		return &rast.OpUpdate{Lhs: lhs, Rhs: rhs}, nil
	case cst.Add:
		// the reference parser calls all addition "concat strings";
		// nested additions stay nested, they are never flattened here
		return &rast.OpConcatStrings{ForceString: false, Es: []rast.Expr{lhs, rhs}}, nil
	case cst.Sub:
		return builtinCall("__sub", lhs, rhs), nil
	case cst.Mul:
		return builtinCall("__mul", lhs, rhs), nil
	case cst.Div:
		return builtinCall("__div", lhs, rhs), nil
	case cst.And:
		return &rast.OpAnd{Lhs: lhs, Rhs: rhs}, nil
	case cst.Or:
		return &rast.OpOr{Lhs: lhs, Rhs: rhs}, nil
	case cst.Equal:
		return &rast.OpEq{Lhs: lhs, Rhs: rhs}, nil
	case cst.NotEqual:
		return &rast.OpNEq{Lhs: lhs, Rhs: rhs}, nil
	case cst.Implication:
		return &rast.OpImpl{Lhs: lhs, Rhs: rhs}, nil
	case cst.Less:
		return builtinCall("__lessThan", lhs, rhs), nil
	case cst.More:
		// note the argument order
		return builtinCall("__lessThan", rhs, lhs), nil
	case cst.LessOrEq:
		// negated call with the arguments flipped
		return &rast.OpNot{Expr: builtinCall("__lessThan", rhs, lhs)}, nil
	case cst.MoreOrEq:
		// negated only
		return &rast.OpNot{Expr: builtinCall("__lessThan", lhs, rhs)}, nil
	default:
		return nil, fmt.Errorf("%w: binary %d", cerrs.ErrUnknownOperator, op.Op)
	}
}

func builtinCall(name string, args ...rast.Expr) *rast.Call {
	return &rast.Call{Fun: &rast.Var{Name: name}, Args: args}
}

// normalizeApply squashes nested applications into a single n-ary call.
// The function position of a call is never itself a call.
func (n *normalizer) normalizeApply(apply *cst.Apply) (rast.Expr, error) {
	fun, err := n.normalize(apply.Lambda)
	if err != nil {
		return nil, err
	}
	arg, err := n.normalize(apply.Argument)
	if err != nil {
		return nil, err
	}
	if call, ok := fun.(*rast.Call); ok {
		call.Args = append(call.Args, arg)
		return call, nil
	}
	return &rast.Call{Fun: fun, Args: []rast.Expr{arg}}, nil
}

func (n *normalizer) normalizeAssert(assert *cst.Assert) (rast.Expr, error) {
	cond, err := n.normalize(assert.Condition)
	if err != nil {
		return nil, err
	}
	body, err := n.normalize(assert.Body)
	if err != nil {
		return nil, err
	}
	return &rast.Assert{Cond: cond, Body: body}, nil
}

func (n *normalizer) normalizeIfElse(ifElse *cst.IfElse) (rast.Expr, error) {
	cond, err := n.normalize(ifElse.Condition)
	if err != nil {
		return nil, err
	}
	then, err := n.normalize(ifElse.Body)
	if err != nil {
		return nil, err
	}
	els, err := n.normalize(ifElse.ElseBody)
	if err != nil {
		return nil, err
	}
	return &rast.If{Cond: cond, Then: then, Else: els}, nil
}

func (n *normalizer) normalizeWith(with *cst.With) (rast.Expr, error) {
	attrs, err := n.normalize(with.Namespace)
	if err != nil {
		return nil, err
	}
	body, err := n.normalize(with.Body)
	if err != nil {
		return nil, err
	}
	return &rast.With{Attrs: attrs, Body: body}, nil
}

func (n *normalizer) normalizeList(list *cst.List) (rast.Expr, error) {
	items := make([]rast.Expr, 0, len(list.Items))
	for _, item := range list.Items {
		e, err := n.normalize(item)
		if err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	return &rast.List{Items: items}, nil
}

// normalizeSelect fuses the select with its or-default; the CST already
// packs the full dotted path into one node.
func (n *normalizer) normalizeSelect(sel *cst.Select) (rast.Expr, error) {
	subject, err := n.normalize(sel.Expr)
	if err != nil {
		return nil, err
	}
	var orDefault rast.Expr
	if sel.Default != nil {
		if orDefault, err = n.normalize(sel.Default); err != nil {
			return nil, err
		}
	}
	path, err := n.normalizeAttrpath(sel.Attrpath)
	if err != nil {
		return nil, err
	}
	return &rast.Select{Subject: subject, OrDefault: orDefault, Path: path}, nil
}

func (n *normalizer) normalizeHasAttr(hasAttr *cst.HasAttr) (rast.Expr, error) {
	subject, err := n.normalize(hasAttr.Expr)
	if err != nil {
		return nil, err
	}
	path, err := n.normalizeAttrpath(hasAttr.Attrpath)
	if err != nil {
		return nil, err
	}
	return &rast.OpHasAttr{Subject: subject, Path: path}, nil
}

// normalizeAttrpath classifies each part of an attribute path. Strings
// with interpolations are dynamic, but a dynamic wrapper over a pure
// string (`${"foo"}`) is not; this asymmetry is a behavioral contract
// copied from the reference parser.
func (n *normalizer) normalizeAttrpath(attrpath cst.Attrpath) ([]rast.AttrName, error) {
	if len(attrpath) == 0 {
		return nil, cerrs.ErrEmptyAttrpath
	}
	path := make([]rast.AttrName, 0, len(attrpath))
	for _, attr := range attrpath {
		name, err := n.classifyAttr(attr)
		if err != nil {
			return nil, err
		}
		path = append(path, name)
	}
	return path, nil
}

// classifyAttr resolves one attribute-path part to a static symbol or a
// dynamic expression.
func (n *normalizer) classifyAttr(attr cst.Attr) (rast.AttrName, error) {
	switch attr := attr.(type) {
	case *cst.AttrIdent:
		// a plain identifier is definitely not dynamic
		return rast.Symbol(attr.Name), nil
	case *cst.AttrStr:
		expr, err := n.normalizeStr(&cst.Str{Parts: attr.Parts})
		if err != nil {
			return rast.AttrName{}, err
		}
		switch expr := expr.(type) {
		case *rast.String:
			return rast.Symbol(expr.Value), nil
		case *rast.OpConcatStrings:
			return rast.ExprName(expr), nil
		default:
			return rast.AttrName{}, fmt.Errorf("%w: string key normalized to %s", cerrs.ErrProducerInvariant, expr.ExprType())
		}
	case *cst.AttrDynamic:
		expr, err := n.normalize(attr.Expr)
		if err != nil {
			return rast.AttrName{}, err
		}
		// `${"foo"}` is not dynamic after all
		if s, ok := expr.(*rast.String); ok {
			return rast.Symbol(s.Value), nil
		}
		return rast.ExprName(expr), nil
	default:
		return rast.AttrName{}, fmt.Errorf("%w: attr %T", cerrs.ErrUnhandledVariant, attr)
	}
}

func (n *normalizer) normalizeLambda(lambda *cst.Lambda) (rast.Expr, error) {
	body, err := n.normalize(lambda.Body)
	if err != nil {
		return nil, err
	}

	switch param := lambda.Param.(type) {
	case *cst.IdentParam:
		return &rast.Lambda{Arg: param.Name, Body: body}, nil
	case *cst.Pattern:
		entries := make(map[string]rast.Formal, len(param.Entries))
		for _, entry := range param.Entries {
			var formal rast.Formal
			if entry.Default != nil {
				if formal.Default, err = n.normalize(entry.Default); err != nil {
					return nil, err
				}
			}
			entries[entry.Name] = formal
		}
		return &rast.Lambda{
			Arg:     param.At,
			Formals: &rast.Formals{Ellipsis: param.Ellipsis, Entries: entries},
			Body:    body,
		}, nil
	default:
		return nil, fmt.Errorf("%w: param %T", cerrs.ErrUnhandledVariant, lambda.Param)
	}
}

func (n *normalizer) normalizeLetIn(letIn *cst.LetIn) (rast.Expr, error) {
	attrs, err := n.normalizeAttrSet(letIn.Entries, false)
	if err != nil {
		return nil, err
	}
	body, err := n.normalize(letIn.Body)
	if err != nil {
		return nil, err
	}
	return &rast.Let{Attrs: attrs, Body: body}, nil
}

// normalizeLegacyLet desugars `let { ... body = e; }` to selecting body
// from an implicitly recursive attr set.
func (n *normalizer) normalizeLegacyLet(legacyLet *cst.LegacyLet) (rast.Expr, error) {
	attrs, err := n.normalizeAttrSet(legacyLet.Entries, true)
	if err != nil {
		return nil, err
	}
	return &rast.Select{
		Subject: attrs,
		Path:    []rast.AttrName{rast.Symbol("body")},
	}, nil
}

// normalizePath expands a path literal. With interpolations, the literal
// head resolves first and the whole expression becomes OpConcatStrings
// without force_string, the way the reference parser does.
func (n *normalizer) normalizePath(path *cst.Path) (rast.Expr, error) {
	if !hasInterpolation(path.Parts) {
		if len(path.Parts) != 1 {
			return nil, fmt.Errorf("%w: Path with %d literal parts", cerrs.ErrProducerInvariant, len(path.Parts))
		}
		return n.normalizePathLiteral(path.Parts[0].(*cst.LiteralPart).Text)
	}

	head, ok := path.Parts[0].(*cst.LiteralPart)
	if !ok {
		return nil, fmt.Errorf("%w: first part of a Path must be a literal", cerrs.ErrProducerInvariant)
	}
	base, err := n.normalizePathLiteral(head.Text)
	if err != nil {
		return nil, err
	}

	es := make([]rast.Expr, 0, len(path.Parts))
	es = append(es, base)
	for _, part := range path.Parts[1:] {
		switch part := part.(type) {
		case *cst.LiteralPart:
			es = append(es, &rast.String{Value: part.Text})
		case *cst.Interpolation:
			e, err := n.normalize(part.Expr)
			if err != nil {
				return nil, err
			}
			es = append(es, e)
		}
	}
	return &rast.OpConcatStrings{ForceString: false, Es: es}, nil
}

// normalizePathLiteral resolves one path literal by its anchor.
func (n *normalizer) normalizePathLiteral(literal string) (rast.Expr, error) {
	anchor, rest, err := paths.Split(literal)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", cerrs.ErrProducerInvariant, err)
	}
	switch anchor {
	case paths.Absolute:
		return &rast.Path{Value: paths.Canonicalize(rest)}, nil
	case paths.Relative:
		return &rast.Path{Value: paths.Canonicalize(n.basePath + "/" + rest)}, nil
	case paths.Home:
		// home paths are not canonicalized at all
		return &rast.Path{Value: n.homePath + "/" + rest}, nil
	case paths.Store:
		// the reference impl treats store paths as a __findFile call
		return builtinCall("__findFile", &rast.Var{Name: "__nixPath"}, &rast.String{Value: rest}), nil
	default:
		return nil, fmt.Errorf("%w: anchor %v", cerrs.ErrUnhandledVariant, anchor)
	}
}

func hasInterpolation(parts []cst.Part) bool {
	for _, part := range parts {
		if _, ok := part.(*cst.Interpolation); ok {
			return true
		}
	}
	return false
}
