// Copyright (c) 2024 Michael D Henderson. All rights reserved.

package rast

import (
	"fmt"

	"github.com/playbymail/nixdiff/internal/paths"
)

// Check verifies the structural invariants of a normalized tree:
//
//  1. Attrs.Attrs is strictly ascending by name (byte order), so names
//     are unique.
//  2. Call.Fun is never itself a Call and Call.Args is non-empty.
//  3. Select.Path and OpHasAttr.Path are non-empty.
//  4. OpConcatStrings.Es has at least two elements, except that a
//     force_string concat may have exactly one (a string that is a lone
//     interpolation, "${x}").
//  5. Path values are fixed points of canonicalization. The normalizer
//     does not canonicalize "~/"-anchored paths, so a home path written
//     with "." or ".." segments fails this check.
//
// It returns the first violation found, or nil.
func Check(expr Expr) error {
	switch e := expr.(type) {
	case *Int, *Float, *String, *Var:
		return nil
	case *Path:
		if canon := paths.Canonicalize(e.Value); canon != e.Value {
			return fmt.Errorf("path %q is not canonical (canonicalizes to %q)", e.Value, canon)
		}
		return nil
	case *Select:
		if len(e.Path) == 0 {
			return fmt.Errorf("select with empty path")
		}
		if err := Check(e.Subject); err != nil {
			return err
		}
		if e.OrDefault != nil {
			if err := Check(e.OrDefault); err != nil {
				return err
			}
		}
		return checkAttrNames(e.Path)
	case *OpHasAttr:
		if len(e.Path) == 0 {
			return fmt.Errorf("has-attr with empty path")
		}
		if err := Check(e.Subject); err != nil {
			return err
		}
		return checkAttrNames(e.Path)
	case *Attrs:
		for i, def := range e.Attrs {
			if i > 0 && e.Attrs[i-1].Name >= def.Name {
				return fmt.Errorf("attrs not strictly sorted: %q then %q", e.Attrs[i-1].Name, def.Name)
			}
			if err := Check(def.Expr); err != nil {
				return err
			}
		}
		for _, def := range e.DynamicAttrs {
			if err := Check(def.NameExpr); err != nil {
				return err
			}
			if err := Check(def.ValueExpr); err != nil {
				return err
			}
		}
		return nil
	case *List:
		return checkAll(e.Items)
	case *Lambda:
		if e.Formals != nil {
			for _, formal := range e.Formals.Entries {
				if formal.Default != nil {
					if err := Check(formal.Default); err != nil {
						return err
					}
				}
			}
		}
		return Check(e.Body)
	case *Call:
		if _, ok := e.Fun.(*Call); ok {
			return fmt.Errorf("call with unflattened call in function position")
		}
		if len(e.Args) == 0 {
			return fmt.Errorf("call with no arguments")
		}
		if err := Check(e.Fun); err != nil {
			return err
		}
		return checkAll(e.Args)
	case *Let:
		if _, ok := e.Attrs.(*Attrs); !ok {
			return fmt.Errorf("let with non-attrs bindings %T", e.Attrs)
		}
		if err := Check(e.Attrs); err != nil {
			return err
		}
		return Check(e.Body)
	case *With:
		if err := Check(e.Attrs); err != nil {
			return err
		}
		return Check(e.Body)
	case *If:
		return checkAll([]Expr{e.Cond, e.Then, e.Else})
	case *Assert:
		return checkAll([]Expr{e.Cond, e.Body})
	case *OpNot:
		return Check(e.Expr)
	case *OpEq:
		return checkAll([]Expr{e.Lhs, e.Rhs})
	case *OpNEq:
		return checkAll([]Expr{e.Lhs, e.Rhs})
	case *OpAnd:
		return checkAll([]Expr{e.Lhs, e.Rhs})
	case *OpOr:
		return checkAll([]Expr{e.Lhs, e.Rhs})
	case *OpImpl:
		return checkAll([]Expr{e.Lhs, e.Rhs})
	case *OpUpdate:
		return checkAll([]Expr{e.Lhs, e.Rhs})
	case *OpConcatLists:
		return checkAll([]Expr{e.Lhs, e.Rhs})
	case *OpConcatStrings:
		// a string that is one bare interpolation ("${x}") concatenates
		// a single element; every other source form yields at least two
		if len(e.Es) < 2 && !(e.ForceString && len(e.Es) == 1) {
			return fmt.Errorf("concat-strings with %d elements", len(e.Es))
		}
		return checkAll(e.Es)
	default:
		return fmt.Errorf("unknown expression %T", expr)
	}
}

func checkAll(es []Expr) error {
	for _, e := range es {
		if err := Check(e); err != nil {
			return err
		}
	}
	return nil
}

func checkAttrNames(path []AttrName) error {
	for _, name := range path {
		if !name.IsSymbol() {
			if err := Check(name.Expr); err != nil {
				return err
			}
		}
	}
	return nil
}
