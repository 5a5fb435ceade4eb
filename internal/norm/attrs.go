// Copyright (c) 2024 Michael D Henderson. All rights reserved.

package norm

import (
	"fmt"
	"sort"

	"github.com/playbymail/nixdiff/cerrs"
	"github.com/playbymail/nixdiff/internal/cst"
	"github.com/playbymail/nixdiff/internal/rast"
)

// normalizeAttrSet turns binding entries into an Attrs node. Static
// attributes are gathered in source order, folded by name with the merge
// rule below, then sorted ascending by name. Dynamic attributes keep
// source order and are never deduplicated; the reference parser defers
// dynamic-key duplicate detection to evaluation time.
func (n *normalizer) normalizeAttrSet(entries []cst.Entry, recursive bool) (*rast.Attrs, error) {
	var attrs []rast.AttrDef
	var dynamicAttrs []rast.DynamicAttrDef

	for _, entry := range entries {
		switch entry := entry.(type) {
		case *cst.AttrpathValue:
			static, dynamic, err := n.normalizeAttrpathValue(entry)
			if err != nil {
				return nil, err
			}
			if dynamic != nil {
				dynamicAttrs = append(dynamicAttrs, *dynamic)
			} else {
				attrs = append(attrs, static)
			}
		case *cst.Inherit:
			defs, err := n.normalizeInherit(entry)
			if err != nil {
				return nil, err
			}
			attrs = append(attrs, defs...)
		default:
			return nil, fmt.Errorf("%w: entry %T", cerrs.ErrUnhandledVariant, entry)
		}
	}

	merged, err := mergeAttrs(attrs)
	if err != nil {
		return nil, err
	}

	return &rast.Attrs{Rec: recursive, Attrs: merged, DynamicAttrs: dynamicAttrs}, nil
}

// normalizeAttrpathValue expands `x.y.z = v` into `x = { y = { z = v; }; }`
// by recursing on the key tail; synthesized inner sets are never
// recursive. The head classifies as static or dynamic by the attrpath
// rule. Exactly one of the returns is meaningful.
func (n *normalizer) normalizeAttrpathValue(apv *cst.AttrpathValue) (rast.AttrDef, *rast.DynamicAttrDef, error) {
	if len(apv.Attrpath) == 0 {
		return rast.AttrDef{}, nil, fmt.Errorf("%w: %v", cerrs.ErrProducerInvariant, cerrs.ErrEmptyAttrpath)
	}
	head, tail := apv.Attrpath[0], apv.Attrpath[1:]

	var value rast.Expr
	var err error
	if len(tail) > 0 {
		value, err = n.normalizeAttrSet([]cst.Entry{
			&cst.AttrpathValue{Attrpath: tail, Value: apv.Value},
		}, false)
	} else {
		value, err = n.normalize(apv.Value)
	}
	if err != nil {
		return rast.AttrDef{}, nil, err
	}

	name, err := n.classifyAttr(head)
	if err != nil {
		return rast.AttrDef{}, nil, err
	}
	if name.IsSymbol() {
		return rast.AttrDef{Name: name.Sym, Expr: value}, nil, nil
	}
	return rast.AttrDef{}, &rast.DynamicAttrDef{NameExpr: name.Expr, ValueExpr: value}, nil
}

// normalizeInherit expands an inherit entry to one def per identifier.
// Without a source, each def is marked inherited and binds the variable
// of the same name. With a source, each def projects the identifier out
// of the shared normalized source.
func (n *normalizer) normalizeInherit(inherit *cst.Inherit) ([]rast.AttrDef, error) {
	if inherit.From == nil {
		defs := make([]rast.AttrDef, 0, len(inherit.Idents))
		for _, ident := range inherit.Idents {
			defs = append(defs, rast.AttrDef{
				Name:      ident,
				Inherited: true,
				Expr:      &rast.Var{Name: ident},
			})
		}
		return defs, nil
	}

	subject, err := n.normalize(inherit.From)
	if err != nil {
		return nil, err
	}
	defs := make([]rast.AttrDef, 0, len(inherit.Idents))
	for _, ident := range inherit.Idents {
		defs = append(defs, rast.AttrDef{
			Name: ident,
			Expr: &rast.Select{
				Subject: subject,
				Path:    []rast.AttrName{rast.Symbol(ident)},
			},
		})
	}
	return defs, nil
}

// mergeAttrs folds defs with equal names left-to-right and sorts the
// result ascending by name. Gathering everything before merging (rather
// than merging while gathering) is what makes `{ x.y = 1; x.z = 2; }`
// combine and `{ x = 1; x = 2; }` fail.
func mergeAttrs(defs []rast.AttrDef) ([]rast.AttrDef, error) {
	merged := make([]rast.AttrDef, 0, len(defs))
	index := make(map[string]int, len(defs))

	for _, def := range defs {
		i, ok := index[def.Name]
		if !ok {
			index[def.Name] = len(merged)
			merged = append(merged, def)
			continue
		}
		combined, err := mergeAttrDef(merged[i], def)
		if err != nil {
			return nil, err
		}
		merged[i] = combined
	}

	sort.Slice(merged, func(i, j int) bool { return merged[i].Name < merged[j].Name })
	return merged, nil
}

// mergeAttrDef combines two defs with the same name. Only non-inherited
// attr sets merge; any other collision is an illegal program.
func mergeAttrDef(def1, def2 rast.AttrDef) (rast.AttrDef, error) {
	if def1.Inherited || def2.Inherited {
		return rast.AttrDef{}, fmt.Errorf("%w: %s", cerrs.ErrInheritedMerge, def1.Name)
	}

	attrs1, ok1 := def1.Expr.(*rast.Attrs)
	attrs2, ok2 := def2.Expr.(*rast.Attrs)
	if !ok1 || !ok2 {
		return rast.AttrDef{}, fmt.Errorf("%w: %s: value is not an attrset", cerrs.ErrAttrMergeConflict, def1.Name)
	}

	combined := make([]rast.AttrDef, 0, len(attrs1.Attrs)+len(attrs2.Attrs))
	combined = append(combined, attrs1.Attrs...)
	combined = append(combined, attrs2.Attrs...)
	childAttrs, err := mergeAttrs(combined)
	if err != nil {
		return rast.AttrDef{}, err
	}

	var dynamic []rast.DynamicAttrDef
	dynamic = append(dynamic, attrs1.DynamicAttrs...)
	dynamic = append(dynamic, attrs2.DynamicAttrs...)

	return rast.AttrDef{
		Name: def1.Name,
		Expr: &rast.Attrs{
			Rec:          attrs1.Rec || attrs2.Rec,
			Attrs:        childAttrs,
			DynamicAttrs: dynamic,
		},
	}, nil
}
