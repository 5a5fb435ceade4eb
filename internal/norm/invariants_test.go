// Copyright (c) 2024 Michael D Henderson. All rights reserved.

package norm_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/go-test/deep"
	"github.com/playbymail/nixdiff/internal/cst"
	"github.com/playbymail/nixdiff/internal/norm"
	"github.com/playbymail/nixdiff/internal/rast"
)

func marshal(expr rast.Expr) ([]byte, error) {
	return json.Marshal(expr)
}

// corpus returns a spread of well-formed inputs used for the universal
// property tests below.
func corpus() map[string]cst.Node {
	return map[string]cst.Node{
		"int":        intLit(1),
		"string":     str("hello"),
		"interp":     strParts(lp("hello "), interp(ident("who"))),
		"sub":        binop(cst.Sub, intLit(0), intLit(1)),
		"leq":        binop(cst.LessOrEq, intLit(0), intLit(1)),
		"add-nested": binop(cst.Add, binop(cst.Add, intLit(0), intLit(1)), intLit(2)),
		"call":       apply(apply(apply(ident("f"), intLit(0)), intLit(1)), intLit(2)),
		"select": &cst.Select{Expr: ident("x"),
			Attrpath: cst.Attrpath{ai("y"), &cst.AttrDynamic{Expr: ident("k")}},
			Default:  intLit(37)},
		"has-attr": &cst.HasAttr{Expr: ident("x"), Attrpath: cst.Attrpath{ai("y"), ai("z")}},
		"attrs": attrset(
			apv(str("foo"), ai("description")),
			apv(str("bar"), ai("outputs")),
			apv(str("a"), ai("a")),
			apv(intLit(5), ai("x"), ai("y"), ai("z")),
			apv(intLit(1), &cst.AttrDynamic{Expr: ident("k")}),
			&cst.Inherit{Idents: []string{"b", "c"}},
			&cst.Inherit{From: ident("s"), Idents: []string{"d", "e"}},
		),
		"overlapping": attrset(
			apv(str("foo"), ai("x"), ai("y")),
			apv(str("bar"), ai("x"), ai("z")),
		),
		"lambda": &cst.Lambda{
			Param: &cst.Pattern{
				Entries:  []cst.PatEntry{{Name: "a"}, {Name: "b", Default: intLit(0)}},
				Ellipsis: true,
				At:       "inp",
			},
			Body: ident("a"),
		},
		"let": &cst.LetIn{Entries: []cst.Entry{apv(intLit(5), ai("x"))}, Body: ident("x")},
		"legacy-let": &cst.LegacyLet{Entries: []cst.Entry{
			apv(intLit(5), ai("x")),
			apv(ident("x"), ai("body")),
		}},
		"list": &cst.List{Items: []cst.Node{intLit(1), str("2"), floatLit(4.5)}},
		"paths": &cst.List{Items: []cst.Node{
			pathLit("/foo/bar/.."),
			pathLit("./a/./b"),
			pathLit("~/c"),
			pathLit("<d/e>"),
		}},
		"path-interp": &cst.Path{Parts: []cst.Part{
			lp("./a/"), interp(str("c")), lp("/e"),
		}},
		"with":   &cst.With{Namespace: ident("x"), Body: ident("y")},
		"if":     &cst.IfElse{Condition: ident("true"), Body: intLit(0), ElseBody: intLit(1)},
		"assert": &cst.Assert{Condition: ident("true"), Body: intLit(0)},
	}
}

// Every successfully normalized program satisfies the structural
// invariants checked by rast.Check.
func TestNormalizeInvariants(t *testing.T) {
	for id, node := range corpus() {
		got, err := norm.Normalize(node, testBase, testHome)
		if err != nil {
			t.Errorf("id %q: normalize failed %v\n", id, err)
			continue
		}
		if err := rast.Check(got); err != nil {
			t.Errorf("id %q: invariant violated: %v\n", id, err)
		}
	}
}

// Normalizing the same CST twice yields structurally identical trees and
// byte-identical serializations.
func TestNormalizeDeterministic(t *testing.T) {
	for id, node := range corpus() {
		first, err := norm.Normalize(node, testBase, testHome)
		if err != nil {
			t.Errorf("id %q: normalize failed %v\n", id, err)
			continue
		}
		second, err := norm.Normalize(node, testBase, testHome)
		if err != nil {
			t.Errorf("id %q: normalize failed %v\n", id, err)
			continue
		}
		if diff := deep.Equal(first, second); diff != nil {
			for _, d := range diff {
				t.Errorf("id %q: %s\n", id, d)
			}
		}

		buf1, err := marshal(first)
		if err != nil {
			t.Errorf("id %q: marshal failed %v\n", id, err)
			continue
		}
		buf2, err := marshal(second)
		if err != nil {
			t.Errorf("id %q: marshal failed %v\n", id, err)
			continue
		}
		if !bytes.Equal(buf1, buf2) {
			t.Errorf("id %q: serialization not deterministic\n", id)
		}
	}
}
