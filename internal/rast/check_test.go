// Copyright (c) 2024 Michael D Henderson. All rights reserved.

package rast_test

import (
	"testing"

	"github.com/playbymail/nixdiff/internal/rast"
)

func TestCheck(t *testing.T) {
	for _, tc := range []struct {
		id     string
		expr   rast.Expr
		wantOk bool
	}{
		{
			id: "sorted-attrs",
			expr: &rast.Attrs{Attrs: []rast.AttrDef{
				{Name: "a", Expr: &rast.Int{Value: 1}},
				{Name: "b", Expr: &rast.Int{Value: 2}},
			}},
			wantOk: true,
		},
		{
			id: "unsorted-attrs",
			expr: &rast.Attrs{Attrs: []rast.AttrDef{
				{Name: "b", Expr: &rast.Int{Value: 1}},
				{Name: "a", Expr: &rast.Int{Value: 2}},
			}},
			wantOk: false,
		},
		{
			id: "duplicate-attrs",
			expr: &rast.Attrs{Attrs: []rast.AttrDef{
				{Name: "a", Expr: &rast.Int{Value: 1}},
				{Name: "a", Expr: &rast.Int{Value: 2}},
			}},
			wantOk: false,
		},
		{
			id:     "flattened-call",
			expr:   &rast.Call{Fun: &rast.Var{Name: "f"}, Args: []rast.Expr{&rast.Int{Value: 0}}},
			wantOk: true,
		},
		{
			id: "nested-call",
			expr: &rast.Call{
				Fun:  &rast.Call{Fun: &rast.Var{Name: "f"}, Args: []rast.Expr{&rast.Int{Value: 0}}},
				Args: []rast.Expr{&rast.Int{Value: 1}},
			},
			wantOk: false,
		},
		{
			id:     "empty-call-args",
			expr:   &rast.Call{Fun: &rast.Var{Name: "f"}},
			wantOk: false,
		},
		{
			id:     "empty-select-path",
			expr:   &rast.Select{Subject: &rast.Var{Name: "x"}},
			wantOk: false,
		},
		{
			id: "short-concat",
			expr: &rast.OpConcatStrings{
				Es: []rast.Expr{&rast.String{Value: "only"}},
			},
			wantOk: false,
		},
		{
			id: "lone-interpolation-concat",
			expr: &rast.OpConcatStrings{
				ForceString: true,
				Es:          []rast.Expr{&rast.Var{Name: "x"}},
			},
			wantOk: true,
		},
		{
			id: "empty-concat",
			expr: &rast.OpConcatStrings{
				ForceString: true,
			},
			wantOk: false,
		},
		{
			id:     "canonical-path",
			expr:   &rast.Path{Value: "/foo/bar"},
			wantOk: true,
		},
		{
			id:     "non-canonical-path",
			expr:   &rast.Path{Value: "/foo/./bar"},
			wantOk: false,
		},
		{
			id:     "let-requires-attrs",
			expr:   &rast.Let{Attrs: &rast.Int{Value: 1}, Body: &rast.Int{Value: 2}},
			wantOk: false,
		},
	} {
		err := rast.Check(tc.expr)
		if tc.wantOk && err != nil {
			t.Errorf("id %q: want ok, got %v\n", tc.id, err)
		} else if !tc.wantOk && err == nil {
			t.Errorf("id %q: want error, got nil\n", tc.id)
		}
	}
}
