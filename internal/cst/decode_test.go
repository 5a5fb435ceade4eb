// Copyright (c) 2024 Michael D Henderson. All rights reserved.

package cst_test

import (
	"errors"
	"testing"

	"github.com/go-test/deep"
	"github.com/playbymail/nixdiff/cerrs"
	"github.com/playbymail/nixdiff/internal/cst"
)

func TestDecode(t *testing.T) {
	for _, tc := range []struct {
		id   string
		json string
		want cst.Node
	}{
		{
			id:   "ident",
			json: `{"kind":"Ident","name":"x"}`,
			want: &cst.Ident{Name: "x"},
		},
		{
			id:   "integer",
			json: `{"kind":"Literal","literal_kind":"Integer","int":5}`,
			want: &cst.Literal{Kind: cst.Integer, Int: 5},
		},
		{
			id:   "float",
			json: `{"kind":"Literal","literal_kind":"Float","float":3.14}`,
			want: &cst.Literal{Kind: cst.Float, Float: 3.14},
		},
		{
			id:   "uri",
			json: `{"kind":"Literal","literal_kind":"Uri","uri":"https://example.com"}`,
			want: &cst.Literal{Kind: cst.Uri, Uri: "https://example.com"},
		},
		{
			id:   "root-paren",
			json: `{"kind":"Root","expr":{"kind":"Paren","expr":{"kind":"Ident","name":"x"}}}`,
			want: &cst.Root{Expr: &cst.Paren{Expr: &cst.Ident{Name: "x"}}},
		},
		{
			id:   "apply",
			json: `{"kind":"Apply","lambda":{"kind":"Ident","name":"f"},"argument":{"kind":"Literal","literal_kind":"Integer","int":0}}`,
			want: &cst.Apply{Lambda: &cst.Ident{Name: "f"}, Argument: &cst.Literal{Kind: cst.Integer, Int: 0}},
		},
		{
			id:   "binop",
			json: `{"kind":"BinOp","operator":"Sub","lhs":{"kind":"Literal","literal_kind":"Integer","int":0},"rhs":{"kind":"Literal","literal_kind":"Integer","int":1}}`,
			want: &cst.BinOp{Op: cst.Sub, Lhs: &cst.Literal{Kind: cst.Integer, Int: 0}, Rhs: &cst.Literal{Kind: cst.Integer, Int: 1}},
		},
		{
			id:   "unary",
			json: `{"kind":"UnaryOp","operator":"Negate","expr":{"kind":"Literal","literal_kind":"Integer","int":5}}`,
			want: &cst.UnaryOp{Op: cst.Negate, Expr: &cst.Literal{Kind: cst.Integer, Int: 5}},
		},
		{
			id:   "str-interpolated",
			json: `{"kind":"Str","parts":[{"part_kind":"Literal","text":"hello "},{"part_kind":"Interpolation","expr":{"kind":"Ident","name":"who"}}]}`,
			want: &cst.Str{Parts: []cst.Part{
				&cst.LiteralPart{Text: "hello "},
				&cst.Interpolation{Expr: &cst.Ident{Name: "who"}},
			}},
		},
		{
			id:   "select-with-default",
			json: `{"kind":"Select","expr":{"kind":"Ident","name":"x"},"attrpath":[{"attr_kind":"Ident","name":"y"},{"attr_kind":"Dynamic","expr":{"kind":"Ident","name":"z"}}],"default":{"kind":"Literal","literal_kind":"Integer","int":37}}`,
			want: &cst.Select{
				Expr: &cst.Ident{Name: "x"},
				Attrpath: cst.Attrpath{
					&cst.AttrIdent{Name: "y"},
					&cst.AttrDynamic{Expr: &cst.Ident{Name: "z"}},
				},
				Default: &cst.Literal{Kind: cst.Integer, Int: 37},
			},
		},
		{
			id:   "select-null-default",
			json: `{"kind":"Select","expr":{"kind":"Ident","name":"x"},"attrpath":[{"attr_kind":"Ident","name":"y"}],"default":null}`,
			want: &cst.Select{
				Expr:     &cst.Ident{Name: "x"},
				Attrpath: cst.Attrpath{&cst.AttrIdent{Name: "y"}},
			},
		},
		{
			id:   "attrset",
			json: `{"kind":"AttrSet","recursive":true,"entries":[{"entry_kind":"AttrpathValue","attrpath":[{"attr_kind":"Ident","name":"x"}],"value":{"kind":"Literal","literal_kind":"Integer","int":5}},{"entry_kind":"Inherit","idents":["a","b"]},{"entry_kind":"Inherit","from":{"kind":"Ident","name":"s"},"idents":["c"]}]}`,
			want: &cst.AttrSet{
				Recursive: true,
				Entries: []cst.Entry{
					&cst.AttrpathValue{
						Attrpath: cst.Attrpath{&cst.AttrIdent{Name: "x"}},
						Value:    &cst.Literal{Kind: cst.Integer, Int: 5},
					},
					&cst.Inherit{Idents: []string{"a", "b"}},
					&cst.Inherit{From: &cst.Ident{Name: "s"}, Idents: []string{"c"}},
				},
			},
		},
		{
			id:   "lambda-pattern",
			json: `{"kind":"Lambda","param":{"param_kind":"Pattern","entries":[{"name":"x"},{"name":"y","default":{"kind":"Literal","literal_kind":"Integer","int":0}}],"ellipsis":true,"at":"inp"},"body":{"kind":"Ident","name":"x"}}`,
			want: &cst.Lambda{
				Param: &cst.Pattern{
					Entries: []cst.PatEntry{
						{Name: "x"},
						{Name: "y", Default: &cst.Literal{Kind: cst.Integer, Int: 0}},
					},
					Ellipsis: true,
					At:       "inp",
				},
				Body: &cst.Ident{Name: "x"},
			},
		},
		{
			id:   "path",
			json: `{"kind":"Path","parts":[{"part_kind":"Literal","text":"./foo/"},{"part_kind":"Interpolation","expr":{"kind":"Ident","name":"bar"}}]}`,
			want: &cst.Path{Parts: []cst.Part{
				&cst.LiteralPart{Text: "./foo/"},
				&cst.Interpolation{Expr: &cst.Ident{Name: "bar"}},
			}},
		},
		{
			id:   "let-in",
			json: `{"kind":"LetIn","entries":[{"entry_kind":"AttrpathValue","attrpath":[{"attr_kind":"Ident","name":"x"}],"value":{"kind":"Literal","literal_kind":"Integer","int":5}}],"body":{"kind":"Ident","name":"x"}}`,
			want: &cst.LetIn{
				Entries: []cst.Entry{
					&cst.AttrpathValue{
						Attrpath: cst.Attrpath{&cst.AttrIdent{Name: "x"}},
						Value:    &cst.Literal{Kind: cst.Integer, Int: 5},
					},
				},
				Body: &cst.Ident{Name: "x"},
			},
		},
	} {
		got, err := cst.Decode([]byte(tc.json))
		if err != nil {
			t.Errorf("id %q: decode failed %v\n", tc.id, err)
			continue
		}
		if diff := deep.Equal(tc.want, got); diff != nil {
			for _, d := range diff {
				t.Errorf("id %q: %s\n", tc.id, d)
			}
		}
	}
}

func TestDecodeErrors(t *testing.T) {
	for _, tc := range []struct {
		id   string
		json string
		want error
	}{
		{id: "unknown-kind", json: `{"kind":"Nope"}`, want: cerrs.ErrUnknownNodeKind},
		{id: "unknown-operator", json: `{"kind":"BinOp","operator":"Xor","lhs":{"kind":"Ident","name":"a"},"rhs":{"kind":"Ident","name":"b"}}`, want: cerrs.ErrUnknownOperator},
		{id: "unknown-literal", json: `{"kind":"Literal","literal_kind":"Complex"}`, want: cerrs.ErrUnknownNodeKind},
		{id: "unknown-part", json: `{"kind":"Str","parts":[{"part_kind":"Nope"}]}`, want: cerrs.ErrUnknownNodeKind},
		{id: "unknown-entry", json: `{"kind":"AttrSet","entries":[{"entry_kind":"Nope"}]}`, want: cerrs.ErrUnknownNodeKind},
	} {
		_, err := cst.Decode([]byte(tc.json))
		if err == nil {
			t.Errorf("id %q: want error, got nil\n", tc.id)
			continue
		}
		if !errors.Is(err, tc.want) {
			t.Errorf("id %q: want %v, got %v\n", tc.id, tc.want, err)
		}
	}
}
