// Copyright (c) 2024 Michael D Henderson. All rights reserved.

package cst

import (
	"encoding/json"
	"fmt"

	"github.com/playbymail/nixdiff/cerrs"
)

// Decode decodes the CST dumper's JSON wire form into a tree.
// Every node object carries a "kind" discriminator; unknown kinds and
// malformed nodes are producer bugs and fail loudly.
func Decode(data []byte) (Node, error) {
	return decodeNode(data)
}

// wireNode is the union of every node variant's fields. Which fields are
// meaningful depends on the kind.
type wireNode struct {
	Kind        string            `json:"kind"`
	Lambda      json.RawMessage   `json:"lambda"`
	Argument    json.RawMessage   `json:"argument"`
	Condition   json.RawMessage   `json:"condition"`
	Body        json.RawMessage   `json:"body"`
	ElseBody    json.RawMessage   `json:"else_body"`
	Expr        json.RawMessage   `json:"expr"`
	Attrpath    []json.RawMessage `json:"attrpath"`
	Default     json.RawMessage   `json:"default"`
	Parts       []json.RawMessage `json:"parts"`
	LiteralKind string            `json:"literal_kind"`
	Int         int64             `json:"int"`
	Float       float64           `json:"float"`
	Uri         string            `json:"uri"`
	Param       json.RawMessage   `json:"param"`
	Entries     []json.RawMessage `json:"entries"`
	Items       []json.RawMessage `json:"items"`
	Lhs         json.RawMessage   `json:"lhs"`
	Rhs         json.RawMessage   `json:"rhs"`
	Operator    string            `json:"operator"`
	Recursive   bool              `json:"recursive"`
	Name        string            `json:"name"`
	Namespace   json.RawMessage   `json:"namespace"`
}

var binOps = map[string]BinOp_e{
	"Concat":      Concat,
	"Update":      Update,
	"Add":         Add,
	"Sub":         Sub,
	"Mul":         Mul,
	"Div":         Div,
	"And":         And,
	"Or":          Or,
	"Equal":       Equal,
	"NotEqual":    NotEqual,
	"Implication": Implication,
	"Less":        Less,
	"LessOrEq":    LessOrEq,
	"More":        More,
	"MoreOrEq":    MoreOrEq,
}

var unaryOps = map[string]UnaryOp_e{
	"Invert": Invert,
	"Negate": Negate,
}

func decodeNode(data []byte) (Node, error) {
	var w wireNode
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, err
	}

	switch w.Kind {
	case "Apply":
		lambda, err := decodeNode(w.Lambda)
		if err != nil {
			return nil, err
		}
		argument, err := decodeNode(w.Argument)
		if err != nil {
			return nil, err
		}
		return &Apply{Lambda: lambda, Argument: argument}, nil
	case "Assert":
		condition, err := decodeNode(w.Condition)
		if err != nil {
			return nil, err
		}
		body, err := decodeNode(w.Body)
		if err != nil {
			return nil, err
		}
		return &Assert{Condition: condition, Body: body}, nil
	case "IfElse":
		condition, err := decodeNode(w.Condition)
		if err != nil {
			return nil, err
		}
		body, err := decodeNode(w.Body)
		if err != nil {
			return nil, err
		}
		elseBody, err := decodeNode(w.ElseBody)
		if err != nil {
			return nil, err
		}
		return &IfElse{Condition: condition, Body: body, ElseBody: elseBody}, nil
	case "Select":
		expr, err := decodeNode(w.Expr)
		if err != nil {
			return nil, err
		}
		attrpath, err := decodeAttrpath(w.Attrpath)
		if err != nil {
			return nil, err
		}
		var dflt Node
		if len(w.Default) != 0 && string(w.Default) != "null" {
			if dflt, err = decodeNode(w.Default); err != nil {
				return nil, err
			}
		}
		return &Select{Expr: expr, Attrpath: attrpath, Default: dflt}, nil
	case "HasAttr":
		expr, err := decodeNode(w.Expr)
		if err != nil {
			return nil, err
		}
		attrpath, err := decodeAttrpath(w.Attrpath)
		if err != nil {
			return nil, err
		}
		return &HasAttr{Expr: expr, Attrpath: attrpath}, nil
	case "Str":
		parts, err := decodeParts(w.Parts)
		if err != nil {
			return nil, err
		}
		return &Str{Parts: parts}, nil
	case "Path":
		parts, err := decodeParts(w.Parts)
		if err != nil {
			return nil, err
		}
		return &Path{Parts: parts}, nil
	case "Literal":
		switch w.LiteralKind {
		case "Integer":
			return &Literal{Kind: Integer, Int: w.Int}, nil
		case "Float":
			return &Literal{Kind: Float, Float: w.Float}, nil
		case "Uri":
			return &Literal{Kind: Uri, Uri: w.Uri}, nil
		default:
			return nil, fmt.Errorf("%w: literal %q", cerrs.ErrUnknownNodeKind, w.LiteralKind)
		}
	case "Lambda":
		param, err := decodeParam(w.Param)
		if err != nil {
			return nil, err
		}
		body, err := decodeNode(w.Body)
		if err != nil {
			return nil, err
		}
		return &Lambda{Param: param, Body: body}, nil
	case "LegacyLet":
		entries, err := decodeEntries(w.Entries)
		if err != nil {
			return nil, err
		}
		return &LegacyLet{Entries: entries}, nil
	case "LetIn":
		entries, err := decodeEntries(w.Entries)
		if err != nil {
			return nil, err
		}
		body, err := decodeNode(w.Body)
		if err != nil {
			return nil, err
		}
		return &LetIn{Entries: entries, Body: body}, nil
	case "List":
		var items []Node
		for _, raw := range w.Items {
			item, err := decodeNode(raw)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		return &List{Items: items}, nil
	case "BinOp":
		op, ok := binOps[w.Operator]
		if !ok {
			return nil, fmt.Errorf("%w: binary %q", cerrs.ErrUnknownOperator, w.Operator)
		}
		lhs, err := decodeNode(w.Lhs)
		if err != nil {
			return nil, err
		}
		rhs, err := decodeNode(w.Rhs)
		if err != nil {
			return nil, err
		}
		return &BinOp{Lhs: lhs, Rhs: rhs, Op: op}, nil
	case "Paren":
		expr, err := decodeNode(w.Expr)
		if err != nil {
			return nil, err
		}
		return &Paren{Expr: expr}, nil
	case "AttrSet":
		entries, err := decodeEntries(w.Entries)
		if err != nil {
			return nil, err
		}
		return &AttrSet{Entries: entries, Recursive: w.Recursive}, nil
	case "UnaryOp":
		op, ok := unaryOps[w.Operator]
		if !ok {
			return nil, fmt.Errorf("%w: unary %q", cerrs.ErrUnknownOperator, w.Operator)
		}
		expr, err := decodeNode(w.Expr)
		if err != nil {
			return nil, err
		}
		return &UnaryOp{Op: op, Expr: expr}, nil
	case "Ident":
		return &Ident{Name: w.Name}, nil
	case "With":
		namespace, err := decodeNode(w.Namespace)
		if err != nil {
			return nil, err
		}
		body, err := decodeNode(w.Body)
		if err != nil {
			return nil, err
		}
		return &With{Namespace: namespace, Body: body}, nil
	case "Root":
		expr, err := decodeNode(w.Expr)
		if err != nil {
			return nil, err
		}
		return &Root{Expr: expr}, nil
	default:
		return nil, fmt.Errorf("%w: %q", cerrs.ErrUnknownNodeKind, w.Kind)
	}
}

type wirePart struct {
	PartKind string          `json:"part_kind"`
	Text     string          `json:"text"`
	Expr     json.RawMessage `json:"expr"`
}

func decodeParts(raws []json.RawMessage) ([]Part, error) {
	var parts []Part
	for _, raw := range raws {
		var w wirePart
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, err
		}
		switch w.PartKind {
		case "Literal":
			parts = append(parts, &LiteralPart{Text: w.Text})
		case "Interpolation":
			expr, err := decodeNode(w.Expr)
			if err != nil {
				return nil, err
			}
			parts = append(parts, &Interpolation{Expr: expr})
		default:
			return nil, fmt.Errorf("%w: part %q", cerrs.ErrUnknownNodeKind, w.PartKind)
		}
	}
	return parts, nil
}

type wireAttr struct {
	AttrKind string            `json:"attr_kind"`
	Name     string            `json:"name"`
	Parts    []json.RawMessage `json:"parts"`
	Expr     json.RawMessage   `json:"expr"`
}

func decodeAttrpath(raws []json.RawMessage) (Attrpath, error) {
	var attrpath Attrpath
	for _, raw := range raws {
		var w wireAttr
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, err
		}
		switch w.AttrKind {
		case "Ident":
			attrpath = append(attrpath, &AttrIdent{Name: w.Name})
		case "Str":
			parts, err := decodeParts(w.Parts)
			if err != nil {
				return nil, err
			}
			attrpath = append(attrpath, &AttrStr{Parts: parts})
		case "Dynamic":
			expr, err := decodeNode(w.Expr)
			if err != nil {
				return nil, err
			}
			attrpath = append(attrpath, &AttrDynamic{Expr: expr})
		default:
			return nil, fmt.Errorf("%w: attr %q", cerrs.ErrUnknownNodeKind, w.AttrKind)
		}
	}
	return attrpath, nil
}

type wireEntry struct {
	EntryKind string            `json:"entry_kind"`
	From      json.RawMessage   `json:"from"`
	Idents    []string          `json:"idents"`
	Attrpath  []json.RawMessage `json:"attrpath"`
	Value     json.RawMessage   `json:"value"`
}

func decodeEntries(raws []json.RawMessage) ([]Entry, error) {
	var entries []Entry
	for _, raw := range raws {
		var w wireEntry
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, err
		}
		switch w.EntryKind {
		case "Inherit":
			var from Node
			if len(w.From) != 0 && string(w.From) != "null" {
				var err error
				if from, err = decodeNode(w.From); err != nil {
					return nil, err
				}
			}
			entries = append(entries, &Inherit{From: from, Idents: w.Idents})
		case "AttrpathValue":
			attrpath, err := decodeAttrpath(w.Attrpath)
			if err != nil {
				return nil, err
			}
			value, err := decodeNode(w.Value)
			if err != nil {
				return nil, err
			}
			entries = append(entries, &AttrpathValue{Attrpath: attrpath, Value: value})
		default:
			return nil, fmt.Errorf("%w: entry %q", cerrs.ErrUnknownNodeKind, w.EntryKind)
		}
	}
	return entries, nil
}

type wireParam struct {
	ParamKind string            `json:"param_kind"`
	Name      string            `json:"name"`
	Entries   []json.RawMessage `json:"entries"`
	Ellipsis  bool              `json:"ellipsis"`
	At        string            `json:"at"`
}

type wirePatEntry struct {
	Name    string          `json:"name"`
	Default json.RawMessage `json:"default"`
}

func decodeParam(raw json.RawMessage) (Param, error) {
	var w wireParam
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, err
	}
	switch w.ParamKind {
	case "IdentParam":
		return &IdentParam{Name: w.Name}, nil
	case "Pattern":
		var entries []PatEntry
		for _, rawEntry := range w.Entries {
			var we wirePatEntry
			if err := json.Unmarshal(rawEntry, &we); err != nil {
				return nil, err
			}
			entry := PatEntry{Name: we.Name}
			if len(we.Default) != 0 && string(we.Default) != "null" {
				var err error
				if entry.Default, err = decodeNode(we.Default); err != nil {
					return nil, err
				}
			}
			entries = append(entries, entry)
		}
		return &Pattern{Entries: entries, Ellipsis: w.Ellipsis, At: w.At}, nil
	default:
		return nil, fmt.Errorf("%w: param %q", cerrs.ErrUnknownNodeKind, w.ParamKind)
	}
}
