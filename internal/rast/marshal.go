// Copyright (c) 2024 Michael D Henderson. All rights reserved.

package rast

import (
	"encoding/json"
)

// Serialization is deterministic: struct fields marshal in declaration
// order, map keys marshal sorted, empty collections marshal as empty (not
// null), and absent optionals marshal as null. Every node object leads
// with a "type" discriminator.

// tagged marshals payload and splices `"type": typ` in as the first key.
func tagged(typ string, payload any) ([]byte, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	if len(b) == 2 { // "{}"
		return []byte(`{"type":"` + typ + `"}`), nil
	}
	out := make([]byte, 0, len(b)+len(typ)+10)
	out = append(out, `{"type":"`...)
	out = append(out, typ...)
	out = append(out, `",`...)
	out = append(out, b[1:]...)
	return out, nil
}

// nonNilExprs guarantees empty slices encode as [] rather than null.
func nonNilExprs(es []Expr) []Expr {
	if es == nil {
		return []Expr{}
	}
	return es
}

func nonNilPath(path []AttrName) []AttrName {
	if path == nil {
		return []AttrName{}
	}
	return path
}

func (e *Int) MarshalJSON() ([]byte, error) {
	return tagged("Int", struct {
		Value int64 `json:"value"`
	}{e.Value})
}

func (e *Float) MarshalJSON() ([]byte, error) {
	return tagged("Float", struct {
		Value float64 `json:"value"`
	}{e.Value})
}

func (e *String) MarshalJSON() ([]byte, error) {
	return tagged("String", struct {
		Value string `json:"value"`
	}{e.Value})
}

func (e *Path) MarshalJSON() ([]byte, error) {
	return tagged("Path", struct {
		Value string `json:"value"`
	}{e.Value})
}

func (e *Var) MarshalJSON() ([]byte, error) {
	return tagged("Var", struct {
		Value string `json:"value"`
	}{e.Name})
}

func (e *Select) MarshalJSON() ([]byte, error) {
	return tagged("Select", struct {
		Subject   Expr       `json:"subject"`
		OrDefault Expr       `json:"or_default"`
		Path      []AttrName `json:"path"`
	}{e.Subject, e.OrDefault, nonNilPath(e.Path)})
}

func (e *OpHasAttr) MarshalJSON() ([]byte, error) {
	return tagged("OpHasAttr", struct {
		Subject Expr       `json:"subject"`
		Path    []AttrName `json:"path"`
	}{e.Subject, nonNilPath(e.Path)})
}

func (e *Attrs) MarshalJSON() ([]byte, error) {
	attrs := e.Attrs
	if attrs == nil {
		attrs = []AttrDef{}
	}
	dynamic := e.DynamicAttrs
	if dynamic == nil {
		dynamic = []DynamicAttrDef{}
	}
	return tagged("Attrs", struct {
		Rec          bool             `json:"rec"`
		Attrs        []AttrDef        `json:"attrs"`
		DynamicAttrs []DynamicAttrDef `json:"dynamic_attrs"`
	}{e.Rec, attrs, dynamic})
}

func (e *List) MarshalJSON() ([]byte, error) {
	return tagged("List", struct {
		Items []Expr `json:"items"`
	}{nonNilExprs(e.Items)})
}

func (e *Lambda) MarshalJSON() ([]byte, error) {
	var arg *string
	if e.Arg != "" {
		arg = &e.Arg
	}
	return tagged("Lambda", struct {
		Arg     *string  `json:"arg"`
		Formals *Formals `json:"formals"`
		Body    Expr     `json:"body"`
	}{arg, e.Formals, e.Body})
}

func (e *Call) MarshalJSON() ([]byte, error) {
	return tagged("Call", struct {
		Fun  Expr   `json:"fun"`
		Args []Expr `json:"args"`
	}{e.Fun, nonNilExprs(e.Args)})
}

func (e *Let) MarshalJSON() ([]byte, error) {
	return tagged("Let", struct {
		Attrs Expr `json:"attrs"`
		Body  Expr `json:"body"`
	}{e.Attrs, e.Body})
}

func (e *With) MarshalJSON() ([]byte, error) {
	return tagged("With", struct {
		Attrs Expr `json:"attrs"`
		Body  Expr `json:"body"`
	}{e.Attrs, e.Body})
}

func (e *If) MarshalJSON() ([]byte, error) {
	return tagged("If", struct {
		Cond Expr `json:"cond"`
		Then Expr `json:"then"`
		Else Expr `json:"else"`
	}{e.Cond, e.Then, e.Else})
}

func (e *Assert) MarshalJSON() ([]byte, error) {
	return tagged("Assert", struct {
		Cond Expr `json:"cond"`
		Body Expr `json:"body"`
	}{e.Cond, e.Body})
}

func (e *OpNot) MarshalJSON() ([]byte, error) {
	return tagged("OpNot", struct {
		Expr Expr `json:"expr"`
	}{e.Expr})
}

type binOpJSON struct {
	Lhs Expr `json:"lhs"`
	Rhs Expr `json:"rhs"`
}

func (e *OpEq) MarshalJSON() ([]byte, error) {
	return tagged("OpEq", binOpJSON{e.Lhs, e.Rhs})
}

func (e *OpNEq) MarshalJSON() ([]byte, error) {
	return tagged("OpNEq", binOpJSON{e.Lhs, e.Rhs})
}

func (e *OpAnd) MarshalJSON() ([]byte, error) {
	return tagged("OpAnd", binOpJSON{e.Lhs, e.Rhs})
}

func (e *OpOr) MarshalJSON() ([]byte, error) {
	return tagged("OpOr", binOpJSON{e.Lhs, e.Rhs})
}

func (e *OpImpl) MarshalJSON() ([]byte, error) {
	return tagged("OpImpl", binOpJSON{e.Lhs, e.Rhs})
}

func (e *OpUpdate) MarshalJSON() ([]byte, error) {
	return tagged("OpUpdate", binOpJSON{e.Lhs, e.Rhs})
}

func (e *OpConcatLists) MarshalJSON() ([]byte, error) {
	return tagged("OpConcatLists", binOpJSON{e.Lhs, e.Rhs})
}

func (e *OpConcatStrings) MarshalJSON() ([]byte, error) {
	return tagged("OpConcatStrings", struct {
		ForceString bool   `json:"force_string"`
		Es          []Expr `json:"es"`
	}{e.ForceString, nonNilExprs(e.Es)})
}

func (n AttrName) MarshalJSON() ([]byte, error) {
	if n.IsSymbol() {
		return json.Marshal(struct {
			AttrType string `json:"attr_type"`
			Value    string `json:"value"`
		}{"Symbol", n.Sym})
	}
	return json.Marshal(struct {
		AttrType string `json:"attr_type"`
		Value    Expr   `json:"value"`
	}{"Expr", n.Expr})
}

func (d AttrDef) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Name      string `json:"name"`
		Inherited bool   `json:"inherited"`
		Expr      Expr   `json:"expr"`
	}{d.Name, d.Inherited, d.Expr})
}

func (d DynamicAttrDef) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		NameExpr  Expr `json:"name_expr"`
		ValueExpr Expr `json:"value_expr"`
	}{d.NameExpr, d.ValueExpr})
}

func (f *Formals) MarshalJSON() ([]byte, error) {
	entries := f.Entries
	if entries == nil {
		entries = map[string]Formal{}
	}
	return json.Marshal(struct {
		Ellipsis bool              `json:"ellipsis"`
		Entries  map[string]Formal `json:"entries"`
	}{f.Ellipsis, entries})
}

func (f Formal) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Default Expr `json:"default"`
	}{f.Default})
}
