// Copyright (c) 2024 Michael D Henderson. All rights reserved.

package results

import (
	"encoding/json"
	"fmt"
)

type Outcome_e int

const (
	Unknown Outcome_e = iota
	Equal
	Mismatch
	RefParserError
	CSTError
	NormalizeError
)

var (
	// EnumToString is a helper map for marshalling the enum
	EnumToString = map[Outcome_e]string{
		Unknown:        "?",
		Equal:          "Equal",
		Mismatch:       "Mismatch",
		RefParserError: "Reference Parser Error",
		CSTError:       "CST Error",
		NormalizeError: "Normalize Error",
	}
	// StringToEnum is a helper map for unmarshalling the enum
	StringToEnum = map[string]Outcome_e{
		"?":                      Unknown,
		"Equal":                  Equal,
		"Mismatch":               Mismatch,
		"Reference Parser Error": RefParserError,
		"CST Error":              CSTError,
		"Normalize Error":        NormalizeError,
	}
)

// MarshalJSON implements the json.Marshaler interface.
func (e Outcome_e) MarshalJSON() ([]byte, error) {
	return json.Marshal(EnumToString[e])
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (e *Outcome_e) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, ok := StringToEnum[s]
	if !ok {
		return fmt.Errorf("invalid Outcome %q", s)
	}
	*e = v
	return nil
}

// String implements the fmt.Stringer interface.
func (e Outcome_e) String() string {
	if s, ok := EnumToString[e]; ok {
		return s
	}
	return fmt.Sprintf("Outcome(%d)", int(e))
}
