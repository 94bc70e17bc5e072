package profile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Kind classifies a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindNumber
	KindText
)

// Value is a nullable attribute value: null, a number, or a text code.
// The zero Value is null.
type Value struct {
	kind Kind
	num  float64
	text string
}

// Null returns the null value.
func Null() Value { return Value{} }

// Number returns a numeric value.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// Text returns a text value.
func Text(s string) Value { return Value{kind: KindText, text: s} }

// NumberPtr converts a nullable float, as scanned from a database, to a Value.
func NumberPtr(f *float64) Value {
	if f == nil {
		return Null()
	}
	return Number(*f)
}

// TextPtr converts a nullable string to a Value.
func TextPtr(s *string) Value {
	if s == nil {
		return Null()
	}
	return Text(*s)
}

// Kind returns the value's classification.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Float returns the numeric interpretation of v. Text values are parsed.
// Calling Float on a null value is an error.
func (v Value) Float() (float64, error) {
	switch v.kind {
	case KindNumber:
		return v.num, nil
	case KindText:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.text), 64)
		if err != nil {
			return 0, fmt.Errorf("value %q is not numeric", v.text)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("value is null")
	}
}

// String renders the value the way it is compared for categorical attributes.
// Null renders as the empty string.
func (v Value) String() string {
	switch v.kind {
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindText:
		return v.text
	default:
		return ""
	}
}

// Equal reports whether two values are identical. Comparison is case-sensitive.
func (v Value) Equal(o Value) bool {
	if v.IsNull() || o.IsNull() {
		return v.IsNull() && o.IsNull()
	}
	return v.String() == o.String()
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNumber:
		return json.Marshal(v.num)
	case KindText:
		return json.Marshal(v.text)
	default:
		return []byte("null"), nil
	}
}

func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*v = Null()
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = Text(s)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("attribute value must be a number, string or null: %w", err)
	}
	*v = Number(f)
	return nil
}
