// Package numeric provides the parse-with-default handling shared by the
// validator and every calculator. Form values arrive as numbers, numeric
// text, blanks or garbage; none of them ever produce an error here.
package numeric

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type kind uint8

const (
	kindUnset kind = iota
	kindNumber
	kindText
)

// Value is a raw numeric form field. The zero Value is unset.
type Value struct {
	kind kind
	num  float64
	text string
}

// Number wraps a float64.
func Number(f float64) Value {
	return Value{kind: kindNumber, num: f}
}

// Text wraps form text; it is parsed lazily.
func Text(s string) Value {
	return Value{kind: kindText, text: s}
}

// IsSet reports whether the field was supplied at all, even with garbage.
func (v Value) IsSet() bool {
	return v.kind != kindUnset
}

// Float returns the finite number held by v. Blank text, unparsable text and
// non-finite numbers report false.
func (v Value) Float() (float64, bool) {
	switch v.kind {
	case kindNumber:
		return finite(v.num)
	case kindText:
		return ParseText(v.text)
	}
	return 0, false
}

// Or returns the finite number held by v, or fallback.
func (v Value) Or(fallback float64) float64 {
	if f, ok := v.Float(); ok {
		return f
	}
	return fallback
}

// String renders v the way it was supplied.
func (v Value) String() string {
	switch v.kind {
	case kindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case kindText:
		return v.text
	}
	return ""
}

// ParseText parses numeric-looking text. Surrounding whitespace is ignored.
func ParseText(s string) (float64, bool) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, false
	}
	return finite(f)
}

// Coerce converts an arbitrary decoded value (JSON, YAML or Go literal) to a
// finite float64.
func Coerce(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case nil:
		return 0, false
	case Value:
		return v.Float()
	case *Value:
		if v == nil {
			return 0, false
		}
		return v.Float()
	case float64:
		return finite(v)
	case float32:
		return finite(float64(v))
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case int32:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint64:
		return float64(v), true
	case json.Number:
		return ParseText(v.String())
	case string:
		return ParseText(v)
	}
	return 0, false
}

// From builds a Value from an arbitrary decoded value. Unknown types become
// set-but-invalid text so that validation can report them.
func From(value interface{}) Value {
	switch v := value.(type) {
	case nil:
		return Value{}
	case Value:
		return v
	case string:
		return Text(v)
	case json.Number:
		return Text(v.String())
	}
	if f, ok := Coerce(value); ok {
		return Number(f)
	}
	return Text("")
}

func finite(f float64) (float64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// UnmarshalJSON accepts numbers, strings and null. Any other JSON value is
// kept as invalid text instead of failing the whole document.
func (v *Value) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	switch {
	case len(trimmed) == 0, bytes.Equal(trimmed, []byte("null")):
		*v = Value{}
	case trimmed[0] == '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			*v = Text("")
			return nil
		}
		*v = Text(s)
	default:
		f, err := strconv.ParseFloat(string(trimmed), 64)
		if err != nil {
			*v = Text(string(trimmed))
			return nil
		}
		*v = Number(f)
	}
	return nil
}

// MarshalJSON writes numbers as numbers, text as strings and unset as null.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case kindNumber:
		if _, ok := finite(v.num); !ok {
			return []byte("null"), nil
		}
		return []byte(strconv.FormatFloat(v.num, 'f', -1, 64)), nil
	case kindText:
		return json.Marshal(v.text)
	}
	return []byte("null"), nil
}

// UnmarshalYAML accepts any scalar. Non-scalar nodes become invalid text.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		*v = Text("")
		return nil
	}
	switch node.Tag {
	case "!!null":
		*v = Value{}
	case "!!int", "!!float":
		f, err := strconv.ParseFloat(strings.ReplaceAll(node.Value, "_", ""), 64)
		if err != nil {
			*v = Text(node.Value)
			return nil
		}
		*v = Number(f)
	default:
		*v = Text(node.Value)
	}
	return nil
}

// MarshalYAML mirrors MarshalJSON.
func (v Value) MarshalYAML() (interface{}, error) {
	switch v.kind {
	case kindNumber:
		if _, ok := finite(v.num); !ok {
			return nil, nil
		}
		return v.num, nil
	case kindText:
		return v.text, nil
	}
	return nil, nil
}
