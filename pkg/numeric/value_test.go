package numeric

import (
	"encoding/json"
	"math"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestValueOr(t *testing.T) {
	tests := []struct {
		name     string
		value    Value
		fallback float64
		expected float64
	}{
		{"Unset uses fallback", Value{}, 15000, 15000},
		{"Number", Number(65000), 0, 65000},
		{"Zero number is kept", Number(0), 7.5, 0},
		{"Numeric text", Text("7.5"), 0, 7.5},
		{"Padded text", Text("  42 "), 0, 42},
		{"Blank text", Text("   "), 5, 5},
		{"Garbage text", Text("abc"), 5, 5},
		{"Thousands separators are not numeric", Text("65,000"), 0, 0},
		{"Exponent text", Text("1e3"), 0, 1000},
		{"NaN number", Number(math.NaN()), 3, 3},
		{"Infinite number", Number(math.Inf(1)), 3, 3},
		{"Infinity text", Text("Inf"), 3, 3},
		{"Negative text", Text("-1200"), 0, -1200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.value.Or(tt.fallback)
			if result != tt.expected {
				t.Errorf("Or(%v) = %v, expected %v", tt.fallback, result, tt.expected)
			}
		})
	}
}

func TestValueIsSet(t *testing.T) {
	if (Value{}).IsSet() {
		t.Errorf("zero Value should be unset")
	}
	if !Text("").IsSet() {
		t.Errorf("blank text is still a supplied field")
	}
	if !Number(0).IsSet() {
		t.Errorf("zero number is a supplied field")
	}
}

func TestCoerce(t *testing.T) {
	tests := []struct {
		name     string
		input    interface{}
		expected float64
		ok       bool
	}{
		{"nil", nil, 0, false},
		{"float64", 12.5, 12.5, true},
		{"int", 7, 7, true},
		{"int64", int64(9), 9, true},
		{"string", "3.25", 3.25, true},
		{"json number", json.Number("18200"), 18200, true},
		{"bool", true, 0, false},
		{"Value", Number(4), 4, true},
		{"nil Value pointer", (*Value)(nil), 0, false},
		{"slice", []int{1}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, ok := Coerce(tt.input)
			if ok != tt.ok || result != tt.expected {
				t.Errorf("Coerce(%v) = (%v, %v), expected (%v, %v)", tt.input, result, ok, tt.expected, tt.ok)
			}
		})
	}
}

func TestFrom(t *testing.T) {
	if From(nil).IsSet() {
		t.Errorf("From(nil) should be unset")
	}
	if got := From(12).Or(0); got != 12 {
		t.Errorf("From(12) = %v, expected 12", got)
	}
	if got := From("8"); got.String() != "8" {
		t.Errorf("From(\"8\") should keep its text, got %q", got.String())
	}
	unknown := From(map[string]int{})
	if !unknown.IsSet() {
		t.Errorf("unknown types should be set but invalid")
	}
	if _, ok := unknown.Float(); ok {
		t.Errorf("unknown types should not parse")
	}
}

func TestValueJSON(t *testing.T) {
	var payload struct {
		Price    Value `json:"price"`
		Rate     Value `json:"rate"`
		Blank    Value `json:"blank"`
		Missing  Value `json:"missing"`
		Null     Value `json:"null"`
		Bool     Value `json:"bool"`
		Object   Value `json:"object"`
		Negative Value `json:"negative"`
	}

	data := `{"price": 65000, "rate": "7.5", "blank": "", "null": null, "bool": true, "object": {"a": 1}, "negative": -3}`
	if err := json.Unmarshal([]byte(data), &payload); err != nil {
		t.Fatalf("unexpected error decoding lenient values: %v", err)
	}

	if got := payload.Price.Or(0); got != 65000 {
		t.Errorf("price = %v, expected 65000", got)
	}
	if got := payload.Rate.Or(0); got != 7.5 {
		t.Errorf("rate = %v, expected 7.5", got)
	}
	if !payload.Blank.IsSet() || payload.Blank.Or(-1) != -1 {
		t.Errorf("blank should be set and fall back")
	}
	if payload.Missing.IsSet() || payload.Null.IsSet() {
		t.Errorf("missing and null should be unset")
	}
	if !payload.Bool.IsSet() || payload.Bool.Or(-1) != -1 {
		t.Errorf("bool should be set and fall back")
	}
	if !payload.Object.IsSet() || payload.Object.Or(-1) != -1 {
		t.Errorf("object should be set and fall back")
	}
	if got := payload.Negative.Or(0); got != -3 {
		t.Errorf("negative = %v, expected -3", got)
	}

	encoded, err := json.Marshal(struct {
		A Value `json:"a"`
		B Value `json:"b"`
		C Value `json:"c"`
		D Value `json:"d"`
	}{Number(1.5), Text("x"), Value{}, Number(math.NaN())})
	if err != nil {
		t.Fatalf("unexpected marshal error: %v", err)
	}
	if string(encoded) != `{"a":1.5,"b":"x","c":null,"d":null}` {
		t.Errorf("unexpected encoding %s", encoded)
	}
}

func TestValueYAML(t *testing.T) {
	var payload struct {
		Price   Value `yaml:"price"`
		Rate    Value `yaml:"rate"`
		Term    Value `yaml:"term"`
		Blank   Value `yaml:"blank"`
		List    Value `yaml:"list"`
		Missing Value `yaml:"missing"`
	}

	data := "price: 65000\nrate: \"7.5\"\nterm: 5\nblank: ~\nlist: [1, 2]\n"
	if err := yaml.Unmarshal([]byte(data), &payload); err != nil {
		t.Fatalf("unexpected error decoding yaml: %v", err)
	}

	if got := payload.Price.Or(0); got != 65000 {
		t.Errorf("price = %v, expected 65000", got)
	}
	if got := payload.Rate.Or(0); got != 7.5 {
		t.Errorf("rate = %v, expected 7.5", got)
	}
	if got := payload.Term.Or(0); got != 5 {
		t.Errorf("term = %v, expected 5", got)
	}
	if payload.Blank.IsSet() || payload.Missing.IsSet() {
		t.Errorf("null and missing should be unset")
	}
	if !payload.List.IsSet() || payload.List.Or(-1) != -1 {
		t.Errorf("sequence should be set and fall back")
	}
}
