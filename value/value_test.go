package value

import (
	"encoding/json"
	"math"
	"testing"
	"time"
)

type place struct {
	Name   string
	Region string `json:"region_code"`
	inner  string
}

func (p place) Member(name string) (any, bool) {
	if name != "label" {
		return nil, false
	}

	return p.Name + "/" + p.Region, true
}

// venue has methods with side effects that paths must not reach.
type venue struct {
	Name   string
	closed int
}

func (v *venue) Close() error {
	v.closed++

	return nil
}

func (v *venue) Reset() string {
	v.Name = ""

	return "reset"
}

func (v *venue) Display() string { return "The " + v.Name }

type named string

func TestNullish(t *testing.T) {
	var (
		nilPtr   *place
		nilMap   map[string]any
		nilSlice []string
		nilTime  *time.Time
	)

	tests := []struct {
		name  string
		value any
		want  bool
	}{
		{"nil", nil, true},
		{"empty string", "", true},
		{"empty named string", named(""), true},
		{"nan", math.NaN(), true},
		{"nan32", float32(math.NaN()), true},
		{"zero time", time.Time{}, true},
		{"nil time pointer", nilTime, true},
		{"nil pointer", nilPtr, true},
		{"nil map", nilMap, true},
		{"nil slice", nilSlice, true},
		{"false", false, false},
		{"zero", 0, false},
		{"zero float", 0.0, false},
		{"space", " ", false},
		{"empty slice", []string{}, false},
		{"time", time.Unix(0, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Nullish(tt.value); got != tt.want {
				t.Errorf("Nullish(%#v) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestNumber(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  float64
		ok    bool
	}{
		{"int", 3, 3, true},
		{"int8", int8(-4), -4, true},
		{"uint64", uint64(7), 7, true},
		{"float32", float32(1.5), 1.5, true},
		{"json number", json.Number("2.25"), 2.25, true},
		{"bool", true, 0, false},
		{"string", "3", 0, false},
		{"nil", nil, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Number(tt.value)
			if ok != tt.ok || got != tt.want {
				t.Errorf("Number(%#v) = (%v, %v), want (%v, %v)",
					tt.value, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestSequence(t *testing.T) {
	if _, ok := Sequence("abc"); ok {
		t.Error("string must not be a sequence")
	}

	if _, ok := Sequence([]byte("abc")); ok {
		t.Error("byte slice must not be a sequence")
	}

	seq, ok := Sequence([]int{1, 2, 3})
	if !ok || len(seq) != 3 || seq[2] != 3 {
		t.Errorf("Sequence([]int) = %v, %v", seq, ok)
	}

	seq, ok = Sequence([2]string{"a", "b"})
	if !ok || len(seq) != 2 || seq[0] != "a" {
		t.Errorf("Sequence([2]string) = %v, %v", seq, ok)
	}
}

func TestLookup(t *testing.T) {
	root := map[string]any{
		"a": map[string]any{
			"b": "1",
			"c": map[string]string{"d": "deep"},
		},
		"list": []any{"x", "y"},
		"place": &place{
			Name:   "Rome",
			Region: "IT-62",
			inner:  "hidden",
		},
	}

	tests := []struct {
		path string
		want any
	}{
		{"a.b", "1"},
		{"a.c.d", "deep"},
		{"list.1", "y"},
		{"list.2", nil},
		{"place.Name", "Rome"},
		{"place.name", "Rome"},
		{"place.region_code", "IT-62"},
		{"place.label", "Rome/IT-62"},
		{"place.inner", nil},
		{"missing", nil},
		{"missing.deeper", nil},
		{"a.b.c", nil},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := Lookup(root, tt.path); got != tt.want {
				t.Errorf("Lookup(%q) = %#v, want %#v", tt.path, got, tt.want)
			}
		})
	}
}

func TestField_Methods(t *testing.T) {
	v := &venue{Name: "Forum"}
	root := map[string]any{"venue": v, "value": *v}

	tests := []struct {
		path string
		want any
	}{
		{"venue.display", "The Forum"},
		{"venue.Display", "The Forum"},
		{"venue.close", nil},
		{"venue.Close", nil},
		{"venue.reset", nil},
		{"venue.name", "Forum"},
		{"value.close", nil},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := Lookup(root, tt.path); got != tt.want {
				t.Errorf("Lookup(%q) = %#v, want %#v", tt.path, got, tt.want)
			}
		})
	}

	if v.closed != 0 || v.Name != "Forum" {
		t.Errorf("lookup invoked a method with side effects: %+v", v)
	}
}

func TestFieldNilPointer(t *testing.T) {
	var p *place

	if v, ok := Field(p, "label"); ok {
		t.Errorf("Field(nil, label) = %v, want not found", v)
	}
}

func TestString(t *testing.T) {
	a, b := 0.1, 0.2

	tests := []struct {
		value any
		want  string
	}{
		{nil, ""},
		{"x", "x"},
		{false, "false"},
		{3, "3"},
		{1.5, "1.5"},
		{a + b, "0.30000000000000004"},
		{1e21, "1e+21"},
		{math.Inf(1), "Infinity"},
		{math.Inf(-1), "-Infinity"},
		{named("n"), "n"},
	}

	for _, tt := range tests {
		if got := String(tt.value); got != tt.want {
			t.Errorf("String(%#v) = %q, want %q", tt.value, got, tt.want)
		}
	}
}
