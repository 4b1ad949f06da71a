// Package value classifies and inspects the loosely typed Go values that
// arrive as template arguments.
package value

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// Nullish reports whether v counts as absent for templating purposes:
// nil (including typed nil pointers, maps, slices and interfaces), the empty
// string, NaN, and the zero [time.Time].
func Nullish(v any) bool {
	switch v := v.(type) {
	case nil:
		return true

	case string:
		return v == ""

	case float64:
		return math.IsNaN(v)

	case float32:
		return math.IsNaN(float64(v))

	case time.Time:
		return v.IsZero()

	case *time.Time:
		return v == nil || v.IsZero()
	}

	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface,
		reflect.Func, reflect.Chan:
		return rv.IsNil()

	case reflect.String:
		return rv.Len() == 0

	case reflect.Float32, reflect.Float64:
		return math.IsNaN(rv.Float())

	default:
		return false
	}
}

// Number returns v as a float64 when v has a numeric kind.
// Booleans are not numbers.
func Number(v any) (float64, bool) {
	switch v := v.(type) {
	case float64:
		return v, true

	case int:
		return float64(v), true

	case json.Number:
		f, err := v.Float64()

		return f, err == nil
	}

	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32,
		reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true

	case reflect.Float32, reflect.Float64:
		return rv.Float(), true

	default:
		return 0, false
	}
}

// Time returns v as a [time.Time] when v is a time or a non-nil pointer to
// one.
func Time(v any) (time.Time, bool) {
	switch v := v.(type) {
	case time.Time:
		return v, true

	case *time.Time:
		if v != nil {
			return *v, true
		}
	}

	return time.Time{}, false
}

// Sequence returns the elements of v when v is a slice or an array.
// Strings and byte slices are not sequences.
func Sequence(v any) ([]any, bool) {
	switch v := v.(type) {
	case nil, string, []byte:
		return nil, false

	case []any:
		return v, true

	case []string:
		seq := make([]any, len(v))
		for i, s := range v {
			seq[i] = s
		}

		return seq, true
	}

	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		seq := make([]any, rv.Len())
		for i := range seq {
			seq[i] = rv.Index(i).Interface()
		}

		return seq, true

	default:
		return nil, false
	}
}

// Lookup follows the dotted path through root and returns the value found,
// or nil when any segment is missing.
func Lookup(root any, path string) any {
	v := root

	for seg := range strings.SplitSeq(path, ".") {
		next, ok := Field(v, seg)
		if !ok {
			return nil
		}

		v = next
	}

	return v
}

// Member is implemented by values that expose computed members to
// templates. Member reports false for names it does not define.
type Member interface {
	Member(name string) (any, bool)
}

// accessors are the methods called for a path segment of the same name.
// Other methods are never invoked from a template path.
//
//nolint:gochecknoglobals
var accessors = map[string]bool{"Display": true}

// Field returns the member of v named name.
//
// Maps are indexed by key, slices and arrays by decimal index, and structs
// by exported field (exact name, capitalized name, or json tag). A [Member]
// supplies its own computed members, and a Display method stands for the
// display member. Pointers and interfaces are dereferenced.
func Field(v any, name string) (any, bool) {
	if v == nil {
		return nil, false
	}

	switch m := v.(type) {
	case map[string]any:
		x, found := m[name]

		return x, found

	case Member:
		if Nullish(m) {
			return nil, false
		}

		if x, ok := m.Member(name); ok {
			return x, true
		}
	}

	rv := reflect.ValueOf(v)

	if x, ok := method(rv, name); ok {
		return x, true
	}

	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, false
		}

		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Map:
		return mapIndex(rv, name)

	case reflect.Slice, reflect.Array:
		i, err := strconv.Atoi(name)
		if err != nil || i < 0 || i >= rv.Len() {
			return nil, false
		}

		return rv.Index(i).Interface(), true

	case reflect.Struct:
		return structField(rv, name)

	default:
		return nil, false
	}
}

func mapIndex(rv reflect.Value, name string) (any, bool) {
	kt := rv.Type().Key()
	if kt.Kind() != reflect.String {
		return nil, false
	}

	x := rv.MapIndex(reflect.ValueOf(name).Convert(kt))
	if !x.IsValid() {
		return nil, false
	}

	return x.Interface(), true
}

func structField(rv reflect.Value, name string) (any, bool) {
	rt := rv.Type()
	upper := capitalize(name)

	for i := range rt.NumField() {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}

		tag, _, _ := strings.Cut(sf.Tag.Get("json"), ",")
		if sf.Name == name || sf.Name == upper || (tag != "" && tag == name) {
			return rv.Field(i).Interface(), true
		}
	}

	if rv.CanAddr() {
		return method(rv.Addr(), name)
	}

	return nil, false
}

func method(rv reflect.Value, name string) (any, bool) {
	if !rv.IsValid() {
		return nil, false
	}

	if (rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface) &&
		rv.IsNil() {
		return nil, false
	}

	name = capitalize(name)
	if !accessors[name] {
		return nil, false
	}

	m := rv.MethodByName(name)
	if !m.IsValid() {
		return nil, false
	}

	mt := m.Type()
	if mt.NumIn() != 0 || mt.NumOut() != 1 {
		return nil, false
	}

	return m.Call(nil)[0].Interface(), true
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || unicode.IsUpper(r) {
		return s
	}

	return string(unicode.ToUpper(r)) + s[size:]
}

// String converts v to text without any locale awareness.
func String(v any) string {
	switch v := v.(type) {
	case nil:
		return ""

	case string:
		return v

	case bool:
		return strconv.FormatBool(v)

	case fmt.Stringer:
		return v.String()

	case error:
		return v.Error()
	}

	if f, ok := Number(v); ok {
		return FormatFloat(f)
	}

	return fmt.Sprint(v)
}

// FormatFloat renders f with the shortest representation that round-trips,
// switching to exponent form only for very large or very small magnitudes.
// Infinities are spelled "Infinity" and "-Infinity".
func FormatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}

	abs := math.Abs(f)
	if abs != 0 && (abs >= 1e21 || abs < 1e-6) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}

	return strconv.FormatFloat(f, 'f', -1, 64)
}
