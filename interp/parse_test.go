package interp

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/ardnew/interp/locale"
)

func ph(param string) Placeholder {
	return Placeholder{Param: param, Precision: NoPrecision}
}

func TestParse_Chunks(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Expansion
	}{
		{
			name:  "empty",
			input: "",
			want:  Expansion{},
		},
		{
			name:  "literal only",
			input: "hello, world",
			want:  Expansion{Literal{Text: "hello, world"}},
		},
		{
			name:  "dollar escape",
			input: "a$$b",
			want:  Expansion{Literal{Text: "a$b"}},
		},
		{
			name:  "backslash outside nesting is literal",
			input: `a\}b`,
			want:  Expansion{Literal{Text: `a\}b`}},
		},
		{
			name:  "bare identifier",
			input: "hi $name!",
			want:  Expansion{Literal{Text: "hi "}, ph("name"), Literal{Text: "!"}},
		},
		{
			name:  "bare identifier stops at dot",
			input: "$a.b",
			want:  Expansion{ph("a"), Literal{Text: ".b"}},
		},
		{
			name:  "braced path",
			input: "${a.b.c}",
			want:  Expansion{ph("a.b.c")},
		},
		{
			name:  "unit with precision",
			input: "${v:km.1}",
			want: Expansion{Placeholder{
				Param: "v", Option: "km", Precision: 1,
			}},
		},
		{
			name:  "percent",
			input: "${r:%}",
			want: Expansion{Placeholder{
				Param: "r", Option: "%", Precision: NoPrecision,
			}},
		},
		{
			name:  "list style",
			input: "${l:disjunction}",
			want: Expansion{Placeholder{
				Param: "l", List: locale.Disjunction, Precision: NoPrecision,
			}},
		},
		{
			name:  "list style with option and default",
			input: "${l:conjunction:date:-never}",
			want: Expansion{Placeholder{
				Param:     "l",
				Option:    "date",
				List:      locale.Conjunction,
				Precision: NoPrecision,
				Default:   Expansion{Literal{Text: "never"}},
			}},
		},
		{
			name:  "default",
			input: "${a:-foo}",
			want: Expansion{Placeholder{
				Param: "a", Precision: NoPrecision,
				Default: Expansion{Literal{Text: "foo"}},
			}},
		},
		{
			name:  "empty default",
			input: "${a:-}",
			want: Expansion{Placeholder{
				Param: "a", Precision: NoPrecision, Default: Expansion{},
			}},
		},
		{
			name:  "nested default",
			input: "${a:-${b:-c}}",
			want: Expansion{Placeholder{
				Param: "a", Precision: NoPrecision,
				Default: Expansion{Placeholder{
					Param: "b", Precision: NoPrecision,
					Default: Expansion{Literal{Text: "c"}},
				}},
			}},
		},
		{
			name:  "escapes in default",
			input: `${a:-\{x\} \\ \$}`,
			want: Expansion{Placeholder{
				Param: "a", Precision: NoPrecision,
				Default: Expansion{Literal{Text: `{x} \ $`}},
			}},
		},
		{
			name:  "unknown escape kept",
			input: `${a:-x\ny}`,
			want: Expansion{Placeholder{
				Param: "a", Precision: NoPrecision,
				Default: Expansion{Literal{Text: `x\ny`}},
			}},
		},
		{
			name:  "optional brace first",
			input: "1${?${a} lol}2",
			want: Expansion{
				Literal{Text: "1"},
				Optional{Pattern: Expansion{ph("a"), Literal{Text: " lol"}}},
				Literal{Text: "2"},
			},
		},
		{
			name:  "optional question first",
			input: "$?{, $a}",
			want: Expansion{
				Optional{Pattern: Expansion{Literal{Text: ", "}, ph("a")}},
			},
		},
		{
			name:  "plural",
			input: "${n:plural:=0{none} one{one} other{$n}}",
			want: Expansion{Plural{
				Param: "n",
				Type:  locale.Cardinal,
				Variants: []Variant{
					{Key: "=0", Body: Expansion{Literal{Text: "none"}}},
					{Key: "one", Body: Expansion{Literal{Text: "one"}}},
					{Key: "other", Body: Expansion{ph("n")}},
				},
			}},
		},
		{
			name:  "exact selector normalized",
			input: "${n:plural:=2.0{two}=-0{zero}}",
			want: Expansion{Plural{
				Param: "n",
				Type:  locale.Cardinal,
				Variants: []Variant{
					{Key: "=2", Body: Expansion{Literal{Text: "two"}}},
					{Key: "=0", Body: Expansion{Literal{Text: "zero"}}},
				},
			}},
		},
		{
			name:  "ordinal",
			input: "${n:ordinal:one{st} other{th}}",
			want: Expansion{Plural{
				Param: "n",
				Type:  locale.Ordinal,
				Variants: []Variant{
					{Key: "one", Body: Expansion{Literal{Text: "st"}}},
					{Key: "other", Body: Expansion{Literal{Text: "th"}}},
				},
			}},
		},
		{
			name:  "select with whitespace",
			input: "${w:select:\n  sunny {S}\n  null {?}\n}",
			want: Expansion{Select{
				Param: "w",
				Variants: []Variant{
					{Key: "sunny", Body: Expansion{Literal{Text: "S"}}},
					{Key: "null", Body: Expansion{Literal{Text: "?"}}},
				},
			}},
		},
		{
			name:  "empty variant body",
			input: "${w:select:a{}}",
			want: Expansion{Select{
				Param:    "w",
				Variants: []Variant{{Key: "a", Body: Expansion{}}},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.input, err)
			}

			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse(%q)\n got: %#v\nwant: %#v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		reason string
		line   int
		column int
	}{
		{"trailing dollar", "abc$", "unexpected end of input after '$'", 1, 4},
		{"dollar space", "$ x", "unexpected ' ' after '$'", 1, 1},
		{"missing name", "${}", "expected parameter name", 1, 3},
		{"unterminated path", "${a", "expected ':' or '}'", 1, 4},
		{"empty option", "${a:}", "expected format option", 1, 5},
		{"unterminated default", "${a:-foo", "expected '}'", 1, 9},
		{"unterminated optional", "${?foo", "expected '}'", 1, 7},
		{"question without brace", "$?x", "expected '{' after '$?'", 1, 3},
		{"missing precision", "${v:km.}", "expected precision digits", 1, 8},
		{"precision too large", "${v:km.21}", "out of range", 1, 8},
		{"junk after option", "${v:km x}", "expected ':-' or '}'", 1, 7},
		{"keyword without colon", "${n:plural}", "expected ':' after \"plural\"", 1, 11},
		{"no variants", "${n:plural:}", "has no variants", 1, 13},
		{"duplicate variant", "${n:plural:one{x} one{y}}", "duplicate selector \"one\"", 1, 19},
		{"duplicate exact variant", "${n:plural:=1{x} =1.0{y}}", "duplicate selector \"=1\"", 1, 18},
		{"bad category", "${n:plural:lots{x}}", "invalid plural selector", 1, 12},
		{"bad exact", "${n:plural:=abc{x}}", "invalid exact selector", 1, 12},
		{"nan exact", "${n:plural:=NaN{x}}", "invalid exact selector", 1, 12},
		{"variant without body", "${s:select:a b{x}}", "expected '{' after selector \"a\"", 1, 14},
		{"unterminated selector", "${s:select:a{x}", "expected '}'", 1, 16},
		{"second line", "line one\n  ${", "expected parameter name", 2, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			if err == nil {
				t.Fatalf("Parse(%q) succeeded, want error", tt.input)
			}

			if !errors.Is(err, ErrSyntax) {
				t.Errorf("error %v does not wrap ErrSyntax", err)
			}

			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("error %T is not a *ParseError", err)
			}

			if !strings.Contains(pe.Reason, tt.reason) {
				t.Errorf("reason = %q, want substring %q", pe.Reason, tt.reason)
			}

			if pe.Line != tt.line || pe.Column != tt.column {
				t.Errorf("position = %s, want %d:%d", pe.Position, tt.line, tt.column)
			}
		})
	}
}

func TestParse_MaxDepth(t *testing.T) {
	ok := strings.Repeat("${?", MaxDepth) + "x" + strings.Repeat("}", MaxDepth)
	if _, err := Parse(ok); err != nil {
		t.Fatalf("depth %d: unexpected error: %v", MaxDepth, err)
	}

	deep := strings.Repeat("${?", MaxDepth+1) + "x" + strings.Repeat("}", MaxDepth+1)

	_, err := Parse(deep)
	if !errors.Is(err, ErrSyntax) {
		t.Fatalf("depth %d: got %v, want syntax error", MaxDepth+1, err)
	}
}

func TestParseError_Snippet(t *testing.T) {
	_, err := Parse("ok\n${a:-x")

	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("got %v, want *ParseError", err)
	}

	want := "  2 | ${a:-x\n" + strings.Repeat(" ", 6+6) + "^"
	if got := pe.Snippet(); got != want {
		t.Errorf("Snippet() =\n%s\nwant\n%s", got, want)
	}

	if !strings.HasPrefix(pe.Error(), "syntax error at line 2, column 7: ") {
		t.Errorf("Error() = %q", pe.Error())
	}
}

func TestExpansion_Params(t *testing.T) {
	e, err := Parse("$a ${b.c} ${?$a $d} ${n:plural:one{$e} other{${f:-$g}}} ${s:select:x{$a}}")
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"a", "b.c", "d", "n", "e", "f", "g", "s"}
	if got := e.Params(); !reflect.DeepEqual(got, want) {
		t.Errorf("Params() = %v, want %v", got, want)
	}
}

func TestExpansion_WalkStops(t *testing.T) {
	e, err := Parse("$a $b $c")
	if err != nil {
		t.Fatal(err)
	}

	n := 0
	for range e.Walk() {
		n++
		if n == 2 {
			break
		}
	}

	if n != 2 {
		t.Errorf("walked %d chunks after break, want 2", n)
	}
}
