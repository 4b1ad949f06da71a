package interp

import (
	"context"
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/ardnew/interp/units"
)

type user struct {
	Name  string
	Email string `json:"email_address"`
	Tags  []string
}

type point struct {
	Lat float64
	Lon float64
}

func TestInterpolate(t *testing.T) {
	when := time.Date(2024, time.March, 5, 14, 7, 9, 0, time.UTC)

	tests := []struct {
		name     string
		template string
		args     any
		opts     []Option
		want     string
		ok       bool
	}{
		// literals and escapes
		{name: "literal", template: "hello {world} \\ ok", want: "hello {world} \\ ok", ok: true},
		{name: "dollar escape", template: "$$", want: "$", ok: true},
		{name: "escaped brace in default", template: `${a:-\}}`, want: "}", ok: true},
		{name: "escaped backslash in default", template: `${a:-\\}`, want: `\`, ok: true},
		{name: "escaped dollar in default", template: `${a:-\$5}`, want: "$5", ok: true},

		// nullish values
		{name: "nil fails", template: "${a}", args: map[string]any{"a": nil}, ok: false},
		{name: "absent fails", template: "x ${a} y", args: map[string]any{}, ok: false},
		{name: "empty string fails", template: "${a}", args: map[string]any{"a": ""}, ok: false},
		{name: "nan fails", template: "${a}", args: map[string]any{"a": math.NaN()}, ok: false},
		{name: "zero time fails", template: "${a}", args: map[string]any{"a": time.Time{}}, ok: false},
		{
			name:     "nil replaced when not failing",
			template: "x ${a} y",
			args:     map[string]any{"a": nil},
			opts:     []Option{WithFailIfMissing(false), WithNullReplacement("-")},
			want:     "x - y",
			ok:       true,
		},
		{name: "false is a value", template: "${a}", args: map[string]any{"a": false}, want: "false", ok: true},
		{name: "zero is a value", template: "${a}", args: map[string]any{"a": 0}, want: "0", ok: true},
		{
			name:     "some missing still renders",
			template: "${a}/${b}",
			args:     map[string]any{"a": "x"},
			opts:     []Option{WithNullReplacement("?")},
			want:     "x/?",
			ok:       true,
		},

		// defaults
		{name: "default used", template: "${a:-foo}", args: map[string]any{"a": nil}, want: "foo", ok: true},
		{name: "default skipped", template: "${a:-foo}", args: map[string]any{"a": "v"}, want: "v", ok: true},
		{
			name:     "default chain",
			template: "${a:-${b:-c}}",
			args:     map[string]any{"b": "B"},
			want:     "B",
			ok:       true,
		},
		{
			name:     "failing default falls to replacement",
			template: "<${a:-${b}}>",
			args:     map[string]any{},
			opts:     []Option{WithFailIfMissing(false), WithNullReplacement("?")},
			want:     "<?>",
			ok:       true,
		},
		{
			name:     "format error uses default",
			template: "${a:date:-never}",
			args:     map[string]any{"a": "soon"},
			want:     "never",
			ok:       true,
		},

		// optional spans
		{name: "optional dropped", template: "1${?${a} lol}2", args: map[string]any{"a": nil}, want: "12", ok: true},
		{name: "optional kept", template: "1${?${a} lol}2", args: map[string]any{"a": "x"}, want: "1x lol2", ok: true},
		{
			name:     "optional dropped on any missing",
			template: "[$?{$a $b}]",
			args:     map[string]any{"a": "x"},
			want:     "[]",
			ok:       true,
		},
		{
			name:     "optional does not count as missing",
			template: "${?$a}",
			args:     map[string]any{},
			want:     "",
			ok:       true,
		},

		// plural
		{
			name:     "exact beats category",
			template: "${a:plural:one{one thing}=2{two things}other{many}}",
			args:     map[string]any{"a": 2},
			want:     "two things",
			ok:       true,
		},
		{
			name:     "category",
			template: "${a:plural:one{one thing}=2{two things}other{many}}",
			args:     map[string]any{"a": 1},
			want:     "one thing",
			ok:       true,
		},
		{
			name:     "missing category fails",
			template: "${a:plural:one{one thing}}",
			args:     map[string]any{"a": 2},
			ok:       false,
		},
		{
			name:     "non number selects other",
			template: "${a:plural:one{one} other{some}}",
			args:     map[string]any{"a": "lots"},
			want:     "some",
			ok:       true,
		},
		{
			name:     "nullish selects other",
			template: "${a:plural:=0{none} other{some}}",
			args:     map[string]any{},
			want:     "some",
			ok:       true,
		},
		{
			name:     "exact fraction",
			template: "${a:plural:=1.5{one and a half} other{$a}}",
			args:     map[string]any{"a": 1.5},
			want:     "one and a half",
			ok:       true,
		},
		{
			name:     "body refers to value",
			template: "${n:plural:one{1 file} other{$n files}}",
			args:     map[string]any{"n": 3},
			want:     "3 files",
			ok:       true,
		},
		{
			name:     "english ordinal",
			template: "${n:ordinal:one{${n}st} two{${n}nd} few{${n}rd} other{${n}th}}",
			args:     map[string]any{"n": 22},
			opts:     []Option{WithLocale("en-US")},
			want:     "22nd",
			ok:       true,
		},
		{
			name:     "english ordinal teen",
			template: "${n:ordinal:one{${n}st} two{${n}nd} few{${n}rd} other{${n}th}}",
			args:     map[string]any{"n": 13},
			opts:     []Option{WithLocale("en-US")},
			want:     "13th",
			ok:       true,
		},

		// select
		{
			name:     "select match",
			template: "${a:select:sunny{S}rainy{R}null{?}}",
			args:     map[string]any{"a": "rainy"},
			want:     "R",
			ok:       true,
		},
		{
			name:     "select null",
			template: "${a:select:sunny{S}rainy{R}null{?}}",
			args:     map[string]any{"a": nil},
			want:     "?",
			ok:       true,
		},
		{
			name:     "select unmatched uses null",
			template: "${a:select:sunny{S}null{?}}",
			args:     map[string]any{"a": "foggy"},
			want:     "?",
			ok:       true,
		},
		{
			name:     "select unmatched without null fails",
			template: "${a:select:sunny{S}}",
			args:     map[string]any{"a": "foggy"},
			ok:       false,
		},
		{
			name:     "select on bool",
			template: "${a:select:true{yes} false{no}}",
			args:     map[string]any{"a": false},
			want:     "no",
			ok:       true,
		},
		{
			name:     "variant missing value does not fail root",
			template: "${a:select:x{[$b]}}",
			args:     map[string]any{"a": "x"},
			want:     "[]",
			ok:       true,
		},
		{
			name:     "variant missing value drops optional",
			template: "<${?${a:select:x{[$b]}}}>",
			args:     map[string]any{"a": "x"},
			want:     "<>",
			ok:       true,
		},

		// formatting
		{name: "unit conversion", template: "${v:km.1}", args: map[string]any{"v": 1500}, want: "1.5", ok: true},
		{name: "unit precision", template: "${v:km.2}", args: map[string]any{"v": 1234}, want: "1.23", ok: true},
		{name: "unit integer", template: "${v:s}", args: map[string]any{"v": 3000}, want: "3", ok: true},
		{name: "percent", template: "${r:%}", args: map[string]any{"r": 0.5}, want: "50", ok: true},
		{name: "percent precision", template: "${r:%.1}", args: map[string]any{"r": 0.1234}, want: "12.3", ok: true},
		{
			name:     "list conjunction",
			template: "${v}",
			args:     map[string]any{"v": []string{"a", "b", "c"}},
			want:     "a, b, and c",
			ok:       true,
		},
		{
			name:     "list conjunction english",
			template: "${v}",
			args:     map[string]any{"v": []string{"a", "b", "c"}},
			opts:     []Option{WithLocale("en-US")},
			want:     "a, b, and c",
			ok:       true,
		},
		{
			name:     "list disjunction",
			template: "${v:disjunction}",
			args:     map[string]any{"v": []any{"a", "b"}},
			want:     "a or b",
			ok:       true,
		},
		{
			name:     "list of units",
			template: "${v:km}",
			args:     map[string]any{"v": []int{1000, 2000}},
			want:     "1 and 2",
			ok:       true,
		},
		{name: "iso date", template: "${t:iso-date}", args: map[string]any{"t": when}, want: "2024-03-05T14:07:09.000Z", ok: true},
		{name: "neutral date", template: "${t:date}", args: map[string]any{"t": when}, want: "Tue Mar 05 2024", ok: true},
		{name: "neutral time", template: "${t:time}", args: map[string]any{"t": when}, want: "14:07:09 GMT+0000 (UTC)", ok: true},
		{
			name:     "neutral time in zone",
			template: "${t:time}",
			args:     map[string]any{"t": when},
			opts:     []Option{WithTimezone("America/New_York")},
			want:     "09:07:09 GMT-0500 (EST)",
			ok:       true,
		},
		{name: "url", template: "?q=${q:url}", args: map[string]any{"q": "a b&c"}, want: "?q=a%20b%26c", ok: true},
		{name: "enum", template: "${s:enum}", args: map[string]any{"s": "v_onFire"}, want: "on fire", ok: true},
		{
			name:     "custom enum",
			template: "${s:enum}",
			args:     map[string]any{"s": "HOT"},
			opts: []Option{WithEnumFormatter(func(v, param string) string {
				return param + "=" + strings.ToLower(v)
			})},
			want: "s=hot",
			ok:   true,
		},
		{
			name:     "latitude",
			template: "${p:lat.3},${p:lon}",
			args:     map[string]any{"p": point{Lat: 12.34567, Lon: 8}},
			want:     "12.346,8",
			ok:       true,
		},
		{
			name:     "latitude missing",
			template: "${p:lat:-none}",
			args:     map[string]any{"p": "here"},
			want:     "none",
			ok:       true,
		},

		// argument sources
		{
			name:     "struct path",
			template: "${u.Name} <${u.email_address}> ${u.tags.1}",
			args:     map[string]any{"u": user{Name: "Ada", Email: "ada@example.com", Tags: []string{"x", "y"}}},
			want:     "Ada <ada@example.com> y",
			ok:       true,
		},
		{
			name:     "pointer root",
			template: "$Name",
			args:     &user{Name: "Grace"},
			want:     "Grace",
			ok:       true,
		},
		{
			name:     "callback",
			template: "${a.b} $c",
			args: func(path string) any {
				if path == "c" {
					return nil
				}

				return strings.ToUpper(path)
			},
			want: "A.B ",
			ok:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok, err := Interpolate(context.Background(), tt.template, tt.args, tt.opts...)
			if err != nil {
				t.Fatalf("Interpolate(%q) error: %v", tt.template, err)
			}

			if ok != tt.ok {
				t.Fatalf("Interpolate(%q) ok = %v, want %v (text %q)", tt.template, ok, tt.ok, got)
			}

			if ok && got != tt.want {
				t.Errorf("Interpolate(%q) = %q, want %q", tt.template, got, tt.want)
			}

			if !ok && got != "" {
				t.Errorf("Interpolate(%q) = %q without a result, want empty", tt.template, got)
			}
		})
	}
}

func TestInterpolate_LiteralRoundTrip(t *testing.T) {
	for _, s := range []string{
		"",
		"plain",
		"braces {} and \\ backslashes }",
		"multi\nline\ttext",
		"unicode ✓ ünïcödé",
		"a\xffb",
		"caf\xe9 latin1",
		"truncated \xe2\x9c",
	} {
		got, ok, err := Interpolate(context.Background(), s, nil)
		if err != nil || !ok || got != s {
			t.Errorf("Interpolate(%q) = %q, %v, %v", s, got, ok, err)
		}
	}
}

func TestInterpolate_InvalidUTF8Default(t *testing.T) {
	got, ok, err := Interpolate(context.Background(), "<${a:-caf\xe9 \\}>}>", nil,
		WithFailIfMissing(false))
	if err != nil || !ok || got != "<caf\xe9 }>>" {
		t.Errorf("Interpolate() = %q, %v, %v", got, ok, err)
	}
}

func TestCompile_Idempotent(t *testing.T) {
	const src = "${n:plural:=0{none} one{${?$who }one} other{$n ${u:km.1}}}${?, $x}"

	args := map[string]any{"n": 4, "u": 4200, "x": "y"}

	a, err := Compile(context.Background(), src)
	if err != nil {
		t.Fatal(err)
	}

	b, err := Compile(context.Background(), src)
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(a.Expansion(), b.Expansion()) {
		t.Errorf("expansions differ:\n%#v\n%#v", a.Expansion(), b.Expansion())
	}

	sa, oka := a.Render(args)
	sb, okb := b.Render(args)

	if sa != sb || oka != okb {
		t.Errorf("renders differ: %q/%v vs %q/%v", sa, oka, sb, okb)
	}

	if sa != "4 4.2, y" {
		t.Errorf("Render() = %q", sa)
	}
}

func TestCompile_InvalidUnit(t *testing.T) {
	_, err := Compile(context.Background(), "${v:bogus-unit}")
	if err == nil {
		t.Fatal("expected error")
	}

	var ue *InvalidUnitError
	if !errors.As(err, &ue) {
		t.Fatalf("got %T (%v), want *InvalidUnitError", err, err)
	}

	if ue.Unit != "bogus-unit" || ue.Param != "v" {
		t.Errorf("got unit %q param %q", ue.Unit, ue.Param)
	}

	if !errors.Is(err, ErrInvalidUnit) {
		t.Error("error does not wrap ErrInvalidUnit")
	}

	if !errors.Is(err, units.ErrUnknownUnit) {
		t.Error("error does not wrap units.ErrUnknownUnit")
	}
}

func TestCompile_InvalidUnitNested(t *testing.T) {
	_, err := Compile(context.Background(), "${n:plural:other{${?${v:parsec}}}}")

	var ue *InvalidUnitError
	if !errors.As(err, &ue) || ue.Unit != "parsec" {
		t.Fatalf("got %v, want invalid unit parsec", err)
	}
}

func TestCompile_CustomUnits(t *testing.T) {
	svc := units.Table{
		"m":      {Base: "m", Scale: 1},
		"league": {Base: "m", Scale: 4828.032},
	}

	tmpl, err := Compile(context.Background(), "${d:league.1}", WithUnits(svc))
	if err != nil {
		t.Fatal(err)
	}

	got, ok := tmpl.Render(map[string]any{"d": 9656.064})
	if !ok || got != "2" {
		t.Errorf("Render() = %q, %v", got, ok)
	}

	if _, err := Compile(context.Background(), "${d:km}", WithUnits(svc)); err == nil {
		t.Error("km accepted by a table without it")
	}
}

func TestCompile_Errors(t *testing.T) {
	tests := []struct {
		name     string
		template string
		opts     []Option
		target   error
	}{
		{"syntax", "${", nil, ErrSyntax},
		{"locale", "x", []Option{WithLocale("not a locale!")}, ErrLocale},
		{"timezone", "x", []Option{WithTimezone("Mars/Olympus_Mons")}, ErrLocale},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(context.Background(), tt.template, tt.opts...)
			if !errors.Is(err, tt.target) {
				t.Errorf("got %v, want %v", err, tt.target)
			}
		})
	}
}

func TestTemplate_Accessors(t *testing.T) {
	tmpl, err := Compile(context.Background(), "hi $x", WithLocale("de-DE"))
	if err != nil {
		t.Fatal(err)
	}

	if tmpl.Source() != "hi $x" || tmpl.String() != "hi $x" {
		t.Errorf("Source() = %q", tmpl.Source())
	}

	if tmpl.Formatter().Locale() != "de-DE" {
		t.Errorf("Locale() = %q", tmpl.Formatter().Locale())
	}

	if len(tmpl.Expansion()) != 2 {
		t.Errorf("Expansion() = %#v", tmpl.Expansion())
	}
}

func TestTemplate_ConcurrentRender(t *testing.T) {
	tmpl, err := Compile(context.Background(), "${n:plural:one{one} other{$n}} ${v}")
	if err != nil {
		t.Fatal(err)
	}

	done := make(chan struct{})

	for i := range 8 {
		go func() {
			defer func() { done <- struct{}{} }()

			got, ok := tmpl.Render(map[string]any{"n": i + 2, "v": "x"})
			if !ok || !strings.HasSuffix(got, " x") {
				t.Errorf("Render() = %q, %v", got, ok)
			}
		}()
	}

	for range 8 {
		<-done
	}
}
