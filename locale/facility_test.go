package locale_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/ardnew/interp/locale"
)

func TestPluralCategory(t *testing.T) {
	t.Parallel()

	tests := []struct {
		tag      string
		n        float64
		typ      locale.PluralType
		expected string
	}{
		{"C", 1, locale.Cardinal, locale.CategoryOne},
		{"C", 0, locale.Cardinal, locale.CategoryOther},
		{"C", 1.5, locale.Cardinal, locale.CategoryOther},
		{"C", 2, locale.Ordinal, locale.CategoryOther},
		{"en", 1, locale.Cardinal, locale.CategoryOne},
		{"en", 2, locale.Cardinal, locale.CategoryOther},
		{"en", 1.5, locale.Cardinal, locale.CategoryOther},
		{"en", 1, locale.Ordinal, locale.CategoryOne},
		{"en", 2, locale.Ordinal, locale.CategoryTwo},
		{"en", 3, locale.Ordinal, locale.CategoryFew},
		{"en", 4, locale.Ordinal, locale.CategoryOther},
		{"en", 11, locale.Ordinal, locale.CategoryOther},
		{"en", 22, locale.Ordinal, locale.CategoryTwo},
		{"fr", 0, locale.Cardinal, locale.CategoryOne},
		{"fr", 1.5, locale.Cardinal, locale.CategoryOne},
		{"ru", 2, locale.Cardinal, locale.CategoryFew},
		{"ru", 5, locale.Cardinal, locale.CategoryMany},
		{"ru", 21, locale.Cardinal, locale.CategoryOne},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%s/%v", tt.tag, tt.typ, tt.n), func(t *testing.T) {
			t.Parallel()

			f, err := locale.New(tt.tag, "")
			require.NoError(t, err)
			assert.Equal(t, tt.expected, f.PluralCategory(tt.n, tt.typ))
		})
	}
}

func TestNeutralFacility(t *testing.T) {
	t.Parallel()

	var f locale.Neutral

	assert.Equal(t, language.Und, f.Tag())
	assert.Equal(t, "1500", f.FormatNumber(1500, 2))
	assert.Equal(t, "0.33", f.FormatNumber(1.0/3, 2))
	assert.Equal(t, "-2.50", f.FormatNumber(-2.5, 2))
	assert.Equal(t, "Infinity", f.FormatNumber(math.Inf(1), 2))
	assert.Equal(t, "-Infinity", f.FormatNumber(math.Inf(-1), 0))
	assert.Equal(t, "", f.FormatList(nil, locale.Conjunction))
	assert.Equal(t, "a", f.FormatList([]string{"a"}, locale.Conjunction))
	assert.Equal(t, "a and b", f.FormatList([]string{"a", "b"}, locale.ListNone))
	assert.Equal(t, "a, b, c, or d", f.FormatList([]string{"a", "b", "c", "d"}, locale.Disjunction))
	assert.Equal(t, "", f.FormatAny(nil))
}

func TestClean(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in       string
		expected string
	}{
		{"v_onFire", "on fire"},
		{"w_heavy_rain", "heavy rain"},
		{"x_heavy_rain", "x heavy rain"},
		{"LOW_BATTERY", "low battery"},
		{"fooBarBaz", "foo bar baz"},
		{"HTTPServer", "httpserver"},
		{"already clean", "already clean"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, locale.Clean(tt.in))
		})
	}
}

func TestEscapeComponent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in       string
		expected string
	}{
		{"plain", "plain"},
		{"-_.!~*'()", "-_.!~*'()"},
		{"a b", "a%20b"},
		{"a+b=c&d", "a%2Bb%3Dc%26d"},
		{"/?#[]@", "%2F%3F%23%5B%5D%40"},
		{"caffè", "caff%C3%A8"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, locale.EscapeComponent(tt.in))
		})
	}
}

func TestReserved(t *testing.T) {
	t.Parallel()

	for _, opt := range []string{"", "%", "iso-date", "date", "time", "url", "enum", "lat", "lon"} {
		assert.True(t, locale.Reserved(opt), opt)
	}

	for _, opt := range []string{"km", "C", "dates", "URL"} {
		assert.False(t, locale.Reserved(opt), opt)
	}
}

func TestParseListStyle(t *testing.T) {
	t.Parallel()

	style, ok := locale.ParseListStyle("disjunction")
	require.True(t, ok)
	assert.Equal(t, locale.Disjunction, style)

	_, ok = locale.ParseListStyle("none")
	assert.False(t, ok)
}
