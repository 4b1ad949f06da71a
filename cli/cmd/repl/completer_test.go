package repl

import (
	"slices"
	"strings"
	"testing"
)

func TestPathBounds(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		cursor    int
		wantWord  string
		wantStart int
		wantEnd   int
		wantOK    bool
		braced    bool
	}{
		{"braced", "Hi ${na", 7, "na", 5, 7, true, true},
		{"braced_dotted", "${user.na", 9, "user.na", 2, 9, true, true},
		{"bare", "Hi $na", 6, "na", 4, 6, true, false},
		{"optional", "${?us", 5, "us", 3, 5, true, true},
		{"optional_alt", "$?{us", 5, "us", 3, 5, true, true},
		{"empty_after_open", "${", 2, "", 2, 2, true, true},
		{"mid_word", "${username}", 4, "username", 2, 10, true, true},
		{"escaped_dollar", "$$na", 4, "na", 2, 4, false, false},
		{"escaped_then_open", "$$${na", 6, "na", 4, 6, true, true},
		{"plain_text", "hello", 5, "hello", 0, 5, false, false},
		{"after_option", "${a:km", 6, "km", 4, 6, false, false},
		{"cursor_clamped", "${ab", 99, "ab", 2, 4, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			word, start, end, ok, braced := pathBounds(tt.input, tt.cursor)
			if word != tt.wantWord || start != tt.wantStart || end != tt.wantEnd || ok != tt.wantOK {
				t.Errorf("pathBounds(%q, %d) = (%q, %d, %d, %v), want (%q, %d, %d, %v)",
					tt.input, tt.cursor, word, start, end, ok,
					tt.wantWord, tt.wantStart, tt.wantEnd, tt.wantOK)
			}

			if ok && braced != tt.braced {
				t.Errorf("pathBounds(%q) braced = %v", tt.input, braced)
			}
		})
	}
}

func TestCommandBounds(t *testing.T) {
	tests := []struct {
		input     string
		cursor    int
		wantWord  string
		wantStart int
		wantEnd   int
		wantOK    bool
	}{
		{"he", 2, "he", 0, 2, true},
		{"  se", 4, "se", 2, 4, true},
		{"set a=1", 2, "set", 0, 3, true},
		{"set a", 5, "", 5, 5, false},
	}

	for _, tt := range tests {
		word, start, end, ok := commandBounds(tt.input, tt.cursor)
		if word != tt.wantWord || start != tt.wantStart || end != tt.wantEnd || ok != tt.wantOK {
			t.Errorf("commandBounds(%q, %d) = (%q, %d, %d, %v)",
				tt.input, tt.cursor, word, start, end, ok)
		}
	}
}

func TestArgPaths(t *testing.T) {
	args := map[string]any{
		"name": "Ann",
		"user": map[string]any{
			"email": "a@b.c",
			"tags":  []any{"x"},
			"home":  map[string]any{"city": "Oslo"},
		},
	}

	want := []string{"name", "user", "user.email", "user.home", "user.home.city", "user.tags"}
	if got := argPaths(args); !slices.Equal(got, want) {
		t.Errorf("argPaths() = %v, want %v", got, want)
	}

	if got := argPaths(nil); len(got) != 0 {
		t.Errorf("argPaths(nil) = %v", got)
	}
}

func TestComputeMatches(t *testing.T) {
	m := testModel(t, map[string]any{
		"count": 1,
		"user":  map[string]any{"name": "Ann"},
	})

	for _, tt := range []struct {
		input string
		want  []string
	}{
		{"${", []string{"count", "user", "user.name"}},
		{"$", []string{"count", "user"}},
		{"${user.n", []string{"user.name"}},
		{"text", nil},
	} {
		m.input.SetValue(tt.input)
		m.input.SetCursor(len(tt.input))

		matches, _, _ := m.computeMatches()

		var got []string
		for _, match := range matches {
			got = append(got, match.Str)
		}

		slices.Sort(got)

		if !slices.Equal(got, tt.want) {
			t.Errorf("computeMatches(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestRenderCandidateBar(t *testing.T) {
	m := testModel(t, nil)
	m.mode = modeCtrl
	m.input.SetValue("")

	if bar := renderCandidateBar(nil, -1, false, 80); bar != "" {
		t.Errorf("empty bar = %q", bar)
	}

	m.input.SetValue("e")
	m.input.SetCursor(1)

	matches, _, _ := m.computeMatches()
	if len(matches) == 0 {
		t.Fatal("no matches for command prefix")
	}

	if bar := renderCandidateBar(matches, -1, false, 8); !strings.Contains(bar, "...") {
		t.Errorf("narrow bar not ellipsized: %q", bar)
	}
}
