package repl

import (
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"
)

// ctrlCommands are the available control-mode commands.
var ctrlCommands = []string{"help", "args", "set", "locale", "clear", "quit"}

// maxPathDepth bounds the nesting followed when listing argument paths.
const maxPathDepth = 8

// isPathChar reports whether c may appear in an argument path.
func isPathChar(c byte) bool {
	return c == '_' || c == '.' ||
		('0' <= c && c <= '9') ||
		('a' <= c && c <= 'z') ||
		('A' <= c && c <= 'Z')
}

// pathBounds returns the argument path at the cursor and its byte bounds
// within input. ok is false unless the path directly follows the opening of
// a placeholder: "$", "${", "${?" or "$?{". braced is false for "$", which
// takes no dotted paths.
func pathBounds(input string, cursor int) (word string, start, end int, ok, braced bool) {
	cursor = min(max(cursor, 0), len(input))

	start = cursor
	for start > 0 && isPathChar(input[start-1]) {
		start--
	}

	end = cursor
	for end < len(input) && isPathChar(input[end]) {
		end++
	}

	ok, braced = opensPlaceholder(input[:start])

	return input[start:end], start, end, ok, braced
}

// opensPlaceholder reports whether prefix ends with an unescaped
// placeholder opening, and whether that opening has a brace.
func opensPlaceholder(prefix string) (ok, braced bool) {
	for _, open := range []string{"${?", "$?{", "${", "$"} {
		if rest, found := strings.CutSuffix(prefix, open); found {
			// "$$" is an escaped dollar sign
			return dollarRun(rest)%2 == 0, open != "$"
		}
	}

	return false, false
}

func dollarRun(s string) int {
	n := 0
	for n < len(s) && s[len(s)-1-n] == '$' {
		n++
	}

	return n
}

// commandBounds returns the command word at the cursor in control mode. ok
// is false once the cursor is past the first word.
func commandBounds(input string, cursor int) (word string, start, end int, ok bool) {
	cursor = min(max(cursor, 0), len(input))

	start = len(input) - len(strings.TrimLeft(input, " "))
	if cursor < start || strings.ContainsRune(input[start:cursor], ' ') {
		return "", cursor, cursor, false
	}

	end = start + strings.IndexByte(input[start:]+" ", ' ')

	return input[start:end], start, end, true
}

// argPaths returns the dotted paths of all map members reachable from args,
// sorted, including intermediate maps.
func argPaths(args map[string]any) []string {
	var paths []string

	var walk func(prefix string, m map[string]any, depth int)

	walk = func(prefix string, m map[string]any, depth int) {
		for _, k := range slices.Sorted(maps.Keys(m)) {
			path := prefix + k
			paths = append(paths, path)

			if sub, ok := m[k].(map[string]any); ok && depth < maxPathDepth {
				walk(path+".", sub, depth+1)
			}
		}
	}

	walk("", args, 1)

	return paths
}

// computeMatches calculates the fuzzy match results for the word at the
// cursor, ranked best-first, and the word boundaries. An empty word right
// after a placeholder opening matches every candidate.
func (m model) computeMatches() (matches fuzzy.Matches, wordStart, wordEnd int) {
	input := m.input.Value()
	cursor := m.input.Position()

	var (
		word       string
		ok, braced bool
		candidates []string
	)

	if m.mode == modeCtrl {
		word, wordStart, wordEnd, ok = commandBounds(input, cursor)
		candidates = ctrlCommands
	} else {
		word, wordStart, wordEnd, ok, braced = pathBounds(input, cursor)
		candidates = m.paths

		if !braced {
			candidates = slices.DeleteFunc(slices.Clone(candidates), func(p string) bool {
				return strings.ContainsRune(p, '.')
			})
		}
	}

	if !ok || len(candidates) == 0 || (word == "" && m.mode == modeCtrl) {
		return nil, wordStart, wordEnd
	}

	if word == "" {
		matches = make(fuzzy.Matches, len(candidates))
		for i, c := range candidates {
			matches[i] = fuzzy.Match{Str: c, Index: i}
		}

		return matches, wordStart, wordEnd
	}

	return fuzzy.Find(word, candidates), wordStart, wordEnd
}

// renderCandidateBar builds the single-line completion bar, ellipsized to fit
// within the given terminal width. Each candidate is rendered with its matched
// characters highlighted. The selected candidate (when tabbing) uses the
// selected style.
func renderCandidateBar(
	matches fuzzy.Matches,
	suggIdx int,
	tabActive bool,
	width int,
) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	sepWidth := lipgloss.Width(sep)
	ellipsis := hintStyle.Render("...")
	ellipsisWidth := lipgloss.Width(ellipsis)

	var b strings.Builder

	used := 0

	for i, match := range matches {
		rendered := renderCandidate(match, tabActive && i == suggIdx)

		entryWidth := lipgloss.Width(rendered)
		if i > 0 {
			entryWidth += sepWidth
		}

		if i > 0 && used+entryWidth+ellipsisWidth > width {
			b.WriteString(sep)
			b.WriteString(ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += entryWidth
	}

	return b.String()
}

// renderCandidate renders a single candidate with matched characters
// highlighted.
func renderCandidate(match fuzzy.Match, selected bool) string {
	base, highlight := suggestionStyle, matchStyle
	if selected {
		base, highlight = selectedStyle, selectedMatchStyle
	}

	matched := make(map[int]bool, len(match.MatchedIndexes))
	for _, idx := range match.MatchedIndexes {
		matched[idx] = true
	}

	var b strings.Builder

	for i, r := range match.Str {
		if matched[i] {
			b.WriteString(highlight.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}

	return b.String()
}
