package interp

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ardnew/interp/locale"
	"github.com/ardnew/interp/value"
)

// MaxDepth bounds the nesting of defaults, optional spans and variants.
const MaxDepth = 64

// Selector keywords recognized after a parameter path.
const (
	keywordPlural  = "plural"
	keywordOrdinal = "ordinal"
	keywordSelect  = "select"
)

// Parse parses a template into an [Expansion].
//
// Failures are reported as a *[ParseError] wrapping [ErrSyntax]; no partial
// expansion is returned.
func Parse(template string) (Expansion, error) {
	p := &parser{
		input: template,
		line:  1,
		col:   1,
	}

	e, err := p.parseExpansion(false)
	if err != nil {
		return nil, err
	}

	return e, nil
}

// parser holds the parser state.
type parser struct {
	input string
	pos   int
	line  int
	col   int
	depth int
}

// parseExpansion parses chunks until the end of input or, when nested, until
// an unescaped '}' which is left unconsumed.
func (p *parser) parseExpansion(nested bool) (Expansion, error) {
	if nested {
		p.depth++
		defer func() { p.depth-- }()

		if p.depth > MaxDepth {
			return nil, p.fail(p.position(), "nesting exceeds %d levels", MaxDepth)
		}
	}

	e := Expansion{}

	var text strings.Builder

	flush := func() {
		if text.Len() > 0 {
			e = append(e, Literal{Text: text.String()})
			text.Reset()
		}
	}

	for !p.eof() {
		switch r := p.peek(); {
		case nested && r == '}':
			flush()

			return e, nil

		case nested && r == '\\':
			p.advance()

			switch next := p.peek(); next {
			case '}', '{', '\\', '$':
				text.WriteRune(next)
				p.advance()

			default:
				text.WriteByte('\\')
			}

		case r == '$':
			if p.peekN(2) == "$$" {
				text.WriteByte('$')
				p.advance()
				p.advance()

				continue
			}

			c, err := p.parseDirective()
			if err != nil {
				return nil, err
			}

			flush()

			e = append(e, c)

		default:
			// raw bytes, so invalid UTF-8 is kept as written
			start := p.pos
			p.advance()
			text.WriteString(p.input[start:p.pos])
		}
	}

	if nested {
		return nil, p.fail(p.position(), "unexpected end of input, expected '}'")
	}

	flush()

	return e, nil
}

// parseDirective parses a chunk introduced by '$'.
func (p *parser) parseDirective() (Chunk, error) {
	start := p.position()

	p.advance() // '$'

	switch r := p.peek(); {
	case r == '?':
		p.advance()

		if !p.expect('{') {
			return nil, p.fail(p.position(), "expected '{' after '$?'")
		}

		return p.parseOptional()

	case r == '{':
		p.advance()

		if p.expect('?') {
			return p.parseOptional()
		}

		return p.parseBraced()

	case isIdentifierChar(r):
		return Placeholder{
			Param:     p.scanIdentifier(),
			Precision: NoPrecision,
		}, nil

	case p.eof():
		return nil, p.fail(start, "unexpected end of input after '$'")

	default:
		return nil, p.fail(start, "unexpected %q after '$' (use '$$' for a literal '$')", r)
	}
}

// parseOptional parses the body of "$?{...}" or "${?...}" after the opening
// sequence.
func (p *parser) parseOptional() (Chunk, error) {
	pattern, err := p.parseNested()
	if err != nil {
		return nil, err
	}

	return Optional{Pattern: pattern}, nil
}

// parseNested parses a nested expansion and its closing '}'.
func (p *parser) parseNested() (Expansion, error) {
	e, err := p.parseExpansion(true)
	if err != nil {
		return nil, err
	}

	p.advance() // '}'

	return e, nil
}

// parseBraced parses "${path[:list][:option[.N]][:-default]}" and selector
// blocks after the opening "${".
func (p *parser) parseBraced() (Chunk, error) {
	param, err := p.parsePath()
	if err != nil {
		return nil, err
	}

	ph := Placeholder{Param: param, Precision: NoPrecision}

	if p.expect('}') {
		return ph, nil
	}

	if !p.expect(':') {
		return nil, p.fail(p.position(), "expected ':' or '}' after %q", param)
	}

	if p.peek() == '-' {
		return p.parseDefault(ph)
	}

	pos := p.position()
	tok := p.scanToken()

	switch tok {
	case keywordPlural, keywordOrdinal, keywordSelect:
		if !p.expect(':') {
			return nil, p.fail(p.position(), "expected ':' after %q", tok)
		}

		return p.parseSelector(param, tok)

	case locale.Conjunction.String(), locale.Disjunction.String():
		ph.List, _ = locale.ParseListStyle(tok)

		if p.expect('}') {
			return ph, nil
		}

		if !p.expect(':') {
			return nil, p.fail(p.position(), "expected ':' or '}' after %q", tok)
		}

		if p.peek() == '-' {
			return p.parseDefault(ph)
		}

		pos = p.position()
		tok = p.scanToken()
	}

	if tok == "" {
		return nil, p.fail(pos, "expected format option")
	}

	ph.Option = tok

	if p.expect('.') {
		ph.Precision, err = p.parsePrecision()
		if err != nil {
			return nil, err
		}
	}

	if p.expect('}') {
		return ph, nil
	}

	if p.peekN(2) != ":-" {
		return nil, p.fail(p.position(), "expected ':-' or '}' after format option")
	}

	p.advance() // ':'

	return p.parseDefault(ph)
}

// parseDefault parses "-default}" into the placeholder's default.
func (p *parser) parseDefault(ph Placeholder) (Chunk, error) {
	p.advance() // '-'

	def, err := p.parseNested()
	if err != nil {
		return nil, err
	}

	ph.Default = def

	return ph, nil
}

// parseSelector parses the variant blocks of a plural, ordinal or select
// chunk and the closing '}'.
func (p *parser) parseSelector(param, kind string) (Chunk, error) {
	p.depth++
	defer func() { p.depth-- }()

	if p.depth > MaxDepth {
		return nil, p.fail(p.position(), "nesting exceeds %d levels", MaxDepth)
	}

	variants := []Variant{}

	for {
		p.skipWhitespace()

		if p.eof() {
			return nil, p.fail(p.position(), "unexpected end of input, expected '}'")
		}

		if p.expect('}') {
			break
		}

		pos := p.position()

		key, err := p.parseSelectorKey(kind)
		if err != nil {
			return nil, err
		}

		if _, dup := variant(variants, key); dup {
			return nil, p.fail(pos, "duplicate selector %q", key)
		}

		p.skipWhitespace()

		if !p.expect('{') {
			return nil, p.fail(p.position(), "expected '{' after selector %q", key)
		}

		body, err := p.parseNested()
		if err != nil {
			return nil, err
		}

		variants = append(variants, Variant{Key: key, Body: body})
	}

	if len(variants) == 0 {
		return nil, p.fail(p.position(), "%s for %q has no variants", kind, param)
	}

	if kind == keywordSelect {
		return Select{Param: param, Variants: variants}, nil
	}

	typ := locale.Cardinal
	if kind == keywordOrdinal {
		typ = locale.Ordinal
	}

	return Plural{Param: param, Type: typ, Variants: variants}, nil
}

// parseSelectorKey parses a select key, or a plural key which is either an
// exact "=N" match or a CLDR category.
func (p *parser) parseSelectorKey(kind string) (string, error) {
	pos := p.position()
	key := p.scanSelector()

	if key == "" {
		return "", p.fail(pos, "expected selector")
	}

	if kind == keywordSelect {
		return key, nil
	}

	if num, ok := strings.CutPrefix(key, "="); ok {
		n, err := strconv.ParseFloat(num, 64)
		if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
			return "", p.fail(pos, "invalid exact selector %q", key)
		}

		return exactKey(n), nil
	}

	if !locale.IsCategory(key) {
		return "", p.fail(pos, "invalid plural selector %q", key)
	}

	return key, nil
}

// exactKey returns the canonical spelling of the exact plural selector n.
func exactKey(n float64) string {
	if n == 0 {
		n = 0 // -0
	}

	return "=" + value.FormatFloat(n)
}

// parsePath parses a dotted parameter path.
func (p *parser) parsePath() (string, error) {
	start := p.pos

	for {
		if !isIdentifierChar(p.peek()) {
			return "", p.fail(p.position(), "expected parameter name")
		}

		p.scanIdentifier()

		if p.peek() != '.' {
			break
		}

		p.advance()
	}

	return p.input[start:p.pos], nil
}

// parsePrecision parses the digits following '.' in a format option.
func (p *parser) parsePrecision() (int, error) {
	pos := p.position()
	start := p.pos

	for p.peek() >= '0' && p.peek() <= '9' {
		p.advance()
	}

	if start == p.pos {
		return 0, p.fail(pos, "expected precision digits after '.'")
	}

	n, err := strconv.Atoi(p.input[start:p.pos])
	if err != nil || n > 20 {
		return 0, p.fail(pos, "precision %q out of range", p.input[start:p.pos])
	}

	return n, nil
}

func (p *parser) scanIdentifier() string {
	start := p.pos

	for isIdentifierChar(p.peek()) {
		p.advance()
	}

	return p.input[start:p.pos]
}

// scanToken scans a format option or keyword.
func (p *parser) scanToken() string {
	start := p.pos

	for !p.eof() && isTokenChar(p.peek()) {
		p.advance()
	}

	return p.input[start:p.pos]
}

// scanSelector scans a variant key.
func (p *parser) scanSelector() string {
	start := p.pos

	for !p.eof() {
		r := p.peek()
		if unicode.IsSpace(r) || strings.ContainsRune("{}$\\", r) {
			break
		}

		p.advance()
	}

	return p.input[start:p.pos]
}

func isIdentifierChar(r rune) bool {
	return r == '_' ||
		('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') || ('0' <= r && r <= '9')
}

func isTokenChar(r rune) bool {
	return !unicode.IsSpace(r) && !strings.ContainsRune(".:{}$\\", r)
}

func (p *parser) peek() rune {
	if p.eof() {
		return 0
	}

	r, _ := utf8.DecodeRuneInString(p.input[p.pos:])

	return r
}

func (p *parser) peekN(n int) string {
	if p.pos+n > len(p.input) {
		return p.input[p.pos:]
	}

	return p.input[p.pos : p.pos+n]
}

func (p *parser) advance() {
	if p.eof() {
		return
	}

	r, size := utf8.DecodeRuneInString(p.input[p.pos:])

	p.pos += size
	if r == '\n' {
		p.line++
		p.col = 1
	} else {
		p.col++
	}
}

func (p *parser) expect(ch rune) bool {
	if !p.eof() && p.peek() == ch {
		p.advance()

		return true
	}

	return false
}

func (p *parser) eof() bool {
	return p.pos >= len(p.input)
}

func (p *parser) position() Position {
	return Position{
		Offset: p.pos,
		Line:   p.line,
		Column: p.col,
	}
}

func (p *parser) skipWhitespace() {
	for !p.eof() && unicode.IsSpace(p.peek()) {
		p.advance()
	}
}

func (p *parser) fail(pos Position, format string, args ...any) *ParseError {
	return &ParseError{
		Position: pos,
		Reason:   fmt.Sprintf(format, args...),
		Source:   p.input,
	}
}
