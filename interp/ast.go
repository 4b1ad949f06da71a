package interp

import (
	"iter"
	"slices"

	"github.com/ardnew/interp/locale"
)

// NoPrecision marks a placeholder without an explicit precision.
const NoPrecision = locale.NoPrecision

// Reserved selector keys.
const (
	// KeyNull selects the fallback variant of a select chunk.
	KeyNull = "null"
	// KeyOther selects the fallback variant of a plural chunk.
	KeyOther = locale.CategoryOther
)

// Expansion is a parsed template: a sequence of chunks in render order.
// An Expansion is never modified after parsing.
type Expansion []Chunk

// Chunk is one element of an [Expansion]. The set of chunk types is closed:
// [Literal], [Placeholder], [Optional], [Plural] and [Select].
type Chunk interface {
	chunk()
}

// Literal is verbatim text.
type Literal struct {
	Text string
}

// Placeholder is replaced by the formatted value of an argument.
type Placeholder struct {
	Param     string
	Option    string
	Default   Expansion
	List      locale.ListStyle
	Precision int
}

// Optional is a span dropped entirely when any value inside it is missing.
type Optional struct {
	Pattern Expansion
}

// Plural renders the variant matching the plural category of a number.
type Plural struct {
	Param    string
	Variants []Variant
	Type     locale.PluralType
}

// Select renders the variant whose key equals the text of a value.
type Select struct {
	Param    string
	Variants []Variant
}

// Variant is one selector-keyed branch of a [Plural] or [Select].
type Variant struct {
	Key  string
	Body Expansion
}

func (Literal) chunk()     {}
func (Placeholder) chunk() {}
func (Optional) chunk()    {}
func (Plural) chunk()      {}
func (Select) chunk()      {}

// Directive returns the formatting directive of p.
func (p Placeholder) Directive() locale.Directive {
	return locale.Directive{
		Param:     p.Param,
		Option:    p.Option,
		List:      p.List,
		Precision: p.Precision,
	}
}

// Variant returns the body of the variant keyed key.
func (p Plural) Variant(key string) (Expansion, bool) {
	return variant(p.Variants, key)
}

// Variant returns the body of the variant keyed key.
func (s Select) Variant(key string) (Expansion, bool) {
	return variant(s.Variants, key)
}

func variant(vs []Variant, key string) (Expansion, bool) {
	i := slices.IndexFunc(vs, func(v Variant) bool { return v.Key == key })
	if i < 0 {
		return nil, false
	}

	return vs[i].Body, true
}

// Walk yields every chunk of e depth first, descending into placeholder
// defaults, optional spans and variant bodies.
func (e Expansion) Walk() iter.Seq[Chunk] {
	return func(yield func(Chunk) bool) {
		e.walk(yield)
	}
}

func (e Expansion) walk(yield func(Chunk) bool) bool {
	for _, c := range e {
		if !yield(c) {
			return false
		}

		switch c := c.(type) {
		case Placeholder:
			if !c.Default.walk(yield) {
				return false
			}

		case Optional:
			if !c.Pattern.walk(yield) {
				return false
			}

		case Plural:
			for _, v := range c.Variants {
				if !v.Body.walk(yield) {
					return false
				}
			}

		case Select:
			for _, v := range c.Variants {
				if !v.Body.walk(yield) {
					return false
				}
			}
		}
	}

	return true
}

// Params returns the distinct argument paths referenced by e in order of
// first appearance.
func (e Expansion) Params() []string {
	var params []string

	for c := range e.Walk() {
		var param string

		switch c := c.(type) {
		case Placeholder:
			param = c.Param

		case Plural:
			param = c.Param

		case Select:
			param = c.Param

		default:
			continue
		}

		if !slices.Contains(params, param) {
			params = append(params, param)
		}
	}

	return params
}
