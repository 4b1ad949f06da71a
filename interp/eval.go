package interp

import (
	"context"
	"log/slog"
	"strings"

	"github.com/ardnew/interp/value"
)

// result is the outcome of expanding one level of an [Expansion].
type result struct {
	text       string
	ok         bool
	anyMissing bool
	allMissing bool
}

// renderer carries the state shared by one call to [Template.RenderContext].
type renderer struct {
	ctx  context.Context
	tmpl *Template
	args ArgumentSource
}

// expand renders e.
//
// A chunk is missing when its value is nullish (and its default, if any,
// failed) or when it selects a variant that is absent or failed. With
// failIfAny set, one missing chunk fails the whole expansion. With failIfAll
// set, the expansion fails when some chunk is missing and no value-bearing
// chunk produced output. Literals and optional spans are neither missing nor
// present.
func (r *renderer) expand(e Expansion, failIfAll, failIfAny bool) result {
	var buf strings.Builder

	res := result{allMissing: true}

	for _, c := range e {
		switch c := c.(type) {
		case Literal:
			buf.WriteString(c.Text)

		case Select:
			v := r.args.Resolve(c.Param)

			body, found := c.Variant(KeyNull)
			if !value.Nullish(v) {
				if b, ok := c.Variant(value.String(v)); ok {
					body, found = b, true
				}
			}

			r.variant(&buf, &res, c.Param, body, found, failIfAny)

		case Plural:
			v := r.args.Resolve(c.Param)

			body, found := r.plural(c, v)

			r.variant(&buf, &res, c.Param, body, found, failIfAny)

		case Placeholder:
			r.placeholder(&buf, &res, c)

		case Optional:
			sub := r.expand(c.Pattern, true, true)
			if sub.ok {
				buf.WriteString(sub.text)
			}
		}
	}

	if failIfAny && res.anyMissing {
		return result{anyMissing: true}
	}

	if failIfAll && res.anyMissing && res.allMissing {
		return result{anyMissing: true, allMissing: true}
	}

	res.text = buf.String()
	res.ok = true

	return res
}

// plural selects the variant of c for v: the "other" variant when v is not
// a number, then an exact "=N" match, then the plural category of v.
func (r *renderer) plural(c Plural, v any) (Expansion, bool) {
	n, ok := value.Number(v)
	if !ok || value.Nullish(v) {
		return c.Variant(KeyOther)
	}

	if body, ok := c.Variant(exactKey(n)); ok {
		return body, true
	}

	return c.Variant(r.tmpl.formatter.PluralCategory(n, c.Type))
}

func (r *renderer) variant(
	buf *strings.Builder,
	res *result,
	param string,
	body Expansion,
	found, failIfAny bool,
) {
	if !found {
		r.missing(param, "no matching variant")

		res.anyMissing = true

		return
	}

	sub := r.expand(body, failIfAny, false)
	if !sub.ok {
		res.anyMissing = true

		return
	}

	buf.WriteString(sub.text)

	res.allMissing = false
}

func (r *renderer) placeholder(buf *strings.Builder, res *result, c Placeholder) {
	v := r.args.Resolve(c.Param)

	if !value.Nullish(v) {
		s, err := r.tmpl.formatter.FormatValue(v, c.Directive())
		if err == nil {
			buf.WriteString(s)

			res.allMissing = false

			return
		}

		r.missing(c.Param, "format failed", slog.Any("error", err))
	} else {
		r.missing(c.Param, "nullish value")
	}

	if c.Default != nil {
		sub := r.expand(c.Default, true, false)
		if sub.ok {
			buf.WriteString(sub.text)

			res.allMissing = false

			return
		}
	}

	buf.WriteString(r.tmpl.nullReplacement)

	res.anyMissing = true
}

func (r *renderer) missing(param, reason string, attrs ...slog.Attr) {
	r.tmpl.logger.TraceContext(r.ctx, "render missing value",
		append([]slog.Attr{
			slog.String("param", param),
			slog.String("reason", reason),
		}, attrs...)...)
}
