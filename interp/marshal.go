package interp

import (
	"encoding/json"

	"github.com/ardnew/interp/locale"
)

// MarshalJSON implements json.Marshaler for Expansion.
func (e Expansion) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.ToNative())
}

// MarshalYAML implements yaml.InterfaceMarshaler for Expansion.
func (e Expansion) MarshalYAML() (any, error) {
	return e.ToNative(), nil
}

// ToNative converts e to a tree of native Go values: literals become
// strings and every other chunk becomes a single-key map naming its kind.
func (e Expansion) ToNative() []any {
	out := make([]any, 0, len(e))

	for _, c := range e {
		out = append(out, chunkToNative(c))
	}

	return out
}

func chunkToNative(c Chunk) any {
	switch c := c.(type) {
	case Literal:
		return c.Text

	case Placeholder:
		m := map[string]any{"param": c.Param}

		if c.List != locale.ListNone {
			m["list"] = c.List.String()
		}

		if c.Option != "" {
			m["option"] = c.Option
		}

		if c.Precision >= 0 {
			m["precision"] = c.Precision
		}

		if c.Default != nil {
			m["default"] = c.Default.ToNative()
		}

		return map[string]any{"placeholder": m}

	case Optional:
		return map[string]any{"optional": c.Pattern.ToNative()}

	case Plural:
		return map[string]any{"plural": map[string]any{
			"param":    c.Param,
			"type":     c.Type.String(),
			"variants": variantsToNative(c.Variants),
		}}

	case Select:
		return map[string]any{"select": map[string]any{
			"param":    c.Param,
			"variants": variantsToNative(c.Variants),
		}}

	default:
		return nil
	}
}

func variantsToNative(vs []Variant) []any {
	out := make([]any, len(vs))

	for i, v := range vs {
		out[i] = map[string]any{
			"key":  v.Key,
			"body": v.Body.ToNative(),
		}
	}

	return out
}
