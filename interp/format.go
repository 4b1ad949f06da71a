package interp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/interp/locale"
)

// String returns e as canonical template text, such that parsing the result
// yields e again.
func (e Expansion) String() string {
	var sb strings.Builder

	writeExpansion(&sb, e, false)

	return sb.String()
}

// Format writes e in canonical template syntax to w.
func (e Expansion) Format(_ context.Context, w io.Writer) error {
	_, err := fmt.Fprintln(w, e.String())

	return err
}

// FormatJSON writes the tagged chunk tree of e as JSON to w.
func (e Expansion) FormatJSON(_ context.Context, w io.Writer, indent int) error {
	var (
		jsonData []byte
		err      error
	)

	if indent > 0 {
		jsonData, err = json.MarshalIndent(e, "", strings.Repeat(" ", indent))
	} else {
		jsonData, err = json.Marshal(e)
	}

	if err != nil {
		return ErrMarshal.Wrap(err)
	}

	_, err = fmt.Fprintln(w, string(jsonData))

	return err
}

// FormatYAML writes the tagged chunk tree of e as YAML to w.
func (e Expansion) FormatYAML(ctx context.Context, w io.Writer, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	yamlData, err := yaml.MarshalContext(ctx, e.ToNative(), opts...)
	if err != nil {
		return ErrMarshal.Wrap(err)
	}

	_, err = fmt.Fprint(w, string(yamlData))

	return err
}

func writeExpansion(sb *strings.Builder, e Expansion, nested bool) {
	for _, c := range e {
		switch c := c.(type) {
		case Literal:
			writeLiteral(sb, c.Text, nested)

		case Placeholder:
			sb.WriteString("${")
			sb.WriteString(c.Param)

			if c.List != locale.ListNone {
				sb.WriteByte(':')
				sb.WriteString(c.List.String())
			}

			if c.Option != "" {
				sb.WriteByte(':')
				sb.WriteString(c.Option)

				if c.Precision >= 0 {
					sb.WriteByte('.')
					sb.WriteString(strconv.Itoa(c.Precision))
				}
			}

			if c.Default != nil {
				sb.WriteString(":-")
				writeExpansion(sb, c.Default, true)
			}

			sb.WriteByte('}')

		case Optional:
			sb.WriteString("${?")
			writeExpansion(sb, c.Pattern, true)
			sb.WriteByte('}')

		case Plural:
			kind := keywordPlural
			if c.Type == locale.Ordinal {
				kind = keywordOrdinal
			}

			writeSelector(sb, c.Param, kind, c.Variants)

		case Select:
			writeSelector(sb, c.Param, keywordSelect, c.Variants)
		}
	}
}

func writeSelector(sb *strings.Builder, param, kind string, variants []Variant) {
	sb.WriteString("${")
	sb.WriteString(param)
	sb.WriteByte(':')
	sb.WriteString(kind)
	sb.WriteByte(':')

	for i, v := range variants {
		if i > 0 {
			sb.WriteByte(' ')
		}

		sb.WriteString(v.Key)
		sb.WriteByte('{')
		writeExpansion(sb, v.Body, true)
		sb.WriteByte('}')
	}

	sb.WriteByte('}')
}

// writeLiteral escapes text byte-wise; the special characters are ASCII, so
// multibyte sequences and invalid bytes pass through unchanged.
func writeLiteral(sb *strings.Builder, text string, nested bool) {
	for i := range len(text) {
		switch c := text[i]; {
		case c == '$':
			sb.WriteString("$$")

		case nested && (c == '}' || c == '{' || c == '\\'):
			sb.WriteByte('\\')
			sb.WriteByte(c)

		default:
			sb.WriteByte(c)
		}
	}
}
