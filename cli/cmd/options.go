package cmd

import (
	"io"
	"log/slog"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/interp/interp"
	"github.com/ardnew/interp/log"
)

// Options are the rendering flags shared by the render and repl commands.
type Options struct {
	Locale          string   `default:"C"    help:"Locale tag; C selects neutral formatting"           short:"l"`
	Timezone        string   `default:""     help:"IANA timezone dates and times are shown in"         short:"z"`
	NullReplacement string   `default:""     help:"Text written in place of missing values"`
	FailIfMissing   bool     `default:"true" help:"Yield no result when every value is missing"        negatable:""`
	Args            []string `               help:"YAML or JSON argument file(s), or '-' for stdin"    placeholder:"FILE"     short:"a"`
	Set             []string `               help:"Set argument KEY to the value of expression EXPR" placeholder:"KEY=EXPR" sep:"none"`
}

// compileOptions returns the options of [interp.Compile] selected by o.
func (o *Options) compileOptions(logger log.Logger) []interp.Option {
	return []interp.Option{
		interp.WithLocale(o.Locale),
		interp.WithTimezone(o.Timezone),
		interp.WithNullReplacement(o.NullReplacement),
		interp.WithFailIfMissing(o.FailIfMissing),
		interp.WithLogger(logger),
	}
}

// readsStdin reports whether the argument files include stdin.
func (o *Options) readsStdin() bool {
	for _, name := range o.Args {
		if name == stdinSource {
			return true
		}
	}

	return false
}

// Arguments returns the template arguments: the documents of the argument
// files merged in order, then each --set expression evaluated against the
// arguments collected so far and stored at its dotted KEY.
func (o *Options) Arguments(in io.Reader) (map[string]any, error) {
	args := make(map[string]any)

	for _, name := range uniqueFiles(o.Args) {
		data, err := readFile(in, name)
		if err != nil {
			return nil, ErrReadArgs.Wrap(err).With(slog.String("file", name))
		}

		var doc map[string]any

		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, ErrReadArgs.Wrap(err).With(slog.String("file", name))
		}

		merge(args, doc)
	}

	for _, set := range o.Set {
		if err := assign(args, set); err != nil {
			return nil, err
		}
	}

	return args, nil
}

// assign evaluates the assignment "KEY=EXPR" against args and stores the
// result at the dotted KEY.
func assign(args map[string]any, assignment string) error {
	key, src, ok := strings.Cut(assignment, "=")
	key = strings.TrimSpace(key)

	if !ok || key == "" || strings.TrimSpace(src) == "" {
		return ErrInvalidArg.With(slog.String("set", assignment))
	}

	val, err := expr.Eval(src, args)
	if err != nil {
		return ErrInvalidArg.Wrap(err).With(slog.String("set", assignment))
	}

	setPath(args, key, val)

	return nil
}

// merge copies src into dst, merging nested maps.
func merge(dst, src map[string]any) {
	for k, v := range src {
		sub, ok := v.(map[string]any)
		if !ok {
			dst[k] = v

			continue
		}

		if cur, ok := dst[k].(map[string]any); ok {
			merge(cur, sub)

			continue
		}

		cp := make(map[string]any, len(sub))
		merge(cp, sub)
		dst[k] = cp
	}
}

// setPath stores v in m at the dotted path, replacing any non-map value
// along the way.
func setPath(m map[string]any, path string, v any) {
	segs := strings.Split(path, ".")

	for _, seg := range segs[:len(segs)-1] {
		next, ok := m[seg].(map[string]any)
		if !ok {
			next = make(map[string]any)
			m[seg] = next
		}

		m = next
	}

	m[segs[len(segs)-1]] = v
}
