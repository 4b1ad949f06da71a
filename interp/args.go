package interp

import "github.com/ardnew/interp/value"

// ArgumentSource resolves the dotted parameter paths of a template to
// values. A nil result means the argument is missing.
type ArgumentSource interface {
	Resolve(path string) any
}

// Func is an [ArgumentSource] backed by a function receiving the full path.
type Func func(path string) any

// Resolve implements [ArgumentSource].
func (f Func) Resolve(path string) any {
	if f == nil {
		return nil
	}

	return f(path)
}

// Values is an [ArgumentSource] that walks the path one segment at a time
// through maps, structs, slices and pointers.
type Values struct {
	Root any
}

// Resolve implements [ArgumentSource].
func (v Values) Resolve(path string) any {
	return value.Lookup(v.Root, path)
}

// Args converts args to an [ArgumentSource]. An ArgumentSource is returned
// as is, a func(string) any becomes a [Func], and anything else is wrapped
// in [Values].
func Args(args any) ArgumentSource {
	switch a := args.(type) {
	case ArgumentSource:
		return a

	case func(string) any:
		return Func(a)

	default:
		return Values{Root: args}
	}
}
