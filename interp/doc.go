// Package interp implements localized string interpolation.
//
// A template is text with embedded directives that are replaced by argument
// values formatted for a locale:
//
//	$$                               a literal '$'
//	$name                            value of name
//	${a.b.c}                         value at a dotted path
//	${list:disjunction}              sequence joined with "or"
//	${ratio:%.1}                     percentage with one fraction digit
//	${when:date} ${when:time}        localized date and time
//	${dist:km.1}                     measurement converted to kilometers
//	${name:-someone}                 default when name is missing
//	${?, near ${place}}              span dropped when anything inside is missing
//	${n:plural:=0{no items} one{one item} other{$n items}}
//	${n:ordinal:one{${n}st} two{${n}nd} few{${n}rd} other{${n}th}}
//	${kind:select:cat{meow} dog{woof} null{...}}
//
// Inside nested bodies (defaults, optional spans and variants) the sequences
// \} \{ \\ and \$ stand for the escaped character.
//
// Rendering follows a cascade of failure rules. A placeholder whose value is
// nullish (nil, empty string, NaN or the zero time) renders its default or
// the null replacement and counts as missing. An optional span is dropped
// when anything inside it is missing. A whole template yields no result when
// every value in it is missing, unless [WithFailIfMissing] is false.
//
// # Usage
//
//	t, err := interp.Compile(ctx, "${n:plural:one{1 file} other{$n files}}",
//		interp.WithLocale("en-US"))
//	if err != nil {
//		return err
//	}
//
//	s, ok := t.Render(map[string]any{"n": 3}) // "3 files", true
package interp
