package command

import "strconv"

// Kind discriminates option value types.
type Kind int

const (
	KindString Kind = iota
	KindPath
	KindInt
	KindFloat
	KindBool
)

// Value is a typed option value. Path values are validated against
// the no-embedded-whitespace constraint at compile time; the other
// kinds are passed through verbatim.
type Value struct {
	kind Kind
	s    string
	i    int
	f    float64
	b    bool
}

// String makes a string-kind value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Path makes a path-kind value.
func Path(p string) Value { return Value{kind: KindPath, s: p} }

// Int makes an int-kind value.
func Int(i int) Value { return Value{kind: KindInt, i: i} }

// Float makes a float-kind value.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// Bool makes a bool-kind value. True compiles to a bare flag token,
// false omits the option entirely.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Kind returns the value's kind.
func (v Value) Kind() Kind { return v.kind }

// falsy reports whether the value would normally be omitted from the
// compiled command line: false bools, empty strings and paths, zero
// numbers.
func (v Value) falsy() bool {
	switch v.kind {
	case KindBool:
		return !v.b
	case KindInt:
		return v.i == 0
	case KindFloat:
		return v.f == 0
	default:
		return v.s == ""
	}
}

// text returns the value's command-line representation. Not defined
// for bool values, which never carry a value token.
func (v Value) text() string {
	switch v.kind {
	case KindInt:
		return strconv.Itoa(v.i)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	default:
		return v.s
	}
}

// Options maps option names (underscore-separated words, e.g.
// "num_topics") to values. Compilation iterates names in sorted
// order, so the emitted flag sequence is deterministic.
type Options map[string]Value
