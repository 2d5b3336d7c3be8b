package urlformat

import "strconv"

// Kind identifies the scalar type held by a Value
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindBool
)

// Value is a scalar option value: a string, an int or a bool
type Value struct {
	kind Kind
	s    string
	i    int
	b    bool
}

// StringValue wraps a string
func StringValue(s string) Value {
	return Value{kind: KindString, s: s}
}

// IntValue wraps an int
func IntValue(i int) Value {
	return Value{kind: KindInt, i: i}
}

// BoolValue wraps a bool
func BoolValue(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// Kind returns the scalar kind
func (v Value) Kind() Kind {
	return v.kind
}

// String returns the canonical, unencoded form of the value
func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return strconv.Itoa(v.i)
	case KindBool:
		return strconv.FormatBool(v.b)
	default:
		return v.s
	}
}

// IsZero reports whether the value is the zero value of its kind
func (v Value) IsZero() bool {
	switch v.kind {
	case KindInt:
		return v.i == 0
	case KindBool:
		return !v.b
	default:
		return v.s == ""
	}
}

// Field is a named option value
type Field struct {
	Name  string
	Value Value
}

// String creates a string field
func String(name, value string) Field {
	return Field{Name: name, Value: StringValue(value)}
}

// Int creates an int field
func Int(name string, value int) Field {
	return Field{Name: name, Value: IntValue(value)}
}

// Bool creates a bool field
func Bool(name string, value bool) Field {
	return Field{Name: name, Value: BoolValue(value)}
}

// Binder exposes the fields of an options value in declaration order.
// The order drives the order of appended query parameters.
type Binder interface {
	URLFields() []Field
}

// Fields is an ad-hoc Binder built directly by a call site
type Fields []Field

// URLFields implements Binder
func (f Fields) URLFields() []Field {
	return f
}
