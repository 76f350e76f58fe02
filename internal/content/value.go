package content

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// Kind tags the shape held by a Value.
type Kind uint8

const (
	KindAbsent Kind = iota
	KindScalar
	KindList
	KindLocalized
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindList:
		return "list"
	case KindLocalized:
		return "localized"
	default:
		return "absent"
	}
}

// Value is a content field: a language-independent string, an ordered list of values,
// or a mapping from language code to value. The zero Value is absent.
type Value struct {
	kind      Kind
	scalar    string
	list      []Value
	localized map[Lang]Value
}

// Scalar builds a language-independent value.
func Scalar(s string) Value { return Value{kind: KindScalar, scalar: s} }

// List builds an ordered list value.
func List(items ...Value) Value {
	return Value{kind: KindList, list: append([]Value(nil), items...)}
}

// Strings builds a list of scalars.
func Strings(items ...string) Value {
	out := make([]Value, 0, len(items))
	for _, s := range items {
		out = append(out, Scalar(s))
	}
	return Value{kind: KindList, list: out}
}

// Localized builds a per-language value from plain strings.
func Localized(m map[Lang]string) Value {
	out := make(map[Lang]Value, len(m))
	for l, s := range m {
		out[l] = Scalar(s)
	}
	return Value{kind: KindLocalized, localized: out}
}

// Kind reports the shape of the value.
func (v Value) Kind() Kind { return v.kind }

// IsAbsent reports whether the value carries nothing.
func (v Value) IsAbsent() bool { return v.kind == KindAbsent }

// String returns the scalar text, or "" for any other shape.
func (v Value) String() string {
	if v.kind == KindScalar {
		return v.scalar
	}
	return ""
}

// Len returns the number of list elements, or 0 for any other shape.
func (v Value) Len() int {
	if v.kind == KindList {
		return len(v.list)
	}
	return 0
}

// Elements returns a copy of the list elements.
func (v Value) Elements() []Value {
	if v.kind != KindList {
		return nil
	}
	return append([]Value(nil), v.list...)
}

// Entry returns the value stored for lang in a localized value.
func (v Value) Entry(lang Lang) (Value, bool) {
	if v.kind != KindLocalized {
		return Value{}, false
	}
	e, ok := v.localized[lang]
	return e, ok
}

// Langs returns the language codes present in a localized value, sorted.
func (v Value) Langs() []Lang {
	if v.kind != KindLocalized {
		return nil
	}
	out := make([]Lang, 0, len(v.localized))
	for l := range v.localized {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// UnmarshalJSON decodes strings, numbers and booleans as scalars, arrays as lists and
// objects as language maps. null decodes to an absent value.
func (v *Value) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*v = Value{}
		return nil
	}
	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*v = Scalar(s)
	case '[':
		var items []Value
		if err := json.Unmarshal(b, &items); err != nil {
			return err
		}
		if items == nil {
			items = []Value{}
		}
		*v = Value{kind: KindList, list: items}
	case '{':
		var raw map[string]Value
		if err := json.Unmarshal(b, &raw); err != nil {
			return err
		}
		m := make(map[Lang]Value, len(raw))
		for k, e := range raw {
			m[Lang(k)] = e
		}
		*v = Value{kind: KindLocalized, localized: m}
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err == nil {
			*v = Scalar(n.String())
			return nil
		}
		var flag bool
		if err := json.Unmarshal(b, &flag); err != nil {
			return fmt.Errorf("content: unsupported value %s", b)
		}
		*v = Scalar(fmt.Sprint(flag))
	}
	return nil
}

// MarshalJSON encodes the value back to its source shape.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindScalar:
		return json.Marshal(v.scalar)
	case KindList:
		if v.list == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.list)
	case KindLocalized:
		m := make(map[string]Value, len(v.localized))
		for l, e := range v.localized {
			m[string(l)] = e
		}
		return json.Marshal(m)
	default:
		return []byte("null"), nil
	}
}
