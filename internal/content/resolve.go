package content

// Resolve picks what a renderer inserts for v in lang, falling back to French.
func Resolve(v Value, lang Lang) Value {
	return ResolveFallback(v, lang, DefaultLang)
}

// ResolveFallback resolves v for lang:
//   - absent yields an empty scalar
//   - scalars and lists are returned unchanged
//   - language maps yield the entry for lang, else the entry for fallback, else an empty scalar
//
// An entry that is absent or an empty string counts as missing.
func ResolveFallback(v Value, lang, fallback Lang) Value {
	switch v.kind {
	case KindScalar, KindList:
		return v
	case KindLocalized:
		if e, ok := v.localized[lang]; ok && present(e) {
			return e
		}
		if e, ok := v.localized[fallback]; ok && present(e) {
			return e
		}
	}
	return Scalar("")
}

func present(v Value) bool {
	switch v.kind {
	case KindAbsent:
		return false
	case KindScalar:
		return v.scalar != ""
	default:
		return true
	}
}

// Text resolves v and returns its text. Lists resolve to "".
func Text(v Value, lang Lang) string {
	return Resolve(v, lang).String()
}

// Items resolves v and returns its elements in document order. A scalar counts as a
// single element unless it is empty.
func Items(v Value, lang Lang) []Value {
	r := Resolve(v, lang)
	switch r.kind {
	case KindList:
		return r.Elements()
	case KindScalar:
		if r.scalar == "" {
			return nil
		}
		return []Value{r}
	}
	return nil
}

// Texts resolves each element of v and returns the non-empty texts in order.
func Texts(v Value, lang Lang) []string {
	items := Items(v, lang)
	out := make([]string, 0, len(items))
	for _, it := range items {
		if s := Text(it, lang); s != "" {
			out = append(out, s)
		}
	}
	return out
}
