package key

// Set is an immutable set of key texts used to test availability.
type Set struct {
	keys  []Key
	texts map[string]struct{}
}

// NewSet builds a set from keys. The slice is copied.
func NewSet(keys []Key) Set {
	s := Set{
		keys:  make([]Key, len(keys)),
		texts: make(map[string]struct{}, len(keys)),
	}
	copy(s.keys, keys)
	for _, k := range keys {
		s.texts[k.Text] = struct{}{}
	}
	return s
}

// SetOf builds a set with one key per character of s.
func SetOf(s string) Set {
	return NewSet(Keys(s))
}

// Contains reports whether a key with the given text is in the set.
func (s Set) Contains(text string) bool {
	_, ok := s.texts[text]
	return ok
}

// Len returns the number of keys in the set.
func (s Set) Len() int {
	return len(s.keys)
}

// Keys returns a copy of the keys in registration order.
func (s Set) Keys() []Key {
	out := make([]Key, len(s.keys))
	copy(out, s.keys)
	return out
}

// String returns the concatenated key texts.
func (s Set) String() string {
	var b []byte
	for _, k := range s.keys {
		b = append(b, k.Text...)
	}
	return string(b)
}
