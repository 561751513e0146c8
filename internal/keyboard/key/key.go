package key

import "encoding/json"

// Code identifies what pressing a key does.
type Code int

const (
	// CodeGeneral is an ordinary character key.
	CodeGeneral Code = iota

	// CodeDelete deletes the character before the cursor.
	CodeDelete

	// CodeConfirm finishes input.
	CodeConfirm

	// CodeMore switches to an extended key page.
	CodeMore
)

// String returns the code name.
func (c Code) String() string {
	switch c {
	case CodeGeneral:
		return "GENERAL"
	case CodeDelete:
		return "FUN_DEL"
	case CodeConfirm:
		return "FUN_OK"
	case CodeMore:
		return "FUN_MORE"
	default:
		return "UNKNOWN"
	}
}

// Key is one key on the plate keyboard.
type Key struct {
	// Text is the display glyph. Empty for icon-only keys.
	Text string `json:"text"`

	// Code is the key function.
	Code Code `json:"keyCode"`

	// Enabled reports whether the key may be pressed.
	Enabled bool `json:"enabled"`
}

// New creates a key with the given text, code and enabled state.
func New(text string, code Code, enabled bool) Key {
	return Key{Text: text, Code: code, Enabled: enabled}
}

// Of creates an enabled ordinary key.
func Of(text string) Key {
	return Key{Text: text, Code: CodeGeneral, Enabled: true}
}

// Keys creates one enabled ordinary key per character of s.
func Keys(s string) []Key {
	keys := make([]Key, 0, len(s))
	for _, r := range s {
		keys = append(keys, Of(string(r)))
	}
	return keys
}

// IsFunction reports whether k is a function key rather than a character.
func (k Key) IsFunction() bool {
	return k.Code != CodeGeneral
}

// WithEnabled returns a copy of k with the given enabled state.
func (k Key) WithEnabled(enabled bool) Key {
	k.Enabled = enabled
	return k
}

// WithCode returns a copy of k with new text and code. The enabled state is kept.
func (k Key) WithCode(text string, code Code) Key {
	k.Text = text
	k.Code = code
	return k
}

// MarshalJSON encodes the key with its derived isFunKey field.
func (k Key) MarshalJSON() ([]byte, error) {
	type plain Key
	return json.Marshal(struct {
		plain
		IsFunction bool `json:"isFunKey"`
	}{plain(k), k.IsFunction()})
}

// Texts returns the text of every key, in order.
func Texts(keys []Key) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = k.Text
	}
	return out
}
