// Package key provides the key value type for the plate keyboard.
//
// A Key is a single selectable unit on the keyboard:
//
//   - Text: the glyph shown on the key, empty for icon-only keys
//   - Code: what pressing the key does (ordinary input, delete, confirm, more)
//   - Enabled: whether the key may be pressed for the current position
//
// Keys are values. Every transformation returns a new Key, so a key read from
// the registry can be handed out and modified without affecting other callers.
package key
