package layout

import (
	"github.com/dshills/platekb/internal/keyboard/key"
	"github.com/dshills/platekb/internal/plate"
)

// Args is the per-call context threaded through the resolution chains and
// the mixers. It is passed by value; nothing in it is shared between calls.
type Args struct {
	// Index is the clamped cursor position.
	Index int

	// Number is the plate number entered so far.
	Number string

	// Mode is the keyboard mode.
	Mode Mode

	// NumberType is the effective plate scheme.
	NumberType plate.Type

	// Keys is the legal key set for Index. It is empty until the key chain
	// has run.
	Keys key.Set
}

// NumberLength returns the length of Number in characters.
func (a Args) NumberLength() int {
	return plate.Len(a.Number)
}

// LimitLength returns the maximum plate length for NumberType.
func (a Args) LimitLength() int {
	return a.NumberType.LengthLimit()
}

// WithKeys returns a copy of a carrying the given legal key set.
func (a Args) WithKeys(keys key.Set) Args {
	a.Keys = keys
	return a
}
