// Package layout defines the keyboard layout value and the per-call
// resolution arguments shared by the resolution chains and mixers.
package layout

import (
	"encoding/json"

	"github.com/dshills/platekb/internal/keyboard/key"
	"github.com/dshills/platekb/internal/plate"
)

// MaxRows is the number of row slots a layout has. Unused rows are empty.
const MaxRows = 5

// Layout is an arrangement of keys into rows plus the metadata describing
// the plate being entered.
type Layout struct {
	// Rows holds the keys of each row. Row membership and order come from
	// the registry; only enabled flags and function keys change per call.
	Rows [MaxRows][]key.Key

	// Keys is every key of every row, flattened in row order.
	Keys []key.Key

	// Index is the active cursor position.
	Index int

	// KeyboardType is the keyboard mode the layout was resolved for.
	KeyboardType Mode

	// PresetNumber is the number entered so far.
	PresetNumber string

	// NumberType is the scheme the layout was resolved for.
	NumberType plate.Type

	// PresetNumberType mirrors NumberType.
	PresetNumberType plate.Type

	// DetectedNumberType is what the number alone classifies as.
	DetectedNumberType plate.Type

	// NumberLength is the length of PresetNumber in characters.
	NumberLength int

	// NumberLimitLength is the maximum length for NumberType.
	NumberLimitLength int
}

// New creates a layout from up to MaxRows rows. Rows are copied.
func New(rows ...[]key.Key) Layout {
	var l Layout
	for i, row := range rows {
		if i >= MaxRows {
			break
		}
		l.Rows[i] = cloneRow(row)
	}
	return l
}

// Row returns row i, or nil when i is out of range.
func (l Layout) Row(i int) []key.Key {
	if i < 0 || i >= MaxRows {
		return nil
	}
	return l.Rows[i]
}

// RowCount returns the number of non-empty rows.
func (l Layout) RowCount() int {
	n := 0
	for _, row := range l.Rows {
		if len(row) > 0 {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of the layout.
func (l Layout) Clone() Layout {
	out := l
	for i, row := range l.Rows {
		out.Rows[i] = cloneRow(row)
	}
	out.Keys = cloneRow(l.Keys)
	return out
}

// Map returns a new layout with fn applied to every key of every row.
// The receiver is not modified. Keys is left as is; see Flatten.
func (l Layout) Map(fn func(key.Key) key.Key) Layout {
	out := l
	for i, row := range l.Rows {
		if row == nil {
			continue
		}
		mapped := make([]key.Key, len(row))
		for j, k := range row {
			mapped[j] = fn(k)
		}
		out.Rows[i] = mapped
	}
	out.Keys = cloneRow(l.Keys)
	return out
}

// Flatten returns every key of every non-empty row in row order.
func (l Layout) Flatten() []key.Key {
	n := 0
	for _, row := range l.Rows {
		n += len(row)
	}
	out := make([]key.Key, 0, n)
	for _, row := range l.Rows {
		out = append(out, row...)
	}
	return out
}

func cloneRow(row []key.Key) []key.Key {
	if row == nil {
		return nil
	}
	out := make([]key.Key, len(row))
	copy(out, row)
	return out
}

// layoutJSON is the wire form of a Layout.
type layoutJSON struct {
	Row0               []key.Key `json:"row0"`
	Row1               []key.Key `json:"row1"`
	Row2               []key.Key `json:"row2"`
	Row3               []key.Key `json:"row3"`
	Row4               []key.Key `json:"row4"`
	Keys               []key.Key `json:"keys"`
	Index              int       `json:"index"`
	KeyboardType       int       `json:"keyboardType"`
	PresetNumber       string    `json:"presetNumber"`
	NumberType         int       `json:"numberType"`
	PresetNumberType   int       `json:"presetNumberType"`
	DetectedNumberType int       `json:"detectedNumberType"`
	NumberLength       int       `json:"numberLength"`
	NumberLimitLength  int       `json:"numberLimitLength"`
}

// MarshalJSON encodes the layout with one field per row. Empty rows are
// encoded as empty arrays.
func (l Layout) MarshalJSON() ([]byte, error) {
	row := func(i int) []key.Key {
		if l.Rows[i] == nil {
			return []key.Key{}
		}
		return l.Rows[i]
	}
	keys := l.Keys
	if keys == nil {
		keys = []key.Key{}
	}
	return json.Marshal(layoutJSON{
		Row0:               row(0),
		Row1:               row(1),
		Row2:               row(2),
		Row3:               row(3),
		Row4:               row(4),
		Keys:               keys,
		Index:              l.Index,
		KeyboardType:       int(l.KeyboardType),
		PresetNumber:       l.PresetNumber,
		NumberType:         int(l.NumberType),
		PresetNumberType:   int(l.PresetNumberType),
		DetectedNumberType: int(l.DetectedNumberType),
		NumberLength:       l.NumberLength,
		NumberLimitLength:  l.NumberLimitLength,
	})
}
