// Package request decodes resolution requests from JSON documents.
//
// The typed Go API cannot express a wrongly-typed or absent field, so this
// is where keyboard.ErrInvalidType failures originate:
//
//	{"keyboardType": 1, "cursorIndex": 2, "presetNumber": "粤B", "numberType": 0}
//
// Every field is required. currentIndex is accepted as an alias for
// cursorIndex. A missing keyboardType is out of range; any other missing,
// null or wrongly-typed field is ErrInvalidType.
package request

import (
	"errors"
	"math"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/platekb/internal/keyboard"
	"github.com/dshills/platekb/internal/keyboard/layout"
	"github.com/dshills/platekb/internal/plate"
)

// Field names.
const (
	FieldKeyboardType = "keyboardType"
	FieldCursorIndex  = "cursorIndex"
	FieldCurrentIndex = "currentIndex"
	FieldPresetNumber = "presetNumber"
	FieldNumberType   = "numberType"
)

// Decode parses a JSON request document.
func Decode(data []byte) (keyboard.Options, error) {
	if !gjson.ValidBytes(data) {
		return keyboard.Options{}, keyboard.TypeError("request", string(data), "not a JSON document")
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return keyboard.Options{}, keyboard.TypeError("request", root.Type.String(), "must be an object")
	}

	var opts keyboard.Options

	kt := root.Get(FieldKeyboardType)
	if !kt.Exists() {
		return keyboard.Options{}, keyboard.RangeError(FieldKeyboardType, nil, "is required")
	}
	mode, err := integer(FieldKeyboardType, kt)
	if err != nil {
		return keyboard.Options{}, err
	}
	opts.KeyboardType = layout.Mode(mode)

	index := root.Get(FieldCursorIndex)
	name := FieldCursorIndex
	if !index.Exists() {
		index = root.Get(FieldCurrentIndex)
		name = FieldCurrentIndex
	}
	if !index.Exists() {
		return keyboard.Options{}, keyboard.TypeError(FieldCursorIndex, nil, "is required")
	}
	if opts.CursorIndex, err = integer(name, index); err != nil {
		return keyboard.Options{}, err
	}

	preset := root.Get(FieldPresetNumber)
	if !preset.Exists() {
		return keyboard.Options{}, keyboard.TypeError(FieldPresetNumber, nil, "is required")
	}
	if preset.Type != gjson.String {
		return keyboard.Options{}, keyboard.TypeError(FieldPresetNumber, preset.Raw, "must be a string")
	}
	opts.PresetNumber = preset.Str

	nt := root.Get(FieldNumberType)
	if !nt.Exists() {
		return keyboard.Options{}, keyboard.TypeError(FieldNumberType, nil, "is required")
	}
	t, err := integer(FieldNumberType, nt)
	if err != nil {
		return keyboard.Options{}, err
	}
	opts.NumberType = plate.Type(t)

	return opts, nil
}

func integer(field string, v gjson.Result) (int, error) {
	if v.Type != gjson.Number {
		return 0, keyboard.TypeError(field, v.Raw, "must be an integer")
	}
	f := v.Float()
	if f != math.Trunc(f) {
		return 0, keyboard.TypeError(field, v.Raw, "must be an integer")
	}
	if f < math.MinInt32 || f > math.MaxInt32 {
		return 0, keyboard.RangeError(field, v.Raw, "out of range")
	}
	return int(f), nil
}

// ErrorEnvelope renders err as a JSON error document:
//
//	{"error":{"kind":"InvalidRange","field":"keyboardType","message":"..."}}
func ErrorEnvelope(err error) []byte {
	out := []byte(`{}`)
	out, _ = sjson.SetBytes(out, "error.kind", keyboard.KindOf(err))

	var verr *keyboard.ValidationError
	if errors.As(err, &verr) {
		out, _ = sjson.SetBytes(out, "error.field", verr.Field)
		out, _ = sjson.SetBytes(out, "error.reason", verr.Reason)
	}
	out, _ = sjson.SetBytes(out, "error.message", err.Error())
	return out
}
