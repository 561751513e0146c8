// Package keyboard resolves the plate keyboard for one cursor position.
//
// Resolve validates the request, classifies the plate entered so far, runs
// the layout chain and the key-availability chain, folds the results
// together with the mixer pipeline and returns a render-ready Layout:
//
//	l, err := keyboard.Resolve(keyboard.Options{
//	    KeyboardType: layout.ModeCivil,
//	    CursorIndex:  1,
//	    PresetNumber: "粤",
//	    NumberType:   plate.TypeAutoDetect,
//	})
//	if errors.Is(err, keyboard.ErrInvalidRange) {
//	    // caller error
//	}
//
// Every call builds its layout from fresh copies of the registry entries, so
// a Resolver is safe for concurrent use and identical requests always produce
// identical layouts.
//
// # Extension
//
// A Resolver built with New can carry extra layout rules, key rules and mixer
// steps. Rules run before the built-in rules; mixer steps run after the
// delete and confirm steps and before flattening. The lists are fixed once
// New returns.
package keyboard
