// Package mixer folds the legal key set into a layout skeleton.
//
// The steps run in a fixed order:
//
//  1. availability: enable exactly the keys in the legal key set
//  2. new-energy: at position 0 of a new-energy plate, keep only provinces
//  3. function keys: turn the - and + placeholders into delete and confirm
//  4. delete: enabled when something has been entered
//  5. confirm: enabled when the plate is complete
//  6. flatten: collect every row into Layout.Keys
//
// Placeholders are matched by text, so steps 1 and 2 must run before step 3,
// and steps 4 and 5 depend on the codes assigned by step 3.
package mixer

import (
	"github.com/dshills/platekb/internal/keyboard/chain"
	"github.com/dshills/platekb/internal/keyboard/key"
	"github.com/dshills/platekb/internal/keyboard/layout"
	"github.com/dshills/platekb/internal/keyboard/registry"
	"github.com/dshills/platekb/internal/plate"
)

// Step names.
const (
	StepAvailability = "availability"
	StepNewEnergy    = "new-energy"
	StepFunctionKeys = "function-keys"
	StepDelete       = "delete"
	StepConfirm      = "confirm"
	StepFlatten      = "flatten"
)

// ConfirmText is the label of the confirm key.
const ConfirmText = "确定"

// Step is one composition step.
type Step = chain.Step[layout.Layout, layout.Args]

// Pipeline is an ordered list of composition steps.
type Pipeline = chain.Pipeline[layout.Layout, layout.Args]

// Default returns the built-in composition pipeline.
func Default() *Pipeline {
	return chain.NewPipeline(
		chain.Pure(StepAvailability, Availability),
		chain.Pure(StepNewEnergy, NewEnergy),
		chain.Pure(StepFunctionKeys, FunctionKeys),
		chain.Pure(StepDelete, Delete),
		chain.Pure(StepConfirm, Confirm),
		chain.Pure(StepFlatten, Flatten),
	)
}

// Availability enables a key iff its text is in the legal key set.
func Availability(l layout.Layout, a layout.Args) layout.Layout {
	return l.Map(func(k key.Key) key.Key {
		return k.WithEnabled(a.Keys.Contains(k.Text))
	})
}

// NewEnergy restricts the first position of new-energy plates to provinces.
func NewEnergy(l layout.Layout, a layout.Args) layout.Layout {
	if a.Index != 0 || a.NumberType != plate.TypeNewEnergy {
		return l
	}
	return l.Map(func(k key.Key) key.Key {
		return k.WithEnabled(k.Enabled && plate.IsProvince(k.Text))
	})
}

// FunctionKeys replaces the delete and confirm placeholders with function keys.
func FunctionKeys(l layout.Layout, _ layout.Args) layout.Layout {
	return l.Map(func(k key.Key) key.Key {
		switch k.Text {
		case registry.DeletePlaceholder:
			return k.WithCode("", key.CodeDelete)
		case registry.ConfirmPlaceholder:
			return k.WithCode(ConfirmText, key.CodeConfirm)
		}
		return k
	})
}

// Delete enables the delete key iff the entered number is not empty.
func Delete(l layout.Layout, a layout.Args) layout.Layout {
	enabled := a.NumberLength() != 0
	return l.Map(func(k key.Key) key.Key {
		if k.Code == key.CodeDelete {
			return k.WithEnabled(enabled)
		}
		return k
	})
}

// Confirm enables the confirm key iff the entered number is complete.
func Confirm(l layout.Layout, a layout.Args) layout.Layout {
	enabled := a.NumberLength() == a.LimitLength()
	return l.Map(func(k key.Key) key.Key {
		if k.Code == key.CodeConfirm {
			return k.WithEnabled(enabled)
		}
		return k
	})
}

// Flatten sets Keys to every key of every row in order.
func Flatten(l layout.Layout, _ layout.Args) layout.Layout {
	l.Keys = l.Flatten()
	return l
}
