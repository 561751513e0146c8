package provider

import (
	"github.com/dshills/platekb/internal/keyboard/chain"
	"github.com/dshills/platekb/internal/keyboard/key"
	"github.com/dshills/platekb/internal/keyboard/layout"
	"github.com/dshills/platekb/internal/keyboard/registry"
	"github.com/dshills/platekb/internal/plate"
)

// KeyRule is a rule of the key-availability chain.
type KeyRule = chain.Rule[layout.Args, key.Set]

// KeyChain resolves the legal key set for a position.
type KeyChain = chain.Chain[layout.Args, key.Set]

// NewKeyChain builds the built-in key-availability chain over reg.
func NewKeyChain(reg *registry.Registry) *KeyChain {
	load := func(c registry.KeySetCategory, variant int) key.Set {
		s, _ := reg.KeySet(c, variant)
		return s
	}
	at := func(i int) func(layout.Args) bool {
		return func(a layout.Args) bool { return a.Index == i }
	}

	return chain.New(
		func(layout.Args) key.Set { return load(registry.KeysNumericLetters, registry.DefaultVariant) },

		chain.When("position-0", at(0), func(layout.Args) key.Set {
			return load(registry.KeysAny, registry.DefaultVariant)
		}),

		chain.When("position-1", at(1), func(a layout.Args) key.Set {
			switch a.NumberType {
			case plate.TypePLA2012:
				return load(registry.KeysArmy, 1)
			case plate.TypeWJ2007, plate.TypeWJ2012:
				return load(registry.KeysArmedPolice, 1)
			case plate.TypeAviation:
				return load(registry.KeysAviation, 1)
			case plate.TypeSHI2007:
				return load(registry.KeysEmbassy, 1)
			case plate.TypeSHI2017:
				return load(registry.KeysNumeric, registry.DefaultVariant)
			default:
				return load(registry.KeysCivil, 1)
			}
		}),

		chain.When("position-2", at(2), func(a layout.Args) key.Set {
			switch a.NumberType {
			case plate.TypeWJ2007, plate.TypeWJ2012:
				return load(registry.KeysArmedPolice, 2)
			case plate.TypeSHI2007, plate.TypeSHI2017:
				return load(registry.KeysNumeric, registry.DefaultVariant)
			case plate.TypeNewEnergy:
				return load(registry.KeysNumericDF, registry.DefaultVariant)
			default:
				return load(registry.KeysNumericLetters, registry.DefaultVariant)
			}
		}),

		chain.When("embassy-position-3", func(a layout.Args) bool {
			return a.Index == 3 && a.NumberType == plate.TypeSHI2007
		}, func(layout.Args) key.Set {
			return load(registry.KeysNumeric, registry.DefaultVariant)
		}),

		chain.When("new-energy-position-4-5", func(a layout.Args) bool {
			return (a.Index == 4 || a.Index == 5) && a.NumberType == plate.TypeNewEnergy
		}, func(layout.Args) key.Set {
			return load(registry.KeysNumeric, registry.DefaultVariant)
		}),

		chain.When("position-6", at(6), func(a layout.Args) key.Set {
			switch a.NumberType {
			case plate.TypeNewEnergy:
				return load(registry.KeysNumeric, registry.DefaultVariant)
			case plate.TypePLA2012, plate.TypeSHI2007, plate.TypeWJ2007, plate.TypeWJ2012, plate.TypeAviation:
				return load(registry.KeysNumericLetters, registry.DefaultVariant)
			case plate.TypeSHI2017:
				return load(registry.KeysEmbassySuffix, registry.DefaultVariant)
			}
			return civilSuffix(a, load)
		}),

		chain.When("new-energy-position-7", func(a layout.Args) bool {
			return a.Index == 7 && a.NumberType == plate.TypeNewEnergy
		}, func(layout.Args) key.Set {
			return load(registry.KeysNumericDF, registry.DefaultVariant)
		}),
	)
}

// civilSuffix resolves the last position of civil and unclassified plates.
func civilSuffix(a layout.Args, load func(registry.KeySetCategory, int) key.Set) key.Set {
	cityCode := plate.CharAt(a.Number, 1)
	if cityCode == plate.PoliceO {
		return load(registry.KeysPolice, registry.DefaultVariant)
	}
	if a.NumberType == plate.TypeCivil && plate.CharAt(a.Number, 0) == plate.Guangdong && cityCode == plate.CityZ {
		return load(registry.KeysHKMacao, registry.DefaultVariant)
	}
	return load(registry.KeysPostfix, registry.DefaultVariant)
}
