// Package registry holds the static tables of keyboard layouts and legal key
// sets.
//
// Entries are addressed by a typed two-part ID: a category plus a variant
// number (usually the cursor position). The default registry is built once,
// on first use, and never modified afterwards, so lookups need no locking.
package registry

import (
	"sort"
	"sync"

	"github.com/dshills/platekb/internal/keyboard/key"
	"github.com/dshills/platekb/internal/keyboard/layout"
)

// DefaultVariant is the variant used for entries that have only one.
const DefaultVariant = 0

// LayoutCategory names a family of layout skeletons.
type LayoutCategory int

const (
	// LayoutCivil is the civil-only keyboard.
	LayoutCivil LayoutCategory = iota

	// LayoutCivilSpecial is the civil keyboard with armed police and embassy keys.
	LayoutCivilSpecial

	// LayoutCivilSpecialFull is the armed police province row used by the
	// full keyboard.
	LayoutCivilSpecialFull

	// LayoutFull is the full keyboard.
	LayoutFull
)

// String returns the category name.
func (c LayoutCategory) String() string {
	switch c {
	case LayoutCivil:
		return "layout.civil"
	case LayoutCivilSpecial:
		return "layout.special"
	case LayoutCivilSpecialFull:
		return "layout.special.full"
	case LayoutFull:
		return "layout.full"
	default:
		return "layout.unknown"
	}
}

// KeySetCategory names a family of legal key sets.
type KeySetCategory int

const (
	// KeysAny is every legal first character.
	KeysAny KeySetCategory = iota

	// KeysCivil is the civil city-code set.
	KeysCivil

	// KeysArmy is the military area-code set.
	KeysArmy

	// KeysArmedPolice is the armed police set; variant is the position.
	KeysArmedPolice

	// KeysAviation is the aviation set.
	KeysAviation

	// KeysEmbassy is the 2007 embassy set.
	KeysEmbassy

	// KeysEmbassySuffix is the trailing 使 of 2017 embassy plates.
	KeysEmbassySuffix

	// KeysNumeric is digits only.
	KeysNumeric

	// KeysNumericLetters is digits and letters.
	KeysNumericLetters

	// KeysPolice is digits, letters and 警.
	KeysPolice

	// KeysNumericDF is digits plus D and F.
	KeysNumericDF

	// KeysHKMacao is 港 and 澳.
	KeysHKMacao

	// KeysPostfix is digits, letters and the civil postfix characters.
	KeysPostfix
)

// String returns the category name.
func (c KeySetCategory) String() string {
	switch c {
	case KeysAny:
		return "keys.any"
	case KeysCivil:
		return "keys.civil"
	case KeysArmy:
		return "keys.army"
	case KeysArmedPolice:
		return "keys.wj"
	case KeysAviation:
		return "keys.aviation"
	case KeysEmbassy:
		return "keys.embassy"
	case KeysEmbassySuffix:
		return "keys.embassy.zh"
	case KeysNumeric:
		return "keys.num"
	case KeysNumericLetters:
		return "keys.num.letters"
	case KeysPolice:
		return "keys.O.police"
	case KeysNumericDF:
		return "keys.num.df"
	case KeysHKMacao:
		return "keys.hk.macao"
	case KeysPostfix:
		return "keys.postfix"
	default:
		return "keys.unknown"
	}
}

// LayoutID addresses a layout skeleton.
type LayoutID struct {
	Category LayoutCategory
	Variant  int
}

// KeySetID addresses a legal key set.
type KeySetID struct {
	Category KeySetCategory
	Variant  int
}

// Registry is a read-only table of layouts and key sets.
type Registry struct {
	layouts map[LayoutID]layout.Layout
	keySets map[KeySetID]key.Set
}

// Layout returns a fresh copy of the layout skeleton with the given ID.
func (r *Registry) Layout(category LayoutCategory, variant int) (layout.Layout, bool) {
	l, ok := r.layouts[LayoutID{Category: category, Variant: variant}]
	if !ok {
		return layout.Layout{}, false
	}
	return l.Clone(), true
}

// KeySet returns the key set with the given ID.
func (r *Registry) KeySet(category KeySetCategory, variant int) (key.Set, bool) {
	s, ok := r.keySets[KeySetID{Category: category, Variant: variant}]
	return s, ok
}

// LayoutIDs returns every registered layout ID, sorted.
func (r *Registry) LayoutIDs() []LayoutID {
	ids := make([]LayoutID, 0, len(r.layouts))
	for id := range r.layouts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if ids[i].Category != ids[j].Category {
			return ids[i].Category < ids[j].Category
		}
		return ids[i].Variant < ids[j].Variant
	})
	return ids
}

// KeySetIDs returns every registered key set ID, sorted.
func (r *Registry) KeySetIDs() []KeySetID {
	ids := make([]KeySetID, 0, len(r.keySets))
	for id := range r.keySets {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if ids[i].Category != ids[j].Category {
			return ids[i].Category < ids[j].Category
		}
		return ids[i].Variant < ids[j].Variant
	})
	return ids
}

// builder collects entries before the registry is sealed.
type builder struct {
	layouts map[LayoutID]layout.Layout
	keySets map[KeySetID]key.Set
}

func newBuilder() *builder {
	return &builder{
		layouts: make(map[LayoutID]layout.Layout),
		keySets: make(map[KeySetID]key.Set),
	}
}

// layout registers l under category for each variant, or DefaultVariant
// when none is given.
func (b *builder) layout(l layout.Layout, category LayoutCategory, variants ...int) {
	if len(variants) == 0 {
		variants = []int{DefaultVariant}
	}
	for _, v := range variants {
		b.layouts[LayoutID{Category: category, Variant: v}] = l.Clone()
	}
}

// keys registers a key set built from chars.
func (b *builder) keys(chars string, category KeySetCategory, variants ...int) {
	if len(variants) == 0 {
		variants = []int{DefaultVariant}
	}
	set := key.SetOf(chars)
	for _, v := range variants {
		b.keySets[KeySetID{Category: category, Variant: v}] = set
	}
}

func (b *builder) seal() *Registry {
	return &Registry{layouts: b.layouts, keySets: b.keySets}
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the built-in registry. It is built on first call.
func Default() *Registry {
	defaultOnce.Do(func() {
		b := newBuilder()
		registerLayouts(b)
		registerKeySets(b)
		defaultRegistry = b.seal()
	})
	return defaultRegistry
}
