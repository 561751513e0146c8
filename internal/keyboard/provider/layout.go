package provider

import (
	"github.com/dshills/platekb/internal/keyboard/chain"
	"github.com/dshills/platekb/internal/keyboard/layout"
	"github.com/dshills/platekb/internal/keyboard/registry"
)

// LayoutRule is a rule of the layout chain.
type LayoutRule = chain.Rule[layout.Args, layout.Layout]

// LayoutChain resolves the layout skeleton for a position.
type LayoutChain = chain.Chain[layout.Args, layout.Layout]

// NewLayoutChain builds the built-in layout chain over reg.
func NewLayoutChain(reg *registry.Registry) *LayoutChain {
	return chain.New(
		func(a layout.Args) layout.Layout { return modeLayout(reg, a) },
		LayoutRule{
			Name:  "special-first",
			Match: func(a layout.Args) bool { return a.Index == 0 && a.Mode == layout.ModeCivilSpecial },
			Resolve: func(layout.Args) (layout.Layout, bool) {
				return reg.Layout(registry.LayoutCivilSpecial, 0)
			},
		},
		LayoutRule{
			Name: "armed-police-province",
			Match: func(a layout.Args) bool {
				return a.Index == 2 && a.Mode != layout.ModeCivil && a.NumberType.IsArmedPolice()
			},
			Resolve: func(a layout.Args) (layout.Layout, bool) {
				if a.Mode == layout.ModeFull {
					return reg.Layout(registry.LayoutCivilSpecialFull, 2)
				}
				return reg.Layout(registry.LayoutCivilSpecial, 2)
			},
		},
	)
}

// modeLayout selects the full or civil layout for the position by mode alone.
func modeLayout(reg *registry.Registry, a layout.Args) layout.Layout {
	category := registry.LayoutCivil
	if a.Mode == layout.ModeFull {
		category = registry.LayoutFull
	}
	l, _ := reg.Layout(category, a.Index)
	return l
}
