package script

import (
	"github.com/dshills/platekb/internal/keyboard/key"
	"github.com/dshills/platekb/internal/keyboard/layout"
	"github.com/dshills/platekb/internal/keyboard/mixer"
)

// StepName is the name of the restriction step in the mixer pipeline.
const StepName = "script"

// Step returns a mixer step that applies the script to every enabled
// ordinary key. Evaluation stops at the first script error.
func (s *State) Step() mixer.Step {
	return mixer.Step{
		Name: StepName,
		Apply: func(l layout.Layout, a layout.Args) (layout.Layout, error) {
			var err error
			out := l.Map(func(k key.Key) key.Key {
				if err != nil || !k.Enabled || k.IsFunction() {
					return k
				}
				ok, callErr := s.Enabled(k.Text, a.Index, a.Number, a.NumberType.String())
				if callErr != nil {
					err = callErr
					return k
				}
				return k.WithEnabled(ok)
			})
			if err != nil {
				return l, err
			}
			return out, nil
		},
	}
}
