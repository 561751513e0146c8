package chain

import "fmt"

// Step transforms a value in a pipeline.
type Step[V, A any] struct {
	// Name identifies the step.
	Name string

	// Apply returns the transformed value. It must not modify v in place.
	Apply func(v V, args A) (V, error)
}

// Pure builds a step that cannot fail.
func Pure[V, A any](name string, fn func(V, A) V) Step[V, A] {
	return Step[V, A]{
		Name: name,
		Apply: func(v V, args A) (V, error) {
			return fn(v, args), nil
		},
	}
}

// Pipeline applies its steps in order.
type Pipeline[V, A any] struct {
	steps []Step[V, A]
}

// NewPipeline creates a pipeline from steps.
func NewPipeline[V, A any](steps ...Step[V, A]) *Pipeline[V, A] {
	return &Pipeline[V, A]{steps: append([]Step[V, A](nil), steps...)}
}

// InsertBefore returns a new pipeline with steps placed immediately before
// the step named anchor, or at the end when no step has that name.
func (p *Pipeline[V, A]) InsertBefore(anchor string, steps ...Step[V, A]) *Pipeline[V, A] {
	at := len(p.steps)
	for i, s := range p.steps {
		if s.Name == anchor {
			at = i
			break
		}
	}
	merged := make([]Step[V, A], 0, len(p.steps)+len(steps))
	merged = append(merged, p.steps[:at]...)
	merged = append(merged, steps...)
	merged = append(merged, p.steps[at:]...)
	return &Pipeline[V, A]{steps: merged}
}

// Process threads v through every step. It stops at the first error.
func (p *Pipeline[V, A]) Process(v V, args A) (V, error) {
	for _, s := range p.steps {
		next, err := s.Apply(v, args)
		if err != nil {
			return v, fmt.Errorf("step %s: %w", s.Name, err)
		}
		v = next
	}
	return v, nil
}

// Names returns the step names in order.
func (p *Pipeline[V, A]) Names() []string {
	names := make([]string, len(p.steps))
	for i, s := range p.steps {
		names[i] = s.Name
	}
	return names
}
