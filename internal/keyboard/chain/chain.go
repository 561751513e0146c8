// Package chain provides the ordered rule chain and step pipeline used by the
// keyboard resolver.
//
// A Chain evaluates its rules top to bottom and returns the first result a
// rule produces, or the fallback when every rule defers. A Pipeline threads a
// value through a fixed sequence of steps.
//
// Both are immutable after construction. The position within the rule or
// step list is a local variable of each call, so a Chain or Pipeline can be
// shared by any number of goroutines.
package chain

// FallbackName is reported by Trace when no rule produced a result.
const FallbackName = "fallback"

// Rule is a predicate/handler pair.
type Rule[A, R any] struct {
	// Name identifies the rule in traces and logs.
	Name string

	// Match reports whether the rule applies to args. A nil Match always applies.
	Match func(args A) bool

	// Resolve produces the result. Returning false defers to the next rule.
	Resolve func(args A) (R, bool)
}

// When builds a rule that always resolves once match succeeds.
func When[A, R any](name string, match func(A) bool, resolve func(A) R) Rule[A, R] {
	return Rule[A, R]{
		Name:  name,
		Match: match,
		Resolve: func(args A) (R, bool) {
			return resolve(args), true
		},
	}
}

// Chain is an ordered list of rules with a guaranteed fallback.
type Chain[A, R any] struct {
	rules    []Rule[A, R]
	fallback func(A) R
}

// New creates a chain. The fallback is used when every rule defers and must
// not be nil.
func New[A, R any](fallback func(A) R, rules ...Rule[A, R]) *Chain[A, R] {
	if fallback == nil {
		panic("chain: nil fallback")
	}
	return &Chain[A, R]{
		rules:    append([]Rule[A, R](nil), rules...),
		fallback: fallback,
	}
}

// Prepend returns a new chain that evaluates rules before the rules of c.
// The receiver is not modified.
func (c *Chain[A, R]) Prepend(rules ...Rule[A, R]) *Chain[A, R] {
	merged := make([]Rule[A, R], 0, len(rules)+len(c.rules))
	merged = append(merged, rules...)
	merged = append(merged, c.rules...)
	return &Chain[A, R]{rules: merged, fallback: c.fallback}
}

// Process returns the result of the first rule that resolves args.
func (c *Chain[A, R]) Process(args A) R {
	r, _ := c.Trace(args)
	return r
}

// Trace is like Process but also returns the name of the rule that produced
// the result, or FallbackName.
func (c *Chain[A, R]) Trace(args A) (R, string) {
	for i := 0; i < len(c.rules); i++ {
		rule := c.rules[i]
		if rule.Match != nil && !rule.Match(args) {
			continue
		}
		if rule.Resolve == nil {
			continue
		}
		if r, ok := rule.Resolve(args); ok {
			return r, rule.Name
		}
	}
	return c.fallback(args), FallbackName
}

// Len returns the number of rules, not counting the fallback.
func (c *Chain[A, R]) Len() int {
	return len(c.rules)
}

// Names returns the rule names in evaluation order.
func (c *Chain[A, R]) Names() []string {
	names := make([]string, len(c.rules))
	for i, r := range c.rules {
		names[i] = r.Name
	}
	return names
}
