package script

import (
	"context"
	"fmt"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"
)

// RuleFunc is the global function a script must define.
const RuleFunc = "enabled"

// DefaultTimeout bounds a single rule evaluation.
const DefaultTimeout = 100 * time.Millisecond

// State wraps a sandboxed gopher-lua state.
//
// gopher-lua's LState is not goroutine-safe; every call holds the mutex, so a
// State can be shared by concurrent resolutions at the cost of serializing
// script evaluation.
type State struct {
	L *lua.LState

	mu      sync.Mutex
	timeout time.Duration
	closed  bool
}

// StateOption configures a State.
type StateOption func(*State)

// WithTimeout sets the per-call timeout.
func WithTimeout(d time.Duration) StateOption {
	return func(s *State) {
		s.timeout = d
	}
}

// NewState creates a sandboxed Lua state.
func NewState(opts ...StateOption) *State {
	s := &State{timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(s)
	}

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(L)
	s.L = L
	return s
}

// openSafeLibraries opens the base, table, string and math libraries and
// removes the loaders that reach the file system.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require"} {
		L.SetGlobal(name, lua.LNil)
	}
}

// Load creates a state and runs the script at path.
func Load(path string, opts ...StateOption) (*State, error) {
	s := NewState(opts...)
	if err := s.run(func() error { return s.L.DoFile(path) }); err != nil {
		s.Close()
		return nil, fmt.Errorf("loading script %s: %w", path, err)
	}
	return s, nil
}

// LoadString creates a state and runs code.
func LoadString(code string, opts ...StateOption) (*State, error) {
	s := NewState(opts...)
	if err := s.run(func() error { return s.L.DoString(code) }); err != nil {
		s.Close()
		return nil, fmt.Errorf("loading script: %w", err)
	}
	return s, nil
}

// run executes fn under the lock and verifies the rule function exists.
func (s *State) run(fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.withTimeout(fn); err != nil {
		return err
	}
	if s.L.GetGlobal(RuleFunc).Type() != lua.LTFunction {
		return ErrNoRule
	}
	return nil
}

// withTimeout runs fn with a cancellable context and panic recovery.
func (s *State) withTimeout(fn func() error) (err error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	s.L.SetContext(ctx)
	defer s.L.RemoveContext()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	return fn()
}

// Enabled calls the rule function for one key.
func (s *State) Enabled(text string, index int, number, numberType string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false, ErrStateClosed
	}

	var result lua.LValue
	err := s.withTimeout(func() error {
		if err := s.L.CallByParam(lua.P{
			Fn:      s.L.GetGlobal(RuleFunc),
			NRet:    1,
			Protect: true,
		}, lua.LString(text), lua.LNumber(index), lua.LString(number), lua.LString(numberType)); err != nil {
			return err
		}
		result = s.L.Get(-1)
		s.L.Pop(1)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("%s(%q): %w", RuleFunc, text, err)
	}
	return lua.LVAsBool(result), nil
}

// Close releases the Lua state.
func (s *State) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.L.Close()
	s.closed = true
	return nil
}
