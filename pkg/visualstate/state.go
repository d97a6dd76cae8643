// Package visualstate models the appearance modes of a widget and the
// rules that select between them.
//
// A [Registry] holds two keyed sets: transitions, which give the
// cross-fade duration for an ordered pair of states, and triggers, which
// map focus, hover and press conditions to a target state. [Evaluate]
// turns the current input facts into the state the widget should show,
// and [ApplyAnchor] moves explicit trigger bounds when the widget resizes.
package visualstate

import (
	"strings"

	"github.com/go-drift/statefade/pkg/errors"
)

// State is an opaque, comparable appearance mode such as Normal or Hot.
// The empty State is invalid.
type State string

// Common states. Hosts may define their own.
const (
	Normal   State = "normal"
	Hot      State = "hot"
	Pressed  State = "pressed"
	Disabled State = "disabled"
	Focused  State = "focused"
)

func (s State) String() string {
	if s == "" {
		return "<invalid>"
	}
	return string(s)
}

// Valid reports whether s can be used as a visual state.
func (s State) Valid() bool {
	return strings.TrimSpace(string(s)) != ""
}

// Validate returns a KindConfig error when s is not a usable state. op
// names the caller for the error message.
func Validate(op string, s State) error {
	if !s.Valid() {
		return errors.Config(op, "visual state %q is not valid", string(s))
	}
	return nil
}

// ParseState normalises a configured state name.
func ParseState(name string) (State, error) {
	s := State(strings.ToLower(strings.TrimSpace(name)))
	if err := Validate("visualstate.ParseState", s); err != nil {
		return "", err
	}
	return s, nil
}
