// Package input translates raw key events into held navigation intents.
// It has no dependency on a window or graphics context.
package input

import (
	"fmt"
	"strings"
)

// Action is a logical navigation intent
type Action uint8

const (
	MoveForward Action = iota
	MoveBack
	StrafeLeft
	StrafeRight
	TurnLeft
	TurnRight
	LookUp
	LookDown

	numActions
)

var actionNames = [numActions]string{
	MoveForward: "move_forward",
	MoveBack:    "move_back",
	StrafeLeft:  "strafe_left",
	StrafeRight: "strafe_right",
	TurnLeft:    "turn_left",
	TurnRight:   "turn_right",
	LookUp:      "look_up",
	LookDown:    "look_down",
}

// Actions returns every known action in declaration order
func Actions() []Action {
	actions := make([]Action, 0, numActions)
	for a := Action(0); a < numActions; a++ {
		actions = append(actions, a)
	}
	return actions
}

// Valid reports whether a is a known action
func (a Action) Valid() bool {
	return a < numActions
}

func (a Action) String() string {
	if !a.Valid() {
		return fmt.Sprintf("Action(%d)", uint8(a))
	}
	return actionNames[a]
}

// ParseAction converts a configuration name such as "move_forward" into an Action
func ParseAction(name string) (Action, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for a, n := range actionNames {
		if n == normalized {
			return Action(a), nil
		}
	}
	return 0, &BindingError{Action: name, Reason: "unknown action"}
}

// State is the set of currently held actions.
// Transitions are recorded as they arrive; nothing is queued, so pressing
// twice before one release still leaves the action on exactly once.
type State struct {
	held uint16
}

// NewState returns a State with nothing held
func NewState() *State {
	return &State{}
}

// SetActive marks an action as held or released
func (s *State) SetActive(a Action, active bool) error {
	if !a.Valid() {
		return &BindingError{Action: a.String(), Reason: "unknown action"}
	}

	bit := uint16(1) << a
	if active {
		s.held |= bit
	} else {
		s.held &^= bit
	}
	return nil
}

// IsActive reports whether an action is currently held
func (s *State) IsActive(a Action) bool {
	if !a.Valid() {
		return false
	}
	return s.held&(uint16(1)<<a) != 0
}

// Active returns the held actions in declaration order
func (s *State) Active() []Action {
	var active []Action
	for a := Action(0); a < numActions; a++ {
		if s.IsActive(a) {
			active = append(active, a)
		}
	}
	return active
}
