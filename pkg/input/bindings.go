package input

import (
	"errors"
	"fmt"
	"sort"
)

// Key is a platform key code. The window layer decides what the numbers mean.
type Key int

// ErrNoBindings is returned when a binding configuration leaves no usable key
var ErrNoBindings = errors.New("input: no valid key bindings")

// BindingError reports a configuration entry that could not be bound
type BindingError struct {
	Action string
	Key    string
	Reason string
}

func (e *BindingError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("input: binding %q: %s", e.Action, e.Reason)
	}
	return fmt.Sprintf("input: binding %q -> %q: %s", e.Action, e.Key, e.Reason)
}

// KeyResolver maps a configured key name to a platform key code
type KeyResolver func(name string) (Key, bool)

// Bindings maps platform keys to actions
type Bindings struct {
	keys map[Key]Action
}

// NewBindings builds key bindings from a map of action name to key name.
//
// Entries that name an unknown action or key, or a key that is already taken,
// are skipped and reported as joined *BindingError values alongside the usable
// bindings. Only when nothing could be bound is the result nil and the error
// wraps ErrNoBindings.
func NewBindings(spec map[string]string, resolve KeyResolver) (*Bindings, error) {
	b := &Bindings{keys: make(map[Key]Action, len(spec))}

	// sorted so the first action name keeps a contested key
	names := make([]string, 0, len(spec))
	for name := range spec {
		names = append(names, name)
	}
	sort.Strings(names)

	var errs []error
	for _, name := range names {
		keyName := spec[name]

		action, err := ParseAction(name)
		if err != nil {
			errs = append(errs, &BindingError{Action: name, Key: keyName, Reason: "unknown action"})
			continue
		}

		key, ok := resolve(keyName)
		if !ok {
			errs = append(errs, &BindingError{Action: name, Key: keyName, Reason: "unknown key"})
			continue
		}

		if existing, taken := b.keys[key]; taken {
			errs = append(errs, &BindingError{
				Action: name,
				Key:    keyName,
				Reason: fmt.Sprintf("key already bound to %s", existing),
			})
			continue
		}

		b.keys[key] = action
	}

	if len(b.keys) == 0 {
		errs = append(errs, ErrNoBindings)
		return nil, errors.Join(errs...)
	}

	return b, errors.Join(errs...)
}

// Lookup returns the action bound to a key
func (b *Bindings) Lookup(key Key) (Action, bool) {
	a, ok := b.keys[key]
	return a, ok
}

// Len returns the number of bound keys
func (b *Bindings) Len() int {
	return len(b.keys)
}

// Unbound returns the actions that have no key
func (b *Bindings) Unbound() []Action {
	var bound [numActions]bool
	for _, a := range b.keys {
		bound[a] = true
	}

	var missing []Action
	for a := Action(0); a < numActions; a++ {
		if !bound[a] {
			missing = append(missing, a)
		}
	}
	return missing
}

// Keyboard routes raw key events through Bindings into a State
type Keyboard struct {
	bindings *Bindings
	state    *State
}

// NewKeyboard creates a Keyboard writing into state
func NewKeyboard(bindings *Bindings, state *State) *Keyboard {
	return &Keyboard{bindings: bindings, state: state}
}

// KeyEvent records a key-down (pressed) or key-up transition.
// Keys without a binding are ignored.
func (k *Keyboard) KeyEvent(key Key, pressed bool) {
	action, ok := k.bindings.Lookup(key)
	if !ok {
		return
	}
	// Bound actions are always valid, so SetActive cannot fail here
	_ = k.state.SetActive(action, pressed)
}

// State returns the state the keyboard writes into
func (k *Keyboard) State() *State {
	return k.state
}
