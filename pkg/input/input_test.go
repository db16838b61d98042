package input

import (
	"errors"
	"testing"
)

func testResolver(names map[string]Key) KeyResolver {
	return func(name string) (Key, bool) {
		k, ok := names[name]
		return k, ok
	}
}

var testKeys = map[string]Key{
	"W": 87, "S": 83, "A": 65, "D": 68,
	"Left": 263, "Right": 262, "Up": 265, "Down": 264,
}

func TestSetActiveIdempotent(t *testing.T) {
	s := NewState()

	if err := s.SetActive(MoveForward, true); err != nil {
		t.Fatalf("SetActive() error = %v", err)
	}
	if err := s.SetActive(MoveForward, true); err != nil {
		t.Fatalf("SetActive() error = %v", err)
	}
	if !s.IsActive(MoveForward) {
		t.Fatal("MoveForward should be active after two presses")
	}

	// One release is enough, presses do not stack
	if err := s.SetActive(MoveForward, false); err != nil {
		t.Fatalf("SetActive() error = %v", err)
	}
	if s.IsActive(MoveForward) {
		t.Fatal("MoveForward should be inactive after release")
	}
}

func TestSetActiveUnknownAction(t *testing.T) {
	s := NewState()

	err := s.SetActive(Action(42), true)
	var be *BindingError
	if !errors.As(err, &be) {
		t.Fatalf("SetActive(42) error = %v, want *BindingError", err)
	}
	if s.IsActive(Action(42)) {
		t.Error("unknown action must never read as active")
	}
	if len(s.Active()) != 0 {
		t.Errorf("Active() = %v, want empty", s.Active())
	}
}

func TestActiveOrder(t *testing.T) {
	s := NewState()
	_ = s.SetActive(LookDown, true)
	_ = s.SetActive(MoveForward, true)
	_ = s.SetActive(TurnLeft, true)

	got := s.Active()
	want := []Action{MoveForward, TurnLeft, LookDown}
	if len(got) != len(want) {
		t.Fatalf("Active() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Active()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestParseAction(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Action
		wantErr bool
	}{
		{"forward", "move_forward", MoveForward, false},
		{"mixed case", " Look_Up ", LookUp, false},
		{"strafe", "strafe_right", StrafeRight, false},
		{"unknown", "jump", 0, true},
		{"empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAction(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseAction(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("ParseAction(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestActionStringRoundTrip(t *testing.T) {
	for _, a := range Actions() {
		got, err := ParseAction(a.String())
		if err != nil || got != a {
			t.Errorf("ParseAction(%q) = %v, %v", a.String(), got, err)
		}
	}
}

func TestNewBindings(t *testing.T) {
	tests := []struct {
		name        string
		spec        map[string]string
		wantLen     int
		wantErr     bool
		wantFatal   bool
		wantUnbound int
	}{
		{
			name: "all valid",
			spec: map[string]string{
				"move_forward": "W", "move_back": "S", "strafe_left": "A", "strafe_right": "D",
				"turn_left": "Left", "turn_right": "Right", "look_up": "Up", "look_down": "Down",
			},
			wantLen: 8,
		},
		{
			name:        "unknown action is skipped",
			spec:        map[string]string{"move_forward": "W", "fly": "S"},
			wantLen:     1,
			wantErr:     true,
			wantUnbound: 7,
		},
		{
			name:        "unknown key is skipped",
			spec:        map[string]string{"move_forward": "W", "move_back": "F13"},
			wantLen:     1,
			wantErr:     true,
			wantUnbound: 7,
		},
		{
			name:        "duplicate key keeps first in name order",
			spec:        map[string]string{"move_back": "W", "move_forward": "W"},
			wantLen:     1,
			wantErr:     true,
			wantUnbound: 7,
		},
		{
			name:      "nothing valid is fatal",
			spec:      map[string]string{"fly": "W", "move_forward": "F13"},
			wantErr:   true,
			wantFatal: true,
		},
		{
			name:      "empty is fatal",
			spec:      map[string]string{},
			wantErr:   true,
			wantFatal: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := NewBindings(tt.spec, testResolver(testKeys))
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewBindings() error = %v, wantErr %v", err, tt.wantErr)
			}
			if errors.Is(err, ErrNoBindings) != tt.wantFatal {
				t.Fatalf("errors.Is(err, ErrNoBindings) = %v, want %v", errors.Is(err, ErrNoBindings), tt.wantFatal)
			}
			if tt.wantFatal {
				if b != nil {
					t.Fatal("fatal binding error must not return bindings")
				}
				return
			}
			if b.Len() != tt.wantLen {
				t.Errorf("Len() = %d, want %d", b.Len(), tt.wantLen)
			}
			if len(b.Unbound()) != tt.wantUnbound {
				t.Errorf("Unbound() = %v, want %d entries", b.Unbound(), tt.wantUnbound)
			}
			if tt.wantErr {
				var be *BindingError
				if !errors.As(err, &be) {
					t.Errorf("error %v does not contain a *BindingError", err)
				}
			}
		})
	}
}

func TestDuplicateKeyResolution(t *testing.T) {
	b, _ := NewBindings(map[string]string{"move_forward": "W", "move_back": "W"}, testResolver(testKeys))
	a, ok := b.Lookup(testKeys["W"])
	if !ok || a != MoveBack {
		t.Errorf("Lookup(W) = %v, %v, want move_back (first by name)", a, ok)
	}
}

func TestKeyboardRoutesEvents(t *testing.T) {
	b, err := NewBindings(map[string]string{"move_forward": "W", "turn_left": "Left"}, testResolver(testKeys))
	if err != nil {
		t.Fatalf("NewBindings() error = %v", err)
	}
	kb := NewKeyboard(b, NewState())

	kb.KeyEvent(testKeys["W"], true)
	kb.KeyEvent(testKeys["Left"], true)
	kb.KeyEvent(Key(999), true) // unbound

	if !kb.State().IsActive(MoveForward) || !kb.State().IsActive(TurnLeft) {
		t.Fatalf("Active() = %v, want move_forward and turn_left", kb.State().Active())
	}

	kb.KeyEvent(testKeys["W"], false)
	if kb.State().IsActive(MoveForward) {
		t.Error("MoveForward should stop after key-up")
	}
	if !kb.State().IsActive(TurnLeft) {
		t.Error("TurnLeft should remain held")
	}
}
