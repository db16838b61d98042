package render

import (
	"strconv"
	"strings"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/leterax/go-lair/pkg/input"
)

// keyNames maps configuration key names to GLFW keys
var keyNames = map[string]glfw.Key{
	"space":         glfw.KeySpace,
	"up":            glfw.KeyUp,
	"down":          glfw.KeyDown,
	"left":          glfw.KeyLeft,
	"right":         glfw.KeyRight,
	"page_up":       glfw.KeyPageUp,
	"page_down":     glfw.KeyPageDown,
	"home":          glfw.KeyHome,
	"end":           glfw.KeyEnd,
	"insert":        glfw.KeyInsert,
	"delete":        glfw.KeyDelete,
	"enter":         glfw.KeyEnter,
	"tab":           glfw.KeyTab,
	"backspace":     glfw.KeyBackspace,
	"left_shift":    glfw.KeyLeftShift,
	"right_shift":   glfw.KeyRightShift,
	"left_control":  glfw.KeyLeftControl,
	"right_control": glfw.KeyRightControl,
	"left_alt":      glfw.KeyLeftAlt,
	"right_alt":     glfw.KeyRightAlt,
	"comma":         glfw.KeyComma,
	"period":        glfw.KeyPeriod,
	"minus":         glfw.KeyMinus,
	"equal":         glfw.KeyEqual,
	"semicolon":     glfw.KeySemicolon,
	"slash":         glfw.KeySlash,
}

func init() {
	// GLFW key codes for letters and digits are their ASCII values
	for c := 'a'; c <= 'z'; c++ {
		keyNames[string(c)] = glfw.KeyA + glfw.Key(c-'a')
	}
	for c := '0'; c <= '9'; c++ {
		keyNames[string(c)] = glfw.Key0 + glfw.Key(c-'0')
	}
	for i := 1; i <= 12; i++ {
		keyNames["f"+strconv.Itoa(i)] = glfw.KeyF1 + glfw.Key(i-1)
	}
}

// ResolveKey converts a key name such as "w", "up" or "left_shift" into a
// key code. Escape is reserved for closing the window and never resolves.
func ResolveKey(name string) (input.Key, bool) {
	k, ok := keyNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, false
	}
	return input.Key(k), true
}
