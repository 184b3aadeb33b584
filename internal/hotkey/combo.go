package hotkey

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Combo is a parsed key combination such as alt+printscreen
type Combo struct {
	Modifiers []string // canonical names, sorted: alt, ctrl, shift, super
	Key       string   // canonical key name
}

var modifierAliases = map[string]string{
	"alt":     "alt",
	"option":  "alt",
	"ctrl":    "ctrl",
	"control": "ctrl",
	"shift":   "shift",
	"win":     "super",
	"super":   "super",
	"cmd":     "super",
	"meta":    "super",
}

var keyAliases = map[string]string{
	"print screen": "printscreen",
	"printscreen":  "printscreen",
	"prtsc":        "printscreen",
	"prtscn":       "printscreen",
	"print":        "printscreen",
	"snapshot":     "printscreen",
}

// ParseCombo normalizes a combo string. The last "+"-separated part is the
// key; the rest are modifiers. Case and surrounding spaces are ignored.
func ParseCombo(s string) (Combo, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(s)), "+")
	if len(parts) == 0 || strings.TrimSpace(parts[len(parts)-1]) == "" {
		return Combo{}, errors.Errorf("invalid hotkey %q: missing key", s)
	}

	var c Combo
	seen := make(map[string]bool)
	for _, part := range parts[:len(parts)-1] {
		name, ok := modifierAliases[strings.TrimSpace(part)]
		if !ok {
			return Combo{}, errors.Errorf("invalid hotkey %q: unknown modifier %q", s, strings.TrimSpace(part))
		}
		if !seen[name] {
			seen[name] = true
			c.Modifiers = append(c.Modifiers, name)
		}
	}
	sort.Strings(c.Modifiers)

	key := strings.Join(strings.Fields(parts[len(parts)-1]), " ")
	if alias, ok := keyAliases[key]; ok {
		key = alias
	}
	if !knownKey(key) {
		return Combo{}, errors.Errorf("invalid hotkey %q: unknown key %q", s, key)
	}
	c.Key = key
	return c, nil
}

func (c Combo) String() string {
	return strings.Join(append(append([]string{}, c.Modifiers...), c.Key), "+")
}

func knownKey(key string) bool {
	if key == "printscreen" {
		return true
	}
	if len(key) == 1 && (key[0] >= 'a' && key[0] <= 'z' || key[0] >= '0' && key[0] <= '9') {
		return true
	}
	_, ok := functionKeyNumber(key)
	return ok
}

func functionKeyNumber(key string) (int, bool) {
	if len(key) < 2 || key[0] != 'f' {
		return 0, false
	}
	n := 0
	for _, r := range key[1:] {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	if n < 1 || n > 12 {
		return 0, false
	}
	return n, true
}

// FunctionKey returns n for the keys f1..f12
func (c Combo) FunctionKey() (int, bool) {
	return functionKeyNumber(c.Key)
}
