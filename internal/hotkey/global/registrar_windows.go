//go:build windows

package global

import (
	"log"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"golang.design/x/hotkey"

	qhotkey "github.com/quickshot/quickshot/internal/hotkey"
)

var modifiers = map[string]hotkey.Modifier{
	"alt":   hotkey.ModAlt,
	"ctrl":  hotkey.ModCtrl,
	"shift": hotkey.ModShift,
	"super": hotkey.ModWin,
}

// VK_SNAPSHOT
const printScreenKey = hotkey.Key(0x2C)

var letterKeys = []hotkey.Key{
	hotkey.KeyA, hotkey.KeyB, hotkey.KeyC, hotkey.KeyD, hotkey.KeyE, hotkey.KeyF,
	hotkey.KeyG, hotkey.KeyH, hotkey.KeyI, hotkey.KeyJ, hotkey.KeyK, hotkey.KeyL,
	hotkey.KeyM, hotkey.KeyN, hotkey.KeyO, hotkey.KeyP, hotkey.KeyQ, hotkey.KeyR,
	hotkey.KeyS, hotkey.KeyT, hotkey.KeyU, hotkey.KeyV, hotkey.KeyW, hotkey.KeyX,
	hotkey.KeyY, hotkey.KeyZ,
}

var digitKeys = []hotkey.Key{
	hotkey.Key0, hotkey.Key1, hotkey.Key2, hotkey.Key3, hotkey.Key4,
	hotkey.Key5, hotkey.Key6, hotkey.Key7, hotkey.Key8, hotkey.Key9,
}

var functionKeys = []hotkey.Key{
	hotkey.KeyF1, hotkey.KeyF2, hotkey.KeyF3, hotkey.KeyF4, hotkey.KeyF5, hotkey.KeyF6,
	hotkey.KeyF7, hotkey.KeyF8, hotkey.KeyF9, hotkey.KeyF10, hotkey.KeyF11, hotkey.KeyF12,
}

func resolve(c qhotkey.Combo) ([]hotkey.Modifier, hotkey.Key, error) {
	var mods []hotkey.Modifier
	for _, m := range c.Modifiers {
		mod, ok := modifiers[m]
		if !ok {
			return nil, 0, errors.Errorf("modifier %s not available", m)
		}
		mods = append(mods, mod)
	}

	switch {
	case c.Key == "printscreen":
		return mods, printScreenKey, nil
	case len(c.Key) == 1 && c.Key[0] >= 'a' && c.Key[0] <= 'z':
		return mods, letterKeys[c.Key[0]-'a'], nil
	case len(c.Key) == 1 && c.Key[0] >= '0' && c.Key[0] <= '9':
		return mods, digitKeys[c.Key[0]-'0'], nil
	}
	if n, ok := c.FunctionKey(); ok {
		return mods, functionKeys[n-1], nil
	}
	return nil, 0, errors.Errorf("unknown key %s", c.Key)
}

// Registrar registers global hotkeys through RegisterHotKey
type Registrar struct {
	mu      sync.Mutex
	entries []*entry
}

type entry struct {
	combo string
	hk    *hotkey.Hotkey
	done  chan struct{}
}

// NewRegistrar creates an empty registrar
func NewRegistrar() *Registrar {
	return &Registrar{}
}

func (r *Registrar) Register(combo string, fn func()) error {
	c, err := qhotkey.ParseCombo(combo)
	if err != nil {
		return err
	}
	mods, key, err := resolve(c)
	if err != nil {
		return errors.Wrapf(err, "cannot register %s", combo)
	}

	hk := hotkey.New(mods, key)
	if err := hk.Register(); err != nil {
		return errors.Wrapf(err, "cannot register %s", combo)
	}

	e := &entry{combo: combo, hk: hk, done: make(chan struct{})}
	r.mu.Lock()
	r.entries = append(r.entries, e)
	r.mu.Unlock()

	go func() {
		for {
			select {
			case <-e.done:
				return
			case _, ok := <-hk.Keydown():
				if !ok {
					return
				}
				go fn()
			}
		}
	}()
	return nil
}

func (r *Registrar) UnregisterAll() error {
	r.mu.Lock()
	entries := r.entries
	r.entries = nil
	r.mu.Unlock()

	var failed []string
	for _, e := range entries {
		close(e.done)
		if err := e.hk.Unregister(); err != nil {
			log.Printf("Failed to unregister %s: %v", e.combo, err)
			failed = append(failed, e.combo)
		}
	}
	if len(failed) > 0 {
		return errors.Errorf("failed to unregister %s", strings.Join(failed, ", "))
	}
	return nil
}
