//go:build !windows && !darwin

package global

import (
	"log"
	"strings"
	"sync"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
	"github.com/pkg/errors"

	qhotkey "github.com/quickshot/quickshot/internal/hotkey"
)

var modifiers = map[string]uint16{
	"alt":   xproto.ModMask1,
	"ctrl":  xproto.ModMaskControl,
	"shift": xproto.ModMaskShift,
	"super": xproto.ModMask4,
}

const (
	// NumLock is Mod2 on practically every keymap
	numLockMask = xproto.ModMask2
	lockMask    = xproto.ModMaskLock

	comboMask = xproto.ModMaskShift | xproto.ModMaskControl | xproto.ModMask1 | xproto.ModMask4
)

// Grabs are repeated with CapsLock and NumLock so the combo fires whatever
// their state.
var lockVariants = []uint16{0, lockMask, numLockMask, lockMask | numLockMask}

const (
	keysymPrint = xproto.Keysym(0xff61)
	keysymF1    = xproto.Keysym(0xffbe)
)

func resolve(c qhotkey.Combo) (uint16, xproto.Keysym, error) {
	var mods uint16
	for _, m := range c.Modifiers {
		mod, ok := modifiers[m]
		if !ok {
			return 0, 0, errors.Errorf("modifier %s not available", m)
		}
		mods |= mod
	}

	switch {
	case c.Key == "printscreen":
		return mods, keysymPrint, nil
	case len(c.Key) == 1 && (c.Key[0] >= 'a' && c.Key[0] <= 'z' || c.Key[0] >= '0' && c.Key[0] <= '9'):
		// Latin-1 keysyms equal their ASCII code
		return mods, xproto.Keysym(c.Key[0]), nil
	}
	if n, ok := c.FunctionKey(); ok {
		return mods, keysymF1 + xproto.Keysym(n-1), nil
	}
	return 0, 0, errors.Errorf("unknown key %s", c.Key)
}

// keyGrabber is the X connection as seen by the registrar
type keyGrabber interface {
	keycode(sym xproto.Keysym) (xproto.Keycode, bool)
	grab(mods uint16, key xproto.Keycode) error
	ungrab(mods uint16, key xproto.Keycode) error
	// events delivers key presses until the grabber is closed
	events(press func(state uint16, key xproto.Keycode))
	close()
}

type binding struct {
	mods uint16
	key  xproto.Keycode
}

// Registrar grabs hotkeys on the X11 root window
type Registrar struct {
	connect func() (keyGrabber, error)

	mu       sync.Mutex
	grabber  keyGrabber
	bindings map[binding]func()
	combos   map[binding]string
}

// NewRegistrar creates a registrar. The X connection is opened by the first
// Register call.
func NewRegistrar() *Registrar {
	return newRegistrar(dialX)
}

func newRegistrar(connect func() (keyGrabber, error)) *Registrar {
	return &Registrar{
		connect:  connect,
		bindings: make(map[binding]func()),
		combos:   make(map[binding]string),
	}
}

func (r *Registrar) Register(combo string, fn func()) error {
	c, err := qhotkey.ParseCombo(combo)
	if err != nil {
		return err
	}
	mods, sym, err := resolve(c)
	if err != nil {
		return errors.Wrapf(err, "cannot register %s", combo)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.grabber == nil {
		g, err := r.connect()
		if err != nil {
			return errors.Wrapf(qhotkey.ErrUnsupported, "no X display: %v", err)
		}
		r.grabber = g
		go g.events(r.press)
	}

	key, ok := r.grabber.keycode(sym)
	if !ok {
		return errors.Errorf("cannot register %s: key is not on the keyboard map", combo)
	}

	b := binding{mods: mods, key: key}
	if existing, ok := r.combos[b]; ok {
		return errors.Errorf("cannot register %s: already bound as %s", combo, existing)
	}

	for i, lock := range lockVariants {
		if err := r.grabber.grab(mods|lock, key); err != nil {
			for _, done := range lockVariants[:i] {
				_ = r.grabber.ungrab(mods|done, key)
			}
			if _, taken := err.(xproto.AccessError); taken {
				return errors.Errorf("cannot register %s: already grabbed by another client", combo)
			}
			return errors.Wrapf(err, "cannot register %s", combo)
		}
	}

	r.bindings[b] = fn
	r.combos[b] = combo
	return nil
}

func (r *Registrar) press(state uint16, key xproto.Keycode) {
	r.mu.Lock()
	fn := r.bindings[binding{mods: state & comboMask, key: key}]
	r.mu.Unlock()
	if fn != nil {
		go fn()
	}
}

// UnregisterAll releases the grabs and closes the X connection
func (r *Registrar) UnregisterAll() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.grabber == nil {
		return nil
	}

	var failed []string
	for b, combo := range r.combos {
		for _, lock := range lockVariants {
			if err := r.grabber.ungrab(b.mods|lock, b.key); err != nil {
				log.Printf("Failed to unregister %s: %v", combo, err)
				failed = append(failed, combo)
				break
			}
		}
	}

	r.grabber.close()
	r.grabber = nil
	r.bindings = make(map[binding]func())
	r.combos = make(map[binding]string)

	if len(failed) > 0 {
		return errors.Errorf("failed to unregister %s", strings.Join(failed, ", "))
	}
	return nil
}

type xGrabber struct {
	conn    *xgb.Conn
	root    xproto.Window
	min     xproto.Keycode
	perCode int
	keysyms []xproto.Keysym
}

func dialX() (keyGrabber, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, err
	}

	setup := xproto.Setup(conn)
	count := int(setup.MaxKeycode) - int(setup.MinKeycode) + 1
	if count > 255 {
		count = 255
	}
	mapping, err := xproto.GetKeyboardMapping(conn, setup.MinKeycode, byte(count)).Reply()
	if err != nil {
		conn.Close()
		return nil, errors.Wrap(err, "GetKeyboardMapping failed")
	}

	return &xGrabber{
		conn:    conn,
		root:    setup.DefaultScreen(conn).Root,
		min:     setup.MinKeycode,
		perCode: int(mapping.KeysymsPerKeycode),
		keysyms: mapping.Keysyms,
	}, nil
}

func (g *xGrabber) keycode(sym xproto.Keysym) (xproto.Keycode, bool) {
	return lookupKeycode(g.keysyms, g.perCode, g.min, sym)
}

// lookupKeycode finds the first keycode whose keysym list contains sym
func lookupKeycode(keysyms []xproto.Keysym, perCode int, min xproto.Keycode, sym xproto.Keysym) (xproto.Keycode, bool) {
	if perCode <= 0 {
		return 0, false
	}
	for i, s := range keysyms {
		if s == sym {
			return min + xproto.Keycode(i/perCode), true
		}
	}
	return 0, false
}

func (g *xGrabber) grab(mods uint16, key xproto.Keycode) error {
	return xproto.GrabKeyChecked(g.conn, true, g.root, mods, key,
		xproto.GrabModeAsync, xproto.GrabModeAsync).Check()
}

func (g *xGrabber) ungrab(mods uint16, key xproto.Keycode) error {
	return xproto.UngrabKeyChecked(g.conn, key, g.root, mods).Check()
}

func (g *xGrabber) events(press func(state uint16, key xproto.Keycode)) {
	for {
		ev, err := g.conn.WaitForEvent()
		if ev == nil && err == nil {
			return
		}
		if err != nil {
			log.Printf("X11 hotkey error: %v", err)
			continue
		}
		if kp, ok := ev.(xproto.KeyPressEvent); ok {
			press(kp.State, kp.Detail)
		}
	}
}

func (g *xGrabber) close() {
	g.conn.Close()
}
