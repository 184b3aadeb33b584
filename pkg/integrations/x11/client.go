package x11

import (
	"encoding/binary"
	"strings"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
	"github.com/pkg/errors"
)

var atomNames = []string{
	"_NET_ACTIVE_WINDOW",
	"_NET_WM_NAME",
	"WM_NAME",
	"UTF8_STRING",
}

type client struct {
	conn  *xgb.Conn
	setup *xproto.SetupInfo
	root  xproto.Window
	atoms map[string]xproto.Atom
}

func newClient() (*client, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to X server")
	}

	setup := xproto.Setup(conn)
	c := &client{
		conn:  conn,
		setup: setup,
		root:  setup.DefaultScreen(conn).Root,
		atoms: make(map[string]xproto.Atom),
	}

	for _, name := range atomNames {
		reply, err := xproto.InternAtom(conn, false, uint16(len(name)), name).Reply()
		if err != nil {
			conn.Close()
			return nil, errors.Wrapf(err, "failed to intern atom %s", name)
		}
		c.atoms[name] = reply.Atom
	}

	return c, nil
}

func (c *client) close() {
	c.conn.Close()
}

func (c *client) getProperty(win xproto.Window, atom, atomType xproto.Atom, length uint32) ([]byte, error) {
	reply, err := xproto.GetProperty(c.conn, false, win, atom, atomType, 0, length).Reply()
	if err != nil {
		return nil, err
	}
	return reply.Value, nil
}

func (c *client) activeWindowFromProperty() xproto.Window {
	data, err := c.getProperty(c.root, c.atoms["_NET_ACTIVE_WINDOW"], xproto.AtomWindow, 1)
	if err != nil {
		return 0
	}
	return decodeWindowID(data)
}

func (c *client) activeWindowFromInputFocus() xproto.Window {
	reply, err := xproto.GetInputFocus(c.conn).Reply()
	if err != nil {
		return 0
	}
	// None and PointerRoot mean nothing has focus
	if reply.Focus <= xproto.InputFocusPointerRoot || reply.Focus == c.root {
		return 0
	}
	return c.topLevelParent(reply.Focus)
}

func (c *client) topLevelParent(win xproto.Window) xproto.Window {
	for {
		reply, err := xproto.QueryTree(c.conn, win).Reply()
		if err != nil || reply.Parent == c.root || reply.Parent == 0 {
			return win
		}
		win = reply.Parent
	}
}

func (c *client) activeWindow() xproto.Window {
	if win := c.activeWindowFromProperty(); win != 0 {
		return win
	}
	return c.activeWindowFromInputFocus()
}

func (c *client) windowName(win xproto.Window) string {
	data, err := c.getProperty(win, c.atoms["_NET_WM_NAME"], c.atoms["UTF8_STRING"], 256)
	if err == nil && len(data) > 0 {
		return strings.TrimRight(string(data), "\x00")
	}

	data, err = c.getProperty(win, c.atoms["WM_NAME"], xproto.AtomString, 256)
	if err == nil && len(data) > 0 {
		return strings.TrimRight(string(data), "\x00")
	}

	return ""
}

// bitsPerPixel returns the pixmap bpp the server uses for depth.
func (c *client) bitsPerPixel(depth byte) int {
	for _, format := range c.setup.PixmapFormats {
		if format.Depth == depth {
			return int(format.BitsPerPixel)
		}
	}
	return 0
}

func decodeWindowID(data []byte) xproto.Window {
	if len(data) < 4 {
		return 0
	}
	return xproto.Window(binary.LittleEndian.Uint32(data))
}
