// Package wayland asks wlroots-style compositors for the focused window
// through their IPC command line tools. Wayland offers no portable way to
// read another client's geometry, so only compositors exposing it are
// supported.
package wayland

import (
	"encoding/json"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/quickshot/quickshot/pkg/window"
)

const (
	compositorSway     = "sway"
	compositorHyprland = "hyprland"
	compositorUnknown  = "unknown"
)

// runner executes a compositor tool and returns its stdout
type runner func(name string, args ...string) ([]byte, error)

func execOutput(name string, args ...string) ([]byte, error) {
	return exec.Command(name, args...).Output()
}

// Locator implements window.Locator for sway and Hyprland
type Locator struct {
	compositor string
	run        runner
}

// NewLocator creates a new Wayland locator for the running compositor
func NewLocator() *Locator {
	return &Locator{
		compositor: detectCompositor(),
		run:        execOutput,
	}
}

func commandExists(cmd string) bool {
	_, err := exec.LookPath(cmd)
	return err == nil
}

// detectCompositor prefers the IPC socket variables each compositor exports
// and falls back to looking for the compositor process.
func detectCompositor() string {
	if os.Getenv("SWAYSOCK") != "" {
		return compositorSway
	}
	if os.Getenv("HYPRLAND_INSTANCE_SIGNATURE") != "" {
		return compositorHyprland
	}

	processes := []struct{ process, name string }{
		{"sway", compositorSway},
		{"Hyprland", compositorHyprland},
	}
	for _, p := range processes {
		if err := exec.Command("pgrep", "-x", p.process).Run(); err == nil {
			return p.name
		}
	}
	return compositorUnknown
}

// Compositor returns the detected compositor name
func (l *Locator) Compositor() string {
	return l.compositor
}

// IsAvailable checks if the compositor's IPC tool is installed
func (l *Locator) IsAvailable() bool {
	switch l.compositor {
	case compositorSway:
		return commandExists("swaymsg")
	case compositorHyprland:
		return commandExists("hyprctl")
	default:
		return false
	}
}

// GetDisplayServer returns "wayland"
func (l *Locator) GetDisplayServer() string {
	return "wayland"
}

// ActiveWindow returns the focused toplevel and its layout rectangle
func (l *Locator) ActiveWindow() (*window.WindowInfo, error) {
	var (
		info *window.WindowInfo
		err  error
	)
	switch l.compositor {
	case compositorSway:
		info, err = l.activeWindowSway()
	case compositorHyprland:
		info, err = l.activeWindowHyprland()
	default:
		return nil, errors.Errorf("unsupported wayland compositor: %s", l.compositor)
	}
	if err != nil || info == nil {
		return nil, err
	}
	info.DisplayServer = "wayland"
	return info, nil
}

func (l *Locator) activeWindowSway() (*window.WindowInfo, error) {
	output, err := l.run("swaymsg", "-t", "get_tree", "-r")
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute swaymsg")
	}
	return parseSwayTree(output)
}

func (l *Locator) activeWindowHyprland() (*window.WindowInfo, error) {
	output, err := l.run("hyprctl", "activewindow", "-j")
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute hyprctl")
	}
	return parseHyprlandWindow(output)
}

type swayRect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

type swayNode struct {
	ID            uint64     `json:"id"`
	Name          string     `json:"name"`
	Type          string     `json:"type"`
	Focused       bool       `json:"focused"`
	Rect          swayRect   `json:"rect"`
	Nodes         []swayNode `json:"nodes"`
	FloatingNodes []swayNode `json:"floating_nodes"`
}

func (n *swayNode) findFocused() *swayNode {
	if n.Focused {
		return n
	}
	for i := range n.Nodes {
		if f := n.Nodes[i].findFocused(); f != nil {
			return f
		}
	}
	for i := range n.FloatingNodes {
		if f := n.FloatingNodes[i].findFocused(); f != nil {
			return f
		}
	}
	return nil
}

// parseSwayTree walks the get_tree output for the focused node. A focused
// workspace or output means nothing holds focus.
func parseSwayTree(data []byte) (*window.WindowInfo, error) {
	var root swayNode
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, errors.Wrap(err, "failed to parse sway tree")
	}

	focused := root.findFocused()
	if focused == nil || (focused.Type != "con" && focused.Type != "floating_con") {
		return nil, nil
	}

	r := focused.Rect
	return &window.WindowInfo{
		ID:    focused.ID,
		Title: focused.Name,
		Rect: window.Rect{
			Left:   r.X,
			Top:    r.Y,
			Right:  r.X + r.Width,
			Bottom: r.Y + r.Height,
		},
	}, nil
}

type hyprlandWindow struct {
	Address string `json:"address"`
	At      []int  `json:"at"`
	Size    []int  `json:"size"`
	Title   string `json:"title"`
}

// parseHyprlandWindow reads `hyprctl activewindow -j`. Hyprland prints an
// empty object when no window is focused.
func parseHyprlandWindow(data []byte) (*window.WindowInfo, error) {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "{}" || strings.HasPrefix(trimmed, "Invalid") {
		return nil, nil
	}

	var w hyprlandWindow
	if err := json.Unmarshal([]byte(trimmed), &w); err != nil {
		return nil, errors.Wrap(err, "failed to parse hyprctl output")
	}
	if w.Address == "" {
		return nil, nil
	}
	if len(w.At) != 2 || len(w.Size) != 2 {
		return nil, errors.Errorf("hyprctl window %s has no geometry", w.Address)
	}

	id, _ := strconv.ParseUint(strings.TrimPrefix(w.Address, "0x"), 16, 64)
	return &window.WindowInfo{
		ID:    id,
		Title: w.Title,
		Rect: window.Rect{
			Left:   w.At[0],
			Top:    w.At[1],
			Right:  w.At[0] + w.Size[0],
			Bottom: w.At[1] + w.Size[1],
		},
	}, nil
}

// Close is a no-op
func (l *Locator) Close() error {
	return nil
}
