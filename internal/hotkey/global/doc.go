// Package global binds hotkey combos with the operating system: RegisterHotKey
// on Windows, X11 key grabs on other Unix systems.
package global
