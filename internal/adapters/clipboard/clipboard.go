// Package clipboard adapts the system clipboard to ports.Clipboard.
package clipboard

import "github.com/atotto/clipboard"

// System writes through to the OS clipboard.
type System struct{}

// New returns the system clipboard adapter.
func New() System {
	return System{}
}

// WriteAll replaces the clipboard contents with text.
func (System) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}
