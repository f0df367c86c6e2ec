package stlc

import "github.com/atotto/clipboard"

// Clipboard receives plain text writes.
type Clipboard interface {
	WriteText(text string) error
}

// SystemClipboard writes to the operating system clipboard.
type SystemClipboard struct{}

func (SystemClipboard) WriteText(text string) error {
	return clipboard.WriteAll(text)
}

// ClipboardFunc adapts a function to the Clipboard interface.
type ClipboardFunc func(text string) error

func (f ClipboardFunc) WriteText(text string) error {
	return f(text)
}
