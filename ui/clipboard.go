package ui

import (
	"errors"
	"fmt"
	"sync"

	"golang.design/x/clipboard"
)

var ErrClipboardUnavailable = errors.New("ui: clipboard unavailable")

// Clipboard receives copied text.
type Clipboard interface {
	WriteText(s string) error
}

// SystemClipboard writes to the OS clipboard. It initializes lazily; on
// systems without one every write fails with ErrClipboardUnavailable.
type SystemClipboard struct {
	once sync.Once
	err  error
}

func (c *SystemClipboard) WriteText(s string) error {
	c.once.Do(func() {
		if err := clipboard.Init(); err != nil {
			c.err = fmt.Errorf("%w: %w", ErrClipboardUnavailable, err)
		}
	})
	if c.err != nil {
		return c.err
	}
	clipboard.Write(clipboard.FmtText, []byte(s))
	return nil
}
