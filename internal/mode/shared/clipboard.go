// Package shared provides helpers shared by interactive modes.
package shared

import (
	"errors"
	"os"

	"github.com/atotto/clipboard"
	"github.com/muesli/termenv"
)

// ErrClipboardUnsupported is returned when no system clipboard is available.
var ErrClipboardUnsupported = errors.New("clipboard unsupported on this system")

// Clipboard defines the interface for clipboard operations.
type Clipboard interface {
	Copy(text string) error
}

// SystemClipboard writes to the system clipboard. Over SSH or inside a
// terminal multiplexer it writes an OSC 52 sequence to Output instead, so
// the text lands on the local machine.
type SystemClipboard struct {
	// Output receives OSC 52 sequences. Nil uses the default output.
	Output *termenv.Output
}

// Copy copies text to the clipboard.
func (c SystemClipboard) Copy(text string) error {
	if shouldUseOSC52() {
		out := c.Output
		if out == nil {
			out = termenv.DefaultOutput()
		}
		out.Copy(text)
		return nil
	}
	if clipboard.Unsupported {
		return ErrClipboardUnsupported
	}
	return clipboard.WriteAll(text)
}

func shouldUseOSC52() bool {
	for _, name := range []string{"SSH_TTY", "SSH_CLIENT", "SSH_CONNECTION", "TMUX", "STY"} {
		if os.Getenv(name) != "" {
			return true
		}
	}
	return false
}

// MockClipboard records copied text for tests.
type MockClipboard struct {
	Copied []string
	Err    error
}

// Copy records text, or returns Err when set.
func (m *MockClipboard) Copy(text string) error {
	if m.Err != nil {
		return m.Err
	}
	m.Copied = append(m.Copied, text)
	return nil
}

// Last returns the most recently copied text.
func (m *MockClipboard) Last() string {
	if len(m.Copied) == 0 {
		return ""
	}
	return m.Copied[len(m.Copied)-1]
}
