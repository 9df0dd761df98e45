// Package shared provides common utilities shared between mode controllers.
package shared

import (
	"encoding/base64"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// Clipboard defines the interface for clipboard operations.
type Clipboard interface {
	Copy(text string) error
}

// SystemClipboard implements Clipboard using the system clipboard.
// Inside an SSH session or a terminal multiplexer the local clipboard
// tools write to the remote machine, so OSC 52 is emitted instead and
// the user's terminal performs the copy.
type SystemClipboard struct{}

// MockClipboard records copied text for tests.
type MockClipboard struct {
	Copied []string
}

// Copy records the text and always succeeds.
func (m *MockClipboard) Copy(text string) error {
	m.Copied = append(m.Copied, text)
	return nil
}

// Copy copies text to the system clipboard.
func (SystemClipboard) Copy(text string) error {
	if shouldUseOSC52() {
		return copyOSC52(text)
	}

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("pbcopy")
	default:
		cmd = exec.Command("xclip", "-selection", "clipboard")
	}

	pipe, err := cmd.StdinPipe()
	if err != nil {
		return err
	}

	if err := cmd.Start(); err != nil {
		return err
	}

	if _, err := pipe.Write([]byte(text)); err != nil {
		return err
	}

	if err := pipe.Close(); err != nil {
		return err
	}

	return cmd.Wait()
}

// shouldUseOSC52 reports whether the session is remote (SSH) or inside
// a multiplexer (tmux, GNU screen), where only the terminal itself can
// reach the user's clipboard.
func shouldUseOSC52() bool {
	for _, v := range []string{"SSH_TTY", "SSH_CLIENT", "SSH_CONNECTION", "TMUX", "STY"} {
		if os.Getenv(v) != "" {
			return true
		}
	}
	return false
}

// copyOSC52 writes an OSC 52 escape sequence to the terminal. tmux
// swallows unknown sequences, so under tmux the sequence is wrapped in
// its passthrough envelope with embedded escapes doubled.
func copyOSC52(text string) error {
	seq := osc52Sequence(text, os.Getenv("TMUX") != "")
	_, err := os.Stderr.WriteString(seq)
	return err
}

func osc52Sequence(text string, tmux bool) string {
	seq := "\x1b]52;c;" + base64.StdEncoding.EncodeToString([]byte(text)) + "\x07"
	if tmux {
		seq = "\x1bPtmux;" + strings.ReplaceAll(seq, "\x1b", "\x1b\x1b") + "\x1b\\"
	}
	return seq
}
