// Package clipboard copies text to the system clipboard, falling back to an
// OSC52 escape sequence when no native clipboard is reachable (ssh sessions,
// headless Linux).
package clipboard

import (
	"errors"
	"io"
	"os"
	"strings"

	native "github.com/atotto/clipboard"
	osc52 "github.com/aymanbagabas/go-osc52/v2"

	"github.com/andareed/siftly-digest/logging"
)

var (
	// Output receives the OSC52 sequence.
	Output io.Writer = os.Stdout

	writeNative = native.WriteAll
	unsupported = func() bool { return native.Unsupported }
)

var ErrUnavailable = errors.New("clipboard unavailable (no native clipboard and OSC52 unsupported by terminal)")

// Copy puts text on the clipboard.
func Copy(text string) error {
	if !unsupported() {
		err := writeNative(text)
		if err == nil {
			logging.Debugf("clipboard: copied %d bytes natively", len(text))
			return nil
		}
		logging.Warnf("clipboard: native copy failed, trying OSC52: %v", err)
	}
	return copyOSC52(text)
}

func copyOSC52(text string) error {
	if !osc52Supported(os.Getenv("TERM"), Output) {
		return ErrUnavailable
	}
	seq := osc52.New(text)
	if os.Getenv("TMUX") != "" {
		seq = seq.Tmux()
	} else if strings.HasPrefix(os.Getenv("TERM"), "screen") {
		seq = seq.Screen()
	}
	if _, err := seq.WriteTo(Output); err != nil {
		logging.Warnf("clipboard: OSC52 write failed: %v", err)
		return err
	}
	logging.Infof("clipboard: copied via OSC52")
	return nil
}

func osc52Supported(term string, w io.Writer) bool {
	if term == "" || strings.EqualFold(term, "dumb") {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return true
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
