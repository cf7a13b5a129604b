package clipboard

import (
	"bytes"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubNative(t *testing.T, isUnsupported bool, err error) *[]string {
	t.Helper()
	var got []string
	oldWrite, oldUnsupported, oldOut := writeNative, unsupported, Output
	writeNative = func(s string) error {
		got = append(got, s)
		return err
	}
	unsupported = func() bool { return isUnsupported }
	t.Cleanup(func() {
		writeNative, unsupported, Output = oldWrite, oldUnsupported, oldOut
	})
	return &got
}

func TestCopyNative(t *testing.T) {
	got := stubNative(t, false, nil)
	var buf bytes.Buffer
	Output = &buf

	require.NoError(t, Copy("AT_O_20240101_000001"))
	assert.Equal(t, []string{"AT_O_20240101_000001"}, *got)
	assert.Zero(t, buf.Len())
}

func TestCopyFallsBackToOSC52(t *testing.T) {
	stubNative(t, false, errors.New("no xclip"))
	t.Setenv("TERM", "xterm-256color")
	t.Setenv("TMUX", "")
	var buf bytes.Buffer
	Output = &buf

	require.NoError(t, Copy("hello"))
	assert.Contains(t, buf.String(), "\x1b]52;c;"+base64.StdEncoding.EncodeToString([]byte("hello")))
}

func TestCopyDumbTerminal(t *testing.T) {
	stubNative(t, true, nil)
	t.Setenv("TERM", "dumb")
	var buf bytes.Buffer
	Output = &buf

	assert.ErrorIs(t, Copy("hello"), ErrUnavailable)
	assert.Zero(t, buf.Len())
}
