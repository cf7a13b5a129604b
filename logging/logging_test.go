package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLoggingDisabled(t *testing.T) {
	cleanup, err := SetupLogging("")
	require.NoError(t, err)
	defer cleanup()

	assert.False(t, IsDebugMode())
	Infof("dropped %d", 1)
}

func TestSetupLoggingToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	cleanup, err := SetupLogging(path)
	require.NoError(t, err)

	assert.True(t, IsDebugMode())
	Infof("window committed %s", "22:00  2024-05-01")
	cleanup()
	assert.False(t, IsDebugMode())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "window committed 22:00  2024-05-01")
}
