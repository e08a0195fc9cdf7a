package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backupNames(t *testing.T, dir, base string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), base+".") {
			names = append(names, e.Name())
		}
	}
	return names
}

func TestLogRotator_RotatesAndKeepsMaxBackups(t *testing.T) {
	dir := t.TempDir()
	r, err := NewLogRotator(RotatorConfig{Dir: dir, MaxSizeMB: 1, MaxBackups: 1})
	require.NoError(t, err)
	defer r.Close()

	clock := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	r.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}

	chunk := bytes.Repeat([]byte("x"), 700*1024)
	for range 3 {
		n, err := r.Write(chunk)
		require.NoError(t, err)
		assert.Equal(t, len(chunk), n)
	}

	info, err := os.Stat(filepath.Join(dir, "hostbridge.log"))
	require.NoError(t, err)
	assert.Equal(t, int64(len(chunk)), info.Size())
	assert.Len(t, backupNames(t, dir, "hostbridge.log"), 1)
}

func TestLogRotator_CompressesBackups(t *testing.T) {
	dir := t.TempDir()
	r, err := NewLogRotator(RotatorConfig{Dir: dir, FileName: "panel.log", MaxSizeMB: 1, Compress: true})
	require.NoError(t, err)
	defer r.Close()

	chunk := bytes.Repeat([]byte("y"), 700*1024)
	_, err = r.Write(chunk)
	require.NoError(t, err)
	_, err = r.Write(chunk)
	require.NoError(t, err)

	names := backupNames(t, dir, "panel.log")
	require.Len(t, names, 1)
	assert.True(t, strings.HasSuffix(names[0], ".gz"))
}

func TestNewLogRotator_RequiresDir(t *testing.T) {
	_, err := NewLogRotator(RotatorConfig{})
	assert.Error(t, err)
}
