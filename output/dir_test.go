package output

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFile(t *testing.T) {
	root := filepath.Join(t.TempDir(), "out")
	d, err := Open(context.Background(), root, time.Second, nil)
	require.NoError(t, err)
	defer d.Close()

	require.NoError(t, d.WriteFile("operations.ttl", []byte("first")))
	require.NoError(t, d.WriteFile("operations.ttl", []byte("second")))

	data, err := os.ReadFile(filepath.Join(root, "operations.ttl"))
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{LockFile, "operations.ttl"}, names, "no temporary file is left behind")
}

func TestWriteLines(t *testing.T) {
	d, err := Open(context.Background(), t.TempDir(), time.Second, nil)
	require.NoError(t, err)
	defer d.Close()

	require.NoError(t, d.WriteLines("geo-unmatched.txt", []string{"01;Guadeloupe", "02;Martinique"}))

	data, err := os.ReadFile(d.Path("geo-unmatched.txt"))
	require.NoError(t, err)
	assert.Equal(t, "01;Guadeloupe\n02;Martinique\n", string(data))
}

func TestOpenLocked(t *testing.T) {
	root := t.TempDir()
	first, err := Open(context.Background(), root, time.Second, nil)
	require.NoError(t, err)

	_, err = Open(context.Background(), root, 200*time.Millisecond, nil)
	assert.ErrorIs(t, err, ErrLocked)

	require.NoError(t, first.Close())
	second, err := Open(context.Background(), root, time.Second, nil)
	require.NoError(t, err)
	assert.NoError(t, second.Close())
}
