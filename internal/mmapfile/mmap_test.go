package mmapfile

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

func TestOpen(t *testing.T) {
	content := []byte("stop_id,node_id\n1,123\n2,124")
	m, err := Open(writeFile(t, "stops.csv", content))
	require.NoError(t, err)
	defer m.Close()

	assert.Equal(t, content, m.Bytes())
	assert.Equal(t, len(content), m.Len())
}

func TestOpen_EmptyFile(t *testing.T) {
	m, err := Open(writeFile(t, "empty.csv", nil))
	require.NoError(t, err)

	assert.Empty(t, m.Bytes())
	assert.Zero(t, m.Len())
	assert.NoError(t, m.Close())
}

func TestOpen_Errors(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.csv"))
	assert.ErrorIs(t, err, fs.ErrNotExist)

	_, err = Open(t.TempDir())
	assert.ErrorIs(t, err, ErrNotRegular)
}

func TestMapping_Close(t *testing.T) {
	m, err := Open(writeFile(t, "routes.csv", []byte("route,stop_id\nA,1")))
	require.NoError(t, err)

	require.NoError(t, m.Close())
	assert.Nil(t, m.Bytes())
	assert.NoError(t, m.Close())
}
