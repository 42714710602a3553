package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskbench/taskbench/internal/clierr"
	"github.com/taskbench/taskbench/internal/task"
)

func TestSaveLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")

	require.NoError(t, SaveFile(path, testTasks()))

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, testTasks(), loaded)
}

func TestLoadFileMissing(t *testing.T) {
	tasks, err := LoadFile(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.Equal(t, []task.Task{}, tasks)
}

func TestLoadFileMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o600))

	tasks, err := LoadFile(path)
	require.Error(t, err)
	assert.Nil(t, tasks)

	var cerr *clierr.Error
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, clierr.ParseError, cerr.Code)
	assert.Equal(t, path, cerr.Details["file"])
}

func TestSaveFileEmptySet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")

	require.NoError(t, SaveFile(path, nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))
}
