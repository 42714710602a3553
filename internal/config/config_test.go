package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskbench/taskbench/internal/clierr"
	"github.com/taskbench/taskbench/internal/rank"
)

func TestInitAndLoad(t *testing.T) {
	dir := filepath.Join(t.TempDir(), DefaultDir)

	created, err := Init(dir)
	require.NoError(t, err)
	assert.Equal(t, CurrentVersion, created.Version)

	loaded, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, DefaultServerURL, loaded.Server.URL)
	assert.Equal(t, DefaultTasksFile, loaded.TasksFile)
	assert.Equal(t, rank.Smart, loaded.DefaultStrategy())
	assert.Equal(t, 30*time.Second, loaded.TimeoutDuration())
	assert.Equal(t, filepath.Join(dir, "tasks.json"), loaded.TasksPath())
}

func TestInitRefusesExisting(t *testing.T) {
	dir := filepath.Join(t.TempDir(), DefaultDir)

	_, err := Init(dir)
	require.NoError(t, err)

	_, err = Init(dir)
	var cerr *clierr.Error
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, clierr.WorkbenchExists, cerr.Code)
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(t.TempDir())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoadInvalid(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"unsupported version", "version: 99\nserver:\n  url: http://localhost:8000\ntasks_file: tasks.json\n"},
		{"missing server url", "version: 1\nserver:\n  url: \"\"\ntasks_file: tasks.json\n"},
		{"missing tasks file", "version: 1\nserver:\n  url: http://localhost:8000\ntasks_file: \"\"\n"},
		{"bad timeout", "version: 1\nserver:\n  url: http://localhost:8000\n  timeout: soonish\ntasks_file: tasks.json\n"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(tc.yaml), 0o600))

			_, err := Load(dir)
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestFindDir(t *testing.T) {
	root := t.TempDir()
	wb := filepath.Join(root, DefaultDir)
	_, err := Init(wb)
	require.NoError(t, err)

	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	t.Run("from nested subdirectory", func(t *testing.T) {
		found, err := FindDir(nested)
		require.NoError(t, err)
		assert.Equal(t, wb, found)
	})

	t.Run("from inside the workbench", func(t *testing.T) {
		found, err := FindDir(wb)
		require.NoError(t, err)
		assert.Equal(t, wb, found)
	})
}

func TestFindDirNotFound(t *testing.T) {
	_, err := FindDir(t.TempDir())

	var cerr *clierr.Error
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, clierr.NoWorkbench, cerr.Code)
}

func TestTimeoutDurationUnset(t *testing.T) {
	c := NewDefault()
	c.Server.Timeout = ""
	assert.Equal(t, time.Duration(0), c.TimeoutDuration())
}
