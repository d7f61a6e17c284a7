package promptvault

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveToPath_LoadFromPath(t *testing.T) {
	t.Parallel()
	r, _ := testRegistry(t)
	dir := t.TempDir()
	for _, f := range []Format{FormatYAML, FormatJSON} {
		path := filepath.Join(dir, "summary"+f.Ext())
		v := newSummary()
		v.MaxWords = 42
		require.NoError(t, SaveToPath(v, path, f))

		got, err := r.LoadFromPath(path, f)
		require.NoError(t, err)
		assert.Equal(t, 42, got.(*Summary).MaxWords)
	}
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "no temporary files left behind")
}

func TestSaveToPath_MissingDir(t *testing.T) {
	t.Parallel()
	err := SaveToPath(NewTemplate("x"), filepath.Join(t.TempDir(), "absent", "x.yaml"), FormatYAML)
	require.Error(t, err)
}

func TestLoadFromPath_Missing(t *testing.T) {
	t.Parallel()
	r, _ := testRegistry(t)
	_, err := r.LoadFromPath(filepath.Join(t.TempDir(), "absent.json"), FormatJSON)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadFS(t *testing.T) {
	t.Parallel()
	r, _ := testRegistry(t)
	fsys := fstest.MapFS{
		"a/1.0.yml":  {Data: []byte("template: hi\nversion: '1.0'\nclass_name: BaseTemplate\n")},
		"a/2.0.json": {Data: []byte(`{"template": "s", "version": "2.0", "max_words": 9, "class_name": "Summary"}`)},
		"a/3.0.txt":  {Data: []byte("x")},
	}
	v, err := r.LoadFS(fsys, "a/1.0.yml")
	require.NoError(t, err)
	assert.Equal(t, "hi", v.Base().Text)

	v, err = r.LoadFS(fsys, "a/2.0.json")
	require.NoError(t, err)
	assert.Equal(t, 9, v.(*Summary).MaxWords)

	_, err = r.LoadFS(fsys, "a/3.0.txt")
	require.ErrorIs(t, err, ErrUnknownFormat)
}
