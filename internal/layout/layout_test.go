package layout

import (
	"testing"
	"testing/fstest"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skosovsky/promptvault"
)

func record(text, version string) *fstest.MapFile {
	return &fstest.MapFile{Data: []byte("template: " + text + "\nversion: '" + version + "'\nclass_name: BaseTemplate\n")}
}

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"A/1.0.yaml":  record("a1", "1.0"),
		"A/1.0.json":  {Data: []byte(`{"template": "a1-json", "version": "1.0", "class_name": "BaseTemplate"}`)},
		"A/2.0.yml":   record("a2", "2.0"),
		"A/README.md": {Data: []byte("ignored")},
		"A/.yaml":     {Data: []byte("ignored")},
		"A/sub/x":     {Data: []byte("ignored")},
		"B/10.0.yaml": record("b10", "10.0"),
		"B/9.0.yaml":  record("b9", "9.0"),
		"Empty/.keep": {Data: []byte("")},
		".git/HEAD":   {Data: []byte("ref")},
		"stray.yaml":  record("stray", "1.0"),
	}
}

func TestScan(t *testing.T) {
	t.Parallel()
	files, err := Scan(testFS(), "A")
	require.NoError(t, err)
	assert.Equal(t, []File{
		{Version: "1.0", Path: "A/1.0.json", Format: promptvault.FormatJSON},
		{Version: "1.0", Path: "A/1.0.yaml", Format: promptvault.FormatYAML},
		{Version: "2.0", Path: "A/2.0.yml", Format: promptvault.FormatYAML},
	}, files)
	assert.Equal(t, []string{"1.0", "2.0"}, Versions(files))
}

func TestScan_Errors(t *testing.T) {
	t.Parallel()
	_, err := Scan(testFS(), "Missing")
	require.ErrorIs(t, err, promptvault.ErrNotFound)
	_, err = Scan(testFS(), "stray.yaml")
	require.ErrorIs(t, err, promptvault.ErrNotFound)
	_, err = Scan(testFS(), "../A")
	require.ErrorIs(t, err, promptvault.ErrInvalidName)
}

func TestHas(t *testing.T) {
	t.Parallel()
	ok, err := Has(testFS(), "A", "2.0")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = Has(testFS(), "A", "3.0")
	require.NoError(t, err)
	assert.False(t, ok)
	ok, err = Has(testFS(), "Missing", "1.0")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLocate(t *testing.T) {
	t.Parallel()
	fsys := testFS()

	f, err := Locate(fsys, "A", "", Lookup{Prefer: promptvault.FormatYAML})
	require.NoError(t, err)
	assert.Equal(t, "A/2.0.yml", f.Path)

	f, err = Locate(fsys, "A", "1.0", Lookup{Prefer: promptvault.FormatYAML})
	require.NoError(t, err)
	assert.Equal(t, "A/1.0.yaml", f.Path)

	f, err = Locate(fsys, "A", "1.0", Lookup{Prefer: promptvault.FormatJSON})
	require.NoError(t, err)
	assert.Equal(t, "A/1.0.json", f.Path)

	f, err = Locate(fsys, "B", "", Lookup{})
	require.NoError(t, err)
	assert.Equal(t, "B/9.0.yaml", f.Path)

	f, err = Locate(fsys, "B", "", Lookup{Order: promptvault.OrderSemantic})
	require.NoError(t, err)
	assert.Equal(t, "B/10.0.yaml", f.Path)

	_, err = Locate(fsys, "Empty", "", Lookup{})
	require.ErrorIs(t, err, promptvault.ErrNotFound)
	_, err = Locate(fsys, "A", "5.0", Lookup{})
	require.ErrorIs(t, err, promptvault.ErrNotFound)
}

func TestLoad(t *testing.T) {
	t.Parallel()
	reg := promptvault.NewRegistry(promptvault.WithLogger(zerolog.Nop()))
	v, err := Load(testFS(), reg, "A", "1.0", Lookup{Prefer: promptvault.FormatJSON})
	require.NoError(t, err)
	assert.Equal(t, "a1-json", v.Base().Text)

	fsys := fstest.MapFS{"Bad/1.0.json": {Data: []byte(`{"template": "x"}`)}}
	_, err = Load(fsys, reg, "Bad", "", Lookup{})
	require.ErrorIs(t, err, promptvault.ErrMalformedRecord)
	assert.Contains(t, err.Error(), "Bad/1.0.json")
}

func TestList(t *testing.T) {
	t.Parallel()
	entries, err := List(testFS())
	require.NoError(t, err)
	assert.Equal(t, []promptvault.Entry{
		{Name: "A", Versions: []string{"1.0", "2.0"}},
		{Name: "B", Versions: []string{"10.0", "9.0"}},
		{Name: "Empty", Versions: []string{}},
	}, entries)
}
