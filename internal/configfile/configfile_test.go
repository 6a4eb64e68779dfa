package configfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/breakledger/internal/codec"
	"github.com/roach88/breakledger/internal/config"
	"github.com/roach88/breakledger/internal/testutil"
)

func sample() config.Document {
	return config.Empty().
		AddVersionOverride(testutil.GNV("com.x:lib:1.0"), "1.0.1").
		AddAcceptedBreaks(testutil.GNV("com.x:lib:1.0"), "removed deprecated API",
			[]config.AcceptedBreak{testutil.Removed("class com.x.Old")})
}

func TestLoadMissingFileIsEmpty(t *testing.T) {
	doc, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.True(t, doc.Equal(config.Empty()))
}

func TestLoadUnsupportedExtension(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "breaks.toml"))
	assert.ErrorIs(t, err, codec.ErrUnsupportedFormat)
}

func TestLoadDecodeErrorIsWrapped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "breaks.yaml")
	require.NoError(t, os.WriteFile(path, []byte("unknown: 1\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)

	var de *codec.DecodeError
	assert.ErrorAs(t, err, &de)
	assert.Contains(t, err.Error(), path)
}

func TestSaveThenLoad(t *testing.T) {
	for _, name := range []string{"breaks.yaml", "breaks.yml", "breaks.json"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, Save(path, sample()))

			loaded, err := Load(path)
			require.NoError(t, err)
			assert.True(t, loaded.Equal(sample()))
		})
	}
}

func TestSaveCreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "breaks.json")
	require.NoError(t, Save(path, config.Empty()))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}

func TestSaveKeepsExistingFileMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "breaks.yaml")
	require.NoError(t, os.WriteFile(path, []byte("versionOverrides: {}\n"), 0o600))
	require.NoError(t, os.Chmod(path, 0o600))

	require.NoError(t, Save(path, sample()))
	require.NoError(t, Save(path, sample()))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestSaveReplacesAndLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "breaks.yaml")
	require.NoError(t, os.WriteFile(path, []byte("old contents that are not yaml: ["), 0o644))

	require.NoError(t, Save(path, sample()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "breaks.yaml", entries[0].Name())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	want, err := codec.YAML().Encode(sample())
	require.NoError(t, err)
	assert.Equal(t, string(want), string(data))
}

func TestSaveMigratesLegacyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "breaks.yaml")
	legacy := "acceptedBreaks:\n  g:n:1:\n    - code: java.class.removed\n      old: class A\n"
	require.NoError(t, os.WriteFile(path, []byte(legacy), 0o644))

	doc, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, Save(path, doc))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "acceptedBreaks:")
	assert.Contains(t, string(data), "acceptedBreaksV2:")

	again, err := Load(path)
	require.NoError(t, err)
	assert.True(t, again.Equal(doc))
	assert.Equal(t, 0, again.LegacyAcceptedBreaks().Len())
}
