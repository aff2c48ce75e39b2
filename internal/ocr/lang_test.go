package ocr

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLanguages(t *testing.T) {
	assert.Equal(t, []string{"mkd", "eng"}, Languages(" mkd + eng+"))
	assert.Empty(t, Languages(""))
}

func TestCheckLanguages_Installed(t *testing.T) {
	installed := func() ([]string, error) { return []string{"eng", "osd", "mkd"}, nil }

	assert.NoError(t, checkLanguages([]string{"mkd", "eng"}, "", installed))
	assert.ErrorContains(t, checkLanguages([]string{"deu"}, "", installed), `"deu" is not installed`)
	assert.ErrorIs(t, checkLanguages(nil, "", installed), ErrNoLanguage)

	broken := func() ([]string, error) { return nil, errors.New("no tesseract") }
	assert.ErrorContains(t, checkLanguages([]string{"eng"}, "", broken), "no tesseract")
}

func TestCheckLanguages_Prefix(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mkd.traineddata"), []byte("x"), 0o644))
	never := func() ([]string, error) { t.Fatal("installed list consulted"); return nil, nil }

	assert.NoError(t, checkLanguages([]string{"mkd"}, dir, never))
	assert.ErrorContains(t, checkLanguages([]string{"mkd", "eng"}, dir, never), `"eng" not found`)
}
