// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package loader

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/specdex/pkg/types"
)

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.pdf"), types.LoaderConfig{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestOpenInvalidContainer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bogus.pdf")
	require.NoError(t, os.WriteFile(path, []byte("this is not a pdf"), 0o644))

	_, err := Open(path, types.LoaderConfig{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidPDF))
}

func TestDocumentPageBounds(t *testing.T) {
	doc := &Document{Title: "spec", Pages: []string{"first", "second"}}

	assert.Equal(t, 2, doc.PageCount())
	assert.Equal(t, "first", doc.Page(1))
	assert.Equal(t, "second", doc.Page(2))
	assert.Empty(t, doc.Page(0))
	assert.Empty(t, doc.Page(3))
}

func TestAllBlank(t *testing.T) {
	assert.True(t, allBlank([]string{"", "  \n\t", ""}))
	assert.False(t, allBlank([]string{"", "text"}))
	assert.False(t, allBlank(nil))
}
