package pdftest

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	rpdf "rsc.io/pdf"
)

func TestBuild_PageCount(t *testing.T) {
	b := Build("one", "", "three (with parens)")
	require.True(t, bytes.HasPrefix(b, []byte("%PDF-")))

	r, err := rpdf.NewReader(bytes.NewReader(b), int64(len(b)))
	require.NoError(t, err)
	assert.Equal(t, 3, r.NumPage())
}
