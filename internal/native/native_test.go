package native

import (
	"context"
	"strings"
	"testing"

	"github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/thywilljoshua/pdf2md/internal/pdftest"
)

func TestJoinRow(t *testing.T) {
	tests := []struct {
		name string
		runs []pdf.Text
		want string
	}{
		{
			name: "adjacent runs",
			runs: []pdf.Text{{S: "Hel", X: 72}, {S: "lo", X: 72 + 3*glyphWidth}},
			want: "Hello",
		},
		{
			name: "word gap",
			runs: []pdf.Text{{S: "Hello", X: 72}, {S: "world", X: 72 + 6*glyphWidth}},
			want: "Hello world",
		},
		{
			name: "column gap",
			runs: []pdf.Text{{S: "Item", X: 72}, {S: "Cost", X: 300}},
			want: "Item  Cost",
		},
		{
			name: "explicit space",
			runs: []pdf.Text{{S: "Hello ", X: 72}, {S: "there", X: 400}},
			want: "Hello there",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, joinRow(tt.runs))
		})
	}
}

func TestFileType(t *testing.T) {
	assert.Equal(t, "jpg", fileType("JPEG"))
	assert.Equal(t, "png", fileType(""))
	assert.Equal(t, "tif", fileType(".tif"))
}

func TestNative_RunOnPDF(t *testing.T) {
	pdfData := pdftest.Build("Alpha line\nBeta line", "", "Gamma line")

	out, err := New(zaptest.NewLogger(t)).RunOnPDF(context.Background(), pdfData)
	require.NoError(t, err)

	md := out.Markdown
	for _, want := range []string{"Alpha", "Beta", "Gamma"} {
		assert.Contains(t, md, want)
	}
	assert.Less(t, strings.Index(md, "Alpha"), strings.Index(md, "Beta"))
	assert.Less(t, strings.Index(md, "Beta"), strings.Index(md, "Gamma"))
	assert.Empty(t, out.Images)
}

func TestNative_RejectsGarbage(t *testing.T) {
	_, err := New(nil).RunOnPDF(context.Background(), []byte("%PDF-1.4 nothing else"))
	assert.Error(t, err)
}

func TestNative_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(nil).RunOnPDF(ctx, pdftest.Build("x"))
	assert.ErrorIs(t, err, context.Canceled)
}
