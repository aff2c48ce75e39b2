package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew_WritesJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pdf2md.log")
	log := New(Options{FilePath: path})

	log.Info("conversion finished", zap.String("model", "layout"), zap.Int("pages", 3))
	_ = log.Sync()

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	line := strings.TrimSpace(string(b))
	assert.Contains(t, line, `"msg":"conversion finished"`)
	assert.Contains(t, line, `"model":"layout"`)
	assert.Contains(t, line, `"ts":`)
}

func TestNew_LevelFollowsMode(t *testing.T) {
	assert.False(t, New(Options{}).Core().Enabled(zap.DebugLevel))
	assert.True(t, New(Options{Development: true}).Core().Enabled(zap.DebugLevel))
}

func TestOrNop(t *testing.T) {
	assert.NotNil(t, OrNop(nil))
	l := zap.NewExample()
	assert.Same(t, l, OrNop(l))
}

func TestFileWriterDefaults(t *testing.T) {
	w := fileWriter(Options{FilePath: "x.log"})
	assert.Equal(t, 100, w.MaxSize)
	assert.Equal(t, 5, w.MaxBackups)
	assert.Equal(t, 30, w.MaxAge)
}
