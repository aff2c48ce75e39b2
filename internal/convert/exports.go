package convert

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/google/uuid"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/thywilljoshua/pdf2md/internal/extractor"
)

const exportIDLen = 10

var exportIDPattern = regexp.MustCompile(`^[0-9a-f]{1,32}$`)

// keptAsIs are the extensions written byte for byte; anything else is re-encoded as PNG.
var keptAsIs = map[string]bool{".png": true, ".jpg": true, ".jpeg": true, ".webp": true}

// NewExportID returns a fresh short hex token.
func NewExportID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:exportIDLen]
}

// ValidExportID reports whether id can name an export directory.
func ValidExportID(id string) bool {
	return exportIDPattern.MatchString(id)
}

// Exports stores images side-channelled out of conversions under Root/<export id>/<name>.
type Exports struct {
	Root string
}

func (e Exports) Dir(id string) (string, error) {
	if !ValidExportID(id) {
		return "", inputErr("Invalid export id %q", id)
	}
	return filepath.Join(e.Root, id), nil
}

// SavedImage maps the name an image had inside the document to the file it was stored as.
type SavedImage struct {
	Ref  string
	Name string
}

// Save writes imgs into the export directory for id, creating it on the first successful write.
// Images that do not decode, or whose name was already taken, are skipped and reported in
// skipped; they never fail the call.
func (e Exports) Save(id string, imgs []extractor.Image) (saved []SavedImage, skipped []error, err error) {
	dir, err := e.Dir(id)
	if err != nil {
		return nil, nil, err
	}
	taken := map[string]bool{}
	for i, img := range imgs {
		ref := filepath.Base(strings.TrimSpace(img.Name))
		if ref == "." || ref == string(filepath.Separator) {
			ref = ""
		}
		if ref == "" {
			ref = fmt.Sprintf("image_%d.png", i+1)
		}
		name, data, convErr := prepareImage(ref, img.Data)
		if convErr != nil {
			skipped = append(skipped, fmt.Errorf("%s: %w", ref, convErr))
			continue
		}
		if taken[name] {
			skipped = append(skipped, fmt.Errorf("%s: duplicate image name", name))
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			skipped = append(skipped, fmt.Errorf("%s: %w", name, err))
			continue
		}
		if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
			skipped = append(skipped, fmt.Errorf("%s: %w", name, err))
			continue
		}
		taken[name] = true
		saved = append(saved, SavedImage{Ref: ref, Name: name})
	}
	return saved, skipped, nil
}

// prepareImage checks that data decodes and converts formats browsers do not show reliably.
func prepareImage(name string, data []byte) (string, []byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", nil, fmt.Errorf("decode: %w", err)
	}
	if keptAsIs[strings.ToLower(filepath.Ext(name))] {
		return name, data, nil
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", nil, fmt.Errorf("encode png: %w", err)
	}
	return name + ".png", buf.Bytes(), nil
}

// Images lists the image files of export id in name order. A missing export is empty.
func (e Exports) Images(id string) ([]string, error) {
	dir, err := e.Dir(id)
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read export %s: %w", id, err)
	}
	var names []string
	for _, ent := range entries {
		if ent.Type().IsRegular() && keptAsIs[strings.ToLower(filepath.Ext(ent.Name()))] {
			names = append(names, ent.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
