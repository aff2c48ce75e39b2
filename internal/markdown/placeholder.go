package markdown

import (
	"regexp"
	"strings"
)

const noTextDetected = "> [No text detected]"

var placeholderRe = regexp.MustCompile(`\*\*\[IMAGE:\s*(.+?)\s*\]\*\*`)

// Placeholder is the marker standing in for the saved image name.
func Placeholder(name string) string {
	return "**[IMAGE: " + name + "]**"
}

// ReplaceImageRefs rewrites every markdown image whose target's basename is one of names into
// that name's placeholder. Matching is case-insensitive; references to other files are left alone.
func ReplaceImageRefs(md string, names []string) string {
	for _, name := range names {
		md = RewriteImageRef(md, name, name)
	}
	return md
}

// RewriteImageRef replaces markdown images pointing at ref with the placeholder for saved, the
// name the image was stored under.
func RewriteImageRef(md, ref, saved string) string {
	if ref == "" || saved == "" {
		return md
	}
	re := regexp.MustCompile(`(?i)!\[[^\]]*\]\((?:[^)<>\s]*/)?` + regexp.QuoteMeta(ref) + `(?:\s+[^)]*)?\)`)
	return re.ReplaceAllLiteralString(md, Placeholder(saved))
}

// PlaceholderNames lists the image names referenced by placeholders in md, in order of appearance.
func PlaceholderNames(md string) []string {
	var names []string
	for _, m := range placeholderRe.FindAllStringSubmatch(md, -1) {
		names = append(names, strings.TrimSpace(m[1]))
	}
	return names
}

// InjectOCR places a blockquote with each image's OCR text under its placeholder. Images with no
// entry, or a blank one, get a "[No text detected]" quote.
func InjectOCR(md string, ocr map[string]string) string {
	return placeholderRe.ReplaceAllStringFunc(md, func(match string) string {
		name := strings.TrimSpace(placeholderRe.FindStringSubmatch(match)[1])
		text := strings.TrimSpace(ocr[name])
		if text == "" {
			return Placeholder(name) + "\n\n" + noTextDetected + "\n"
		}
		return Placeholder(name) + "\n\n" + blockquote(text) + "\n"
	})
}

func blockquote(text string) string {
	lines := strings.Split(lineEndings.Replace(text), "\n")
	for i, ln := range lines {
		if strings.TrimSpace(ln) == "" {
			lines[i] = ">"
		} else {
			lines[i] = "> " + ln
		}
	}
	return strings.Join(lines, "\n")
}
