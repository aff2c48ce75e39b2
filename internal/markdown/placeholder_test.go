package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReplaceImageRefs(t *testing.T) {
	md := "Intro\n![alt](img1.png)\n![](./images/IMG2.PNG \"t\")\n![keep](other.png)"

	got := ReplaceImageRefs(md, []string{"img1.png", "img2.png"})

	assert.Equal(t, "Intro\n**[IMAGE: img1.png]**\n**[IMAGE: img2.png]**\n![keep](other.png)", got)
}

func TestReplaceImageRefs_MetaCharactersInName(t *testing.T) {
	md := "![x](fig(1).png) ![y](fig+1.png)"
	got := ReplaceImageRefs(md, []string{"fig+1.png", ""})
	assert.Equal(t, "![x](fig(1).png) **[IMAGE: fig+1.png]**", got)
}

func TestInjectOCR(t *testing.T) {
	md := "Before\n**[IMAGE: img1.png]**\nAfter"
	got := InjectOCR(md, map[string]string{"img1.png": "Hello"})
	assert.Equal(t, "Before\n**[IMAGE: img1.png]**\n\n> Hello\n\nAfter", got)
}

func TestInjectOCR_MultilineAndMissing(t *testing.T) {
	md := "**[IMAGE:  a.png ]**\n**[IMAGE: b.png]**\n**[IMAGE: c.png]**"
	ocr := map[string]string{
		"a.png": "  line one\n\nline three\r\n",
		"b.png": " \n ",
	}
	got := InjectOCR(md, ocr)
	want := "**[IMAGE: a.png]**\n\n> line one\n>\n> line three\n" +
		"\n**[IMAGE: b.png]**\n\n> [No text detected]\n" +
		"\n**[IMAGE: c.png]**\n\n> [No text detected]\n"
	assert.Equal(t, want, got)
}

func TestPlaceholderRoundTrip(t *testing.T) {
	md := ReplaceImageRefs("![alt](img1.png)", []string{"img1.png"})
	assert.Equal(t, "**[IMAGE: img1.png]**", md)
	assert.Equal(t, []string{"img1.png"}, PlaceholderNames(md))

	out := InjectOCR(md, map[string]string{"img1.png": "Hello"})
	assert.Contains(t, out, "**[IMAGE: img1.png]**")
	assert.Contains(t, out, "> Hello")
	assert.Equal(t, out, InjectOCR(md, map[string]string{"img1.png": "Hello"}))
}

func TestReplaceImageRefs_WholeBasenameOnly(t *testing.T) {
	md := "![](ba.png) ![](dir/a.png) ![](a.png.bak)"
	got := ReplaceImageRefs(md, []string{"a.png"})
	assert.Equal(t, "![](ba.png) **[IMAGE: a.png]** ![](a.png.bak)", got)
}

func TestRewriteImageRef_SavedUnderOtherName(t *testing.T) {
	got := RewriteImageRef("![chart](p1_img_1.tif)", "p1_img_1.tif", "p1_img_1.tif.png")
	assert.Equal(t, "**[IMAGE: p1_img_1.tif.png]**", got)
}
