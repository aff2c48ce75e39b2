package markdown

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	sectionHeading = regexp.MustCompile(`(?m)^#{1,2}\s.*$`)
	nonSlug        = regexp.MustCompile(`[^a-z0-9]+`)
)

// SplitSections cuts md before every level 1 or 2 heading. Text ahead of the first heading is
// its own chunk; blank chunks are dropped and every chunk is trimmed.
func SplitSections(md string) []string {
	var chunks []string
	add := func(s string) {
		if s = strings.TrimSpace(s); s != "" {
			chunks = append(chunks, s)
		}
	}
	last := 0
	for _, loc := range sectionHeading.FindAllStringIndex(md, -1) {
		add(md[last:loc[0]])
		last = loc[0]
	}
	add(md[last:])
	return chunks
}

// Section is one node of a document outline.
type Section struct {
	Title    string    `json:"title"`
	Level    int       `json:"level"`
	Slug     string    `json:"slug"`
	Body     string    `json:"body,omitempty"`
	Children []Section `json:"children,omitempty"`
}

// Outline builds a heading tree from SplitSections chunks: level 2 sections hang under the
// preceding level 1 section. A chunk without a heading becomes an untitled root. Slugs are unique
// within the outline.
func Outline(chunks []string) []Section {
	var roots []Section
	used := map[string]int{}
	for _, chunk := range chunks {
		s := parseChunk(chunk)
		if s.Title != "" {
			s.Slug = uniqueSlug(Slugify(s.Title), used)
		}
		if s.Level == 2 && len(roots) > 0 && roots[len(roots)-1].Level == 1 {
			parent := &roots[len(roots)-1]
			parent.Children = append(parent.Children, s)
			continue
		}
		roots = append(roots, s)
	}
	return roots
}

func parseChunk(chunk string) Section {
	head, body, _ := strings.Cut(chunk, "\n")
	if !sectionHeading.MatchString(head) {
		return Section{Body: chunk}
	}
	level := len(head) - len(strings.TrimLeft(head, "#"))
	return Section{
		Title: strings.TrimSpace(head[level:]),
		Level: level,
		Body:  strings.TrimSpace(body),
	}
}

// Slugify lowercases s and joins its alphanumeric runs with hyphens.
func Slugify(s string) string {
	return strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), "-"), "-")
}

func uniqueSlug(slug string, used map[string]int) string {
	if slug == "" {
		slug = "section"
	}
	n := used[slug]
	used[slug] = n + 1
	if n == 0 {
		return slug
	}
	return slug + "-" + strconv.Itoa(n)
}
