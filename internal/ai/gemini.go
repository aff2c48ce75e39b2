package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"
	genai "google.golang.org/genai"

	"github.com/thywilljoshua/pdf2md/internal/extractor"
)

var ErrMissingGoogleKey = errors.New("missing GOOGLE_API_KEY")

type StructuredSection struct {
	Number string `json:"number"`
	Title  string `json:"title"`
	Start  int    `json:"start_page"`
	End    int    `json:"end_page"`
	Depth  int    `json:"depth"`
	Text   string `json:"text"`
}

type StructuredDoc struct {
	Sections []StructuredSection `json:"sections"`
}

// GeminiClientOptions configures the shared genai client. BaseURL and HTTPClient are for
// proxies and tests.
type GeminiClientOptions struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

func NewGeminiClient(ctx context.Context, opts GeminiClientOptions) (*genai.Client, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, ErrMissingGoogleKey
	}
	cc := &genai.ClientConfig{
		APIKey:     opts.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: opts.HTTPClient,
	}
	if opts.BaseURL != "" {
		cc.HTTPOptions.BaseURL = opts.BaseURL
	}
	c, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	return c, nil
}

// Gemini transcribes page images and, given a whole PDF, asks the model for its sections.
type Gemini struct {
	client  *genai.Client
	model   string
	maxSide int
	log     *zap.Logger
}

var (
	_ extractor.Extractor      = (*Gemini)(nil)
	_ extractor.ImagePredictor = (*Gemini)(nil)
)

func NewGemini(client *genai.Client, model string, maxSide int, log *zap.Logger) *Gemini {
	if model == "" {
		model = "gemini-2.5-flash"
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Gemini{client: client, model: model, maxSide: maxSide, log: log.Named("gemini")}
}

func (g *Gemini) PredictImage(ctx context.Context, img []byte) (string, error) {
	data, mime, err := fitImage(img, g.maxSide)
	if err != nil {
		return "", err
	}
	content := genai.NewContentFromParts([]*genai.Part{
		genai.NewPartFromText(pagePrompt),
		genai.NewPartFromBytes(data, mime),
	}, genai.RoleUser)
	return g.generate(ctx, content)
}

// RunOnPDF sends the whole document inline. A reply that is not the requested JSON is used as
// markdown verbatim.
func (g *Gemini) RunOnPDF(ctx context.Context, pdf []byte) (*extractor.Output, error) {
	content := genai.NewContentFromParts([]*genai.Part{
		genai.NewPartFromText(documentPrompt),
		genai.NewPartFromBytes(pdf, "application/pdf"),
	}, genai.RoleUser)
	reply, err := g.generate(ctx, content)
	if err != nil {
		return nil, err
	}
	g.log.Debug("document reply", zap.Int("bytes", len(reply)))

	doc, err := parseStructured(reply)
	if err != nil {
		g.log.Warn("structured reply not parseable, using raw text", zap.Error(err))
		return &extractor.Output{Markdown: stripCodeFences(reply)}, nil
	}
	return &extractor.Output{Markdown: renderSections(doc.Sections)}, nil
}

func (g *Gemini) generate(ctx context.Context, content *genai.Content) (string, error) {
	res, err := g.client.Models.GenerateContent(ctx, g.model, []*genai.Content{content}, nil)
	if err != nil {
		return "", fmt.Errorf("gemini API call failed: %w", err)
	}
	return stripCodeFences(res.Text()), nil
}

func parseStructured(reply string) (StructuredDoc, error) {
	var doc StructuredDoc
	js := stripCodeFences(reply)
	err := json.Unmarshal([]byte(js), &doc)
	if err != nil {
		s := findFirstJSON(js)
		if s == "" {
			return doc, fmt.Errorf("no JSON found: %w", err)
		}
		if err2 := json.Unmarshal([]byte(s), &doc); err2 != nil {
			return doc, fmt.Errorf("parse JSON: %w (original error: %v)", err2, err)
		}
	}
	if len(doc.Sections) == 0 {
		return doc, errors.New("no sections")
	}
	return doc, nil
}

func renderSections(sections []StructuredSection) string {
	var b strings.Builder
	for _, s := range sections {
		title := strings.TrimSpace(strings.TrimSpace(s.Number) + " " + strings.TrimSpace(s.Title))
		if title != "" {
			depth := min(max(s.Depth, 1), 6)
			b.WriteString(strings.Repeat("#", depth) + " " + title + "\n\n")
		}
		if text := strings.TrimSpace(s.Text); text != "" {
			b.WriteString(text + "\n\n")
		}
	}
	return strings.TrimSpace(b.String())
}

// stripCodeFences removes a ```lang ... ``` wrapper models add despite being told not to.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		if nl := strings.Index(s, "\n"); nl != -1 {
			s = s[nl+1:]
		} else {
			s = strings.TrimPrefix(s, "```")
		}
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSpace(strings.TrimSuffix(s, "```"))
	}
	return s
}

// findFirstJSON returns the first balanced {...} in s, skipping braces inside strings.
func findFirstJSON(s string) string {
	start, depth := -1, 0
	inString, escaped := false, false
	for i, r := range s {
		if inString {
			switch {
			case escaped:
				escaped = false
			case r == '\\':
				escaped = true
			case r == '"':
				inString = false
			}
			continue
		}
		switch r {
		case '"':
			if start != -1 {
				inString = true
			}
		case '{':
			if start == -1 {
				start = i
			}
			depth++
		case '}':
			if start != -1 {
				depth--
				if depth == 0 {
					return s[start : i+1]
				}
			}
		}
	}
	return ""
}
