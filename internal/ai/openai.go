package ai

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/thywilljoshua/pdf2md/internal/extractor"
)

var ErrMissingOpenAIKey = errors.New("missing OPENAI_API_KEY")

type OpenAIOptions struct {
	APIKey     string
	BaseURL    string
	Model      string
	MaxSide    int
	HTTPClient *http.Client
}

// OpenAI transcribes page images with any chat model that accepts image input through the
// OpenAI chat completions API.
type OpenAI struct {
	client  *openai.Client
	model   string
	maxSide int
}

var _ extractor.ImagePredictor = (*OpenAI)(nil)

func NewOpenAI(opts OpenAIOptions) (*OpenAI, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, ErrMissingOpenAIKey
	}
	cfg := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	}
	if opts.HTTPClient != nil {
		cfg.HTTPClient = opts.HTTPClient
	}
	model := opts.Model
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAI{client: openai.NewClientWithConfig(cfg), model: model, maxSide: opts.MaxSide}, nil
}

func (o *OpenAI) PredictImage(ctx context.Context, img []byte) (string, error) {
	data, mime, err := fitImage(img, o.maxSide)
	if err != nil {
		return "", err
	}
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{{
			Role: openai.ChatMessageRoleUser,
			MultiContent: []openai.ChatMessagePart{
				{Type: openai.ChatMessagePartTypeText, Text: pagePrompt},
				{
					Type: openai.ChatMessagePartTypeImageURL,
					ImageURL: &openai.ChatMessageImageURL{
						URL:    "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data),
						Detail: openai.ImageURLDetailHigh,
					},
				},
			},
		}},
		Temperature: 0,
	})
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai returned no choices")
	}
	return stripCodeFences(resp.Choices[0].Message.Content), nil
}
