package ai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/thywilljoshua/pdf2md/internal/extractor"
)

const DefaultVisionEndpoint = "https://vision.googleapis.com/v1/images:annotate"

var (
	ErrMissingVisionKey = errors.New("missing GOOGLE_VISION_API_KEY")
	ErrVisionKeyFormat  = errors.New("GOOGLE_VISION_API_KEY is not a valid Google API key")
	ErrEmptyResponse    = errors.New("empty response from Vision API")

	googleKeyPattern = regexp.MustCompile(`^AIza[0-9A-Za-z_-]{35}$`)
)

// ValidateGoogleKey rejects keys that cannot be Google API keys.
func ValidateGoogleKey(key string) error {
	key = strings.TrimSpace(key)
	switch {
	case key == "":
		return ErrMissingVisionKey
	case len(key) < 20 || len(key) > 100:
		return ErrVisionKeyFormat
	case strings.HasPrefix(key, "AIza") && !googleKeyPattern.MatchString(key):
		return ErrVisionKeyFormat
	}
	return nil
}

type VisionOptions struct {
	APIKey     string
	Endpoint   string
	MaxSide    int
	HTTPClient *http.Client
	Log        *zap.Logger
}

// Vision runs DOCUMENT_TEXT_DETECTION on page images through the Cloud Vision REST API.
type Vision struct {
	apiKey   string
	endpoint string
	maxSide  int
	http     *http.Client
	log      *zap.Logger
}

var _ extractor.ImagePredictor = (*Vision)(nil)

func NewVision(opts VisionOptions) (*Vision, error) {
	if err := ValidateGoogleKey(opts.APIKey); err != nil {
		return nil, err
	}
	v := &Vision{
		apiKey:   strings.TrimSpace(opts.APIKey),
		endpoint: opts.Endpoint,
		maxSide:  opts.MaxSide,
		http:     opts.HTTPClient,
		log:      opts.Log,
	}
	if v.endpoint == "" {
		v.endpoint = DefaultVisionEndpoint
	}
	if v.http == nil {
		v.http = &http.Client{Timeout: 2 * time.Minute}
	}
	if v.log == nil {
		v.log = zap.NewNop()
	}
	v.log = v.log.Named("vision")
	return v, nil
}

type visionRequest struct {
	Requests []visionRequestItem `json:"requests"`
}

type visionRequestItem struct {
	Image    visionImage     `json:"image"`
	Features []visionFeature `json:"features"`
}

type visionImage struct {
	Content string `json:"content"`
}

type visionFeature struct {
	Type       string `json:"type"`
	MaxResults int    `json:"maxResults,omitempty"`
}

type visionResponse struct {
	Responses []struct {
		FullTextAnnotation struct {
			Text string `json:"text"`
		} `json:"fullTextAnnotation"`
		Error struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	} `json:"responses"`
}

// PredictImage returns the detected text; an image without text yields "".
func (v *Vision) PredictImage(ctx context.Context, img []byte) (string, error) {
	data, _, err := fitImage(img, v.maxSide)
	if err != nil {
		return "", err
	}
	body, err := json.Marshal(visionRequest{Requests: []visionRequestItem{{
		Image:    visionImage{Content: base64.StdEncoding.EncodeToString(data)},
		Features: []visionFeature{{Type: "DOCUMENT_TEXT_DETECTION", MaxResults: 1}},
	}}})
	if err != nil {
		return "", fmt.Errorf("vision: marshal request: %w", err)
	}

	endpoint := v.endpoint + "?key=" + url.QueryEscape(v.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("vision: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := v.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("vision: send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("vision: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("vision: status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var vr visionResponse
	if err := json.Unmarshal(raw, &vr); err != nil {
		return "", fmt.Errorf("vision: decode response: %w", err)
	}
	if len(vr.Responses) == 0 {
		return "", ErrEmptyResponse
	}
	item := vr.Responses[0]
	if item.Error.Message != "" {
		return "", fmt.Errorf("vision: %s (code %d)", item.Error.Message, item.Error.Code)
	}
	v.log.Debug("page transcribed",
		zap.Int("chars", len(item.FullTextAnnotation.Text)),
		zap.Duration("took", time.Since(start)))
	return item.FullTextAnnotation.Text, nil
}
