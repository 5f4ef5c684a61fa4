package gemini

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/lucasrivero/brandforge-backend/pkg/config"
	"github.com/lucasrivero/brandforge-backend/pkg/logger"
)

var (
	errAPIKeyRequired = errors.New("gemini api key is required")
	errNoContent      = errors.New("gemini returned no content")
	errNoImage        = errors.New("gemini returned no image data")
)

// Image is a generated image payload.
type Image struct {
	Data     []byte
	MIMEType string
}

// Client wraps the Gemini generative models used for captions and images.
type Client struct {
	client         *genai.Client
	textModel      string
	imageModel     string
	captionTimeout time.Duration
	imageTimeout   time.Duration
}

// NewClient initializes the Gemini client with the configured key and models.
func NewClient(ctx context.Context, cfg config.GeminiConfig, logg *logger.Logger) (*Client, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errAPIKeyRequired
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	if logg != nil {
		logg.Info(ctx, "gemini client initialized")
	}

	return &Client{
		client:         client,
		textModel:      cfg.TextModel,
		imageModel:     cfg.ImageModel,
		captionTimeout: cfg.CaptionTimeout,
		imageTimeout:   cfg.ImageTimeout,
	}, nil
}

// GenerateText produces a text completion from the caption model.
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	if c == nil || c.client == nil {
		return "", errors.New("gemini client not initialized")
	}

	if c.captionTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.captionTimeout)
		defer cancel()
	}

	resp, err := c.client.GenerativeModel(c.textModel).GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}

	text := extractText(resp)
	if text == "" {
		return "", errNoContent
	}
	return text, nil
}

// GenerateImage produces a single image from the image model. The model may
// answer with text instead of image data; that counts as a failure.
func (c *Client) GenerateImage(ctx context.Context, prompt string) (*Image, error) {
	if c == nil || c.client == nil {
		return nil, errors.New("gemini client not initialized")
	}

	if c.imageTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.imageTimeout)
		defer cancel()
	}

	resp, err := c.client.GenerativeModel(c.imageModel).GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, err
	}

	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if blob, ok := part.(genai.Blob); ok && len(blob.Data) > 0 {
				mime := blob.MIMEType
				if mime == "" {
					mime = "image/png"
				}
				return &Image{Data: blob.Data, MIMEType: mime}, nil
			}
		}
	}

	return nil, errNoImage
}

// Close releases the underlying API connection.
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				sb.WriteString(string(text))
			}
		}
	}
	return strings.TrimSpace(sb.String())
}
