package openai

import (
	"context"
	"errors"
	"strings"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/lucasrivero/brandforge-backend/pkg/config"
	"github.com/lucasrivero/brandforge-backend/pkg/logger"
)

const (
	themeTemperature = 0.9
	themeMaxTokens   = 2000
)

var errAPIKeyRequired = errors.New("openai api key is required")

// Message is a single turn in a chat conversation.
type Message struct {
	Role    string `json:"role" validate:"required,oneof=system user assistant"`
	Content string `json:"content" validate:"required"`
}

// Client wraps the OpenAI chat completion API.
type Client struct {
	api          *goopenai.Client
	defaultModel string
}

// NewClient initializes the OpenAI client with the configured key and model.
func NewClient(ctx context.Context, cfg config.OpenAIConfig, logg *logger.Logger) (*Client, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errAPIKeyRequired
	}

	client := &Client{
		api:          goopenai.NewClient(apiKey),
		defaultModel: cfg.Model,
	}
	if client.defaultModel == "" {
		client.defaultModel = goopenai.GPT4oMini
	}

	if logg != nil {
		logg.Info(ctx, "openai client initialized")
	}

	return client, nil
}

// DefaultModel returns the model used when a request does not name one.
func (c *Client) DefaultModel() string {
	if c == nil {
		return ""
	}
	return c.defaultModel
}

// CompleteJSON runs a chat completion constrained to a JSON object response,
// using the creative sampling settings for theme generation.
func (c *Client) CompleteJSON(ctx context.Context, system, user string) (string, error) {
	if c == nil || c.api == nil {
		return "", errors.New("openai client not initialized")
	}

	resp, err := c.api.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model: c.defaultModel,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleSystem, Content: system},
			{Role: goopenai.ChatMessageRoleUser, Content: user},
		},
		Temperature:    themeTemperature,
		MaxTokens:      themeMaxTokens,
		ResponseFormat: &goopenai.ChatCompletionResponseFormat{Type: goopenai.ChatCompletionResponseFormatTypeJSONObject},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// Complete runs a plain chat completion with the supplied messages. An empty
// model falls back to the configured default.
func (c *Client) Complete(ctx context.Context, model string, messages []Message) (string, error) {
	if c == nil || c.api == nil {
		return "", errors.New("openai client not initialized")
	}
	if len(messages) == 0 {
		return "", errors.New("at least one message is required")
	}
	if strings.TrimSpace(model) == "" {
		model = c.defaultModel
	}

	chatMessages := make([]goopenai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		chatMessages = append(chatMessages, goopenai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	resp, err := c.api.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model:    model,
		Messages: chatMessages,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
