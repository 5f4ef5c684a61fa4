package llm

import (
	"context"
	"fmt"
	"strings"

	pkgerrors "github.com/lucasrivero/brandforge-backend/pkg/errors"
	"github.com/lucasrivero/brandforge-backend/pkg/openai"
)

type chatProvider interface {
	Complete(ctx context.Context, model string, messages []openai.Message) (string, error)
}

// Service proxies ad-hoc chat requests to the text provider.
type Service interface {
	Chat(ctx context.Context, input ChatInput) (*ChatOutput, error)
}

type service struct {
	provider chatProvider
}

// NewService constructs a chat proxy over the provided completion client.
func NewService(provider chatProvider) (Service, error) {
	if provider == nil {
		return nil, fmt.Errorf("chat provider required")
	}
	return &service{provider: provider}, nil
}

// ChatInput is a single free-form message for the model.
type ChatInput struct {
	Message string `json:"message" validate:"required"`
	Model   string `json:"model"`
}

// ChatOutput carries the model's reply.
type ChatOutput struct {
	Response string `json:"response"`
}

func (s *service) Chat(ctx context.Context, input ChatInput) (*ChatOutput, error) {
	if strings.TrimSpace(input.Message) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "message required")
	}

	reply, err := s.provider.Complete(ctx, input.Model, []openai.Message{
		{Role: "user", Content: input.Message},
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "completing chat")
	}
	return &ChatOutput{Response: reply}, nil
}
