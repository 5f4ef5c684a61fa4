package generation

import (
	"context"

	"github.com/lucasrivero/brandforge-backend/pkg/models"
)

// EventType discriminates the payloads sent over a generation stream.
type EventType string

const (
	EventThemeOption EventType = "theme_option"
	EventPost        EventType = "post"
	EventComplete    EventType = "complete"
	EventError       EventType = "error"
)

// Event is a single message on a generation stream. Exactly one terminal
// event (complete or error) closes every stream.
type Event struct {
	Type         EventType           `json:"type"`
	Index        int                 `json:"index,omitempty"`
	Total        int                 `json:"total,omitempty"`
	Theme        *models.ThemeOption `json:"theme,omitempty"`
	Post         *models.Post        `json:"post,omitempty"`
	TotalOptions int                 `json:"total_options,omitempty"`
	TotalPosts   int                 `json:"total_posts,omitempty"`
	Message      string              `json:"message,omitempty"`
}

// Sink receives generation events. An Emit error means the consumer is gone
// and the pipeline should stop producing.
type Sink interface {
	Emit(ctx context.Context, event Event) error
}

func themeOptionEvent(index, total int, option models.ThemeOption) Event {
	return Event{Type: EventThemeOption, Index: index, Total: total, Theme: &option}
}

func postEvent(index, total int, post models.Post) Event {
	return Event{Type: EventPost, Index: index, Total: total, Post: &post}
}

func optionsCompleteEvent(total int) Event {
	return Event{Type: EventComplete, TotalOptions: total}
}

func postsCompleteEvent(total int) Event {
	return Event{Type: EventComplete, TotalPosts: total}
}

func errorEvent(message string) Event {
	return Event{Type: EventError, Message: message}
}
