package models

import (
	"time"

	"github.com/lucasrivero/brandforge-backend/pkg/enums"
)

// ThemeParams are the visual and voice parameters that drive generation.
type ThemeParams struct {
	Name          string   `firestore:"name" json:"name"`
	Mood          string   `firestore:"mood" json:"mood"`
	Colors        []string `firestore:"colors" json:"colors"`
	Imagery       string   `firestore:"imagery" json:"imagery"`
	Tone          string   `firestore:"tone" json:"tone"`
	CaptionLength string   `firestore:"caption_length" json:"caption_length"`
	UseEmojis     bool     `firestore:"use_emojis" json:"use_emojis"`
	UseHashtags   bool     `firestore:"use_hashtags" json:"use_hashtags"`
}

// ThemeOption is a candidate theme offered during auto generation. It is
// never persisted on its own; the client promotes one into a Theme.
type ThemeOption struct {
	ThemeParams
	ImageURL string `json:"image_url"`
}

// Theme is a saved campaign style for a brand, along with its generated posts.
type Theme struct {
	ID            string    `firestore:"id" json:"id"`
	BrandID       string    `firestore:"brand_id" json:"brand_id"`
	UserID        string    `firestore:"user_id" json:"user_id"`
	Name          string    `firestore:"name" json:"name"`
	Mood          string    `firestore:"mood" json:"mood"`
	Colors        []string  `firestore:"colors" json:"colors"`
	Imagery       string    `firestore:"imagery" json:"imagery"`
	Tone          string    `firestore:"tone" json:"tone"`
	CaptionLength string    `firestore:"caption_length" json:"caption_length"`
	UseEmojis     bool      `firestore:"use_emojis" json:"use_emojis"`
	UseHashtags   bool      `firestore:"use_hashtags" json:"use_hashtags"`
	Posts         []Post    `firestore:"posts" json:"posts"`
	PostsCount    int       `firestore:"posts_count" json:"posts_count"`
	CreatedAt     time.Time `firestore:"created_at" json:"created_at"`
	UpdatedAt     time.Time `firestore:"updated_at" json:"updated_at"`
}

// Params returns the theme's generation parameters.
func (t Theme) Params() ThemeParams {
	return ThemeParams{
		Name:          t.Name,
		Mood:          t.Mood,
		Colors:        t.Colors,
		Imagery:       t.Imagery,
		Tone:          t.Tone,
		CaptionLength: t.CaptionLength,
		UseEmojis:     t.UseEmojis,
		UseHashtags:   t.UseHashtags,
	}
}

// Post is a single generated social media post attached to a theme.
type Post struct {
	ID            string           `firestore:"id" json:"id"`
	ThemeID       string           `firestore:"theme_id" json:"theme_id"`
	ImageURL      string           `firestore:"image_url" json:"image_url"`
	Caption       string           `firestore:"caption" json:"caption"`
	Hashtags      []string         `firestore:"hashtags" json:"hashtags"`
	PostType      string           `firestore:"post_type" json:"post_type"`
	Selected      bool             `firestore:"selected" json:"selected"`
	ScheduledTime *time.Time       `firestore:"scheduled_time" json:"scheduled_time"`
	Status        enums.PostStatus `firestore:"status" json:"status"`
}
