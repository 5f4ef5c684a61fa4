package generation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lucasrivero/brandforge-backend/pkg/enums"
	"github.com/lucasrivero/brandforge-backend/pkg/metrics"
	"github.com/lucasrivero/brandforge-backend/pkg/models"
)

const stageCaption = "caption"

var lengthGuides = map[enums.CaptionLength]string{
	enums.CaptionLengthShort:  "1-2 sentences (under 50 words)",
	enums.CaptionLengthMedium: "2-3 sentences (50-100 words)",
	enums.CaptionLengthLong:   "3-5 sentences (100-150 words)",
}

var fallbackHashtags = []string{"#brand", "#social", "#marketing"}

type textGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// captionGenerator produces captions from the caption model, with a canned
// fallback so a provider failure never fails the unit.
type captionGenerator struct {
	provider textGenerator
	gen      *metrics.GenerationMetrics
}

// Generate returns a caption and its extracted hashtags.
func (g *captionGenerator) Generate(ctx context.Context, params models.ThemeParams, brandName string) (string, []string) {
	started := time.Now()
	defer func() { g.gen.ObserveDuration(stageCaption, time.Since(started)) }()

	text, err := g.provider.GenerateText(ctx, captionPrompt(params, brandName))
	if err != nil || strings.TrimSpace(text) == "" {
		g.gen.IncFallback(stageCaption)
		return fallbackCaption(params)
	}

	g.gen.IncGenerated(stageCaption)
	caption := strings.TrimSpace(text)
	if params.UseHashtags && strings.Contains(caption, "#") {
		return splitHashtags(caption)
	}
	return caption, []string{}
}

func fallbackCaption(params models.ThemeParams) (string, []string) {
	caption := fmt.Sprintf("Check out our latest %s! ✨", params.Name)
	if params.UseHashtags {
		return caption, append([]string(nil), fallbackHashtags...)
	}
	return caption, []string{}
}

// splitHashtags pulls '#'-prefixed tokens out of the caption so tags can be
// stored separately from the copy.
func splitHashtags(caption string) (string, []string) {
	var hashtags []string
	for _, word := range strings.Fields(caption) {
		if strings.HasPrefix(word, "#") {
			hashtags = append(hashtags, strings.Trim(word, ".,!?"))
		}
	}
	for _, tag := range hashtags {
		caption = strings.TrimSpace(strings.ReplaceAll(caption, tag, ""))
	}
	return caption, hashtags
}

func captionPrompt(params models.ThemeParams, brandName string) string {
	guide := lengthGuides[enums.CaptionLength(params.CaptionLength).Normalize()]

	emojiLine := "Do not use any emojis."
	if params.UseEmojis {
		emojiLine = "Include relevant emojis naturally throughout the text."
	}
	hashtagLine := "Do not include hashtags."
	if params.UseHashtags {
		hashtagLine = "Include 3-5 relevant hashtags at the end."
	}

	return fmt.Sprintf(`Write an engaging Instagram caption for %s.

Theme: %s
Tone: %s
Mood: %s
Length: %s
%s
%s

The caption should be %s, engaging, and suitable for a %s post.
Make it authentic and brand-appropriate.`,
		brandName, params.Name, params.Tone, params.Mood, guide, emojiLine, hashtagLine,
		strings.ToLower(params.Tone), strings.ToLower(params.Mood))
}
