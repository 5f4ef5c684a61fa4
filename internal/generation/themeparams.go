package generation

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/lucasrivero/brandforge-backend/pkg/metrics"
	"github.com/lucasrivero/brandforge-backend/pkg/models"
)

const (
	stageThemeParams = "theme_params"

	themeSystemPrompt = "You are a professional social media marketing expert who generates diverse, cohesive Instagram themes. Always respond with valid JSON only."
)

// defaultPalette is used whenever a theme arrives without exactly four colors.
var defaultPalette = []string{"#4F46E5", "#EC4899", "#F59E0B", "#10B981"}

var fillerMoods = []string{"Professional", "Playful", "Elegant", "Bold", "Minimal"}

var fillerPalettes = [][]string{
	{"#4F46E5", "#EC4899", "#F59E0B", "#10B981"},
	{"#DC2626", "#F59E0B", "#10B981", "#3B82F6"},
	{"#6B7280", "#D1D5DB", "#F3F4F6", "#111827"},
	{"#EC4899", "#8B5CF6", "#F59E0B", "#10B981"},
	{"#14B8A6", "#06B6D4", "#0EA5E9", "#3B82F6"},
}

var fillerImagery = []string{"Product-focused", "Lifestyle", "Flat lay", "In-use", "Behind-the-scenes"}

var fillerTones = []string{"Professional", "Casual", "Inspirational", "Educational", "Conversational"}

var requiredThemeFields = []string{
	"name", "mood", "colors", "imagery", "tone", "caption_length", "use_emojis", "use_hashtags",
}

type textCompleter interface {
	CompleteJSON(ctx context.Context, system, user string) (string, error)
}

// themeParamsGenerator produces theme parameter sets from the text provider,
// falling back to deterministic defaults so it never fails.
type themeParamsGenerator struct {
	provider textCompleter
	gen      *metrics.GenerationMetrics
}

// Generate returns exactly count parameter sets. Provider output that is
// missing required fields is discarded; gaps are filled with defaults.
func (g *themeParamsGenerator) Generate(ctx context.Context, brand models.Brand, count int) []models.ThemeParams {
	started := time.Now()
	defer func() { g.gen.ObserveDuration(stageThemeParams, time.Since(started)) }()

	brandName := brand.Name
	if brandName == "" {
		brandName = "Brand"
	}

	validated := g.fromProvider(ctx, brand, count)
	for len(validated) < count {
		g.gen.IncFallback(stageThemeParams)
		validated = append(validated, fillerTheme(brandName, len(validated)))
	}
	return validated[:count]
}

func (g *themeParamsGenerator) fromProvider(ctx context.Context, brand models.Brand, count int) []models.ThemeParams {
	raw, err := g.provider.CompleteJSON(ctx, themeSystemPrompt, themeParamsPrompt(brand, count))
	if err != nil {
		return nil
	}

	var parsed struct {
		Themes []json.RawMessage `json:"themes"`
	}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil
	}

	var validated []models.ThemeParams
	for _, entry := range parsed.Themes {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(entry, &fields); err != nil {
			continue
		}
		if !hasAllFields(fields, requiredThemeFields) {
			continue
		}

		var params models.ThemeParams
		if err := json.Unmarshal(entry, &params); err != nil {
			continue
		}
		if len(params.Colors) != 4 {
			params.Colors = append([]string(nil), defaultPalette...)
		}
		validated = append(validated, params)
		g.gen.IncGenerated(stageThemeParams)
	}
	return validated
}

func hasAllFields(fields map[string]json.RawMessage, required []string) bool {
	for _, field := range required {
		if _, ok := fields[field]; !ok {
			return false
		}
	}
	return true
}

func fillerTheme(brandName string, index int) models.ThemeParams {
	return models.ThemeParams{
		Name:          fmt.Sprintf("%s Theme %d", brandName, index+1),
		Mood:          fillerMoods[index%len(fillerMoods)],
		Colors:        append([]string(nil), fillerPalettes[index%len(fillerPalettes)]...),
		Imagery:       fillerImagery[index%len(fillerImagery)],
		Tone:          fillerTones[index%len(fillerTones)],
		CaptionLength: "medium",
		UseEmojis:     index%2 == 0,
		UseHashtags:   true,
	}
}

func themeParamsPrompt(brand models.Brand, count int) string {
	return fmt.Sprintf(`You are a social media marketing expert. Based on the following brand information, generate %d DIFFERENT Instagram theme options with specific parameters.

Brand Information:
- Name: %s
- Category: %s
- Description: %s
- Target Audience: %s
- Major Strengths: %s
- Main Products: %s
- Brand Voice: %s

Generate %d DIVERSE theme options for this brand. Each theme should have a distinct personality and visual direction.
Return ONLY a valid JSON object with a "themes" array:

{
  "themes": [
    {
      "name": "Creative theme name (e.g., 'Summer Vibes 2024', 'Product Launch Q1')",
      "mood": "Choose ONE from: Professional, Playful, Elegant, Bold, Minimal, Warm, Modern",
      "colors": ["color1 hex", "color2 hex", "color3 hex", "color4 hex"],
      "imagery": "Choose ONE from: Product-focused, Lifestyle, Flat lay, In-use, Behind-the-scenes",
      "tone": "Choose ONE from: Professional, Casual, Inspirational, Educational, Conversational",
      "caption_length": "Choose ONE from: short, medium, long",
      "use_emojis": true or false,
      "use_hashtags": true or false
    },
    ... (%d themes total)
  ]
}

IMPORTANT: Make each theme DISTINCTLY different - vary the mood, colors, imagery style, and tone across all %d themes.`,
		count,
		orUnknown(brand.Name),
		orUnknown(brand.Category),
		brand.Description,
		brand.TargetAudience,
		strings.Join(brand.MajorStrengths, ", "),
		strings.Join(brand.MainProducts, ", "),
		brand.BrandVoice,
		count, count, count)
}

func orUnknown(value string) string {
	if value == "" {
		return "Unknown"
	}
	return value
}
