package generation

import (
	"fmt"
	"strings"
)

// buildImagePrompt renders the image generation brief for one theme.
func buildImagePrompt(mood string, colors []string, imagery, brandName string) string {
	colorDescriptions := strings.Join(colors, ", ")

	return fmt.Sprintf(`Create a high-quality, professional social media post image for %s.

Style Requirements:
- Mood/Aesthetic: %s
- Visual Style: %s
- Color Palette: Use these colors prominently - %s
- Format: Instagram post (square, 1080x1080)
- Professional quality with clean composition
- Eye-catching and engaging for social media

The image should feel %s, incorporate %s style photography,
and use the specified color palette to create a cohesive brand aesthetic.
Make it suitable for a professional social media marketing campaign.`,
		brandName, mood, imagery, colorDescriptions, strings.ToLower(mood), strings.ToLower(imagery))
}

// withVariation appends a uniqueness hint so repeated prompts diverge.
func withVariation(prompt string, index int) string {
	return fmt.Sprintf("%s\n\nVariation %d: Create a unique composition.", prompt, index+1)
}
