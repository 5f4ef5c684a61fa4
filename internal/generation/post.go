package generation

import (
	"github.com/google/uuid"

	"github.com/lucasrivero/brandforge-backend/pkg/enums"
	"github.com/lucasrivero/brandforge-backend/pkg/models"
)

// postTypes cycles across the classic social content mix.
var postTypes = []string{
	"Functional", "Brand resonance", "Emotional", "Educational",
	"Experiential", "Current events", "Personal", "Employee",
	"Community", "Customer story", "Cause", "Sales",
}

// assemblePost builds a draft post from the generated pieces.
func assemblePost(themeID string, index int, imageURL, caption string, hashtags []string) models.Post {
	if hashtags == nil {
		hashtags = []string{}
	}
	return models.Post{
		ID:            uuid.NewString(),
		ThemeID:       themeID,
		ImageURL:      imageURL,
		Caption:       caption,
		Hashtags:      hashtags,
		PostType:      postTypes[index%len(postTypes)],
		Selected:      false,
		ScheduledTime: nil,
		Status:        enums.PostStatusDraft,
	}
}
