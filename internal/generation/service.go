package generation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lucasrivero/brandforge-backend/pkg/config"
	pkgerrors "github.com/lucasrivero/brandforge-backend/pkg/errors"
	"github.com/lucasrivero/brandforge-backend/pkg/firestore"
	"github.com/lucasrivero/brandforge-backend/pkg/logger"
	"github.com/lucasrivero/brandforge-backend/pkg/metrics"
	"github.com/lucasrivero/brandforge-backend/pkg/models"
)

const (
	defaultOptionCount = 5
	defaultPostsCount  = 5

	fallbackBrandName = "your brand"
)

type brandLookup interface {
	FindByID(ctx context.Context, id string) (*models.Brand, error)
}

type themeStore interface {
	FindByID(ctx context.Context, id string) (*models.Theme, error)
	Update(ctx context.Context, id string, fields map[string]any) error
}

// Service orchestrates the multi-stage content generation pipelines. The
// streaming methods own their terminal event: every stream ends with exactly
// one complete or error event, unless the consumer disconnects first.
type Service interface {
	AutoGenerateThemes(ctx context.Context, userID, brandID string, sink Sink)
	RegenerateImages(ctx context.Context, userID string, input RegenerateInput, sink Sink)
	StreamPosts(ctx context.Context, userID, themeID string, sink Sink)
	GeneratePosts(ctx context.Context, userID, themeID string) (*models.Theme, error)
}

type service struct {
	brands      brandLookup
	themes      themeStore
	themeParams *themeParamsGenerator
	captions    *captionGenerator
	images      *imageGenerator

	optionCount  int
	optionFolder string
	postFolder   string

	logg *logger.Logger
	now  func() time.Time
}

// NewService wires the generation pipeline over the providers and stores.
func NewService(
	brands brandLookup,
	themes themeStore,
	text textCompleter,
	captionText textGenerator,
	images imageProvider,
	uploads blobUploader,
	cfg config.GenerationConfig,
	gen *metrics.GenerationMetrics,
	logg *logger.Logger,
) (Service, error) {
	if brands == nil {
		return nil, fmt.Errorf("brand lookup required")
	}
	if themes == nil {
		return nil, fmt.Errorf("theme store required")
	}
	if text == nil {
		return nil, fmt.Errorf("text completer required")
	}
	if captionText == nil {
		return nil, fmt.Errorf("caption provider required")
	}
	if images == nil {
		return nil, fmt.Errorf("image provider required")
	}
	if uploads == nil {
		return nil, fmt.Errorf("blob uploader required")
	}

	optionCount := cfg.ThemeOptionCount
	if optionCount <= 0 {
		optionCount = defaultOptionCount
	}
	optionFolder := cfg.OptionImageFolder
	if optionFolder == "" {
		optionFolder = "theme_options"
	}
	postFolder := cfg.PostImageFolder
	if postFolder == "" {
		postFolder = "generated_images"
	}

	return &service{
		brands:       brands,
		themes:       themes,
		themeParams:  &themeParamsGenerator{provider: text, gen: gen},
		captions:     &captionGenerator{provider: captionText, gen: gen},
		images:       &imageGenerator{provider: images, uploads: uploads, gen: gen},
		optionCount:  optionCount,
		optionFolder: optionFolder,
		postFolder:   postFolder,
		logg:         logg,
		now:          func() time.Time { return time.Now().UTC() },
	}, nil
}

// RegenerateInput carries the caller-tuned theme parameters to render new
// image variations for.
type RegenerateInput struct {
	BrandID       string
	Name          string
	Mood          string
	Colors        []string
	Imagery       string
	Tone          string
	CaptionLength string
	UseEmojis     bool
	UseHashtags   bool
}

// AutoGenerateThemes streams freshly generated theme options for a brand,
// one theme_option event per candidate.
func (s *service) AutoGenerateThemes(ctx context.Context, userID, brandID string, sink Sink) {
	brand, ok := s.ownedBrandForStream(ctx, userID, brandID, sink)
	if !ok {
		return
	}

	brandName := brand.Name
	if brandName == "" {
		brandName = fallbackBrandName
	}

	params := s.themeParams.Generate(ctx, *brand, s.optionCount)
	for i, p := range params {
		prompt := buildImagePrompt(p.Mood, p.Colors, p.Imagery, brandName)
		filename := fmt.Sprintf("theme_option_%s.png", uuid.NewString())
		imageURL := s.images.Generate(ctx, prompt, s.optionFolder, filename, i)

		option := models.ThemeOption{ThemeParams: p, ImageURL: imageURL}
		if !s.emit(ctx, sink, themeOptionEvent(i+1, len(params), option)) {
			return
		}
	}

	s.emit(ctx, sink, optionsCompleteEvent(len(params)))
}

// RegenerateImages streams image variations for caller-supplied theme
// parameters, echoing the parameters on every event.
func (s *service) RegenerateImages(ctx context.Context, userID string, input RegenerateInput, sink Sink) {
	brand, ok := s.ownedBrandForStream(ctx, userID, input.BrandID, sink)
	if !ok {
		return
	}

	brandName := brand.Name
	if brandName == "" {
		brandName = fallbackBrandName
	}

	params := models.ThemeParams{
		Name:          input.Name,
		Mood:          input.Mood,
		Colors:        input.Colors,
		Imagery:       input.Imagery,
		Tone:          input.Tone,
		CaptionLength: input.CaptionLength,
		UseEmojis:     input.UseEmojis,
		UseHashtags:   input.UseHashtags,
	}
	basePrompt := buildImagePrompt(params.Mood, params.Colors, params.Imagery, brandName)

	for i := 0; i < s.optionCount; i++ {
		filename := fmt.Sprintf("regenerated_%s.png", uuid.NewString())
		imageURL := s.images.Generate(ctx, withVariation(basePrompt, i), s.optionFolder, filename, i)

		option := models.ThemeOption{ThemeParams: params, ImageURL: imageURL}
		if !s.emit(ctx, sink, themeOptionEvent(i+1, s.optionCount, option)) {
			return
		}
	}

	s.emit(ctx, sink, optionsCompleteEvent(s.optionCount))
}

// StreamPosts generates the theme's posts one by one, emits each as a post
// event, and persists the full batch before completing.
func (s *service) StreamPosts(ctx context.Context, userID, themeID string, sink Sink) {
	theme, err := s.ownedTheme(ctx, userID, themeID)
	if err != nil {
		s.emit(ctx, sink, errorEvent(streamMessage(err)))
		return
	}

	brandName := s.brandNameFor(ctx, theme.BrandID)

	posts, done := s.buildPosts(ctx, theme, brandName, func(i int, post models.Post) bool {
		return s.emit(ctx, sink, postEvent(i+1, theme.PostsCount, post))
	})
	if !done {
		return
	}

	if err := s.savePosts(ctx, theme.ID, posts); err != nil {
		if s.logg != nil {
			s.logg.Error(ctx, "generation.posts.save_failed", err)
		}
		s.emit(ctx, sink, errorEvent("failed to save generated posts"))
		return
	}

	s.emit(ctx, sink, postsCompleteEvent(len(posts)))
}

// GeneratePosts is the synchronous variant: it generates and persists the
// full batch, then returns the updated theme.
func (s *service) GeneratePosts(ctx context.Context, userID, themeID string) (*models.Theme, error) {
	theme, err := s.ownedTheme(ctx, userID, themeID)
	if err != nil {
		return nil, err
	}

	brandName := s.brandNameFor(ctx, theme.BrandID)

	posts, _ := s.buildPosts(ctx, theme, brandName, nil)

	if err := s.savePosts(ctx, theme.ID, posts); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "saving generated posts")
	}

	theme.Posts = posts
	theme.UpdatedAt = s.now()
	return theme, nil
}

// buildPosts runs the per-unit pipeline. Each unit falls back independently,
// so the batch always reaches full size. The callback runs after every unit;
// returning false stops production before the next unit's provider calls.
func (s *service) buildPosts(ctx context.Context, theme *models.Theme, brandName string, each func(int, models.Post) bool) ([]models.Post, bool) {
	applyThemeDefaults(theme)

	params := theme.Params()
	basePrompt := buildImagePrompt(theme.Mood, theme.Colors, theme.Imagery, brandName)

	posts := make([]models.Post, 0, theme.PostsCount)
	for i := 0; i < theme.PostsCount; i++ {
		caption, hashtags := s.captions.Generate(ctx, params, brandName)

		filename := fmt.Sprintf("%s_%s.png", theme.ID, uuid.NewString())
		imageURL := s.images.Generate(ctx, withVariation(basePrompt, i), s.postFolder, filename, i)

		post := assemblePost(theme.ID, i, imageURL, caption, hashtags)
		posts = append(posts, post)

		if each != nil && !each(i, post) {
			return posts, false
		}
	}
	return posts, true
}

func (s *service) savePosts(ctx context.Context, themeID string, posts []models.Post) error {
	return s.themes.Update(ctx, themeID, map[string]any{
		"posts":      posts,
		"updated_at": s.now(),
	})
}

func (s *service) brandNameFor(ctx context.Context, brandID string) string {
	brand, err := s.brands.FindByID(ctx, brandID)
	if err != nil || brand == nil || brand.Name == "" {
		return fallbackBrandName
	}
	return brand.Name
}

func (s *service) ownedBrandForStream(ctx context.Context, userID, brandID string, sink Sink) (*models.Brand, bool) {
	brand, err := s.brands.FindByID(ctx, brandID)
	if err != nil {
		if errors.Is(err, firestore.ErrNotFound) {
			s.emit(ctx, sink, errorEvent("brand not found"))
		} else {
			if s.logg != nil {
				s.logg.Error(ctx, "generation.brand.load_failed", err)
			}
			s.emit(ctx, sink, errorEvent("failed to load brand"))
		}
		return nil, false
	}
	if brand.UserID != userID {
		s.emit(ctx, sink, errorEvent("not authorized"))
		return nil, false
	}
	return brand, true
}

func (s *service) ownedTheme(ctx context.Context, userID, themeID string) (*models.Theme, error) {
	theme, err := s.themes.FindByID(ctx, themeID)
	if err != nil {
		if errors.Is(err, firestore.ErrNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "theme not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading theme")
	}
	if theme.UserID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "not authorized to access this theme")
	}
	return theme, nil
}

func (s *service) emit(ctx context.Context, sink Sink, event Event) bool {
	if err := sink.Emit(ctx, event); err != nil {
		if s.logg != nil {
			s.logg.Warn(ctx, "generation.stream.consumer_gone")
		}
		return false
	}
	return true
}

// streamMessage maps service errors onto the wire error message.
func streamMessage(err error) string {
	if typed := pkgerrors.As(err); typed != nil {
		switch typed.Code() {
		case pkgerrors.CodeNotFound:
			return typed.Message()
		case pkgerrors.CodeForbidden:
			return "not authorized"
		}
	}
	return "generation failed"
}

func applyThemeDefaults(theme *models.Theme) {
	if theme.Name == "" {
		theme.Name = "Untitled Theme"
	}
	if theme.PostsCount <= 0 {
		theme.PostsCount = defaultPostsCount
	}
	if theme.Mood == "" {
		theme.Mood = "Professional"
	}
	if len(theme.Colors) == 0 {
		theme.Colors = append([]string(nil), defaultPalette...)
	}
	if theme.Imagery == "" {
		theme.Imagery = "Product-focused"
	}
	if theme.Tone == "" {
		theme.Tone = "Professional"
	}
	if theme.CaptionLength == "" {
		theme.CaptionLength = "medium"
	}
}
