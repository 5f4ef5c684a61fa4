package controllers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lucasrivero/brandforge-backend/api/responses"
	"github.com/lucasrivero/brandforge-backend/api/validators"
	"github.com/lucasrivero/brandforge-backend/internal/generation"
	pkgerrors "github.com/lucasrivero/brandforge-backend/pkg/errors"
	"github.com/lucasrivero/brandforge-backend/pkg/logger"
)

// generationSink adapts the SSE writer to the pipeline's event sink.
type generationSink struct {
	writer *responses.SSEWriter
}

func (s generationSink) Emit(ctx context.Context, event generation.Event) error {
	return s.writer.Send(ctx, event)
}

// AutoGenerateThemesStream streams AI-generated theme options for a brand.
// EventSource cannot send headers, so the caller identity arrives as a
// user_id query parameter.
func AutoGenerateThemesStream(svc generation.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		brandID, err := validators.RequireQuery(r, "brand_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		userID, err := validators.RequireQuery(r, "user_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		writer, err := responses.NewSSEWriter(w)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithBrandID(logg.WithUserID(ctx, userID), brandID)
		}

		svc.AutoGenerateThemes(ctx, userID, brandID, generationSink{writer})
	}
}

// RegenerateImagesStream streams image variations for caller-supplied theme
// parameters. The colors parameter is a JSON-encoded string array.
func RegenerateImagesStream(svc generation.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input generation.RegenerateInput
		var userID, rawColors string

		for _, param := range []struct {
			key  string
			dest *string
		}{
			{"brand_id", &input.BrandID},
			{"user_id", &userID},
			{"name", &input.Name},
			{"mood", &input.Mood},
			{"colors", &rawColors},
			{"imagery", &input.Imagery},
			{"tone", &input.Tone},
			{"caption_length", &input.CaptionLength},
		} {
			value, err := validators.RequireQuery(r, param.key)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			*param.dest = value
		}

		if err := json.Unmarshal([]byte(rawColors), &input.Colors); err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, "colors must be a JSON string array"))
			return
		}

		input.UseEmojis = validators.ParseQueryBool(r, "use_emojis", false)
		input.UseHashtags = validators.ParseQueryBool(r, "use_hashtags", false)

		writer, err := responses.NewSSEWriter(w)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithBrandID(logg.WithUserID(ctx, userID), input.BrandID)
		}

		svc.RegenerateImages(ctx, userID, input, generationSink{writer})
	}
}

// GeneratePostsStream streams a theme's generated posts one by one.
func GeneratePostsStream(svc generation.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		themeID := chi.URLParam(r, "themeId")
		userID, err := validators.RequireQuery(r, "user_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		writer, err := responses.NewSSEWriter(w)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithThemeID(logg.WithUserID(ctx, userID), themeID)
		}

		svc.StreamPosts(ctx, userID, themeID, generationSink{writer})
	}
}

// GeneratePosts generates and persists a theme's posts synchronously,
// returning the updated theme.
func GeneratePosts(svc generation.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUser(w, r, logg)
		if !ok {
			return
		}

		theme, err := svc.GeneratePosts(r.Context(), userID, chi.URLParam(r, "themeId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, theme)
	}
}
