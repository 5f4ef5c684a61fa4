package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/lucasrivero/brandforge-backend/api/responses"
	"github.com/lucasrivero/brandforge-backend/api/validators"
	"github.com/lucasrivero/brandforge-backend/internal/themes"
	"github.com/lucasrivero/brandforge-backend/pkg/logger"
)

// CreateTheme saves a theme against one of the caller's brands.
func CreateTheme(svc themes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUser(w, r, logg)
		if !ok {
			return
		}

		var payload themes.CreateInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		theme, err := svc.Create(r.Context(), userID, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, theme)
	}
}

// ListThemes returns the caller's themes, optionally filtered by brand_id.
func ListThemes(svc themes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUser(w, r, logg)
		if !ok {
			return
		}

		brandID := strings.TrimSpace(r.URL.Query().Get("brand_id"))

		list, err := svc.List(r.Context(), userID, brandID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}

// GetTheme returns one theme, enforcing ownership.
func GetTheme(svc themes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUser(w, r, logg)
		if !ok {
			return
		}

		theme, err := svc.Get(r.Context(), userID, chi.URLParam(r, "themeId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, theme)
	}
}

// UpdateTheme applies a partial update to a theme.
func UpdateTheme(svc themes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUser(w, r, logg)
		if !ok {
			return
		}

		var payload themes.UpdateInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		theme, err := svc.Update(r.Context(), userID, chi.URLParam(r, "themeId"), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, theme)
	}
}

// DeleteTheme removes a theme owned by the caller.
func DeleteTheme(svc themes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUser(w, r, logg)
		if !ok {
			return
		}

		if err := svc.Delete(r.Context(), userID, chi.URLParam(r, "themeId")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"message": "theme deleted successfully"})
	}
}
