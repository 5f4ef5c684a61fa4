package controllers

import (
	"net/http"

	"github.com/lucasrivero/brandforge-backend/api/responses"
	"github.com/lucasrivero/brandforge-backend/api/validators"
	"github.com/lucasrivero/brandforge-backend/internal/llm"
	"github.com/lucasrivero/brandforge-backend/pkg/logger"
)

// LLMChat proxies a single chat message to the text provider.
func LLMChat(svc llm.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireUser(w, r, logg); !ok {
			return
		}

		var payload llm.ChatInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		out, err := svc.Chat(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, out)
	}
}
