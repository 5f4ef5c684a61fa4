package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lucasrivero/brandforge-backend/api/controllers"
	"github.com/lucasrivero/brandforge-backend/api/middleware"
	"github.com/lucasrivero/brandforge-backend/internal/brands"
	"github.com/lucasrivero/brandforge-backend/internal/generation"
	"github.com/lucasrivero/brandforge-backend/internal/llm"
	"github.com/lucasrivero/brandforge-backend/internal/themes"
	"github.com/lucasrivero/brandforge-backend/pkg/config"
	"github.com/lucasrivero/brandforge-backend/pkg/firestore"
	"github.com/lucasrivero/brandforge-backend/pkg/logger"
	"github.com/lucasrivero/brandforge-backend/pkg/redis"
	"github.com/lucasrivero/brandforge-backend/pkg/storage/gcs"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	docStore firestore.Pinger,
	blobStore gcs.Pinger,
	redisClient *redis.Client,
	brandsService brands.Service,
	themesService themes.Service,
	generationService generation.Service,
	llmService llm.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	genPolicy := middleware.NewGenerationRateLimitPolicy(
		"generation",
		cfg.GenLimit.Window,
		cfg.GenLimit.IPLimit,
		cfg.GenLimit.UserLimit,
	)
	genLimit := middleware.GenerationRateLimit(genPolicy, redisClient, logg)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, docStore, blobStore, redisClient))
	})

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// SSE endpoints sit outside the auth middleware: EventSource cannot set
	// headers, so identity travels in the user_id query parameter.
	r.Route("/api/v1/themes", func(r chi.Router) {
		r.With(genLimit).Get("/auto-generate-stream", controllers.AutoGenerateThemesStream(generationService, logg))
		r.With(genLimit).Get("/regenerate-images-stream", controllers.RegenerateImagesStream(generationService, logg))
		r.With(genLimit).Get("/{themeId}/generate-posts-stream", controllers.GeneratePostsStream(generationService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(logg))

			r.Post("/", controllers.CreateTheme(themesService, logg))
			r.Get("/", controllers.ListThemes(themesService, logg))
			r.Get("/{themeId}", controllers.GetTheme(themesService, logg))
			r.Put("/{themeId}", controllers.UpdateTheme(themesService, logg))
			r.Delete("/{themeId}", controllers.DeleteTheme(themesService, logg))
			r.With(genLimit).Post("/{themeId}/generate-posts", controllers.GeneratePosts(generationService, logg))
		})
	})

	r.Route("/api/v1/brands", func(r chi.Router) {
		r.Use(middleware.Auth(logg))

		r.Post("/", controllers.CreateBrand(brandsService, logg))
		r.Get("/", controllers.ListBrands(brandsService, logg))
		r.Get("/{brandId}", controllers.GetBrand(brandsService, logg))
		r.Put("/{brandId}", controllers.UpdateBrand(brandsService, logg))
		r.Delete("/{brandId}", controllers.DeleteBrand(brandsService, logg))
	})

	r.Route("/api/v1/llm", func(r chi.Router) {
		r.Use(middleware.Auth(logg))

		r.Post("/chat", controllers.LLMChat(llmService, logg))
	})

	return r
}
