package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lucasrivero/brandforge-backend/internal/brands"
	"github.com/lucasrivero/brandforge-backend/internal/generation"
	"github.com/lucasrivero/brandforge-backend/internal/llm"
	"github.com/lucasrivero/brandforge-backend/internal/themes"
	"github.com/lucasrivero/brandforge-backend/pkg/config"
	"github.com/lucasrivero/brandforge-backend/pkg/logger"
	"github.com/lucasrivero/brandforge-backend/pkg/models"
)

type stubBrandsService struct{}

func (stubBrandsService) Create(context.Context, string, brands.CreateInput) (*models.Brand, error) {
	return &models.Brand{ID: "b1"}, nil
}
func (stubBrandsService) List(context.Context, string) ([]models.Brand, error) {
	return []models.Brand{}, nil
}
func (stubBrandsService) Get(context.Context, string, string) (*models.Brand, error) {
	return &models.Brand{ID: "b1"}, nil
}
func (stubBrandsService) Update(context.Context, string, string, brands.UpdateInput) (*models.Brand, error) {
	return &models.Brand{ID: "b1"}, nil
}
func (stubBrandsService) Delete(context.Context, string, string) error { return nil }

type stubThemesService struct{}

func (stubThemesService) Create(context.Context, string, themes.CreateInput) (*models.Theme, error) {
	return &models.Theme{ID: "t1"}, nil
}
func (stubThemesService) List(context.Context, string, string) ([]models.Theme, error) {
	return []models.Theme{}, nil
}
func (stubThemesService) Get(context.Context, string, string) (*models.Theme, error) {
	return &models.Theme{ID: "t1"}, nil
}
func (stubThemesService) Update(context.Context, string, string, themes.UpdateInput) (*models.Theme, error) {
	return &models.Theme{ID: "t1"}, nil
}
func (stubThemesService) Delete(context.Context, string, string) error { return nil }

type stubGenerationService struct{}

func (stubGenerationService) AutoGenerateThemes(ctx context.Context, _, _ string, sink generation.Sink) {
	_ = sink.Emit(ctx, generation.Event{Type: generation.EventComplete, TotalOptions: 5})
}
func (stubGenerationService) RegenerateImages(ctx context.Context, _ string, _ generation.RegenerateInput, sink generation.Sink) {
	_ = sink.Emit(ctx, generation.Event{Type: generation.EventComplete, TotalOptions: 5})
}
func (stubGenerationService) StreamPosts(ctx context.Context, _, _ string, sink generation.Sink) {
	_ = sink.Emit(ctx, generation.Event{Type: generation.EventComplete, TotalPosts: 3})
}
func (stubGenerationService) GeneratePosts(context.Context, string, string) (*models.Theme, error) {
	return &models.Theme{ID: "t1"}, nil
}

type stubLLMService struct{}

func (stubLLMService) Chat(context.Context, llm.ChatInput) (*llm.ChatOutput, error) {
	return &llm.ChatOutput{Response: "ok"}, nil
}

func newTestRouter() http.Handler {
	cfg := &config.Config{}
	cfg.App.Env = "dev"
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})

	return NewRouter(
		cfg,
		logg,
		nil,
		nil,
		nil,
		stubBrandsService{},
		stubThemesService{},
		stubGenerationService{},
		stubLLMService{},
	)
}

func TestRouterHealthLive(t *testing.T) {
	router := newTestRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from /health/live, got %d", rec.Code)
	}
}

func TestRouterMetricsExposed(t *testing.T) {
	router := newTestRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from /metrics, got %d", rec.Code)
	}
}

func TestRouterRequiresUserHeader(t *testing.T) {
	router := newTestRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/brands/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without X-User-ID, got %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/brands/", nil)
	req.Header.Set("X-User-ID", "user-1")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with X-User-ID, got %d", rec.Code)
	}
}

func TestRouterStreamRoutesSkipHeaderAuth(t *testing.T) {
	router := newTestRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/themes/auto-generate-stream?brand_id=b1&user_id=u1", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from stream route without header auth, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("expected event-stream response, got %q", ct)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/themes/t1/generate-posts-stream", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without user_id, got %d", rec.Code)
	}
}
