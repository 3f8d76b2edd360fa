package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iho/ledgersync/internal/adapter/http/handler"
	apimiddleware "github.com/iho/ledgersync/internal/adapter/http/middleware"
	"github.com/iho/ledgersync/internal/domain"
	"github.com/iho/ledgersync/internal/usecase"
)

func TestNewRouter_HealthEndpointAvailable(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected /health to return 200, got %d", rec.Code)
	}
}

func TestNewRouter_TriggerRunsSync(t *testing.T) {
	svc := &stubSyncService{}
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.SyncHandler = handler.NewSyncHandler(svc, stubPlanService{}, &stubView{}, zerolog.Nop())
	}))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/sync", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.runs != 1 {
		t.Fatalf("expected one sync run, got %d", svc.runs)
	}
}

func TestNewRouter_ExposesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.HTTPMetrics = apimiddleware.NewHTTPMetrics(reg)
		cfg.MetricsHandler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
	}))

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected /metrics to return 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `http_requests_total{method="GET",path="/health",status="200"} 1`) {
		t.Fatalf("expected health request to be counted, got:\n%s", rec.Body.String())
	}
}

func TestNewRouter_RegistersKeyRoutes(t *testing.T) {
	router := NewRouter(newRouterConfig())

	chiRoutes, ok := router.(chi.Router)
	if !ok {
		t.Fatal("router does not implement chi.Routes")
	}

	seen := map[string]bool{}
	if err := chi.Walk(chiRoutes, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		seen[method+" "+route] = true
		return nil
	}); err != nil {
		t.Fatalf("walk failed: %v", err)
	}

	expected := []string{
		"GET /health",
		"GET /ready",
		"POST /api/v1/sync",
		"GET /api/v1/runs",
		"GET /api/v1/plan",
		"GET /api/v1/restricted-view/",
		"PUT /api/v1/restricted-view/",
	}

	for _, route := range expected {
		if !seen[route] {
			t.Fatalf("expected route %s to be registered", route)
		}
	}
	if seen["GET /metrics"] {
		t.Fatalf("expected /metrics to stay unmounted without a handler")
	}
}

func newRouterConfig(opts ...func(*RouterConfig)) RouterConfig {
	cfg := RouterConfig{
		SyncHandler:   handler.NewSyncHandler(&stubSyncService{}, stubPlanService{}, &stubView{}, zerolog.Nop()),
		HealthHandler: handler.NewHealthHandler(),
		Logger:        zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

type stubSyncService struct {
	runs int
}

func (s *stubSyncService) Run(ctx context.Context) (*domain.SyncRun, error) {
	s.runs++
	return &domain.SyncRun{ID: "run", Status: domain.SyncStatusNothingToSync}, nil
}

func (s *stubSyncService) RecentRuns(ctx context.Context, limit int) ([]*domain.SyncRun, error) {
	return nil, nil
}

type stubPlanService struct{}

func (stubPlanService) GenerateReconciliationReport(ctx context.Context) (*usecase.ReconciliationReport, error) {
	return &usecase.ReconciliationReport{}, nil
}

type stubView struct{}

func (*stubView) IsRestrictedView(ctx context.Context) (bool, error) { return false, nil }
func (*stubView) SetRestrictedView(ctx context.Context, enabled bool) error { return nil }
