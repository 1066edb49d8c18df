package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"text/template"

	"jobprep/api/internal/config"
)

func loadedPrompts() *mockPromptManager {
	return &mockPromptManager{templates: map[string]map[string]*template.Template{
		"interviewer": {"start": template.Must(template.New("start").Parse("ask"))},
	}}
}

func TestHealthzHandler(t *testing.T) {
	h := NewHealthHandler(nil, nil, nil, nil)
	rec := serve(http.HandlerFunc(h.HealthzHandler), request(http.MethodGet, "/healthz", nil, nil, nil))
	expectStatus(t, rec, http.StatusOK)

	body := decode[map[string]string](t, rec)
	if body["status"] != "ok" || body["service"] != "jobprep-api" {
		t.Fatalf("unexpected body %v", body)
	}
}

func TestReadyzHandler(t *testing.T) {
	okPing := func(context.Context) error { return nil }

	tests := []struct {
		name   string
		h      *HealthHandler
		status int
		failed string
	}{
		{
			name:   "all dependencies up",
			h:      NewHealthHandler(mockProvider{}, loadedPrompts(), &config.Config{}, map[string]PingFunc{"postgres": okPing, "mongo": okPing}),
			status: http.StatusOK,
		},
		{
			name:   "no provider",
			h:      NewHealthHandler(nil, loadedPrompts(), &config.Config{}, nil),
			status: http.StatusServiceUnavailable,
			failed: "provider",
		},
		{
			name:   "no templates",
			h:      NewHealthHandler(mockProvider{}, &mockPromptManager{}, &config.Config{}, nil),
			status: http.StatusServiceUnavailable,
			failed: "prompt_manager",
		},
		{
			name:   "no config",
			h:      NewHealthHandler(mockProvider{}, loadedPrompts(), nil, nil),
			status: http.StatusServiceUnavailable,
			failed: "configuration",
		},
		{
			name: "store unreachable",
			h: NewHealthHandler(mockProvider{}, loadedPrompts(), &config.Config{}, map[string]PingFunc{
				"postgres": okPing,
				"mongo":    func(context.Context) error { return errors.New("server selection timeout") },
			}),
			status: http.StatusServiceUnavailable,
			failed: "mongo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(http.HandlerFunc(tt.h.ReadyzHandler), request(http.MethodGet, "/readyz", nil, nil, nil))
			expectStatus(t, rec, tt.status)

			resp := decode[ReadinessResponse](t, rec)
			if tt.failed == "" {
				if resp.Status != "ready" {
					t.Fatalf("expected ready, got %+v", resp)
				}
				return
			}
			if resp.Status != "not_ready" || resp.Checks[tt.failed].Status != "failed" {
				t.Fatalf("expected %s to fail, got %+v", tt.failed, resp)
			}
		})
	}
}
