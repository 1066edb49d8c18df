package handlers

import (
	"context"
	"net/http"
	"time"

	"jobprep/api/internal/config"
	"jobprep/api/internal/llm"
	"jobprep/api/internal/prompts"
	"jobprep/api/internal/utils"
)

const serviceName = "jobprep-api"

// PingFunc reports whether a backing store is reachable.
type PingFunc func(ctx context.Context) error

type ReadinessCheck struct {
	Status  string `json:"status"` // "ok" | "failed"
	Message string `json:"message,omitempty"`
}

type ReadinessResponse struct {
	Status  string                    `json:"status"` // "ready" | "not_ready"
	Service string                    `json:"service"`
	Checks  map[string]ReadinessCheck `json:"checks"`
}

type HealthHandler struct {
	provider      llm.Provider
	promptManager prompts.PromptProvider
	config        *config.Config
	stores        map[string]PingFunc
	pingTimeout   time.Duration
}

func NewHealthHandler(provider llm.Provider, promptManager prompts.PromptProvider, cfg *config.Config, stores map[string]PingFunc) *HealthHandler {
	return &HealthHandler{
		provider:      provider,
		promptManager: promptManager,
		config:        cfg,
		stores:        stores,
		pingTimeout:   2 * time.Second,
	}
}

func (handler *HealthHandler) HealthzHandler(writer http.ResponseWriter, request *http.Request) {
	utils.JSON(writer, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": serviceName,
	})
}

func (handler *HealthHandler) ReadyzHandler(writer http.ResponseWriter, request *http.Request) {
	checks := make(map[string]ReadinessCheck)
	allChecksPass := true

	record := func(name string, failure string) {
		if failure != "" {
			checks[name] = ReadinessCheck{Status: "failed", Message: failure}
			allChecksPass = false
			return
		}
		checks[name] = ReadinessCheck{Status: "ok"}
	}

	if handler.provider == nil {
		record("provider", "AI provider not initialized")
	} else {
		record("provider", "")
	}

	switch {
	case handler.promptManager == nil:
		record("prompt_manager", "Prompt manager not initialized")
	case len(handler.promptManager.GetTemplates()) == 0:
		record("prompt_manager", "No prompt templates loaded")
	default:
		record("prompt_manager", "")
	}

	if handler.config == nil {
		record("configuration", "Configuration not loaded")
	} else {
		record("configuration", "")
	}

	for name, ping := range handler.stores {
		ctx, cancel := context.WithTimeout(request.Context(), handler.pingTimeout)
		err := ping(ctx)
		cancel()
		if err != nil {
			record(name, err.Error())
		} else {
			record(name, "")
		}
	}

	response := ReadinessResponse{Service: serviceName, Checks: checks}
	if allChecksPass {
		response.Status = "ready"
		utils.JSON(writer, http.StatusOK, response)
	} else {
		response.Status = "not_ready"
		utils.JSON(writer, http.StatusServiceUnavailable, response)
	}
}
