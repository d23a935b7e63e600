package report

import (
	"encoding/json"
	"net/http"

	"github.com/de-tools/storage-audit/pkg/adapters"
	"github.com/de-tools/storage-audit/pkg/runtime/terminal/export"
	"github.com/de-tools/storage-audit/pkg/services/audit"
	"github.com/rs/zerolog"
)

// Handler serves audit results over HTTP. Every request triggers a fresh
// audit run; the tool keeps no state between runs.
type Handler struct {
	runner audit.Runner
}

func NewHandler(runner audit.Runner) *Handler {
	return &Handler{runner: runner}
}

func (h *Handler) GetReportHTML(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	result, err := h.runner.Run(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("audit run failed")
		http.Error(w, "audit failed: "+err.Error(), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := export.NewReporter(w).Handle(result); err != nil {
		logger.Error().Err(err).Msg("failed to render report")
	}
}

func (h *Handler) GetReportJSON(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	result, err := h.runner.Run(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("audit run failed")
		http.Error(w, "audit failed: "+err.Error(), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(adapters.MapAuditReportDomainToApi(result)); err != nil {
		logger.Error().Err(err).Msg("failed to encode report")
	}
}
