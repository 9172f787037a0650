package handlers

import (
	"bytes"
	"log/slog"
	"net/http"

	"github.com/PoojanJaviya/chess-pairing/services"
)

type StandingsHandler struct {
	standingsService services.StandingsService
}

func NewStandingsHandler(standingsService services.StandingsService) *StandingsHandler {
	return &StandingsHandler{standingsService: standingsService}
}

func (h *StandingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	standings, err := h.standingsService.Compute(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"standings": standings}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *StandingsHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	// Render into memory first so an error can still produce a clean
	// error response instead of a truncated download.
	var buf bytes.Buffer
	if err := h.standingsService.WriteCSV(r.Context(), &buf); err != nil {
		serverErrorResponse(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="standings.csv"`)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("failed to write CSV response", slog.Any("error", err))
	}
}
