package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/PoojanJaviya/chess-pairing/models"
	"github.com/PoojanJaviya/chess-pairing/services"
	"github.com/go-chi/chi/v5"
)

type MatchHandler struct {
	matchService services.MatchService
}

func NewMatchHandler(matchService services.MatchService) *MatchHandler {
	return &MatchHandler{matchService: matchService}
}

func (h *MatchHandler) RecordResult(w http.ResponseWriter, r *http.Request) {
	tableNo, err := strconv.Atoi(chi.URLParam(r, "tableNo"))
	if err != nil {
		badRequestResponse(w, r, fmt.Errorf("invalid table number: %w", err))
		return
	}

	var input struct {
		Result models.MatchResult `json:"result"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.matchService.RecordResult(r.Context(), tableNo, input.Result)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
