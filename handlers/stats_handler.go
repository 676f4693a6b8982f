package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"ecoTrackAPI/services"
)

type StatsHandler struct {
	statsService *services.StatsService
}

func NewStatsHandler(statsService *services.StatsService) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
	}
}

func (h *StatsHandler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	stats, err := h.statsService.GetStatistics(ctx)
	if err != nil {
		log.Printf("GetStatistics Handler: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch statistics")
		return
	}

	respondWithJSON(w, http.StatusOK, stats)
}
