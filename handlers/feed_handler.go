package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"ecoTrackAPI/services"
)

type FeedHandler struct {
	feedService *services.FeedService
}

func NewFeedHandler(feedService *services.FeedService) *FeedHandler {
	return &FeedHandler{
		feedService: feedService,
	}
}

func (h *FeedHandler) GetRecentTips(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	tips, err := h.feedService.GetRecentTips(ctx)
	if err != nil {
		log.Printf("GetRecentTips Handler: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch tips")
		return
	}

	respondWithJSON(w, http.StatusOK, tips)
}

func (h *FeedHandler) GetUpcomingEvents(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	events, err := h.feedService.GetUpcomingEvents(ctx)
	if err != nil {
		log.Printf("GetUpcomingEvents Handler: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch events")
		return
	}

	respondWithJSON(w, http.StatusOK, events)
}
