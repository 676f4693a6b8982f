package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"ecoTrackAPI/internal/repository"
	"ecoTrackAPI/internal/types/participation"
	"ecoTrackAPI/middleware"
	"ecoTrackAPI/services"
)

type ParticipationHandler struct {
	participationService *services.ParticipationService
}

func NewParticipationHandler(participationService *services.ParticipationService) *ParticipationHandler {
	return &ParticipationHandler{
		participationService: participationService,
	}
}

func (h *ParticipationHandler) JoinChallenge(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	challengeID := mux.Vars(r)["id"]

	var body struct {
		UserID string `json:"userId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.participationService.JoinChallenge(ctx, body.UserID, challengeID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingUserID):
			respondWithError(w, http.StatusBadRequest, "userId is required")
		case errors.Is(err, repository.ErrInvalidID):
			respondWithError(w, http.StatusBadRequest, "Invalid challenge id")
		default:
			log.Printf("JoinChallenge Handler: %v", err)
			respondWithError(w, http.StatusInternalServerError, "Failed to join challenge")
		}
		return
	}

	message := "Already joined this challenge"
	if result.Joined {
		message = "Joined challenge successfully"
		middleware.CountChallengeJoin("joined")
	} else {
		middleware.CountChallengeJoin("already_joined")
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": message})
}

func (h *ParticipationHandler) UpdateProgress(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	id := mux.Vars(r)["id"]

	var upd participation.ProgressUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if _, err := h.participationService.UpdateProgress(ctx, id, upd); err != nil {
		respondParticipationError(w, err, "Failed to update progress")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Progress updated successfully"})
}

// TrackProgress is the record-returning update variant.
func (h *ParticipationHandler) TrackProgress(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	id := mux.Vars(r)["id"]

	var body struct {
		Progress interface{} `json:"progress"`
		Status   string      `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	progress := coerceFloat(body.Progress)

	rec, err := h.participationService.TrackProgress(ctx, id, progress, body.Status)
	if err != nil {
		respondParticipationError(w, err, "Failed to update progress")
		return
	}

	respondWithJSON(w, http.StatusOK, rec)
}

func (h *ParticipationHandler) ListUserChallenges(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID := mux.Vars(r)["userId"]

	records, err := h.participationService.ListUserChallenges(ctx, userID)
	if err != nil {
		log.Printf("ListUserChallenges Handler: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch user challenges")
		return
	}

	respondWithJSON(w, http.StatusOK, records)
}

func (h *ParticipationHandler) GetUserChallengeDetail(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	id := mux.Vars(r)["id"]

	rec, err := h.participationService.GetUserChallengeDetail(ctx, id)
	if err != nil {
		respondParticipationError(w, err, "Failed to fetch user challenge")
		return
	}

	respondWithJSON(w, http.StatusOK, rec)
}

func (h *ParticipationHandler) ListUserActivities(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	email := mux.Vars(r)["email"]

	activities, err := h.participationService.ListUserActivities(ctx, email)
	if err != nil {
		log.Printf("ListUserActivities Handler: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch activities")
		return
	}

	respondWithJSON(w, http.StatusOK, activities)
}

// coerceFloat accepts progress as a number or a numeric string; anything
// else counts as zero.
func coerceFloat(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

func respondParticipationError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		respondWithError(w, http.StatusNotFound, "User challenge not found")
	case errors.Is(err, repository.ErrInvalidID):
		respondWithError(w, http.StatusBadRequest, "Invalid user challenge id")
	default:
		log.Printf("Participation Handler: %v", err)
		respondWithError(w, http.StatusInternalServerError, fallback)
	}
}
