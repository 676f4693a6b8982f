package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"ecoTrackAPI/internal/repository"
	"ecoTrackAPI/internal/types/challenge"
	"ecoTrackAPI/services"
)

type ChallengeHandler struct {
	challengeService *services.ChallengeService
}

func NewChallengeHandler(challengeService *services.ChallengeService) *ChallengeHandler {
	return &ChallengeHandler{
		challengeService: challengeService,
	}
}

func (h *ChallengeHandler) ListChallenges(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	q := parseListQuery(r)

	result, err := h.challengeService.ListChallenges(ctx, q)
	if err != nil {
		log.Printf("ListChallenges Handler: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch challenges")
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

func (h *ChallengeHandler) GetActiveChallenges(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	challenges, err := h.challengeService.GetActiveChallenges(ctx)
	if err != nil {
		log.Printf("GetActiveChallenges Handler: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch active challenges")
		return
	}

	respondWithJSON(w, http.StatusOK, challenges)
}

func (h *ChallengeHandler) GetChallengeByID(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	id := mux.Vars(r)["id"]

	c, err := h.challengeService.GetChallengeByID(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			respondWithError(w, http.StatusNotFound, "Challenge not found")
		case errors.Is(err, repository.ErrInvalidID):
			respondWithError(w, http.StatusBadRequest, "Invalid challenge id")
		default:
			log.Printf("GetChallengeByID Handler: %v", err)
			respondWithError(w, http.StatusInternalServerError, "Failed to fetch challenge")
		}
		return
	}

	respondWithJSON(w, http.StatusOK, c)
}

func (h *ChallengeHandler) AddChallenge(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var req challenge.CreateChallengeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	id, err := h.challengeService.AddChallenge(ctx, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingFields), errors.Is(err, services.ErrDuplicateChallenge):
			respondWithError(w, http.StatusBadRequest, err.Error())
		default:
			log.Printf("AddChallenge Handler: %v", err)
			respondWithError(w, http.StatusInternalServerError, "Failed to add challenge")
		}
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]string{
		"message": "Challenge added successfully",
		"id":      id,
	})
}

// parseListQuery reads the catalog's optional query parameters. Out-of-range
// or unparsable values fall back to "no filter" rather than erroring.
func parseListQuery(r *http.Request) challenge.ListQuery {
	q := challenge.ListQuery{Page: 1}
	params := r.URL.Query()

	if category := params.Get("category"); category != "" {
		for _, c := range strings.Split(category, ",") {
			if c = strings.TrimSpace(c); c != "" {
				q.Categories = append(q.Categories, c)
			}
		}
	}

	q.StartDateFrom = params.Get("startDate")
	q.StartDateTo = params.Get("endDate")
	q.Search = params.Get("search")
	q.SortBy = params.Get("sortBy")
	q.SortOrder = params.Get("order")

	if v, err := strconv.Atoi(params.Get("minParticipants")); err == nil {
		q.MinParticipants = &v
	}
	if v, err := strconv.Atoi(params.Get("maxParticipants")); err == nil {
		q.MaxParticipants = &v
	}
	if page, err := strconv.Atoi(params.Get("page")); err == nil && page > 0 {
		q.Page = page
	}

	return q
}

// Helper functions
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "Internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}
