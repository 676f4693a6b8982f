package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"ecoTrackAPI/internal/types/user"
	"ecoTrackAPI/services"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

func (h *UserHandler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var req user.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	u, created, err := h.userService.RegisterUser(ctx, &req)
	if err != nil {
		if errors.Is(err, services.ErrMissingEmail) {
			respondWithError(w, http.StatusBadRequest, "email is required")
			return
		}
		log.Printf("RegisterUser Handler: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to register user")
		return
	}

	if !created {
		respondWithJSON(w, http.StatusOK, map[string]interface{}{
			"message": "User already exists",
			"user":    u,
		})
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "User registered successfully",
		"user":    u,
	})
}
