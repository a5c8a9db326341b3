package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/LastWeekNextDay/CamMask-host/internal/services"

	"github.com/rs/zerolog/log"
)

// UserHandler handles user-related HTTP requests
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type createUserRequest struct {
	GoogleID string `json:"googleId"`
	Name     string `json:"name"`
	PhotoURL string `json:"photoUrl"`
}

// CreateUser handles POST /createUser
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondText(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.userService.CreateUser(r.Context(), req.GoogleID, req.Name, req.PhotoURL); err != nil {
		respondServiceError(w, "createUser", err)
		return
	}

	log.Info().Str("google_id", req.GoogleID).Msg("User created")
	respondText(w, http.StatusOK, "user created")
}

// GetUser handles GET /getUser. An unknown googleId yields 200 with an
// empty object, not a 404.
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	googleID := r.URL.Query().Get("googleId")

	user, err := h.userService.GetUser(r.Context(), googleID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			respondJSON(w, http.StatusOK, struct{}{})
			return
		}
		respondServiceError(w, "getUser", err)
		return
	}

	respondJSON(w, http.StatusOK, user)
}
