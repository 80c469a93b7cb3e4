package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/taskdeck/internal/application/profile"
	"github.com/amirhosseinghanipour/taskdeck/internal/domain"
	domerrors "github.com/amirhosseinghanipour/taskdeck/internal/domain/errors"
)

type ProfileHandler struct {
	get    *profile.GetProfile
	update *profile.UpdateProfile
	log    zerolog.Logger
}

func NewProfileHandler(get *profile.GetProfile, update *profile.UpdateProfile, log zerolog.Logger) *ProfileHandler {
	return &ProfileHandler{get: get, update: update, log: log}
}

type profileResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Bio       string    `json:"bio,omitempty"`
	Avatar    string    `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func toProfileResponse(u *domain.User) profileResponse {
	return profileResponse{
		ID:        u.ID.Hex(),
		Name:      u.Name,
		Email:     u.Email,
		Bio:       u.Bio,
		Avatar:    u.Avatar,
		CreatedAt: u.CreatedAt,
	}
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}
	result, err := h.get.Execute(r.Context(), profile.GetProfileInput{UserID: userID})
	if err != nil {
		if errors.Is(err, domerrors.ErrUserNotFound) {
			writeErr(w, http.StatusNotFound, "User not found")
			return
		}
		h.log.Error().Err(err).Msg("fetch profile failed")
		writeErr(w, http.StatusInternalServerError, "Failed to fetch profile")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"profile": toProfileResponse(result.User),
	})
}

func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}
	var body struct {
		Name   *string `json:"name"`
		Bio    *string `json:"bio"`
		Avatar *string `json:"avatar"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if body.Name != nil {
		trimmed := SanitizeName(*body.Name)
		body.Name = &trimmed
	}

	result, err := h.update.Execute(r.Context(), profile.UpdateProfileInput{
		UserID: userID,
		Name:   body.Name,
		Bio:    body.Bio,
		Avatar: body.Avatar,
	})
	if err != nil {
		if errors.Is(err, domerrors.ErrUserNotFound) {
			writeErr(w, http.StatusNotFound, "User not found")
			return
		}
		h.log.Error().Err(err).Msg("update profile failed")
		writeErr(w, http.StatusInternalServerError, "Failed to update profile")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"profile": toProfileResponse(result.User),
	})
}
