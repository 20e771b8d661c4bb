package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/diagnosis/hbnb-listings/internal/domain"
	"github.com/diagnosis/hbnb-listings/internal/http/response"
	"github.com/diagnosis/hbnb-listings/pkg/auth"
)

// Login verifies credentials and issues an access token.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON format")
		return
	}

	user, err := h.facade.Authenticate(r.Context(), &req)
	if err != nil {
		// Failed credentials are a 401, not a 403.
		if domain.IsPermission(err) {
			response.Unauthorized(w, "invalid credentials")
			return
		}
		response.Error(w, err)
		return
	}

	ttl := h.config.Auth.AccessTokenTTL
	token, err := auth.NewAccessToken(user.ID, user.Email, user.IsAdmin, h.config.Auth.JWTSecret, ttl)
	if err != nil {
		response.Error(w, domain.Internalf(err, "failed to create access token"))
		return
	}

	response.WriteJSON(w, http.StatusOK, domain.LoginResponse{
		AccessToken: token,
		ExpiresIn:   int64(ttl.Seconds()),
		User:        user.ToUserInfo(),
	})
}
