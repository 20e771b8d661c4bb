package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/diagnosis/hbnb-listings/internal/domain"
	"github.com/diagnosis/hbnb-listings/internal/http/response"
)

// RegisterUser handles public self-registration. The admin flag in the
// payload is rejected by the facade for unauthenticated callers.
func (h *Handlers) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON format")
		return
	}

	info, err := h.facade.CreateUser(r.Context(), &req, false)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.WriteJSON(w, http.StatusCreated, info)
}

// AdminCreateUser creates a user on behalf of an admin, allowing
// is_admin to be set.
func (h *Handlers) AdminCreateUser(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON format")
		return
	}

	info, err := h.facade.CreateUser(r.Context(), &req, actor(r).IsAdmin)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.WriteJSON(w, http.StatusCreated, info)
}

func (h *Handlers) GetUser(w http.ResponseWriter, r *http.Request) {
	info, err := h.facade.GetUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, info)
}

// ListUsers returns all users, or a single-user lookup with ?email=.
func (h *Handlers) ListUsers(w http.ResponseWriter, r *http.Request) {
	if email := r.URL.Query().Get("email"); email != "" {
		info, err := h.facade.GetUserByEmail(r.Context(), email)
		if err != nil {
			response.Error(w, err)
			return
		}
		response.WriteJSON(w, http.StatusOK, info)
		return
	}

	limit, offset := parsePagination(r)
	infos, err := h.facade.ListUsers(r.Context(), limit, offset)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, infos)
}

func (h *Handlers) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	requester := actor(r)
	if !requester.CanManage(id) {
		response.Forbidden(w, "not allowed to modify this user")
		return
	}

	var req domain.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON format")
		return
	}

	info, err := h.facade.UpdateUser(r.Context(), id, &req, requester.IsAdmin)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, info)
}

func (h *Handlers) DeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.facade.DeleteUser(r.Context(), chi.URLParam(r, "id"), actor(r)); err != nil {
		response.Error(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
