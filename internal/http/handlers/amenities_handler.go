package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/diagnosis/hbnb-listings/internal/domain"
	"github.com/diagnosis/hbnb-listings/internal/http/response"
)

func (h *Handlers) CreateAmenity(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateAmenityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON format")
		return
	}

	amenity, err := h.facade.CreateAmenity(r.Context(), &req, actor(r).IsAdmin)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.WriteJSON(w, http.StatusCreated, amenity)
}

func (h *Handlers) GetAmenity(w http.ResponseWriter, r *http.Request) {
	amenity, err := h.facade.GetAmenity(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, amenity)
}

func (h *Handlers) ListAmenities(w http.ResponseWriter, r *http.Request) {
	amenities, err := h.facade.ListAmenities(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, amenities)
}

func (h *Handlers) UpdateAmenity(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateAmenityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON format")
		return
	}

	amenity, err := h.facade.UpdateAmenity(r.Context(), chi.URLParam(r, "id"), &req, actor(r).IsAdmin)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, amenity)
}

func (h *Handlers) DeleteAmenity(w http.ResponseWriter, r *http.Request) {
	if err := h.facade.DeleteAmenity(r.Context(), chi.URLParam(r, "id"), actor(r).IsAdmin); err != nil {
		response.Error(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
