package handlers

import (
	"encoding/json"
	"math"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/diagnosis/hbnb-listings/internal/domain"
	"github.com/diagnosis/hbnb-listings/internal/http/response"
)

// CreatePlace creates a listing owned by the caller. Admins may create
// places on behalf of another owner.
func (h *Handlers) CreatePlace(w http.ResponseWriter, r *http.Request) {
	var req domain.CreatePlaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON format")
		return
	}

	requester := actor(r)
	if req.OwnerID == "" {
		req.OwnerID = requester.ID
	}
	if req.OwnerID != requester.ID && !requester.IsAdmin {
		response.Forbidden(w, "cannot create a place for another owner")
		return
	}

	place, err := h.facade.CreatePlace(r.Context(), &req)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.WriteJSON(w, http.StatusCreated, place)
}

func (h *Handlers) GetPlace(w http.ResponseWriter, r *http.Request) {
	place, err := h.facade.GetPlace(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, place)
}

// ListPlaces returns all places, optionally filtered with
// ?min_price=&max_price=.
func (h *Handlers) ListPlaces(w http.ResponseWriter, r *http.Request) {
	minRaw := r.URL.Query().Get("min_price")
	maxRaw := r.URL.Query().Get("max_price")
	if minRaw != "" || maxRaw != "" {
		// A missing bound defaults to an open end of the range.
		minPrice := 0.0
		maxPrice := math.MaxFloat64
		if minRaw != "" {
			v, err := strconv.ParseFloat(minRaw, 64)
			if err != nil {
				response.BadRequest(w, "invalid min_price parameter")
				return
			}
			minPrice = v
		}
		if maxRaw != "" {
			v, err := strconv.ParseFloat(maxRaw, 64)
			if err != nil {
				response.BadRequest(w, "invalid max_price parameter")
				return
			}
			maxPrice = v
		}
		places, err := h.facade.GetPlacesByPriceRange(r.Context(), minPrice, maxPrice)
		if err != nil {
			response.Error(w, err)
			return
		}
		response.WriteJSON(w, http.StatusOK, places)
		return
	}

	limit, offset := parsePagination(r)
	places, err := h.facade.ListPlaces(r.Context(), limit, offset)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, places)
}

func (h *Handlers) ListPlacesByOwner(w http.ResponseWriter, r *http.Request) {
	places, err := h.facade.ListPlacesByOwner(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, places)
}

func (h *Handlers) UpdatePlace(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdatePlaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON format")
		return
	}

	place, err := h.facade.UpdatePlace(r.Context(), chi.URLParam(r, "id"), &req, actor(r))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, place)
}

func (h *Handlers) DeletePlace(w http.ResponseWriter, r *http.Request) {
	if err := h.facade.DeletePlace(r.Context(), chi.URLParam(r, "id"), actor(r)); err != nil {
		response.Error(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
