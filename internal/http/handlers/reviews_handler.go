package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/diagnosis/hbnb-listings/internal/domain"
	"github.com/diagnosis/hbnb-listings/internal/http/response"
)

func (h *Handlers) CreateReview(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON format")
		return
	}

	requester := actor(r)
	if req.UserID == "" {
		req.UserID = requester.ID
	}

	review, err := h.facade.CreateReview(r.Context(), &req, requester)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.WriteJSON(w, http.StatusCreated, review)
}

func (h *Handlers) GetReview(w http.ResponseWriter, r *http.Request) {
	review, err := h.facade.GetReview(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, review)
}

func (h *Handlers) ListReviews(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)
	reviews, err := h.facade.ListReviews(r.Context(), limit, offset)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, reviews)
}

func (h *Handlers) GetReviewsByPlace(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.facade.GetReviewsByPlace(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, reviews)
}

func (h *Handlers) UpdateReview(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON format")
		return
	}

	review, err := h.facade.UpdateReview(r.Context(), chi.URLParam(r, "id"), &req, actor(r))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, review)
}

func (h *Handlers) DeleteReview(w http.ResponseWriter, r *http.Request) {
	if err := h.facade.DeleteReview(r.Context(), chi.URLParam(r, "id"), actor(r)); err != nil {
		response.Error(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
