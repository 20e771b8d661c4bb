package handlers

import (
	"net/http"
	"strconv"

	"github.com/diagnosis/hbnb-listings/internal/domain"
	"github.com/diagnosis/hbnb-listings/internal/http/middleware"
	"github.com/diagnosis/hbnb-listings/internal/service"
	"github.com/diagnosis/hbnb-listings/pkg/config"
)

type Handlers struct {
	facade *service.Facade
	config *config.Config
}

func New(facade *service.Facade, cfg *config.Config) *Handlers {
	return &Handlers{facade: facade, config: cfg}
}

// actor resolves the authenticated caller from JWT claims; the zero
// Actor means unauthenticated.
func actor(r *http.Request) domain.Actor {
	claims := middleware.Claims(r)
	if claims == nil {
		return domain.Actor{}
	}
	return domain.Actor{ID: claims.Sub, IsAdmin: claims.IsAdmin}
}

func parsePagination(r *http.Request) (limit, offset int) {
	limit = 20
	offset = 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	if raw := r.URL.Query().Get("offset"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
			offset = n
		}
	}
	return limit, offset
}
