package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/feyerinaGO/RestaurantVoting/internal/core/domain"
	"github.com/feyerinaGO/RestaurantVoting/internal/core/ports"
)

type ResultHandler struct {
	service ports.SummaryService
	clock   ports.Clock
}

func NewResultHandler(service ports.SummaryService, clock ports.Clock) *ResultHandler {
	return &ResultHandler{
		service: service,
		clock:   clock,
	}
}

// GetResults godoc
// @Summary      Lists materialized vote tallies per restaurant for a date
// @Tags         votes
// @Param        date  query  string  false  "date in YYYY-MM-DD"
// @Success      200
// @Router       /votes/results [get]
func (h *ResultHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	date := domain.DateOf(h.clock.Now())
	if raw := r.URL.Query().Get("date"); raw != "" {
		var err error
		date, err = time.Parse(time.DateOnly, raw)
		if err != nil {
			http.Error(w, "invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}
	}

	results, err := h.service.GetResults(r.Context(), date)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if results == nil {
		results = []*domain.RestaurantResult{}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(results); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

type liveCountResponse struct {
	RestaurantID uuid.UUID `json:"restaurant_id"`
	Date         string    `json:"date"`
	Count        int64     `json:"count"`
}

// GetLiveCount godoc
// @Summary      Returns the live vote count for a restaurant on a date
// @Tags         votes
// @Param        id    path   string  true   "restaurant id"
// @Param        date  query  string  false  "date in YYYY-MM-DD"
// @Success      200
// @Router       /restaurants/{id}/votes [get]
func (h *ResultHandler) GetLiveCount(w http.ResponseWriter, r *http.Request) {
	restaurantID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid restaurant id", http.StatusBadRequest)
		return
	}

	date := domain.DateOf(h.clock.Now())
	if raw := r.URL.Query().Get("date"); raw != "" {
		date, err = time.Parse(time.DateOnly, raw)
		if err != nil {
			http.Error(w, "invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}
	}

	count, err := h.service.CountVotes(r.Context(), restaurantID, date)
	if err != nil {
		if errors.Is(err, domain.ErrRestaurantNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := liveCountResponse{
		RestaurantID: restaurantID,
		Date:         date.Format(time.DateOnly),
		Count:        count,
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}
