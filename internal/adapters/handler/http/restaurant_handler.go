package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/feyerinaGO/RestaurantVoting/internal/core/domain"
	"github.com/feyerinaGO/RestaurantVoting/internal/core/ports"
)

type RestaurantHandler struct {
	service  ports.RestaurantService
	clock    ports.Clock
	validate *validator.Validate
}

func NewRestaurantHandler(service ports.RestaurantService, clock ports.Clock) *RestaurantHandler {
	return &RestaurantHandler{
		service:  service,
		clock:    clock,
		validate: validator.New(),
	}
}

type restaurantRequest struct {
	Name string `json:"name" validate:"required,min=2,max=128"`
}

// ListRestaurants godoc
// @Summary      Lists restaurants offering a menu on a date (default today)
// @Tags         restaurants
// @Param        date  query  string  false  "date in YYYY-MM-DD"
// @Success      200
// @Router       /restaurants [get]
func (h *RestaurantHandler) ListRestaurants(w http.ResponseWriter, r *http.Request) {
	date, err := h.dateParam(r)
	if err != nil {
		http.Error(w, "invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	restaurants, err := h.service.ListWithMenu(r.Context(), date)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if restaurants == nil {
		restaurants = []*domain.Restaurant{}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(restaurants); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

func (h *RestaurantHandler) GetRestaurant(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid restaurant id", http.StatusBadRequest)
		return
	}

	restaurant, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeRestaurantError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(restaurant); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

func (h *RestaurantHandler) CreateRestaurant(w http.ResponseWriter, r *http.Request) {
	var req restaurantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	restaurant, err := h.service.Create(r.Context(), ports.CreateRestaurantInput{Name: req.Name})
	if err != nil {
		writeRestaurantError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(restaurant); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

func (h *RestaurantHandler) UpdateRestaurant(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid restaurant id", http.StatusBadRequest)
		return
	}

	var req restaurantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	restaurant, err := h.service.Rename(r.Context(), id, req.Name)
	if err != nil {
		writeRestaurantError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(restaurant); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

func (h *RestaurantHandler) DeleteRestaurant(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid restaurant id", http.StatusBadRequest)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeRestaurantError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *RestaurantHandler) dateParam(r *http.Request) (time.Time, error) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		return domain.DateOf(h.clock.Now()), nil
	}
	return time.Parse(time.DateOnly, raw)
}

func writeRestaurantError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrRestaurantNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, domain.ErrRestaurantExists):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
