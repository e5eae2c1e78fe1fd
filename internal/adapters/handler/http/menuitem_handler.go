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

type MenuItemHandler struct {
	service  ports.MenuItemService
	clock    ports.Clock
	validate *validator.Validate
}

func NewMenuItemHandler(service ports.MenuItemService, clock ports.Clock) *MenuItemHandler {
	return &MenuItemHandler{
		service:  service,
		clock:    clock,
		validate: validator.New(),
	}
}

type createMenuItemRequest struct {
	DishDate   string `json:"dish_date" validate:"omitempty,datetime=2006-01-02"`
	Name       string `json:"name" validate:"required,min=2,max=128"`
	PriceCents int64  `json:"price_cents" validate:"required,gt=0"`
}

type updateMenuItemRequest struct {
	Name       string `json:"name" validate:"omitempty,min=2,max=128"`
	PriceCents int64  `json:"price_cents" validate:"omitempty,gt=0"`
}

func (h *MenuItemHandler) GetMenu(w http.ResponseWriter, r *http.Request) {
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

	items, err := h.service.GetMenu(r.Context(), restaurantID, date)
	if err != nil {
		writeMenuItemError(w, err)
		return
	}
	if items == nil {
		items = []domain.MenuItem{}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(items); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

func (h *MenuItemHandler) CreateMenuItem(w http.ResponseWriter, r *http.Request) {
	restaurantID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid restaurant id", http.StatusBadRequest)
		return
	}

	var req createMenuItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	dishDate := domain.DateOf(h.clock.Now())
	if req.DishDate != "" {
		dishDate, err = time.Parse(time.DateOnly, req.DishDate)
		if err != nil {
			http.Error(w, "invalid dish_date, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}
	}

	item, err := h.service.Create(r.Context(), ports.CreateMenuItemInput{
		RestaurantID: restaurantID,
		DishDate:     dishDate,
		Name:         req.Name,
		PriceCents:   req.PriceCents,
	})
	if err != nil {
		writeMenuItemError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(item); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

func (h *MenuItemHandler) UpdateMenuItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := uuid.Parse(chi.URLParam(r, "itemID"))
	if err != nil {
		http.Error(w, "invalid menu item id", http.StatusBadRequest)
		return
	}

	var req updateMenuItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	item, err := h.service.Update(r.Context(), itemID, ports.UpdateMenuItemInput{
		Name:       req.Name,
		PriceCents: req.PriceCents,
	})
	if err != nil {
		writeMenuItemError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(item); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

func (h *MenuItemHandler) DeleteMenuItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := uuid.Parse(chi.URLParam(r, "itemID"))
	if err != nil {
		http.Error(w, "invalid menu item id", http.StatusBadRequest)
		return
	}

	if err := h.service.Delete(r.Context(), itemID); err != nil {
		writeMenuItemError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeMenuItemError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrMenuItemNotFound), errors.Is(err, domain.ErrRestaurantNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, domain.ErrMenuItemExists):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
