package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/feyerinaGO/RestaurantVoting/internal/core/domain"
	"github.com/feyerinaGO/RestaurantVoting/internal/core/ports"
)

type VoteHandler struct {
	service  ports.VoteService
	policy   domain.VotePolicy
	validate *validator.Validate
}

func NewVoteHandler(service ports.VoteService, policy domain.VotePolicy) *VoteHandler {
	return &VoteHandler{
		service:  service,
		policy:   policy,
		validate: validator.New(),
	}
}

type castVoteRequest struct {
	RestaurantID uuid.UUID `json:"restaurant_id" validate:"required"`
}

// CastVote godoc
// @Summary      Casts or changes today's vote
// @Description  Creates today's vote, or changes it when cast before the deadline. 201 on create, 200 on change.
// @Tags         votes
// @Accept       json
// @Success      200
// @Success      201
// @Failure      404
// @Failure      409
// @Failure      422
// @Router       /profile/votes [put]
func (h *VoteHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(UserIDKey).(uuid.UUID)
	if !ok {
		http.Error(w, "Unauthorized: missing user context", http.StatusUnauthorized)
		return
	}

	var req castVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		http.Error(w, "restaurant_id is required", http.StatusBadRequest)
		return
	}

	vote, created, err := h.service.CastVote(r.Context(), ports.CastVoteInput{
		UserID:       userID,
		RestaurantID: req.RestaurantID,
	})
	if err != nil {
		h.writeVoteError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if created {
		w.WriteHeader(http.StatusCreated)
	}
	if err := json.NewEncoder(w).Encode(vote); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

// GetTodayVote godoc
// @Summary      Returns the authenticated user's vote for today
// @Tags         votes
// @Success      200
// @Failure      404
// @Router       /profile/votes/today [get]
func (h *VoteHandler) GetTodayVote(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(UserIDKey).(uuid.UUID)
	if !ok {
		http.Error(w, "Unauthorized: missing user context", http.StatusUnauthorized)
		return
	}

	vote, err := h.service.GetTodayVote(r.Context(), userID)
	if err != nil {
		h.writeVoteError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(vote); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

// GetVoteHistory godoc
// @Summary      Lists the authenticated user's votes, most recent first
// @Tags         votes
// @Success      200
// @Router       /profile/votes [get]
func (h *VoteHandler) GetVoteHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(UserIDKey).(uuid.UUID)
	if !ok {
		http.Error(w, "Unauthorized: missing user context", http.StatusUnauthorized)
		return
	}

	votes, err := h.service.GetVoteHistory(r.Context(), userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if votes == nil {
		votes = []*domain.Vote{}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(votes); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

// DeleteTodayVote godoc
// @Summary      Withdraws today's vote
// @Tags         votes
// @Success      204
// @Failure      404
// @Failure      422
// @Router       /profile/votes/today [delete]
func (h *VoteHandler) DeleteTodayVote(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(UserIDKey).(uuid.UUID)
	if !ok {
		http.Error(w, "Unauthorized: missing user context", http.StatusUnauthorized)
		return
	}

	if err := h.service.DeleteTodayVote(r.Context(), userID); err != nil {
		h.writeVoteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *VoteHandler) writeVoteError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrVoteNotFound), errors.Is(err, domain.ErrRestaurantNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, domain.ErrDeadlinePassed):
		http.Error(w, fmt.Sprintf("vote can no longer be changed after %s", h.policy.DeadlineClock()), http.StatusUnprocessableEntity)
	case errors.Is(err, domain.ErrVoteConflict):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
