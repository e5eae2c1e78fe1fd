package domain

import (
	"time"

	"github.com/google/uuid"
)

// Vote is one user's restaurant choice for one calendar date. At most one
// vote may exist per (UserID, VoteDate) pair; the votes table enforces this
// with a unique constraint.
type Vote struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"user_id"`
	RestaurantID uuid.UUID `json:"restaurant_id"`
	VoteDate     time.Time `json:"vote_date"`
	CreatedAt    time.Time `json:"created_at"`
}

// DateOf strips the time-of-day component, keeping the location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameDate reports whether a and b fall on the same calendar date.
func SameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
