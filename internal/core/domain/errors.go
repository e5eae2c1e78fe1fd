package domain

import "errors"

var (
	ErrVoteNotFound       = errors.New("vote not found")
	ErrVoteConflict       = errors.New("user has already voted today")
	ErrDeadlinePassed     = errors.New("vote can no longer be changed after the deadline")
	ErrRestaurantNotFound = errors.New("restaurant not found")
	ErrMenuItemNotFound   = errors.New("menu item not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrRestaurantExists   = errors.New("restaurant with this name already exists")
	ErrMenuItemExists     = errors.New("menu item already exists for this restaurant and date")
)
