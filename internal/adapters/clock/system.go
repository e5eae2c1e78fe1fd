// Package clock provides the production wall-clock implementation of
// ports.Clock. Tests substitute their own fixed clocks.
package clock

import (
	"time"

	"github.com/feyerinaGO/RestaurantVoting/internal/core/ports"
)

type systemClock struct{}

func NewSystemClock() ports.Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now()
}
