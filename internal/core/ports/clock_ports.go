package ports

import "time"

// Clock supplies the current wall-clock time. The deadline policy depends on
// it, so production code never calls time.Now directly; tests substitute a
// fixed clock.
type Clock interface {
	Now() time.Time
}
