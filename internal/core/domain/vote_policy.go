package domain

import "time"

// DefaultVoteDeadline is the time of day after which today's vote can no
// longer be changed or withdrawn, expressed as an offset from midnight.
const DefaultVoteDeadline = 11 * time.Hour

// VotePolicy decides whether an existing vote may still be mutated. It is a
// pure value: no I/O, no clock reads. Callers resolve "now" once per request
// and pass the same snapshot to every check within that request.
type VotePolicy struct {
	deadline time.Duration
}

func NewVotePolicy(deadline time.Duration) VotePolicy {
	return VotePolicy{deadline: deadline}
}

// Deadline returns the configured cutoff as an offset from midnight.
func (p VotePolicy) Deadline() time.Duration {
	return p.deadline
}

// DeadlineClock renders the cutoff as a wall-clock time, e.g. "11:00".
func (p VotePolicy) DeadlineClock() string {
	return time.Time{}.Add(p.deadline).Format("15:04")
}

// CanMutate reports whether a vote cast for voteDate may be changed or
// deleted at instant now. Only today's vote is ever mutable, and only
// strictly before the deadline: a request landing exactly on the deadline
// instant is already too late.
func (p VotePolicy) CanMutate(voteDate, now time.Time) bool {
	if !SameDate(voteDate, now) {
		return false
	}
	// Clock-face time of day, not elapsed time since midnight. The two
	// differ on DST transition days, and the cutoff is a wall-clock time.
	return timeOfDay(now) < p.deadline
}

func timeOfDay(t time.Time) time.Duration {
	return time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second +
		time.Duration(t.Nanosecond())
}
