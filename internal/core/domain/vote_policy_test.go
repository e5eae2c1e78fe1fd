package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func at(day time.Time, hour, minute, second int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, second, 0, day.Location())
}

func TestVotePolicyCanMutate(t *testing.T) {
	policy := NewVotePolicy(DefaultVoteDeadline)
	today := date(2024, time.March, 15)
	yesterday := today.AddDate(0, 0, -1)
	tomorrow := today.AddDate(0, 0, 1)

	tests := []struct {
		name     string
		voteDate time.Time
		now      time.Time
		want     bool
	}{
		{"well before deadline", today, at(today, 9, 30, 0), true},
		{"one second before deadline", today, at(today, 10, 59, 59), true},
		{"exactly at deadline", today, at(today, 11, 0, 0), false},
		{"one second after deadline", today, at(today, 11, 0, 1), false},
		{"midnight", today, at(today, 0, 0, 0), true},
		{"late evening", today, at(today, 23, 59, 59), false},
		{"yesterday's vote in the morning", yesterday, at(today, 9, 0, 0), false},
		{"yesterday's vote at midnight", yesterday, at(today, 0, 0, 0), false},
		{"tomorrow's vote", tomorrow, at(today, 9, 0, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, policy.CanMutate(tt.voteDate, tt.now))
		})
	}
}

func TestVotePolicyCustomDeadline(t *testing.T) {
	policy := NewVotePolicy(14*time.Hour + 30*time.Minute)
	today := date(2024, time.March, 15)

	assert.True(t, policy.CanMutate(today, at(today, 14, 29, 59)))
	assert.False(t, policy.CanMutate(today, at(today, 14, 30, 0)))
	assert.Equal(t, 14*time.Hour+30*time.Minute, policy.Deadline())
}

func TestVotePolicyDeadlineClock(t *testing.T) {
	assert.Equal(t, "11:00", NewVotePolicy(DefaultVoteDeadline).DeadlineClock())
	assert.Equal(t, "14:30", NewVotePolicy(14*time.Hour+30*time.Minute).DeadlineClock())
}

func TestVotePolicySubSecondPrecision(t *testing.T) {
	policy := NewVotePolicy(DefaultVoteDeadline)
	today := date(2024, time.March, 15)

	// A nanosecond before the cutoff still counts; the instant itself loses.
	justBefore := at(today, 11, 0, 0).Add(-time.Nanosecond)
	assert.True(t, policy.CanMutate(today, justBefore))
	assert.False(t, policy.CanMutate(today, at(today, 11, 0, 0)))
}

func TestVotePolicyDSTTransitionDays(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	policy := NewVotePolicy(DefaultVoteDeadline)

	// Fall-back day: 25 wall-clock hours. At 10:30 local, 11h30m have
	// elapsed since midnight, but the clock face is still before 11:00.
	fallBack := time.Date(2026, time.November, 1, 0, 0, 0, 0, loc)
	assert.True(t, policy.CanMutate(fallBack, at(fallBack, 10, 30, 0)))
	assert.False(t, policy.CanMutate(fallBack, at(fallBack, 11, 0, 0)))

	// Spring-forward day: 23 wall-clock hours. At 11:30 local only 10h30m
	// have elapsed since midnight, but the deadline has passed.
	springForward := time.Date(2026, time.March, 8, 0, 0, 0, 0, loc)
	assert.False(t, policy.CanMutate(springForward, at(springForward, 11, 30, 0)))
	assert.True(t, policy.CanMutate(springForward, at(springForward, 10, 30, 0)))
}

func TestDateOf(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	ts := time.Date(2024, time.March, 15, 17, 45, 12, 999, loc)

	got := DateOf(ts)
	assert.Equal(t, time.Date(2024, time.March, 15, 0, 0, 0, 0, loc), got)
	assert.Equal(t, loc, got.Location())
}

func TestSameDate(t *testing.T) {
	today := date(2024, time.March, 15)

	assert.True(t, SameDate(today, at(today, 23, 59, 59)))
	assert.False(t, SameDate(today, today.AddDate(0, 0, 1)))
	assert.False(t, SameDate(today, today.AddDate(-1, 0, 0)))
}
