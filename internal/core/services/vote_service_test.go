package services

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feyerinaGO/RestaurantVoting/internal/core/domain"
	"github.com/feyerinaGO/RestaurantVoting/internal/core/ports"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

type fakeVoteRepo struct {
	votes map[uuid.UUID]*domain.Vote

	// beforeInsert runs at the start of Insert; tests use it to simulate a
	// concurrent request winning the insert race.
	beforeInsert func()
}

func newFakeVoteRepo() *fakeVoteRepo {
	return &fakeVoteRepo{votes: make(map[uuid.UUID]*domain.Vote)}
}

func (r *fakeVoteRepo) GetByUserAndDate(_ context.Context, userID uuid.UUID, date time.Time) (*domain.Vote, error) {
	for _, v := range r.votes {
		if v.UserID == userID && domain.SameDate(v.VoteDate, date) {
			cp := *v
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeVoteRepo) GetAllByUser(_ context.Context, userID uuid.UUID) ([]*domain.Vote, error) {
	var votes []*domain.Vote
	for _, v := range r.votes {
		if v.UserID == userID {
			cp := *v
			votes = append(votes, &cp)
		}
	}
	sort.Slice(votes, func(i, j int) bool {
		return votes[i].VoteDate.After(votes[j].VoteDate)
	})
	return votes, nil
}

func (r *fakeVoteRepo) Insert(_ context.Context, vote *domain.Vote) error {
	if r.beforeInsert != nil {
		r.beforeInsert()
		r.beforeInsert = nil
	}
	for _, v := range r.votes {
		if v.UserID == vote.UserID && domain.SameDate(v.VoteDate, vote.VoteDate) {
			return domain.ErrVoteConflict
		}
	}
	cp := *vote
	cp.CreatedAt = time.Now()
	r.votes[cp.ID] = &cp
	vote.CreatedAt = cp.CreatedAt
	return nil
}

func (r *fakeVoteRepo) Update(_ context.Context, vote *domain.Vote) error {
	stored, ok := r.votes[vote.ID]
	if !ok {
		return domain.ErrVoteNotFound
	}
	stored.RestaurantID = vote.RestaurantID
	return nil
}

func (r *fakeVoteRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.votes[id]; !ok {
		return domain.ErrVoteNotFound
	}
	delete(r.votes, id)
	return nil
}

func (r *fakeVoteRepo) CountByRestaurantAndDate(_ context.Context, restaurantID uuid.UUID, date time.Time) (int64, error) {
	var count int64
	for _, v := range r.votes {
		if v.RestaurantID == restaurantID && domain.SameDate(v.VoteDate, date) {
			count++
		}
	}
	return count, nil
}

func (r *fakeVoteRepo) rowsFor(userID uuid.UUID, date time.Time) int {
	n := 0
	for _, v := range r.votes {
		if v.UserID == userID && domain.SameDate(v.VoteDate, date) {
			n++
		}
	}
	return n
}

type fakeRestaurantRepo struct {
	existing map[uuid.UUID]bool
}

func newFakeRestaurantRepo(ids ...uuid.UUID) *fakeRestaurantRepo {
	existing := make(map[uuid.UUID]bool)
	for _, id := range ids {
		existing[id] = true
	}
	return &fakeRestaurantRepo{existing: existing}
}

func (r *fakeRestaurantRepo) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	return r.existing[id], nil
}

func (r *fakeRestaurantRepo) Save(context.Context, *domain.Restaurant) error { return nil }
func (r *fakeRestaurantRepo) GetByID(context.Context, uuid.UUID) (*domain.Restaurant, error) {
	return nil, nil
}
func (r *fakeRestaurantRepo) GetAllWithMenu(context.Context, time.Time) ([]*domain.Restaurant, error) {
	return nil, nil
}
func (r *fakeRestaurantRepo) GetAll(context.Context) ([]*domain.Restaurant, error) { return nil, nil }
func (r *fakeRestaurantRepo) Update(context.Context, *domain.Restaurant) error     { return nil }
func (r *fakeRestaurantRepo) Delete(context.Context, uuid.UUID) error              { return nil }

func newTestVoteService(voteRepo *fakeVoteRepo, restaurantRepo *fakeRestaurantRepo, now time.Time) ports.VoteService {
	policy := domain.NewVotePolicy(domain.DefaultVoteDeadline)
	return NewVoteService(voteRepo, restaurantRepo, policy, &fakeClock{now: now})
}

func morning(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), 9, 0, 0, 0, day.Location())
}

var testDay = time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)

func TestCastVoteCreatesFirstVote(t *testing.T) {
	userID := uuid.New()
	restaurantID := uuid.New()
	voteRepo := newFakeVoteRepo()
	svc := newTestVoteService(voteRepo, newFakeRestaurantRepo(restaurantID), morning(testDay))

	vote, created, err := svc.CastVote(context.Background(), ports.CastVoteInput{UserID: userID, RestaurantID: restaurantID})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, restaurantID, vote.RestaurantID)
	assert.True(t, domain.SameDate(testDay, vote.VoteDate))

	today, err := svc.GetTodayVote(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, vote.ID, today.ID)
	assert.Equal(t, restaurantID, today.RestaurantID)
}

func TestCastVoteAfterDeadlineStillCreates(t *testing.T) {
	// First-time voting is not deadline-gated; only changes are.
	userID := uuid.New()
	restaurantID := uuid.New()
	voteRepo := newFakeVoteRepo()
	afternoon := time.Date(2024, time.March, 15, 15, 0, 0, 0, time.UTC)
	svc := newTestVoteService(voteRepo, newFakeRestaurantRepo(restaurantID), afternoon)

	_, created, err := svc.CastVote(context.Background(), ports.CastVoteInput{UserID: userID, RestaurantID: restaurantID})
	require.NoError(t, err)
	assert.True(t, created)
}

func TestCastVoteIdempotentSameRestaurant(t *testing.T) {
	userID := uuid.New()
	restaurantID := uuid.New()
	voteRepo := newFakeVoteRepo()
	svc := newTestVoteService(voteRepo, newFakeRestaurantRepo(restaurantID), morning(testDay))

	first, created, err := svc.CastVote(context.Background(), ports.CastVoteInput{UserID: userID, RestaurantID: restaurantID})
	require.NoError(t, err)
	assert.True(t, created)

	second, created, err := svc.CastVote(context.Background(), ports.CastVoteInput{UserID: userID, RestaurantID: restaurantID})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, restaurantID, second.RestaurantID)
	assert.Equal(t, 1, voteRepo.rowsFor(userID, testDay))
}

func TestCastVoteChangesRestaurantBeforeDeadline(t *testing.T) {
	userID := uuid.New()
	first := uuid.New()
	second := uuid.New()
	voteRepo := newFakeVoteRepo()
	svc := newTestVoteService(voteRepo, newFakeRestaurantRepo(first, second), morning(testDay))

	original, _, err := svc.CastVote(context.Background(), ports.CastVoteInput{UserID: userID, RestaurantID: first})
	require.NoError(t, err)

	changed, created, err := svc.CastVote(context.Background(), ports.CastVoteInput{UserID: userID, RestaurantID: second})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, original.ID, changed.ID)
	assert.Equal(t, second, changed.RestaurantID)
	assert.Equal(t, 1, voteRepo.rowsFor(userID, testDay))
}

func TestCastVoteRejectsChangeAfterDeadline(t *testing.T) {
	userID := uuid.New()
	first := uuid.New()
	second := uuid.New()
	voteRepo := newFakeVoteRepo()
	restaurantRepo := newFakeRestaurantRepo(first, second)

	svc := newTestVoteService(voteRepo, restaurantRepo, morning(testDay))
	_, _, err := svc.CastVote(context.Background(), ports.CastVoteInput{UserID: userID, RestaurantID: first})
	require.NoError(t, err)

	afterDeadline := time.Date(2024, time.March, 15, 11, 1, 0, 0, time.UTC)
	svc = NewVoteService(voteRepo, restaurantRepo, domain.NewVotePolicy(domain.DefaultVoteDeadline), &fakeClock{now: afterDeadline})

	_, _, err = svc.CastVote(context.Background(), ports.CastVoteInput{UserID: userID, RestaurantID: second})
	assert.ErrorIs(t, err, domain.ErrDeadlinePassed)

	// The stored vote is untouched.
	today, err := svc.GetTodayVote(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, first, today.RestaurantID)
}

func TestCastVoteUnknownRestaurant(t *testing.T) {
	userID := uuid.New()
	voteRepo := newFakeVoteRepo()
	svc := newTestVoteService(voteRepo, newFakeRestaurantRepo(), morning(testDay))

	_, _, err := svc.CastVote(context.Background(), ports.CastVoteInput{UserID: userID, RestaurantID: uuid.New()})
	assert.ErrorIs(t, err, domain.ErrRestaurantNotFound)
	assert.Equal(t, 0, voteRepo.rowsFor(userID, testDay))
}

func TestCastVoteRetriesAsUpdateOnConflict(t *testing.T) {
	userID := uuid.New()
	mine := uuid.New()
	theirs := uuid.New()
	voteRepo := newFakeVoteRepo()
	restaurantRepo := newFakeRestaurantRepo(mine, theirs)
	now := morning(testDay)

	// A concurrent request slips in between the existence check and the
	// insert; the unique constraint fires and the call retries as an update.
	competing := &domain.Vote{ID: uuid.New(), UserID: userID, RestaurantID: theirs, VoteDate: testDay}
	voteRepo.beforeInsert = func() {
		voteRepo.votes[competing.ID] = competing
	}

	svc := newTestVoteService(voteRepo, restaurantRepo, now)
	vote, created, err := svc.CastVote(context.Background(), ports.CastVoteInput{UserID: userID, RestaurantID: mine})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, competing.ID, vote.ID)
	assert.Equal(t, mine, vote.RestaurantID)
	assert.Equal(t, 1, voteRepo.rowsFor(userID, testDay))
}

func TestGetTodayVoteNotFound(t *testing.T) {
	svc := newTestVoteService(newFakeVoteRepo(), newFakeRestaurantRepo(), morning(testDay))

	_, err := svc.GetTodayVote(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrVoteNotFound)
}

func TestGetTodayVoteIgnoresOtherDates(t *testing.T) {
	userID := uuid.New()
	restaurantID := uuid.New()
	voteRepo := newFakeVoteRepo()
	yesterday := testDay.AddDate(0, 0, -1)
	voteRepo.votes[uuid.New()] = &domain.Vote{ID: uuid.New(), UserID: userID, RestaurantID: restaurantID, VoteDate: yesterday}

	svc := newTestVoteService(voteRepo, newFakeRestaurantRepo(restaurantID), morning(testDay))
	_, err := svc.GetTodayVote(context.Background(), userID)
	assert.ErrorIs(t, err, domain.ErrVoteNotFound)
}

func TestGetVoteHistoryOrdering(t *testing.T) {
	userID := uuid.New()
	restaurantID := uuid.New()
	voteRepo := newFakeVoteRepo()

	// Votes on D-2, D-1, D inserted out of order.
	for _, offset := range []int{-1, 0, -2} {
		day := testDay.AddDate(0, 0, offset)
		id := uuid.New()
		voteRepo.votes[id] = &domain.Vote{ID: id, UserID: userID, RestaurantID: restaurantID, VoteDate: day}
	}

	svc := newTestVoteService(voteRepo, newFakeRestaurantRepo(restaurantID), morning(testDay))
	history, err := svc.GetVoteHistory(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.True(t, domain.SameDate(history[0].VoteDate, testDay))
	assert.True(t, domain.SameDate(history[1].VoteDate, testDay.AddDate(0, 0, -1)))
	assert.True(t, domain.SameDate(history[2].VoteDate, testDay.AddDate(0, 0, -2)))
}

func TestGetVoteHistoryEmpty(t *testing.T) {
	svc := newTestVoteService(newFakeVoteRepo(), newFakeRestaurantRepo(), morning(testDay))

	history, err := svc.GetVoteHistory(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestDeleteTodayVote(t *testing.T) {
	userID := uuid.New()
	restaurantID := uuid.New()
	voteRepo := newFakeVoteRepo()
	svc := newTestVoteService(voteRepo, newFakeRestaurantRepo(restaurantID), morning(testDay))

	_, _, err := svc.CastVote(context.Background(), ports.CastVoteInput{UserID: userID, RestaurantID: restaurantID})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTodayVote(context.Background(), userID))
	assert.Equal(t, 0, voteRepo.rowsFor(userID, testDay))

	// Re-voting the same day produces a fresh vote.
	vote, created, err := svc.CastVote(context.Background(), ports.CastVoteInput{UserID: userID, RestaurantID: restaurantID})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, restaurantID, vote.RestaurantID)
}

func TestDeleteTodayVoteNotFound(t *testing.T) {
	svc := newTestVoteService(newFakeVoteRepo(), newFakeRestaurantRepo(), morning(testDay))

	err := svc.DeleteTodayVote(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrVoteNotFound)
}

func TestDeleteTodayVoteAfterDeadline(t *testing.T) {
	userID := uuid.New()
	restaurantID := uuid.New()
	voteRepo := newFakeVoteRepo()
	restaurantRepo := newFakeRestaurantRepo(restaurantID)

	svc := newTestVoteService(voteRepo, restaurantRepo, morning(testDay))
	_, _, err := svc.CastVote(context.Background(), ports.CastVoteInput{UserID: userID, RestaurantID: restaurantID})
	require.NoError(t, err)

	afterDeadline := time.Date(2024, time.March, 15, 11, 0, 0, 0, time.UTC)
	svc = NewVoteService(voteRepo, restaurantRepo, domain.NewVotePolicy(domain.DefaultVoteDeadline), &fakeClock{now: afterDeadline})

	err = svc.DeleteTodayVote(context.Background(), userID)
	assert.ErrorIs(t, err, domain.ErrDeadlinePassed)
	assert.Equal(t, 1, voteRepo.rowsFor(userID, testDay))
}
