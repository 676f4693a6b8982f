package services

import (
	"context"
	"time"

	"ecoTrackAPI/internal/types/challenge"
	"ecoTrackAPI/internal/types/feed"
	"ecoTrackAPI/internal/types/participation"
	"ecoTrackAPI/internal/types/user"
)

// Function-field mocks: tests wire only the calls they care about, the
// rest return zero values.

type mockChallengeRepo struct {
	listFn       func(ctx context.Context, q challenge.ListQuery, pageSize int) ([]*challenge.Challenge, int64, error)
	listActiveFn func(ctx context.Context, today string) ([]*challenge.Challenge, error)
	allFn        func(ctx context.Context) ([]*challenge.Challenge, error)
	findByIDFn   func(ctx context.Context, id string) (*challenge.Challenge, error)
	existsFn     func(ctx context.Context, title, description, imageURL string) (bool, error)
	insertFn     func(ctx context.Context, c *challenge.Challenge) (string, error)
	incrementFn  func(ctx context.Context, id string, now time.Time) error
}

func (m *mockChallengeRepo) List(ctx context.Context, q challenge.ListQuery, pageSize int) ([]*challenge.Challenge, int64, error) {
	if m.listFn != nil {
		return m.listFn(ctx, q, pageSize)
	}
	return nil, 0, nil
}

func (m *mockChallengeRepo) ListActive(ctx context.Context, today string) ([]*challenge.Challenge, error) {
	if m.listActiveFn != nil {
		return m.listActiveFn(ctx, today)
	}
	return nil, nil
}

func (m *mockChallengeRepo) All(ctx context.Context) ([]*challenge.Challenge, error) {
	if m.allFn != nil {
		return m.allFn(ctx)
	}
	return nil, nil
}

func (m *mockChallengeRepo) FindByID(ctx context.Context, id string) (*challenge.Challenge, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockChallengeRepo) TitleDescriptionOrImageExists(ctx context.Context, title, description, imageURL string) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, title, description, imageURL)
	}
	return false, nil
}

func (m *mockChallengeRepo) Insert(ctx context.Context, c *challenge.Challenge) (string, error) {
	if m.insertFn != nil {
		return m.insertFn(ctx, c)
	}
	return "", nil
}

func (m *mockChallengeRepo) IncrementParticipants(ctx context.Context, id string, now time.Time) error {
	if m.incrementFn != nil {
		return m.incrementFn(ctx, id, now)
	}
	return nil
}

type mockParticipationRepo struct {
	joinFn       func(ctx context.Context, userID, challengeID string, now time.Time) (bool, error)
	updateFn     func(ctx context.Context, id string, upd participation.ProgressUpdate, now time.Time) (*participation.UserChallenge, error)
	listByUserFn func(ctx context.Context, userID string) ([]*participation.UserChallenge, error)
	findByIDFn   func(ctx context.Context, id string) (*participation.UserChallenge, error)
	activitiesFn func(ctx context.Context, userEmail string) ([]*participation.Activity, error)
}

func (m *mockParticipationRepo) Join(ctx context.Context, userID, challengeID string, now time.Time) (bool, error) {
	if m.joinFn != nil {
		return m.joinFn(ctx, userID, challengeID, now)
	}
	return false, nil
}

func (m *mockParticipationRepo) Update(ctx context.Context, id string, upd participation.ProgressUpdate, now time.Time) (*participation.UserChallenge, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, upd, now)
	}
	return nil, nil
}

func (m *mockParticipationRepo) ListByUser(ctx context.Context, userID string) ([]*participation.UserChallenge, error) {
	if m.listByUserFn != nil {
		return m.listByUserFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockParticipationRepo) FindByID(ctx context.Context, id string) (*participation.UserChallenge, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockParticipationRepo) Activities(ctx context.Context, userEmail string) ([]*participation.Activity, error) {
	if m.activitiesFn != nil {
		return m.activitiesFn(ctx, userEmail)
	}
	return nil, nil
}

type mockUserRepo struct {
	findByEmailFn func(ctx context.Context, email string) (*user.User, error)
	insertFn      func(ctx context.Context, u *user.User) (string, error)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	if m.findByEmailFn != nil {
		return m.findByEmailFn(ctx, email)
	}
	return nil, nil
}

func (m *mockUserRepo) Insert(ctx context.Context, u *user.User) (string, error) {
	if m.insertFn != nil {
		return m.insertFn(ctx, u)
	}
	return "", nil
}

type mockFeedRepo struct {
	recentTipsFn     func(ctx context.Context, limit int) ([]*feed.Tip, error)
	upcomingEventsFn func(ctx context.Context, today string, limit int) ([]*feed.Event, error)
}

func (m *mockFeedRepo) RecentTips(ctx context.Context, limit int) ([]*feed.Tip, error) {
	if m.recentTipsFn != nil {
		return m.recentTipsFn(ctx, limit)
	}
	return nil, nil
}

func (m *mockFeedRepo) UpcomingEvents(ctx context.Context, today string, limit int) ([]*feed.Event, error) {
	if m.upcomingEventsFn != nil {
		return m.upcomingEventsFn(ctx, today, limit)
	}
	return nil, nil
}
