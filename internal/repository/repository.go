package repository

import (
	"context"
	"errors"
	"time"

	"ecoTrackAPI/internal/types/challenge"
	"ecoTrackAPI/internal/types/feed"
	"ecoTrackAPI/internal/types/participation"
	"ecoTrackAPI/internal/types/user"
)

var (
	// ErrNotFound means no document matched the given identifier or filter.
	ErrNotFound = errors.New("document not found")
	// ErrDuplicate means a unique constraint rejected the write.
	ErrDuplicate = errors.New("duplicate document")
	// ErrInvalidID means the supplied identifier is not a valid store id.
	ErrInvalidID = errors.New("invalid document id")
)

// ChallengeRepo owns the challenges collection.
type ChallengeRepo interface {
	List(ctx context.Context, q challenge.ListQuery, pageSize int) ([]*challenge.Challenge, int64, error)
	ListActive(ctx context.Context, today string) ([]*challenge.Challenge, error)
	All(ctx context.Context) ([]*challenge.Challenge, error)
	FindByID(ctx context.Context, id string) (*challenge.Challenge, error)
	// TitleDescriptionOrImageExists reports whether any existing challenge
	// matches one of the three unique-by-convention fields exactly.
	TitleDescriptionOrImageExists(ctx context.Context, title, description, imageURL string) (bool, error)
	Insert(ctx context.Context, c *challenge.Challenge) (string, error)
	// IncrementParticipants adds one to the participants counter and
	// refreshes updatedAt.
	IncrementParticipants(ctx context.Context, id string, now time.Time) error
}

// ParticipationRepo owns the userChallenges collection.
type ParticipationRepo interface {
	// Join inserts a participation record for (userID, challengeID) unless
	// one already exists. Returns true when a new record was created.
	Join(ctx context.Context, userID, challengeID string, now time.Time) (bool, error)
	// Update applies the non-nil fields of upd plus lastUpdated and returns
	// the updated record.
	Update(ctx context.Context, id string, upd participation.ProgressUpdate, now time.Time) (*participation.UserChallenge, error)
	ListByUser(ctx context.Context, userID string) ([]*participation.UserChallenge, error)
	FindByID(ctx context.Context, id string) (*participation.UserChallenge, error)
	// Activities joins each of the user's participation records to its
	// challenge. Records whose challenge no longer exists are dropped.
	Activities(ctx context.Context, userEmail string) ([]*participation.Activity, error)
}

// UserRepo owns the users collection.
type UserRepo interface {
	FindByEmail(ctx context.Context, email string) (*user.User, error)
	Insert(ctx context.Context, u *user.User) (string, error)
}

// FeedRepo owns the tips and events collections.
type FeedRepo interface {
	RecentTips(ctx context.Context, limit int) ([]*feed.Tip, error)
	UpcomingEvents(ctx context.Context, today string, limit int) ([]*feed.Event, error)
}
