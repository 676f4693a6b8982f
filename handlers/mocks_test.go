package handlers

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"ecoTrackAPI/internal/repository"
	"ecoTrackAPI/internal/types/challenge"
	"ecoTrackAPI/internal/types/participation"
	"ecoTrackAPI/internal/types/user"
)

// In-memory repos with just enough store semantics for routing-level tests:
// hex-id validation, not-found, the duplicate checks, and upsert joins.

type stubChallengeRepo struct {
	byID       map[string]*challenge.Challenge
	increments map[string]int
}

func newStubChallengeRepo() *stubChallengeRepo {
	return &stubChallengeRepo{
		byID:       map[string]*challenge.Challenge{},
		increments: map[string]int{},
	}
}

func (r *stubChallengeRepo) List(ctx context.Context, q challenge.ListQuery, pageSize int) ([]*challenge.Challenge, int64, error) {
	all := []*challenge.Challenge{}
	for _, c := range r.byID {
		all = append(all, c)
	}
	return all, int64(len(all)), nil
}

func (r *stubChallengeRepo) ListActive(ctx context.Context, today string) ([]*challenge.Challenge, error) {
	return nil, nil
}

func (r *stubChallengeRepo) All(ctx context.Context) ([]*challenge.Challenge, error) {
	all, _, err := r.List(ctx, challenge.ListQuery{}, 0)
	return all, err
}

func (r *stubChallengeRepo) FindByID(ctx context.Context, id string) (*challenge.Challenge, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, repository.ErrInvalidID
	}
	c, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return c, nil
}

func (r *stubChallengeRepo) TitleDescriptionOrImageExists(ctx context.Context, title, description, imageURL string) (bool, error) {
	for _, c := range r.byID {
		if c.Title == title || c.Description == description || c.ImageURL == imageURL {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubChallengeRepo) Insert(ctx context.Context, c *challenge.Challenge) (string, error) {
	c.ID = primitive.NewObjectID()
	r.byID[c.ID.Hex()] = c
	return c.ID.Hex(), nil
}

func (r *stubChallengeRepo) IncrementParticipants(ctx context.Context, id string, now time.Time) error {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return repository.ErrInvalidID
	}
	c, ok := r.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	c.Participants++
	r.increments[id]++
	return nil
}

type stubParticipationRepo struct {
	byID   map[string]*participation.UserChallenge
	byPair map[string]string // userId|challengeId -> record id
}

func newStubParticipationRepo() *stubParticipationRepo {
	return &stubParticipationRepo{
		byID:   map[string]*participation.UserChallenge{},
		byPair: map[string]string{},
	}
}

func (r *stubParticipationRepo) Join(ctx context.Context, userID, challengeID string, now time.Time) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(challengeID)
	if err != nil {
		return false, repository.ErrInvalidID
	}

	key := userID + "|" + challengeID
	if _, ok := r.byPair[key]; ok {
		return false, nil
	}

	rec := &participation.UserChallenge{
		ID:          primitive.NewObjectID(),
		UserID:      userID,
		ChallengeID: oid,
		Status:      participation.StatusNotStarted,
		JoinDate:    now,
		LastUpdated: now,
	}
	r.byID[rec.ID.Hex()] = rec
	r.byPair[key] = rec.ID.Hex()
	return true, nil
}

func (r *stubParticipationRepo) Update(ctx context.Context, id string, upd participation.ProgressUpdate, now time.Time) (*participation.UserChallenge, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, repository.ErrInvalidID
	}
	rec, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}

	if upd.Progress != nil {
		rec.Progress = *upd.Progress
	}
	if upd.Status != nil {
		rec.Status = *upd.Status
	}
	rec.LastUpdated = now
	return rec, nil
}

func (r *stubParticipationRepo) ListByUser(ctx context.Context, userID string) ([]*participation.UserChallenge, error) {
	records := []*participation.UserChallenge{}
	for _, rec := range r.byID {
		if rec.UserID == userID {
			records = append(records, rec)
		}
	}
	return records, nil
}

func (r *stubParticipationRepo) FindByID(ctx context.Context, id string) (*participation.UserChallenge, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, repository.ErrInvalidID
	}
	rec, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return rec, nil
}

func (r *stubParticipationRepo) Activities(ctx context.Context, userEmail string) ([]*participation.Activity, error) {
	return nil, nil
}

type stubUserRepo struct {
	byEmail map[string]*user.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byEmail: map[string]*user.User{}}
}

func (r *stubUserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

func (r *stubUserRepo) Insert(ctx context.Context, u *user.User) (string, error) {
	if _, ok := r.byEmail[u.Email]; ok {
		return "", repository.ErrDuplicate
	}
	u.ID = primitive.NewObjectID()
	r.byEmail[u.Email] = u
	return u.ID.Hex(), nil
}
