package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"ecoTrackAPI/internal/repository"
	"ecoTrackAPI/internal/types/participation"
)

var ErrMissingUserID = errors.New("userId is required")

type ParticipationService struct {
	participations repository.ParticipationRepo
	challenges     repository.ChallengeRepo
}

func NewParticipationService(participations repository.ParticipationRepo, challenges repository.ChallengeRepo) *ParticipationService {
	return &ParticipationService{
		participations: participations,
		challenges:     challenges,
	}
}

// JoinChallenge creates a participation record for (userID, challengeID)
// unless one exists. Only a first-time join bumps the challenge's
// participants counter. The record insert and the counter increment are two
// separate writes: a crash in between leaves the counter under-counted.
func (s *ParticipationService) JoinChallenge(ctx context.Context, userID, challengeID string) (*participation.JoinResult, error) {
	if userID == "" {
		return nil, ErrMissingUserID
	}

	created, err := s.participations.Join(ctx, userID, challengeID, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to join challenge: %w", err)
	}

	if created {
		err := s.challenges.IncrementParticipants(ctx, challengeID, time.Now().UTC())
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("failed to increment participants: %w", err)
		}
		// The store never verified the challenge exists, so a join against
		// a vanished challenge simply leaves no counter to bump.
		if errors.Is(err, repository.ErrNotFound) {
			log.Printf("JoinChallenge: challenge %s not found for counter increment", challengeID)
		}
	}

	return &participation.JoinResult{Joined: created}, nil
}

// UpdateProgress applies the supplied fields and refreshes lastUpdated.
// Nil fields are left untouched; calling with neither field set still
// refreshes lastUpdated.
func (s *ParticipationService) UpdateProgress(ctx context.Context, id string, upd participation.ProgressUpdate) (*participation.UserChallenge, error) {
	return s.participations.Update(ctx, id, upd, time.Now().UTC())
}

// TrackProgress is the record-returning update variant: progress is always
// written and status defaults to "Ongoing" when not supplied.
func (s *ParticipationService) TrackProgress(ctx context.Context, id string, progress float64, status string) (*participation.UserChallenge, error) {
	if status == "" {
		status = participation.StatusOngoing
	}

	upd := participation.ProgressUpdate{
		Progress: &progress,
		Status:   &status,
	}

	return s.participations.Update(ctx, id, upd, time.Now().UTC())
}

func (s *ParticipationService) ListUserChallenges(ctx context.Context, userID string) ([]*participation.UserChallenge, error) {
	return s.participations.ListByUser(ctx, userID)
}

// GetUserChallengeDetail fetches a participation record and attaches the
// referenced challenge's title. A missing challenge is not an error; the
// title is simply left empty.
func (s *ParticipationService) GetUserChallengeDetail(ctx context.Context, id string) (*participation.UserChallenge, error) {
	rec, err := s.participations.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	c, err := s.challenges.FindByID(ctx, rec.ChallengeID.Hex())
	switch {
	case err == nil:
		rec.ChallengeTitle = c.Title
	case errors.Is(err, repository.ErrNotFound):
		log.Printf("GetUserChallengeDetail: challenge %s referenced by record %s is gone", rec.ChallengeID.Hex(), id)
	default:
		return nil, fmt.Errorf("failed to resolve challenge title: %w", err)
	}

	return rec, nil
}

func (s *ParticipationService) ListUserActivities(ctx context.Context, userEmail string) ([]*participation.Activity, error) {
	return s.participations.Activities(ctx, userEmail)
}
