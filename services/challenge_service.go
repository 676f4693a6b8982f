package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ecoTrackAPI/internal/repository"
	"ecoTrackAPI/internal/types/challenge"
)

// PageSize is the fixed catalog page size.
const PageSize = 8

var (
	ErrMissingFields      = errors.New("title, description and imageUrl are required")
	ErrDuplicateChallenge = errors.New("a challenge with the same title, description or image already exists")
)

type ChallengeService struct {
	challenges repository.ChallengeRepo
}

func NewChallengeService(challenges repository.ChallengeRepo) *ChallengeService {
	return &ChallengeService{challenges: challenges}
}

func (s *ChallengeService) ListChallenges(ctx context.Context, q challenge.ListQuery) (*challenge.ListResult, error) {
	if q.Page < 1 {
		q.Page = 1
	}

	data, total, err := s.challenges.List(ctx, q, PageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list challenges: %w", err)
	}

	totalPages := int((total + PageSize - 1) / PageSize)

	return &challenge.ListResult{
		Data:       data,
		Total:      total,
		Page:       q.Page,
		TotalPages: totalPages,
	}, nil
}

func (s *ChallengeService) GetActiveChallenges(ctx context.Context) ([]*challenge.Challenge, error) {
	today := time.Now().UTC().Format("2006-01-02")
	return s.challenges.ListActive(ctx, today)
}

func (s *ChallengeService) GetChallengeByID(ctx context.Context, id string) (*challenge.Challenge, error) {
	return s.challenges.FindByID(ctx, id)
}

func (s *ChallengeService) AddChallenge(ctx context.Context, req *challenge.CreateChallengeRequest) (string, error) {
	if req.Title == "" || req.Description == "" || req.ImageURL == "" {
		return "", ErrMissingFields
	}

	exists, err := s.challenges.TitleDescriptionOrImageExists(ctx, req.Title, req.Description, req.ImageURL)
	if err != nil {
		return "", fmt.Errorf("failed to check for duplicates: %w", err)
	}
	if exists {
		return "", ErrDuplicateChallenge
	}

	now := time.Now().UTC()
	c := &challenge.Challenge{
		Title:        req.Title,
		Description:  req.Description,
		ImageURL:     req.ImageURL,
		Category:     req.Category,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Participants: 0,
		ImpactMetric: req.ImpactMetric,
		Duration:     req.Duration,
		Target:       req.Target,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	id, err := s.challenges.Insert(ctx, c)
	if err != nil {
		return "", fmt.Errorf("failed to add challenge: %w", err)
	}

	return id, nil
}
