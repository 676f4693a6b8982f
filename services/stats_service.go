package services

import (
	"context"
	"fmt"

	"ecoTrackAPI/internal/repository"
	"ecoTrackAPI/internal/types/challenge"
)

type StatsService struct {
	challenges repository.ChallengeRepo
}

func NewStatsService(challenges repository.ChallengeRepo) *StatsService {
	return &StatsService{challenges: challenges}
}

// GetStatistics scans the whole catalog, summing participants and grouping
// impact values by unit. The catalog is small, so a full scan is fine.
func (s *StatsService) GetStatistics(ctx context.Context) (*challenge.Statistics, error) {
	all, err := s.challenges.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load challenges for statistics: %w", err)
	}

	stats := &challenge.Statistics{
		ImpactTotals: map[string]float64{},
	}

	for _, c := range all {
		stats.TotalParticipants += c.Participants

		// Challenges without a usable impact metric still count toward the
		// participant total above.
		if c.ImpactMetric == nil || c.ImpactMetric.Unit == "" {
			continue
		}
		stats.ImpactTotals[c.ImpactMetric.Unit] += c.ImpactMetric.Value
	}

	return stats, nil
}
