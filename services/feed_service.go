package services

import (
	"context"
	"time"

	"ecoTrackAPI/internal/repository"
	"ecoTrackAPI/internal/types/feed"
)

const (
	recentTipsLimit     = 5
	upcomingEventsLimit = 4
)

type FeedService struct {
	feed repository.FeedRepo
}

func NewFeedService(feed repository.FeedRepo) *FeedService {
	return &FeedService{feed: feed}
}

func (s *FeedService) GetRecentTips(ctx context.Context) ([]*feed.Tip, error) {
	return s.feed.RecentTips(ctx, recentTipsLimit)
}

func (s *FeedService) GetUpcomingEvents(ctx context.Context) ([]*feed.Event, error) {
	today := time.Now().UTC().Format("2006-01-02")
	return s.feed.UpcomingEvents(ctx, today, upcomingEventsLimit)
}
