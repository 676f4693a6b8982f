package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"ecoTrackAPI/internal/types/feed"
)

type mongoFeedRepo struct {
	tips   *mongo.Collection
	events *mongo.Collection
}

func (r *mongoFeedRepo) RecentTips(ctx context.Context, limit int) ([]*feed.Tip, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.tips.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find recent tips: %w", err)
	}
	defer cursor.Close(ctx)

	tips := []*feed.Tip{}
	if err := cursor.All(ctx, &tips); err != nil {
		return nil, fmt.Errorf("failed to decode tips: %w", err)
	}

	return tips, nil
}

func (r *mongoFeedRepo) UpcomingEvents(ctx context.Context, today string, limit int) ([]*feed.Event, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: 1}}).
		SetLimit(int64(limit))

	cursor, err := r.events.Find(ctx, bson.M{"date": bson.M{"$gte": today}}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find upcoming events: %w", err)
	}
	defer cursor.Close(ctx)

	events := []*feed.Event{}
	if err := cursor.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("failed to decode events: %w", err)
	}

	return events, nil
}
