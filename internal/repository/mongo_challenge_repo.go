package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"ecoTrackAPI/internal/types/challenge"
)

type mongoChallengeRepo struct {
	coll *mongo.Collection
}

// buildListFilter translates the catalog query into a Mongo filter.
// All supplied filters combine with AND; the category set is OR'd via $in.
func buildListFilter(q challenge.ListQuery) bson.M {
	filter := bson.M{}

	if len(q.Categories) > 0 {
		filter["category"] = bson.M{"$in": q.Categories}
	}

	if q.StartDateFrom != "" || q.StartDateTo != "" {
		dateRange := bson.M{}
		if q.StartDateFrom != "" {
			dateRange["$gte"] = q.StartDateFrom
		}
		if q.StartDateTo != "" {
			dateRange["$lte"] = q.StartDateTo
		}
		filter["startDate"] = dateRange
	}

	if q.MinParticipants != nil || q.MaxParticipants != nil {
		countRange := bson.M{}
		if q.MinParticipants != nil {
			countRange["$gte"] = *q.MinParticipants
		}
		if q.MaxParticipants != nil {
			countRange["$lte"] = *q.MaxParticipants
		}
		filter["participants"] = countRange
	}

	if q.Search != "" {
		filter["title"] = bson.M{
			"$regex":   regexp.QuoteMeta(q.Search),
			"$options": "i",
		}
	}

	return filter
}

// buildListSort picks the sort order: participants asc/desc when requested,
// otherwise newest-first by _id (insertion order approximates recency).
func buildListSort(q challenge.ListQuery) bson.D {
	if q.SortBy == "participants" {
		order := -1
		if q.SortOrder == "asc" {
			order = 1
		}
		return bson.D{{Key: "participants", Value: order}}
	}
	return bson.D{{Key: "_id", Value: -1}}
}

func (r *mongoChallengeRepo) List(ctx context.Context, q challenge.ListQuery, pageSize int) ([]*challenge.Challenge, int64, error) {
	filter := buildListFilter(q)

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count challenges: %w", err)
	}

	page := q.Page
	if page < 1 {
		page = 1
	}

	opts := options.Find().
		SetSort(buildListSort(q)).
		SetSkip(int64(page-1) * int64(pageSize)).
		SetLimit(int64(pageSize))

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list challenges: %w", err)
	}
	defer cursor.Close(ctx)

	challenges := []*challenge.Challenge{}
	if err := cursor.All(ctx, &challenges); err != nil {
		return nil, 0, fmt.Errorf("failed to decode challenges: %w", err)
	}

	return challenges, total, nil
}

func (r *mongoChallengeRepo) ListActive(ctx context.Context, today string) ([]*challenge.Challenge, error) {
	filter := bson.M{
		"startDate": bson.M{"$lte": today},
		"endDate":   bson.M{"$gte": today},
	}

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find active challenges: %w", err)
	}
	defer cursor.Close(ctx)

	challenges := []*challenge.Challenge{}
	if err := cursor.All(ctx, &challenges); err != nil {
		return nil, fmt.Errorf("failed to decode active challenges: %w", err)
	}

	return challenges, nil
}

func (r *mongoChallengeRepo) All(ctx context.Context) ([]*challenge.Challenge, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to scan challenges: %w", err)
	}
	defer cursor.Close(ctx)

	challenges := []*challenge.Challenge{}
	if err := cursor.All(ctx, &challenges); err != nil {
		return nil, fmt.Errorf("failed to decode challenges: %w", err)
	}

	return challenges, nil
}

func (r *mongoChallengeRepo) FindByID(ctx context.Context, id string) (*challenge.Challenge, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	var c challenge.Challenge
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find challenge: %w", err)
	}

	return &c, nil
}

func (r *mongoChallengeRepo) TitleDescriptionOrImageExists(ctx context.Context, title, description, imageURL string) (bool, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"title": title},
		bson.M{"description": description},
		bson.M{"imageUrl": imageURL},
	}}

	count, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return false, fmt.Errorf("failed to check for duplicate challenge: %w", err)
	}

	return count > 0, nil
}

func (r *mongoChallengeRepo) Insert(ctx context.Context, c *challenge.Challenge) (string, error) {
	res, err := r.coll.InsertOne(ctx, c)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", ErrDuplicate
		}
		return "", fmt.Errorf("failed to insert challenge: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}

	return oid.Hex(), nil
}

func (r *mongoChallengeRepo) IncrementParticipants(ctx context.Context, id string, now time.Time) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{
		"$inc": bson.M{"participants": 1},
		"$set": bson.M{"updatedAt": now},
	})
	if err != nil {
		return fmt.Errorf("failed to increment participants: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}

	return nil
}
