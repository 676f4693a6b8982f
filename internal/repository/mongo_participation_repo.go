package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"ecoTrackAPI/internal/types/participation"
)

type mongoParticipationRepo struct {
	coll *mongo.Collection
}

func (r *mongoParticipationRepo) Join(ctx context.Context, userID, challengeID string, now time.Time) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(challengeID)
	if err != nil {
		return false, ErrInvalidID
	}

	filter := bson.M{"userId": userID, "challengeId": oid}
	// $setOnInsert only fires when the upsert creates a document; a repeat
	// join matches the existing record and leaves it untouched.
	update := bson.M{"$setOnInsert": bson.M{
		"userId":      userID,
		"challengeId": oid,
		"status":      participation.StatusNotStarted,
		"progress":    0.0,
		"joinDate":    now,
		"lastUpdated": now,
	}}

	res, err := r.coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		// A concurrent join can slip between the match and the insert; the
		// unique index rejects the second insert and we treat it as a repeat.
		if mongo.IsDuplicateKeyError(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to upsert participation record: %w", err)
	}

	return res.UpsertedCount > 0, nil
}

func (r *mongoParticipationRepo) Update(ctx context.Context, id string, upd participation.ProgressUpdate, now time.Time) (*participation.UserChallenge, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	set := bson.M{"lastUpdated": now}
	if upd.Progress != nil {
		set["progress"] = *upd.Progress
	}
	if upd.Status != nil {
		set["status"] = *upd.Status
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var rec participation.UserChallenge
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&rec)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update participation record: %w", err)
	}

	return &rec, nil
}

func (r *mongoParticipationRepo) ListByUser(ctx context.Context, userID string) ([]*participation.UserChallenge, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to list participation records: %w", err)
	}
	defer cursor.Close(ctx)

	records := []*participation.UserChallenge{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode participation records: %w", err)
	}

	return records, nil
}

func (r *mongoParticipationRepo) FindByID(ctx context.Context, id string) (*participation.UserChallenge, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	var rec participation.UserChallenge
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&rec)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find participation record: %w", err)
	}

	return &rec, nil
}

// activitiesPipeline builds the lookup+unwind+project pipeline. The unwind
// after the lookup drops records whose challenge no longer resolves, so
// orphaned participation records never reach the response.
func activitiesPipeline(userEmail string) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"userId": userEmail}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         challengesCollection,
			"localField":   "challengeId",
			"foreignField": "_id",
			"as":           "challenge",
		}}},
		{{Key: "$unwind", Value: "$challenge"}},
		{{Key: "$project", Value: bson.M{
			"_id":            1,
			"userId":         1,
			"challengeId":    1,
			"progress":       1,
			"status":         1,
			"challengeTitle": "$challenge.title",
			"category":       "$challenge.category",
			"duration":       "$challenge.duration",
			"target":         "$challenge.target",
		}}},
	}
}

func (r *mongoParticipationRepo) Activities(ctx context.Context, userEmail string) ([]*participation.Activity, error) {
	cursor, err := r.coll.Aggregate(ctx, activitiesPipeline(userEmail))
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate activities: %w", err)
	}
	defer cursor.Close(ctx)

	activities := []*participation.Activity{}
	if err := cursor.All(ctx, &activities); err != nil {
		return nil, fmt.Errorf("failed to decode activities: %w", err)
	}

	return activities, nil
}
