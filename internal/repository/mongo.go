package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	challengesCollection     = "challenges"
	userChallengesCollection = "userChallenges"
	usersCollection          = "users"
	tipsCollection           = "tips"
	eventsCollection         = "events"
)

// Store owns the MongoDB client and hands out collection-backed repos.
// Open it once at startup and Close it on shutdown.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

func Connect(ctx context.Context, uri, dbName string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &Store{client: client, db: client.Database(dbName)}, nil
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

// EnsureIndexes creates the unique indexes the services rely on. The
// (userId, challengeId) index is the only guard against concurrent joins
// inserting twice, so it must exist before the server accepts traffic.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.db.Collection(userChallengesCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "challengeId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create userChallenges index: %w", err)
	}

	_, err = s.db.Collection(usersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create users email index: %w", err)
	}

	return nil
}

func (s *Store) Challenges() ChallengeRepo {
	return &mongoChallengeRepo{coll: s.db.Collection(challengesCollection)}
}

func (s *Store) Participations() ParticipationRepo {
	return &mongoParticipationRepo{coll: s.db.Collection(userChallengesCollection)}
}

func (s *Store) Users() UserRepo {
	return &mongoUserRepo{coll: s.db.Collection(usersCollection)}
}

func (s *Store) Feed() FeedRepo {
	return &mongoFeedRepo{
		tips:   s.db.Collection(tipsCollection),
		events: s.db.Collection(eventsCollection),
	}
}
