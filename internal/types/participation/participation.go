package participation

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	StatusNotStarted = "Not Started"
	StatusOngoing    = "Ongoing"
)

// UserChallenge is the join record between a user and a challenge.
// Exactly one document per (userId, challengeId); the pair is enforced
// unique at the store level so concurrent joins cannot both insert.
type UserChallenge struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      string             `bson:"userId" json:"userId"`
	ChallengeID primitive.ObjectID `bson:"challengeId" json:"challengeId"`
	Status      string             `bson:"status" json:"status"`
	Progress    float64            `bson:"progress" json:"progress"`
	JoinDate    time.Time          `bson:"joinDate" json:"joinDate"`
	LastUpdated time.Time          `bson:"lastUpdated" json:"lastUpdated"`

	// Populated on detail reads only; empty when the referenced
	// challenge no longer exists.
	ChallengeTitle string `bson:"-" json:"challengeTitle,omitempty"`
}

// ProgressUpdate is a partial update: nil fields are left untouched.
type ProgressUpdate struct {
	Progress *float64 `json:"progress"`
	Status   *string  `json:"status"`
}

// Activity is the flattened shape produced by joining a participation
// record with its challenge.
type Activity struct {
	ID             primitive.ObjectID `bson:"_id" json:"id"`
	UserID         string             `bson:"userId" json:"userId"`
	ChallengeID    primitive.ObjectID `bson:"challengeId" json:"challengeId"`
	Progress       float64            `bson:"progress" json:"progress"`
	Status         string             `bson:"status" json:"status"`
	ChallengeTitle string             `bson:"challengeTitle" json:"challengeTitle"`
	Category       string             `bson:"category,omitempty" json:"category,omitempty"`
	Duration       string             `bson:"duration,omitempty" json:"duration,omitempty"`
	Target         float64            `bson:"target,omitempty" json:"target,omitempty"`
}

// JoinResult distinguishes a first-time join from a repeat attempt.
type JoinResult struct {
	Joined bool `json:"joined"`
}
