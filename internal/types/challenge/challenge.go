package challenge

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ImpactMetric is the per-participant environmental impact a challenge
// promises, e.g. {Unit: "kg", Value: 5} for 5kg of CO2 saved.
type ImpactMetric struct {
	Unit  string  `bson:"unit" json:"unit"`
	Value float64 `bson:"value" json:"value"`
}

type Challenge struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	ImageURL    string             `bson:"imageUrl" json:"imageUrl"`
	Category    string             `bson:"category,omitempty" json:"category,omitempty"`

	// Calendar dates as "YYYY-MM-DD" strings. Filters compare them
	// lexicographically, which is equivalent for ISO dates.
	StartDate string `bson:"startDate,omitempty" json:"startDate,omitempty"`
	EndDate   string `bson:"endDate,omitempty" json:"endDate,omitempty"`

	Participants int           `bson:"participants" json:"participants"`
	ImpactMetric *ImpactMetric `bson:"impactMetric,omitempty" json:"impactMetric,omitempty"`

	Duration string  `bson:"duration,omitempty" json:"duration,omitempty"`
	Target   float64 `bson:"target,omitempty" json:"target,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

type CreateChallengeRequest struct {
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	ImageURL     string        `json:"imageUrl"`
	Category     string        `json:"category"`
	StartDate    string        `json:"startDate"`
	EndDate      string        `json:"endDate"`
	ImpactMetric *ImpactMetric `json:"impactMetric"`
	Duration     string        `json:"duration"`
	Target       float64       `json:"target"`
}

// ListQuery carries the catalog's optional filters. Zero values mean
// "no filter"; Categories holds the already-split comma list.
type ListQuery struct {
	Categories      []string
	StartDateFrom   string
	StartDateTo     string
	MinParticipants *int
	MaxParticipants *int
	Search          string
	SortBy          string // "participants" or "" for newest-first
	SortOrder       string // "asc" | "desc"
	Page            int    // 1-indexed
}

type ListResult struct {
	Data       []*Challenge `json:"data"`
	Total      int64        `json:"total"`
	Page       int          `json:"page"`
	TotalPages int          `json:"totalPages"`
}

type Statistics struct {
	TotalParticipants int                `json:"totalParticipants"`
	ImpactTotals      map[string]float64 `json:"impactTotals"`
}
