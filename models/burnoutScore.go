package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Risk levels derived from the 0-100 score.
const (
	RiskLow    = "low"
	RiskMedium = "medium"
	RiskHigh   = "high"
)

// ModelFallback marks scores produced by the deterministic heuristic
// instead of a generative model.
const ModelFallback = "heuristic-fallback"

// ScoreFactors is the feature snapshot a score was computed from.
type ScoreFactors struct {
	CommitsCount      int `bson:"commits_count" json:"commitsCount"`
	TasksInProgress   int `bson:"tasks_in_progress" json:"tasksInProgress"`
	CompletedTasks    int `bson:"completed_tasks" json:"completedTasks"`
	OverdueTasks      int `bson:"overdue_tasks" json:"overdueTasks"`
	PullRequestsCount int `bson:"pull_requests_count" json:"pullRequestsCount"`
}

// BurnoutScore is one computed risk record for a user. Records are
// append-only: a refresh inserts a new document, it never edits an old one.
type BurnoutScore struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID          string             `bson:"user_id" json:"userId"`
	ProjectID       string             `bson:"project_id,omitempty" json:"projectId,omitempty"`
	Score           int                `bson:"score" json:"score"`
	RiskLevel       string             `bson:"risk_level" json:"riskLevel"`
	Week            int                `bson:"week" json:"week"`
	Year            int                `bson:"year" json:"year"`
	Factors         ScoreFactors       `bson:"factors" json:"factors"`
	Analysis        string             `bson:"analysis" json:"analysis"`
	Recommendations []string           `bson:"recommendations" json:"recommendations"`
	ModelUsed       string             `bson:"model_used" json:"modelUsed"`
	CreatedAt       time.Time          `bson:"created_at" json:"createdAt"`
}

// RiskLevelForScore maps a score onto the risk bands: <40 low,
// 40-69 medium, >=70 high.
func RiskLevelForScore(score int) string {
	switch {
	case score >= 70:
		return RiskHigh
	case score >= 40:
		return RiskMedium
	default:
		return RiskLow
	}
}
