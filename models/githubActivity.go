package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GithubActivity is one synced snapshot of a user's recent GitHub activity.
// Records are written by the external sync job; this service only reads the
// most recent one per (user, project).
type GithubActivity struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID            string             `bson:"user_id" json:"userId"`
	ProjectID         string             `bson:"project_id,omitempty" json:"projectId,omitempty"`
	CommitsCount      int                `bson:"commits_count" json:"commitsCount"`
	CommitMessages    []string           `bson:"commit_messages,omitempty" json:"commitMessages,omitempty"`
	PullRequestsCount int                `bson:"pull_requests_count" json:"pullRequestsCount"`
	IssuesCount       int                `bson:"issues_count" json:"issuesCount"`
	SyncedAt          time.Time          `bson:"synced_at" json:"syncedAt"`
}
