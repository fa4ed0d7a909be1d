package services

import (
	"context"
	"time"

	"github.com/mihaimoje/aihack-2025-NeuroCore/models"
)

// FeatureVector is the fixed signal set the oracle and the heuristic scorer
// consume. It is derived fresh on every non-cached computation; only the
// numeric factors are persisted (inside BurnoutScore.Factors).
type FeatureVector struct {
	CommitsCount      int
	RecentCommits     []string
	PullRequestsCount int
	IssuesCount       int
	TasksInProgress   int
	CompletedTasks    int
	OverdueTasks      int
	TotalTasks        int
}

// Factors snapshots the numeric part of the vector for persistence.
func (v FeatureVector) Factors() models.ScoreFactors {
	return models.ScoreFactors{
		CommitsCount:      v.CommitsCount,
		TasksInProgress:   v.TasksInProgress,
		CompletedTasks:    v.CompletedTasks,
		OverdueTasks:      v.OverdueTasks,
		PullRequestsCount: v.PullRequestsCount,
	}
}

// BuildFeatureVector aggregates the user's latest GitHub activity snapshot
// and task set into a feature vector. A user with no synced activity gets
// zero GitHub counts; that is a normal state, not an error.
func (s *Service) BuildFeatureVector(ctx context.Context, userID, projectID string, now time.Time) (FeatureVector, error) {
	var v FeatureVector

	activity, err := s.store.FindLatestGithubActivity(ctx, userID, projectID)
	if err != nil {
		return v, err
	}
	if activity != nil {
		v.CommitsCount = activity.CommitsCount
		v.PullRequestsCount = activity.PullRequestsCount
		v.IssuesCount = activity.IssuesCount
		v.RecentCommits = activity.CommitMessages
		if len(v.RecentCommits) > 5 {
			v.RecentCommits = v.RecentCommits[:5]
		}
	}

	tasks, err := s.store.FindTasks(ctx, TaskFilter{AssignedTo: userID, ProjectID: projectID})
	if err != nil {
		return v, err
	}
	v.TotalTasks = len(tasks)
	for _, t := range tasks {
		if t.IsOpen() {
			v.TasksInProgress++
		}
		if t.Status == models.StatusDone {
			v.CompletedTasks++
		}
		if t.IsOverdue(now) {
			v.OverdueTasks++
		}
	}
	return v, nil
}

// TaskFeature is the per-task record fed to the oracle by the prioritizer.
type TaskFeature struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Description     string     `json:"description,omitempty"`
	Status          string     `json:"status"`
	Priority        string     `json:"priority"`
	EstimatedHours  float64    `json:"estimatedHours"`
	DueDate         *time.Time `json:"dueDate,omitempty"`
	HoursUntilDue   float64    `json:"hoursUntilDue"`
	IsOverdue       bool       `json:"isOverdue"`
	StartedAt       *time.Time `json:"startedAt,omitempty"`
	HoursInProgress *float64   `json:"hoursInProgress,omitempty"`
	ProjectName     string     `json:"projectName,omitempty"`
}

// buildTaskFeature derives the prioritization signals for one open task.
// HoursUntilDue clamps at zero; overdue pressure is carried by IsOverdue.
func buildTaskFeature(t models.Task, now time.Time) TaskFeature {
	f := TaskFeature{
		ID:             t.ID.Hex(),
		Title:          t.Title,
		Description:    t.Description,
		Status:         t.Status,
		Priority:       t.Priority,
		EstimatedHours: t.EstimatedHours,
		DueDate:        t.DueDate,
		IsOverdue:      t.IsOverdue(now),
		StartedAt:      t.StartedAt,
		ProjectName:    t.ProjectName,
	}
	if t.DueDate != nil {
		hours := t.DueDate.Sub(now).Hours()
		if hours < 0 {
			hours = 0
		}
		f.HoursUntilDue = hours
	}
	if t.StartedAt != nil {
		hours := now.Sub(*t.StartedAt).Hours()
		if hours < 0 {
			hours = 0
		}
		f.HoursInProgress = &hours
	}
	return f
}
