package services

import (
	"testing"

	"github.com/mihaimoje/aihack-2025-NeuroCore/models"
	"github.com/stretchr/testify/assert"
)

func TestFallbackScoreThresholds(t *testing.T) {
	tests := []struct {
		name   string
		vector FeatureVector
		want   int
	}{
		{"all quiet", FeatureVector{}, 0},
		{"light commits", FeatureVector{CommitsCount: 16}, 10},
		{"moderate commits", FeatureVector{CommitsCount: 31}, 20},
		{"heavy commits", FeatureVector{CommitsCount: 51}, 30},
		{"commits at boundary stay in lower band", FeatureVector{CommitsCount: 50}, 20},
		{"some tasks in progress", FeatureVector{TasksInProgress: 4}, 15},
		{"many tasks in progress", FeatureVector{TasksInProgress: 6}, 25},
		{"overloaded", FeatureVector{TasksInProgress: 9}, 35},
		{"a few overdue", FeatureVector{OverdueTasks: 3}, 15},
		{"many overdue", FeatureVector{OverdueTasks: 6}, 25},
		{"high completion", FeatureVector{CompletedTasks: 21}, 10},
		{
			"everything maxed clamps at 100",
			FeatureVector{CommitsCount: 100, TasksInProgress: 20, OverdueTasks: 12, CompletedTasks: 50},
			100,
		},
		{
			"sum below clamp",
			FeatureVector{CommitsCount: 40, TasksInProgress: 7, OverdueTasks: 4, CompletedTasks: 25},
			70,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FallbackScore(tt.vector)
			assert.Equal(t, tt.want, got.Score)
			assert.GreaterOrEqual(t, got.Score, 0)
			assert.LessOrEqual(t, got.Score, 100)
			assert.Equal(t, models.RiskLevelForScore(got.Score), got.RiskLevel)
			assert.Equal(t, models.ModelFallback, got.ModelUsed)
			assert.NotEmpty(t, got.Analysis)
			assert.NotEmpty(t, got.Recommendations)
		})
	}
}

func TestRiskLevelBoundaries(t *testing.T) {
	assert.Equal(t, models.RiskLow, models.RiskLevelForScore(39))
	assert.Equal(t, models.RiskMedium, models.RiskLevelForScore(40))
	assert.Equal(t, models.RiskMedium, models.RiskLevelForScore(69))
	assert.Equal(t, models.RiskHigh, models.RiskLevelForScore(70))
	assert.Equal(t, models.RiskLow, models.RiskLevelForScore(0))
	assert.Equal(t, models.RiskHigh, models.RiskLevelForScore(100))
}

func TestFallbackScoreFactorsSnapshot(t *testing.T) {
	v := FeatureVector{
		CommitsCount:      12,
		PullRequestsCount: 3,
		TasksInProgress:   2,
		CompletedTasks:    5,
		OverdueTasks:      1,
	}
	got := FallbackScore(v)
	assert.Equal(t, models.ScoreFactors{
		CommitsCount:      12,
		TasksInProgress:   2,
		CompletedTasks:    5,
		OverdueTasks:      1,
		PullRequestsCount: 3,
	}, got.Factors)
}
