package services

import (
	"github.com/mihaimoje/aihack-2025-NeuroCore/models"
)

// ScoreResult is what a scoring path (oracle or heuristic) produces before
// persistence decorates it with week/year/timestamps.
type ScoreResult struct {
	Score           int
	RiskLevel       string
	Factors         models.ScoreFactors
	Analysis        string
	Recommendations []string
	ModelUsed       string
}

const fallbackAnalysis = "Score computed from workload signals using fixed thresholds because the AI service was unavailable."

var fallbackRecommendations = []string{
	"Review the number of tasks currently in progress and close or reassign stalled ones.",
	"Prioritize overdue tasks before taking on new work.",
	"Discuss workload with your manager if the pace is not sustainable.",
}

// FallbackScore is the deterministic heuristic used when the oracle is
// exhausted. Thresholds are evaluated independently and summed, then
// clamped to [0,100]. Pull requests are reported in the factors but carry
// no weight here.
func FallbackScore(v FeatureVector) ScoreResult {
	score := 0

	switch {
	case v.CommitsCount > 50:
		score += 30
	case v.CommitsCount > 30:
		score += 20
	case v.CommitsCount > 15:
		score += 10
	}

	switch {
	case v.TasksInProgress > 8:
		score += 35
	case v.TasksInProgress > 5:
		score += 25
	case v.TasksInProgress > 3:
		score += 15
	}

	switch {
	case v.OverdueTasks > 5:
		score += 25
	case v.OverdueTasks > 2:
		score += 15
	}

	if v.CompletedTasks > 20 {
		score += 10
	}

	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}

	recs := make([]string, len(fallbackRecommendations))
	copy(recs, fallbackRecommendations)

	return ScoreResult{
		Score:           score,
		RiskLevel:       models.RiskLevelForScore(score),
		Factors:         v.Factors(),
		Analysis:        fallbackAnalysis,
		Recommendations: recs,
		ModelUsed:       models.ModelFallback,
	}
}
