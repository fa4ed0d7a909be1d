package services

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/mihaimoje/aihack-2025-NeuroCore/config"
	"github.com/mihaimoje/aihack-2025-NeuroCore/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Client-error conditions surfaced by the engine. Everything else that can
// go wrong inside scoring degrades to the heuristic instead of failing.
var (
	ErrMissingUserID    = errors.New("user id is required")
	ErrMissingManagerID = errors.New("manager id is required")
	ErrNoTeams          = errors.New("no teams found for manager")
)

// Service is the burnout/prioritization decision engine. Store and
// Generator are injected so tests run the full pipeline against fakes.
type Service struct {
	store  Store
	oracle *Oracle
	cfg    config.ScoringConfig
	now    func() time.Time
}

func New(store Store, gen Generator, cfg config.ScoringConfig) *Service {
	return &Service{
		store:  store,
		oracle: NewOracle(gen, cfg),
		cfg:    cfg,
		now:    time.Now,
	}
}

// GetOrComputeScore returns a burnout score for the user, reusing the most
// recent stored record when it falls inside the freshness window and
// forceRefresh is false. A computed score is always persisted as a new
// record; old records are never revised.
func (s *Service) GetOrComputeScore(ctx context.Context, userID, projectID string, forceRefresh bool) (*models.BurnoutScore, error) {
	if userID == "" {
		return nil, ErrMissingUserID
	}
	now := s.now()

	if !forceRefresh {
		cached, err := s.store.FindLatestScore(ctx, userID, projectID, now.Add(-s.cfg.CacheWindow()))
		if err != nil {
			return nil, err
		}
		if cached != nil {
			return cached, nil
		}
	}

	vector, err := s.BuildFeatureVector(ctx, userID, projectID, now)
	if err != nil {
		return nil, err
	}

	result := s.scoreVector(ctx, vector, userID)

	year, week := now.ISOWeek()
	score := &models.BurnoutScore{
		ID:              primitive.NewObjectID(),
		UserID:          userID,
		ProjectID:       projectID,
		Score:           result.Score,
		RiskLevel:       result.RiskLevel,
		Week:            week,
		Year:            year,
		Factors:         result.Factors,
		Analysis:        result.Analysis,
		Recommendations: result.Recommendations,
		ModelUsed:       result.ModelUsed,
		CreatedAt:       now,
	}
	return s.store.SaveBurnoutScore(ctx, score)
}

// scoreVector runs the oracle over the vector and falls back to the
// deterministic heuristic on exhaustion. This path never returns an error:
// AI unavailability degrades silently.
func (s *Service) scoreVector(ctx context.Context, vector FeatureVector, userID string) ScoreResult {
	displayName := userID
	if user, err := s.store.FindUser(ctx, userID); err == nil && user != nil {
		if name := user.DisplayName(); name != "" {
			displayName = name
		}
	}

	var raw oracleScore
	model, err := s.oracle.Generate(ctx, buildScorePrompt(vector, displayName), &raw)
	if err != nil {
		log.Printf("burnout: falling back to heuristic for user %s: %v", userID, err)
		return FallbackScore(vector)
	}

	score := raw.Score
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	if raw.Recommendations == nil {
		// Keep the persisted sequence a sequence, never null.
		raw.Recommendations = []string{}
	}
	return ScoreResult{
		Score:           score,
		RiskLevel:       models.RiskLevelForScore(score),
		Factors:         vector.Factors(),
		Analysis:        raw.Analysis,
		Recommendations: raw.Recommendations,
		ModelUsed:       model,
	}
}
