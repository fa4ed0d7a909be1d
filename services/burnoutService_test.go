package services

import (
	"context"
	"testing"
	"time"

	"github.com/mihaimoje/aihack-2025-NeuroCore/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var testNow = time.Date(2025, 3, 12, 15, 0, 0, 0, time.UTC)

func strptr(s string) *string { return &s }

func seedUser(store *fakeStore, id, first, last string) {
	store.users[id] = &models.User{
		User_id:    id,
		First_name: strptr(first),
		Last_name:  strptr(last),
		Email:      strptr(first + "@example.com"),
	}
}

func TestGetOrComputeScoreRequiresUserID(t *testing.T) {
	svc, _ := newTestService(newFakeStore(), &fakeGen{}, testNow)
	_, err := svc.GetOrComputeScore(context.Background(), "", "", false)
	assert.ErrorIs(t, err, ErrMissingUserID)
}

func TestGetOrComputeScoreFallsBackWhenOracleExhausted(t *testing.T) {
	store := newFakeStore()
	seedUser(store, "u1", "Ana", "Pop")
	store.activity["u1"] = &models.GithubActivity{UserID: "u1", CommitsCount: 35, PullRequestsCount: 2}
	store.tasks["u1"] = []models.Task{
		{ID: primitive.NewObjectID(), AssignedTo: "u1", Status: models.StatusInProgress},
		{ID: primitive.NewObjectID(), AssignedTo: "u1", Status: models.StatusDone},
	}
	gen := &fakeGen{} // every call fails
	svc, _ := newTestService(store, gen, testNow)

	score, err := svc.GetOrComputeScore(context.Background(), "u1", "", false)
	require.NoError(t, err)

	vector, verr := svc.BuildFeatureVector(context.Background(), "u1", "", testNow)
	require.NoError(t, verr)
	want := FallbackScore(vector)

	assert.Equal(t, want.Score, score.Score)
	assert.Equal(t, want.RiskLevel, score.RiskLevel)
	assert.Equal(t, want.Factors, score.Factors)
	assert.Equal(t, models.ModelFallback, score.ModelUsed)
	// One attempt per candidate before giving up.
	assert.Equal(t, 3, gen.callCount())
	// The record was persisted.
	assert.Len(t, store.scores, 1)
}

func TestGetOrComputeScoreUsesOracleResult(t *testing.T) {
	store := newFakeStore()
	seedUser(store, "u1", "Ana", "Pop")
	gen := &fakeGen{respond: func(call int, model, prompt string) (string, error) {
		return `{"score": 82, "riskLevel": "high", "analysis": "heavy load", "recommendations": ["take a break"]}`, nil
	}}
	svc, _ := newTestService(store, gen, testNow)

	score, err := svc.GetOrComputeScore(context.Background(), "u1", "", false)
	require.NoError(t, err)
	assert.Equal(t, 82, score.Score)
	assert.Equal(t, models.RiskHigh, score.RiskLevel)
	assert.Equal(t, "heavy load", score.Analysis)
	assert.Equal(t, []string{"take a break"}, score.Recommendations)
	assert.Equal(t, "gemini-2.0-flash", score.ModelUsed)

	year, week := testNow.ISOWeek()
	assert.Equal(t, week, score.Week)
	assert.Equal(t, year, score.Year)
	assert.Equal(t, 1, gen.callCount())
}

func TestGetOrComputeScoreNormalizesRiskLevelFromScore(t *testing.T) {
	store := newFakeStore()
	gen := &fakeGen{respond: func(call int, model, prompt string) (string, error) {
		// Model contradicts itself; the score wins.
		return `{"score": 20, "riskLevel": "high"}`, nil
	}}
	svc, _ := newTestService(store, gen, testNow)

	score, err := svc.GetOrComputeScore(context.Background(), "u1", "", false)
	require.NoError(t, err)
	assert.Equal(t, models.RiskLow, score.RiskLevel)
}

func TestGetOrComputeScoreCacheHit(t *testing.T) {
	store := newFakeStore()
	gen := &fakeGen{respond: func(call int, model, prompt string) (string, error) {
		return `{"score": 30}`, nil
	}}
	svc, _ := newTestService(store, gen, testNow)

	first, err := svc.GetOrComputeScore(context.Background(), "u1", "", false)
	require.NoError(t, err)

	second, err := svc.GetOrComputeScore(context.Background(), "u1", "", false)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, store.scores, 1)
	assert.Equal(t, 1, gen.callCount())
}

func TestGetOrComputeScoreForceRefreshBypassesCache(t *testing.T) {
	store := newFakeStore()
	gen := &fakeGen{respond: func(call int, model, prompt string) (string, error) {
		return `{"score": 30}`, nil
	}}
	svc, _ := newTestService(store, gen, testNow)

	first, err := svc.GetOrComputeScore(context.Background(), "u1", "", false)
	require.NoError(t, err)

	second, err := svc.GetOrComputeScore(context.Background(), "u1", "", true)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Len(t, store.scores, 2)
}

func TestGetOrComputeScoreStaleRecordRecomputed(t *testing.T) {
	store := newFakeStore()
	stale := &models.BurnoutScore{
		ID:        primitive.NewObjectID(),
		UserID:    "u1",
		Score:     90,
		CreatedAt: testNow.Add(-61 * time.Minute),
	}
	store.scores = append(store.scores, stale)
	gen := &fakeGen{respond: func(call int, model, prompt string) (string, error) {
		return `{"score": 10}`, nil
	}}
	svc, _ := newTestService(store, gen, testNow)

	score, err := svc.GetOrComputeScore(context.Background(), "u1", "", false)
	require.NoError(t, err)
	assert.NotEqual(t, stale.ID, score.ID)
	assert.Equal(t, 10, score.Score)
}

func TestGetOrComputeScoreProjectScopedCache(t *testing.T) {
	store := newFakeStore()
	gen := &fakeGen{respond: func(call int, model, prompt string) (string, error) {
		return `{"score": 30}`, nil
	}}
	svc, _ := newTestService(store, gen, testNow)

	global, err := svc.GetOrComputeScore(context.Background(), "u1", "", false)
	require.NoError(t, err)

	// A project-scoped request must not reuse the global record.
	scoped, err := svc.GetOrComputeScore(context.Background(), "u1", "p1", false)
	require.NoError(t, err)
	assert.NotEqual(t, global.ID, scoped.ID)
	assert.Equal(t, "p1", scoped.ProjectID)
}

func TestGetOrComputeScoreGlobalLookupIgnoresScopedRecord(t *testing.T) {
	store := newFakeStore()
	gen := &fakeGen{respond: func(call int, model, prompt string) (string, error) {
		return `{"score": 30}`, nil
	}}
	svc, _ := newTestService(store, gen, testNow)

	scoped, err := svc.GetOrComputeScore(context.Background(), "u1", "p1", false)
	require.NoError(t, err)

	// A fresh project-scoped record must not satisfy a global request.
	global, err := svc.GetOrComputeScore(context.Background(), "u1", "", false)
	require.NoError(t, err)
	assert.NotEqual(t, scoped.ID, global.ID)
	assert.Empty(t, global.ProjectID)
	assert.Len(t, store.scores, 2)
}

func TestGetOrComputeScoreRecommendationsNeverNull(t *testing.T) {
	store := newFakeStore()
	gen := &fakeGen{respond: func(call int, model, prompt string) (string, error) {
		return `{"score": 30, "analysis": "fine"}`, nil // no recommendations key
	}}
	svc, _ := newTestService(store, gen, testNow)

	score, err := svc.GetOrComputeScore(context.Background(), "u1", "", false)
	require.NoError(t, err)
	require.NotNil(t, score.Recommendations)
	assert.Empty(t, score.Recommendations)
}

func TestBuildFeatureVectorNoActivity(t *testing.T) {
	store := newFakeStore()
	due := testNow.Add(-2 * time.Hour)
	store.tasks["u1"] = []models.Task{
		{AssignedTo: "u1", Status: models.StatusTodo},
		{AssignedTo: "u1", Status: models.StatusInProgress, DueDate: &due},
		{AssignedTo: "u1", Status: models.StatusDone},
	}
	svc, _ := newTestService(store, &fakeGen{}, testNow)

	v, err := svc.BuildFeatureVector(context.Background(), "u1", "", testNow)
	require.NoError(t, err)
	assert.Zero(t, v.CommitsCount)
	assert.Zero(t, v.PullRequestsCount)
	assert.Equal(t, 2, v.TasksInProgress) // to-do and in-progress both count
	assert.Equal(t, 1, v.CompletedTasks)
	assert.Equal(t, 1, v.OverdueTasks)
	assert.Equal(t, 3, v.TotalTasks)
}

func TestBuildFeatureVectorDoneTaskNotOverdue(t *testing.T) {
	store := newFakeStore()
	due := testNow.Add(-48 * time.Hour)
	store.tasks["u1"] = []models.Task{
		{AssignedTo: "u1", Status: models.StatusDone, DueDate: &due},
	}
	svc, _ := newTestService(store, &fakeGen{}, testNow)

	v, err := svc.BuildFeatureVector(context.Background(), "u1", "", testNow)
	require.NoError(t, err)
	assert.Zero(t, v.OverdueTasks)
}
