package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/mihaimoje/aihack-2025-NeuroCore/config"
	"github.com/mihaimoje/aihack-2025-NeuroCore/models"
)

// fakeStore is an in-memory Store for pipeline tests.
type fakeStore struct {
	mu       sync.Mutex
	activity map[string]*models.GithubActivity
	tasks    map[string][]models.Task
	users    map[string]*models.User
	teams    map[string][]models.Team
	scores   []*models.BurnoutScore
	taskErr  map[string]error // per-user FindTasks failure injection
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		activity: make(map[string]*models.GithubActivity),
		tasks:    make(map[string][]models.Task),
		users:    make(map[string]*models.User),
		teams:    make(map[string][]models.Team),
		taskErr:  make(map[string]error),
	}
}

func (f *fakeStore) FindLatestGithubActivity(ctx context.Context, userID, projectID string) (*models.GithubActivity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.activity[userID], nil
}

func (f *fakeStore) FindTasks(ctx context.Context, filter TaskFilter) ([]models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.taskErr[filter.AssignedTo]; err != nil {
		return nil, err
	}
	var out []models.Task
	for _, t := range f.tasks[filter.AssignedTo] {
		if filter.ProjectID != "" && t.ProjectID != filter.ProjectID {
			continue
		}
		if len(filter.Statuses) > 0 && !containsString(filter.Statuses, t.Status) {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

func (f *fakeStore) FindUser(ctx context.Context, userID string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.users[userID], nil
}

func (f *fakeStore) FindTeamsByManager(ctx context.Context, managerID string) ([]models.Team, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.teams[managerID], nil
}

func (f *fakeStore) FindLatestScore(ctx context.Context, userID, projectID string, since time.Time) (*models.BurnoutScore, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var latest *models.BurnoutScore
	for _, s := range f.scores {
		if s.UserID != userID {
			continue
		}
		// Mirrors the mongo query: scoped lookups match only their
		// project, global lookups match only unscoped records.
		if s.ProjectID != projectID {
			continue
		}
		if s.CreatedAt.Before(since) {
			continue
		}
		if latest == nil || s.CreatedAt.After(latest.CreatedAt) {
			latest = s
		}
	}
	return latest, nil
}

func (f *fakeStore) SaveBurnoutScore(ctx context.Context, score *models.BurnoutScore) (*models.BurnoutScore, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scores = append(f.scores, score)
	return score, nil
}

// fakeGen scripts generator behavior and records every attempt.
type fakeGen struct {
	mu      sync.Mutex
	calls   []string // model per attempt, in order
	respond func(call int, model, prompt string) (string, error)
}

func (f *fakeGen) GenerateContent(ctx context.Context, model, prompt string) (string, error) {
	f.mu.Lock()
	call := len(f.calls)
	f.calls = append(f.calls, model)
	respond := f.respond
	f.mu.Unlock()
	if respond == nil {
		return "", &OracleError{Kind: KindTransport, Model: model, Err: errors.New("generator unavailable")}
	}
	return respond(call, model, prompt)
}

func (f *fakeGen) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeGen) calledModels() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	copy(out, f.calls)
	return out
}

// newTestService wires a Service with fakes, a fixed clock, and recorded
// (not slept) backoffs.
func newTestService(store *fakeStore, gen Generator, now time.Time) (*Service, *[]time.Duration) {
	cfg := config.DefaultScoringConfig()
	svc := New(store, gen, cfg)
	svc.now = func() time.Time { return now }
	var sleeps []time.Duration
	svc.oracle.sleep = func(d time.Duration) { sleeps = append(sleeps, d) }
	return svc, &sleeps
}
