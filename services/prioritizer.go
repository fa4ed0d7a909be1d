package services

import (
	"context"
	"fmt"
	"log"
	"math"
	"sort"

	"github.com/mihaimoje/aihack-2025-NeuroCore/models"
)

// PrioritizeResult is the smart-sort response: task ids in recommended
// order plus how the order was produced.
type PrioritizeResult struct {
	SortedTaskIDs []string `json:"sortedTaskIds"`
	Reasoning     string   `json:"reasoning"`
	TasksAnalyzed int      `json:"tasksAnalyzed"`
}

// PrioritizeTasks orders the user's open tasks. The oracle is asked for a
// permutation of task indices; an invalid or missing answer falls back to
// a deterministic multi-key sort, so the call only fails on bad input or
// storage errors, never on AI unavailability.
func (s *Service) PrioritizeTasks(ctx context.Context, userID string) (*PrioritizeResult, error) {
	if userID == "" {
		return nil, ErrMissingUserID
	}
	tasks, err := s.store.FindTasks(ctx, TaskFilter{
		AssignedTo: userID,
		Statuses:   []string{models.StatusTodo, models.StatusInProgress},
	})
	if err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		return &PrioritizeResult{
			SortedTaskIDs: []string{},
			Reasoning:     "No open tasks to prioritize.",
			TasksAnalyzed: 0,
		}, nil
	}

	now := s.now()
	features := make([]TaskFeature, len(tasks))
	for i, t := range tasks {
		features[i] = buildTaskFeature(t, now)
	}

	var order []int
	model, err := s.oracle.Generate(ctx, buildPrioritizePrompt(features), &order)
	reasoning := ""
	if err == nil && isPermutation(order, len(tasks)) {
		reasoning = fmt.Sprintf("Ordered by %s weighing overdue status, deadline proximity, progress, and priority.", model)
	} else {
		if err != nil {
			log.Printf("prioritize: oracle unavailable for user %s: %v", userID, err)
		} else {
			log.Printf("prioritize: oracle returned invalid permutation for user %s: %v", userID, order)
		}
		order = fallbackOrder(features)
		reasoning = "Ordered deterministically: overdue first, then in-progress, then by priority and deadline proximity."
	}

	ids := make([]string, len(order))
	for i, idx := range order {
		ids[i] = tasks[idx].ID.Hex()
	}
	return &PrioritizeResult{
		SortedTaskIDs: ids,
		Reasoning:     reasoning,
		TasksAnalyzed: len(tasks),
	}, nil
}

// isPermutation checks that order holds exactly the indices 0..n-1.
func isPermutation(order []int, n int) bool {
	if len(order) != n {
		return false
	}
	seen := make([]bool, n)
	for _, idx := range order {
		if idx < 0 || idx >= n || seen[idx] {
			return false
		}
		seen[idx] = true
	}
	return true
}

// fallbackOrder sorts task indices by the deterministic composite key:
// overdue tasks first, then in-progress before to-do, then priority rank
// (high before low), then hours until due ascending. Stable, so ties keep
// the creation-time base order.
func fallbackOrder(features []TaskFeature) []int {
	order := make([]int, len(features))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(x, y int) bool {
		a, b := features[order[x]], features[order[y]]
		if a.IsOverdue != b.IsOverdue {
			return a.IsOverdue
		}
		aProg := a.Status == models.StatusInProgress
		bProg := b.Status == models.StatusInProgress
		if aProg != bProg {
			return aProg
		}
		aRank := models.PriorityRank(a.Priority)
		bRank := models.PriorityRank(b.Priority)
		if aRank != bRank {
			return aRank < bRank
		}
		return hoursUntilDueOrInf(a) < hoursUntilDueOrInf(b)
	})
	return order
}

// hoursUntilDueOrInf pushes tasks without a deadline behind every dated
// task of otherwise-equal rank.
func hoursUntilDueOrInf(f TaskFeature) float64 {
	if f.DueDate == nil {
		return math.Inf(1)
	}
	return f.HoursUntilDue
}
