package services

import (
	"context"
	"log"
	"math"
	"sort"
	"time"

	"github.com/mihaimoje/aihack-2025-NeuroCore/models"
	"golang.org/x/sync/errgroup"
)

// TeamMemberScore is one member's entry in a team summary. A member whose
// scoring failed is carried with a zero score and the error text instead
// of aborting the batch.
type TeamMemberScore struct {
	UserID    string `json:"userId"`
	Name      string `json:"name"`
	Score     int    `json:"score"`
	RiskLevel string `json:"riskLevel"`
	ModelUsed string `json:"modelUsed,omitempty"`
	Error     string `json:"error,omitempty"`
}

type RiskDistribution struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

type TeamSummary struct {
	TeamSize         int               `json:"teamSize"`
	AverageScore     int               `json:"averageScore"`
	RiskDistribution RiskDistribution  `json:"riskDistribution"`
	Members          []TeamMemberScore `json:"members"`
}

// memberScoringConcurrency bounds parallel oracle calls during team
// aggregation.
const memberScoringConcurrency = 4

// GetTeamBurnout scores every unique member across the manager's teams and
// aggregates the results. A member on several teams is scored once. Only a
// manager with zero teams fails the call as a whole.
func (s *Service) GetTeamBurnout(ctx context.Context, managerID string, forceRefresh bool) (*TeamSummary, error) {
	if managerID == "" {
		return nil, ErrMissingManagerID
	}
	teams, err := s.store.FindTeamsByManager(ctx, managerID)
	if err != nil {
		return nil, err
	}
	if len(teams) == 0 {
		return nil, ErrNoTeams
	}

	memberIDs := uniqueMembers(teams)

	// Members are independent; fan out, keep each member's own
	// cache->oracle->fallback->persist chain sequential.
	results := make([]TeamMemberScore, len(memberIDs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(memberScoringConcurrency)
	for i, uid := range memberIDs {
		i, uid := i, uid
		g.Go(func() error {
			results[i] = s.scoreMember(gctx, uid, forceRefresh)
			return nil
		})
	}
	// Worker funcs never return errors; per-member failures are recorded
	// in place.
	_ = g.Wait()

	sort.SliceStable(results, func(a, b int) bool {
		return results[a].Score > results[b].Score
	})

	summary := &TeamSummary{
		TeamSize: len(results),
		Members:  results,
	}
	sum := 0
	for _, m := range results {
		sum += m.Score
		switch m.RiskLevel {
		case models.RiskHigh:
			summary.RiskDistribution.High++
		case models.RiskMedium:
			summary.RiskDistribution.Medium++
		default:
			summary.RiskDistribution.Low++
		}
	}
	if len(results) > 0 {
		summary.AverageScore = int(math.Round(float64(sum) / float64(len(results))))
	}
	return summary, nil
}

func (s *Service) scoreMember(ctx context.Context, userID string, forceRefresh bool) TeamMemberScore {
	member := TeamMemberScore{UserID: userID, Name: userID}
	if user, err := s.store.FindUser(ctx, userID); err == nil && user != nil {
		if name := user.DisplayName(); name != "" {
			member.Name = name
		}
	}

	score, err := s.GetOrComputeScore(ctx, userID, "", forceRefresh)
	if err != nil {
		log.Printf("team burnout: scoring member %s failed: %v", userID, err)
		member.Score = 0
		member.RiskLevel = models.RiskLow
		member.Error = err.Error()
		return member
	}
	member.Score = score.Score
	member.RiskLevel = score.RiskLevel
	member.ModelUsed = score.ModelUsed
	return member
}

// uniqueMembers unions team member lists preserving first-seen order.
func uniqueMembers(teams []models.Team) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, team := range teams {
		for _, uid := range team.Members {
			if _, ok := seen[uid]; ok {
				continue
			}
			seen[uid] = struct{}{}
			out = append(out, uid)
		}
	}
	return out
}

// dailyHoursWindow is the trailing period the workload heatmap covers.
const dailyHoursWindowDays = 28

type DailyHours struct {
	Date      string  `json:"date"`
	Hours     float64 `json:"hours"`
	DayOfWeek string  `json:"dayOfWeek"`
}

type TeamDailyHours struct {
	DailyHours []DailyHours `json:"dailyHours"`
	Period     string       `json:"period"`
}

// GetTeamDailyHours buckets completed-task durations per calendar day (UTC)
// over the trailing 28 days, across all unique members of the manager's
// teams. Days without completions report zero hours.
func (s *Service) GetTeamDailyHours(ctx context.Context, managerID string) (*TeamDailyHours, error) {
	if managerID == "" {
		return nil, ErrMissingManagerID
	}
	teams, err := s.store.FindTeamsByManager(ctx, managerID)
	if err != nil {
		return nil, err
	}
	if len(teams) == 0 {
		return nil, ErrNoTeams
	}

	now := s.now().UTC()
	windowStart := now.AddDate(0, 0, -(dailyHoursWindowDays - 1)).Truncate(24 * time.Hour)

	buckets := make(map[string]float64)
	for _, uid := range uniqueMembers(teams) {
		tasks, err := s.store.FindTasks(ctx, TaskFilter{AssignedTo: uid, Statuses: []string{models.StatusDone}})
		if err != nil {
			return nil, err
		}
		for _, t := range tasks {
			if t.CompletedAt == nil || t.StartedAt == nil {
				continue
			}
			done := t.CompletedAt.UTC()
			if done.Before(windowStart) || done.After(now) {
				continue
			}
			hours := done.Sub(t.StartedAt.UTC()).Hours()
			if hours < 0 {
				continue
			}
			buckets[done.Format("2006-01-02")] += hours
		}
	}

	out := &TeamDailyHours{Period: "28 days"}
	for day := windowStart; !day.After(now); day = day.AddDate(0, 0, 1) {
		key := day.Format("2006-01-02")
		out.DailyHours = append(out.DailyHours, DailyHours{
			Date:      key,
			Hours:     math.Round(buckets[key]*100) / 100,
			DayOfWeek: day.Weekday().String(),
		})
	}
	return out, nil
}
