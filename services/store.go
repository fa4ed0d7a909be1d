package services

import (
	"context"
	"time"

	"github.com/mihaimoje/aihack-2025-NeuroCore/config"
	"github.com/mihaimoje/aihack-2025-NeuroCore/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TaskFilter selects tasks for the scoring and prioritization pipelines.
type TaskFilter struct {
	AssignedTo string
	ProjectID  string
	Statuses   []string
}

// Store is the persistence surface the decision engine reads and writes
// through. The mongo implementation lives below; tests use fakes.
type Store interface {
	// FindLatestGithubActivity returns the most recently synced activity
	// record for the user, or nil when none exists (not an error).
	FindLatestGithubActivity(ctx context.Context, userID, projectID string) (*models.GithubActivity, error)

	// FindTasks returns matching tasks ordered by creation time ascending.
	FindTasks(ctx context.Context, filter TaskFilter) ([]models.Task, error)

	// FindUser returns nil when the user does not exist.
	FindUser(ctx context.Context, userID string) (*models.User, error)

	FindTeamsByManager(ctx context.Context, managerID string) ([]models.Team, error)

	// FindLatestScore returns the newest burnout score for (user, project)
	// created at or after since, or nil when none qualifies.
	FindLatestScore(ctx context.Context, userID, projectID string, since time.Time) (*models.BurnoutScore, error)

	// SaveBurnoutScore inserts a new record and returns it with its
	// generated id. Scores are never updated through this interface.
	SaveBurnoutScore(ctx context.Context, score *models.BurnoutScore) (*models.BurnoutScore, error)
}

type mongoStore struct{}

// NewMongoStore returns the Store backed by the shared mongo client.
func NewMongoStore() Store {
	return &mongoStore{}
}

func (s *mongoStore) FindLatestGithubActivity(ctx context.Context, userID, projectID string) (*models.GithubActivity, error) {
	coll := config.OpenCollection("github_activity")
	filter := bson.M{"user_id": userID}
	if projectID != "" {
		filter["project_id"] = projectID
	}
	opts := options.FindOne().SetSort(bson.D{{Key: "synced_at", Value: -1}})
	var activity models.GithubActivity
	err := coll.FindOne(ctx, filter, opts).Decode(&activity)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &activity, nil
}

func (s *mongoStore) FindTasks(ctx context.Context, filter TaskFilter) ([]models.Task, error) {
	coll := config.OpenCollection("tasks")
	query := bson.M{}
	if filter.AssignedTo != "" {
		query["assigned_to"] = filter.AssignedTo
	}
	if filter.ProjectID != "" {
		query["project_id"] = filter.ProjectID
	}
	if len(filter.Statuses) > 0 {
		query["status"] = bson.M{"$in": filter.Statuses}
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := coll.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var out []models.Task
	err = cursor.All(ctx, &out)
	return out, err
}

func (s *mongoStore) FindUser(ctx context.Context, userID string) (*models.User, error) {
	coll := config.OpenCollection("users")
	var user models.User
	err := coll.FindOne(ctx, bson.M{"user_id": userID}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *mongoStore) FindTeamsByManager(ctx context.Context, managerID string) ([]models.Team, error) {
	coll := config.OpenCollection("teams")
	cursor, err := coll.Find(ctx, bson.M{"manager_id": managerID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var out []models.Team
	err = cursor.All(ctx, &out)
	return out, err
}

func (s *mongoStore) FindLatestScore(ctx context.Context, userID, projectID string, since time.Time) (*models.BurnoutScore, error) {
	coll := config.OpenCollection("burnout_scores")
	filter := bson.M{
		"user_id":    userID,
		"created_at": bson.M{"$gte": since},
	}
	if projectID != "" {
		filter["project_id"] = projectID
	} else {
		// A global lookup must not serve a project-scoped score.
		filter["project_id"] = bson.M{"$exists": false}
	}
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})
	var score models.BurnoutScore
	err := coll.FindOne(ctx, filter, opts).Decode(&score)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &score, nil
}

func (s *mongoStore) SaveBurnoutScore(ctx context.Context, score *models.BurnoutScore) (*models.BurnoutScore, error) {
	coll := config.OpenCollection("burnout_scores")
	res, err := coll.InsertOne(ctx, score)
	if err != nil {
		return nil, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		score.ID = oid
	}
	return score, nil
}
