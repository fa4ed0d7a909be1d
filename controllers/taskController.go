package controllers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mihaimoje/aihack-2025-NeuroCore/config"
	"github.com/mihaimoje/aihack-2025-NeuroCore/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CreateTask creates a task assigned to a user.
func CreateTask() gin.HandlerFunc {
	return func(c *gin.Context) {
		creatorID := getUserID(c)
		if creatorID == "" {
			return
		}
		var body struct {
			Title          string     `json:"title"`
			Description    string     `json:"description"`
			ProjectID      string     `json:"projectId"`
			ProjectName    string     `json:"projectName"`
			AssignedTo     string     `json:"assignedTo"`
			Priority       string     `json:"priority"`
			EstimatedHours float64    `json:"estimatedHours"`
			DueDate        *time.Time `json:"dueDate"`
		}
		if err := c.BindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task payload"})
			return
		}
		if body.Title == "" || body.AssignedTo == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "title and assignedTo are required"})
			return
		}

		now := time.Now()
		task := models.Task{
			ID:             primitive.NewObjectID(),
			Title:          body.Title,
			Description:    body.Description,
			ProjectID:      body.ProjectID,
			ProjectName:    body.ProjectName,
			AssignedTo:     body.AssignedTo,
			CreatedBy:      creatorID,
			Status:         models.StatusTodo,
			Priority:       models.NormalizePriority(body.Priority),
			EstimatedHours: body.EstimatedHours,
			DueDate:        body.DueDate,
			CreatedAt:      now,
			UpdatedAt:      now,
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if _, err := config.OpenCollection("tasks").InsertOne(ctx, task); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		notifyTaskAssignee(ctx, task.AssignedTo, task.ID.Hex(),
			fmt.Sprintf("You were assigned task %q", task.Title))

		c.JSON(http.StatusOK, task)
	}
}

// GetTasks lists tasks filtered by assignee, project, and status.
func GetTasks() gin.HandlerFunc {
	return func(c *gin.Context) {
		if getUserID(c) == "" {
			return
		}
		filter := bson.M{}
		if v := c.Query("assignedTo"); v != "" {
			filter["assigned_to"] = v
		}
		if v := c.Query("projectId"); v != "" {
			filter["project_id"] = v
		}
		if v := c.Query("status"); v != "" {
			filter["status"] = models.NormalizeStatus(v)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		cursor, err := config.OpenCollection("tasks").Find(ctx, filter)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		defer cursor.Close(ctx)
		var tasks []models.Task
		if err := cursor.All(ctx, &tasks); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, tasks)
	}
}

// UpdateTaskStatus moves a task through its lifecycle, stamping startedAt
// on the first move to in-progress and completedAt on done, and notifies
// the assignee.
func UpdateTaskStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		callerID := getUserID(c)
		if callerID == "" {
			return
		}
		taskID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task id"})
			return
		}
		var body struct {
			Status string `json:"status"`
		}
		if err := c.BindJSON(&body); err != nil || body.Status == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
			return
		}
		status := models.NormalizeStatus(body.Status)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		coll := config.OpenCollection("tasks")

		var task models.Task
		if err := coll.FindOne(ctx, bson.M{"_id": taskID}).Decode(&task); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}

		now := time.Now()
		set := bson.D{
			{Key: "status", Value: status},
			{Key: "updated_at", Value: now},
		}
		if status == models.StatusInProgress && task.StartedAt == nil {
			set = append(set, bson.E{Key: "started_at", Value: now})
		}
		if status == models.StatusDone && task.CompletedAt == nil {
			set = append(set, bson.E{Key: "completed_at", Value: now})
		}

		if _, err := coll.UpdateOne(ctx, bson.M{"_id": taskID}, bson.D{{Key: "$set", Value: set}}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		notifyTaskAssignee(ctx, task.AssignedTo, task.ID.Hex(),
			fmt.Sprintf("Task %q moved to %s", task.Title, status))

		if err := coll.FindOne(ctx, bson.M{"_id": taskID}).Decode(&task); err == nil {
			c.JSON(http.StatusOK, task)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Task updated"})
	}
}

// notifyTaskAssignee inserts a polled notification record. Failures are
// swallowed: notification delivery is best-effort.
func notifyTaskAssignee(ctx context.Context, userID, taskID, message string) {
	n := models.Notification{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Type:      "task-status",
		Message:   message,
		TaskID:    taskID,
		Read:      false,
		CreatedAt: time.Now(),
	}
	_, _ = config.OpenCollection("notifications").InsertOne(ctx, n)
}

// UpsertGithubActivity seeds a synced activity snapshot (admin only; the
// real writer is the external GitHub sync job).
func UpsertGithubActivity() gin.HandlerFunc {
	return func(c *gin.Context) {
		var activity models.GithubActivity
		if err := c.BindJSON(&activity); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid activity payload"})
			return
		}
		if activity.UserID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "userId is required"})
			return
		}
		activity.ID = primitive.NewObjectID()
		if activity.SyncedAt.IsZero() {
			activity.SyncedAt = time.Now()
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if _, err := config.OpenCollection("github_activity").InsertOne(ctx, activity); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, activity)
	}
}
