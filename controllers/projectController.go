package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mihaimoje/aihack-2025-NeuroCore/config"
	"github.com/mihaimoje/aihack-2025-NeuroCore/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CreateProject creates a project owned by the caller.
func CreateProject() gin.HandlerFunc {
	return func(c *gin.Context) {
		ownerID := getUserID(c)
		if ownerID == "" {
			return
		}
		var project models.Project
		if err := c.BindJSON(&project); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project payload"})
			return
		}
		if validationErr := validate.Struct(project); validationErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
			return
		}
		now := time.Now()
		project.ID = primitive.NewObjectID()
		project.OwnerID = ownerID
		if project.Status == "" {
			project.Status = "active"
		}
		project.CreatedAt = now
		project.UpdatedAt = now

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if _, err := config.OpenCollection("projects").InsertOne(ctx, project); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, project)
	}
}

// GetProjects lists all projects.
func GetProjects() gin.HandlerFunc {
	return func(c *gin.Context) {
		if getUserID(c) == "" {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		cursor, err := config.OpenCollection("projects").Find(ctx, bson.M{})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		defer cursor.Close(ctx)
		var projects []models.Project
		if err := cursor.All(ctx, &projects); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, projects)
	}
}

// GetProject returns one project by id.
func GetProject() gin.HandlerFunc {
	return func(c *gin.Context) {
		if getUserID(c) == "" {
			return
		}
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		var project models.Project
		if err := config.OpenCollection("projects").FindOne(ctx, bson.M{"_id": id}).Decode(&project); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
			return
		}
		c.JSON(http.StatusOK, project)
	}
}

// CreateTeam creates a team managed by the caller.
func CreateTeam() gin.HandlerFunc {
	return func(c *gin.Context) {
		managerID := getUserID(c)
		if managerID == "" {
			return
		}
		var team models.Team
		if err := c.BindJSON(&team); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid team payload"})
			return
		}
		if validationErr := validate.Struct(team); validationErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
			return
		}
		team.ID = primitive.NewObjectID()
		team.ManagerID = managerID
		team.CreatedAt = time.Now()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if _, err := config.OpenCollection("teams").InsertOne(ctx, team); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, team)
	}
}

// GetMyTeams lists teams managed by the caller.
func GetMyTeams() gin.HandlerFunc {
	return func(c *gin.Context) {
		managerID := getUserID(c)
		if managerID == "" {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		cursor, err := config.OpenCollection("teams").Find(ctx, bson.M{"manager_id": managerID})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		defer cursor.Close(ctx)
		var teams []models.Team
		if err := cursor.All(ctx, &teams); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, teams)
	}
}
