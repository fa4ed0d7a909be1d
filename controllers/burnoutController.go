package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mihaimoje/aihack-2025-NeuroCore/helpers"
	"github.com/mihaimoje/aihack-2025-NeuroCore/services"
)

var engine *services.Service

// SetEngine wires the decision engine in at startup.
func SetEngine(s *services.Service) {
	engine = s
}

func getUserID(c *gin.Context) string {
	claimsVal, ok := c.Get("claims")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return ""
	}
	claims, ok := claimsVal.(*helpers.Claims)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid claims"})
		return ""
	}
	return claims.UserID
}

func refreshFlag(c *gin.Context) bool {
	force, _ := strconv.ParseBool(c.Query("refresh"))
	return force
}

// GetBurnoutScore returns a (possibly cached) burnout score for a user.
// Managers and admins can score anyone; the optional projectId query
// scopes the signals to one project.
func GetBurnoutScore() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("id")
		if userID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user id is required"})
			return
		}
		score, err := engine.GetOrComputeScore(
			c.Request.Context(),
			userID,
			c.Query("projectId"),
			refreshFlag(c),
		)
		if err != nil {
			if errors.Is(err, services.ErrMissingUserID) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, score)
	}
}

// GetMyBurnoutScore scores the calling user.
func GetMyBurnoutScore() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := getUserID(c)
		if userID == "" {
			return
		}
		score, err := engine.GetOrComputeScore(
			c.Request.Context(),
			userID,
			c.Query("projectId"),
			refreshFlag(c),
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, score)
	}
}

// GetTeamBurnout aggregates burnout across the calling manager's teams.
func GetTeamBurnout() gin.HandlerFunc {
	return func(c *gin.Context) {
		managerID := getUserID(c)
		if managerID == "" {
			return
		}
		summary, err := engine.GetTeamBurnout(c.Request.Context(), managerID, refreshFlag(c))
		if err != nil {
			if errors.Is(err, services.ErrNoTeams) {
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			if errors.Is(err, services.ErrMissingManagerID) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, summary)
	}
}

// GetTeamDailyHours feeds the workload heatmap: completed-task hours per
// day over the trailing four weeks.
func GetTeamDailyHours() gin.HandlerFunc {
	return func(c *gin.Context) {
		managerID := getUserID(c)
		if managerID == "" {
			return
		}
		hours, err := engine.GetTeamDailyHours(c.Request.Context(), managerID)
		if err != nil {
			if errors.Is(err, services.ErrNoTeams) {
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, hours)
	}
}

// SmartSortTasks returns the caller's open tasks in recommended order.
func SmartSortTasks() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := getUserID(c)
		if userID == "" {
			return
		}
		result, err := engine.PrioritizeTasks(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, result)
	}
}
