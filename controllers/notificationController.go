package controllers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mihaimoje/aihack-2025-NeuroCore/config"
	"github.com/mihaimoje/aihack-2025-NeuroCore/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetMyNotifications returns the caller's notifications, newest first.
// Clients poll this endpoint; there is no push channel.
func GetMyNotifications() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := getUserID(c)
		if userID == "" {
			return
		}
		limit := int64(50)
		if l := c.Query("limit"); l != "" {
			if n, err := strconv.ParseInt(l, 10, 64); err == nil && n > 0 {
				limit = n
			}
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(limit)
		cursor, err := config.OpenCollection("notifications").Find(ctx, bson.M{"user_id": userID}, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		defer cursor.Close(ctx)
		var notifications []models.Notification
		if err := cursor.All(ctx, &notifications); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, notifications)
	}
}

// MarkNotificationRead marks one of the caller's notifications as read.
func MarkNotificationRead() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := getUserID(c)
		if userID == "" {
			return
		}
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid notification id"})
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		res, err := config.OpenCollection("notifications").UpdateOne(ctx,
			bson.M{"_id": id, "user_id": userID},
			bson.D{{Key: "$set", Value: bson.D{{Key: "read", Value: true}}}},
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if res.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
	}
}
