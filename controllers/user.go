package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/mihaimoje/aihack-2025-NeuroCore/config"
	"github.com/mihaimoje/aihack-2025-NeuroCore/helpers"
	"github.com/mihaimoje/aihack-2025-NeuroCore/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var validate = validator.New()

// ===================== SIGNUP =====================
func Signup() gin.HandlerFunc {
	return func(c *gin.Context) {

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		userCollection := config.OpenCollection("users")

		var user models.User

		if err := c.BindJSON(&user); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if validationErr := validate.Struct(user); validationErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
			return
		}

		count, err := userCollection.CountDocuments(ctx, bson.M{"email": user.Email})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if count > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email already exists"})
			return
		}

		// Self-signup can pick MANAGER or USER; ADMIN is never
		// self-assignable.
		role := models.RoleUser
		if user.Role != nil && *user.Role == models.RoleManager {
			role = models.RoleManager
		}
		user.Role = &role

		user.Password = helpers.HashPassword(user.Password)
		user.Created_at = time.Now()
		user.Updated_at = time.Now()
		user.ID = primitive.NewObjectID()
		user.User_id = user.ID.Hex()

		accessToken, refreshToken :=
			helpers.GenerateTokens(*user.Email, user.User_id, *user.Role)

		user.Token = &accessToken
		user.Refresh_token = &refreshToken

		_, insertErr := userCollection.InsertOne(ctx, user)
		if insertErr != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": insertErr.Error()})
			return
		}

		// Return token and user so the frontend can redirect to the
		// dashboard immediately
		user.Password = nil
		user.Token = nil
		user.Refresh_token = nil
		c.JSON(http.StatusOK, gin.H{
			"message":       "User created successfully",
			"token":         accessToken,
			"refresh_token": refreshToken,
			"user":          user,
		})
	}
}

// ===================== LOGIN =====================
func Login() gin.HandlerFunc {
	return func(c *gin.Context) {

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		userCollection := config.OpenCollection("users")

		var loginInput models.User
		var foundUser models.User

		if err := c.BindJSON(&loginInput); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		if loginInput.Email == nil || loginInput.Password == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
			return
		}

		err := userCollection.
			FindOne(ctx, bson.M{"email": *loginInput.Email}).
			Decode(&foundUser)

		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}

		passwordIsValid, _ :=
			helpers.VerifyPassword(*foundUser.Password, *loginInput.Password)

		if !passwordIsValid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}

		token, refreshToken :=
			helpers.GenerateTokens(*foundUser.Email, foundUser.User_id, *foundUser.Role)

		helpers.UpdateAllTokens(token, refreshToken, foundUser.User_id)

		foundUser.Password = nil
		foundUser.Token = nil
		foundUser.Refresh_token = nil

		c.JSON(http.StatusOK, gin.H{
			"user":          foundUser,
			"token":         token,
			"refresh_token": refreshToken,
		})
	}
}

// ===================== GET CURRENT USER (ME) =====================
func GetMe() gin.HandlerFunc {
	return func(c *gin.Context) {
		claimsValue, exists := c.Get("claims")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		claims := claimsValue.(*helpers.Claims)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		var user models.User
		err := config.OpenCollection("users").
			FindOne(ctx, bson.M{"user_id": claims.UserID}).
			Decode(&user)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		user.Password = nil
		user.Token = nil
		user.Refresh_token = nil
		c.JSON(http.StatusOK, user)
	}
}

// ===================== GET SINGLE USER =====================
func GetUser() gin.HandlerFunc {
	return func(c *gin.Context) {

		requestedUserId := c.Param("id")

		claimsValue, exists := c.Get("claims")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		tokenClaims := claimsValue.(*helpers.Claims)

		// USER can only access own data
		if tokenClaims.Role != models.RoleAdmin &&
			tokenClaims.Role != models.RoleManager &&
			tokenClaims.UserID != requestedUserId {

			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		var user models.User

		err := config.OpenCollection("users").
			FindOne(ctx, bson.M{"user_id": requestedUserId}).
			Decode(&user)

		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		user.Password = nil
		user.Token = nil
		user.Refresh_token = nil

		c.JSON(http.StatusOK, user)
	}
}

// ===================== GET ALL USERS =====================
func GetUsers() gin.HandlerFunc {
	return func(c *gin.Context) {

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		cursor, err := config.OpenCollection("users").Find(ctx, bson.M{})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		defer cursor.Close(ctx)

		var users []models.User
		if err := cursor.All(ctx, &users); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		// Remove sensitive data
		for i := range users {
			users[i].Password = nil
			users[i].Token = nil
			users[i].Refresh_token = nil
		}

		c.JSON(http.StatusOK, users)
	}
}
