package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/mihaimoje/aihack-2025-NeuroCore/config"
	"github.com/mihaimoje/aihack-2025-NeuroCore/controllers"
	"github.com/mihaimoje/aihack-2025-NeuroCore/helpers"
	"github.com/mihaimoje/aihack-2025-NeuroCore/middleware"
	"github.com/mihaimoje/aihack-2025-NeuroCore/routes"
	"github.com/mihaimoje/aihack-2025-NeuroCore/services"
)

func main() {

	log.Println("Starting application...")

	helpers.SetJWTKey(config.JWTSigningKey())

	scoringCfg := config.LoadScoringConfig(os.Getenv("SCORING_CONFIG"))

	var generator services.Generator
	if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
		var err error
		generator, err = services.NewGeminiGenerator(context.Background(), apiKey)
		if err != nil {
			log.Fatalf("Failed to build Gemini client: %v", err)
		}
	} else {
		// Without a key every scoring call degrades to the heuristic.
		log.Println("GEMINI_API_KEY not set, burnout scoring will use the heuristic fallback")
		generator = services.UnavailableGenerator()
	}

	controllers.SetEngine(services.New(services.NewMongoStore(), generator, scoringCfg))

	//Init gin router
	r := gin.Default()
	r.Use(middleware.RequestID())
	api := r.Group("/api")
	routes.SetupRoutes(api)

	r.Static("/static", "./static")
	r.GET("/", func(c *gin.Context) { c.File("./static/index.html") })
	r.GET("/login", func(c *gin.Context) { c.File("./static/index.html") })
	r.GET("/signup", func(c *gin.Context) { c.File("./static/signup.html") })
	r.GET("/dashboard", func(c *gin.Context) { c.File("./static/dashboard.html") })

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	//Start the server
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
