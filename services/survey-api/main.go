package main

import (
	"log/slog"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/guild-framework/guild-backend/services/survey-api/apihandlers"
)

func main() {
	if !conf.GinConfig.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     conf.GinConfig.AllowOrigins,
		AllowMethods:     []string{"POST", "GET", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "Content-Length"},
		ExposeHeaders:    []string{"Authorization", "Content-Type", "Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Add handlers
	router.GET("/", apihandlers.HealthCheckHandle)
	v1Root := router.Group("/v1")

	v1APIHandlers := apihandlers.NewHTTPHandler(
		conf.RespondentJWTSignKey,
		surveyService,
		guildDBService,
	)
	v1APIHandlers.AddSurveyAPI(v1Root)

	slog.Info("Starting survey API", slog.String("port", conf.GinConfig.Port))
	if err := router.Run(":" + conf.GinConfig.Port); err != nil {
		slog.Error("Exited survey API", slog.String("error", err.Error()))
		return
	}
}
