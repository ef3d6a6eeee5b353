package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/tuanng-dev/quizhive/config"
	"github.com/tuanng-dev/quizhive/database"
	_ "github.com/tuanng-dev/quizhive/docs" // Swagger docs
	hostctrl "github.com/tuanng-dev/quizhive/internal/controller/host"
	playerctrl "github.com/tuanng-dev/quizhive/internal/controller/player"
	"github.com/tuanng-dev/quizhive/internal/logger"
	"github.com/tuanng-dev/quizhive/internal/model"
	"github.com/tuanng-dev/quizhive/internal/repository"
	"github.com/tuanng-dev/quizhive/internal/service"
	"github.com/tuanng-dev/quizhive/internal/ws"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title QuizHive Live Session API
// @version 1.0
// @description API for live multi-participant quiz sessions with speed-weighted scoring.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		// Core application components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase, // Provides *gorm.DB
			NewGinEngine,         // Provides *gin.Engine
			ws.NewHub,
			func(hub *ws.Hub) service.ChangeNotifier { return hub },
			service.NewRuntimeRegistry,
		),

		// Repositories layer
		fx.Provide(
			repository.NewSessionRepository,
			repository.NewQuestionRepository,
			repository.NewParticipantRepository,
			repository.NewAnswerRepository,
		),

		// Services layer
		fx.Provide(
			service.NewScoringService,
			service.NewLeaderboardService,
			service.NewSessionService,
			service.NewAnswerService,
			service.NewParticipantService,
		),

		// API controllers layer
		fx.Provide(
			hostctrl.NewSessionController,
			playerctrl.NewPlayerController,
		),

		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger UI: http://localhost:PORT/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	sessionCtrl *hostctrl.SessionController,
	playerCtrl *playerctrl.PlayerController,
) {
	// Host routes (prefixed with /api/v1/host)
	hostGroup := router.Group("/api/v1/host")
	{
		sessionsGroup := hostGroup.Group("/sessions")
		sessionsGroup.POST("", sessionCtrl.CreateSession)
		sessionsGroup.GET("/:session_id", sessionCtrl.GetSessionState)
		sessionsGroup.POST("/:session_id/start", sessionCtrl.StartSession)
		sessionsGroup.POST("/:session_id/advance", sessionCtrl.AdvanceQuestion)
		sessionsGroup.POST("/:session_id/finish", sessionCtrl.FinishSession)
		sessionsGroup.GET("/:session_id/leaderboard", sessionCtrl.GetLeaderboard)
	}

	// Player routes (prefixed with /api/v1/play)
	playGroup := router.Group("/api/v1/play")
	{
		playGroup.POST("/enroll", playerCtrl.Enroll)
		playGroup.GET("/sessions/:session_id", playerCtrl.GetSessionState)
		playGroup.POST("/sessions/:session_id/answer", playerCtrl.SubmitAnswer)
		playGroup.GET("/sessions/:session_id/result", playerCtrl.GetMyResult)
	}

	// Websocket change cues
	router.GET("/ws/sessions/:session_id", playerCtrl.HandleWebSocket)

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("QuizHive server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.Session{},
		&model.Question{},
		&model.Option{},
		&model.Participant{},
		&model.Answer{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
