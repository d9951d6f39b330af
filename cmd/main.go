package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/kuiz-app/kuiz/config"
	"github.com/kuiz-app/kuiz/database"
	_ "github.com/kuiz-app/kuiz/docs" // Swagger docs - auto-generated
	"github.com/kuiz-app/kuiz/internal/controller/admin"
	"github.com/kuiz-app/kuiz/internal/controller/user"
	"github.com/kuiz-app/kuiz/internal/logger"
	"github.com/kuiz-app/kuiz/internal/mailer"
	"github.com/kuiz-app/kuiz/internal/model"
	"github.com/kuiz-app/kuiz/internal/repository"
	"github.com/kuiz-app/kuiz/internal/service"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title Kuiz API
// @version 1.0
// @description Quiz platform backend: test authoring, attempt grading, AI question drafting, and deferred score emails.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			NewGinEngine,
		),

		fx.Provide(
			repository.NewTestRepository,
			repository.NewQuestionRepository,
			repository.NewOptionRepository,
			repository.NewAttemptRepository,
			repository.NewAnswerRepository,
			repository.NewScoreEmailRepository,
		),

		fx.Provide(
			func(cfg *config.Config) mailer.Sender { return mailer.NewResendClient(cfg) },
			service.NewAdminTestService,
			service.NewTestCatalogService,
			service.NewAttemptService,
			service.NewGradingService,
			service.NewGeminiQuestionService,
			func(repo repository.ScoreEmailRepository, sender mailer.Sender, cfg *config.Config) service.ScoreEmailFlusher {
				return service.NewScoreEmailFlusher(repo, sender, cfg.Mail.FlushBatch)
			},
		),

		fx.Provide(
			admin.NewTestController,
			user.NewTestController,
		),

		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
		fx.Invoke(StartScoreEmailFlusher),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	// a wrong method on a registered path must answer 405, not 404
	r.HandleMethodNotAllowed = true

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

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages the HTTP
// server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	adminCtrl *admin.TestController,
	userCtrl *user.TestController,
) {
	adminGroup := router.Group("/api/v1/admin")
	{
		adminGroup.POST("/tests", adminCtrl.CreateTest)
		adminGroup.GET("/tests/:test_id/attempts", adminCtrl.ListTestAttempts)
		adminGroup.GET("/attempts/:attempt_id", adminCtrl.GetAttemptDetail)
		adminGroup.POST("/questions/generate", adminCtrl.GenerateQuestions)
	}

	userGroup := router.Group("/api/v1")
	{
		userGroup.GET("/tests", userCtrl.GetAllTests)
		userGroup.GET("/tests/:test_id", userCtrl.GetTestDetails)
		userGroup.POST("/tests/:test_id/attempts", userCtrl.StartAttempt)
		userGroup.POST("/grade", userCtrl.GradeAttempt)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Kuiz API server starting on port %s", cfg.Server.Port)
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

// StartScoreEmailFlusher runs the score email flusher for the process
// lifetime.
func StartScoreEmailFlusher(lc fx.Lifecycle, flusher service.ScoreEmailFlusher, cfg *config.Config) {
	interval := time.Duration(cfg.Mail.FlushInterval) * time.Second
	if interval <= 0 {
		interval = time.Minute
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				defer close(done)
				flusher.Run(ctx, interval)
			}()
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			<-done
			return nil
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.Test{},
		&model.Question{},
		&model.Option{},
		&model.Attempt{},
		&model.Answer{},
		&model.ScoreEmail{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
