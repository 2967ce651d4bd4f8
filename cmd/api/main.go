package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/fsfcare/care-api/internal/config"
	"github.com/fsfcare/care-api/internal/email"
	"github.com/fsfcare/care-api/internal/handler"
	accesscodeHandler "github.com/fsfcare/care-api/internal/handler/accesscode"
	attendanceHandler "github.com/fsfcare/care-api/internal/handler/attendance"
	authHandler "github.com/fsfcare/care-api/internal/handler/auth"
	caresheetHandler "github.com/fsfcare/care-api/internal/handler/caresheet"
	patientHandler "github.com/fsfcare/care-api/internal/handler/patient"
	questionHandler "github.com/fsfcare/care-api/internal/handler/question"
	userHandler "github.com/fsfcare/care-api/internal/handler/user"
	"github.com/fsfcare/care-api/internal/middleware"
	"github.com/fsfcare/care-api/internal/repository/postgres"
	"github.com/fsfcare/care-api/internal/router"
	accesscodeService "github.com/fsfcare/care-api/internal/service/accesscode"
	attendanceService "github.com/fsfcare/care-api/internal/service/attendance"
	auditService "github.com/fsfcare/care-api/internal/service/audit"
	authService "github.com/fsfcare/care-api/internal/service/auth"
	caresheetService "github.com/fsfcare/care-api/internal/service/caresheet"
	patientService "github.com/fsfcare/care-api/internal/service/patient"
	userService "github.com/fsfcare/care-api/internal/service/user"
	"github.com/fsfcare/care-api/internal/storage"
	"github.com/fsfcare/care-api/pkg/auth"
	"github.com/fsfcare/care-api/pkg/logger"
	"github.com/fsfcare/care-api/pkg/metrics"
	"github.com/fsfcare/care-api/pkg/security"
	"github.com/fsfcare/care-api/pkg/validator"
)

const draftTTL = 2 * time.Hour

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.NewLogger(nil)

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	if err := validator.RegisterCustomValidators(); err != nil {
		log.Fatal().Err(err).Msg("failed to register validators")
	}

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	accessCodeRepo := postgres.NewAccessCodeRepository(db)
	patientRepo := postgres.NewPatientRepository(db)
	attendanceRepo := postgres.NewAttendanceRepository(db)
	careSheetRepo := postgres.NewCareSheetRepository(db)
	auditRepo := postgres.NewAuditRepository(db)
	outboxRepo := postgres.NewOutboxRepository(db)

	// Shared infrastructure
	m := metrics.NewMetrics("care_api")
	jwtSvc := auth.NewJWTService(
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.ExpiryHours)*time.Hour,
		time.Duration(cfg.JWT.RefreshExpiryHours)*time.Hour,
	)
	hasher := security.NewBcryptHasher(12)
	emailSvc := email.NewSMTPService(cfg.Mail)

	blobStore, err := storage.NewS3Store(context.Background(), cfg.Storage)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize blob storage")
	}

	// Services
	auditor := auditService.NewService(auditRepo)
	authSvc := authService.NewService(userRepo, jwtSvc, hasher, auditor)
	accessCodeSvc := accesscodeService.NewService(accessCodeRepo, userRepo, outboxRepo, emailSvc, auditor, appLogger, m)
	patientSvc := patientService.NewService(patientRepo, outboxRepo, blobStore, auditor, appLogger)
	attendanceSvc := attendanceService.NewService(attendanceRepo, patientRepo, outboxRepo, auditor, appLogger)
	careSheetSvc := caresheetService.NewService(
		careSheetRepo,
		patientRepo,
		caresheetService.NewDraftStore(draftTTL),
		outboxRepo,
		auditor,
		appLogger,
		m,
	)
	userSvc := userService.NewService(userRepo, blobStore, auditor)

	authMiddleware := middleware.NewAuthMiddleware(authSvc)

	// Handlers
	h := handler.NewHandler()
	r := router.NewRouter(
		authMiddleware,
		authHandler.NewHandler(authSvc),
		accesscodeHandler.NewHandler(accessCodeSvc),
		patientHandler.NewHandler(patientSvc),
		attendanceHandler.NewHandler(attendanceSvc),
		caresheetHandler.NewHandler(careSheetSvc),
		questionHandler.NewHandler(),
		userHandler.NewHandler(userSvc),
		h,
		m,
		router.Config{
			RateLimit:   rate.Limit(cfg.RateLimit.RequestsPerSecond),
			RateBurst:   cfg.RateLimit.Burst,
			CORSConfig:  middleware.DefaultCORSConfig(),
			SizeLimit:   middleware.SizeLimitConfig{MaxBodySize: cfg.Server.MaxBodyBytes},
			Timeout:     middleware.TimeoutConfig{Duration: cfg.Server.RequestTimeout},
			MetricsPath: cfg.Monitoring.MetricsPath,
		},
	)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()
	log.Info().Int("port", cfg.Server.Port).Msg("server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
