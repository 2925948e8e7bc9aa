package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/ascendhq/concierge-api/internal/infra/database"
	"github.com/ascendhq/concierge-api/internal/infra/http/handlers"
	"github.com/ascendhq/concierge-api/internal/infra/http/middleware"
	"github.com/ascendhq/concierge-api/internal/infra/mail"
	"github.com/ascendhq/concierge-api/internal/infra/queue"
	"github.com/ascendhq/concierge-api/internal/infra/token"
	"github.com/ascendhq/concierge-api/internal/infra/worker"
	"github.com/ascendhq/concierge-api/internal/logger"
	"github.com/ascendhq/concierge-api/internal/metrics"
	"github.com/ascendhq/concierge-api/internal/usecase"
)

func main() {
	godotenv.Load()

	if err := logger.Init(os.Getenv("APP_ENV") != "production", logger.LogLevel(os.Getenv("LOG_LEVEL"))); err != nil {
		panic(err)
	}
	defer logger.Sync()
	log := logger.Get()

	db, err := database.NewDBConnection(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	rabbitMQ, err := queue.NewRabbitMQ(os.Getenv("RABBITMQ_URL"))
	if err != nil {
		log.Fatal("failed to connect to rabbitmq", zap.Error(err))
	}
	defer rabbitMQ.Conn.Close()
	defer rabbitMQ.Ch.Close()

	// Repositories
	consultationRepo := database.NewConsultationRepository(db)
	userRepo := database.NewUserRepository(db)
	onboardingRepo := database.NewOnboardingRepository(db)
	strategyCallRepo := database.NewStrategyCallRepository(db)
	interviewRepo := database.NewInterviewRepository(db)
	notificationRepo := database.NewNotificationRepository(db)
	resourceRepo := database.NewResourceRepository(db)

	// Adapters
	tokens := token.NewService(os.Getenv("JWT_SECRET"))
	producer := queue.NewProducer(rabbitMQ.Ch)
	mailSender := mail.NewEmailSender(
		os.Getenv("MAIL_HOST"), mailPort(), os.Getenv("MAIL_USER"),
		os.Getenv("MAIL_PASS"), os.Getenv("MAIL_FROM"), templatesDir(),
	)
	portalURL := os.Getenv("PORTAL_URL")

	// Background workers
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	notificationWorker := queue.NewWorker(rabbitMQ.Ch, mailSender, notificationRepo)
	go notificationWorker.Start(queue.QueueName)

	expirationWorker := worker.NewTokenExpirationWorker(db)
	go expirationWorker.Start(ctx)

	// Use cases
	submitConsultationUC := usecase.NewSubmitConsultationUseCase(consultationRepo, producer)
	gatekeeperUC := usecase.NewGatekeeperUseCase(consultationRepo, producer, portalURL)
	approveConsultationUC := usecase.NewApproveConsultationUseCase(consultationRepo, tokens, producer, portalURL)
	confirmPaymentUC := usecase.NewConfirmPaymentUseCase(consultationRepo, producer)
	redeemRegistrationUC := usecase.NewRedeemRegistrationUseCase(consultationRepo, userRepo, tokens, producer)
	loginUC := usecase.NewLoginUseCase(userRepo, tokens)
	submitOnboardingUC := usecase.NewSubmitOnboardingUseCase(onboardingRepo, userRepo, producer)
	approveOnboardingUC := usecase.NewApproveOnboardingUseCase(onboardingRepo, userRepo, producer)
	unlockProfileUC := usecase.NewUnlockProfileUseCase(userRepo, producer)
	strategyCallUC := usecase.NewStrategyCallUseCase(strategyCallRepo, userRepo, producer)
	interviewUC := usecase.NewInterviewUseCase(interviewRepo, userRepo, producer)

	// Handlers
	consultationHandler := handlers.NewConsultationHandler(
		consultationRepo, submitConsultationUC, gatekeeperUC, approveConsultationUC, confirmPaymentUC)
	registrationHandler := handlers.NewRegistrationHandler(redeemRegistrationUC)
	authHandler := handlers.NewAuthHandler(loginUC)
	profileHandler := handlers.NewProfileHandler(userRepo, unlockProfileUC)
	onboardingHandler := handlers.NewOnboardingHandler(onboardingRepo, submitOnboardingUC, approveOnboardingUC)
	strategyCallHandler := handlers.NewStrategyCallHandler(strategyCallRepo, strategyCallUC)
	interviewHandler := handlers.NewInterviewHandler(interviewUC)
	notificationHandler := handlers.NewNotificationHandler(notificationRepo)
	resourceHandler := handlers.NewResourceHandler(resourceRepo, userRepo)
	healthHandler := handlers.NewHealthHandler(db, rabbitMQ.Conn)

	// Router
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(metrics.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{os.Getenv("FRONTEND_URL"), "*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		// Public
		r.Post("/consultations", consultationHandler.Submit)
		r.Get("/registration/validate", registrationHandler.Validate)
		r.Post("/registration/redeem", registrationHandler.Redeem)
		r.Post("/auth/login", authHandler.Login)

		// Authenticated
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(tokens))

			r.Get("/profile", profileHandler.Get)
			r.Patch("/profile", profileHandler.Update)
			r.Post("/onboarding", onboardingHandler.Submit)
			r.Get("/onboarding", onboardingHandler.GetMine)
			r.Post("/strategy-calls", strategyCallHandler.Request)
			r.Get("/strategy-calls", strategyCallHandler.ListMine)
			r.Get("/interviews", interviewHandler.ListMine)
			r.Get("/notifications", notificationHandler.List)
			r.Post("/notifications/{id}/read", notificationHandler.MarkRead)
			r.Get("/resources", resourceHandler.List)
			r.Post("/resources/{id}/download", resourceHandler.Download)

			// Admin
			r.Route("/admin", func(r chi.Router) {
				r.Use(middleware.RequireAdmin)

				r.Get("/consultations", consultationHandler.List)
				r.Get("/consultations/{id}", consultationHandler.Get)
				r.Post("/consultations/{id}/confirm", consultationHandler.Confirm)
				r.Post("/consultations/{id}/reschedule", consultationHandler.Reschedule)
				r.Post("/consultations/{id}/waitlist", consultationHandler.Waitlist)
				r.Post("/consultations/{id}/approve", consultationHandler.Approve)
				r.Post("/consultations/{id}/reject", consultationHandler.Reject)
				r.Post("/consultations/{id}/confirm-payment", consultationHandler.ConfirmPayment)

				r.Post("/onboarding/{id}/approve", onboardingHandler.Approve)
				r.Post("/users/{id}/unlock", profileHandler.Unlock)

				r.Post("/strategy-calls/{id}/confirm", strategyCallHandler.Confirm)
				r.Post("/strategy-calls/{id}/request-new-times", strategyCallHandler.RequestNewTimes)
				r.Post("/strategy-calls/{id}/complete", strategyCallHandler.Complete)
				r.Post("/strategy-calls/{id}/cancel", strategyCallHandler.Cancel)

				r.Get("/users/{userID}/interviews", interviewHandler.ListForUser)
				r.Post("/interviews", interviewHandler.Create)
				r.Patch("/interviews/{id}", interviewHandler.Update)
				r.Patch("/interviews/{id}/status", interviewHandler.UpdateStatus)
				r.Delete("/interviews/{id}", interviewHandler.Delete)
			})
		})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		log.Info("server listening", zap.String("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}

func mailPort() int {
	p, err := strconv.Atoi(os.Getenv("MAIL_PORT"))
	if err != nil || p == 0 {
		return 587
	}
	return p
}

func templatesDir() string {
	if dir := os.Getenv("TEMPLATES_DIR"); dir != "" {
		return dir
	}
	return "templates"
}
