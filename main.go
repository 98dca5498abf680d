package main

import (
	"context"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	"gitlab.com/forgefit/gymcore/internal/config"
	"gitlab.com/forgefit/gymcore/internal/core/controller"
	"gitlab.com/forgefit/gymcore/internal/core/repository"
	"gitlab.com/forgefit/gymcore/internal/core/service"
	"gitlab.com/forgefit/gymcore/internal/infrastructure/addrcache"
	"gitlab.com/forgefit/gymcore/internal/infrastructure/cache"
	"gitlab.com/forgefit/gymcore/internal/infrastructure/db"
	"gitlab.com/forgefit/gymcore/internal/infrastructure/db/adapter"
	"gitlab.com/forgefit/gymcore/internal/infrastructure/media"
	"gitlab.com/forgefit/gymcore/internal/infrastructure/metrics"
	"gitlab.com/forgefit/gymcore/internal/infrastructure/seed"
	"gitlab.com/forgefit/gymcore/pkg/logger"
	"gitlab.com/forgefit/gymcore/pkg/responder"

	_ "gitlab.com/forgefit/gymcore/docs"
)

// controllers groups the HTTP handlers the router mounts.
type controllers struct {
	auth       *AuthHandler
	users      *controller.UserController
	trainers   *controller.TrainerController
	classes    *controller.ClassController
	membership *controller.MembershipController
	payments   *controller.PaymentController
	reviews    *controller.ReviewController
	routines   *controller.RoutineController
	address    *controller.AddressController
}

// @title GymCore API
// @version 1.0
// @description Gym management backend: members, trainers, classes, memberships, payments, reviews and routines

// @contact.name API Support

// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: couldn't load .env file: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zl, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer zl.Sync()

	dbConn, err := db.NewPostgresDB(cfg, zl)
	if err != nil {
		zl.Fatal("failed to connect to database", zap.Error(err))
	}
	defer dbConn.Close()

	if err := db.RunMigrations(dbConn, zl); err != nil {
		zl.Fatal("failed to run migrations", zap.Error(err))
	}

	ctx := context.Background()

	mediaStore, err := media.NewS3Store(ctx, cfg)
	if err != nil {
		zl.Fatal("failed to init media store", zap.Error(err))
	}

	sqlAdapter := adapter.NewSQLAdapter(dbConn)
	jsonResponder := responder.NewJSONResponder()

	userRepo := repository.NewUserRepository(dbConn)
	trainerRepo := repository.NewTrainerRepository(sqlAdapter, dbConn)
	classRepo := repository.NewClassRepository(sqlAdapter, dbConn)
	membershipRepo := repository.NewMembershipRepository(sqlAdapter, dbConn)
	paymentRepo := repository.NewPaymentRepository(sqlAdapter, dbConn)
	reviewRepo := repository.NewReviewRepository(sqlAdapter, dbConn)
	routineRepo := repository.NewRoutineRepository(sqlAdapter, dbConn)

	userService := service.NewUserService(userRepo, zl)
	trainerService := service.NewTrainerService(trainerRepo)
	classService := service.NewClassService(classRepo, trainerRepo)
	membershipService := service.NewMembershipService(membershipRepo)
	paymentService := service.NewPaymentService(paymentRepo, userRepo, membershipRepo)
	reviewService := service.NewReviewService(reviewRepo, userRepo, trainerRepo)
	routineService := service.NewRoutineService(routineRepo, mediaStore)

	addressService := addrcache.NewSuggesterProxy(
		service.NewAddressService(cfg.DadataAPIKey, cfg.DadataSecretKey),
		cache.NewInMemoryCache(),
		5*time.Minute,
	)

	tokenAuth := jwtauth.New("HS256", []byte(cfg.JWTSecret), nil)

	ctrl := controllers{
		auth:       NewAuthHandler(userService, tokenAuth, jsonResponder),
		users:      controller.NewUserController(userService, jsonResponder),
		trainers:   controller.NewTrainerController(trainerService, jsonResponder),
		classes:    controller.NewClassController(classService, jsonResponder),
		membership: controller.NewMembershipController(membershipService, jsonResponder),
		payments:   controller.NewPaymentController(paymentService, jsonResponder),
		reviews:    controller.NewReviewController(reviewService, jsonResponder),
		routines:   controller.NewRoutineController(routineService, jsonResponder),
		address:    controller.NewAddressController(addressService, jsonResponder),
	}

	if cfg.SeedOnBoot {
		seeder := seed.NewSeeder(userRepo, trainerRepo, classRepo, membershipRepo, paymentRepo, reviewRepo, routineRepo, zl)
		if err := seeder.Run(ctx); err != nil {
			zl.Fatal("failed to seed database", zap.Error(err))
		}
	}

	r := setupRouter(ctrl)
	r.Handle("/metrics", promhttp.Handler())

	listener, err := net.Listen("tcp", cfg.HTTPAddr)
	if err != nil {
		zl.Fatal("failed to create listener", zap.Error(err))
	}

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		zl.Info("server listening", zap.String("addr", cfg.HTTPAddr))
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			zl.Fatal("could not start server", zap.Error(err))
		}
	}()

	<-done
	zl.Info("server is shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zl.Error("server shutdown failed", zap.Error(err))
	}

	zl.Info("server stopped gracefully")
}

func setupRouter(ctrl controllers) *chi.Mux {
	r := chi.NewRouter()

	r.Use(metrics.HTTPMetricsMiddleware)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Swagger
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("http://localhost:8080/swagger/doc.json"),
	))

	// Auth routes
	r.Group(func(r chi.Router) {
		r.Post("/api/auth/register", ctrl.auth.RegisterHandler)
		r.Post("/api/auth/login", ctrl.auth.LoginHandler)
		r.Post("/api/auth/google", ctrl.auth.GoogleSignInHandler)
	})

	// User routes
	r.Group(func(r chi.Router) {
		r.Use(ctrl.auth.AuthMiddleware)
		r.Get("/api/users", ctrl.users.ListUsers)
		r.Get("/api/users/email", ctrl.users.GetUserByEmail)
		r.Get("/api/users/{id}", ctrl.users.GetUser)
		r.Patch("/api/users/{id}", ctrl.users.UpdateUser)
		r.Delete("/api/users/{id}", ctrl.users.DeleteUser)
		r.Get("/api/users/{id}/payments", ctrl.payments.ListUserPayments)
	})

	// Trainer routes
	r.Group(func(r chi.Router) {
		r.Use(ctrl.auth.AuthMiddleware)
		r.Get("/api/trainers", ctrl.trainers.ListTrainers)
		r.Post("/api/trainers", ctrl.trainers.CreateTrainer)
		r.Get("/api/trainers/{id}", ctrl.trainers.GetTrainer)
		r.Put("/api/trainers/{id}", ctrl.trainers.UpdateTrainer)
		r.Delete("/api/trainers/{id}", ctrl.trainers.DeleteTrainer)
		r.Get("/api/trainers/{id}/reviews", ctrl.reviews.ListTrainerReviews)
	})

	// Class routes
	r.Group(func(r chi.Router) {
		r.Use(ctrl.auth.AuthMiddleware)
		r.Get("/api/classes", ctrl.classes.ListClasses)
		r.Post("/api/classes", ctrl.classes.CreateClass)
		r.Get("/api/classes/{id}", ctrl.classes.GetClass)
		r.Put("/api/classes/{id}", ctrl.classes.UpdateClass)
		r.Delete("/api/classes/{id}", ctrl.classes.DeleteClass)
	})

	// Membership routes
	r.Group(func(r chi.Router) {
		r.Use(ctrl.auth.AuthMiddleware)
		r.Get("/api/memberships", ctrl.membership.ListMemberships)
		r.Post("/api/memberships", ctrl.membership.CreateMembership)
		r.Get("/api/memberships/{id}", ctrl.membership.GetMembership)
		r.Put("/api/memberships/{id}", ctrl.membership.UpdateMembership)
		r.Delete("/api/memberships/{id}", ctrl.membership.DeleteMembership)
	})

	// Payment routes
	r.Group(func(r chi.Router) {
		r.Use(ctrl.auth.AuthMiddleware)
		r.Post("/api/payments", ctrl.payments.CreatePayment)
		r.Get("/api/payments/{id}", ctrl.payments.GetPayment)
		r.Post("/api/payments/{id}/complete", ctrl.payments.CompletePayment)
	})

	// Review routes
	r.Group(func(r chi.Router) {
		r.Use(ctrl.auth.AuthMiddleware)
		r.Post("/api/reviews", ctrl.reviews.CreateReview)
		r.Get("/api/reviews/{id}", ctrl.reviews.GetReview)
		r.Delete("/api/reviews/{id}", ctrl.reviews.DeleteReview)
	})

	// Routine routes
	r.Group(func(r chi.Router) {
		r.Use(ctrl.auth.AuthMiddleware)
		r.Get("/api/routines", ctrl.routines.ListRoutines)
		r.Post("/api/routines", ctrl.routines.CreateRoutine)
		r.Get("/api/routines/{id}", ctrl.routines.GetRoutine)
		r.Put("/api/routines/{id}", ctrl.routines.UpdateRoutine)
		r.Delete("/api/routines/{id}", ctrl.routines.DeleteRoutine)
		r.Post("/api/routines/{id}/media", ctrl.routines.UploadRoutineMedia)
	})

	// Address routes
	r.Group(func(r chi.Router) {
		r.Use(ctrl.auth.AuthMiddleware)
		r.Post("/api/address/suggest", ctrl.address.SuggestAddress)
	})

	// Runtime profiling, protected like the API.
	r.Group(func(r chi.Router) {
		r.Use(ctrl.auth.AuthMiddleware)
		r.Mount("/debug", middleware.Profiler())
	})

	return r
}
