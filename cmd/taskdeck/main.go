package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/taskdeck/internal/application/auth"
	"github.com/amirhosseinghanipour/taskdeck/internal/application/ports"
	"github.com/amirhosseinghanipour/taskdeck/internal/application/profile"
	"github.com/amirhosseinghanipour/taskdeck/internal/application/task"
	"github.com/amirhosseinghanipour/taskdeck/internal/config"
	infraauth "github.com/amirhosseinghanipour/taskdeck/internal/infrastructure/auth"
	"github.com/amirhosseinghanipour/taskdeck/internal/infrastructure/email"
	httprouter "github.com/amirhosseinghanipour/taskdeck/internal/infrastructure/http"
	"github.com/amirhosseinghanipour/taskdeck/internal/infrastructure/http/handlers"
	"github.com/amirhosseinghanipour/taskdeck/internal/infrastructure/http/middleware"
	mongorepo "github.com/amirhosseinghanipour/taskdeck/internal/infrastructure/persistence/mongo"
	"github.com/amirhosseinghanipour/taskdeck/internal/infrastructure/queue"
	"github.com/amirhosseinghanipour/taskdeck/internal/infrastructure/security"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	ctx := context.Background()
	mongoClient, err := mongorepo.Connect(ctx, log, cfg.Mongo.URI, cfg.Mongo.ConnectAttempts, cfg.Mongo.ConnectDelay)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to mongodb")
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()
	db := mongoClient.Database(cfg.Mongo.Database)

	var redisClient *redis.Client
	if cfg.Redis.URL != "" {
		opt, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("parse REDIS_URL")
		}
		redisClient = redis.NewClient(opt)
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Msg("redis ping failed; continuing without redis")
			redisClient = nil
		}
	}

	healthHandler := handlers.NewHealthHandler(mongoClient, redisClient)

	userRepo := mongorepo.NewUserRepository(ctx, log, db)
	taskRepo := mongorepo.NewTaskRepository(db)

	var senders []ports.EmailSender
	if cfg.Email.Primary.Host != "" {
		senders = append(senders, email.NewSMTPSender(cfg.Email.Primary.Host, cfg.Email.Primary.Port, cfg.Email.Primary.Username, cfg.Email.Primary.Password, cfg.Email.From, cfg.Email.SendTimeout))
	}
	if cfg.Email.Fallback.Host != "" {
		senders = append(senders, email.NewSMTPSender(cfg.Email.Fallback.Host, cfg.Email.Fallback.Port, cfg.Email.Fallback.Username, cfg.Email.Fallback.Password, cfg.Email.From, cfg.Email.SendTimeout))
	}
	if cfg.Email.LogOnly || len(senders) == 0 {
		senders = append(senders, email.NewLogSender(log))
	}
	emailChain := email.NewChain(log, senders...)

	var taskEnqueuer ports.TaskEnqueuer
	var asynqWorker *queue.Worker
	if redisClient != nil {
		redisOpt, _ := redis.ParseURL(cfg.Redis.URL)
		asynqOpt := asynq.RedisClientOpt{Addr: redisOpt.Addr, Password: redisOpt.Password, DB: redisOpt.DB}
		asynqEnq, err := queue.NewAsynqEnqueuer(asynqOpt, log)
		if err != nil {
			log.Fatal().Err(err).Msg("create asynq enqueuer")
		}
		defer asynqEnq.Close()
		taskEnqueuer = asynqEnq
		asynqWorker = queue.NewWorker(asynqOpt, emailChain, log)
		go func() {
			if err := asynqWorker.Run(); err != nil {
				log.Warn().Err(err).Msg("asynq worker stopped")
			}
		}()
	} else {
		taskEnqueuer = queue.NewInlineEnqueuer(emailChain, cfg.Email.SendTimeout, log)
	}

	hasher := security.NewBcryptHasher(security.DefaultBcryptCost)

	jwtSecret, err := cfg.ResolveJWTSecret()
	if err != nil {
		if errors.Is(err, config.ErrNoJWTSecret) {
			log.Fatal().Msg("JWT_SECRET or JWT_SECRET_ENC + JWT_SECRET_KEY must be set")
		}
		log.Fatal().Err(err).Msg("resolve JWT secret")
	}
	issuer := infraauth.NewTokenIssuer([]byte(jwtSecret), cfg.JWT.Issuer, cfg.JWT.AccessExpiry, cfg.JWT.RefreshExpiry)

	registerUC := auth.NewRegister(userRepo, hasher, taskEnqueuer)
	verifyOTPUC := auth.NewVerifyOTP(userRepo, issuer)
	resendOTPUC := auth.NewResendOTP(userRepo, emailChain)
	loginUC := auth.NewLogin(userRepo, hasher, issuer)
	refreshUC := auth.NewRefresh(userRepo, issuer)
	logoutUC := auth.NewLogout(userRepo)

	createTaskUC := task.NewCreateTask(taskRepo)
	listTasksUC := task.NewListTasks(taskRepo)
	getTaskUC := task.NewGetTask(taskRepo)
	updateTaskUC := task.NewUpdateTask(taskRepo)
	deleteTaskUC := task.NewDeleteTask(taskRepo)

	getProfileUC := profile.NewGetProfile(userRepo)
	updateProfileUC := profile.NewUpdateProfile(userRepo)

	ipLimit, err := middleware.NewIPRateLimiter(cfg.RateLimit.RatePerIP)
	if err != nil {
		log.Fatal().Err(err).Msg("create IP rate limiter")
	}
	secureMiddleware := middleware.NewSecure(middleware.SecureOptions(cfg.Secure.IsDevelopment))
	corsMiddleware := middleware.CORS(cfg.CORS.AllowedOrigins)

	authHandler := handlers.NewAuthHandler(registerUC, verifyOTPUC, resendOTPUC, loginUC, refreshUC, logoutUC, log)
	taskHandler := handlers.NewTaskHandler(createTaskUC, listTasksUC, getTaskUC, updateTaskUC, deleteTaskUC, log)
	profileHandler := handlers.NewProfileHandler(getProfileUC, updateProfileUC, log)
	requireJWT := middleware.NewAuthValidator(issuer).Handler
	router := httprouter.NewRouter(httprouter.RouterConfig{
		AuthHandler:    authHandler,
		TaskHandler:    taskHandler,
		ProfileHandler: profileHandler,
		HealthHandler:  healthHandler,
		RequireJWT:     requireJWT,
		Log:            log,
		Secure:         secureMiddleware,
		CORS:           corsMiddleware,
		IPRateLimit:    ipLimit,
		Metrics:        true,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	if asynqWorker != nil {
		asynqWorker.Shutdown()
	}
	log.Info().Msg("server stopped")
}
