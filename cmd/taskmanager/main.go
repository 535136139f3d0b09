package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/personaltask/taskmanager/internal/application/auth"
	"github.com/personaltask/taskmanager/internal/application/ports"
	"github.com/personaltask/taskmanager/internal/application/project"
	"github.com/personaltask/taskmanager/internal/application/task"
	"github.com/personaltask/taskmanager/internal/config"
	infraauth "github.com/personaltask/taskmanager/internal/infrastructure/auth"
	httprouter "github.com/personaltask/taskmanager/internal/infrastructure/http"
	"github.com/personaltask/taskmanager/internal/infrastructure/http/handlers"
	"github.com/personaltask/taskmanager/internal/infrastructure/http/middleware"
	"github.com/personaltask/taskmanager/internal/infrastructure/lockout"
	"github.com/personaltask/taskmanager/internal/infrastructure/persistence/memory"
	"github.com/personaltask/taskmanager/internal/infrastructure/persistence/postgres"
	"github.com/personaltask/taskmanager/internal/infrastructure/queue"
	"github.com/personaltask/taskmanager/internal/infrastructure/security"
	"github.com/personaltask/taskmanager/internal/infrastructure/webhook"
)

func main() {
	_ = godotenv.Load()

	log := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	if cfg.Server.Development() {
		log = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	if lvl, err := zerolog.ParseLevel(cfg.Log.Level); err == nil && lvl != zerolog.NoLevel {
		log = log.Level(lvl)
	} else if err != nil {
		log.Warn().Str("level", cfg.Log.Level).Msg("unknown LOG_LEVEL; using info")
		log = log.Level(zerolog.InfoLevel)
	}

	ctx := context.Background()

	var (
		users    ports.UserRepository
		projects ports.ProjectRepository
		tasks    ports.TaskRepository
		dbPinger handlers.Pinger
	)
	switch cfg.Database.Driver {
	case config.StoreDriverMemory:
		log.Warn().Msg("using in-memory store; data is lost on restart")
		store := memory.NewStore()
		users, projects, tasks = store.Users(), store.Projects(), store.Tasks()
	default:
		pool, err := pgxpool.New(ctx, cfg.Database.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("connect to database")
		}
		defer pool.Close()
		if err := pool.Ping(ctx); err != nil {
			log.Fatal().Err(err).Msg("ping database")
		}
		if cfg.Database.MigrateOnStart {
			if err := postgres.Migrate(ctx, pool); err != nil {
				log.Fatal().Err(err).Msg("run migrations")
			}
			log.Info().Msg("migrations applied")
		}
		users = postgres.NewUserRepository(pool)
		projects = postgres.NewProjectRepository(pool)
		tasks = postgres.NewTaskRepository(pool)
		dbPinger = pool
	}

	var redisClient *redis.Client
	var redisOpt *redis.Options
	if cfg.Redis.URL != "" {
		redisOpt, err = redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("parse REDIS_URL")
		}
		redisClient = redis.NewClient(redisOpt)
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Msg("redis ping failed; continuing without redis")
			redisClient = nil
		}
	}

	var emitter ports.WebhookEmitter = webhook.NewNoopEmitter()
	var asynqWorker *queue.Worker
	var auditQueue *webhook.AsyncEmitter
	if cfg.Webhook.URL != "" {
		direct := webhook.NewHTTPEmitter(cfg.Webhook.URL)
		if redisClient != nil {
			asynqOpt := asynq.RedisClientOpt{Addr: redisOpt.Addr, Username: redisOpt.Username, Password: redisOpt.Password, DB: redisOpt.DB, TLSConfig: redisOpt.TLSConfig}
			enq := queue.NewAuditEnqueuer(asynqOpt, log)
			defer enq.Close()
			emitter = enq
			asynqWorker = queue.NewWorker(asynqOpt, direct, log)
			go func() {
				if err := asynqWorker.Run(); err != nil {
					log.Warn().Err(err).Msg("asynq worker stopped")
				}
			}()
		} else {
			emitter = direct
		}
		// Delivery, or the enqueue, happens off the request path.
		auditQueue = webhook.NewAsyncEmitter(emitter, webhook.DefaultAsyncBuffer, log)
		emitter = auditQueue
	}

	hasher, err := security.NewPasswordHasher(cfg.Hasher.Algorithm, cfg.Hasher.BcryptCost)
	if err != nil {
		log.Fatal().Err(err).Msg("create password hasher")
	}
	secret, err := infraauth.LoadSigningSecret(cfg.JWT.Secret, cfg.JWT.SecretFile)
	if err != nil {
		log.Fatal().Err(err).Msg("load JWT secret")
	}
	issuer, err := infraauth.NewTokenIssuer(secret, cfg.JWT.TTL())
	if err != nil {
		log.Fatal().Err(err).Msg("create token issuer")
	}

	lockouts := lockout.NewMemoryStore(cfg.Lockout.MaxAttempts, cfg.Lockout.CooldownSeconds)
	errs := handlers.ErrorWriter{Log: log, ExposeDetails: cfg.Server.Development()}

	authHandler := handlers.NewAuthHandler(
		auth.NewRegisterUser(users, hasher),
		auth.NewLogin(users, hasher, issuer, lockouts),
		emitter, errs, log)
	usersHandler := handlers.NewUsersHandler(auth.NewUpdateProfile(users, hasher), emitter, errs, log)
	projectsHandler := handlers.NewProjectsHandler(
		project.NewCreateProject(projects),
		project.NewListProjects(projects),
		project.NewUpdateProject(projects),
		project.NewDeleteProject(projects),
		errs)
	tasksHandler := handlers.NewTasksHandler(
		task.NewCreateTask(tasks, projects),
		task.NewListTasks(tasks),
		task.NewUpdateTask(tasks, projects),
		task.NewDeleteTask(tasks),
		errs)
	healthHandler := handlers.NewHealthHandler(dbPinger, redisClient)

	gate := middleware.NewGate(issuer, log, middleware.WithRejectHook(handlers.GateRejectionAudit(log, emitter)))

	var ipLimit, userLimit func(http.Handler) http.Handler
	if cfg.RateLimit.IP != "" {
		if ipLimit, err = middleware.NewIPRateLimiter(cfg.RateLimit.IP); err != nil {
			log.Fatal().Err(err).Msg("create IP rate limiter")
		}
	}
	if cfg.RateLimit.User != "" {
		if userLimit, err = middleware.NewUserRateLimiter(cfg.RateLimit.User); err != nil {
			log.Fatal().Err(err).Msg("create user rate limiter")
		}
	}

	router := httprouter.NewRouter(httprouter.RouterConfig{
		AuthHandler:     authHandler,
		UsersHandler:    usersHandler,
		ProjectsHandler: projectsHandler,
		TasksHandler:    tasksHandler,
		HealthHandler:   healthHandler,
		CORS:            middleware.NewCORSPolicy(cfg.CORS.AllowedOrigins),
		Gate:            gate,
		RequireAdmin:    middleware.RequireAdminSecret(cfg.Admin.Secret),
		Log:             log,
		Secure:          middleware.NewSecure(middleware.SecureOptions(cfg.Server.Development())),
		IPRateLimit:     ipLimit,
		UserRateLimit:   userLimit,
		Metrics:         true,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Str("store", cfg.Database.Driver).Msg("server starting")
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
	if auditQueue != nil {
		if err := auditQueue.Close(shutdownCtx); err != nil {
			log.Warn().Err(err).Msg("audit events not delivered before shutdown")
		}
	}
	if asynqWorker != nil {
		asynqWorker.Shutdown()
	}
	log.Info().Msg("server stopped")
}
