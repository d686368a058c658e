package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"github.com/tcp_snm/lcbot/internal/api"
	"github.com/tcp_snm/lcbot/internal/database"
	"github.com/tcp_snm/lcbot/internal/discord"
	"github.com/tcp_snm/lcbot/internal/service"
	"github.com/tcp_snm/lcbot/internal/service/catalog_service"
	"github.com/tcp_snm/lcbot/internal/service/problem_service"
	"github.com/tcp_snm/lcbot/internal/service/scheduler_service"
	"github.com/tcp_snm/lcbot/internal/service/solve_service"
	"github.com/tcp_snm/lcbot/internal/service/user_service"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

type services struct {
	pool      *pgxpool.Pool
	users     *user_service.UserService
	problems  *problem_service.ProblemService
	solves    *solve_service.SolveService
	poster    *discord.WebhookClient
	scheduler *scheduler_service.Scheduler
}

func initDatabase(ctx context.Context, dbURL string) (*pgxpool.Pool, error) {
	// create a connection pool to the database
	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		return nil, err
	}
	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	// bring the schema up to date
	if err = database.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

func initServices(ctx context.Context, cfg config) (*services, error) {
	pool, err := initDatabase(ctx, cfg.DBURL)
	if err != nil {
		return nil, err
	}
	db := database.New(pool)

	log.Info("initializing user service")
	us := &user_service.UserService{
		DB:         db,
		StatsCache: user_service.NewStatsCache(user_service.DefaultStatsCacheSize, user_service.DefaultStatsCacheTTL),
	}

	log.Info("initializing catalog client")
	catalogConfig := catalog_service.DefaultConfig()
	catalogConfig.Endpoint = cfg.LeetCodeAPI
	catalogConfig.Skip = cfg.LeetCodeSkip
	catalog, err := catalog_service.NewLeetCodeClient(catalogConfig)
	if err != nil {
		pool.Close()
		return nil, err
	}

	log.Info("initializing discord webhook")
	poster, err := discord.NewWebhookClient(discord.Config{
		WebhookURL: cfg.WebhookURL,
		RoleID:     cfg.RoleID,
		RateLimit:  0.5,
		RateBurst:  5,
	})
	if err != nil {
		pool.Close()
		return nil, err
	}

	log.Info("initializing problem service")
	ps := &problem_service.ProblemService{
		DB:          db,
		Catalog:     catalog,
		Poster:      poster,
		MaxAttempts: problem_service.DefaultSelectAttempts,
	}

	log.Info("initializing solve service")
	ss := &solve_service.SolveService{
		Ledger:      &solve_service.PgLedger{Pool: pool, DB: db},
		Stats:       us,
		BotUserID:   cfg.BotUserID,
		SolvedEmoji: cfg.SolvedEmoji,
	}
	if err = ss.Start(); err != nil {
		pool.Close()
		return nil, err
	}

	return &services{
		pool:      pool,
		users:     us,
		problems:  ps,
		solves:    ss,
		poster:    poster,
		scheduler: scheduler_service.NewScheduler(),
	}, nil
}

// scheduleWeeklyProblem registers the weekly post, followed by the
// leaderboard of the week
func scheduleWeeklyProblem(cfg config, svc *services) (uuid.UUID, error) {
	return svc.scheduler.ScheduleTask(scheduler_service.TaskRequest{
		Name: "weekly-problem",
		Schedule: scheduler_service.Weekly{
			Weekday:  cfg.weekday(),
			Hour:     cfg.WeeklyHour,
			Minute:   cfg.WeeklyMinute,
			Location: cfg.location(),
		},
		Run: func(ctx context.Context) error {
			problem, err := svc.problems.PublishUnsolved(ctx, true)
			if err != nil {
				if postErr := svc.poster.PostText(ctx, "❌ There was an error fetching a LeetCode problem. Please try again later."); postErr != nil {
					log.Errorf("cannot report weekly failure, %v", postErr)
				}
				return err
			}
			log.WithField("problem_id", problem.ID).Info("weekly problem posted")

			entries, err := svc.users.GetLeaderboard(ctx, service.DefaultLeaderboardSz)
			if err != nil {
				return err
			}
			return svc.poster.PostLeaderboard(ctx, entries, cfg.CommunityName)
		},
		OnTaskComplete: func(taskID uuid.UUID, err error) {
			if err != nil {
				log.WithField("task_id", taskID).Errorf("weekly problem task failed, %v", err)
			}
		},
	})
}

func setCors(router *chi.Mux) {
	router.Use(
		cors.Handler(
			cors.Options{
				AllowedOrigins:   []string{"https://*", "http://*"},
				AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
				AllowedHeaders:   []string{"*"},
				AllowCredentials: false,
				ExposedHeaders:   []string{"Link"},
				MaxAge:           300,
			},
		),
	)
	log.Info("cors options has been set")
}

func newRouter(apiConfig *api.Api) *chi.Mux {
	// initialize a new router
	router := chi.NewRouter()
	setCors(router)

	// mount v1 router
	router.Mount("/v1", NewV1Router(apiConfig))
	log.Info("v1 router has been mounted")

	router.Handle("/metrics", promhttp.Handler())
	return router
}

func serve(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	setLogLevel(cfg.LogLevel)

	svc, err := initServices(ctx, cfg)
	if err != nil {
		return err
	}
	defer svc.pool.Close()

	weeklyTaskID, err := scheduleWeeklyProblem(cfg, svc)
	if err != nil {
		return err
	}

	apiConfig := &api.Api{
		SolveServiceConfig:   svc.solves,
		ProblemServiceConfig: svc.problems,
		UserServiceConfig:    svc.users,
		Poster:               svc.poster,
		CommunityName:        cfg.CommunityName,
		Scheduler:            svc.scheduler,
		WeeklyTaskID:         weeklyTaskID,
		DB:                   svc.pool,
	}

	// find the address to start the server
	apiAddress := cfg.APIURL + ":" + cfg.Port

	// create a server object to listen to all requests
	srv := &http.Server{
		Handler:           newRouter(apiConfig),
		Addr:              apiAddress,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Infof("starting server on %s", apiAddress)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		if err := svc.scheduler.Start(gctx); err != nil {
			return err
		}
		<-gctx.Done()
		svc.scheduler.Wait()
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func main() {
	godotenv.Load()
	service.InitializeServices()

	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		log.Fatal(err)
	}
}
