package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/beka-birhanu/vinom-explorer/api"
	healthapi "github.com/beka-birhanu/vinom-explorer/api/health"
	api_i "github.com/beka-birhanu/vinom-explorer/api/i"
	"github.com/beka-birhanu/vinom-explorer/api/identity"
	runapi "github.com/beka-birhanu/vinom-explorer/api/run"
	"github.com/beka-birhanu/vinom-explorer/config"
	logger "github.com/beka-birhanu/vinom-explorer/infrastruture/log"
	"github.com/beka-birhanu/vinom-explorer/infrastruture/metrics"
	"github.com/beka-birhanu/vinom-explorer/infrastruture/repo"
	"github.com/beka-birhanu/vinom-explorer/infrastruture/snapshot"
	"github.com/beka-birhanu/vinom-explorer/infrastruture/token"
	"github.com/beka-birhanu/vinom-explorer/service"
	"github.com/beka-birhanu/vinom-explorer/service/i"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Host exploration runs behind the HTTP API",
	Long: `serve reads its configuration from the environment (and a .env file when present).
Runs live in redis when REDIS_ADDR is set, in memory otherwise. Finished runs are kept in
MongoDB when MONGO_URI is set.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context(), config.Load())
	},
}

type server struct {
	cfg         config.Config
	redisClient *redis.Client
	mongoClient *mongo.Client
	runStore    i.RunStore
	runRepo     i.RunRepo
	runMetrics  *metrics.RunMetrics
	runManager  *service.RunManager
	tokenizer   i.Tokenizer
	controllers []api_i.Controller
	router      *api.Router
}

func serve(ctx context.Context, cfg config.Config) error {
	s := &server{cfg: cfg}
	defer s.close()

	initCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	steps := []func(context.Context) error{
		s.initRunStore,
		s.initRunRepo,
		s.initRunManager,
		s.initControllers,
		s.initRouter,
	}
	for _, step := range steps {
		if err := step(initCtx); err != nil {
			return err
		}
	}

	if err := s.router.Run(); err != nil {
		return fmt.Errorf("starting server: %w", err)
	}
	return nil
}

func (s *server) initRunStore(ctx context.Context) error {
	if s.cfg.RedisAddr == "" {
		s.runStore = snapshot.NewMemoryRunStore()
		appLogger.Warn("REDIS_ADDR is not set, runs are kept in memory")
		return nil
	}

	s.redisClient = redis.NewClient(&redis.Options{
		Addr:     s.cfg.RedisAddr,
		Password: s.cfg.RedisPassword,
		DB:       s.cfg.RedisDB,
	})
	if err := s.redisClient.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}

	store, err := snapshot.NewRedisRunStore(s.redisClient, s.cfg.SnapshotTTLSeconds)
	if err != nil {
		return fmt.Errorf("creating run store: %w", err)
	}
	s.runStore = store
	appLogger.Info("Connected to Redis")
	return nil
}

func (s *server) initRunRepo(ctx context.Context) error {
	if s.cfg.MongoURI == "" {
		appLogger.Warn("MONGO_URI is not set, finished runs are not kept")
		return nil
	}

	var err error
	s.mongoClient, err = mongo.Connect(ctx, options.Client().ApplyURI(s.cfg.MongoURI))
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err = s.mongoClient.Ping(ctx, nil); err != nil {
		return fmt.Errorf("MongoDB ping failed: %w", err)
	}

	s.runRepo = repo.NewRunRepo(s.mongoClient, s.cfg.DBName, "runs")
	appLogger.Info("Run repository initialized")
	return nil
}

func (s *server) initRunManager(context.Context) error {
	runLogger, err := logger.New("RUN-MANAGER", config.ColorCyan, os.Stdout)
	if err != nil {
		return fmt.Errorf("creating run manager logger: %w", err)
	}
	runLogger.SetDebug(verbose)

	s.runMetrics = metrics.New(prometheus.DefaultRegisterer)
	s.runManager, err = service.NewRunManager(&service.Config{
		Store:   s.runStore,
		Repo:    s.runRepo,
		Metrics: s.runMetrics,
		Logger:  runLogger,
	})
	if err != nil {
		return fmt.Errorf("creating run manager: %w", err)
	}
	appLogger.Info("Run manager initialized")
	return nil
}

func (s *server) initControllers(context.Context) error {
	apiLogger, err := logger.New("API", config.ColorMagenta, os.Stdout)
	if err != nil {
		return fmt.Errorf("creating api logger: %w", err)
	}

	runController, err := runapi.NewRunController(s.runManager, apiLogger)
	if err != nil {
		return fmt.Errorf("creating run controller: %w", err)
	}
	s.controllers = []api_i.Controller{
		healthapi.NewHealthController(prometheus.DefaultGatherer),
		runController,
	}
	appLogger.Info("Controllers initialized")
	return nil
}

func (s *server) initRouter(context.Context) error {
	gin.SetMode(s.cfg.GinMode)
	s.tokenizer = token.NewJwtService(s.cfg.JWTSecret, s.cfg.JWTIssuer)
	s.router = api.NewRouter(api.Config{
		Addr:                    fmt.Sprintf("%s:%v", s.cfg.HostIP, s.cfg.RESTPort),
		BaseURL:                 "/api",
		Controllers:             s.controllers,
		AuthorizationMiddleware: identity.Authoriz(s.tokenizer),
	})
	appLogger.Info(fmt.Sprintf("Router initialized on %s:%v", s.cfg.HostIP, s.cfg.RESTPort))
	return nil
}

func (s *server) close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if s.mongoClient != nil {
		_ = s.mongoClient.Disconnect(ctx)
	}
	if s.redisClient != nil {
		_ = s.redisClient.Close()
	}
}
