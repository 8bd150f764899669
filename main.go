package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/suryaansh001/shayari-backend/handlers"
	"github.com/suryaansh001/shayari-backend/internal/cache"
	"github.com/suryaansh001/shayari-backend/internal/config"
	"github.com/suryaansh001/shayari-backend/internal/database"
	"github.com/suryaansh001/shayari-backend/internal/shayari/handler"
	"github.com/suryaansh001/shayari-backend/internal/shayari/repository"
	"github.com/suryaansh001/shayari-backend/internal/shayari/service"
	"github.com/suryaansh001/shayari-backend/internal/tokens"
	"github.com/suryaansh001/shayari-backend/pkg/logger"
	"github.com/suryaansh001/shayari-backend/pkg/metrics"
	"github.com/suryaansh001/shayari-backend/pkg/middleware"
)

var startTime = time.Now()

// deps are the runtime collaborators the router needs.
type deps struct {
	cfg    *config.Config
	svc    service.Service
	tokens *tokens.Service
	redis  *redis.Client // nil when Redis is not configured or unreachable
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.InitWithFormat(cfg.Log.Level, cfg.Log.Format)
	defer logger.Sync()
	logger.Infof("config loaded: env=%s mongo=%v redis=%v jwt_secret_set=%v admin=%v",
		cfg.Server.Environment, cfg.MongoDB.URI != "", cfg.Redis.Addr() != "", cfg.JWT.Secret != "", cfg.Admin.Username != "")
	if cfg.JWT.Secret == "" {
		logger.Warnf("JWT_SECRET is empty: every bearer token will be rejected")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var rdb *redis.Client
	if addr := cfg.Redis.Addr(); addr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s): %v; continuing without it", addr, err)
			_ = rdb.Close()
			rdb = nil
		} else {
			defer rdb.Close()
			logger.Infof("connected to Redis at %s", addr)
		}
	}

	var repo repository.Repository
	if cfg.MongoDB.URI != "" {
		client, err := database.ConnectMongoWithRetry(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout, 5)
		if err != nil {
			logger.Fatalf("%v", err)
		}
		defer func() { _ = client.Disconnect(context.Background()) }()
		col := client.Database(cfg.MongoDB.Database).Collection(cfg.MongoDB.Collection)
		mrepo, err := repository.NewMongoRepo(ctx, col)
		if err != nil {
			logger.Fatalf("failed to prepare collection: %v", err)
		}
		repo = mrepo
		logger.Infof("using MongoDB collection %s.%s", cfg.MongoDB.Database, cfg.MongoDB.Collection)
	} else {
		logger.Warnf("MONGODB_URI not set: records are kept in memory and lost on restart")
		repo = repository.NewMemoryRepo()
	}

	opts := []service.Option{}
	if rdb != nil {
		opts = append(opts, service.WithCache(cache.New(rdb, cfg.Cache.PublicListTTL)))
	}

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := newRouter(deps{
		cfg:    cfg,
		svc:    service.New(repo, opts...),
		tokens: tokens.NewService(cfg.JWT.Secret, cfg.JWT.TokenTTL),
		redis:  rdb,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		logger.Infof("starting shayari service on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Infof("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("graceful shutdown failed: %v", err)
	}
}

func newRouter(d deps) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true

	r.Use(middleware.CORS(d.cfg.CORS.AllowedOrigin))
	r.Use(middleware.RequestLogger(), gin.Recovery())
	r.Use(middleware.Authenticate(d.tokens))

	if d.cfg.RateLimit.Enabled {
		if d.cfg.RateLimit.UseRedis && d.redis != nil {
			win := time.Duration(d.cfg.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimitMiddleware(d.redis, d.cfg.RateLimit.RPS, d.cfg.RateLimit.Burst, win))
		} else {
			r.Use(middleware.RateLimitMiddleware(d.cfg.RateLimit.RPS, d.cfg.RateLimit.Burst))
		}
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
	})
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"message": "Method not allowed"})
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// readiness: 200 only when the record store (and Redis, if configured) answer
	r.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		ready := true
		depsState := map[string]bool{"store": d.svc.Ready(ctx) == nil}
		if !depsState["store"] {
			ready = false
		}
		if d.cfg.Redis.Addr() != "" {
			depsState["redis"] = d.redis != nil && d.redis.Ping(ctx).Err() == nil
			if !depsState["redis"] {
				ready = false
			}
		}
		status, label := http.StatusOK, "ready"
		if !ready {
			status, label = http.StatusServiceUnavailable, "not_ready"
		}
		c.JSON(status, gin.H{"status": label, "deps": depsState, "uptime": time.Since(startTime).String()})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	handlers.RegisterSwagger(r)

	authH := handlers.NewAuthHandler(d.cfg, d.tokens)
	authH.Register(r)
	authH.Register(r.Group("/api"))

	handler.RegisterRoutes(r.Group("/shayaris"), d.svc)
	handler.RegisterRoutes(r.Group("/api/shayaris"), d.svc)
	return r
}
