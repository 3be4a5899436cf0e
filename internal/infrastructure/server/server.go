package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	api "github.com/GriffinCanCode/Linkup/backend/internal/api/http"
	"github.com/GriffinCanCode/Linkup/backend/internal/api/middleware"
	"github.com/GriffinCanCode/Linkup/backend/internal/api/ws"
	"github.com/GriffinCanCode/Linkup/backend/internal/domain/connection"
	"github.com/GriffinCanCode/Linkup/backend/internal/domain/notification"
	"github.com/GriffinCanCode/Linkup/backend/internal/domain/post"
	"github.com/GriffinCanCode/Linkup/backend/internal/domain/presence"
	"github.com/GriffinCanCode/Linkup/backend/internal/domain/user"
	"github.com/GriffinCanCode/Linkup/backend/internal/infrastructure/auth"
	"github.com/GriffinCanCode/Linkup/backend/internal/infrastructure/config"
	"github.com/GriffinCanCode/Linkup/backend/internal/infrastructure/database"
	"github.com/GriffinCanCode/Linkup/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/Linkup/backend/internal/infrastructure/media"
	"github.com/GriffinCanCode/Linkup/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/Linkup/backend/internal/infrastructure/storage/memory"
	"github.com/GriffinCanCode/Linkup/backend/internal/infrastructure/storage/mongostore"
	"github.com/GriffinCanCode/Linkup/backend/internal/infrastructure/tracing"
)

// jsonBodyOverhead is added to the upload limit for the other form fields
const jsonBodyOverhead = 1 << 20

// Server wraps the HTTP server and dependencies
type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	hub        *ws.Hub
	tracer     *tracing.Tracer
	db         *database.Client
	logger     *logging.Logger
	config     *config.Config
	metrics    *monitoring.Metrics
}

type stores struct {
	users         user.Store
	posts         post.Store
	connections   connection.Store
	notifications notification.Store
}

// NewServer creates a new server instance. It fails when the database is
// unreachable so the process never listens without storage.
func NewServer(ctx context.Context, cfg *config.Config) (*Server, error) {
	logger, err := logging.New(logging.FromSettings(cfg.Logging.Level, cfg.Logging.Development))
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	logger.Info("Initializing Linkup server",
		zap.String("addr", cfg.Server.Addr()),
		zap.String("db_driver", cfg.Database.Driver),
	)

	metrics := monitoring.NewMetrics()
	tracer := tracing.New("linkup", logger.Named("tracing").Logger)

	st, db, err := openStores(ctx, cfg.Database, logger)
	if err != nil {
		tracer.Close()
		return nil, err
	}

	mediaStore, err := media.NewStore(cfg.Media.UploadDir, cfg.Media.MaxBytes)
	if err != nil {
		tracer.Close()
		closeDB(db, logger)
		return nil, err
	}

	// Realtime presence
	registry := presence.NewRegistry()
	tracker := presence.NewTracker(registry, logger.Named("presence").Logger)
	tracker.OnChange(metrics.SetPresenceUsers)
	hub := ws.NewHub(tracker, ws.Config{
		AllowedOrigin:  cfg.CORS.RealtimeOrigin,
		MaxMessageSize: cfg.Realtime.MaxMessageSize,
		PingInterval:   cfg.Realtime.PingInterval,
		SendBuffer:     cfg.Realtime.SendBuffer,
	}, logger.Named("ws").Logger).WithMetrics(metrics)

	// Domain services
	users := user.NewService(st.users)
	notifications := notification.NewService(st.notifications, users, hub, logger.Named("notification").Logger).
		WithMetrics(metrics)
	posts := post.NewService(st.posts, users, notifications, hub, logger.Named("post").Logger)
	connections := connection.NewService(st.connections, users, notifications, hub, logger.Named("connection").Logger)
	tokens := auth.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	handlers := api.NewHandlers(api.Deps{
		Users:         users,
		Posts:         posts,
		Connections:   connections,
		Notifications: notifications,
		Tokens:        tokens,
		Media:         mediaStore,
		Presence:      registry,
		Cookie: api.CookieConfig{
			Name:   cfg.Auth.CookieName,
			Secure: cfg.Auth.CookieSecure,
		},
	})

	// Create router
	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(tracing.HTTPMiddleware(tracer))
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig(cfg.CORS.HTTPOrigin)))

	router.GET("/health", handlers.Health)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	router.GET("/ws", hub.HandleConnection)
	router.Static(media.URLPrefix, mediaStore.Dir())

	apiGroup := router.Group("/api", middleware.BodyLimit(cfg.Media.MaxBytes*2+jsonBodyOverhead))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		apiGroup.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}))
	}
	api.RegisterRoutes(apiGroup, handlers, middleware.RequireAuth(tokens, cfg.Auth.CookieName))

	logger.Info("Server initialized successfully")

	return &Server{
		router: router,
		httpServer: &http.Server{
			Addr:              cfg.Server.Addr(),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		hub:     hub,
		tracer:  tracer,
		db:      db,
		logger:  logger,
		config:  cfg,
		metrics: metrics,
	}, nil
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run starts the HTTP server and blocks until it stops. A graceful
// shutdown returns nil.
func (s *Server) Run() error {
	s.logger.Info("Server running on port "+s.config.Server.Port, zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests, closes realtime connections and
// releases the database.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server...")

	var errs []error
	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("Failed to stop HTTP server", zap.Error(err))
		errs = append(errs, fmt.Errorf("failed to stop HTTP server: %w", err))
	}

	s.hub.Close()
	s.tracer.Close()

	if s.db != nil {
		if err := s.db.Close(ctx); err != nil {
			s.logger.Error("Failed to close database", zap.Error(err))
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		} else {
			s.logger.Info("Closed database connection")
		}
	}

	// Sync logger before exit
	_ = s.logger.Sync()

	return errors.Join(errs...)
}

func openStores(ctx context.Context, cfg config.DatabaseConfig, logger *logging.Logger) (stores, *database.Client, error) {
	switch cfg.Driver {
	case "memory":
		logger.Warn("Using in-memory storage; data is lost on restart")
		return stores{
			users:         memory.NewUserStore(),
			posts:         memory.NewPostStore(),
			connections:   memory.NewConnectionStore(),
			notifications: memory.NewNotificationStore(),
		}, nil, nil
	case "mongo":
		db, err := database.Connect(ctx, cfg, logger.Logger)
		if err != nil {
			logger.Error("Database connection failed", zap.Error(err))
			return stores{}, nil, err
		}
		m, err := mongostore.New(ctx, db.DB())
		if err != nil {
			closeDB(db, logger)
			return stores{}, nil, err
		}
		return stores{
			users:         m.Users,
			posts:         m.Posts,
			connections:   m.Connections,
			notifications: m.Notifications,
		}, db, nil
	default:
		return stores{}, nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}

func closeDB(db *database.Client, logger *logging.Logger) {
	if db == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.Close(ctx); err != nil {
		logger.Warn("Failed to close database", zap.Error(err))
	}
}
