package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/sofregit/backend/config"
	"github.com/pageza/sofregit/backend/internal/api"
	"github.com/pageza/sofregit/backend/internal/database"
	"github.com/pageza/sofregit/backend/internal/middleware"
	"github.com/pageza/sofregit/backend/internal/service"
	"github.com/pageza/sofregit/backend/internal/store"
)

// Server represents the HTTP server
type Server struct {
	cfg    *config.Config
	deps   *Deps
	router *gin.Engine
	http   *http.Server
	hub    *service.AuthHub
	logger *zap.Logger
}

// New wires the services on top of deps and builds the router.
func New(cfg *config.Config, deps *Deps, logger *zap.Logger) *Server {
	hub := service.NewAuthHub(deps.Redis, logger)
	authService := service.NewAuthService(deps.DB, deps.Sessions, hub, cfg.JWTSecret, cfg.SessionTTL, logger)
	recipeService := service.NewRecipeService(deps.Recipes, deps.Objects, logger)
	profileService := service.NewProfileService(authService, recipeService, logger)

	router := gin.New()
	router.Use(
		middleware.Recovery(logger),
		middleware.RequestLogger(logger.Named("http")),
		middleware.CORS(cfg.CORSAllowedOrigins),
		middleware.ClientSession(config.IsProduction()),
	)

	s := &Server{cfg: cfg, deps: deps, router: router, hub: hub, logger: logger}
	router.GET("/health", s.health)

	files, _ := deps.Objects.(*store.MemoryObjectStore)
	api.SetupAPI(router, api.Services{
		Auth:     authService,
		Recipes:  recipeService,
		Profiles: profileService,
		Files:    files,
		Logger:   logger,
	})
	return s
}

// Router returns the HTTP handler of the server.
func (s *Server) Router() *gin.Engine {
	return s.router
}

func (s *Server) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := database.HealthCheck(ctx, s.deps.DB); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": "database unreachable"})
		return
	}
	if s.deps.Redis != nil {
		if err := s.deps.Redis.Ping(ctx).Err(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": "redis unreachable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	s.http = &http.Server{
		Addr:              s.cfg.Addr(),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	hubCtx, stopHub := context.WithCancel(ctx)
	defer stopHub()
	go func() {
		if err := s.hub.Run(hubCtx); err != nil {
			s.logger.Error("auth state relay stopped", zap.Error(err))
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", zap.String("addr", s.http.Addr))
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.logger.Info("shutting down server")
	return s.Stop(shutdownCtx)
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	if s.http != nil {
		return s.http.Shutdown(ctx)
	}
	return nil
}
