package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"cnctools/catalog/internal/config"
	"cnctools/catalog/internal/domain"
	"cnctools/catalog/internal/taxonomy"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// CatalogService is what the HTTP surface needs from the catalog.
type CatalogService interface {
	SessionState(ctx context.Context, sessionID string) domain.FilterState
	Query(ctx context.Context, sessionID string, st domain.FilterState) (domain.Page, domain.FilterState)
	Export(ctx context.Context, st domain.FilterState, w io.Writer) error
	Refresh(ctx context.Context) error
	RefreshedAt() time.Time
	Taxonomy() *taxonomy.Taxonomy
}

type Server struct {
	config  config.ServerConfig
	catalog CatalogService
	router  *gin.Engine
}

func New(cfg config.ServerConfig, catalog CatalogService) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger())
	router.Use(CORS(cfg.AllowedOrigins))

	s := &Server{
		config:  cfg,
		catalog: catalog,
		router:  router,
	}

	cookie := cfg.SessionCookie
	if cookie == "" {
		cookie = "catalog_session"
	}

	router.GET("/healthz", s.health)

	router.GET("/catalog", Session(cookie, cfg.SessionMaxAge), s.catalogPage)

	api := router.Group("/api/catalog")
	{
		api.GET("", Session(cookie, cfg.SessionMaxAge), s.query)
		api.GET("/taxonomy", s.taxonomy)
		api.GET("/export.xlsx", Session(cookie, cfg.SessionMaxAge), s.export)
		api.POST("/refresh", s.refresh)
	}

	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", s.config.Host, s.config.Port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("🚀 Catalog server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("🛑 Shutting down catalog server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}
