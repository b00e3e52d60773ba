package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"github.com/sandevgo/memobot/internal/config"
	"github.com/sandevgo/memobot/pkg/log"
)

// Server runs the HTTP API as a srv.Service.
type Server struct {
	httpServer *http.Server
}

func NewServer(ctx context.Context, cfg *config.AppConfig, svc ChatService) *Server {
	if !config.IsDebug() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := NewRouter(ctx, svc, cfg.GetDefaultUser())

	// The browser client is served from another origin.
	handler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}).Handler(router)

	return &Server{
		httpServer: &http.Server{
			Addr:         cfg.GetHTTPAddr(),
			Handler:      handler,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			BaseContext: func(net.Listener) context.Context {
				return context.WithoutCancel(ctx)
			},
		},
	}
}

func (s *Server) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Str("addr", s.httpServer.Addr).Msg("starting http server")

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	log.FromCtx(ctx).Info().Msg("stopping http server")
	return s.httpServer.Shutdown(ctx)
}
