package transport

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	readHeaderTimeout = 5 * time.Second
	readTimeout       = 15 * time.Second
	writeTimeout      = 30 * time.Second
	idleTimeout       = 60 * time.Second
)

// Server обёртка над http.Server: Start блокирует до Shutdown
type Server struct {
	httpServer *http.Server
	log        *zap.Logger
}

func NewServer(port string, handler http.Handler, log *zap.Logger) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              ":" + port,
			Handler:           handler,
			ReadHeaderTimeout: readHeaderTimeout,
			ReadTimeout:       readTimeout,
			WriteTimeout:      writeTimeout,
			IdleTimeout:       idleTimeout,
		},
		log: log.Named("http"),
	}
}

func (s *Server) Addr() string {
	return s.httpServer.Addr
}

func (s *Server) Start() error {
	s.log.Info("listening", zap.String("addr", s.httpServer.Addr))

	err := s.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return fmt.Errorf("listen %s: %w", s.httpServer.Addr, err)
}

func (s *Server) Shutdown(ctx context.Context) error {
	started := time.Now()
	err := s.httpServer.Shutdown(ctx)
	s.log.Info("stopped",
		zap.Duration("took", time.Since(started)),
		zap.Error(err),
	)
	return err
}
