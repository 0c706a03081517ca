// Command askstub serves a canned-answer POST /ask endpoint for local
// development of the chat widget.
package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/zhouzirui/z-tavern/askwidget/internal/config"
	"github.com/zhouzirui/z-tavern/askwidget/internal/handler"
	"github.com/zhouzirui/z-tavern/askwidget/internal/handler/ask"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		logger.Warn("failed to load .env file, continuing with system environment variables only", zap.Error(err))
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	router := handler.NewRouter(ask.EchoAnswerer{Prefix: cfg.Server.EchoPrefix}, logger)

	startServer(ctx, logger, cfg.Server, router)
}

// shutdownGrace bounds how long in-flight /ask requests may finish after a signal.
const shutdownGrace = 10 * time.Second

func startServer(ctx context.Context, logger *zap.Logger, serverCfg config.ServerConfig, router http.Handler) {
	ln, err := net.Listen("tcp", serverCfg.Addr)
	if err != nil {
		logger.Fatal("listen failed", zap.String("addr", serverCfg.Addr), zap.Error(err))
	}

	srv := &http.Server{
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
		ErrorLog:          zap.NewStdLog(logger.Named("http")),
	}

	logger.Info("ask stub listening", zap.String("addr", ln.Addr().String()))
	if err := serve(ctx, logger, srv, ln, shutdownGrace); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}

// serve runs srv on ln until ctx ends, then drains it for at most grace.
func serve(ctx context.Context, logger *zap.Logger, srv *http.Server, ln net.Listener, grace time.Duration) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("ask stub shutting down", zap.Duration("grace", grace))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()
	shutdownErr := srv.Shutdown(shutdownCtx)

	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	if shutdownErr != nil {
		return fmt.Errorf("shutdown: %w", shutdownErr)
	}
	return nil
}
