package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gomodule/redigo/redis"
	"github.com/gorilla/mux"
	"github.com/spf13/cobra"

	"stream/pkg/middleware"
	"stream/pkg/post"
	"stream/pkg/post/api"
	"stream/pkg/sessions"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(a *app) *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx, migrate)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "create the schema before serving")
	return cmd
}

func (a *app) serve(ctx context.Context, migrate bool) error {
	store, err := openStorage(ctx, a)
	if err != nil {
		return err
	}
	defer store.close()

	if migrate {
		if err := store.migrate(ctx); err != nil {
			return err
		}
	}

	pool := a.redisPool()
	if p, ok := pool.(*redis.Pool); ok {
		defer p.Close()
	}
	sessionManager := sessions.NewManager(a.cfg.JWTSecret, pool)
	postHandler := api.NewPostHandler(post.NewService(store.repo))
	auth := middleware.NewAuthMiddleware(sessionManager)

	r := mux.NewRouter()
	postHandler.Routes(r, auth.Require)

	logMiddleware := middleware.NewLoggingMiddleware(a.log)
	r.Use(logMiddleware.SetupTracing)
	r.Use(logMiddleware.SetupLogging)
	r.Use(logMiddleware.AccessLog)

	cors := middleware.CORSMiddleware(middleware.DefaultCORSConfig(a.cfg.AllowedOrigins, a.cfg.CORSMaxAge))

	srv := &http.Server{
		Addr:              a.cfg.Addr(),
		Handler:           cors(r),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Infof("main: serving at http://localhost%s/ with %s storage", srv.Addr, a.cfg.Storage)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	a.log.Info("main: shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// redisPool is nil when no revocation store is configured.
func (a *app) redisPool() sessions.RedisPool {
	if a.cfg.RedisAddr == "" {
		return nil
	}
	addr := a.cfg.RedisAddr
	return &redis.Pool{
		MaxIdle:     3,
		IdleTimeout: 240 * time.Second,
		Dial: func() (redis.Conn, error) {
			return redis.DialURL(addr)
		},
	}
}
