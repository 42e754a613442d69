package main

import (
	"context"
	"errors"
	"fmt"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/vncsmyrnk/tabsvspaces/internal/adapters/events/kafka"
	"github.com/vncsmyrnk/tabsvspaces/internal/adapters/handler/http"
	"github.com/vncsmyrnk/tabsvspaces/internal/adapters/live"
	"github.com/vncsmyrnk/tabsvspaces/internal/adapters/oauth/firebase"
	"github.com/vncsmyrnk/tabsvspaces/internal/adapters/oauth/google"
	"github.com/vncsmyrnk/tabsvspaces/internal/adapters/repository"
	"github.com/vncsmyrnk/tabsvspaces/internal/config"
	"github.com/vncsmyrnk/tabsvspaces/internal/core/ports"
	"github.com/vncsmyrnk/tabsvspaces/internal/core/services"
	"github.com/vncsmyrnk/tabsvspaces/internal/logger"
	"github.com/vncsmyrnk/tabsvspaces/internal/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.ServiceName, cfg.Env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	os.Exit(exitCode(log, run(cfg, log)))
}

// exitCode logs err and flushes the logger before the process exits.
func exitCode(log *zap.Logger, err error) int {
	code := 0
	if err != nil {
		log.Error("server stopped", zap.Error(err))
		code = 1
	}
	_ = log.Sync()
	return code
}

func run(cfg config.Config, log *zap.Logger) error {
	if err := cfg.ValidateAuth(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := repository.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Warn("failed to close store", zap.Error(err))
		}
	}()
	log.Info("store ready", zap.String("store", cfg.Store))

	verifier, err := newVerifier(ctx, cfg)
	if err != nil {
		return err
	}

	hub := live.NewHub(log, live.OriginChecker(cfg.CORSAllowedOrigins))
	publishers := map[string]ports.VoteEventPublisher{}

	if cfg.RedisAddr != "" {
		rdb, err := live.ConnectRedis(ctx, cfg.RedisAddr)
		if err != nil {
			return err
		}
		defer rdb.Close()
		if err := live.StartRedisSubscriber(ctx, log, rdb, cfg.RedisChannel, hub); err != nil {
			return err
		}
		publishers["redis"] = live.NewRedisBroadcaster(rdb, cfg.RedisChannel)
	} else {
		publishers["live"] = hub
	}

	if len(cfg.KafkaBrokers) > 0 {
		w := kafka.NewWriter(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer func() {
			if err := w.Close(); err != nil {
				log.Warn("failed to close kafka writer", zap.Error(err))
			}
		}()
		publishers["kafka"] = kafka.NewPublisher(w)
	}

	authService := services.NewAuthService(verifier, cfg.DevHost)
	voteService := services.NewVoteService(log, store.Votes, authService, publishers)
	summaryService := services.NewSummaryService(store.Votes)

	handler := http.NewHandler(http.RouterDeps{
		Log:            log,
		Votes:          http.NewVoteHandler(log, voteService),
		Summary:        http.NewSummaryHandler(log, summaryService),
		Live:           hub.HandleWS,
		Health:         store.Votes.Ping,
		AllowedOrigins: cfg.CORSAllowedOrigins,
	})

	servers := []*stdhttp.Server{{Addr: cfg.HTTPAddr, Handler: handler}}
	if cfg.MetricsAddr != "" {
		servers = append(servers, metrics.NewServer(cfg.MetricsAddr, store.Votes.Ping))
	}

	errCh := make(chan error, len(servers))
	for _, srv := range servers {
		go func(srv *stdhttp.Server) {
			log.Info("listening", zap.String("addr", srv.Addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
				errCh <- fmt.Errorf("listen on %s: %w", srv.Addr, err)
			}
		}(srv)
	}

	select {
	case <-ctx.Done():
		log.Info("gracefully shutting down")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	for _, srv := range servers {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warn("shutdown incomplete", zap.String("addr", srv.Addr), zap.Error(err))
		}
	}
	return nil
}

func newVerifier(ctx context.Context, cfg config.Config) (ports.TokenVerifier, error) {
	switch cfg.AuthProvider {
	case config.AuthGoogle:
		return google.NewVerifier(cfg.GoogleClientID), nil
	default:
		return firebase.NewVerifier(ctx, cfg.GoogleCloudProject)
	}
}
