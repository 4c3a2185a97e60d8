package server

import (
	"context"
	"log/slog"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"docstore/internal/api/http"
	"docstore/internal/corpus"
	"docstore/pkg/embedding"
	"docstore/pkg/log"
	"docstore/pkg/mq"
	"docstore/pkg/redis"
	"docstore/pkg/storage"
)

// Server represents the docstore server
type Server struct {
	config Config
	logger *slog.Logger
	corpus *corpus.Corpus
	store  *storage.PostgresStore
}

// NewServer creates a new server with the given configuration
func NewServer(conf Config) (*Server, error) {
	server := &Server{
		config: conf,
	}

	if err := server.initDepend(); err != nil {
		return nil, errors.WithMessage(err, "init server dependency failed")
	}

	if err := server.initCorpus(); err != nil {
		return nil, errors.WithMessage(err, "init corpus failed")
	}

	return server, nil
}

// initDepend initializes all dependencies
func (s *Server) initDepend() error {
	// Initialize log first
	if err := log.Init(s.config.Log); err != nil {
		return errors.WithMessage(err, "failed to init log")
	}

	s.logger = log.Logger("server")
	s.logger.Info("initializing dependencies")

	// Initialize the embedding provider
	s.logger.Info("initializing embedding provider")
	if err := embedding.Init(s.config.Embedding); err != nil {
		return errors.WithMessage(err, "failed to init embedding")
	}

	// Initialize PostgreSQL storage. Schema provisioning (vector extension,
	// tables) happens here; an unprovisioned backend fails startup.
	s.logger.Info("initializing storage")
	if err := storage.Init(s.config.Postgres); err != nil {
		return errors.WithMessage(err, "failed to init storage")
	}
	s.store = storage.NewStore()

	// Initialize Redis and install the embedding cache when enabled
	s.logger.Info("initializing redis")
	if err := redis.Init(s.config.Redis); err != nil {
		return errors.WithMessage(err, "failed to init redis")
	}
	if client := redis.Client(); client != nil {
		cached := embedding.NewCachedEmbedder(
			embedding.Default(), client, s.config.Embedding.Model, s.config.Redis.TTL())
		embedding.SetDefault(cached)
	}

	// Initialize Kafka producer
	s.logger.Info("initializing message queue")
	if err := mq.Init(s.config.Kafka); err != nil {
		return errors.WithMessage(err, "failed to init message queue")
	}

	return nil
}

// initCorpus initializes the corpus facade
func (s *Server) initCorpus() error {
	s.logger.Info("initializing corpus")

	var queue mq.MessageQueue
	if producer := mq.NewQueue(); producer != nil {
		queue = producer
	}

	s.corpus = corpus.New(embedding.Default(), s.store, queue)
	return nil
}

// Start starts the HTTP server and blocks until shutdown
func (s *Server) Start() error {
	s.logger.Info("starting", "port", s.config.Server.Port)

	ctx, cancel := context.WithCancel(context.Background())

	// Handle graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		s.logger.Info("received shutdown signal")
		cancel()
	}()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return s.runHTTPServer(ctx)
	})

	return g.Wait()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown() error {
	s.logger.Info("shutting down")

	ctx := context.Background()

	if err := redis.Close(); err != nil {
		s.logger.Error("failed to close redis", "error", err)
	}

	if producer := mq.NewQueue(); producer != nil {
		if err := producer.Close(); err != nil {
			s.logger.Error("failed to close message queue", "error", err)
		}
	}

	if err := storage.Close(ctx); err != nil {
		s.logger.Error("failed to close storage", "error", err)
	}

	return nil
}

func (s *Server) runHTTPServer(ctx context.Context) error {
	serverCfg := http.DefaultServerConfig()
	serverCfg.Port = s.config.Server.Port

	srv := http.NewServer(s.corpus, s.store, serverCfg)

	// Shutdown when context is cancelled
	go func() {
		<-ctx.Done()
		_ = srv.Shutdown(context.Background())
	}()

	if err := srv.Start(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
		return errors.WithMessage(err, "http server error")
	}
	return nil
}
