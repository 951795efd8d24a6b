package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"sjsage522/pricecompare/config"
	"sjsage522/pricecompare/helpers"
	"sjsage522/pricecompare/internal"
	"sjsage522/pricecompare/internal/crawler"
	httpDelivery "sjsage522/pricecompare/internal/delivery/http"
	"sjsage522/pricecompare/internal/filter"
	"sjsage522/pricecompare/logger"
	"sjsage522/pricecompare/services/cache"
	"sjsage522/pricecompare/services/comparer"
	"sjsage522/pricecompare/services/exporter"
	"sjsage522/pricecompare/services/presenter"
	"sjsage522/pricecompare/services/publisher"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	godotenv.Load()

	// Initialize logger first
	logger.Init()
	log := logger.Default

	// Load and validate configuration
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	log.Info().
		Str("environment", cfg.Environment).
		Str("filter_policy", cfg.FilterPolicy).
		Bool("concurrent_fetch", cfg.ConcurrentFetch).
		Msg("Starting application")

	// Set up context with cancellation on shutdown signals
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Initialize services
	services, err := initializeServices(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize services")
	}
	defer services.Cleanup()

	if cfg.HTTPAddr != "" {
		if err := serve(ctx, cfg, services); err != nil {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
		return
	}

	query := strings.TrimSpace(strings.Join(os.Args[1:], " "))
	if query == "" {
		query = cfg.DefaultQuery
	}
	if err := runOnce(ctx, cfg, services, query, os.Stdout); err != nil {
		services.Cleanup()
		log.Fatal().Err(err).Msg("Comparison failed")
	}
}

// Services holds all the initialized services
type Services struct {
	Cache     cache.CacheService
	Fetcher   helpers.Fetcher
	Reporter  helpers.LoggerInterface
	Publisher publisher.Publisher
}

// Cleanup cleans up all services
func (s *Services) Cleanup() {
	if s.Publisher != nil {
		if err := s.Publisher.TrimStreams(); err != nil {
			logger.ForPublisher().Warn().Err(err).Msg("Failed to trim streams")
		}
		s.Publisher.Close()
		s.Publisher = nil
	}
}

// initializeServices initializes all required services
func initializeServices(ctx context.Context, cfg *config.Config) (*Services, error) {
	services := &Services{
		Cache:    cache.New(cfg.MemcacheAddr),
		Fetcher:  helpers.NewHTTPFetcher(cfg.RequestTimeout),
		Reporter: helpers.NewLogger(cfg.ErrorLogFile),
	}

	// Publishing is optional
	if cfg.RedisAddr != "" {
		redisPublisher := publisher.NewRedisPublisher(
			ctx,
			cfg.RedisAddr,
			cfg.RedisDB,
			cfg.RedisStream,
			cfg.RedisStreamCount,
			cfg.RedisStreamMaxLength,
		)
		if err := redisPublisher.Ping(); err != nil {
			redisPublisher.Close()
			return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.RedisAddr, err)
		}
		services.Publisher = redisPublisher

		logger.Info("Connected to Redis at %s (DB: %d, Stream: %s)",
			cfg.RedisAddr, cfg.RedisDB, cfg.RedisStream)
	}

	return services, nil
}

// newComparer wires crawlers, relevance policy and sinks into a comparer
func newComparer(cfg *config.Config, services *Services, sinks ...comparer.Sink) (*comparer.Comparer, error) {
	policy, err := filter.ForName(cfg.FilterPolicy, cfg.FilterBlacklist)
	if err != nil {
		return nil, err
	}

	crawlers := crawler.CreateCrawlers(cfg, internal.Dependencies{
		Cache:    services.Cache,
		Fetcher:  services.Fetcher,
		Reporter: services.Reporter,
	})
	if len(crawlers) == 0 {
		return nil, errors.New("no crawlers were created")
	}

	logger.Info("Created %d crawlers", len(crawlers))

	if services.Publisher != nil {
		sinks = append(sinks, publisher.NewResultSink(services.Publisher))
	}

	return comparer.NewComparer(crawlers,
		comparer.WithPolicy(policy),
		comparer.WithConcurrency(cfg.ConcurrentFetch),
		comparer.WithReporter(services.Reporter),
		comparer.WithSinks(sinks...),
	), nil
}

// runOnce compares a single query, renders the cheapest listings to out
// and exports the full and top-N result sets
func runOnce(ctx context.Context, cfg *config.Config, services *Services, query string, out io.Writer) error {
	c, err := newComparer(cfg, services, presenter.NewConsole(out, cfg.TopN))
	if err != nil {
		return err
	}

	_, found, err := c.CompareAndExport(ctx, query, exporter.NewCSVExporter(), cfg.ExportDir, cfg.TopN)
	if err != nil {
		return err
	}
	if !found {
		fmt.Fprintf(out, "No products found for %q\n", query)
	}
	return nil
}

// serve runs the HTTP API until ctx is cancelled
func serve(ctx context.Context, cfg *config.Config, services *Services) error {
	c, err := newComparer(cfg, services)
	if err != nil {
		return err
	}

	router := httpDelivery.SetupRouter(cfg, httpDelivery.NewHandler(c, cfg.TopN))
	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverDone := make(chan error, 1)
	go func() {
		logger.Info("Server listening on %s", cfg.HTTPAddr)
		serverDone <- server.ListenAndServe()
	}()

	select {
	case err := <-serverDone:
		return err
	case <-ctx.Done():
		logger.Info("Shutting down gracefully...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout+5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
