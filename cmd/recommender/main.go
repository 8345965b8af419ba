package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/scholarlink/recommender/api"
	"github.com/scholarlink/recommender/config"
	"github.com/scholarlink/recommender/internal/catalog"
	"github.com/scholarlink/recommender/internal/inference"
	"github.com/scholarlink/recommender/internal/recommend"
	"github.com/scholarlink/recommender/internal/scheduler"
	"github.com/scholarlink/recommender/internal/scoring"
	"github.com/scholarlink/recommender/services"
)

func main() {
	var (
		help    = flag.Bool("help", false, "Show help message")
		version = flag.Bool("version", false, "Show version information")
		port    = flag.String("port", "", "Port to run the server on (overrides SERVER_PORT)")
		envFile = flag.String("env-file", "", "Load environment variables from this file before reading configuration")
	)

	flag.Parse()

	if *help {
		fmt.Printf("Scholarship Recommender - offer recommendation and ranking service\n\n")
		fmt.Printf("Usage: %s [options]\n\n", os.Args[0])
		fmt.Printf("Options:\n")
		flag.PrintDefaults()
		fmt.Printf("\nConfiguration is read from the environment (see config package);\n")
		fmt.Printf("a .env file in the working directory is honored.\n")
		return
	}

	if *version {
		fmt.Printf("Scholarship Recommender v1.0.0\n")
		return
	}

	if *envFile != "" {
		if err := godotenv.Load(*envFile); err != nil {
			logrus.Fatalf("Failed to load env file %s: %v", *envFile, err)
		}
	}

	settings := config.Load()
	if *port != "" {
		settings.ServerPort = *port
	}

	if level, err := logrus.ParseLevel(settings.LogLevel); err == nil {
		logrus.SetLevel(level)
	}

	if problems := settings.Validate(); len(problems) > 0 {
		for _, problem := range problems {
			logrus.Error(problem)
		}
		logrus.Fatal("Invalid configuration")
	}

	ctx := context.Background()

	source, admin, err := buildCatalog(ctx, settings)
	if err != nil {
		logrus.Fatalf("Failed to initialize catalog: %v", err)
	}

	scorer := buildScorer(settings)
	logrus.WithFields(logrus.Fields{
		"scorer":  scorer.Name(),
		"backend": settings.CatalogBackend,
	}).Info("Recommendation service configured")

	service, err := recommend.NewService(source, scorer, settings.MaxInFlight)
	if err != nil {
		logrus.Fatalf("Failed to initialize recommendation service: %v", err)
	}

	pipeline := recommend.NewPipeline(service, source)
	defer pipeline.Stop()

	refreshScheduler := scheduler.New(pipeline, settings.RefreshInterval)
	if err := refreshScheduler.Start(ctx); err != nil {
		logrus.Fatalf("Failed to start refresh scheduler: %v", err)
	}
	defer refreshScheduler.Stop()

	router := gin.Default()
	api.SetupRoutes(router, api.NewAPI(service, source, admin, pipeline))

	logrus.Infof("Starting server on port %s...", settings.ServerPort)
	if err := router.Run(":" + settings.ServerPort); err != nil {
		logrus.Fatalf("Failed to start server: %v", err)
	}
}

// buildCatalog wires the configured catalog backend, optionally wrapped with
// the Redis offer cache.
func buildCatalog(ctx context.Context, settings *config.Settings) (services.CatalogSource, api.CatalogAdmin, error) {
	var source services.CatalogSource
	var admin api.CatalogAdmin

	switch settings.CatalogBackend {
	case config.CatalogPostgres:
		pool, err := catalog.NewPostgresPool(ctx, settings.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		source = catalog.NewPostgresCatalog(pool)
	default:
		memory := catalog.NewMemoryCatalog(settings.DataDir)
		source = memory
		admin = memory
	}

	if settings.RedisURL != "" {
		rdb, err := catalog.NewRedisClient(ctx, settings.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		source = catalog.NewCachedCatalog(source, rdb, settings.CatalogCacheTTL)
	}

	return source, admin, nil
}

// buildScorer selects the scoring strategy. Both implementations satisfy the
// same contract; the choice is configuration, not code paths.
func buildScorer(settings *config.Settings) services.Scorer {
	if settings.ScorerKind == config.ScorerRemote {
		client := inference.NewClient(
			settings.InferenceURL,
			settings.InferenceToken,
			settings.InferenceTimeout,
			settings.RequestsPerSecond,
		)
		return scoring.NewRemote(client, settings.InferenceThreshold)
	}
	return scoring.NewJaccard()
}
