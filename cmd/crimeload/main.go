// Command crimeload imports the LA crime CSV dataset into the document store,
// replacing whatever is there.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/crimedex/crimedex/internal/config"
	"github.com/crimedex/crimedex/internal/db/mongodb"
	logpkg "github.com/crimedex/crimedex/internal/logger"
	crimerepo "github.com/crimedex/crimedex/internal/repository/crime"
	upvoterepo "github.com/crimedex/crimedex/internal/repository/upvote"
	victimrepo "github.com/crimedex/crimedex/internal/repository/victim"
	weaponrepo "github.com/crimedex/crimedex/internal/repository/weapon"
	loaderuc "github.com/crimedex/crimedex/internal/usecase/loader"
)

func main() {
	var (
		filePath  = flag.String("file", "crime_data.csv", "path to the LA crime CSV export")
		batchSize = flag.Int("batch-size", 0, "insert batch size (0 = config default)")
	)
	flag.Parse()

	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := mongodb.NewStore(ctx, mongodb.Config{
		URI:      cfg.Database.URI,
		Database: cfg.Database.Name,
	})
	if err != nil {
		logger.Fatal("Failed to create document store", zap.Error(err))
	}
	defer func() { _ = store.Close(context.Background()) }()

	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Document store not ready", zap.Error(err))
	}

	if err := store.EnsureIndexes(ctx); err != nil {
		logger.Fatal("Failed to ensure indexes", zap.Error(err))
	}

	f, err := os.Open(*filePath)
	if err != nil {
		logger.Fatal("Failed to open dataset", zap.String("file", *filePath), zap.Error(err))
	}
	defer func() { _ = f.Close() }()

	svc := loaderuc.New(
		crimerepo.New(store),
		victimrepo.New(store),
		weaponrepo.New(store),
		upvoterepo.New(store),
		logger,
	)
	size := cfg.Loader.BatchSize
	if *batchSize > 0 {
		size = *batchSize
	}
	svc = svc.WithBatchSize(size)

	start := time.Now()
	n, err := svc.Run(ctx, f)
	if err != nil {
		logger.Fatal("Import failed", zap.Error(err))
	}

	logger.Info("Import finished",
		zap.String("file", *filePath),
		zap.Int("records", n),
		zap.Duration("took", time.Since(start)),
	)
}
