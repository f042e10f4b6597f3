package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"example.com/trainingdata/internal/config"
	"example.com/trainingdata/internal/domain"
	"example.com/trainingdata/internal/extract"
	"example.com/trainingdata/internal/journal"
	"example.com/trainingdata/internal/labeling"
	"example.com/trainingdata/internal/pipeline"
)

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-stop
		log.Println("shutdown requested")
		cancel()
	}()

	metricsSrv := &http.Server{Addr: cfg.MetricsAddress, Handler: promhttp.Handler()}
	go func() {
		log.Printf("metrics listening on %s", cfg.MetricsAddress)
		if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("metrics server error: %v", err)
		}
	}()

	source, cleanup, err := buildSource(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to build journal source: %v", err)
	}
	defer cleanup()

	driver := pipeline.NewDriver(extract.NewExtractor(),
		pipeline.WithWorkers(cfg.Workers))

	runErr := driver.Run(ctx, source,
		pipeline.Pipeline{
			Name:       "activity",
			Mapper:     labeling.NewActivityBinary(),
			Filter:     labeling.SingleUser{Target: domain.UserID(cfg.TargetUser)},
			OutputRoot: cfg.ActivityOutputRoot,
		},
		pipeline.Pipeline{
			Name:       "exercise",
			Mapper:     labeling.Identity{},
			Filter:     labeling.AllUsers{},
			OutputRoot: cfg.ExerciseOutputRoot,
		},
	)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		log.Printf("metrics server shutdown error: %v", err)
	}

	if runErr != nil {
		log.Fatalf("preparation run failed: %v", runErr)
	}
	log.Println("preparation run complete")
}

func buildSource(ctx context.Context, cfg config.Config) (journal.Source, func(), error) {
	switch cfg.JournalSource {
	case "postgres":
		pool, err := pgxpool.New(ctx, cfg.PostgresURL)
		if err != nil {
			return nil, nil, err
		}
		return journal.NewPostgresSource(pool), pool.Close, nil
	default:
		return journal.NewKafkaSource(cfg.KafkaBrokers, cfg.SessionTopic), func() {}, nil
	}
}
