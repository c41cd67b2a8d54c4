package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/Yusuke0018/Phrase-Forge/internal/config"
	"github.com/Yusuke0018/Phrase-Forge/internal/database"
	"github.com/Yusuke0018/Phrase-Forge/internal/scheduler"
	"github.com/Yusuke0018/Phrase-Forge/internal/stats"
	"github.com/Yusuke0018/Phrase-Forge/internal/study"
)

func main() {
	log := logrus.New()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	if err := database.Connect(cfg.Database); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	categoryRepo := database.NewCategoryRepository()
	if err := categoryRepo.EnsureDefaults(ctx); err != nil {
		log.Fatalf("Failed to seed default categories: %v", err)
	}

	phraseRepo := database.NewPhraseRepository()
	statsRepo := database.NewStatsRepository()
	aggregator := stats.NewAggregator(phraseRepo, statsRepo, cfg.StatsCacheTTL)
	service := study.New(phraseRepo, statsRepo, aggregator, log)

	// Surface today's queue on startup so the session starts with a plan.
	due, err := service.DueSet(ctx, service.Now())
	if err != nil {
		log.Fatalf("Failed to compute due set: %v", err)
	}
	log.WithField("due", len(due)).Info("Phrase Forge ready")

	sched := scheduler.New(statsRepo, aggregator, cfg.MaintenanceHour, log)
	if err := sched.Start(); err != nil {
		log.Fatalf("Failed to start maintenance scheduler: %v", err)
	}
	defer sched.Stop()

	// Catch up on any streak break that happened while we were not running.
	if err := sched.RolloverStreak(ctx); err != nil {
		log.WithError(err).Warn("startup streak rollover failed")
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan
	log.Infof("Received signal: %v, shutting down", sig)
}
