// Command autoavailability keeps every artist bookable over a rolling window.
// Run it once a day from cron; with -date it instead marks all artists
// available on that single day.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"artist-booking/config"
	"artist-booking/internal/database"
	"artist-booking/internal/model"
	"artist-booking/internal/repository"
	"artist-booking/internal/service"
	"artist-booking/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	days := flag.Int("days", 0, "window length in days (defaults to AVAILABILITY_WINDOW_DAYS)")
	date := flag.String("date", "", "fill a single YYYY-MM-DD day for every artist instead of the rolling window")
	allArtists := flag.Bool("all", false, "with -date, include artists that are not approved yet")
	flag.Parse()

	defer logger.Sync()
	log := logger.WithComponent("autoavailability")

	cfg := config.LoadConfig()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := database.InitDatabase(ctx, &cfg.Database)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer pool.Close()

	availabilityService := service.NewAvailabilityService(
		repository.NewTransactor(pool),
		repository.NewAvailabilityRepository(pool),
		repository.NewArtistRepository(pool),
	)

	if *date != "" {
		day, err := model.ParseDay(*date)
		if err != nil {
			log.Error("Invalid -date", zap.String("date", *date), zap.Error(err))
			os.Exit(2)
		}
		result, err := availabilityService.EnsureAvailableForAllOn(ctx, day, !*allArtists)
		if err != nil {
			log.Error("Fill failed", zap.Error(err))
			os.Exit(1)
		}
		log.Info("Fill complete",
			zap.String("date", *date),
			zap.Int("created", result.Created),
			zap.Int("skipped", result.Skipped))
		return
	}

	window := cfg.Availability.DefaultWindowDays
	if *days > 0 {
		window = *days
	}

	result, err := availabilityService.EnsureRollingWindowForAll(ctx, window)
	if err != nil {
		log.Error("Rolling window failed", zap.Error(err))
		os.Exit(1)
	}
	log.Info("Rolling window complete",
		zap.Int("days", window),
		zap.Int("added", result.Added),
		zap.Int("skipped", result.Skipped))
}
