package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/fortuna/augur/internal/api/rest"
	"github.com/fortuna/augur/internal/api/websocket"
	"github.com/fortuna/augur/internal/cache"
	"github.com/fortuna/augur/internal/config"
	"github.com/fortuna/augur/internal/fetch"
	"github.com/fortuna/augur/internal/fetch/bref"
	"github.com/fortuna/augur/internal/fetch/injuries"
	"github.com/fortuna/augur/internal/fetch/nbastats"
	"github.com/fortuna/augur/internal/fetch/teamrankings"
	"github.com/fortuna/augur/internal/logging"
	"github.com/fortuna/augur/internal/publisher"
	"github.com/fortuna/augur/internal/schedule"
	"github.com/fortuna/augur/internal/scheduler"
	"github.com/fortuna/augur/internal/service"
)

const (
	serviceName    = "augur"
	serviceVersion = "1.0.0"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	log := logging.Init(cfg.LogLevel, cfg.IsDevelopment())
	log.WithFields(logrus.Fields{
		"service": serviceName,
		"version": serviceVersion,
	}).Info("Starting player prop projection service")

	// Redis with retry, degrading to the in-process cache. Projections work
	// without Redis; only the analysis stream goes dark.
	var store cache.Cache
	var redisCache *cache.RedisCache
	maxRetries := 5
	retryDelay := 2 * time.Second
	for i := 0; i < maxRetries; i++ {
		redisCache, err = cache.NewRedisCache(cfg.RedisURL)
		if err == nil {
			break
		}
		if i < maxRetries-1 {
			log.WithFields(logrus.Fields{
				"attempt": i + 1,
				"error":   err.Error(),
			}).Warn("Redis connection failed, retrying")
			time.Sleep(retryDelay)
		}
	}

	var pub *publisher.RedisPublisher
	if redisCache != nil && err == nil {
		store = redisCache
		pub = publisher.NewRedisPublisherFromClient(redisCache.Client())
		defer redisCache.Close()
		log.Info("Connected to Redis")
	} else {
		store = cache.NewMemoryCache()
		log.Warn("Redis unavailable, using in-process cache without the analysis stream")
	}

	// Shared upstream HTTP client, optionally with a browser fallback
	fetchOpts := fetch.Options{
		Timeout:       cfg.RequestTimeout,
		RatePerSecond: cfg.UpstreamRatePerSecond,
		Logger:        log,
	}
	if cfg.EnableBrowserFallback {
		browser, err := fetch.NewBrowserFetcher()
		if err != nil {
			log.WithField("error", err.Error()).Warn("Browser fallback unavailable")
		} else {
			fetchOpts.Browser = browser
			defer browser.Close()
		}
	}
	fetcher := fetch.NewClient(fetchOpts)

	statsClient := nbastats.NewClient(cfg.StatsAPIBase, fetcher)
	injuryClient := injuries.NewClient(cfg.InjuryReportURL, fetcher)
	paceClient := teamrankings.NewClient(cfg.TeamRankingsBase, fetcher)
	defenseClient := bref.NewClient(cfg.ReferenceBase, fetcher)

	// Optional local CSV schedule backs up the scoreboard
	var fallbackSchedule schedule.Source
	if cfg.ScheduleCSVPath != "" {
		csvSchedule, err := schedule.LoadCSV(cfg.ScheduleCSVPath)
		if err != nil {
			log.WithFields(logrus.Fields{
				"path":  cfg.ScheduleCSVPath,
				"error": err.Error(),
			}).Warn("Schedule CSV unusable, relying on the scoreboard alone")
		} else {
			fallbackSchedule = csvSchedule
			log.WithField("games", csvSchedule.Len()).Info("Loaded fallback schedule")
		}
	}

	var svcPub service.Publisher
	if pub != nil {
		svcPub = pub
	}
	svc := service.NewAnalysisService(
		statsClient,
		injuryClient,
		paceClient,
		defenseClient,
		fallbackSchedule,
		store,
		svcPub,
		log,
		service.Config{
			CurrentSeason:  cfg.CurrentSeason,
			PreviousSeason: cfg.PreviousSeason,
			AnalysisTTL:    cfg.AnalysisTTL,
			LeagueTableTTL: cfg.LeagueTableTTL,
			PlayerIndexTTL: cfg.PlayerIndexTTL,
		},
	)

	// Off-peak cache warmer
	var warmer *scheduler.Orchestrator
	if cfg.EnableCacheWarmer {
		warmer = scheduler.New(svc, log)
		if err := warmer.Start(cfg.CacheWarmSchedule); err != nil {
			log.WithFields(logrus.Fields{
				"schedule": cfg.CacheWarmSchedule,
				"error":    err.Error(),
			}).Warn("Cache warmer disabled, bad schedule expression")
			warmer = nil
		}
	}

	restServer := rest.NewServer(cfg.RESTPort, svc)
	go func() {
		log.WithField("port", cfg.RESTPort).Info("REST API server listening")
		if err := restServer.Start(); err != nil {
			log.WithField("error", err.Error()).Error("REST server stopped")
		}
	}()

	wsServer := websocket.NewServer(pub)
	go func() {
		if err := wsServer.Start(cfg.WSPort); err != nil {
			log.WithField("error", err.Error()).Error("WebSocket server stopped")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Info("Shutting down gracefully")

	if warmer != nil {
		warmer.Stop()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := restServer.Shutdown(shutdownCtx); err != nil {
		log.WithField("error", err.Error()).Error("REST server shutdown failed")
	}
	if err := wsServer.Shutdown(shutdownCtx); err != nil {
		log.WithField("error", err.Error()).Error("WebSocket server shutdown failed")
	}

	log.Info("Stopped")
}
