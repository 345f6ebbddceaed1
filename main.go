package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/lci-upiiz/adivina-planeta/internal/catalog"
	"github.com/lci-upiiz/adivina-planeta/internal/config"
	"github.com/lci-upiiz/adivina-planeta/internal/explain"
	"github.com/lci-upiiz/adivina-planeta/internal/game"
	"github.com/lci-upiiz/adivina-planeta/internal/httpserver"
	"github.com/lci-upiiz/adivina-planeta/internal/store"
)

const version = "v1.0.0"

func main() {
	var (
		showVersion = flag.Bool("version", false, "Show version information")
		portFlag    = flag.String("port", "", "Port to listen on (overrides PORT env var)")
	)
	flag.Parse()
	if *showVersion {
		fmt.Printf("adivina-planeta %s\n", version)
		return
	}

	_ = godotenv.Load()
	cfg := config.FromEnv()
	if *portFlag != "" {
		cfg.Port = *portFlag
	}
	setupLogging(cfg)
	if cfg.Production && cfg.SessionSecret == "dev_secret_change_me" {
		log.Warn().Msg("SESSION_SECRET is the development default")
	}

	if err := catalog.Init(); err != nil {
		log.Fatal().Err(err).Msg("failed to load planet catalog")
	}
	dialog, err := explain.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load explanation copy")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sessions := store.NewMemoryStore()
	opts := httpserver.Options{
		Store:        sessions,
		Generator:    game.NewGenerator(catalog.Default(), game.DefaultSource()),
		Explain:      dialog,
		Secret:       cfg.SessionSecret,
		TTL:          cfg.SessionTTL,
		CookieName:   cfg.CookieName,
		Secure:       cfg.Production,
		ClientOrigin: cfg.ClientOrigin,
	}

	if cfg.DBPath != "" {
		j, closeDB, err := openJournal(cfg.DBPath)
		if err != nil {
			log.Fatal().Err(err).Str("db", cfg.DBPath).Msg("failed to open round journal")
		}
		defer closeDB()
		opts.Journal = j
	} else {
		log.Info().Msg("round journal disabled")
	}

	go pruneIdle(ctx, sessions, cfg.SessionTTL)

	srv := httpserver.New(opts)
	log.Info().Str("port", cfg.Port).Int("planets", catalog.Default().Len()).Msg("starting adivina-planeta")
	if err := srv.Start(ctx, ":"+cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
	log.Info().Msg("server stopped")
}

func setupLogging(cfg config.Config) {
	zerolog.TimeFieldFormat = time.RFC3339
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if cfg.LogFormat == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}
}

// pruneIdle drops sessions that have been idle longer than ttl; their
// tokens would have expired by then anyway.
func pruneIdle(ctx context.Context, st store.Store, ttl time.Duration) {
	t := time.NewTicker(10 * time.Minute)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			if n := st.Prune(ctx, now.Add(-ttl)); n > 0 {
				log.Info().Int("pruned", n).Int("live", st.Len()).Msg("idle sessions pruned")
			}
		}
	}
}
