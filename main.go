package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/lab1702/duel-arena/config"
	"github.com/lab1702/duel-arena/game"
	"github.com/lab1702/duel-arena/server"
	"github.com/rs/zerolog"
)

func main() {
	configFile := flag.String("config", "", "Config file (json, yaml or toml)")
	port := flag.Int("port", 0, "Server port (overrides config)")
	simulate := flag.String("simulate", "", "Run one headless round at this difficulty and print the summary")
	seed := flag.Uint64("seed", 0, "Random seed for -simulate (0 = game.seed, then the clock)")
	flag.Parse()

	if err := config.Load(*configFile); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger := newLogger(config.GetString("log.level"), config.GetBool("log.pretty"))

	cfg, err := config.ServerConfig()
	if err != nil {
		logger.Fatal().Err(err).Msg("Invalid configuration")
	}

	if *simulate != "" {
		if *seed == 0 {
			*seed = cfg.Seed
		}
		if err := runSimulation(*simulate, *seed, cfg, logger); err != nil {
			logger.Fatal().Err(err).Msg("Simulation failed")
		}
		return
	}

	if *port == 0 {
		*port = config.GetInt("server.port")
	}
	serve(*port, cfg, logger)
}

// newLogger builds the root logger from the log.* settings
func newLogger(level string, pretty bool) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	zerolog.TimestampFunc = func() time.Time {
		return time.Now().UTC()
	}

	if pretty {
		return zerolog.New(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		}).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stdout).With().Timestamp().Logger()
}

func serve(port int, cfg server.Config, logger zerolog.Logger) {
	logger.Info().Int("port", port).Str("codec", cfg.Codec.Name()).Msg("Starting duel server")

	gameServer, err := server.NewServer(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Creating server")
	}

	hubCtx, stopHub := context.WithCancel(context.Background())
	go gameServer.Run(hubCtx)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", gameServer.HandleWebSocket)
	mux.HandleFunc("/api/stats", gameServer.HandleStats)
	mux.HandleFunc("/health", gameServer.HandleHealth)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigChan
	logger.Info().Str("signal", sig.String()).Msg("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Stop sessions before the listener so clients see a close frame
	stopHub()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("Server shutdown error")
	}
	logger.Info().Msg("Server stopped")
}

// summaryPrinter prints the round result of a headless run
type summaryPrinter struct {
	done    bool
	summary server.Summary
}

func (p *summaryPrinter) OnFrame(int64) {}

func (p *summaryPrinter) OnRoundEnd(s server.Summary) {
	p.done = true
	p.summary = s
}

// runSimulation plays one round against an idle player on logical time
func runSimulation(name string, seed uint64, cfg server.Config, logger zerolog.Logger) error {
	tier, err := game.ParseTier(name)
	if err != nil {
		return err
	}

	out := &summaryPrinter{}
	s := server.NewSession(
		server.WithRand(game.NewRand(seed)),
		server.WithProfiles(cfg.Profiles),
		server.WithRules(cfg.Rules),
		server.WithLogger(logger),
		server.WithListener(out),
	)
	if err := s.StartRound(tier); err != nil {
		return err
	}

	limit := time.Duration(cfg.Rules.RoundSeconds+1) * time.Second
	for elapsed := time.Duration(0); !out.done && elapsed < limit; elapsed += time.Second {
		s.Advance(time.Second)
	}
	if !out.done {
		return fmt.Errorf("round did not end within %v", limit)
	}

	sum := out.summary
	fmt.Printf("%s: %s by %s, %d-%d in %s\n",
		sum.Tier, sum.Outcome, sum.Reason, sum.PlayerKills, sum.BotKills,
		server.FormatClock(int(sum.DurationMs/1000)))
	return nil
}
