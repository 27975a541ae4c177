// Command scoringd runs the scam-risk scoring service: the rule and
// blacklist layers, SQLite-backed scan history, and the HTTP + WebSocket API
// the CLI talks to.
// Usage: scoringd [--config config.yaml] [--listen :8000]
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/ayeshahabib/scamshield/internal/app"
	"github.com/ayeshahabib/scamshield/internal/logging"
	"github.com/ayeshahabib/scamshield/internal/server"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to a YAML config file")
		listenAddr = flag.String("listen", "", "listen address (overrides config)")
		dbPath     = flag.String("db", "", "SQLite database path (overrides config)")
	)
	flag.Parse()

	logger := logging.NewStdoutLogger("scoringd")

	cfg, err := app.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}
	if *listenAddr != "" {
		cfg.Server.ListenAddr = *listenAddr
	}
	if *dbPath != "" {
		cfg.Server.DBPath = *dbPath
	}

	srvCfg := cfg.HTTPServerConfig()
	srvCfg.Logger = logger

	srv, err := server.NewServer(srvCfg)
	if err != nil {
		log.Fatalf("Server error: %v", err)
	}
	defer srv.Close()

	seedCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := srv.SeedBlacklist(seedCtx); err != nil {
		cancel()
		log.Fatalf("Blacklist seed error: %v", err)
	}
	cancel()

	httpSrv := srv.HTTPServer()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
	}()

	logger.Info("scoring service listening",
		logging.Field{Key: "addr", Value: srvCfg.ListenAddr},
		logging.Field{Key: "db", Value: srvCfg.DBPath})

	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Server error: %v", err)
	}
}
