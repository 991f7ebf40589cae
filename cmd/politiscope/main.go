package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/Afolstee/politiscope/internal/logging"
	"github.com/Afolstee/politiscope/internal/server"
	"github.com/Afolstee/politiscope/pkg/discourse/config"
	"github.com/Afolstee/politiscope/pkg/discourse/store"
	"github.com/Afolstee/politiscope/pkg/discourse/store/memstore"
	"github.com/Afolstee/politiscope/pkg/discourse/store/sqlite"
)

func main() {
	configPath := flag.String("config", "", "Path to config YAML (optional)")
	listen := flag.String("listen", "", "Override listen address")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logrus.Fatalf("load config: %v", err)
	}
	if *listen != "" {
		cfg.ListenAddr = *listen
	}
	logging.Init(cfg.Logging)

	st, err := openStore(context.Background(), cfg)
	if err != nil {
		logrus.Fatalf("open store: %v", err)
	}
	defer st.Close()

	if cfg.LLM.APIKey == "" {
		logrus.Warnf("no API key configured; clients must supply one (set %s or llm.api_key)", config.APIKeyEnv)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.New(cfg, st).Run(ctx); err != nil {
		logrus.Fatalf("server: %v", err)
	}
}

// openStore picks sqlite when a path is configured, otherwise an
// in-memory store for throwaway runs.
func openStore(ctx context.Context, cfg config.Config) (store.Store, error) {
	if cfg.DBPath == "" {
		logrus.Info("no db_path configured, session records are in-memory only")
		return memstore.New(), nil
	}
	return sqlite.OpenSQLite(ctx, cfg.DBPath)
}
