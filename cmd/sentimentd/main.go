package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/tsawler/sentiment"
	"github.com/tsawler/sentiment/internal/config"
	"github.com/tsawler/sentiment/internal/server"
)

func main() {
	var configFile string
	flag.StringVar(&configFile, "config", "", "Configuration file path (YAML)")
	flag.Parse()

	cfg, err := config.Load(configFile)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger := cfg.Log.NewLogger()

	analyzer, err := newAnalyzer(cfg.Lexicon)
	if err != nil {
		logger.Error("failed to load lexicon", "path", cfg.Lexicon.Path, "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal")
		cancel()
	}()

	srv := server.New(analyzer, cfg.Server, cfg.Demo, logger)
	if err := srv.Run(ctx); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

func newAnalyzer(cfg config.LexiconConfig) (*sentiment.Analyzer, error) {
	if cfg.Path == "" {
		return sentiment.NewAnalyzer(), nil
	}
	lex, err := sentiment.LoadLexicon(cfg.Path)
	if err != nil {
		return nil, err
	}
	return sentiment.NewAnalyzer(sentiment.WithLexicon(lex)), nil
}
