// Package app wires adapters into usecases and owns process lifecycle.
// The application context (corpus index, responder, transcript store) is
// built once here and passed down explicitly - no ambient globals.
package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/datadecoders/shopbot-go/internal/adapters/corpus"
	"github.com/datadecoders/shopbot-go/internal/adapters/embedding"
	"github.com/datadecoders/shopbot-go/internal/adapters/transcript"
	"github.com/datadecoders/shopbot-go/internal/config"
	"github.com/datadecoders/shopbot-go/internal/domain/ports"
	"github.com/datadecoders/shopbot-go/internal/domain/usecases"
	"github.com/datadecoders/shopbot-go/internal/infrastructure/httpserver"
)

// App holds the long-lived application state.
type App struct {
	cfg         *config.Config
	log         zerolog.Logger
	loader      ports.CorpusLoader
	watcher     ports.CorpusWatcher
	transcripts ports.TranscriptStore

	Index     *usecases.IndexUseCase
	Responder *usecases.RespondUseCase
}

// New builds the application. A corpus or embedding failure is not fatal:
// the bot starts in rule-only mode and the semantic stage serves its
// degraded notice instead.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*App, error) {
	transcripts, err := transcript.NewSQLiteStore(cfg.Transcript.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening transcript store: %w", err)
	}

	embedder := newEmbedder(cfg.Embedding)
	index := usecases.NewIndexUseCase(embedder, log)
	responder := usecases.NewRespondUseCase(index, cfg.Semantic.Threshold, log)

	a := &App{
		cfg:         cfg,
		log:         log,
		loader:      corpus.NewCSVLoader(),
		transcripts: transcripts,
		Index:       index,
		Responder:   responder,
	}

	if err := a.loadCorpus(ctx); err != nil {
		log.Error().Err(err).Str("path", cfg.Corpus.Path).
			Msg("corpus load failed, starting in rule-only mode")
	}

	return a, nil
}

func newEmbedder(cfg config.EmbeddingConfig) ports.EmbeddingService {
	if cfg.Provider == "openai" {
		return embedding.NewOpenAIAdapter(cfg.OpenAIAPIKey, cfg.Model)
	}
	return embedding.NewOllamaAdapter(cfg.OllamaURL, cfg.Model)
}

// loadCorpus reads the corpus file and rebuilds the embedding index.
func (a *App) loadCorpus(ctx context.Context) error {
	c, err := a.loader.Load(ctx, a.cfg.Corpus.Path)
	if err != nil {
		return err
	}

	a.Responder.LearnCorpus(c)
	return a.Index.Build(ctx, c)
}

// Run starts the corpus watcher and the HTTP server, blocking until ctx
// is cancelled.
func (a *App) Run(ctx context.Context) error {
	if a.cfg.Corpus.Watch {
		if err := a.startWatcher(ctx); err != nil {
			// Hot reload is a convenience; its absence is not fatal.
			a.log.Warn().Err(err).Msg("corpus watcher unavailable")
		}
	}

	server := httpserver.NewServer(
		a.Responder,
		a.Index,
		a.transcripts,
		a.cfg.Server,
		a.cfg.Transcript.HistoryLimit,
		a.log,
	)
	return server.Start(ctx)
}

// startWatcher rebuilds the index whenever the corpus file changes.
// A failed rebuild keeps the previous index in service.
func (a *App) startWatcher(ctx context.Context) error {
	w, err := corpus.NewFSWatcher()
	if err != nil {
		return err
	}
	a.watcher = w

	events, err := w.Watch(ctx, a.cfg.Corpus.Path)
	if err != nil {
		w.Stop()
		a.watcher = nil
		return err
	}

	go func() {
		for range events {
			a.log.Info().Str("path", a.cfg.Corpus.Path).Msg("corpus changed, reloading")
			if err := a.loadCorpus(ctx); err != nil {
				a.log.Error().Err(err).Msg("corpus reload failed, keeping previous index")
			}
		}
	}()
	return nil
}

// Close releases the application's resources.
func (a *App) Close() {
	if a.watcher != nil {
		a.watcher.Stop()
	}
	if err := a.transcripts.Close(); err != nil {
		a.log.Warn().Err(err).Msg("closing transcript store failed")
	}
}
