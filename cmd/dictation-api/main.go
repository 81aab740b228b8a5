package main

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/srMan-ANMS/English-dictation-with-gemini-api/internal/config"
	"github.com/srMan-ANMS/English-dictation-with-gemini-api/internal/handle"
	"github.com/srMan-ANMS/English-dictation-with-gemini-api/internal/httpserver"
	"github.com/srMan-ANMS/English-dictation-with-gemini-api/internal/score"
	"github.com/srMan-ANMS/English-dictation-with-gemini-api/internal/score/gemini"
	"github.com/srMan-ANMS/English-dictation-with-gemini-api/internal/score/gpt"
	"github.com/srMan-ANMS/English-dictation-with-gemini-api/internal/transcript"
	"github.com/srMan-ANMS/English-dictation-with-gemini-api/internal/youtube"
)

const transcriptTTL = 6 * time.Hour

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}
	if err := cfg.RequireScorer(); err != nil {
		logger.Fatal("config", zap.Error(err))
	}

	scorers, def := buildScorers(cfg)

	provider := transcript.NewCaching(
		youtube.NewClient(),
		transcript.NewMemory(transcriptTTL),
		logger,
	)

	h := handle.New(provider, scorers, def, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	h.Register(mux)

	addr := ":" + cfg.Port
	srv := httpserver.New(addr, mux, logger)
	logger.Info("dictation-api listening", zap.String("addr", addr), zap.String("default_engine", def))
	logger.Fatal("server stopped", zap.Error(srv.ListenAndServe()))
}

func buildScorers(cfg *config.Config) (map[string]score.Engine, string) {
	scorers := make(map[string]score.Engine)
	def := ""
	if cfg.OpenAIAPIKey != "" {
		scorers["gpt"] = gpt.New(cfg.OpenAIAPIKey, cfg.OpenAIModel)
		def = "gpt"
	}
	if cfg.GeminiAPIKey != "" {
		scorers["gemini"] = gemini.New(cfg.GeminiAPIKey, cfg.GeminiModel)
		def = "gemini"
	}
	return scorers, def
}
