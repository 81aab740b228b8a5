package main

import (
	"context"
	"database/sql"
	"errors"
	"net"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"go.uber.org/zap"

	"github.com/srMan-ANMS/English-dictation-with-gemini-api/internal/config"
	"github.com/srMan-ANMS/English-dictation-with-gemini-api/internal/dictation"
	"github.com/srMan-ANMS/English-dictation-with-gemini-api/internal/score"
	"github.com/srMan-ANMS/English-dictation-with-gemini-api/internal/score/gemini"
	"github.com/srMan-ANMS/English-dictation-with-gemini-api/internal/score/gpt"
	"github.com/srMan-ANMS/English-dictation-with-gemini-api/internal/session"
	"github.com/srMan-ANMS/English-dictation-with-gemini-api/internal/telegram"
	"github.com/srMan-ANMS/English-dictation-with-gemini-api/internal/transcript"
	"github.com/srMan-ANMS/English-dictation-with-gemini-api/internal/youtube"
)

const (
	transcriptTTL    = 6 * time.Hour
	transcriptMaxAge = 30 * 24 * time.Hour
)

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
	if err := cfg.RequireBot(); err != nil {
		logger.Fatal("config", zap.Error(err))
	}

	provider := buildProvider(cfg, logger)

	// Scoring engines. Gemini is the default when configured.
	engines := telegram.Engines{}
	if cfg.GeminiAPIKey != "" {
		engines.Gemini = gemini.New(cfg.GeminiAPIKey, cfg.GeminiModel)
	}
	if cfg.OpenAIAPIKey != "" {
		engines.OpenAI = gpt.New(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	}
	def := engines.Gemini
	if def == nil {
		def = engines.OpenAI
	}
	manager := score.NewManager(def)

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		logger.Fatal("telegram bot", zap.Error(err))
	}
	bot.Debug = false

	r := &telegram.Router{
		Bot:        bot,
		Provider:   provider,
		EngManager: manager,
		Sessions:   session.NewManager[int64](),
		Engines:    engines,
		Log:        logger,
	}

	// Liveness endpoint on the default mux; ListenForWebhook registers
	// there too when webhook mode is on.
	http.HandleFunc("/healthz", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	addr := "0.0.0.0:" + cfg.Port
	if webhookURL := strings.TrimSpace(cfg.WebhookURL); webhookURL != "" {
		startWebhookMode(addr, bot, r, webhookURL, logger)
	} else {
		startPollingMode(addr, bot, r, logger)
	}
}

// buildProvider wraps the YouTube client with a transcript cache:
// Postgres when a DSN is configured, in-memory otherwise.
func buildProvider(cfg *config.Config, logger *zap.Logger) dictation.TranscriptProvider {
	client := youtube.NewClient()

	dsn := strings.TrimSpace(cfg.DatabaseURL)
	if dsn == "" {
		return transcript.NewCaching(client, transcript.NewMemory(transcriptTTL), logger)
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		logger.Fatal("sql.Open", zap.Error(err))
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(1 * time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		logger.Fatal("db.Ping", zap.Error(err))
	}

	repo := transcript.NewRepo(db, transcriptTTL)
	if err := repo.EnsureSchema(ctx); err != nil {
		logger.Fatal("transcript schema", zap.Error(err))
	}
	if n, err := repo.PurgeOlderThan(ctx, transcriptMaxAge); err == nil && n > 0 {
		logger.Info("purged stale transcripts", zap.Int64("rows", n))
	}
	logger.Info("transcript cache: postgres")
	return transcript.NewCaching(client, repo, logger)
}

// ---------------- Modes -----------------

func startWebhookMode(addr string, bot *tgbotapi.BotAPI, r *telegram.Router, baseURL string, logger *zap.Logger) {
	path := "/webhook/" + shortHash(bot.Token)
	public := strings.TrimRight(baseURL, "/") + path

	wh, err := tgbotapi.NewWebhook(public)
	if err != nil {
		logger.Fatal("webhook", zap.Error(err))
	}
	wh.DropPendingUpdates = true
	if _, err := bot.Request(wh); err != nil {
		logger.Fatal("webhook register", zap.Error(err))
	}

	updates := bot.ListenForWebhook(path)

	go func() {
		for upd := range updates {
			r.HandleUpdate(upd)
		}
		logger.Warn("webhook updates channel closed")
	}()

	logger.Info("webhook listening", zap.String("addr", addr), zap.String("path", path))
	if err := http.ListenAndServe(addr, nil); err != nil { // DefaultServeMux
		logger.Fatal("http server", zap.Error(err))
	}
}

func startPollingMode(addr string, bot *tgbotapi.BotAPI, r *telegram.Router, logger *zap.Logger) {
	go func() {
		logger.Info("health server listening", zap.String("addr", addr))
		if err := http.ListenAndServe(addr, nil); err != nil { // DefaultServeMux
			logger.Fatal("http server", zap.Error(err))
		}
	}()

	runPolling(context.Background(), bot, logger, r.HandleUpdate)
}

// ---------------- Polling loop -----------------

var reRetryAfter = regexp.MustCompile(`(?i)retry after\s+(\d+)`)

func retryDelayFromError(err error) time.Duration {
	if err == nil {
		return 0
	}
	s := strings.ToLower(err.Error())
	if strings.Contains(s, "too many requests") { // HTTP 429 from Telegram
		if m := reRetryAfter.FindStringSubmatch(s); len(m) == 2 {
			if n, _ := strconv.Atoi(m[1]); n > 0 {
				return time.Duration(n) * time.Second
			}
		}
		return 3 * time.Second
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return 2 * time.Second
	}
	return 1 * time.Second
}

func runPolling(ctx context.Context, bot *tgbotapi.BotAPI, logger *zap.Logger, handle func(tgbotapi.Update)) {
	offset := 0
	baseDelay := 1 * time.Second
	maxDelay := 15 * time.Second

	for {
		select {
		case <-ctx.Done():
			logger.Info("polling: context cancelled")
			return
		default:
		}

		u := tgbotapi.NewUpdate(offset)
		u.Timeout = 30 // long polling timeout (sec)

		updates, err := bot.GetUpdates(u)
		if err != nil {
			d := retryDelayFromError(err)
			if d < baseDelay {
				d = baseDelay
			}
			if d > maxDelay {
				d = maxDelay
			}
			logger.Warn("polling error", zap.Error(err), zap.Duration("retry_in", d))
			time.Sleep(d)
			continue
		}

		for _, upd := range updates {
			if upd.UpdateID >= offset {
				offset = upd.UpdateID + 1
			}
			handle(upd)
		}

		if len(updates) == 0 {
			time.Sleep(200 * time.Millisecond)
		}
	}
}

// ---------------- Helpers -----------------

// shortHash derives a stable non-crypto path segment from the token.
func shortHash(s string) string {
	h := uint64(1469598103934665603)
	const prime = 1099511628211
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= prime
	}
	const hexdigits = "0123456789abcdef"
	out := make([]byte, 16)
	for i := 15; i >= 0; i-- {
		out[i] = hexdigits[h&0xF]
		h >>= 4
	}
	return string(out)
}
