package telegram

import (
	"context"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/srMan-ANMS/English-dictation-with-gemini-api/internal/dictation"
	"github.com/srMan-ANMS/English-dictation-with-gemini-api/internal/score"
	"github.com/srMan-ANMS/English-dictation-with-gemini-api/internal/session"
)

const (
	fetchTimeout = 60 * time.Second
	scoreTimeout = 120 * time.Second
)

// Engines holds the configured scorer instances a chat can switch
// between with /engine.
type Engines struct {
	Gemini score.Engine
	OpenAI score.Engine
}

func (e Engines) byName(name string) score.Engine {
	switch name {
	case "gemini":
		return e.Gemini
	case "gpt", "openai":
		return e.OpenAI
	default:
		return nil
	}
}

// Router drives the per-chat dictation drill.
type Router struct {
	Bot        *tgbotapi.BotAPI
	Provider   dictation.TranscriptProvider
	EngManager *score.Manager
	Sessions   *session.Manager[int64]
	Engines    Engines
	Log        *zap.Logger
}

func (r *Router) HandleUpdate(upd tgbotapi.Update) {
	if upd.CallbackQuery != nil {
		r.handleCallback(*upd.CallbackQuery)
		return
	}
	if upd.Message == nil {
		return
	}
	cid := upd.Message.Chat.ID

	if upd.Message.IsCommand() {
		r.handleCommand(upd)
		return
	}

	text := strings.TrimSpace(upd.Message.Text)
	if text == "" {
		return
	}
	if looksLikeYouTubeURL(text) {
		r.startDrill(cid, text)
		return
	}
	r.submitDictation(cid, text)
}

func (r *Router) handleCommand(upd tgbotapi.Update) {
	cid := upd.Message.Chat.ID
	switch upd.Message.Command() {
	case "start":
		r.send(cid, "Paste a YouTube link and I'll turn its English captions into a dictation drill.\n"+
			"Then type each sentence as you hear it and I'll grade your attempt.\n"+
			"Commands: /engine, /restart, /health")
	case "health":
		r.send(cid, "✅ OK")
	case "restart":
		st := r.Sessions.Get(cid)
		if !st.Active() {
			r.send(cid, "No video loaded yet. Paste a YouTube link first.")
			return
		}
		for st.Current() > 0 {
			st.Navigate(session.Previous)
		}
		r.sendSentence(cid, st)
	case "engine":
		r.handleEngineCommand(cid, upd.Message.Text)
	default:
		r.send(cid, "Unknown command. Try /start.")
	}
}

// handleEngineCommand switches the scoring engine for this chat.
// Formats:
//
//	/engine
//	/engine gemini [model]
//	/engine gpt [model]
func (r *Router) handleEngineCommand(chatID int64, cmd string) {
	args := strings.Fields(strings.TrimSpace(strings.TrimPrefix(cmd, "/engine")))
	if len(args) == 0 {
		cur := r.EngManager.Get(chatID)
		r.send(chatID, "Current engine: "+cur.Name()+" ("+cur.GetModel()+")\nUsage:\n/engine gemini [model]\n/engine gpt [model]")
		return
	}
	name := strings.ToLower(args[0])
	eng := r.Engines.byName(name)
	if eng == nil {
		r.send(chatID, "Unknown engine. Available: gemini | gpt")
		return
	}
	if len(args) > 1 {
		if ms, ok := eng.(interface{ SetModel(string) }); ok {
			ms.SetModel(strings.TrimSpace(args[1]))
		}
	}
	r.EngManager.Set(chatID, eng)
	r.send(chatID, "✅ Engine: "+eng.Name()+" ("+eng.GetModel()+")")
}

// startDrill fetches the transcript and loads a fresh sentence set.
func (r *Router) startDrill(chatID int64, url string) {
	if !tryAcquire(chatID) {
		r.send(chatID, "Still working on the previous request, one moment.")
		return
	}
	defer release(chatID)

	r.send(chatID, "Fetching the transcript…")

	st := r.Sessions.Get(chatID)
	ctrl := dictation.NewController(r.Provider, r.EngManager.Get(chatID), st)

	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	n, err := ctrl.FetchAndLoad(ctx, url)
	if err != nil {
		r.Log.Warn("fetch failed", zap.Int64("chat_id", chatID), zap.Error(err))
		r.send(chatID, fetchErrorText(err))
		return
	}
	if n == 0 {
		r.send(chatID, "The transcript came back empty, so there is nothing to practice for this video.")
		return
	}
	r.send(chatID, plural(n, "Loaded %d sentence. Type what you hear!", "Loaded %d sentences. Type what you hear!"))
	r.sendSentence(chatID, st)
}

// submitDictation grades the text against the current sentence.
func (r *Router) submitDictation(chatID int64, text string) {
	st := r.Sessions.Get(chatID)
	if !st.Active() {
		r.send(chatID, "No video loaded yet. Paste a YouTube link to start practicing.")
		return
	}
	if !tryAcquire(chatID) {
		r.send(chatID, "Still scoring your previous attempt, one moment.")
		return
	}
	defer release(chatID)

	idx := st.Current()
	st.RecordInput(idx, text)

	ctrl := dictation.NewController(r.Provider, r.EngManager.Get(chatID), st)

	ctx, cancel := context.WithTimeout(context.Background(), scoreTimeout)
	defer cancel()
	ctrl.SubmitForScoring(ctx, idx, text)

	res := st.Result(idx)
	if res == nil {
		// Empty input never reaches the scorer.
		r.send(chatID, "Type the sentence you heard before submitting.")
		return
	}
	r.sendResult(chatID, st, idx, *res)
}

func (r *Router) handleCallback(cb tgbotapi.CallbackQuery) {
	cid := cb.Message.Chat.ID
	_, _ = r.Bot.Request(tgbotapi.NewCallback(cb.ID, "")) // ack

	st := r.Sessions.Get(cid)
	if !st.Active() {
		r.send(cid, "No video loaded yet. Paste a YouTube link first.")
		return
	}

	switch cb.Data {
	case "nav_prev":
		st.Navigate(session.Previous)
	case "nav_next":
		st.Navigate(session.Next)
	default:
		return
	}
	// drop the stale keyboard before re-rendering
	edit := tgbotapi.NewEditMessageReplyMarkup(cid, cb.Message.MessageID, tgbotapi.InlineKeyboardMarkup{InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{}})
	_, _ = r.Bot.Send(edit)
	r.sendSentence(cid, st)
}

func (r *Router) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := r.Bot.Send(msg); err != nil {
		r.Log.Warn("telegram send failed", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

func (r *Router) sendSentence(chatID int64, st *session.State) {
	msg := tgbotapi.NewMessage(chatID, formatSentence(st))
	if kb, ok := makeNavKeyboard(st); ok {
		msg.ReplyMarkup = kb
	}
	if _, err := r.Bot.Send(msg); err != nil {
		r.Log.Warn("telegram send failed", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

func (r *Router) sendResult(chatID int64, st *session.State, idx int, res score.Result) {
	msg := tgbotapi.NewMessage(chatID, formatResult(res))
	if idx < st.Len()-1 {
		msg.ReplyMarkup = makeNextKeyboard()
	}
	if _, err := r.Bot.Send(msg); err != nil {
		r.Log.Warn("telegram send failed", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

func looksLikeYouTubeURL(text string) bool {
	return strings.Contains(text, "youtube.com/") || strings.Contains(text, "youtu.be/")
}
