package observability

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// EventType defines the category of the log event.
type EventType string

const (
	EventTypeDecision    EventType = "decision"
	EventTypeToolCall    EventType = "tool_call"
	EventTypeToolResult  EventType = "tool_result"
	EventTypePolicyCheck EventType = "policy_check"
	EventTypeCost        EventType = "cost"
	EventTypeLLM         EventType = "llm"
)

// Setup configures the global zerolog logger. Human-readable output is used
// when w is a terminal, JSON lines otherwise.
func Setup(w *os.File, level string) {
	SetLevel(level)

	var out io.Writer = w
	if IsTerminal(w) {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	log.Logger = zerolog.New(out).With().Timestamp().Logger()
}

// SetLevel sets the global log level, falling back to info for unknown names.
func SetLevel(level string) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
}

// Logger emits structured agent events. LLM exchanges are additionally
// appended to a rotating JSONL file.
type Logger struct {
	zl         zerolog.Logger
	llmLogPath string
	maxSize    int64

	mu sync.Mutex
}

// NewLogger returns a Logger writing events through the global logger and
// LLM exchanges into dir/llm.jsonl. An empty dir disables the file.
func NewLogger(dir string) *Logger {
	l := &Logger{
		zl:      log.Logger,
		maxSize: 10 * 1024 * 1024, // 10MB
	}
	if dir != "" {
		l.llmLogPath = filepath.Join(dir, "llm.jsonl")
	}
	return l
}

// WithWriter redirects event output, mainly for tests.
func (l *Logger) WithWriter(w io.Writer) *Logger {
	return &Logger{
		zl:         zerolog.New(w).With().Timestamp().Logger(),
		llmLogPath: l.llmLogPath,
		maxSize:    l.maxSize,
	}
}

func (l *Logger) event(t EventType, chatID, requestID string) *zerolog.Event {
	e := l.zl.Info().Str("type", string(t))
	if chatID != "" {
		e = e.Str("chat_id", chatID)
	}
	if requestID != "" {
		e = e.Str("request_id", requestID)
	}
	return e
}

func (l *Logger) LogDecision(chatID, requestID, tool, input string) {
	l.event(EventTypeDecision, chatID, requestID).
		Str("tool_choice", tool).
		Str("tool_input", input).
		Msg("model decided")
}

func (l *Logger) LogToolCall(chatID, requestID, tool, input string) {
	l.event(EventTypeToolCall, chatID, requestID).
		Str("tool", tool).
		Str("input", input).
		Msg("executing tool")
}

func (l *Logger) LogToolResult(chatID, requestID, tool, output string, err error) {
	e := l.event(EventTypeToolResult, chatID, requestID).Str("tool", tool)
	if err != nil {
		e.Err(err).Msg("tool failed")
		return
	}
	e.Int("bytes", len(output)).Msg("tool returned")
}

func (l *Logger) LogPolicy(chatID, requestID, tool, effect, reason string) {
	l.event(EventTypePolicyCheck, chatID, requestID).
		Str("tool", tool).
		Str("effect", effect).
		Str("reason", reason).
		Msg("policy evaluated")
}

func (l *Logger) LogCost(chatID, requestID string, promptTokens, completionTokens int, model string) {
	l.event(EventTypeCost, chatID, requestID).
		Int("prompt_tokens", promptTokens).
		Int("completion_tokens", completionTokens).
		Int("total_tokens", promptTokens+completionTokens).
		Str("model", model).
		Msg("token usage")
}

// LogLLM records a raw model exchange at debug level and in the LLM log file.
func (l *Logger) LogLLM(chatID, requestID, systemPrompt, prompt, response string) {
	l.zl.Debug().
		Str("type", string(EventTypeLLM)).
		Str("chat_id", chatID).
		Str("request_id", requestID).
		Str("response", response).
		Msg("model replied")

	if l.llmLogPath == "" {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := l.openLLMLog()
	if err != nil {
		l.zl.Warn().Err(err).Str("path", l.llmLogPath).Msg("failed to open llm log")
		return
	}
	defer f.Close()

	fl := zerolog.New(f).With().Timestamp().Logger()
	fl.Log().
		Str("type", string(EventTypeLLM)).
		Str("chat_id", chatID).
		Str("request_id", requestID).
		Str("system", systemPrompt).
		Str("prompt", prompt).
		Str("response", response).
		Send()
}

func (l *Logger) openLLMLog() (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(l.llmLogPath), 0755); err != nil {
		return nil, err
	}

	// Simple rotation: keep one .old file
	if info, err := os.Stat(l.llmLogPath); err == nil && info.Size() > l.maxSize {
		oldPath := l.llmLogPath + ".old"
		_ = os.Remove(oldPath)
		_ = os.Rename(l.llmLogPath, oldPath)
	}

	return os.OpenFile(l.llmLogPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
}
