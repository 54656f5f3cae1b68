package providers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// ErrNoChoicesReturned indicates the completion API returned no choices.
var ErrNoChoicesReturned = errors.New("no choices returned")

// formatterSystemPrompt pins the formatter to the canonical data it is
// given. The formatter may rephrase, it must never invent facts.
const formatterSystemPrompt = "Ты форматируешь карточки российских компаний для мобильного мессенджера. " +
	"Используй только переданные данные, ничего не придумывай. " +
	"Если поле содержит 'нет данных' — выведи его как есть."

// screenPrompts maps a screen kind to its formatting instruction.
var screenPrompts = map[string]string{
	"company":           "Создай краткий отчёт о компании.",
	"finances":          "Покажи финансовую информацию компании.",
	"requisites":        "Покажи реквизиты компании (ИНН, ОГРН, КПП).",
	"address":           "Покажи адресную информацию компании.",
	"directors":         "Покажи руководителей компании.",
	"founders":          "Покажи учредителей компании.",
	"addresses_history": "Покажи историю адресов компании.",
	"okved":             "Покажи виды деятельности (ОКВЭД) компании.",
}

// completionService is the minimal completion surface the formatter
// needs, narrow enough to mock in tests.
type completionService interface {
	New(ctx context.Context, body openai.ChatCompletionNewParams, opts ...option.RequestOption) (*openai.ChatCompletion, error)
}

// Formatter rewrites canonical screen text with a chat completion.
// It is a cosmetic layer: callers must fall back to the pure renderer
// output whenever FormatScreen fails.
type Formatter struct {
	chat  completionService
	model openai.ChatModel
}

// FormatterOpts holds configuration options for the Formatter.
type FormatterOpts struct {
	APIKey string
	Model  openai.ChatModel
}

// FormatterOption configures the Formatter.
type FormatterOption func(*FormatterOpts)

// WithFormatterAPIKey sets the completion API key.
func WithFormatterAPIKey(key string) FormatterOption {
	return func(o *FormatterOpts) { o.APIKey = key }
}

// WithFormatterModel overrides the completion model.
func WithFormatterModel(model openai.ChatModel) FormatterOption {
	return func(o *FormatterOpts) { o.Model = model }
}

// NewFormatter creates a formatter adapter. The API key is mandatory —
// wiring decides whether to construct a formatter at all.
func NewFormatter(opts ...FormatterOption) (*Formatter, error) {
	cfg := FormatterOpts{Model: openai.ChatModelGPT4oMini}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("formatter API key not set")
	}
	client := openai.NewClient(option.WithAPIKey(cfg.APIKey))
	return &Formatter{chat: &client.Chat.Completions, model: cfg.Model}, nil
}

// FormatScreen rewrites screenText for the given screen kind. The
// canonical text travels in the user prompt so the model only ever
// sees normalized, sentinel-bearing data.
func (f *Formatter) FormatScreen(ctx context.Context, screen, screenText string) (string, error) {
	instruction, ok := screenPrompts[screen]
	if !ok {
		instruction = "Покажи информацию о компании."
	}

	resp, err := f.chat.New(ctx, openai.ChatCompletionNewParams{
		Model: f.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(formatterSystemPrompt),
			openai.UserMessage(instruction + "\n\nДанные:\n" + screenText),
		},
	})
	if err != nil {
		slog.Error("Formatter completion failed", "screen", screen, "error", err)
		return "", fmt.Errorf("formatter completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrNoChoicesReturned
	}
	slog.Debug("Formatter completion succeeded", "screen", screen)
	return resp.Choices[0].Message.Content, nil
}
