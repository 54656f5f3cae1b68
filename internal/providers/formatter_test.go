package providers

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockCompletionService records the last request and serves a canned reply.
type mockCompletionService struct {
	lastParams openai.ChatCompletionNewParams
	reply      string
	err        error
	noChoices  bool
}

func (m *mockCompletionService) New(ctx context.Context, body openai.ChatCompletionNewParams, opts ...option.RequestOption) (*openai.ChatCompletion, error) {
	m.lastParams = body
	if m.err != nil {
		return nil, m.err
	}
	if m.noChoices {
		return &openai.ChatCompletion{}, nil
	}
	return &openai.ChatCompletion{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: m.reply}},
		},
	}, nil
}

func TestFormatScreen(t *testing.T) {
	mock := &mockCompletionService{reply: "🏢 Сбербанк — крупнейший банк России"}
	f := &Formatter{chat: mock, model: openai.ChatModelGPT4oMini}

	got, err := f.FormatScreen(context.Background(), "company", "ИНН: 7707083893\nСтатус: ACTIVE")
	require.NoError(t, err)
	assert.Equal(t, "🏢 Сбербанк — крупнейший банк России", got)

	require.Len(t, mock.lastParams.Messages, 2)
	user := mock.lastParams.Messages[1].OfUser.Content.OfString.Value
	assert.Contains(t, user, "ИНН: 7707083893", "the canonical screen text must reach the model")
}

func TestFormatScreenUnknownKindStillFormats(t *testing.T) {
	mock := &mockCompletionService{reply: "ok"}
	f := &Formatter{chat: mock, model: openai.ChatModelGPT4oMini}

	_, err := f.FormatScreen(context.Background(), "unknown_screen", "данные")
	require.NoError(t, err)
}

func TestFormatScreenError(t *testing.T) {
	mock := &mockCompletionService{err: errors.New("rate limited")}
	f := &Formatter{chat: mock, model: openai.ChatModelGPT4oMini}

	_, err := f.FormatScreen(context.Background(), "company", "данные")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "rate limited"))
}

func TestFormatScreenNoChoices(t *testing.T) {
	mock := &mockCompletionService{noChoices: true}
	f := &Formatter{chat: mock, model: openai.ChatModelGPT4oMini}

	_, err := f.FormatScreen(context.Background(), "company", "данные")
	assert.ErrorIs(t, err, ErrNoChoicesReturned)
}

func TestNewFormatterRequiresAPIKey(t *testing.T) {
	_, err := NewFormatter()
	assert.Error(t, err)

	f, err := NewFormatter(WithFormatterAPIKey("sk-test"))
	require.NoError(t, err)
	assert.NotNil(t, f)
}
