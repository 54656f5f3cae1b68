package flow

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"companybot/internal/models"
)

// mockLookup counts registry calls and serves canned answers.
type mockLookup struct {
	innCalls  int
	ogrnCalls int
	record    *models.CompanyRecord
	err       error
}

func (m *mockLookup) FindByINN(ctx context.Context, inn string) (*models.CompanyRecord, error) {
	m.innCalls++
	return m.record, m.err
}

func (m *mockLookup) FindByOGRN(ctx context.Context, ogrn string) (*models.CompanyRecord, error) {
	m.ogrnCalls++
	return m.record, m.err
}

func testRecord() *models.CompanyRecord {
	rec := &models.CompanyRecord{
		INN:  "7707083893",
		OGRN: "1027700132195",
		Name: models.CompanyName{Full: "ПАО СБЕРБАНК", Short: "Сбербанк"},
	}
	rec.Normalize()
	return rec
}

func TestCaptureBeginPrompts(t *testing.T) {
	f := NewCaptureFlow(NewMemoryContextStore(), &mockLookup{})

	reply := f.Begin(1, StateAwaitingINN)
	assert.Contains(t, reply.Text, "ИНН")

	reply = f.Begin(1, StateAwaitingOGRN)
	assert.Contains(t, reply.Text, "ОГРН")
}

func TestCaptureIgnoresTextWhenIdle(t *testing.T) {
	f := NewCaptureFlow(NewMemoryContextStore(), &mockLookup{})

	_, handled := f.HandleText(context.Background(), 1, "7707083893")
	assert.False(t, handled)
}

func TestCaptureValidINNResolves(t *testing.T) {
	contexts := NewMemoryContextStore()
	lookup := &mockLookup{record: testRecord()}
	f := NewCaptureFlow(contexts, lookup)

	f.Begin(1, StateAwaitingINN)
	reply, handled := f.HandleText(context.Background(), 1, " 7707083893 ")
	require.True(t, handled)

	assert.Equal(t, 1, lookup.innCalls)
	assert.Contains(t, reply.Text, "ПАО СБЕРБАНК")
	assert.NotEmpty(t, reply.Keyboard)

	c := contexts.Get(1)
	assert.Equal(t, StateIdle, c.State)
	require.NotNil(t, c.Company)
	assert.Equal(t, "7707083893", c.INN)
}

func TestCaptureInvalidInputSkipsLookup(t *testing.T) {
	contexts := NewMemoryContextStore()
	lookup := &mockLookup{record: testRecord()}
	f := NewCaptureFlow(contexts, lookup)

	f.Begin(1, StateAwaitingOGRN)
	reply, handled := f.HandleText(context.Background(), 1, "12345")
	require.True(t, handled)

	assert.Zero(t, lookup.ogrnCalls, "invalid input must never reach the registry")
	assert.Contains(t, reply.Text, "ОГРН")
	assert.Equal(t, StateAwaitingOGRN, contexts.Get(1).State)
}

func TestCaptureNotFoundKeepsAwaiting(t *testing.T) {
	contexts := NewMemoryContextStore()
	lookup := &mockLookup{record: nil}
	f := NewCaptureFlow(contexts, lookup)

	f.Begin(1, StateAwaitingINN)
	reply, handled := f.HandleText(context.Background(), 1, "7707083893")
	require.True(t, handled)

	assert.Contains(t, reply.Text, "не найдена")
	assert.Equal(t, StateAwaitingINN, contexts.Get(1).State)

	// The user can retry indefinitely while the state holds.
	_, handled = f.HandleText(context.Background(), 1, "7707083893")
	require.True(t, handled)
	assert.Equal(t, 2, lookup.innCalls)
}

func TestCaptureLookupFailureKeepsAwaiting(t *testing.T) {
	contexts := NewMemoryContextStore()
	lookup := &mockLookup{err: errors.New("upstream down")}
	f := NewCaptureFlow(contexts, lookup)

	f.Begin(1, StateAwaitingOGRN)
	reply, handled := f.HandleText(context.Background(), 1, "1027700132195")
	require.True(t, handled)

	assert.Contains(t, reply.Text, "временно недоступен")
	assert.Equal(t, StateAwaitingOGRN, contexts.Get(1).State)
}

func TestCaptureCancel(t *testing.T) {
	contexts := NewMemoryContextStore()
	f := NewCaptureFlow(contexts, &mockLookup{})

	for _, state := range []State{StateAwaitingINN, StateAwaitingOGRN} {
		f.Begin(1, state)
		reply := f.Cancel(1)
		assert.Contains(t, reply.Text, "отменена")
		assert.NotEmpty(t, reply.Keyboard)
		assert.Equal(t, StateIdle, contexts.Get(1).State)
	}
}

func TestCaptureCancelKeepsResolvedCompany(t *testing.T) {
	contexts := NewMemoryContextStore()
	f := NewCaptureFlow(contexts, &mockLookup{record: testRecord()})

	f.Begin(1, StateAwaitingINN)
	_, handled := f.HandleText(context.Background(), 1, "7707083893")
	require.True(t, handled)

	f.Begin(1, StateAwaitingOGRN)
	f.Cancel(1)

	c := contexts.Get(1)
	require.NotNil(t, c.Company, "cancel must not discard the resolved company")
	assert.Equal(t, "7707083893", c.Company.INN)
}

func TestContextStoreDefaults(t *testing.T) {
	contexts := NewMemoryContextStore()

	c := contexts.Get(42)
	assert.Equal(t, StateIdle, c.State)
	assert.Nil(t, c.Company)

	c.State = StateAwaitingINN
	contexts.Put(42, c)
	assert.Equal(t, StateAwaitingINN, contexts.Get(42).State)

	contexts.Clear(42)
	assert.Equal(t, StateIdle, contexts.Get(42).State)
}

func TestStatesAreDistinct(t *testing.T) {
	states := []State{StateIdle, StateAwaitingINN, StateAwaitingOGRN}
	seen := map[State]bool{}
	for _, s := range states {
		assert.False(t, seen[s])
		seen[s] = true
	}
	assert.False(t, strings.EqualFold(string(StateAwaitingINN), string(StateAwaitingOGRN)))
}
