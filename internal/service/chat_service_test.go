package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"praxis-chat-be/internal/dto"
	"praxis-chat-be/internal/model"
	"praxis-chat-be/internal/pkg/serverutils"
	"praxis-chat-be/pkg/llm"
	"praxis-chat-be/pkg/stream"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmbedder struct {
	vector []float32
	err    error
	calls  int
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	f.calls++
	return f.vector, f.err
}

type fakeChunkRepo struct {
	chunks []dto.RetrievedChunk
	err    error
	lastK  int
}

func (f *fakeChunkRepo) SearchSimilar(ctx context.Context, embedding []float32, k int) ([]dto.RetrievedChunk, error) {
	f.lastK = k
	return f.chunks, f.err
}

func (f *fakeChunkRepo) CreateBulk(ctx context.Context, chunks []*model.DocChunk) error {
	return nil
}

type fakeLLM struct {
	tokens []string
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	return strings.Join(f.tokens, ""), nil
}

func (f *fakeLLM) ChatStream(ctx context.Context, history []llm.Message, opts ...llm.Option) (<-chan string, <-chan error) {
	tokens := make(chan string)
	errs := make(chan error, 1)
	go func() {
		defer close(tokens)
		defer close(errs)
		for _, tok := range f.tokens {
			select {
			case tokens <- tok:
			case <-ctx.Done():
				return
			}
		}
	}()
	return tokens, errs
}

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

func newTestService(embedder *fakeEmbedder, repo *fakeChunkRepo, provider llm.Provider) IChatService {
	return NewChatService(embedder, repo, provider, 0.7, 12, nopLogger{})
}

func TestPrepareTurnRejectsEmptyQuestion(t *testing.T) {
	embedder := &fakeEmbedder{}
	svc := newTestService(embedder, &fakeChunkRepo{}, &fakeLLM{})

	for _, question := range []string{"", "   ", "\n\t "} {
		turn, err := svc.PrepareTurn(context.Background(), &dto.ChatRequest{Question: question})
		require.Error(t, err)
		assert.Nil(t, turn)

		appErr, ok := serverutils.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, serverutils.KindValidation, appErr.Kind)
	}

	// Rejected before any upstream call is made.
	assert.Equal(t, 0, embedder.calls)
}

func TestPrepareTurnDefaultsK(t *testing.T) {
	repo := &fakeChunkRepo{}
	svc := newTestService(&fakeEmbedder{vector: []float32{0.1}}, repo, &fakeLLM{})

	_, err := svc.PrepareTurn(context.Background(), &dto.ChatRequest{Question: "Wie bestelle ich ein Rezept?"})
	require.NoError(t, err)
	assert.Equal(t, 12, repo.lastK)

	_, err = svc.PrepareTurn(context.Background(), &dto.ChatRequest{Question: "q", K: 5})
	require.NoError(t, err)
	assert.Equal(t, 5, repo.lastK)
}

func TestPrepareTurnErrorKinds(t *testing.T) {
	t.Run("embedding failure", func(t *testing.T) {
		svc := newTestService(&fakeEmbedder{err: errors.New("boom")}, &fakeChunkRepo{}, &fakeLLM{})

		_, err := svc.PrepareTurn(context.Background(), &dto.ChatRequest{Question: "q"})
		appErr, ok := serverutils.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, serverutils.KindProvider, appErr.Kind)
	})

	t.Run("retrieval failure", func(t *testing.T) {
		svc := newTestService(&fakeEmbedder{vector: []float32{0.1}}, &fakeChunkRepo{err: errors.New("store down")}, &fakeLLM{})

		_, err := svc.PrepareTurn(context.Background(), &dto.ChatRequest{Question: "q"})
		appErr, ok := serverutils.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, serverutils.KindRetrieval, appErr.Kind)
	})
}

func TestPrepareTurnAssemblesSources(t *testing.T) {
	repo := &fakeChunkRepo{chunks: []dto.RetrievedChunk{
		{Content: "Rezepte können telefonisch bestellt werden.", Title: "Rezeptbestellung", Distance: 0.12},
		{Content: "Bestellte Rezepte liegen am Empfang bereit.", Title: "Rezeptbestellung", Distance: 0.19},
	}}
	svc := newTestService(&fakeEmbedder{vector: []float32{0.1}}, repo, &fakeLLM{})

	turn, err := svc.PrepareTurn(context.Background(), &dto.ChatRequest{Question: "Wie bestelle ich ein Rezept?"})
	require.NoError(t, err)

	assert.Equal(t, []string{"Rezeptbestellung", "Rezeptbestellung"}, turn.Sources)
	assert.Contains(t, turn.ContextText, "telefonisch")
}

// Zero retrieved chunks: the turn still streams sources (empty) and a model
// answer instead of failing.
func TestFullTurnWithEmptyRetrieval(t *testing.T) {
	svc := newTestService(
		&fakeEmbedder{vector: []float32{0.1}},
		&fakeChunkRepo{},
		&fakeLLM{tokens: []string{"Ich finde dazu keine Angabe in den Praxisunterlagen."}},
	)

	turn, err := svc.PrepareTurn(context.Background(), &dto.ChatRequest{Question: "Gibt es ein Solarium?"})
	require.NoError(t, err)

	var events []stream.Event
	svc.StreamAnswer(context.Background(), turn, func(ev stream.Event) error {
		events = append(events, ev)
		return nil
	})

	require.Len(t, events, 3)
	assert.Equal(t, stream.KindSources, events[0].Kind)
	assert.Empty(t, events[0].Sources)
	assert.NotNil(t, events[0].Sources)
	assert.Equal(t, stream.KindToken, events[1].Kind)
	assert.Equal(t, stream.KindDone, events[2].Kind)
}
