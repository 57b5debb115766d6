package rag

import (
	"context"
	"errors"
	"strings"
	"testing"

	"praxis-chat-be/pkg/llm"
	"praxis-chat-be/pkg/stream"
)

type fakeLLM struct {
	tokens []string
	err    error
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	return strings.Join(f.tokens, ""), f.err
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
		if f.err != nil {
			errs <- f.err
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

func collect(t *testing.T, provider llm.Provider, turn *PreparedTurn) []stream.Event {
	t.Helper()
	var events []stream.Event
	s := NewStreamer(provider, 0.7, nopLogger{})
	s.Stream(context.Background(), turn, func(ev stream.Event) error {
		events = append(events, ev)
		return nil
	})
	return events
}

func TestStreamEventSequence(t *testing.T) {
	provider := &fakeLLM{tokens: []string{"Das ", "Rezept ", "bestellen."}}
	turn := &PreparedTurn{
		Question:    "Wie bestelle ich ein Rezept?",
		ContextText: "• Rezepte telefonisch bestellen",
		Sources:     []string{"Rezeptbestellung", "Rezeptbestellung"},
	}

	events := collect(t, provider, turn)

	// Exactly one sources event first, exactly one terminal event last.
	if events[0].Kind != stream.KindSources {
		t.Fatalf("first event = %v, want sources", events[0].Kind)
	}
	if last := events[len(events)-1]; last.Kind != stream.KindDone {
		t.Fatalf("last event = %v, want done", last.Kind)
	}
	for _, ev := range events[1 : len(events)-1] {
		if ev.Kind != stream.KindToken {
			t.Errorf("middle event = %v, want token", ev.Kind)
		}
	}

	// Token payloads concatenated in emission order are the answer text.
	var answer strings.Builder
	for _, ev := range events {
		answer.WriteString(ev.Token)
	}
	if answer.String() != "Das Rezept bestellen." {
		t.Errorf("answer = %q", answer.String())
	}
}

func TestStreamModelFailure(t *testing.T) {
	provider := &fakeLLM{tokens: []string{"partial "}, err: errors.New("upstream hiccup")}

	events := collect(t, provider, &PreparedTurn{Question: "q", Sources: []string{}})

	last := events[len(events)-1]
	if last.Kind != stream.KindError {
		t.Fatalf("last event = %v, want error", last.Kind)
	}
	if last.Err != StreamErrorMessage {
		t.Errorf("error payload = %q, want %q", last.Err, StreamErrorMessage)
	}
	// The partial token was still emitted before the terminal error.
	if events[1].Kind != stream.KindToken || events[1].Token != "partial " {
		t.Errorf("events[1] = %+v, want partial token", events[1])
	}
	for _, ev := range events[:len(events)-1] {
		if ev.Terminal() {
			t.Error("terminal event before the last one")
		}
	}
}

// Empty retrieval still emits a sources event with an empty list and asks
// the model for a completion; no canned short-circuit.
func TestStreamEmptyContext(t *testing.T) {
	provider := &fakeLLM{tokens: []string{"Ich finde dazu keine Angabe."}}
	turn := &PreparedTurn{Question: "q", ContextText: "", Sources: []string{}}

	events := collect(t, provider, turn)

	if len(events) != 3 {
		t.Fatalf("got %d events, want sources+token+done", len(events))
	}
	if events[0].Kind != stream.KindSources || len(events[0].Sources) != 0 || events[0].Sources == nil {
		t.Errorf("events[0] = %+v, want empty sources", events[0])
	}
	if events[1].Token != "Ich finde dazu keine Angabe." {
		t.Errorf("token = %q", events[1].Token)
	}
}

// When the reader disappears the streamer stops instead of buffering.
func TestStreamReaderGone(t *testing.T) {
	provider := &fakeLLM{tokens: []string{"a", "b", "c"}}
	s := NewStreamer(provider, 0.7, nopLogger{})

	var emitted int
	s.Stream(context.Background(), &PreparedTurn{Question: "q", Sources: []string{}}, func(ev stream.Event) error {
		emitted++
		if emitted == 2 {
			return errors.New("broken pipe")
		}
		return nil
	})

	if emitted != 2 {
		t.Errorf("emitted = %d, want 2 (stop after reader failure)", emitted)
	}
}
