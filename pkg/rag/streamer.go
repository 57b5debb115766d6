package rag

import (
	"context"

	"praxis-chat-be/internal/pkg/logger"
	"praxis-chat-be/pkg/llm"
	"praxis-chat-be/pkg/stream"
)

// PreparedTurn is the pre-stream result of the pipeline: question embedded,
// chunks retrieved, context assembled. Failures up to this point surface as
// a plain non-streamed error; everything after travels inside the stream.
type PreparedTurn struct {
	Question    string
	ContextText string
	Sources     []string
}

// EmitFunc delivers one event to the transport. It blocks until the reader
// has taken the event (backpressure stalls the producer, events are never
// dropped) and returns an error when the reader is gone.
type EmitFunc func(stream.Event) error

// StreamErrorMessage is the payload of the in-stream error event. The
// transport has already committed to streaming at that point, so the
// failure cannot change the response framing.
const StreamErrorMessage = "Streaming failed"

// Streamer drives the model's streaming completion call and frames the
// output as discrete events: one sources event first, one token event per
// model fragment (no batching), then exactly one terminal done or error.
type Streamer struct {
	provider    llm.Provider
	temperature float64
	log         logger.ILogger
}

func NewStreamer(provider llm.Provider, temperature float64, log logger.ILogger) *Streamer {
	return &Streamer{
		provider:    provider,
		temperature: temperature,
		log:         log,
	}
}

// Stream runs one turn to completion. The sources event goes out before the
// model is asked for anything, even with an empty context.
func (s *Streamer) Stream(ctx context.Context, turn *PreparedTurn, emit EmitFunc) {
	if err := emit(stream.Sources(turn.Sources)); err != nil {
		s.log.Warn("answer_streamer", "Reader gone before sources event", map[string]interface{}{"error": err.Error()})
		return
	}

	messages := BuildMessages(turn.Question, turn.ContextText)
	tokens, errs := s.provider.ChatStream(ctx, messages, llm.WithTemperature(s.temperature))

	emitted := 0
	for token := range tokens {
		if err := emit(stream.Token(token)); err != nil {
			s.log.Warn("answer_streamer", "Reader gone mid-stream", map[string]interface{}{
				"error":          err.Error(),
				"tokens_emitted": emitted,
			})
			return
		}
		emitted++
	}

	// tokens is closed; the provider has also resolved the error channel.
	if streamErr := <-errs; streamErr != nil {
		if ctx.Err() != nil {
			// Cancelled turn: the reader is gone, no terminal event can land.
			return
		}
		s.log.Error("answer_streamer", "Model stream failed", map[string]interface{}{
			"error":          streamErr.Error(),
			"tokens_emitted": emitted,
		})
		if err := emit(stream.Error(StreamErrorMessage)); err != nil {
			s.log.Warn("answer_streamer", "Reader gone before error event", map[string]interface{}{"error": err.Error()})
		}
		return
	}

	if ctx.Err() != nil {
		return
	}

	if err := emit(stream.Done()); err != nil {
		s.log.Warn("answer_streamer", "Reader gone before done event", map[string]interface{}{"error": err.Error()})
		return
	}
	s.log.Info("answer_streamer", "Turn completed", map[string]interface{}{"tokens_emitted": emitted})
}
