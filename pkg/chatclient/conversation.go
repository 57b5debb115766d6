// Package chatclient is the consumer side of the answer stream: it sends one
// question per turn, incrementally parses the event stream, and mutates the
// conversation state exactly once per event so a UI can render partial
// answers live. It shares nothing with the server pipeline but the wire
// protocol in pkg/stream.
package chatclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"praxis-chat-be/internal/dto"
	"praxis-chat-be/internal/pkg/logger"
	"praxis-chat-be/pkg/stream"

	"github.com/google/uuid"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"

	// CancelledMessage replaces any partial answer when the user aborts a turn.
	CancelledMessage = "Anfrage abgebrochen."
	// FailedMessage is the fixed, non-technical text shown on transport-level
	// failures, distinct from a model-reported error payload.
	FailedMessage = "Ups — Anfrage fehlgeschlagen. Bitte erneut senden."
)

// Message is one conversation entry. LocalId is assigned client-side at
// creation so the UI can address the message before any server
// acknowledgment exists. An assistant message starts empty and grows by
// appending token events; Content and Sources are the only fields mutated
// after creation.
type Message struct {
	LocalId  string
	ServerId string
	Role     string
	Content  string
	Sources  []string
}

// ServerError is a terminal error event reported inside the stream by the
// model pipeline, as opposed to a transport failure on the way there.
type ServerError struct {
	Message string
}

func (e *ServerError) Error() string {
	return e.Message
}

// Conversation owns the per-session message list and the busy/error flags
// guarding concurrent sends. One turn may be in flight at a time; a Send
// while busy is silently ignored, not queued.
type Conversation struct {
	mu             sync.Mutex
	conversationId string
	messages       []*Message
	busy           bool
	errMessage     string
	cancelTurn     context.CancelFunc

	endpoint string
	topK     int
	// No overall timeout: a stalled stream stays open until cancelled or the
	// transport itself fails.
	client   *http.Client
	sessions *SessionStore
	log      logger.ILogger
}

type Option func(*Conversation)

func WithHTTPClient(client *http.Client) Option {
	return func(c *Conversation) { c.client = client }
}

func WithTopK(k int) Option {
	return func(c *Conversation) { c.topK = k }
}

func WithSessionStore(store *SessionStore) Option {
	return func(c *Conversation) { c.sessions = store }
}

func WithLogger(log logger.ILogger) Option {
	return func(c *Conversation) { c.log = log }
}

func New(endpoint string, opts ...Option) *Conversation {
	c := &Conversation{
		endpoint: endpoint,
		topK:     12,
		client:   &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.sessions == nil {
		c.sessions = NewSessionStore()
	}
	if id, found := c.sessions.ConversationId(); found {
		c.conversationId = id
	}
	return c
}

// Send runs one turn to completion. Empty/whitespace input and sends while a
// turn is in flight are no-ops. The user message and an empty assistant
// placeholder are appended before any network activity, so the UI renders
// the user's turn immediately regardless of network latency.
func (c *Conversation) Send(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		return nil
	}
	c.busy = true
	c.errMessage = ""

	assistant := &Message{
		LocalId: uuid.NewString(),
		Role:    RoleAssistant,
		Content: "",
		Sources: []string{},
	}
	c.messages = append(c.messages,
		&Message{LocalId: uuid.NewString(), Role: RoleUser, Content: text},
		assistant,
	)

	turnCtx, cancel := context.WithCancel(ctx)
	c.cancelTurn = cancel
	c.mu.Unlock()

	defer func() {
		// Guaranteed cleanup: busy and the cancellation handle reset on every
		// exit path, including abort and failure.
		cancel()
		c.mu.Lock()
		c.busy = false
		c.cancelTurn = nil
		c.mu.Unlock()
	}()

	err := c.runTurn(turnCtx, text, assistant)

	if turnCtx.Err() == context.Canceled {
		// Aborted, not failed: partial tokens are replaced by the fixed
		// cancellation text and no error banner is raised.
		c.setContent(assistant, CancelledMessage)
		return nil
	}

	if err == nil {
		return nil
	}

	var serverErr *ServerError
	if errors.As(err, &serverErr) {
		c.fail(assistant, serverErr.Message)
		return err
	}

	c.fail(assistant, FailedMessage)
	return err
}

// Cancel aborts the in-flight turn, if any. Cancellation is cooperative: it
// unblocks the next pending read rather than stopping work synchronously.
func (c *Conversation) Cancel() {
	c.mu.Lock()
	cancel := c.cancelTurn
	c.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

func (c *Conversation) ClearError() {
	c.mu.Lock()
	c.errMessage = ""
	c.mu.Unlock()
}

// Reset aborts any in-flight turn and clears messages, error state, and the
// cached conversation id.
func (c *Conversation) Reset() {
	c.Cancel()
	c.mu.Lock()
	c.conversationId = ""
	c.messages = nil
	c.errMessage = ""
	c.mu.Unlock()
	c.sessions.Clear()
}

// Messages returns a snapshot of the conversation so far.
func (c *Conversation) Messages() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Message, len(c.messages))
	for i, m := range c.messages {
		out[i] = *m
	}
	return out
}

func (c *Conversation) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy
}

func (c *Conversation) Err() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errMessage
}

func (c *Conversation) ConversationId() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conversationId
}

func (c *Conversation) SetConversationId(id string) {
	c.mu.Lock()
	c.conversationId = id
	c.mu.Unlock()
	c.sessions.SetConversationId(id)
}

func (c *Conversation) runTurn(ctx context.Context, text string, assistant *Message) error {
	body, err := json.Marshal(dto.ChatRequest{Question: text, K: c.topK})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	decoder := stream.NewDecoder()
	buf := make([]byte, 4096)
	for {
		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			events, parseErrs := decoder.Feed(buf[:n])
			for _, parseErr := range parseErrs {
				// Malformed lines are expected at chunk boundaries; they are
				// skipped, never fatal. Truncated fragments are carried over
				// by the decoder and recovered on the next chunk.
				c.logWarn("Skipping malformed event line", parseErr)
			}
			for _, ev := range events {
				terminal, evErr := c.apply(assistant, ev)
				if evErr != nil {
					return evErr
				}
				if terminal {
					return nil
				}
			}
		}
		if readErr != nil {
			if readErr == io.EOF {
				// Stream ended without a terminal event; keep what arrived.
				return nil
			}
			return readErr
		}
	}
}

// apply mutates conversation state exactly once for one event.
func (c *Conversation) apply(assistant *Message, ev stream.Event) (terminal bool, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch ev.Kind {
	case stream.KindSources:
		// Single assignment per protocol; a duplicate would overwrite, last wins.
		assistant.Sources = ev.Sources
	case stream.KindToken:
		// The only place the rendered answer is constructed.
		assistant.Content += ev.Token
	case stream.KindDone:
		return true, nil
	case stream.KindError:
		return true, &ServerError{Message: ev.Err}
	}
	return false, nil
}

func (c *Conversation) setContent(assistant *Message, content string) {
	c.mu.Lock()
	assistant.Content = content
	c.mu.Unlock()
}

func (c *Conversation) fail(assistant *Message, message string) {
	c.mu.Lock()
	c.errMessage = message
	assistant.Content = message
	c.mu.Unlock()
}

func (c *Conversation) logWarn(message string, err error) {
	if c.log == nil {
		return
	}
	c.log.Warn("chat_client", message, map[string]interface{}{"error": err.Error()})
}
