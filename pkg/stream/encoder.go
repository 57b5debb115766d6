package stream

import (
	"encoding/json"
	"fmt"
	"io"
)

const dataPrefix = "data: "

type sourcesPayload struct {
	Sources []string `json:"sources"`
}

type tokenPayload struct {
	Token string `json:"token"`
}

type donePayload struct {
	Done bool `json:"done"`
}

type errorPayload struct {
	Error string `json:"error"`
}

// Encoder is the producer side of the wire protocol. It is not safe for
// concurrent use; the protocol has exactly one writer per turn.
type Encoder struct {
	w io.Writer
}

func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// Write frames one event as `data: {json}` plus a blank line.
func (e *Encoder) Write(ev Event) error {
	var payload interface{}
	switch ev.Kind {
	case KindSources:
		sources := ev.Sources
		if sources == nil {
			sources = []string{}
		}
		payload = sourcesPayload{Sources: sources}
	case KindToken:
		payload = tokenPayload{Token: ev.Token}
	case KindDone:
		payload = donePayload{Done: true}
	case KindError:
		payload = errorPayload{Error: ev.Err}
	default:
		return fmt.Errorf("encode: unknown event kind %d", ev.Kind)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(e.w, "%s%s\n\n", dataPrefix, body); err != nil {
		return err
	}
	return nil
}
