package stream

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Decoder is the consumer side of the wire protocol. Transport chunks do not
// align with event boundaries, so an incomplete trailing fragment is held
// over and prefixed to the next chunk before re-splitting into lines.
type Decoder struct {
	buffer string
}

func NewDecoder() *Decoder {
	return &Decoder{}
}

// Feed consumes one transport chunk and returns the events completed by it.
// Malformed event-carrying lines are reported in errs and must be skipped by
// the caller, never treated as fatal: they are expected at chunk boundaries.
func (d *Decoder) Feed(chunk []byte) (events []Event, errs []error) {
	d.buffer += string(chunk)
	lines := strings.Split(d.buffer, "\n")
	d.buffer = lines[len(lines)-1]

	for _, line := range lines[:len(lines)-1] {
		if !strings.HasPrefix(line, dataPrefix) {
			continue
		}
		ev, err := decodeLine(strings.TrimPrefix(line, dataPrefix))
		if err != nil {
			errs = append(errs, err)
			continue
		}
		events = append(events, ev)
	}
	return events, errs
}

type wirePayload struct {
	Sources *[]string `json:"sources"`
	Token   *string   `json:"token"`
	Done    *bool     `json:"done"`
	Error   *string   `json:"error"`
}

func decodeLine(body string) (Event, error) {
	var payload wirePayload
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		return Event{}, fmt.Errorf("decode event line: %w", err)
	}

	switch {
	case payload.Sources != nil:
		return Sources(*payload.Sources), nil
	case payload.Token != nil:
		return Token(*payload.Token), nil
	case payload.Done != nil && *payload.Done:
		return Done(), nil
	case payload.Error != nil:
		return Error(*payload.Error), nil
	default:
		return Event{}, fmt.Errorf("decode event line: no recognized field in %q", body)
	}
}
