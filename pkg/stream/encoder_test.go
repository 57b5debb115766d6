package stream

import (
	"bytes"
	"testing"
)

func TestEncoderFraming(t *testing.T) {
	tests := []struct {
		name  string
		event Event
		want  string
	}{
		{name: "sources", event: Sources([]string{"Rezeptbestellung"}), want: "data: {\"sources\":[\"Rezeptbestellung\"]}\n\n"},
		{name: "empty sources serialize as array", event: Sources(nil), want: "data: {\"sources\":[]}\n\n"},
		{name: "token", event: Token("Guete Tag"), want: "data: {\"token\":\"Guete Tag\"}\n\n"},
		{name: "done", event: Done(), want: "data: {\"done\":true}\n\n"},
		{name: "error", event: Error("Streaming failed"), want: "data: {\"error\":\"Streaming failed\"}\n\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := NewEncoder(&buf).Write(tt.event); err != nil {
				t.Fatalf("Write error: %v", err)
			}
			if buf.String() != tt.want {
				t.Errorf("frame = %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

// Everything the encoder writes must come back out of the decoder unchanged,
// whatever chunk boundaries the transport picks.
func TestEncoderDecoderRoundTripChunked(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)

	sent := []Event{
		Sources([]string{"A", "A", "B"}),
		Token("Hal"),
		Token("lo"),
		Done(),
	}
	for _, ev := range sent {
		if err := enc.Write(ev); err != nil {
			t.Fatalf("Write error: %v", err)
		}
	}

	// Feed one byte at a time to exercise every possible split point.
	d := NewDecoder()
	var got []Event
	for _, b := range buf.Bytes() {
		events, errs := d.Feed([]byte{b})
		if len(errs) != 0 {
			t.Fatalf("errs = %v, want none", errs)
		}
		got = append(got, events...)
	}

	if len(got) != len(sent) {
		t.Fatalf("got %d events, want %d", len(got), len(sent))
	}
	for i := range sent {
		if got[i].Kind != sent[i].Kind || got[i].Token != sent[i].Token {
			t.Errorf("event %d = %+v, want %+v", i, got[i], sent[i])
		}
	}
	if len(got[0].Sources) != 3 || got[0].Sources[1] != "A" {
		t.Errorf("sources = %v, want [A A B]", got[0].Sources)
	}
}

func TestEventTerminal(t *testing.T) {
	if Sources(nil).Terminal() || Token("x").Terminal() {
		t.Error("sources/token must not be terminal")
	}
	if !Done().Terminal() || !Error("x").Terminal() {
		t.Error("done/error must be terminal")
	}
}
