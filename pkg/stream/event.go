// Package stream defines the wire protocol framing one answer turn: a
// forward-only sequence of typed events, each a `data: {json}` line followed
// by a blank line. Exactly one sources event opens the turn, zero or more
// token events follow, and exactly one terminal event (done or error) closes
// it. The producing and consuming state machines share only this package.
package stream

// EventKind tags the event union.
type EventKind int

const (
	KindSources EventKind = iota
	KindToken
	KindDone
	KindError
)

func (k EventKind) String() string {
	switch k {
	case KindSources:
		return "sources"
	case KindToken:
		return "token"
	case KindDone:
		return "done"
	case KindError:
		return "error"
	default:
		return "unknown"
	}
}

// Event is exactly one of sources/token/done/error; Kind selects which
// payload field is meaningful.
type Event struct {
	Kind    EventKind
	Sources []string
	Token   string
	Err     string
}

// Sources builds the opening event. The payload is never nil so an empty
// source list still serializes as an empty array.
func Sources(titles []string) Event {
	if titles == nil {
		titles = []string{}
	}
	return Event{Kind: KindSources, Sources: titles}
}

func Token(text string) Event {
	return Event{Kind: KindToken, Token: text}
}

func Done() Event {
	return Event{Kind: KindDone}
}

func Error(message string) Event {
	return Event{Kind: KindError, Err: message}
}

// Terminal reports whether no further events are valid after this one.
func (e Event) Terminal() bool {
	return e.Kind == KindDone || e.Kind == KindError
}
