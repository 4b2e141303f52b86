package events

import "connectsphere/core/types"

// Event represents a structured state change emitted by the ledger or the
// registry.
type Event interface {
	EventType() string
}

// Renderable is implemented by events that can flatten themselves into the
// generic record consumed by publishers.
type Renderable interface {
	Event
	Event() *types.Event
}

// Emitter broadcasts events to downstream subscribers (e.g. publishers, indexers).
type Emitter interface {
	Emit(Event)
}

// NoopEmitter is a helper that satisfies the Emitter interface while discarding
// all events. It is useful when a component wants to optionally expose events.
type NoopEmitter struct{}

// Emit implements the Emitter interface.
func (NoopEmitter) Emit(Event) {}

// Render flattens the event. Events that do not implement Renderable produce a
// record carrying only their type.
func Render(evt Event) *types.Event {
	if evt == nil {
		return nil
	}
	if r, ok := evt.(Renderable); ok {
		if out := r.Event(); out != nil {
			return out
		}
	}
	return &types.Event{Type: evt.EventType(), Attributes: map[string]string{}}
}

// Buffer collects events emitted while an operation runs. The owner decides
// after the operation whether to Flush them downstream or Reset them.
type Buffer struct {
	events []Event
}

// NewBuffer returns an empty buffer.
func NewBuffer() *Buffer { return &Buffer{} }

// Emit implements the Emitter interface.
func (b *Buffer) Emit(evt Event) {
	if evt == nil {
		return
	}
	b.events = append(b.events, evt)
}

// Events returns the buffered events in emission order.
func (b *Buffer) Events() []Event {
	out := make([]Event, len(b.events))
	copy(out, b.events)
	return out
}

// Len returns the number of buffered events.
func (b *Buffer) Len() int { return len(b.events) }

// Flush forwards every buffered event to dst and empties the buffer.
func (b *Buffer) Flush(dst Emitter) {
	if dst != nil {
		for _, evt := range b.events {
			dst.Emit(evt)
		}
	}
	b.events = nil
}

// Reset drops the buffered events.
func (b *Buffer) Reset() { b.events = nil }

// Fanout delivers each event to every wrapped emitter in order.
type Fanout []Emitter

// Emit implements the Emitter interface.
func (f Fanout) Emit(evt Event) {
	for _, dst := range f {
		if dst != nil {
			dst.Emit(evt)
		}
	}
}

// Annotated decorates an event with an operation correlation id.
type Annotated struct {
	Inner Event
	OpID  string
}

// EventType implements the Event interface.
func (a Annotated) EventType() string {
	if a.Inner == nil {
		return ""
	}
	return a.Inner.EventType()
}

// Event renders the wrapped event and stamps the operation id onto it.
func (a Annotated) Event() *types.Event {
	rendered := Render(a.Inner)
	if rendered == nil {
		return nil
	}
	out := rendered.Clone()
	if a.OpID != "" {
		out.Attributes["opId"] = a.OpID
	}
	return out
}

// Annotate returns an emitter that wraps every event in Annotated with opID
// before handing it to dst.
func Annotate(dst Emitter, opID string) Emitter {
	return annotator{dst: dst, opID: opID}
}

type annotator struct {
	dst  Emitter
	opID string
}

func (a annotator) Emit(evt Event) {
	if a.dst == nil || evt == nil {
		return
	}
	a.dst.Emit(Annotated{Inner: evt, OpID: a.opID})
}
