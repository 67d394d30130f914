package handlers

import "github.com/bhandras/inkwire/pkg/wire"

// Instruction describes a single outbound emission produced by a handler
// call. All emissions are scoped to the caller's session.
type Instruction struct {
	envelope wire.Envelope
	skipSelf bool
}

func newBroadcast(env wire.Envelope) Instruction {
	return Instruction{envelope: env}
}

func newBroadcastToOthers(env wire.Envelope) Instruction {
	return Instruction{envelope: env, skipSelf: true}
}

// Envelope returns the message to emit.
func (i Instruction) Envelope() wire.Envelope { return i.envelope }

// SkipSelf reports whether the originating connection must be skipped.
func (i Instruction) SkipSelf() bool { return i.skipSelf }

// EventResult is the output of a handler invocation: zero or more emissions.
// An empty result means the message was a no-op (empty history on undo,
// unknown stroke on move/end, malformed fields).
type EventResult struct {
	emits []Instruction
}

// NewEventResult constructs a handler result.
func NewEventResult(emits ...Instruction) EventResult {
	return EventResult{emits: emits}
}

// Emits returns the emissions requested by the handler.
func (r EventResult) Emits() []Instruction { return r.emits }
