package dialogue

import (
	"context"
	"fmt"
	"strings"

	"github.com/voyago/travelbot/backend/internal/model/booking"
)

// IntentConfirmation awaits a literal yes/no for the pending booking.
const IntentConfirmation booking.Intent = "confirmation"

// Field describes one slot a domain collects through free text.
type Field struct {
	// Intent names the state while this field is being collected.
	Intent booking.Intent
	// Key is the storage key for the validated value.
	Key string
	// Prompt is emitted when the flow enters this field's state.
	Prompt string
	// Invalid re-prompts on a failed validation; the state is kept.
	Invalid string
	// Validate rejects utterances that do not match the field format.
	// A nil Validate accepts anything.
	Validate func(text string) bool
	// Normalize rewrites the utterance before storage.
	Normalize func(text string) string
	// Ack optionally emits messages right after the value is stored.
	Ack func(t *Turn, value string)
}

// Domain parameterizes the engine with one booking flow: its trigger
// phrase, the ordered fields to collect, and the hooks run once
// collection completes.
type Domain struct {
	Name     string
	Trigger  string
	Greeting string
	Help     string
	Fields   []Field

	// SelectIntent is the state in which a selection (typed index or
	// structured choice) is accepted.
	SelectIntent booking.Intent
	// Complete runs after the last field is collected. It emits the
	// selection affordance (or an apology) and advances the intent.
	Complete func(ctx context.Context, t *Turn)
	// Select interprets input while in SelectIntent.
	Select func(t *Turn, input booking.Input)
	// Confirm emits the booking summary (yes) or cancellation (no).
	Confirm func(t *Turn, confirmed bool)
}

// State is the mutable per-session half of the state machine.
type State struct {
	Intent   booking.Intent
	Fields   map[string]string
	Offers   []booking.Offer
	Selected *booking.Offer
	Ride     *booking.RideOption
}

// NewState returns a fresh neutral state.
func NewState() *State {
	return &State{Intent: booking.IntentNone, Fields: make(map[string]string)}
}

// Turn accumulates the outputs of processing one input.
type Turn struct {
	state *State
	out   []string
}

// Say queues one bot message.
func (t *Turn) Say(text string) {
	t.out = append(t.out, text)
}

// Sayf queues one formatted bot message.
func (t *Turn) Sayf(format string, args ...any) {
	t.Say(fmt.Sprintf(format, args...))
}

// Set stores a collected field value.
func (t *Turn) Set(key, value string) {
	t.state.Fields[key] = value
}

// Get reads a collected field value.
func (t *Turn) Get(key string) string {
	return t.state.Fields[key]
}

// To advances the session intent.
func (t *Turn) To(intent booking.Intent) {
	t.state.Intent = intent
}

// State exposes the session state to domain hooks.
func (t *Turn) State() *State {
	return t.state
}

// Engine drives one domain's state machine. It holds no per-session
// data; all mutation goes through the State passed to Handle.
type Engine struct {
	domain Domain
}

// NewEngine builds an engine for the given domain descriptor.
func NewEngine(domain Domain) *Engine {
	return &Engine{domain: domain}
}

// Name reports the domain name the engine serves.
func (e *Engine) Name() string {
	return e.domain.Name
}

// Greeting is the seed bot message of a new session.
func (e *Engine) Greeting() string {
	return e.domain.Greeting
}

// Handle processes one input against the session state and returns the
// bot messages emitted by the turn, in emission order. Transitions only
// ever move one hop along the domain's graph.
func (e *Engine) Handle(ctx context.Context, state *State, input booking.Input) []string {
	t := &Turn{state: state}

	switch in := input.(type) {
	case booking.FreeText:
		e.handleText(ctx, t, string(in))
	case booking.StructuredChoice:
		// The side channel is only open in the selection state.
		if state.Intent == e.domain.SelectIntent && e.domain.Select != nil {
			e.domain.Select(t, in)
		} else {
			t.Say(e.domain.Help)
		}
	}

	return t.out
}

func (e *Engine) handleText(ctx context.Context, t *Turn, text string) {
	switch t.state.Intent {
	case booking.IntentNone:
		if normalize(text) == e.domain.Trigger {
			first := e.domain.Fields[0]
			t.Say(first.Prompt)
			t.To(first.Intent)
			return
		}
		t.Say(e.domain.Help)

	case IntentConfirmation:
		switch normalize(text) {
		case "yes":
			e.domain.Confirm(t, true)
			t.To(booking.IntentNone)
		case "no":
			e.domain.Confirm(t, false)
			t.To(booking.IntentNone)
		default:
			t.Say("Please reply with 'yes' to confirm or 'no' to cancel.")
		}

	case e.domain.SelectIntent:
		e.domain.Select(t, booking.FreeText(text))

	default:
		e.collectField(ctx, t, text)
	}
}

func (e *Engine) collectField(ctx context.Context, t *Turn, text string) {
	idx := e.fieldIndex(t.state.Intent)
	if idx < 0 {
		t.Say(e.domain.Help)
		return
	}

	field := e.domain.Fields[idx]
	if field.Validate != nil && !field.Validate(text) {
		t.Say(field.Invalid)
		return
	}

	value := text
	if field.Normalize != nil {
		value = field.Normalize(text)
	}
	t.Set(field.Key, value)

	if field.Ack != nil {
		field.Ack(t, value)
	}

	if idx+1 < len(e.domain.Fields) {
		next := e.domain.Fields[idx+1]
		t.Say(next.Prompt)
		t.To(next.Intent)
		return
	}

	e.domain.Complete(ctx, t)
}

func (e *Engine) fieldIndex(intent booking.Intent) int {
	for i, f := range e.domain.Fields {
		if f.Intent == intent {
			return i
		}
	}
	return -1
}

func normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}
