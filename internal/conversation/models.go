package conversation

// State identifies the position of a session inside the collection flow.
// The values are persisted verbatim, so renaming one is a storage migration.
type State string

const (
	// StateAwaitingCorpus expects the dormitory corpus identifier.
	StateAwaitingCorpus State = "awaiting_corpus"
	// StateAwaitingFloor expects the floor number.
	StateAwaitingFloor State = "awaiting_floor"
	// StateAwaitingRoomCount expects the number of rooms on the floor.
	StateAwaitingRoomCount State = "awaiting_room_count"
	// StateAwaitingRequesterRoom expects the requester's own room index.
	StateAwaitingRequesterRoom State = "awaiting_requester_room"
	// StateAwaitingRequesterName expects the requester's name.
	StateAwaitingRequesterName State = "awaiting_requester_name"
	// StateAwaitingHorizon expects the schedule horizon in days.
	StateAwaitingHorizon State = "awaiting_horizon"
	// StateAwaitingConfirmation expects the generate action.
	StateAwaitingConfirmation State = "awaiting_confirmation"
	// StateAwaitingDelivery holds a rendered artifact ready to be sent.
	StateAwaitingDelivery State = "awaiting_delivery"
	// StateCancelled is terminal; only a fresh start leaves it.
	StateCancelled State = "cancelled"
)

// EventKind distinguishes typed replies from button presses.
type EventKind string

const (
	// KindText marks a free-text reply.
	KindText EventKind = "text"
	// KindButton marks an inline button press.
	KindButton EventKind = "button"
)

// Event is one inbound user action routed to a session.
type Event struct {
	ChatID  string
	Kind    EventKind
	Payload string
}

// Option is one selectable button: a visible label and the payload the
// transport echoes back when it is pressed.
type Option struct {
	Label string
	Value string
}

// Response is one outbound message emitted by the engine. Options, when
// present, are offered as selectable buttons in the given order. Document
// requests an artifact delivery through the transport.
type Response struct {
	Text     string
	Options  []Option
	Document *DocumentDelivery
}

// DocumentDelivery carries the artifact reference handed to the transport.
type DocumentDelivery struct {
	Path     string
	Filename string
	Caption  string
}

// Button payloads understood by the confirmation and delivery states.
const (
	ActionGenerate = "generate_schedule"
	ActionSend     = "send_document"
	commandStart   = "/start"
	commandCancel  = "/cancel"
)
