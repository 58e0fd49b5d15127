package conversation

// Event is one inbound trigger for a user's session.
type Event interface {
	isEvent()
}

// Start is the session-start trigger (the /start command).
type Start struct{}

// DocumentReceived carries the raw bytes of an uploaded résumé.
type DocumentReceived struct {
	Data []byte
}

// TextMessage is a plain text message, interpreted per current state.
type TextMessage struct {
	Text string
}

// Action is a choice offered to a returning user.
type Action string

const (
	// ActionSearch reuses the stored profile for a new search.
	ActionSearch Action = "search"
	// ActionNewDocument discards nothing but asks for a fresh résumé.
	ActionNewDocument Action = "new_document"
)

// ActionChosen is a button/choice selection while in ChoosingAction.
type ActionChosen struct {
	Action Action
}

// SkipPhone skips the optional phone step (the /skip command).
type SkipPhone struct{}

// Cancel ends the conversation immediately (the /cancel command).
type Cancel struct{}

func (Start) isEvent()            {}
func (DocumentReceived) isEvent() {}
func (TextMessage) isEvent()      {}
func (ActionChosen) isEvent()     {}
func (SkipPhone) isEvent()        {}
func (Cancel) isEvent()           {}
