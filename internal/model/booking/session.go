package booking

import "time"

// Intent names the state a session's booking flow is currently in. It
// decides how the next input is interpreted.
type Intent string

// IntentNone is the neutral state: only the domain trigger phrase is
// understood.
const IntentNone Intent = "none"

// Session captures a transient anonymous conversation.
type Session struct {
	ID        string    `json:"id"`
	Domain    string    `json:"domain"`
	CreatedAt time.Time `json:"createdAt"`
}

// Message is one entry of a session transcript. Insertion order is
// display order.
type Message struct {
	ID        string    `json:"id"`
	SessionID string    `json:"sessionId"`
	Text      string    `json:"text"`
	FromBot   bool      `json:"fromBot"`
	CreatedAt time.Time `json:"createdAt"`
}
