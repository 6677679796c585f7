package domain

import "time"

// Kind discriminates what a user sent.
type Kind string

const (
	KindText     Kind = "text"
	KindVoice    Kind = "voice"
	KindDocument Kind = "document"
	KindPhoto    Kind = "photo"
	KindVideo    Kind = "video"
	KindFile     Kind = "file" // any other media
)

// IsMedia reports whether the payload has to be forwarded rather than quoted.
func (k Kind) IsMedia() bool { return k != KindText }

// Payload is one inbound user message. ChatID/MessageID point at the
// original message so media can be forwarded as-is.
type Payload struct {
	Kind      Kind
	Text      string // only for KindText
	ChatID    int64
	MessageID int
}

// Event is a payload tagged with the user who sent it.
type Event struct {
	User       User
	Payload    Payload
	ReceivedAt time.Time
}
