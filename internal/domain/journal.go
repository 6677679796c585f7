package domain

import "time"

// MessageRecord is a journal row describing one relayed message.
type MessageRecord struct {
	UserID     UserID
	ChatID     int64
	MessageID  int
	Kind       Kind
	Forwarded  bool
	Error      string
	ReceivedAt time.Time // UTC
}

// AckRecord is a journal row describing one acknowledgment attempt.
type AckRecord struct {
	UserID UserID
	Sent   bool
	Error  string
	SentAt time.Time // UTC
}

// Summary aggregates the journal for status reporting.
type Summary struct {
	Messages   int64 `json:"messages"`
	Failed     int64 `json:"failed_forwards"`
	Users      int64 `json:"users"`
	Acks       int64 `json:"acks"`
	FailedAcks int64 `json:"failed_acks"`
}
