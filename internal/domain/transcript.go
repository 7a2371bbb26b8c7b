package domain

import "time"

// Speaker identifies who produced a transcript line.
type Speaker string

const (
	SpeakerBot  Speaker = "bot"
	SpeakerUser Speaker = "user"
)

// TranscriptRecord captures one conversation line for local review. It holds
// only what the user already typed plus engine state; no identity data.
type TranscriptRecord struct {
	SessionID string       `json:"session_id"`
	Timestamp time.Time    `json:"timestamp"`
	Speaker   Speaker      `json:"speaker"`
	Text      string       `json:"text"`
	State     SessionState `json:"state"`
	Domain    string       `json:"domain,omitempty"`
	Escalated bool         `json:"escalated"`
}
