package domain

// SessionState enumerates the conversation states.
type SessionState string

const (
	StateGreet       SessionState = "GREET"
	StateAskSymptoms SessionState = "ASK_SYMPTOMS"
	StateAskFlags    SessionState = "ASK_FLAGS"
	StateEnd         SessionState = "END"
)

// Session holds the mutable state of one conversation. It is owned exclusively
// by the service that created it and never outlives the conversation.
type Session struct {
	ID               string
	State            SessionState
	Domain           string
	AnsweredSymptoms []string
	PainScore        *int
	RedFlagCursor    int
	Escalated        bool
}

// NewSession creates a session in the initial state.
func NewSession(id string) *Session {
	return &Session{ID: id, State: StateGreet}
}

// Reset discards accumulated answers and returns to GREET. The session id is
// kept so a transcript can link the restarted conversation.
func (s *Session) Reset() {
	s.State = StateGreet
	s.Domain = ""
	s.AnsweredSymptoms = nil
	s.PainScore = nil
	s.RedFlagCursor = 0
	s.Escalated = false
}

// RecordSymptom adds a symptom with set semantics, preserving selection order.
func (s *Session) RecordSymptom(label string) {
	for _, existing := range s.AnsweredSymptoms {
		if existing == label {
			return
		}
	}
	s.AnsweredSymptoms = append(s.AnsweredSymptoms, label)
}

// SymptomForm is what the presenter renders during ASK_SYMPTOMS.
type SymptomForm struct {
	Prompt    string
	Choices   []string
	PainLabel string
	PainMin   int
	PainMax   int
}

// FormSubmission carries the user's structured intake answers back.
type FormSubmission struct {
	Symptoms  []string
	PainScore int
}
