package triage

import (
	"time"
)

// State is the position of an intake session in the flow.
type State string

const (
	StateAwaitingConsent  State = "AWAITING_CONSENT"
	StateAwaitingAnswer   State = "AWAITING_ANSWER"
	StateGeneratingReport State = "GENERATING_REPORT"
	StateFinished         State = "FINISHED"
)

const (
	SpeakerSystem  = "system"
	SpeakerSubject = "subject"
)

// Utterance is one line of the display transcript.
type Utterance struct {
	Speaker string    `json:"speaker"`
	Text    string    `json:"text"`
	At      time.Time `json:"at"`
}

// AnswerEntry pairs a question label with the subject's answer. A slice of
// entries is the authoritative, order-preserving form of the answers map.
type AnswerEntry struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Session is one subject's pass through the intake flow. It is a plain value
// held in the session store between turns; only the flow controller mutates
// it, one answer at a time. Once State is StateFinished it must not change.
type Session struct {
	ID            string      `json:"id"`
	State         State       `json:"state"`
	QuestionIndex int         `json:"question_index"`
	Answers       []AnswerEntry `json:"answers"`
	RiskFlagged   bool        `json:"risk_flagged"`
	SubjectName   string      `json:"subject_name"`
	Transcript    []Utterance `json:"transcript"`
	CreatedAt     time.Time   `json:"created_at"`
}

// NewSession creates a session for a subject who has just granted consent.
// Consent is a precondition of existence: a declined consent never produces
// a Session at all.
func NewSession(id string, now time.Time) *Session {
	return &Session{
		ID:            id,
		State:         StateAwaitingAnswer,
		QuestionIndex: 0,
		CreatedAt:     now,
	}
}

// Say appends a transcript line. The transcript is display-only; report
// generation reads Answers, never Transcript.
func (s *Session) Say(speaker, text string, at time.Time) {
	s.Transcript = append(s.Transcript, Utterance{Speaker: speaker, Text: text, At: at})
}

// RecordAnswer stores an answer under its question label, preserving
// insertion order. Duplicate labels are rejected silently by keeping the
// first value; the flow controller never produces duplicates.
func (s *Session) RecordAnswer(question, answer string) {
	for _, e := range s.Answers {
		if e.Question == question {
			return
		}
	}
	s.Answers = append(s.Answers, AnswerEntry{Question: question, Answer: answer})
}

// FlagRisk marks the session as risk-flagged. The flag is monotonic: it is
// never cleared for the lifetime of the session. Returns true when this call
// was the first to set it.
func (s *Session) FlagRisk() bool {
	if s.RiskFlagged {
		return false
	}
	s.RiskFlagged = true
	return true
}

// Finished reports whether the session is terminal.
func (s *Session) Finished() bool {
	return s.State == StateFinished
}
