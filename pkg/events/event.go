package events

import "time"

// RiskAlertEvent is published the first time a session flags crisis
// keywords. Payload is intentionally minimal: no answer text leaves the
// session before the final report.
type RiskAlertEvent struct {
	SessionID     string    `json:"session_id"`
	QuestionIndex int       `json:"question_index"`
	FlaggedAt     time.Time `json:"flagged_at"`
}
