package entity

import (
	"time"

	"ai-intake-be/pkg/triage"
)

// Report is the durable artifact of a finished intake session. Write-once:
// no update path exists anywhere in the repository layer.
type Report struct {
	Id               int64
	Timestamp        time.Time
	SubjectLabel     string
	Answers          []triage.AnswerEntry // ordered; includes the risk pseudo-entry
	GeneratedReport  string               // never empty; placeholder on generation failure
	RiskAlert        string               // "Yes" or "No"
	NotificationSent bool
}
