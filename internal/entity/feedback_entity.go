package entity

import "time"

// Feedback is a reviewer note attached to a report. Append-only.
type Feedback struct {
	Id        int64
	ReportId  int64
	Text      string
	Timestamp time.Time
}
