package dto

import (
	"time"

	"ai-intake-be/pkg/triage"
)

type ListReportsRequest struct {
	Limit      int    `query:"limit"`
	Offset     int    `query:"offset"`
	RiskOnly   bool   `query:"risk_only"`
	SinceMonth string `query:"since"` // "2026-01" style, optional
}

type ReportSummaryResponse struct {
	Id               int64     `json:"id"`
	Timestamp        time.Time `json:"timestamp"`
	SubjectLabel     string    `json:"subject_label"`
	RiskAlert        string    `json:"risk_alert"`
	NotificationSent bool      `json:"notification_sent"`
}

type ReportDetailResponse struct {
	Id               int64                `json:"id"`
	Timestamp        time.Time            `json:"timestamp"`
	SubjectLabel     string               `json:"subject_label"`
	Answers          []triage.AnswerEntry `json:"answers"`
	GeneratedReport  string               `json:"generated_report"`
	RiskAlert        string               `json:"risk_alert"`
	NotificationSent bool                 `json:"notification_sent"`
	Feedback         []FeedbackResponse   `json:"feedback"`
}

type CreateFeedbackRequest struct {
	Text string `json:"text" validate:"required"`
}

type FeedbackResponse struct {
	Id        int64     `json:"id"`
	ReportId  int64     `json:"report_id"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

type MonthCount struct {
	Month string `json:"month"` // "2026-08"
	Count int64  `json:"count"`
}

type ReportStatsResponse struct {
	Total     int64        `json:"total"`
	RiskCount int64        `json:"risk_count"`
	PerMonth  []MonthCount `json:"per_month"`
}
