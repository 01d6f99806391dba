package dto

import "time"

type StartSessionRequest struct {
	Consent bool `json:"consent"`
}

type UtteranceDTO struct {
	Speaker string    `json:"speaker"`
	Text    string    `json:"text"`
	At      time.Time `json:"at"`
}

type StartSessionResponse struct {
	Id       string         `json:"id"`
	State    string         `json:"state"`
	Messages []UtteranceDTO `json:"messages"`
}

type SendMessageRequest struct {
	Content string `json:"content" validate:"required"`
}

type SendMessageResponse struct {
	State       string         `json:"state"`
	RiskFlagged bool           `json:"risk_flagged"`
	Replies     []UtteranceDTO `json:"replies"`
	Warnings    []string       `json:"warnings,omitempty"`
	Finished    bool           `json:"finished"`
	ReportId    *int64         `json:"report_id,omitempty"`
}

type GetSessionResponse struct {
	Id            string         `json:"id"`
	State         string         `json:"state"`
	QuestionIndex int            `json:"question_index"`
	RiskFlagged   bool           `json:"risk_flagged"`
	Transcript    []UtteranceDTO `json:"transcript"`
	CreatedAt     time.Time      `json:"created_at"`
}

type ConsentTermResponse struct {
	Term string `json:"term"`
}
