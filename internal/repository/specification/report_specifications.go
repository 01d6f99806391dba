package specification

import (
	"time"

	"gorm.io/gorm"
)

// WithRiskAlert keeps only flagged (or only unflagged) reports.
type WithRiskAlert struct {
	Flagged bool
}

func (s WithRiskAlert) Apply(db *gorm.DB) *gorm.DB {
	value := "No"
	if s.Flagged {
		value = "Yes"
	}
	return db.Where("risk_alert = ?", value)
}

// Since keeps reports generated at or after the given instant.
type Since struct {
	Time time.Time
}

func (s Since) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("timestamp >= ?", s.Time)
}

// ByReportID filters feedback rows by their parent report.
type ByReportID struct {
	ReportID int64
}

func (s ByReportID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("report_id = ?", s.ReportID)
}
