package model

import (
	"time"

	"gorm.io/datatypes"
)

type Report struct {
	Id               int64          `gorm:"primaryKey;autoIncrement"`
	Timestamp        time.Time      `gorm:"not null;index"`
	SubjectLabel     string         `gorm:"type:text"`
	AnswersJson      datatypes.JSON `gorm:"not null"` // ordered array of {question, answer}
	GeneratedReport  string         `gorm:"type:text;not null"`
	RiskAlert        string         `gorm:"type:text;not null;default:'No';index"`
	NotificationSent bool           `gorm:"not null;default:false"`
}

func (Report) TableName() string {
	return "reports"
}
