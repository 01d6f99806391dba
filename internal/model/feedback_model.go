package model

import "time"

type Feedback struct {
	Id        int64     `gorm:"primaryKey;autoIncrement"`
	ReportId  int64     `gorm:"not null;index"`
	Report    Report    `gorm:"foreignKey:ReportId;constraint:OnDelete:CASCADE"`
	Text      string    `gorm:"type:text;not null"`
	Timestamp time.Time `gorm:"not null"`
}

func (Feedback) TableName() string {
	return "feedback"
}
