package mapper

import (
	"encoding/json"
	"fmt"

	"ai-intake-be/internal/entity"
	"ai-intake-be/internal/model"
	"ai-intake-be/pkg/triage"

	"gorm.io/datatypes"
)

type ReportMapper struct{}

func NewReportMapper() *ReportMapper {
	return &ReportMapper{}
}

// ReportToModel serializes the ordered answers into the JSON column. A JSON
// array of pairs is used instead of an object so insertion order survives
// the round trip byte-for-byte.
func (m *ReportMapper) ReportToModel(r *entity.Report) (*model.Report, error) {
	if r == nil {
		return nil, nil
	}

	answers := r.Answers
	if answers == nil {
		answers = []triage.AnswerEntry{}
	}
	answersJson, err := json.Marshal(answers)
	if err != nil {
		return nil, fmt.Errorf("marshal answers: %w", err)
	}

	return &model.Report{
		Id:               r.Id,
		Timestamp:        r.Timestamp,
		SubjectLabel:     r.SubjectLabel,
		AnswersJson:      datatypes.JSON(answersJson),
		GeneratedReport:  r.GeneratedReport,
		RiskAlert:        r.RiskAlert,
		NotificationSent: r.NotificationSent,
	}, nil
}

func (m *ReportMapper) ReportToEntity(r *model.Report) (*entity.Report, error) {
	if r == nil {
		return nil, nil
	}

	var answers []triage.AnswerEntry
	if len(r.AnswersJson) > 0 {
		if err := json.Unmarshal(r.AnswersJson, &answers); err != nil {
			return nil, fmt.Errorf("unmarshal answers: %w", err)
		}
	}

	return &entity.Report{
		Id:               r.Id,
		Timestamp:        r.Timestamp,
		SubjectLabel:     r.SubjectLabel,
		Answers:          answers,
		GeneratedReport:  r.GeneratedReport,
		RiskAlert:        r.RiskAlert,
		NotificationSent: r.NotificationSent,
	}, nil
}

func (m *ReportMapper) FeedbackToModel(f *entity.Feedback) *model.Feedback {
	if f == nil {
		return nil
	}
	return &model.Feedback{
		Id:        f.Id,
		ReportId:  f.ReportId,
		Text:      f.Text,
		Timestamp: f.Timestamp,
	}
}

func (m *ReportMapper) FeedbackToEntity(f *model.Feedback) *entity.Feedback {
	if f == nil {
		return nil
	}
	return &entity.Feedback{
		Id:        f.Id,
		ReportId:  f.ReportId,
		Text:      f.Text,
		Timestamp: f.Timestamp,
	}
}
