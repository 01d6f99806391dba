package mapper

import (
	"testing"
	"time"

	"ai-intake-be/internal/entity"
	"ai-intake-be/pkg/triage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportMapper_AnswerOrderSurvivesRoundTrip(t *testing.T) {
	m := NewReportMapper()
	answers := []triage.AnswerEntry{
		{Question: "Pergunta 1: nome", Answer: "Maria, 34"},
		{Question: "Pergunta 2: dor", Answer: "ansiedade"},
		{Question: "Pergunta 3: sintomas", Answer: "há dois anos"},
		{Question: "ALERTA_RISCO_IMEDIATO", Answer: "Não"},
	}
	report := &entity.Report{
		Id:               7,
		Timestamp:        time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC),
		SubjectLabel:     "Maria",
		Answers:          answers,
		GeneratedReport:  "análise",
		RiskAlert:        "No",
		NotificationSent: true,
	}

	model, err := m.ReportToModel(report)
	require.NoError(t, err)

	back, err := m.ReportToEntity(model)
	require.NoError(t, err)

	require.Len(t, back.Answers, 4)
	for i := range answers {
		assert.Equal(t, answers[i], back.Answers[i])
	}
	assert.Equal(t, report.Id, back.Id)
	assert.Equal(t, report.SubjectLabel, back.SubjectLabel)
	assert.Equal(t, report.GeneratedReport, back.GeneratedReport)
	assert.Equal(t, report.RiskAlert, back.RiskAlert)
	assert.Equal(t, report.NotificationSent, back.NotificationSent)
}

func TestReportMapper_NilAnswersMarshalAsEmptyArray(t *testing.T) {
	m := NewReportMapper()

	model, err := m.ReportToModel(&entity.Report{GeneratedReport: "x", RiskAlert: "No"})
	require.NoError(t, err)

	assert.Equal(t, "[]", string(model.AnswersJson))
}

func TestReportMapper_NilInputs(t *testing.T) {
	m := NewReportMapper()

	model, err := m.ReportToModel(nil)
	assert.NoError(t, err)
	assert.Nil(t, model)

	ent, err := m.ReportToEntity(nil)
	assert.NoError(t, err)
	assert.Nil(t, ent)
}

func TestFeedbackMapper_RoundTrip(t *testing.T) {
	m := NewReportMapper()
	fb := &entity.Feedback{Id: 1, ReportId: 7, Text: "paciente confirmou contato", Timestamp: time.Now()}

	back := m.FeedbackToEntity(m.FeedbackToModel(fb))
	assert.Equal(t, fb, back)
}
