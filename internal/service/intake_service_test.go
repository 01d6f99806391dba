package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"ai-intake-be/internal/constant"
	"ai-intake-be/internal/dto"
	"ai-intake-be/internal/entity"
	"ai-intake-be/internal/pkg/logger"
	"ai-intake-be/internal/repository/contract"
	"ai-intake-be/internal/repository/memory"
	"ai-intake-be/internal/repository/specification"
	"ai-intake-be/internal/repository/unitofwork"
	"ai-intake-be/pkg/events"
	"ai-intake-be/pkg/llm"
	"ai-intake-be/pkg/triage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- fakes ---

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }
func (nopLogger) GetLogs(level string, limit, offset int) ([]logger.LogEntry, error) {
	return nil, nil
}

type stubProvider struct {
	reply string
	err   error
	calls int
}

func (p *stubProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	p.calls++
	return p.reply, p.err
}

func (p *stubProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, options...)
}

type fakeMailer struct {
	reportErr    error
	sentReports  int
	lastSubject  string
	lastBody     string
	lastFilename string
	riskAlerts   int
}

func (m *fakeMailer) SendReport(to, subject, body string, attachment []byte, filename string) error {
	if m.reportErr != nil {
		return m.reportErr
	}
	m.sentReports++
	m.lastSubject = subject
	m.lastBody = body
	m.lastFilename = filename
	return nil
}

func (m *fakeMailer) SendRiskAlert(to, sessionID string, flaggedAt time.Time) error {
	m.riskAlerts++
	return nil
}

type fakePublisher struct {
	events []events.RiskAlertEvent
	err    error
}

func (p *fakePublisher) PublishRiskAlert(ctx context.Context, event events.RiskAlertEvent) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

type fakeReportRepo struct {
	reports   []*entity.Report
	createErr error
	nextId    int64
}

func (r *fakeReportRepo) Create(ctx context.Context, report *entity.Report) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.nextId++
	report.Id = r.nextId
	stored := *report
	r.reports = append(r.reports, &stored)
	return nil
}

func (r *fakeReportRepo) Delete(ctx context.Context, id int64) error {
	for i, rep := range r.reports {
		if rep.Id == id {
			r.reports = append(r.reports[:i], r.reports[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeReportRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Report, error) {
	for _, spec := range specs {
		if byId, ok := spec.(specification.ByID); ok {
			for _, rep := range r.reports {
				if rep.Id == byId.ID {
					return rep, nil
				}
			}
		}
	}
	return nil, nil
}

func (r *fakeReportRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Report, error) {
	return r.reports, nil
}

func (r *fakeReportRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.reports)), nil
}

type fakeFeedbackRepo struct {
	feedback []*entity.Feedback
	nextId   int64
}

func (r *fakeFeedbackRepo) Create(ctx context.Context, f *entity.Feedback) error {
	r.nextId++
	f.Id = r.nextId
	stored := *f
	r.feedback = append(r.feedback, &stored)
	return nil
}

func (r *fakeFeedbackRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Feedback, error) {
	var out []*entity.Feedback
	for _, spec := range specs {
		if byReport, ok := spec.(specification.ByReportID); ok {
			for _, f := range r.feedback {
				if f.ReportId == byReport.ReportID {
					out = append(out, f)
				}
			}
			return out, nil
		}
	}
	return r.feedback, nil
}

func (r *fakeFeedbackRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.feedback)), nil
}

// fakeUow is both the factory and the unit of work; transactions are no-ops.
type fakeUow struct {
	reports  *fakeReportRepo
	feedback *fakeFeedbackRepo
}

func newFakeUow() *fakeUow {
	return &fakeUow{reports: &fakeReportRepo{}, feedback: &fakeFeedbackRepo{}}
}

func (u *fakeUow) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork { return u }
func (u *fakeUow) Begin(ctx context.Context) error                         { return nil }
func (u *fakeUow) Commit() error                                           { return nil }
func (u *fakeUow) Rollback() error                                         { return nil }
func (u *fakeUow) ReportRepository() contract.ReportRepository             { return u.reports }
func (u *fakeUow) FeedbackRepository() contract.FeedbackRepository         { return u.feedback }

// --- harness ---

type intakeHarness struct {
	svc       IIntakeService
	uow       *fakeUow
	mail      *fakeMailer
	publisher *fakePublisher
	provider  *stubProvider
}

func newIntakeHarness(t *testing.T) *intakeHarness {
	t.Helper()
	uow := newFakeUow()
	mail := &fakeMailer{}
	publisher := &fakePublisher{}
	provider := &stubProvider{reply: "Análise gerada para o exame psíquico."}
	reflector := triage.NewReflector(triage.StrategyFixed, nil)

	svc := NewIntakeService(uow, memory.NewSessionRepository(time.Hour), provider, reflector, mail, publisher, nopLogger{}, "clinica@example.com")
	svc.(*intakeService).now = func() time.Time {
		return time.Date(2026, 8, 31, 14, 0, 0, 0, time.UTC)
	}
	return &intakeHarness{svc: svc, uow: uow, mail: mail, publisher: publisher, provider: provider}
}

func (h *intakeHarness) start(t *testing.T) string {
	t.Helper()
	resp, err := h.svc.StartSession(context.Background(), &dto.StartSessionRequest{Consent: true})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Id)
	return resp.Id
}

func (h *intakeHarness) answer(t *testing.T, id, text string) *dto.SendMessageResponse {
	t.Helper()
	resp, err := h.svc.SendMessage(context.Background(), id, &dto.SendMessageRequest{Content: text})
	require.NoError(t, err)
	return resp
}

// answerAll drives the session through every remaining question with
// generic answers, starting from the current index.
func (h *intakeHarness) answerAll(t *testing.T, id string, from int) *dto.SendMessageResponse {
	t.Helper()
	var last *dto.SendMessageResponse
	for i := from; i < len(constant.TriageQuestions); i++ {
		last = h.answer(t, id, fmt.Sprintf("resposta detalhada para a pergunta número %d", i+1))
	}
	return last
}

// --- tests ---

func TestStartSession_ConsentGranted(t *testing.T) {
	h := newIntakeHarness(t)

	resp, err := h.svc.StartSession(context.Background(), &dto.StartSessionRequest{Consent: true})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.Id)
	assert.Equal(t, string(triage.StateAwaitingAnswer), resp.State)
	require.Len(t, resp.Messages, 2)
	assert.Equal(t, constant.GreetingMessage, resp.Messages[0].Text)
	assert.Equal(t, constant.TriageQuestions[0], resp.Messages[1].Text)
}

func TestStartSession_ConsentDeclinedCreatesNothing(t *testing.T) {
	h := newIntakeHarness(t)

	resp, err := h.svc.StartSession(context.Background(), &dto.StartSessionRequest{Consent: false})
	require.NoError(t, err)

	assert.Empty(t, resp.Id)
	require.Len(t, resp.Messages, 1)
	assert.Equal(t, constant.ConsentDeclinedMessage, resp.Messages[0].Text)
	assert.Empty(t, h.uow.reports.reports)
}

func TestSendMessage_UnknownSession(t *testing.T) {
	h := newIntakeHarness(t)

	_, err := h.svc.SendMessage(context.Background(), "nope", &dto.SendMessageRequest{Content: "oi"})
	assert.ErrorIs(t, err, triage.ErrSessionNotFound)
}

func TestSendMessage_EmptyAnswerDoesNotAdvance(t *testing.T) {
	h := newIntakeHarness(t)
	id := h.start(t)

	_, err := h.svc.SendMessage(context.Background(), id, &dto.SendMessageRequest{Content: "   "})
	assert.ErrorIs(t, err, triage.ErrEmptyAnswer)

	state, err := h.svc.GetSession(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, 0, state.QuestionIndex)
}

func TestSendMessage_AdvancesWithReflectionAndNextQuestion(t *testing.T) {
	h := newIntakeHarness(t)
	id := h.start(t)

	resp := h.answer(t, id, "Maria, 34, 11999990000, São Paulo")

	require.Len(t, resp.Replies, 2)
	assert.Equal(t, constant.TriageQuestions[1], resp.Replies[1].Text)
	assert.False(t, resp.Finished)

	state, err := h.svc.GetSession(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, 1, state.QuestionIndex)
}

func TestSendMessage_IncomprehensionRepromptsWithoutAdvancing(t *testing.T) {
	h := newIntakeHarness(t)
	id := h.start(t)

	resp := h.answer(t, id, "não entendi o que você quer saber")

	require.Len(t, resp.Replies, 1)
	assert.Contains(t, resp.Replies[0].Text, constant.TriageQuestions[0])

	state, err := h.svc.GetSession(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, 0, state.QuestionIndex)
}

func TestSendMessage_RiskAnswerEmitsCrisisMessageAndAlertOnce(t *testing.T) {
	h := newIntakeHarness(t)
	id := h.start(t)
	h.answer(t, id, "Maria, 34, 11999990000, São Paulo")

	resp := h.answer(t, id, "às vezes penso em suicídio e isso me assusta")

	assert.True(t, resp.RiskFlagged)
	require.NotEmpty(t, resp.Replies)
	assert.Equal(t, constant.CrisisMessage, resp.Replies[0].Text)
	assert.Len(t, h.publisher.events, 1)
	assert.Equal(t, id, h.publisher.events[0].SessionID)

	// A second risky answer repeats the crisis message but must not
	// publish another alert event.
	resp = h.answer(t, id, "sigo pensando em me matar de vez em quando")
	assert.True(t, resp.RiskFlagged)
	require.NotEmpty(t, resp.Replies)
	assert.Equal(t, constant.CrisisMessage, resp.Replies[0].Text)
	assert.Len(t, h.publisher.events, 1)
}

func TestFullFlow_PersistsReportAndSendsEmail(t *testing.T) {
	h := newIntakeHarness(t)
	id := h.start(t)
	h.answer(t, id, "Maria, 34, 11999990000, São Paulo")

	last := h.answerAll(t, id, 1)

	assert.True(t, last.Finished)
	assert.Equal(t, string(triage.StateFinished), last.State)
	assert.Empty(t, last.Warnings)
	require.NotNil(t, last.ReportId)

	require.Len(t, h.uow.reports.reports, 1)
	record := h.uow.reports.reports[0]
	assert.Equal(t, "Maria", record.SubjectLabel)
	assert.Equal(t, "No", record.RiskAlert)
	assert.True(t, record.NotificationSent)
	assert.Equal(t, "Análise gerada para o exame psíquico.", record.GeneratedReport)

	// 16 answers plus the risk pseudo-entry, in question order.
	require.Len(t, record.Answers, len(constant.TriageQuestions)+1)
	assert.Contains(t, record.Answers[0].Question, constant.TriageQuestions[0])
	last2 := record.Answers[len(record.Answers)-1]
	assert.Equal(t, "ALERTA_RISCO_IMEDIATO", last2.Question)
	assert.Equal(t, "Não", last2.Answer)

	assert.Equal(t, 1, h.mail.sentReports)
	assert.Contains(t, h.mail.lastSubject, "Maria")
	assert.Contains(t, h.mail.lastBody, "## Exame Psíquico (Análise)")

	// The session is dropped once finished; further answers hit nothing.
	_, err := h.svc.SendMessage(context.Background(), id, &dto.SendMessageRequest{Content: "mais uma coisa"})
	assert.ErrorIs(t, err, triage.ErrSessionNotFound)
}

func TestFullFlow_RiskFlagReachesPersistedRecord(t *testing.T) {
	h := newIntakeHarness(t)
	id := h.start(t)
	h.answer(t, id, "Maria, 34, 11999990000, São Paulo")
	h.answer(t, id, "tenho pensado em suicídio ultimamente")

	h.answerAll(t, id, 2)

	require.Len(t, h.uow.reports.reports, 1)
	record := h.uow.reports.reports[0]
	assert.Equal(t, "Yes", record.RiskAlert)
	assert.Equal(t, "Sim", record.Answers[len(record.Answers)-1].Answer)
}

func TestFullFlow_GenerationFailureUsesPlaceholder(t *testing.T) {
	h := newIntakeHarness(t)
	h.provider.err = errors.New("backend down")
	id := h.start(t)

	last := h.answerAll(t, id, 0)

	assert.True(t, last.Finished)
	assert.NotEmpty(t, last.Warnings)
	require.Len(t, h.uow.reports.reports, 1)
	assert.Equal(t, triage.ReportFailurePlaceholder, h.uow.reports.reports[0].GeneratedReport)
	// The emailed document carries the placeholder too.
	assert.Contains(t, h.mail.lastBody, triage.ReportFailurePlaceholder)
	// Closing falls back to the fixed message.
	assert.Equal(t, constant.ClosingFallbackMessage, last.Replies[len(last.Replies)-1].Text)
}

func TestFullFlow_EmailFailureStillPersists(t *testing.T) {
	h := newIntakeHarness(t)
	h.mail.reportErr = errors.New("smtp down")
	id := h.start(t)

	last := h.answerAll(t, id, 0)

	assert.True(t, last.Finished)
	assert.NotEmpty(t, last.Warnings)
	require.NotNil(t, last.ReportId)
	require.Len(t, h.uow.reports.reports, 1)
	assert.False(t, h.uow.reports.reports[0].NotificationSent)
}

func TestFullFlow_PersistenceFailureIsSurfaced(t *testing.T) {
	h := newIntakeHarness(t)
	h.uow.reports.createErr = errors.New("db down")
	id := h.start(t)

	last := h.answerAll(t, id, 0)

	assert.True(t, last.Finished)
	assert.Nil(t, last.ReportId)
	require.NotEmpty(t, last.Warnings)
	assert.Contains(t, last.Warnings[len(last.Warnings)-1], "ERRO")
	// The email went out even though the record was lost.
	assert.Equal(t, 1, h.mail.sentReports)
}

func TestSendMessage_ConcurrentFinalAnswersProduceOneRecord(t *testing.T) {
	h2 := newIntakeHarness(t)
	id2 := h2.start(t)
	// Drive the session to the last question, then race two final turns.
	for i := 0; i < len(constant.TriageQuestions)-1; i++ {
		h2.answer(t, id2, fmt.Sprintf("resposta detalhada para a pergunta número %d", i+1))
	}

	final := &dto.SendMessageRequest{Content: "resposta final detalhada para encerrar"}
	errs := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() {
			_, err := h2.svc.SendMessage(context.Background(), id2, final)
			errs <- err
		}()
	}

	var failures int
	for i := 0; i < 2; i++ {
		if err := <-errs; err != nil {
			assert.ErrorIs(t, err, triage.ErrSessionNotFound)
			failures++
		}
	}

	// Exactly one turn wins; the loser finds the session already dropped.
	assert.Equal(t, 1, failures)
	assert.Len(t, h2.uow.reports.reports, 1)
	assert.Equal(t, 1, h2.mail.sentReports)
}

func TestGetSession_ReturnsTranscript(t *testing.T) {
	h := newIntakeHarness(t)
	id := h.start(t)
	h.answer(t, id, "Maria, 34, 11999990000, São Paulo")

	state, err := h.svc.GetSession(context.Background(), id)
	require.NoError(t, err)

	assert.Equal(t, id, state.Id)
	// greeting + Q1 + answer + reflection + Q2
	assert.Len(t, state.Transcript, 5)
	assert.Equal(t, triage.SpeakerSubject, state.Transcript[2].Speaker)
}
