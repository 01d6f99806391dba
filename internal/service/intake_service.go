package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ai-intake-be/internal/constant"
	"ai-intake-be/internal/dto"
	"ai-intake-be/internal/entity"
	"ai-intake-be/internal/pkg/logger"
	"ai-intake-be/internal/pkg/mailer"
	"ai-intake-be/internal/repository/memory"
	"ai-intake-be/internal/repository/unitofwork"
	"ai-intake-be/pkg/events"
	"ai-intake-be/pkg/llm"
	"ai-intake-be/pkg/triage"

	"github.com/google/uuid"
)

const (
	reportGenerationTimeout = 90 * time.Second
	closingMessageTimeout   = 15 * time.Second

	riskPseudoEntryLabel = "ALERTA_RISCO_IMEDIATO"
)

// IIntakeService drives the intake state machine: one subject input per
// invocation, state reloaded from the session store each time.
type IIntakeService interface {
	StartSession(ctx context.Context, req *dto.StartSessionRequest) (*dto.StartSessionResponse, error)
	SendMessage(ctx context.Context, sessionID string, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error)
	GetSession(ctx context.Context, sessionID string) (*dto.GetSessionResponse, error)
}

type intakeService struct {
	uowFactory  unitofwork.RepositoryFactory
	sessionRepo *memory.SessionRepository
	llmProvider llm.LLMProvider
	reflector   *triage.Reflector
	mail        mailer.IEmailService
	publisher   IPublisherService
	log         logger.ILogger
	recipient   string

	now func() time.Time
}

func NewIntakeService(
	uowFactory unitofwork.RepositoryFactory,
	sessionRepo *memory.SessionRepository,
	llmProvider llm.LLMProvider,
	reflector *triage.Reflector,
	mail mailer.IEmailService,
	publisher IPublisherService,
	log logger.ILogger,
	recipient string,
) IIntakeService {
	return &intakeService{
		uowFactory:  uowFactory,
		sessionRepo: sessionRepo,
		llmProvider: llmProvider,
		reflector:   reflector,
		mail:        mail,
		publisher:   publisher,
		log:         log,
		recipient:   recipient,
		now:         time.Now,
	}
}

// StartSession creates a fresh session when consent is granted. A declined
// consent creates nothing: no session, no artifact, only a farewell.
func (s *intakeService) StartSession(ctx context.Context, req *dto.StartSessionRequest) (*dto.StartSessionResponse, error) {
	if !req.Consent {
		return &dto.StartSessionResponse{
			Messages: []dto.UtteranceDTO{{
				Speaker: triage.SpeakerSystem,
				Text:    constant.ConsentDeclinedMessage,
				At:      s.now(),
			}},
		}, nil
	}

	now := s.now()
	session := triage.NewSession(uuid.NewString(), now)
	session.Say(triage.SpeakerSystem, constant.GreetingMessage, now)
	session.Say(triage.SpeakerSystem, constant.TriageQuestions[0], now)
	s.sessionRepo.Save(session)

	s.log.Info("intake", "Session started", map[string]interface{}{"session_id": session.ID})

	return &dto.StartSessionResponse{
		Id:       session.ID,
		State:    string(session.State),
		Messages: toUtteranceDTOs(session.Transcript),
	}, nil
}

// SendMessage advances a session by exactly one turn. Risk detection runs
// before any other side effect so the flag survives downstream failures.
func (s *intakeService) SendMessage(ctx context.Context, sessionID string, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error) {
	// One turn at a time per session; concurrent requests for the same ID
	// queue here instead of racing on the session value.
	unlock := s.sessionRepo.Lock(sessionID)
	defer unlock()

	session, found := s.sessionRepo.Get(sessionID)
	if !found {
		return nil, triage.ErrSessionNotFound
	}
	if session.State != triage.StateAwaitingAnswer {
		return nil, triage.ErrSessionFinished
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		// Empty input never advances the question index.
		return nil, triage.ErrEmptyAnswer
	}

	now := s.now()
	repliesFrom := len(session.Transcript)
	session.Say(triage.SpeakerSubject, content, now)

	// The crisis message repeats on every risky answer; the alert event is
	// one-shot per session.
	if triage.DetectRisk(content) {
		if session.FlagRisk() {
			s.publishRiskAlert(ctx, session)
		}
		session.Say(triage.SpeakerSystem, constant.CrisisMessage, now)
	}

	question := constant.TriageQuestions[session.QuestionIndex]

	// Incomprehension re-prompts the same question without recording an
	// answer or advancing; the risk flag set above is kept regardless.
	if s.reflector.NeedsRephrase(content) {
		session.Say(triage.SpeakerSystem, s.reflector.Rephrase(ctx, question), s.now())
		s.sessionRepo.Save(session)
		return s.turnResponse(session, repliesFrom, nil, nil), nil
	}

	label := fmt.Sprintf("Pergunta %d: %s", session.QuestionIndex+1, question)
	session.RecordAnswer(label, content)

	if session.QuestionIndex == 0 {
		// Best effort; an unparsable answer simply leaves the name unset.
		session.SubjectName = triage.FirstName(content)
	}

	lastQuestion := session.QuestionIndex == len(constant.TriageQuestions)-1
	if !lastQuestion {
		reflection := s.reflector.Reflect(ctx, content, question, session.SubjectName)
		session.Say(triage.SpeakerSystem, reflection, s.now())

		session.QuestionIndex++
		session.Say(triage.SpeakerSystem, constant.TriageQuestions[session.QuestionIndex], s.now())
		s.sessionRepo.Save(session)
		return s.turnResponse(session, repliesFrom, nil, nil), nil
	}

	// Last answer received: run the report phase to completion in this same
	// invocation. Entered exactly once per session.
	session.State = triage.StateGeneratingReport
	session.Say(triage.SpeakerSystem, constant.PreparingReportMessage, s.now())

	s.sessionRepo.Save(session)

	reportId, warnings := s.finishSession(ctx, session)

	session.State = triage.StateFinished
	resp := s.turnResponse(session, repliesFrom, warnings, reportId)

	// The record is the durable artifact; the session itself is dropped.
	s.sessionRepo.Delete(session.ID)
	return resp, nil
}

func (s *intakeService) GetSession(ctx context.Context, sessionID string) (*dto.GetSessionResponse, error) {
	session, found := s.sessionRepo.Get(sessionID)
	if !found {
		return nil, triage.ErrSessionNotFound
	}
	return &dto.GetSessionResponse{
		Id:            session.ID,
		State:         string(session.State),
		QuestionIndex: session.QuestionIndex,
		RiskFlagged:   session.RiskFlagged,
		Transcript:    toUtteranceDTOs(session.Transcript),
		CreatedAt:     session.CreatedAt,
	}, nil
}

// finishSession performs the terminal side-effect sequence: analysis
// generation, document compilation, notification, persistence, closing
// message. Notification comes first to maximize the chance a clinician is
// alerted, but persistence runs unconditionally afterwards.
func (s *intakeService) finishSession(ctx context.Context, session *triage.Session) (*int64, []string) {
	var warnings []string
	now := s.now()

	analysis, err := s.generateAnalysis(ctx, session)
	if err != nil {
		s.log.Warn("intake", "Report generation failed, using placeholder", map[string]interface{}{
			"session_id": session.ID,
			"error":      err.Error(),
		})
		warnings = append(warnings, "A análise da IA não pôde ser gerada; o relatório contém um marcador de erro.")
		analysis = ""
	}

	riskAlert := "No"
	riskEntry := "Não"
	if session.RiskFlagged {
		riskAlert = "Yes"
		riskEntry = "Sim"
	}
	recordAnswers := make([]triage.AnswerEntry, 0, len(session.Answers)+1)
	recordAnswers = append(recordAnswers, session.Answers...)
	recordAnswers = append(recordAnswers, triage.AnswerEntry{Question: riskPseudoEntryLabel, Answer: riskEntry})

	document := triage.CompileDocument(recordAnswers, analysis, now)

	subjectLabel := "Anônimo"
	if len(session.Answers) > 0 {
		subjectLabel = triage.SubjectLabel(session.Answers[0].Answer)
	}

	notificationSent := true
	emailSubject := fmt.Sprintf("Relatório de Triagem — %s — %s", subjectLabel, now.Format("2006-01-02"))
	attachmentName := fmt.Sprintf("relatorio_%s_%s.txt", subjectLabel, now.Format("20060102_150405"))
	if err := s.mail.SendReport(s.recipient, emailSubject, document, []byte(document), attachmentName); err != nil {
		notificationSent = false
		s.log.Warn("intake", "Report notification failed", map[string]interface{}{
			"session_id": session.ID,
			"error":      err.Error(),
		})
		warnings = append(warnings, "O envio do relatório por e-mail falhou; o registro será mantido mesmo assim.")
	}

	generatedReport := analysis
	if strings.TrimSpace(generatedReport) == "" {
		generatedReport = triage.ReportFailurePlaceholder
	}

	record := &entity.Report{
		Timestamp:        now,
		SubjectLabel:     subjectLabel,
		Answers:          recordAnswers,
		GeneratedReport:  generatedReport,
		RiskAlert:        riskAlert,
		NotificationSent: notificationSent,
	}

	var reportId *int64
	if err := s.persistRecord(ctx, record); err != nil {
		s.log.Error("intake", "Failed to persist intake record", map[string]interface{}{
			"session_id": session.ID,
			"error":      err.Error(),
		})
		warnings = append(warnings, "ERRO: não foi possível salvar o relatório de forma permanente.")
	} else {
		reportId = &record.Id
	}

	session.Say(triage.SpeakerSystem, s.generateClosing(ctx), s.now())
	return reportId, warnings
}

func (s *intakeService) persistRecord(ctx context.Context, record *entity.Report) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.ReportRepository().Create(ctx, record); err != nil {
		return err
	}
	return uow.Commit()
}

func (s *intakeService) generateAnalysis(ctx context.Context, session *triage.Session) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, reportGenerationTimeout)
	defer cancel()

	var history strings.Builder
	history.WriteString("Registro da Triagem:\n")
	for _, e := range session.Answers {
		history.WriteString(fmt.Sprintf("- %s: %s\n", e.Question, e.Answer))
	}

	userPrompt := fmt.Sprintf(
		"Sua tarefa é analisar as informações fornecidas por um paciente durante uma triagem inicial e gerar "+
			"um 'EXAME PSÍQUICO com devolutiva Psicanalítica' conforme a estrutura fornecida. "+
			"Preencha CADA seção com base apenas nas respostas do paciente; deixe claro quando uma "+
			"informação for inferência ou estiver ausente.\n\n"+
			"## Informações do Paciente e Respostas da Triagem:\n%s\n"+
			"## Estrutura do EXAME PSÍQUICO a ser preenchido:\n\n%s\n\n"+
			"Gere o relatório preenchendo as seções acima. Seja conciso, mas completo e analítico.",
		history.String(), constant.PsychicExamInstructions,
	)

	return s.llmProvider.Chat(ctx, []llm.Message{
		{Role: "system", Content: constant.ReportSystemPrompt},
		{Role: "user", Content: userPrompt},
	}, llm.WithTemperature(0.7), llm.WithMaxTokens(1500))
}

func (s *intakeService) generateClosing(ctx context.Context) string {
	ctx, cancel := context.WithTimeout(ctx, closingMessageTimeout)
	defer cancel()

	text, err := s.llmProvider.Chat(ctx, []llm.Message{
		{Role: "system", Content: constant.ClosingSystemPrompt},
		{Role: "user", Content: "A triagem foi concluída e o relatório encaminhado à profissional responsável. Gere a mensagem de encerramento."},
	}, llm.WithTemperature(0.7), llm.WithMaxTokens(80))
	if err != nil || strings.TrimSpace(text) == "" {
		return constant.ClosingFallbackMessage
	}
	return strings.TrimSpace(text)
}

func (s *intakeService) publishRiskAlert(ctx context.Context, session *triage.Session) {
	event := events.RiskAlertEvent{
		SessionID:     session.ID,
		QuestionIndex: session.QuestionIndex,
		FlaggedAt:     s.now(),
	}
	if err := s.publisher.PublishRiskAlert(ctx, event); err != nil {
		s.log.Error("intake", "Failed to publish risk-alert event", map[string]interface{}{
			"session_id": session.ID,
			"error":      err.Error(),
		})
	}
}

func (s *intakeService) turnResponse(session *triage.Session, repliesFrom int, warnings []string, reportId *int64) *dto.SendMessageResponse {
	replies := make([]dto.UtteranceDTO, 0)
	for _, u := range session.Transcript[repliesFrom:] {
		if u.Speaker == triage.SpeakerSystem {
			replies = append(replies, dto.UtteranceDTO{Speaker: u.Speaker, Text: u.Text, At: u.At})
		}
	}
	return &dto.SendMessageResponse{
		State:       string(session.State),
		RiskFlagged: session.RiskFlagged,
		Replies:     replies,
		Warnings:    warnings,
		Finished:    session.Finished(),
		ReportId:    reportId,
	}
}

func toUtteranceDTOs(transcript []triage.Utterance) []dto.UtteranceDTO {
	out := make([]dto.UtteranceDTO, len(transcript))
	for i, u := range transcript {
		out[i] = dto.UtteranceDTO{Speaker: u.Speaker, Text: u.Text, At: u.At}
	}
	return out
}
