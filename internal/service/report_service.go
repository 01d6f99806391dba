package service

import (
	"context"
	"sort"
	"time"

	"ai-intake-be/internal/dto"
	"ai-intake-be/internal/entity"
	"ai-intake-be/internal/pkg/logger"
	"ai-intake-be/internal/pkg/serverutils"
	"ai-intake-be/internal/repository/specification"
	"ai-intake-be/internal/repository/unitofwork"
)

const defaultReportPageSize = 50

// IReportService backs the clinician dashboard: listing, inspecting and
// annotating persisted intake records.
type IReportService interface {
	ListReports(ctx context.Context, req *dto.ListReportsRequest) ([]dto.ReportSummaryResponse, error)
	GetReport(ctx context.Context, id int64) (*dto.ReportDetailResponse, error)
	DeleteReport(ctx context.Context, id int64) error
	AddFeedback(ctx context.Context, reportId int64, req *dto.CreateFeedbackRequest) (*dto.FeedbackResponse, error)
	ListFeedback(ctx context.Context, reportId int64) ([]dto.FeedbackResponse, error)
	GetStats(ctx context.Context) (*dto.ReportStatsResponse, error)
}

type reportService struct {
	uowFactory unitofwork.RepositoryFactory
	log        logger.ILogger
	now        func() time.Time
}

func NewReportService(uowFactory unitofwork.RepositoryFactory, log logger.ILogger) IReportService {
	return &reportService{
		uowFactory: uowFactory,
		log:        log,
		now:        time.Now,
	}
}

func (s *reportService) ListReports(ctx context.Context, req *dto.ListReportsRequest) ([]dto.ReportSummaryResponse, error) {
	limit := req.Limit
	if limit <= 0 || limit > 200 {
		limit = defaultReportPageSize
	}

	specs := []specification.Specification{
		specification.OrderBy{Field: "timestamp", Desc: true},
		specification.Pagination{Limit: limit, Offset: req.Offset},
	}
	if req.RiskOnly {
		specs = append(specs, specification.WithRiskAlert{Flagged: true})
	}
	if req.SinceMonth != "" {
		since, err := time.Parse("2006-01", req.SinceMonth)
		if err != nil {
			return nil, &serverutils.ValidationError{Fields: []string{"since (expected YYYY-MM)"}}
		}
		specs = append(specs, specification.Since{Time: since})
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	reports, err := uow.ReportRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	out := make([]dto.ReportSummaryResponse, 0, len(reports))
	for _, r := range reports {
		out = append(out, dto.ReportSummaryResponse{
			Id:               r.Id,
			Timestamp:        r.Timestamp,
			SubjectLabel:     r.SubjectLabel,
			RiskAlert:        r.RiskAlert,
			NotificationSent: r.NotificationSent,
		})
	}
	return out, nil
}

func (s *reportService) GetReport(ctx context.Context, id int64) (*dto.ReportDetailResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	report, err := uow.ReportRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, serverutils.ErrNotFound
	}

	feedback, err := uow.FeedbackRepository().FindAll(ctx,
		specification.ByReportID{ReportID: id},
		specification.OrderBy{Field: "timestamp", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	return toReportDetail(report, feedback), nil
}

func (s *reportService) DeleteReport(ctx context.Context, id int64) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	// Existence check so a missing id maps to 404 rather than a no-op.
	existing, err := uow.ReportRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if existing == nil {
		return serverutils.ErrNotFound
	}
	// Feedback rows go with the report via ON DELETE CASCADE.
	if err := uow.ReportRepository().Delete(ctx, id); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	s.log.Info("dashboard", "Report deleted", map[string]interface{}{"report_id": id})
	return nil
}

func (s *reportService) AddFeedback(ctx context.Context, reportId int64, req *dto.CreateFeedbackRequest) (*dto.FeedbackResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	parent, err := uow.ReportRepository().FindOne(ctx, specification.ByID{ID: reportId})
	if err != nil {
		return nil, err
	}
	if parent == nil {
		return nil, serverutils.ErrNotFound
	}

	feedback := &entity.Feedback{
		ReportId:  reportId,
		Text:      req.Text,
		Timestamp: s.now(),
	}
	if err := uow.FeedbackRepository().Create(ctx, feedback); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return &dto.FeedbackResponse{
		Id:        feedback.Id,
		ReportId:  feedback.ReportId,
		Text:      feedback.Text,
		Timestamp: feedback.Timestamp,
	}, nil
}

func (s *reportService) ListFeedback(ctx context.Context, reportId int64) ([]dto.FeedbackResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	parent, err := uow.ReportRepository().FindOne(ctx, specification.ByID{ID: reportId})
	if err != nil {
		return nil, err
	}
	if parent == nil {
		return nil, serverutils.ErrNotFound
	}

	feedback, err := uow.FeedbackRepository().FindAll(ctx,
		specification.ByReportID{ReportID: reportId},
		specification.OrderBy{Field: "timestamp", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	out := make([]dto.FeedbackResponse, 0, len(feedback))
	for _, f := range feedback {
		out = append(out, dto.FeedbackResponse{
			Id:        f.Id,
			ReportId:  f.ReportId,
			Text:      f.Text,
			Timestamp: f.Timestamp,
		})
	}
	return out, nil
}

// GetStats aggregates in memory. Dashboard volumes are small enough that a
// full scan beats maintaining dialect-specific GROUP BY date expressions.
func (s *reportService) GetStats(ctx context.Context) (*dto.ReportStatsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	reports, err := uow.ReportRepository().FindAll(ctx)
	if err != nil {
		return nil, err
	}

	stats := &dto.ReportStatsResponse{Total: int64(len(reports))}
	perMonth := make(map[string]int64)
	for _, r := range reports {
		if r.RiskAlert == "Yes" {
			stats.RiskCount++
		}
		perMonth[r.Timestamp.Format("2006-01")]++
	}

	months := make([]string, 0, len(perMonth))
	for m := range perMonth {
		months = append(months, m)
	}
	sort.Strings(months)
	for _, m := range months {
		stats.PerMonth = append(stats.PerMonth, dto.MonthCount{Month: m, Count: perMonth[m]})
	}
	return stats, nil
}

func toReportDetail(report *entity.Report, feedback []*entity.Feedback) *dto.ReportDetailResponse {
	fb := make([]dto.FeedbackResponse, 0, len(feedback))
	for _, f := range feedback {
		fb = append(fb, dto.FeedbackResponse{
			Id:        f.Id,
			ReportId:  f.ReportId,
			Text:      f.Text,
			Timestamp: f.Timestamp,
		})
	}
	return &dto.ReportDetailResponse{
		Id:               report.Id,
		Timestamp:        report.Timestamp,
		SubjectLabel:     report.SubjectLabel,
		Answers:          report.Answers,
		GeneratedReport:  report.GeneratedReport,
		RiskAlert:        report.RiskAlert,
		NotificationSent: report.NotificationSent,
		Feedback:         fb,
	}
}
