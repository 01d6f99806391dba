package unitofwork

import (
	"context"

	"ai-intake-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	ReportRepository() contract.ReportRepository
	FeedbackRepository() contract.FeedbackRepository
}
