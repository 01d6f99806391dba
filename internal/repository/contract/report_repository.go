package contract

import (
	"context"

	"ai-intake-be/internal/entity"
	"ai-intake-be/internal/repository/specification"
)

// ReportRepository persists finished intake records. Records are write-once:
// there is deliberately no Update method.
type ReportRepository interface {
	Create(ctx context.Context, report *entity.Report) error
	Delete(ctx context.Context, id int64) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Report, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Report, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
