package controller

import (
	"strconv"

	"ai-intake-be/internal/dto"
	"ai-intake-be/internal/pkg/logger"
	"ai-intake-be/internal/pkg/serverutils"
	"ai-intake-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ReportController serves the clinician dashboard. Every route is behind the
// admin JWT middleware.
type ReportController struct {
	reportService service.IReportService
	log           logger.ILogger
}

func NewReportController(reportService service.IReportService, log logger.ILogger) *ReportController {
	return &ReportController{reportService: reportService, log: log}
}

func (c *ReportController) RegisterRoutes(router fiber.Router) {
	report := router.Group("/report/v1", serverutils.JwtMiddleware)
	report.Get("/", c.ListReports)
	report.Get("/stats", c.GetStats)
	report.Get("/:id", c.GetReport)
	report.Delete("/:id", c.DeleteReport)
	report.Get("/:id/feedback", c.ListFeedback)
	report.Post("/:id/feedback", c.AddFeedback)

	admin := router.Group("/admin/v1", serverutils.JwtMiddleware)
	admin.Get("/logs", c.GetLogs)
}

func (c *ReportController) ListReports(ctx *fiber.Ctx) error {
	var req dto.ListReportsRequest
	if err := ctx.QueryParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid query parameters")
	}

	reports, err := c.reportService.ListReports(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	return serverutils.SuccessResponse(ctx, fiber.StatusOK, "Reports", reports)
}

func (c *ReportController) GetReport(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx)
	if err != nil {
		return err
	}

	report, err := c.reportService.GetReport(ctx.UserContext(), id)
	if err != nil {
		return err
	}
	return serverutils.SuccessResponse(ctx, fiber.StatusOK, "Report", report)
}

func (c *ReportController) DeleteReport(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx)
	if err != nil {
		return err
	}

	if err := c.reportService.DeleteReport(ctx.UserContext(), id); err != nil {
		return err
	}
	return serverutils.SuccessResponse(ctx, fiber.StatusOK, "Report deleted", nil)
}

func (c *ReportController) AddFeedback(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx)
	if err != nil {
		return err
	}

	var req dto.CreateFeedbackRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	feedback, err := c.reportService.AddFeedback(ctx.UserContext(), id, &req)
	if err != nil {
		return err
	}
	return serverutils.SuccessResponse(ctx, fiber.StatusCreated, "Feedback recorded", feedback)
}

func (c *ReportController) ListFeedback(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx)
	if err != nil {
		return err
	}

	feedback, err := c.reportService.ListFeedback(ctx.UserContext(), id)
	if err != nil {
		return err
	}
	return serverutils.SuccessResponse(ctx, fiber.StatusOK, "Feedback", feedback)
}

func (c *ReportController) GetStats(ctx *fiber.Ctx) error {
	stats, err := c.reportService.GetStats(ctx.UserContext())
	if err != nil {
		return err
	}
	return serverutils.SuccessResponse(ctx, fiber.StatusOK, "Stats", stats)
}

func (c *ReportController) GetLogs(ctx *fiber.Ctx) error {
	level := ctx.Query("level")
	limit := ctx.QueryInt("limit", 100)
	offset := ctx.QueryInt("offset", 0)

	entries, err := c.log.GetLogs(level, limit, offset)
	if err != nil {
		return err
	}
	return serverutils.SuccessResponse(ctx, fiber.StatusOK, "Logs", entries)
}

func parseIdParam(ctx *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(ctx.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Invalid report id")
	}
	return id, nil
}
