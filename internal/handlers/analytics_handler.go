package handlers

import (
	"github.com/gofiber/fiber/v2"

	"hrassist/resume-screener/internal/models"
	"hrassist/resume-screener/internal/repositories"
	"hrassist/resume-screener/internal/services"
)

type AnalyticsHandler struct {
	jobRepo   repositories.JobRepository
	evalRepo  repositories.EvaluationRepository
	analytics services.AnalyticsService
}

func NewAnalyticsHandler(
	jobRepo repositories.JobRepository,
	evalRepo repositories.EvaluationRepository,
	analytics services.AnalyticsService,
) *AnalyticsHandler {
	return &AnalyticsHandler{
		jobRepo:   jobRepo,
		evalRepo:  evalRepo,
		analytics: analytics,
	}
}

// HandleDashboard handles GET /dashboard
func (h *AnalyticsHandler) HandleDashboard(c *fiber.Ctx) error {
	activeJobs, err := h.jobRepo.CountActive()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load dashboard",
		})
	}

	today, err := h.evalRepo.CountToday()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load dashboard",
		})
	}

	shortlisted, rejected, err := h.evalRepo.CountByResult()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load dashboard",
		})
	}

	return c.JSON(models.DashboardResponse{
		ActiveJobs:       activeJobs,
		EvaluationsToday: today,
		Shortlisted:      shortlisted,
		Rejected:         rejected,
	})
}

// HandleStats handles GET /analytics/stats
func (h *AnalyticsHandler) HandleStats(c *fiber.Ctx) error {
	rows, ok, err := h.windowRows(c)
	if !ok {
		return err
	}
	return c.JSON(h.analytics.Stats(rows))
}

// HandleTrend handles GET /analytics/trend
func (h *AnalyticsHandler) HandleTrend(c *fiber.Ctx) error {
	rows, ok, err := h.windowRows(c)
	if !ok {
		return err
	}
	return c.JSON(fiber.Map{
		"trend": h.analytics.TrendSeries(rows),
	})
}

// HandleJobDistribution handles GET /analytics/jobs
func (h *AnalyticsHandler) HandleJobDistribution(c *fiber.Ctx) error {
	rows, ok, err := h.windowRows(c)
	if !ok {
		return err
	}
	return c.JSON(fiber.Map{
		"jobs": h.analytics.JobDistribution(rows),
	})
}

func (h *AnalyticsHandler) windowRows(c *fiber.Ctx) ([]models.EvaluationRow, bool, error) {
	rows, err := h.evalRepo.ByPeriod(models.Period(c.Query("period")))
	if err != nil {
		return nil, false, c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load evaluations",
		})
	}
	return rows, true, nil
}
