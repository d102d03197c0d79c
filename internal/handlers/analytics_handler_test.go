package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrassist/resume-screener/internal/models"
	"hrassist/resume-screener/internal/services"
)

func newAnalyticsApp(jobRepo *fakeJobRepo, evalRepo *fakeEvalRepo) *fiber.App {
	app := fiber.New()
	h := NewAnalyticsHandler(jobRepo, evalRepo, services.NewAnalyticsService())
	app.Get("/dashboard", h.HandleDashboard)
	app.Get("/analytics/stats", h.HandleStats)
	app.Get("/analytics/trend", h.HandleTrend)
	app.Get("/analytics/jobs", h.HandleJobDistribution)
	return app
}

func TestDashboard(t *testing.T) {
	jobRepo := newFakeJobRepo()
	jobRepo.CreateWithCriteria(&models.JobDescription{Title: "a", Description: "b"}, nil)
	jobRepo.CreateWithCriteria(&models.JobDescription{Title: "c", Description: "d"}, nil)
	jobRepo.SoftDelete(2)

	evalRepo := newFakeEvalRepo()
	evalRepo.Insert(&models.Evaluation{JobID: 1, ResumeName: "a.txt", Result: models.OutcomeShortlist})
	evalRepo.Insert(&models.Evaluation{JobID: 1, ResumeName: "b.txt", Result: models.OutcomeReject})
	evalRepo.Insert(&models.Evaluation{JobID: 1, ResumeName: "c.txt", Result: models.OutcomeReject})

	app := newAnalyticsApp(jobRepo, evalRepo)

	resp, err := app.Test(httptest.NewRequest("GET", "/dashboard", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var dashboard models.DashboardResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&dashboard))
	assert.Equal(t, int64(1), dashboard.ActiveJobs)
	assert.Equal(t, int64(3), dashboard.EvaluationsToday)
	assert.Equal(t, int64(1), dashboard.Shortlisted)
	assert.Equal(t, int64(2), dashboard.Rejected)
}

func TestStatsEndpoint(t *testing.T) {
	evalRepo := newFakeEvalRepo()
	evalRepo.Insert(&models.Evaluation{JobID: 1, ResumeName: "a.txt", Result: models.OutcomeShortlist})
	evalRepo.Insert(&models.Evaluation{JobID: 1, ResumeName: "b.txt", Result: models.OutcomeReject})

	app := newAnalyticsApp(newFakeJobRepo(), evalRepo)

	resp, err := app.Test(httptest.NewRequest("GET", "/analytics/stats?period=week", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var stats models.StatsResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&stats))
	assert.Equal(t, 2, stats.TotalEvaluations)
	assert.InDelta(t, 50.0, stats.RejectionRate, 0.001)
}
