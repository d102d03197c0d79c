package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrassist/resume-screener/internal/models"
)

func day(offset int) time.Time {
	return time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
}

func sampleRows() []models.EvaluationRow {
	return []models.EvaluationRow{
		{ID: 1, JobTitle: "Backend Engineer", Result: models.OutcomeShortlist, EvaluationDate: day(0)},
		{ID: 2, JobTitle: "Backend Engineer", Result: models.OutcomeReject, EvaluationDate: day(0)},
		{ID: 3, JobTitle: "Backend Engineer", Result: models.OutcomeReject, EvaluationDate: day(1)},
		{ID: 4, JobTitle: "Data Analyst", Result: models.OutcomeShortlist, EvaluationDate: day(1)},
	}
}

func TestStats(t *testing.T) {
	analytics := NewAnalyticsService()

	stats := analytics.Stats(sampleRows())
	assert.Equal(t, 4, stats.TotalEvaluations)
	assert.Equal(t, 2, stats.Shortlisted)
	assert.Equal(t, 2, stats.Rejected)
	assert.InDelta(t, 50.0, stats.RejectionRate, 0.001)
}

func TestStatsEmpty(t *testing.T) {
	analytics := NewAnalyticsService()

	stats := analytics.Stats(nil)
	assert.Equal(t, 0, stats.TotalEvaluations)
	assert.Zero(t, stats.RejectionRate)
}

func TestTrendSeries(t *testing.T) {
	analytics := NewAnalyticsService()

	series := analytics.TrendSeries(sampleRows())
	require.Len(t, series, 2)

	assert.Equal(t, "2026-08-01", series[0].Date)
	assert.Equal(t, 1, series[0].Shortlisted)
	assert.Equal(t, 1, series[0].Rejected)

	assert.Equal(t, "2026-08-02", series[1].Date)
	assert.Equal(t, 1, series[1].Shortlisted)
	assert.Equal(t, 1, series[1].Rejected)
}

func TestJobDistribution(t *testing.T) {
	analytics := NewAnalyticsService()

	jobs := analytics.JobDistribution(sampleRows())
	require.Len(t, jobs, 2)

	// Busiest job first.
	assert.Equal(t, "Backend Engineer", jobs[0].JobTitle)
	assert.Equal(t, 1, jobs[0].Shortlisted)
	assert.Equal(t, 2, jobs[0].Rejected)

	assert.Equal(t, "Data Analyst", jobs[1].JobTitle)
	assert.Equal(t, 1, jobs[1].Shortlisted)
}
