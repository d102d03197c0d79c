package services

import (
	"sort"

	"hrassist/resume-screener/internal/models"
)

// AnalyticsService aggregates listing rows fetched for a window. All
// grouping happens in memory; the repository only runs the windowed select.
type AnalyticsService interface {
	Stats(rows []models.EvaluationRow) models.StatsResponse
	TrendSeries(rows []models.EvaluationRow) []models.TrendPoint
	JobDistribution(rows []models.EvaluationRow) []models.JobBreakdown
}

type analyticsService struct{}

func NewAnalyticsService() AnalyticsService {
	return &analyticsService{}
}

func (a *analyticsService) Stats(rows []models.EvaluationRow) models.StatsResponse {
	stats := models.StatsResponse{TotalEvaluations: len(rows)}
	for _, row := range rows {
		switch row.Result {
		case models.OutcomeShortlist:
			stats.Shortlisted++
		case models.OutcomeReject:
			stats.Rejected++
		}
	}
	if stats.TotalEvaluations > 0 {
		stats.RejectionRate = float64(stats.Rejected) / float64(stats.TotalEvaluations) * 100
	}
	return stats
}

// TrendSeries buckets outcomes per calendar day, oldest first. Days with no
// evaluations are absent rather than zero-filled.
func (a *analyticsService) TrendSeries(rows []models.EvaluationRow) []models.TrendPoint {
	byDay := map[string]*models.TrendPoint{}
	for _, row := range rows {
		day := row.EvaluationDate.Format("2006-01-02")
		point, ok := byDay[day]
		if !ok {
			point = &models.TrendPoint{Date: day}
			byDay[day] = point
		}
		switch row.Result {
		case models.OutcomeShortlist:
			point.Shortlisted++
		case models.OutcomeReject:
			point.Rejected++
		}
	}

	series := make([]models.TrendPoint, 0, len(byDay))
	for _, point := range byDay {
		series = append(series, *point)
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Date < series[j].Date })
	return series
}

// JobDistribution groups outcomes per job title, busiest job first.
func (a *analyticsService) JobDistribution(rows []models.EvaluationRow) []models.JobBreakdown {
	byJob := map[string]*models.JobBreakdown{}
	var order []string
	for _, row := range rows {
		breakdown, ok := byJob[row.JobTitle]
		if !ok {
			breakdown = &models.JobBreakdown{JobTitle: row.JobTitle}
			byJob[row.JobTitle] = breakdown
			order = append(order, row.JobTitle)
		}
		switch row.Result {
		case models.OutcomeShortlist:
			breakdown.Shortlisted++
		case models.OutcomeReject:
			breakdown.Rejected++
		}
	}

	result := make([]models.JobBreakdown, 0, len(order))
	for _, title := range order {
		result = append(result, *byJob[title])
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Shortlisted+result[i].Rejected > result[j].Shortlisted+result[j].Rejected
	})
	return result
}
