package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"hrassist/resume-screener/internal/models"
)

func TestRenderTextFullDetail(t *testing.T) {
	renderer := NewReportRenderer()

	detail := &models.EvaluationDetail{
		ID:       3,
		JobTitle: "Backend Engineer",
		CandidateInfo: models.CandidateInfo{
			Name:     "Jane Doe",
			Email:    "jane@example.com",
			Phone:    models.NotProvided,
			Location: "Berlin",
			LinkedIn: "linkedin.com/in/janedoe",
		},
		ResumeName:                 "jane_doe.pdf",
		Result:                     models.OutcomeShortlist,
		Justification:              "Strong match.",
		MatchScore:                 0.82,
		ConfidenceScore:            0.9,
		YearsExperienceTotal:       8,
		YearsExperienceRelevant:    6,
		YearsExperienceRequired:    5,
		MeetsExperienceRequirement: true,
		KeyMatches:                 map[string][]string{"technical_skills": {"Go", "PostgreSQL"}},
		MissingRequirements:        map[string][]string{"technical_skills": {"Kubernetes"}},
		ExperienceAnalysis:         "Steady senior trajectory.",
		EvaluationDate:             time.Date(2026, 8, 20, 14, 30, 0, 0, time.UTC),
	}

	report := renderer.RenderText(detail)

	assert.Contains(t, report, "CANDIDATE EVALUATION REPORT")
	assert.Contains(t, report, "Position:        Backend Engineer")
	assert.Contains(t, report, "Name:            Jane Doe")
	assert.Contains(t, report, "Phone:           Not provided")
	assert.Contains(t, report, "Result:          SHORTLIST")
	assert.Contains(t, report, "Match score:     82%")
	assert.Contains(t, report, "Meets required:  Yes")
	assert.Contains(t, report, "Technical Skills:")
	assert.Contains(t, report, "- Go")
	assert.Contains(t, report, "- Kubernetes")
	assert.Contains(t, report, "Steady senior trajectory.")
}

func TestRenderTextEmptyFieldsFallBack(t *testing.T) {
	renderer := NewReportRenderer()

	report := renderer.RenderText(&models.EvaluationDetail{
		Result:         models.OutcomeReject,
		EvaluationDate: time.Now(),
	})

	assert.Contains(t, report, "Name:            Not provided")
	assert.Contains(t, report, "Justification:   Not provided")
	assert.Contains(t, report, "None recorded")
	assert.Contains(t, report, "Meets required:  No")
}
