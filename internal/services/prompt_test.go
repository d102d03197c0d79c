package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"hrassist/resume-screener/internal/models"
)

func TestBuildEvaluationPromptWithCriteria(t *testing.T) {
	pb := NewPromptBuilder()

	criteria := &models.CriteriaInput{
		MinYearsExperience:    5,
		RequiredSkills:        []string{"Go", "PostgreSQL"},
		PreferredSkills:       []string{"Kubernetes"},
		EducationRequirements: "Bachelor's degree",
	}

	prompt := pb.BuildEvaluationPrompt("resume body", "Backend Engineer", "Build APIs.", criteria)

	assert.Contains(t, prompt, "Backend Engineer")
	assert.Contains(t, prompt, "Build APIs.")
	assert.Contains(t, prompt, "resume body")
	assert.Contains(t, prompt, "EVALUATION CRITERIA:")
	assert.Contains(t, prompt, "Required skills: Go, PostgreSQL")
	assert.Contains(t, prompt, "Preferred skills: Kubernetes")
	assert.Contains(t, prompt, "Minimum years of experience: 5")
	assert.Contains(t, prompt, `"decision": "shortlist" or "reject"`)
	assert.Contains(t, prompt, "missing_requirements")
}

func TestBuildEvaluationPromptWithoutCriteria(t *testing.T) {
	pb := NewPromptBuilder()

	prompt := pb.BuildEvaluationPrompt("resume body", "Backend Engineer", "Build APIs.", nil)
	assert.NotContains(t, prompt, "EVALUATION CRITERIA:")
}

func TestBuildCandidateInfoPrompt(t *testing.T) {
	pb := NewPromptBuilder()

	prompt := pb.BuildCandidateInfoPrompt("resume body")
	assert.Contains(t, prompt, "resume body")
	assert.Contains(t, prompt, models.NotProvided)
	assert.Contains(t, prompt, `"linkedin"`)
}
