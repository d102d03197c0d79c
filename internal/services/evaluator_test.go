package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrassist/resume-screener/internal/models"
)

// scriptedLLM replays queued responses in call order. An entry with a
// non-nil error simulates a provider failure.
type scriptedLLM struct {
	responses []string
	errs      []error
	calls     int
}

func (s *scriptedLLM) GenerateText(ctx context.Context, prompt string, temperature float32) (string, error) {
	return s.GenerateTextWithRetry(ctx, prompt, temperature, 1)
}

func (s *scriptedLLM) GenerateTextWithRetry(ctx context.Context, prompt string, temperature float32, maxRetries int) (string, error) {
	i := s.calls
	s.calls++
	if i < len(s.errs) && s.errs[i] != nil {
		return "", s.errs[i]
	}
	if i < len(s.responses) {
		return s.responses[i], nil
	}
	return "", errors.New("no scripted response")
}

const validEvaluationJSON = `{
  "decision": "shortlist",
  "justification": "Strong backend background.",
  "match_score": 0.82,
  "confidence_score": 0.9,
  "years_of_experience": {
    "total": 8,
    "relevant": 6,
    "required": 5,
    "meets_requirement": true,
    "details": "Six years on Go services.",
    "quality_score": 0.8
  },
  "key_matches": {"technical_skills": ["Go", "PostgreSQL"]},
  "missing_requirements": {"technical_skills": ["Kubernetes"]},
  "experience_analysis": "Steady progression into senior roles."
}`

const validCandidateJSON = `{
  "name": "Jane Doe",
  "email": "jane@example.com",
  "phone": "Not provided",
  "location": "Berlin",
  "linkedin": "linkedin.com/in/janedoe"
}`

var testJob = &models.JobDescription{ID: 1, Title: "Backend Engineer", Description: "Build services."}

func TestEvaluateSuccess(t *testing.T) {
	llm := &scriptedLLM{responses: []string{validEvaluationJSON, validCandidateJSON}}
	evaluator := NewEvaluatorService(llm, 3)

	result, err := evaluator.Evaluate(context.Background(), "resume text", testJob, nil)
	require.NoError(t, err)

	assert.Equal(t, models.OutcomeShortlist, result.Decision)
	assert.InDelta(t, 0.82, result.MatchScore, 0.001)
	assert.True(t, result.YearsOfExperience.MeetsRequirement)
	assert.Equal(t, []string{"Go", "PostgreSQL"}, result.KeyMatches["technical_skills"])
	assert.Equal(t, []string{"Kubernetes"}, result.MissingRequirements["technical_skills"])
	assert.Equal(t, "Jane Doe", result.CandidateInfo.Name)
	assert.Equal(t, "Berlin", result.CandidateInfo.Location)
	assert.NotEmpty(t, result.Raw)
	assert.Contains(t, string(result.Raw), "candidate_info")
}

func TestEvaluateMarkdownFencedResponse(t *testing.T) {
	llm := &scriptedLLM{responses: []string{
		"```json\n" + validEvaluationJSON + "\n```",
		validCandidateJSON,
	}}
	evaluator := NewEvaluatorService(llm, 3)

	result, err := evaluator.Evaluate(context.Background(), "resume text", testJob, nil)
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeShortlist, result.Decision)
}

func TestEvaluateFlatListNormalization(t *testing.T) {
	response := `{
		"decision": "reject",
		"justification": "Too junior.",
		"match_score": 0.3,
		"confidence_score": 0.7,
		"years_of_experience": {"total": 1, "relevant": 1, "required": 5, "meets_requirement": false},
		"key_matches": ["Python"],
		"missing_requirements": ["Go", "PostgreSQL"],
		"experience_analysis": "Early career."
	}`
	llm := &scriptedLLM{responses: []string{response, validCandidateJSON}}
	evaluator := NewEvaluatorService(llm, 3)

	result, err := evaluator.Evaluate(context.Background(), "resume text", testJob, nil)
	require.NoError(t, err)

	assert.Equal(t, models.OutcomeReject, result.Decision)
	assert.Equal(t, []string{"Python"}, result.KeyMatches["general"])
	assert.Equal(t, []string{"Go", "PostgreSQL"}, result.MissingRequirements["general"])
}

func TestEvaluateMissingKeys(t *testing.T) {
	response := `{"justification": "no decision present", "match_score": 0.5}`
	llm := &scriptedLLM{responses: []string{response}}
	evaluator := NewEvaluatorService(llm, 3)

	_, err := evaluator.Evaluate(context.Background(), "resume text", testJob, nil)
	require.Error(t, err)

	var schema *models.SchemaValidationError
	require.ErrorAs(t, err, &schema)
	assert.Contains(t, schema.Missing, "decision")
	assert.Contains(t, schema.Missing, "years_of_experience")
}

func TestEvaluateInvalidDecisionValue(t *testing.T) {
	response := `{
		"decision": "maybe",
		"justification": "x",
		"match_score": 0.5,
		"years_of_experience": {},
		"key_matches": {},
		"missing_requirements": {},
		"experience_analysis": "x"
	}`
	llm := &scriptedLLM{responses: []string{response}}
	evaluator := NewEvaluatorService(llm, 3)

	_, err := evaluator.Evaluate(context.Background(), "resume text", testJob, nil)
	require.Error(t, err)

	var schema *models.SchemaValidationError
	assert.ErrorAs(t, err, &schema)
}

func TestEvaluateNonJSONResponse(t *testing.T) {
	llm := &scriptedLLM{responses: []string{"I cannot evaluate this resume."}}
	evaluator := NewEvaluatorService(llm, 3)

	_, err := evaluator.Evaluate(context.Background(), "resume text", testJob, nil)
	require.Error(t, err)

	var parse *models.ResponseParseError
	assert.ErrorAs(t, err, &parse)
}

func TestEvaluateCandidateInfoFailureIsNonFatal(t *testing.T) {
	llm := &scriptedLLM{
		responses: []string{validEvaluationJSON, ""},
		errs:      []error{nil, errors.New("provider timeout")},
	}
	evaluator := NewEvaluatorService(llm, 3)

	result, err := evaluator.Evaluate(context.Background(), "resume text", testJob, nil)
	require.NoError(t, err)

	assert.Equal(t, models.UnknownCandidate(), result.CandidateInfo)
	assert.Equal(t, models.OutcomeShortlist, result.Decision)
}

func TestExtractCandidateInfoPartial(t *testing.T) {
	llm := &scriptedLLM{responses: []string{`{"name": "Jane Doe"}`}}
	evaluator := NewEvaluatorService(llm, 3)

	info, err := evaluator.ExtractCandidateInfo(context.Background(), "resume text")
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", info.Name)
	assert.Equal(t, models.NotProvided, info.Email)
	assert.Equal(t, models.NotProvided, info.LinkedIn)
}
