package services

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"github.com/tidwall/gjson"

	"hrassist/resume-screener/internal/models"
)

// requiredResponseKeys are validated before any judgement is accepted. A
// response missing one of these is rejected as a whole.
var requiredResponseKeys = []string{
	"decision",
	"justification",
	"match_score",
	"years_of_experience",
	"key_matches",
	"missing_requirements",
	"experience_analysis",
}

type EvaluatorService interface {
	Evaluate(ctx context.Context, resumeText string, job *models.JobDescription, criteria *models.CriteriaInput) (*models.EvaluationResult, error)
	ExtractCandidateInfo(ctx context.Context, resumeText string) (models.CandidateInfo, error)
}

type evaluatorService struct {
	llm           LLMClient
	promptBuilder *PromptBuilder
	maxRetries    int
}

func NewEvaluatorService(llm LLMClient, maxRetries int) EvaluatorService {
	return &evaluatorService{
		llm:           llm,
		promptBuilder: NewPromptBuilder(),
		maxRetries:    maxRetries,
	}
}

// Evaluate runs the screening call and validates the response against the
// prompt contract. Candidate identity is extracted in a second call; its
// failure degrades to placeholders instead of failing the evaluation.
func (e *evaluatorService) Evaluate(ctx context.Context, resumeText string, job *models.JobDescription, criteria *models.CriteriaInput) (*models.EvaluationResult, error) {
	prompt := e.promptBuilder.BuildEvaluationPrompt(resumeText, job.Title, job.Description, criteria)

	response, err := e.llm.GenerateTextWithRetry(ctx, prompt, 0.3, e.maxRetries)
	if err != nil {
		return nil, err
	}

	result, err := parseEvaluationResponse(response)
	if err != nil {
		return nil, err
	}

	info, err := e.ExtractCandidateInfo(ctx, resumeText)
	if err != nil {
		log.Printf("⚠️ Candidate info extraction failed: %v", err)
		info = models.UnknownCandidate()
	}
	result.CandidateInfo = info
	result.Raw = mergeCandidateInfo(result.Raw, info)

	return result, nil
}

func (e *evaluatorService) ExtractCandidateInfo(ctx context.Context, resumeText string) (models.CandidateInfo, error) {
	prompt := e.promptBuilder.BuildCandidateInfoPrompt(resumeText)

	response, err := e.llm.GenerateTextWithRetry(ctx, prompt, 0.0, e.maxRetries)
	if err != nil {
		return models.UnknownCandidate(), err
	}

	jsonStr := extractJSON(response)
	if !gjson.Valid(jsonStr) {
		return models.UnknownCandidate(), &models.ResponseParseError{Raw: response}
	}

	info := models.UnknownCandidate()
	parsed := gjson.Parse(jsonStr)
	if v := parsed.Get("name").String(); v != "" {
		info.Name = v
	}
	if v := parsed.Get("email").String(); v != "" {
		info.Email = v
	}
	if v := parsed.Get("phone").String(); v != "" {
		info.Phone = v
	}
	if v := parsed.Get("location").String(); v != "" {
		info.Location = v
	}
	if v := parsed.Get("linkedin").String(); v != "" {
		info.LinkedIn = v
	}
	return info, nil
}

func parseEvaluationResponse(response string) (*models.EvaluationResult, error) {
	jsonStr := extractJSON(response)
	if !gjson.Valid(jsonStr) || !strings.HasPrefix(strings.TrimSpace(jsonStr), "{") {
		return nil, &models.ResponseParseError{Raw: response}
	}

	parsed := gjson.Parse(jsonStr)

	var missing []string
	for _, key := range requiredResponseKeys {
		if !parsed.Get(key).Exists() {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, &models.SchemaValidationError{Missing: missing}
	}

	decision := strings.ToLower(strings.TrimSpace(parsed.Get("decision").String()))
	if decision != models.OutcomeShortlist && decision != models.OutcomeReject {
		return nil, &models.SchemaValidationError{Missing: []string{"decision"}}
	}

	exp := parsed.Get("years_of_experience")
	result := &models.EvaluationResult{
		Decision:        decision,
		Justification:   parsed.Get("justification").String(),
		MatchScore:      parsed.Get("match_score").Float(),
		ConfidenceScore: parsed.Get("confidence_score").Float(),
		YearsOfExperience: models.ExperienceBlock{
			Total:            exp.Get("total").Float(),
			Relevant:         exp.Get("relevant").Float(),
			Required:         exp.Get("required").Float(),
			MeetsRequirement: exp.Get("meets_requirement").Bool(),
			Details:          exp.Get("details").String(),
			QualityScore:     exp.Get("quality_score").Float(),
		},
		KeyMatches:          normalizeRequirementMap(parsed.Get("key_matches")),
		MissingRequirements: normalizeRequirementMap(parsed.Get("missing_requirements")),
		ExperienceAnalysis:  parsed.Get("experience_analysis").String(),
		Raw:                 json.RawMessage(jsonStr),
	}

	return result, nil
}

// normalizeRequirementMap folds the two shapes the model produces into the
// canonical category->list map. Flat arrays land under "general"; map values
// that are single strings become one-element lists.
func normalizeRequirementMap(value gjson.Result) map[string][]string {
	out := map[string][]string{}

	if value.IsArray() {
		var general []string
		value.ForEach(func(_, item gjson.Result) bool {
			if s := item.String(); s != "" {
				general = append(general, s)
			}
			return true
		})
		if len(general) > 0 {
			out["general"] = general
		}
		return out
	}

	if value.IsObject() {
		value.ForEach(func(key, item gjson.Result) bool {
			var items []string
			if item.IsArray() {
				item.ForEach(func(_, entry gjson.Result) bool {
					if s := entry.String(); s != "" {
						items = append(items, s)
					}
					return true
				})
			} else if s := item.String(); s != "" {
				items = append(items, s)
			}
			if len(items) > 0 {
				out[key.String()] = items
			}
			return true
		})
	}

	return out
}

// mergeCandidateInfo folds the identity block into the raw envelope so the
// stored payload is self-contained.
func mergeCandidateInfo(raw json.RawMessage, info models.CandidateInfo) json.RawMessage {
	var envelope map[string]interface{}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return raw
	}
	envelope["candidate_info"] = info
	merged, err := json.Marshal(envelope)
	if err != nil {
		return raw
	}
	return merged
}

// extractJSON strips markdown fences and trims to the outermost JSON value.
func extractJSON(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	startObj := strings.Index(text, "{")
	endObj := strings.LastIndex(text, "}")
	if startObj != -1 && endObj != -1 && endObj > startObj {
		return text[startObj : endObj+1]
	}

	startArr := strings.Index(text, "[")
	endArr := strings.LastIndex(text, "]")
	if startArr != -1 && endArr != -1 && endArr > startArr {
		return text[startArr : endArr+1]
	}

	return text
}
