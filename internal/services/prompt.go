package services

import (
	"fmt"
	"strings"

	"hrassist/resume-screener/internal/models"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildEvaluationPrompt creates the screening prompt. The response contract
// is strict JSON; the evaluator validates the keys listed here before
// anything is persisted.
func (pb *PromptBuilder) BuildEvaluationPrompt(resumeText, jobTitle, jobDescription string, criteria *models.CriteriaInput) string {
	return fmt.Sprintf(`You are an expert HR recruiter screening a candidate's resume for a %s position.

JOB DESCRIPTION:
%s

%s
CANDIDATE RESUME:
%s

Your task is to decide whether this candidate should be shortlisted for an interview or rejected, strictly against the job description and criteria above.

Return your response as JSON with exactly this structure and nothing else:
{
  "decision": "shortlist" or "reject",
  "justification": "<2-4 sentences explaining the decision>",
  "match_score": <decimal 0-1, overall fit against the requirements>,
  "confidence_score": <decimal 0-1, your confidence in this assessment>,
  "years_of_experience": {
    "total": <total professional years, decimal>,
    "relevant": <years relevant to this role, decimal>,
    "required": <years the role requires, decimal, 0 if unspecified>,
    "meets_requirement": <true or false>,
    "details": "<1-2 sentences on how experience was counted>",
    "quality_score": <decimal 0-1, depth and relevance of the experience>
  },
  "key_matches": {"<category>": ["<matched requirement>", ...], ...},
  "missing_requirements": {"<category>": ["<missing requirement>", ...], ...},
  "experience_analysis": "<3-5 sentences analysing the career trajectory>"
}

Use categories such as "technical_skills", "experience", "education" for key_matches and missing_requirements. Be objective; cite concrete evidence from the resume.`,
		jobTitle, jobDescription, renderCriteria(criteria), resumeText)
}

// BuildCandidateInfoPrompt extracts contact details. Absent fields must come
// back as the literal placeholder so downstream rendering stays uniform.
func (pb *PromptBuilder) BuildCandidateInfoPrompt(resumeText string) string {
	return fmt.Sprintf(`Extract the candidate's contact information from the resume below.

RESUME:
%s

Return JSON with exactly this structure and nothing else:
{
  "name": "<full name>",
  "email": "<email address>",
  "phone": "<phone number>",
  "location": "<city/country>",
  "linkedin": "<linkedin profile URL>"
}

If a field cannot be found, use the string "%s" for it. Do not guess.`,
		resumeText, models.NotProvided)
}

func renderCriteria(criteria *models.CriteriaInput) string {
	if criteria == nil {
		return ""
	}

	var lines []string
	if len(criteria.RequiredSkills) > 0 {
		lines = append(lines, "- Required skills: "+strings.Join(criteria.RequiredSkills, ", "))
	}
	if len(criteria.PreferredSkills) > 0 {
		lines = append(lines, "- Preferred skills: "+strings.Join(criteria.PreferredSkills, ", "))
	}
	if criteria.MinYearsExperience > 0 {
		lines = append(lines, fmt.Sprintf("- Minimum years of experience: %d", criteria.MinYearsExperience))
	}
	if criteria.EducationRequirements != "" {
		lines = append(lines, "- Education requirements: "+criteria.EducationRequirements)
	}
	if criteria.CompanyBackgroundRequirements != "" {
		lines = append(lines, "- Company background: "+criteria.CompanyBackgroundRequirements)
	}
	if criteria.DomainExperienceRequirements != "" {
		lines = append(lines, "- Domain experience: "+criteria.DomainExperienceRequirements)
	}
	if criteria.AdditionalInstructions != "" {
		lines = append(lines, "- Additional instructions: "+criteria.AdditionalInstructions)
	}
	if len(lines) == 0 {
		return ""
	}

	return "EVALUATION CRITERIA:\n" + strings.Join(lines, "\n") + "\n\n"
}
