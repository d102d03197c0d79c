package services

import (
	"fmt"
	"sort"
	"strings"

	"hrassist/resume-screener/internal/models"
)

// ReportRenderer produces the downloadable plain-text screening report for
// one evaluation.
type ReportRenderer struct{}

func NewReportRenderer() *ReportRenderer {
	return &ReportRenderer{}
}

func (r *ReportRenderer) RenderText(detail *models.EvaluationDetail) string {
	var b strings.Builder

	writeRule := func() { b.WriteString(strings.Repeat("=", 60) + "\n") }

	writeRule()
	b.WriteString("CANDIDATE EVALUATION REPORT\n")
	writeRule()
	fmt.Fprintf(&b, "Position:        %s\n", valueOr(detail.JobTitle))
	fmt.Fprintf(&b, "Resume:          %s\n", valueOr(detail.ResumeName))
	fmt.Fprintf(&b, "Evaluated:       %s\n", detail.EvaluationDate.Format("2006-01-02 15:04"))
	b.WriteString("\n")

	b.WriteString("CANDIDATE\n")
	b.WriteString(strings.Repeat("-", 60) + "\n")
	fmt.Fprintf(&b, "Name:            %s\n", valueOr(detail.CandidateInfo.Name))
	fmt.Fprintf(&b, "Email:           %s\n", valueOr(detail.CandidateInfo.Email))
	fmt.Fprintf(&b, "Phone:           %s\n", valueOr(detail.CandidateInfo.Phone))
	fmt.Fprintf(&b, "Location:        %s\n", valueOr(detail.CandidateInfo.Location))
	fmt.Fprintf(&b, "LinkedIn:        %s\n", valueOr(detail.CandidateInfo.LinkedIn))
	b.WriteString("\n")

	b.WriteString("DECISION\n")
	b.WriteString(strings.Repeat("-", 60) + "\n")
	fmt.Fprintf(&b, "Result:          %s\n", strings.ToUpper(detail.Result))
	fmt.Fprintf(&b, "Match score:     %.0f%%\n", detail.MatchScore*100)
	fmt.Fprintf(&b, "Confidence:      %.0f%%\n", detail.ConfidenceScore*100)
	fmt.Fprintf(&b, "Justification:   %s\n", valueOr(detail.Justification))
	b.WriteString("\n")

	b.WriteString("EXPERIENCE\n")
	b.WriteString(strings.Repeat("-", 60) + "\n")
	fmt.Fprintf(&b, "Total years:     %.1f\n", detail.YearsExperienceTotal)
	fmt.Fprintf(&b, "Relevant years:  %.1f\n", detail.YearsExperienceRelevant)
	fmt.Fprintf(&b, "Required years:  %.1f\n", detail.YearsExperienceRequired)
	fmt.Fprintf(&b, "Meets required:  %s\n", yesNo(detail.MeetsExperienceRequirement))
	b.WriteString("\n")

	writeRequirementSection(&b, "KEY MATCHES", detail.KeyMatches)
	writeRequirementSection(&b, "MISSING REQUIREMENTS", detail.MissingRequirements)

	b.WriteString("EXPERIENCE ANALYSIS\n")
	b.WriteString(strings.Repeat("-", 60) + "\n")
	b.WriteString(valueOr(detail.ExperienceAnalysis) + "\n")

	return b.String()
}

func writeRequirementSection(b *strings.Builder, title string, categories map[string][]string) {
	b.WriteString(title + "\n")
	b.WriteString(strings.Repeat("-", 60) + "\n")

	if len(categories) == 0 {
		b.WriteString("None recorded\n\n")
		return
	}

	keys := make([]string, 0, len(categories))
	for key := range categories {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		fmt.Fprintf(b, "%s:\n", titleCase(key))
		for _, item := range categories[key] {
			fmt.Fprintf(b, "  - %s\n", item)
		}
	}
	b.WriteString("\n")
}

func valueOr(s string) string {
	if strings.TrimSpace(s) == "" {
		return models.NotProvided
	}
	return s
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

func titleCase(key string) string {
	words := strings.Split(strings.ReplaceAll(key, "_", " "), " ")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
