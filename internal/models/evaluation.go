package models

import (
	"encoding/json"
	"time"
)

const (
	OutcomeShortlist = "shortlist"
	OutcomeReject    = "reject"
)

// NotProvided is the sentinel for identity fields the model could not
// extract.
const NotProvided = "Not provided"

// Evaluation is the persisted outcome of scoring one resume against one
// job. Rows are written once and never updated; the only delete path is the
// bulk clear.
type Evaluation struct {
	ID                         uint      `gorm:"primaryKey" json:"id"`
	JobID                      uint      `gorm:"not null;index" json:"job_id"`
	ResumeName                 string    `gorm:"type:text;not null" json:"resume_name"`
	CandidateName              string    `gorm:"type:text" json:"candidate_name"`
	CandidateEmail             string    `gorm:"type:text" json:"candidate_email"`
	CandidatePhone             string    `gorm:"type:text" json:"candidate_phone"`
	CandidateLocation          string    `gorm:"type:text" json:"candidate_location"`
	LinkedinProfile            string    `gorm:"type:text" json:"linkedin_profile"`
	Result                     string    `gorm:"type:text;not null" json:"result"`
	Justification              string    `gorm:"type:text;not null" json:"justification"`
	MatchScore                 float64   `json:"match_score"`
	ConfidenceScore            float64   `json:"confidence_score"`
	YearsExperienceTotal       float64   `json:"years_experience_total"`
	YearsExperienceRelevant    float64   `json:"years_experience_relevant"`
	YearsExperienceRequired    float64   `json:"years_experience_required"`
	MeetsExperienceRequirement bool      `json:"meets_experience_requirement"`
	KeyMatches                 string    `gorm:"type:text" json:"-"`
	MissingRequirements        string    `gorm:"type:text" json:"-"`
	ExperienceAnalysis         string    `gorm:"type:text" json:"experience_analysis"`
	EvaluationData             string    `gorm:"type:text" json:"-"`
	EvaluationDate             time.Time `gorm:"autoCreateTime;index" json:"evaluation_date"`
	ResumeFileData             []byte    `gorm:"type:bytea" json:"-"`
	ResumeFileType             string    `gorm:"type:text" json:"resume_file_type"`
}

func (Evaluation) TableName() string {
	return "evaluations"
}

// CandidateInfo is the identity block extracted by the secondary model
// call. All fields fall back to NotProvided.
type CandidateInfo struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	LinkedIn string `json:"linkedin"`
}

// UnknownCandidate is what a failed identity extraction collapses to.
func UnknownCandidate() CandidateInfo {
	return CandidateInfo{
		Name:     NotProvided,
		Email:    NotProvided,
		Phone:    NotProvided,
		Location: NotProvided,
		LinkedIn: NotProvided,
	}
}

// ExperienceBlock is the structured years-of-experience judgement.
type ExperienceBlock struct {
	Total            float64 `json:"total"`
	Relevant         float64 `json:"relevant"`
	Required         float64 `json:"required"`
	MeetsRequirement bool    `json:"meets_requirement"`
	Details          string  `json:"details"`
	QualityScore     float64 `json:"quality_score"`
}

// EvaluationResult is the typed subset of the model judgement plus the
// verbatim raw envelope. Requirement maps always use the canonical
// category->list shape; flat lists from older prompt versions are folded
// under "general" on parse.
type EvaluationResult struct {
	Decision            string              `json:"decision"`
	Justification       string              `json:"justification"`
	MatchScore          float64             `json:"match_score"`
	ConfidenceScore     float64             `json:"confidence_score"`
	YearsOfExperience   ExperienceBlock     `json:"years_of_experience"`
	KeyMatches          map[string][]string `json:"key_matches"`
	MissingRequirements map[string][]string `json:"missing_requirements"`
	ExperienceAnalysis  string              `json:"experience_analysis"`
	CandidateInfo       CandidateInfo       `json:"candidate_info"`
	Raw                 json.RawMessage     `json:"-"`
}

// EvaluationRow is the joined listing shape used by the period and
// date-range queries and by the analytics aggregator.
type EvaluationRow struct {
	ID             uint      `json:"id"`
	JobID          uint      `json:"job_id"`
	ResumeName     string    `json:"resume_name"`
	Result         string    `json:"result"`
	Justification  string    `json:"justification"`
	MatchScore     float64   `json:"match_score"`
	EvaluationDate time.Time `json:"evaluation_date"`
	JobTitle       string    `json:"job_title"`
}

// EvaluationDetail is one row fully decoded.
type EvaluationDetail struct {
	ID                         uint                `json:"id"`
	JobID                      uint                `json:"job_id"`
	JobTitle                   string              `json:"job_title"`
	ResumeName                 string              `json:"resume_name"`
	CandidateInfo              CandidateInfo       `json:"candidate_info"`
	Result                     string              `json:"result"`
	Justification              string              `json:"justification"`
	MatchScore                 float64             `json:"match_score"`
	ConfidenceScore            float64             `json:"confidence_score"`
	YearsExperienceTotal       float64             `json:"years_experience_total"`
	YearsExperienceRelevant    float64             `json:"years_experience_relevant"`
	YearsExperienceRequired    float64             `json:"years_experience_required"`
	MeetsExperienceRequirement bool                `json:"meets_experience_requirement"`
	KeyMatches                 map[string][]string `json:"key_matches"`
	MissingRequirements        map[string][]string `json:"missing_requirements"`
	ExperienceAnalysis         string              `json:"experience_analysis"`
	EvaluationData             json.RawMessage     `json:"evaluation_data"`
	EvaluationDate             time.Time           `json:"evaluation_date"`
	ResumeFileType             string              `json:"resume_file_type"`
}

// ResumeFile is the stored original upload.
type ResumeFile struct {
	Name        string
	Data        []byte
	ContentType string
}

// Period is a relative listing window.
type Period string

const (
	PeriodWeek    Period = "week"
	PeriodMonth   Period = "month"
	PeriodQuarter Period = "quarter"
	PeriodYear    Period = "year"
)

// Days maps a period onto its window size. Unknown values fall back to a
// month, matching the original dashboard default.
func (p Period) Days() int {
	switch p {
	case PeriodWeek:
		return 7
	case PeriodMonth:
		return 30
	case PeriodQuarter:
		return 90
	case PeriodYear:
		return 365
	default:
		return 30
	}
}
