package models

import (
	"encoding/json"
	"time"
)

// JobDescription is a posting that resumes are screened against. Rows are
// never hard-deleted; removal flips the active flag.
type JobDescription struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"type:text;not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	DateCreated time.Time `gorm:"autoCreateTime" json:"date_created"`
	Active      bool      `gorm:"default:true" json:"active"`
}

func (JobDescription) TableName() string {
	return "job_descriptions"
}

// EvaluationCriteria holds the optional structured constraints attached 1:1
// to a job. Skill lists are stored JSON-encoded, matching the text columns
// of the schema.
type EvaluationCriteria struct {
	ID                            uint   `gorm:"primaryKey" json:"id"`
	JobID                         uint   `gorm:"not null;index" json:"job_id"`
	MinYearsExperience            int    `json:"min_years_experience"`
	RequiredSkills                string `gorm:"type:text" json:"-"`
	PreferredSkills               string `gorm:"type:text" json:"-"`
	EducationRequirements         string `gorm:"type:text" json:"education_requirements"`
	CompanyBackgroundRequirements string `gorm:"type:text" json:"company_background_requirements"`
	DomainExperienceRequirements  string `gorm:"type:text" json:"domain_experience_requirements"`
	AdditionalInstructions        string `gorm:"type:text" json:"additional_instructions"`
}

func (EvaluationCriteria) TableName() string {
	return "evaluation_criteria"
}

// CriteriaInput is the decoded form of EvaluationCriteria used by the prompt
// builder and the API surface.
type CriteriaInput struct {
	MinYearsExperience            int      `json:"min_years_experience"`
	RequiredSkills                []string `json:"required_skills"`
	PreferredSkills               []string `json:"preferred_skills"`
	EducationRequirements         string   `json:"education_requirements"`
	CompanyBackgroundRequirements string   `json:"company_background_requirements"`
	DomainExperienceRequirements  string   `json:"domain_experience_requirements"`
	AdditionalInstructions        string   `json:"additional_instructions"`
}

// Encode serializes the list fields for storage.
func (in *CriteriaInput) Encode(jobID uint) (*EvaluationCriteria, error) {
	required, err := json.Marshal(emptyIfNil(in.RequiredSkills))
	if err != nil {
		return nil, err
	}
	preferred, err := json.Marshal(emptyIfNil(in.PreferredSkills))
	if err != nil {
		return nil, err
	}
	return &EvaluationCriteria{
		JobID:                         jobID,
		MinYearsExperience:            in.MinYearsExperience,
		RequiredSkills:                string(required),
		PreferredSkills:               string(preferred),
		EducationRequirements:         in.EducationRequirements,
		CompanyBackgroundRequirements: in.CompanyBackgroundRequirements,
		DomainExperienceRequirements:  in.DomainExperienceRequirements,
		AdditionalInstructions:        in.AdditionalInstructions,
	}, nil
}

// Decode rebuilds the list fields from their stored encoding. A decode
// failure is a data-integrity problem on this row only.
func (c *EvaluationCriteria) Decode() (*CriteriaInput, error) {
	out := &CriteriaInput{
		MinYearsExperience:            c.MinYearsExperience,
		EducationRequirements:         c.EducationRequirements,
		CompanyBackgroundRequirements: c.CompanyBackgroundRequirements,
		DomainExperienceRequirements:  c.DomainExperienceRequirements,
		AdditionalInstructions:        c.AdditionalInstructions,
	}
	if c.RequiredSkills != "" {
		if err := json.Unmarshal([]byte(c.RequiredSkills), &out.RequiredSkills); err != nil {
			return nil, &DataIntegrityError{Table: "evaluation_criteria", RowID: c.ID, Field: "required_skills", Err: err}
		}
	}
	if c.PreferredSkills != "" {
		if err := json.Unmarshal([]byte(c.PreferredSkills), &out.PreferredSkills); err != nil {
			return nil, &DataIntegrityError{Table: "evaluation_criteria", RowID: c.ID, Field: "preferred_skills", Err: err}
		}
	}
	return out, nil
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// JobSummary is a listing row with the has-criteria flag resolved.
type JobSummary struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DateCreated time.Time `json:"date_created"`
	HasCriteria bool      `json:"has_criteria"`
}
