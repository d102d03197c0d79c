package repositories

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"hrassist/resume-screener/internal/models"
)

type EvaluationRepository interface {
	Insert(eval *models.Evaluation) error
	ByPeriod(period models.Period) ([]models.EvaluationRow, error)
	ByDateRange(from, to time.Time) ([]models.EvaluationRow, error)
	DetailByID(id uint) (*models.EvaluationDetail, error)
	ResumeFileByID(id uint) (*models.ResumeFile, error)
	AllIDs() ([]uint, error)
	CountToday() (int64, error)
	CountByResult() (shortlisted int64, rejected int64, err error)
	ClearAll() error
}

type evaluationRepository struct {
	db *gorm.DB
}

func NewEvaluationRepository(db *gorm.DB) EvaluationRepository {
	return &evaluationRepository{db: db}
}

// Insert writes the record in a single autocommitted statement. Records are
// immutable afterwards; there is deliberately no update method.
func (r *evaluationRepository) Insert(eval *models.Evaluation) error {
	if err := r.db.Create(eval).Error; err != nil {
		return fmt.Errorf("failed to insert evaluation: %w", err)
	}
	return nil
}

const listingSelect = "e.id, e.job_id, e.resume_name, e.result, e.justification, e.match_score, e.evaluation_date, j.title AS job_title"

func (r *evaluationRepository) ByPeriod(period models.Period) ([]models.EvaluationRow, error) {
	since := time.Now().AddDate(0, 0, -period.Days())
	var rows []models.EvaluationRow
	err := r.db.
		Table("evaluations AS e").
		Select(listingSelect).
		Joins("JOIN job_descriptions j ON j.id = e.job_id").
		Where("e.evaluation_date >= ?", since).
		Order("e.evaluation_date DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list evaluations: %w", err)
	}
	return rows, nil
}

// ByDateRange is inclusive on both ends: rows whose evaluation_date falls on
// the `to` day are returned.
func (r *evaluationRepository) ByDateRange(from, to time.Time) ([]models.EvaluationRow, error) {
	dayStart := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	dayEnd := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, to.Location()).AddDate(0, 0, 1)

	var rows []models.EvaluationRow
	err := r.db.
		Table("evaluations AS e").
		Select(listingSelect).
		Joins("JOIN job_descriptions j ON j.id = e.job_id").
		Where("e.evaluation_date >= ? AND e.evaluation_date < ?", dayStart, dayEnd).
		Order("e.evaluation_date DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list evaluations: %w", err)
	}
	return rows, nil
}

func (r *evaluationRepository) DetailByID(id uint) (*models.EvaluationDetail, error) {
	var eval models.Evaluation
	if err := r.db.Where("id = ?", id).First(&eval).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("evaluation not found")
		}
		return nil, fmt.Errorf("failed to find evaluation: %w", err)
	}

	var jobTitle string
	err := r.db.Model(&models.JobDescription{}).
		Where("id = ?", eval.JobID).
		Pluck("title", &jobTitle).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load job title: %w", err)
	}

	detail := &models.EvaluationDetail{
		ID:       eval.ID,
		JobID:    eval.JobID,
		JobTitle: jobTitle,
		CandidateInfo: models.CandidateInfo{
			Name:     eval.CandidateName,
			Email:    eval.CandidateEmail,
			Phone:    eval.CandidatePhone,
			Location: eval.CandidateLocation,
			LinkedIn: eval.LinkedinProfile,
		},
		ResumeName:                 eval.ResumeName,
		Result:                     eval.Result,
		Justification:              eval.Justification,
		MatchScore:                 eval.MatchScore,
		ConfidenceScore:            eval.ConfidenceScore,
		YearsExperienceTotal:       eval.YearsExperienceTotal,
		YearsExperienceRelevant:    eval.YearsExperienceRelevant,
		YearsExperienceRequired:    eval.YearsExperienceRequired,
		MeetsExperienceRequirement: eval.MeetsExperienceRequirement,
		ExperienceAnalysis:         eval.ExperienceAnalysis,
		EvaluationDate:             eval.EvaluationDate,
		ResumeFileType:             eval.ResumeFileType,
	}

	if err := decodeJSONField(eval.KeyMatches, &detail.KeyMatches, eval.ID, "key_matches"); err != nil {
		return nil, err
	}
	if err := decodeJSONField(eval.MissingRequirements, &detail.MissingRequirements, eval.ID, "missing_requirements"); err != nil {
		return nil, err
	}
	if eval.EvaluationData != "" {
		if !json.Valid([]byte(eval.EvaluationData)) {
			return nil, &models.DataIntegrityError{
				Table: "evaluations", RowID: eval.ID, Field: "evaluation_data",
				Err: fmt.Errorf("stored payload is not valid JSON"),
			}
		}
		detail.EvaluationData = json.RawMessage(eval.EvaluationData)
	}

	return detail, nil
}

func decodeJSONField(raw string, target *map[string][]string, rowID uint, field string) error {
	if raw == "" {
		*target = map[string][]string{}
		return nil
	}
	if err := json.Unmarshal([]byte(raw), target); err != nil {
		return &models.DataIntegrityError{Table: "evaluations", RowID: rowID, Field: field, Err: err}
	}
	return nil
}

func (r *evaluationRepository) ResumeFileByID(id uint) (*models.ResumeFile, error) {
	var eval models.Evaluation
	err := r.db.
		Select("id", "resume_name", "resume_file_data", "resume_file_type").
		Where("id = ?", id).
		First(&eval).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("evaluation not found")
		}
		return nil, fmt.Errorf("failed to load resume file: %w", err)
	}
	if len(eval.ResumeFileData) == 0 {
		return nil, fmt.Errorf("no resume file stored for evaluation %d", id)
	}
	return &models.ResumeFile{
		Name:        eval.ResumeName,
		Data:        eval.ResumeFileData,
		ContentType: eval.ResumeFileType,
	}, nil
}

func (r *evaluationRepository) AllIDs() ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.Evaluation{}).
		Order("id ASC").
		Pluck("id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list evaluation ids: %w", err)
	}
	return ids, nil
}

func (r *evaluationRepository) CountToday() (int64, error) {
	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var count int64
	err := r.db.Model(&models.Evaluation{}).
		Where("evaluation_date >= ?", dayStart).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count today's evaluations: %w", err)
	}
	return count, nil
}

func (r *evaluationRepository) CountByResult() (int64, int64, error) {
	type resultCount struct {
		Result string
		Count  int64
	}
	var counts []resultCount
	err := r.db.Model(&models.Evaluation{}).
		Select("result, COUNT(*) AS count").
		Group("result").
		Scan(&counts).Error
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count by result: %w", err)
	}

	var shortlisted, rejected int64
	for _, c := range counts {
		switch c.Result {
		case models.OutcomeShortlist:
			shortlisted = c.Count
		case models.OutcomeReject:
			rejected = c.Count
		}
	}
	return shortlisted, rejected, nil
}

// ClearAll is the single bulk delete path; individual records cannot be
// removed.
func (r *evaluationRepository) ClearAll() error {
	if err := r.db.Exec("DELETE FROM evaluations").Error; err != nil {
		return fmt.Errorf("failed to clear evaluations: %w", err)
	}
	return nil
}
