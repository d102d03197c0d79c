package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"hrassist/resume-screener/internal/models"
)

type JobRepository interface {
	CreateWithCriteria(job *models.JobDescription, criteria *models.CriteriaInput) error
	ListActive() ([]models.JobSummary, error)
	FindByID(id uint) (*models.JobDescription, error)
	SoftDelete(id uint) error
	CriteriaByJobID(jobID uint) (*models.CriteriaInput, error)
	CountActive() (int64, error)
}

type jobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db: db}
}

// CreateWithCriteria inserts the job and its optional criteria in one
// transaction; both land or neither does.
func (r *jobRepository) CreateWithCriteria(job *models.JobDescription, criteria *models.CriteriaInput) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		job.Active = true
		if err := tx.Create(job).Error; err != nil {
			return fmt.Errorf("failed to create job: %w", err)
		}
		if criteria == nil {
			return nil
		}
		encoded, err := criteria.Encode(job.ID)
		if err != nil {
			return fmt.Errorf("failed to encode criteria: %w", err)
		}
		if err := tx.Create(encoded).Error; err != nil {
			return fmt.Errorf("failed to create criteria: %w", err)
		}
		return nil
	})
}

func (r *jobRepository) ListActive() ([]models.JobSummary, error) {
	var rows []models.JobSummary
	err := r.db.
		Table("job_descriptions AS j").
		Select("j.id, j.title, j.description, j.date_created, (c.id IS NOT NULL) AS has_criteria").
		Joins("LEFT JOIN evaluation_criteria c ON c.job_id = j.id").
		Where("j.active = ?", true).
		Order("j.date_created DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	return rows, nil
}

func (r *jobRepository) FindByID(id uint) (*models.JobDescription, error) {
	var job models.JobDescription
	err := r.db.Where("id = ? AND active = ?", id, true).First(&job).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("job not found")
		}
		return nil, fmt.Errorf("failed to find job: %w", err)
	}
	return &job, nil
}

// SoftDelete flips the active flag. Deleting an already-inactive or unknown
// job is a no-op, not an error.
func (r *jobRepository) SoftDelete(id uint) error {
	err := r.db.Model(&models.JobDescription{}).
		Where("id = ?", id).
		Update("active", false).Error
	if err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}
	return nil
}

// CriteriaByJobID returns nil when the job has no criteria attached.
func (r *jobRepository) CriteriaByJobID(jobID uint) (*models.CriteriaInput, error) {
	var criteria models.EvaluationCriteria
	err := r.db.Where("job_id = ?", jobID).First(&criteria).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch criteria: %w", err)
	}
	return criteria.Decode()
}

func (r *jobRepository) CountActive() (int64, error) {
	var count int64
	err := r.db.Model(&models.JobDescription{}).
		Where("active = ?", true).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count jobs: %w", err)
	}
	return count, nil
}
