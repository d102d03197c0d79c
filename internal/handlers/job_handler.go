package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"hrassist/resume-screener/internal/models"
	"hrassist/resume-screener/internal/repositories"
)

type JobHandler struct {
	jobRepo repositories.JobRepository
}

func NewJobHandler(jobRepo repositories.JobRepository) *JobHandler {
	return &JobHandler{jobRepo: jobRepo}
}

// HandleCreateJob handles POST /jobs
func (h *JobHandler) HandleCreateJob(c *fiber.Ctx) error {
	var req models.CreateJobRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "title is required",
		})
	}

	if req.Description == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "description is required",
		})
	}

	job := &models.JobDescription{
		Title:       req.Title,
		Description: req.Description,
	}

	if err := h.jobRepo.CreateWithCriteria(job, req.Criteria); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create job",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(models.CreateJobResponse{
		ID:    job.ID,
		Title: job.Title,
	})
}

// HandleListJobs handles GET /jobs
func (h *JobHandler) HandleListJobs(c *fiber.Ctx) error {
	jobs, err := h.jobRepo.ListActive()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list jobs",
		})
	}

	return c.JSON(fiber.Map{
		"jobs": jobs,
	})
}

// HandleDeleteJob handles DELETE /jobs/:id. Deletion is a soft delete and
// is idempotent; deleting an unknown job still returns 204.
func (h *JobHandler) HandleDeleteJob(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job ID format",
		})
	}

	if err := h.jobRepo.SoftDelete(id); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete job",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// HandleGetCriteria handles GET /jobs/:id/criteria
func (h *JobHandler) HandleGetCriteria(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job ID format",
		})
	}

	if _, err := h.jobRepo.FindByID(id); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Job not found",
		})
	}

	criteria, err := h.jobRepo.CriteriaByJobID(id)
	if err != nil {
		return criteriaError(c, err)
	}

	if criteria == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "No criteria defined for this job",
		})
	}

	return c.JSON(criteria)
}

func parseIDParam(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
