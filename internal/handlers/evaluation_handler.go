package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"hrassist/resume-screener/internal/models"
	"hrassist/resume-screener/internal/repositories"
	"hrassist/resume-screener/internal/services"
)

type EvaluationHandler struct {
	jobRepo     repositories.JobRepository
	evalRepo    repositories.EvaluationRepository
	extractor   services.TextExtractor
	evaluator   services.EvaluatorService
	gemini      services.GeminiService
	qdrant      services.QdrantService
	indexer     services.Indexer
	report      *services.ReportRenderer
	maxFileSize int64
}

func NewEvaluationHandler(
	jobRepo repositories.JobRepository,
	evalRepo repositories.EvaluationRepository,
	extractor services.TextExtractor,
	evaluator services.EvaluatorService,
	gemini services.GeminiService,
	qdrant services.QdrantService,
	indexer services.Indexer,
	maxFileSize int64,
) *EvaluationHandler {
	return &EvaluationHandler{
		jobRepo:     jobRepo,
		evalRepo:    evalRepo,
		extractor:   extractor,
		evaluator:   evaluator,
		gemini:      gemini,
		qdrant:      qdrant,
		indexer:     indexer,
		report:      services.NewReportRenderer(),
		maxFileSize: maxFileSize,
	}
}

// HandleBatchEvaluate handles POST /jobs/:id/evaluations. Each uploaded
// resume is evaluated independently; one bad file never aborts the batch.
func (h *EvaluationHandler) HandleBatchEvaluate(c *fiber.Ctx) error {
	jobID, err := parseIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job ID format",
		})
	}

	job, err := h.jobRepo.FindByID(jobID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Job not found",
		})
	}

	criteria, err := h.jobRepo.CriteriaByJobID(jobID)
	if err != nil {
		return criteriaError(c, err)
	}

	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "failed to parse multipart form",
		})
	}

	files := form.File["resumes"]
	if len(files) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No resumes uploaded. Attach one or more files under the 'resumes' field.",
		})
	}

	batchID := uuid.New().String()
	log.Printf("🔄 Batch %s: evaluating %d resumes for job %d\n", batchID, len(files), jobID)

	summary := models.BatchSummaryResponse{
		BatchID: batchID,
		JobID:   jobID,
		Items:   make([]models.BatchItemResult, 0, len(files)),
	}

	for _, file := range files {
		item := h.evaluateOne(c, file, job, criteria)
		summary.Processed++
		if item.Status == models.BatchItemCompleted {
			summary.Succeeded++
		} else {
			summary.Failed++
		}
		summary.Items = append(summary.Items, item)
	}

	log.Printf("✅ Batch %s: %d of %d resumes evaluated successfully\n", batchID, summary.Succeeded, summary.Processed)

	status := fiber.StatusCreated
	if summary.Succeeded == 0 {
		status = fiber.StatusUnprocessableEntity
	}
	return c.Status(status).JSON(summary)
}

func (h *EvaluationHandler) evaluateOne(c *fiber.Ctx, file *multipart.FileHeader, job *models.JobDescription, criteria *models.CriteriaInput) models.BatchItemResult {
	failed := func(err error) models.BatchItemResult {
		log.Printf("❌ Resume %s failed: %v\n", file.Filename, err)
		return models.BatchItemResult{
			ResumeName: file.Filename,
			Status:     models.BatchItemFailed,
			Error:      err.Error(),
		}
	}

	if file.Size > h.maxFileSize {
		return failed(fmt.Errorf("file too large, max size is %d bytes", h.maxFileSize))
	}

	contentType := file.Header.Get("Content-Type")
	kind, err := services.DetectKind(file.Filename, contentType)
	if err != nil {
		return failed(err)
	}

	src, err := file.Open()
	if err != nil {
		return failed(fmt.Errorf("failed to open upload: %w", err))
	}
	data, err := io.ReadAll(src)
	src.Close()
	if err != nil {
		return failed(fmt.Errorf("failed to read upload: %w", err))
	}

	text, err := h.extractor.ExtractText(data, kind)
	if err != nil {
		return failed(err)
	}

	result, err := h.evaluator.Evaluate(c.Context(), text, job, criteria)
	if err != nil {
		return failed(err)
	}

	keyMatches, err := json.Marshal(result.KeyMatches)
	if err != nil {
		return failed(fmt.Errorf("failed to encode key matches: %w", err))
	}
	missing, err := json.Marshal(result.MissingRequirements)
	if err != nil {
		return failed(fmt.Errorf("failed to encode missing requirements: %w", err))
	}

	eval := &models.Evaluation{
		JobID:                      job.ID,
		ResumeName:                 file.Filename,
		CandidateName:              result.CandidateInfo.Name,
		CandidateEmail:             result.CandidateInfo.Email,
		CandidatePhone:             result.CandidateInfo.Phone,
		CandidateLocation:          result.CandidateInfo.Location,
		LinkedinProfile:            result.CandidateInfo.LinkedIn,
		Result:                     result.Decision,
		Justification:              result.Justification,
		MatchScore:                 result.MatchScore,
		ConfidenceScore:            result.ConfidenceScore,
		YearsExperienceTotal:       result.YearsOfExperience.Total,
		YearsExperienceRelevant:    result.YearsOfExperience.Relevant,
		YearsExperienceRequired:    result.YearsOfExperience.Required,
		MeetsExperienceRequirement: result.YearsOfExperience.MeetsRequirement,
		KeyMatches:                 string(keyMatches),
		MissingRequirements:        string(missing),
		ExperienceAnalysis:         result.ExperienceAnalysis,
		EvaluationData:             string(result.Raw),
		ResumeFileData:             data,
		ResumeFileType:             contentType,
	}

	if err := h.evalRepo.Insert(eval); err != nil {
		return failed(err)
	}

	if h.indexer != nil {
		h.indexer.Enqueue(eval.ID)
	}

	return models.BatchItemResult{
		ResumeName:   file.Filename,
		Status:       models.BatchItemCompleted,
		EvaluationID: eval.ID,
		Decision:     result.Decision,
		MatchScore:   result.MatchScore,
	}
}

// HandleListEvaluations handles GET /evaluations. An explicit from/to range
// wins over the relative period.
func (h *EvaluationHandler) HandleListEvaluations(c *fiber.Ctx) error {
	fromParam := c.Query("from")
	toParam := c.Query("to")

	var rows []models.EvaluationRow
	var err error

	if fromParam != "" || toParam != "" {
		from, perr := time.Parse("2006-01-02", fromParam)
		if perr != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid 'from' date, expected YYYY-MM-DD",
			})
		}
		to, perr := time.Parse("2006-01-02", toParam)
		if perr != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid 'to' date, expected YYYY-MM-DD",
			})
		}
		rows, err = h.evalRepo.ByDateRange(from, to)
	} else {
		rows, err = h.evalRepo.ByPeriod(models.Period(c.Query("period")))
	}

	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list evaluations",
		})
	}

	return c.JSON(fiber.Map{
		"evaluations": rows,
	})
}

// HandleGetEvaluation handles GET /evaluations/:id
func (h *EvaluationHandler) HandleGetEvaluation(c *fiber.Ctx) error {
	detail, ok, err := h.loadDetail(c)
	if !ok {
		return err
	}
	return c.JSON(detail)
}

// HandleDownloadResume handles GET /evaluations/:id/resume
func (h *EvaluationHandler) HandleDownloadResume(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid evaluation ID format",
		})
	}

	file, err := h.evalRepo.ResumeFileByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Resume file not found",
		})
	}

	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", file.Name))
	return c.Send(file.Data)
}

// HandleExportJSON handles GET /evaluations/:id/export
func (h *EvaluationHandler) HandleExportJSON(c *fiber.Ctx) error {
	detail, ok, err := h.loadDetail(c)
	if !ok {
		return err
	}

	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", exportFilename(detail, "json")))
	return c.JSON(detail)
}

// HandleDownloadReport handles GET /evaluations/:id/report
func (h *EvaluationHandler) HandleDownloadReport(c *fiber.Ctx) error {
	detail, ok, err := h.loadDetail(c)
	if !ok {
		return err
	}

	c.Set(fiber.HeaderContentType, "text/plain; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", exportFilename(detail, "txt")))
	return c.SendString(h.report.RenderText(detail))
}

// HandleSimilar handles GET /evaluations/:id/similar. Returns 503 when the
// vector store was not available at startup.
func (h *EvaluationHandler) HandleSimilar(c *fiber.Ctx) error {
	if h.qdrant == nil || h.gemini == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "Similarity search is not available",
		})
	}

	id, err := parseIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid evaluation ID format",
		})
	}

	file, err := h.evalRepo.ResumeFileByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Evaluation not found",
		})
	}

	kind, err := services.DetectKind(file.Name, file.ContentType)
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	text, err := h.extractor.ExtractText(file.Data, kind)
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	embedding, err := h.gemini.GenerateEmbedding(c.Context(), text)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Failed to embed resume text",
		})
	}

	similar, err := h.qdrant.SearchSimilar(c.Context(), embedding, id, 5)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Similarity search failed",
		})
	}

	return c.JSON(fiber.Map{
		"similar": similar,
	})
}

// HandleClearEvaluations handles DELETE /evaluations. Vector points for the
// cleared rows are removed too, so similarity search never serves IDs that
// no longer resolve.
func (h *EvaluationHandler) HandleClearEvaluations(c *fiber.Ctx) error {
	var staleIDs []uint
	if h.qdrant != nil {
		ids, err := h.evalRepo.AllIDs()
		if err != nil {
			log.Printf("⚠️ Failed to list evaluations for vector cleanup: %v\n", err)
		} else {
			staleIDs = ids
		}
	}

	if err := h.evalRepo.ClearAll(); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to clear evaluations",
		})
	}

	for _, id := range staleIDs {
		if err := h.qdrant.DeleteEvaluation(c.Context(), id); err != nil {
			log.Printf("⚠️ Failed to remove vector points for evaluation %d: %v\n", id, err)
		}
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *EvaluationHandler) loadDetail(c *fiber.Ctx) (*models.EvaluationDetail, bool, error) {
	id, err := parseIDParam(c)
	if err != nil {
		return nil, false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid evaluation ID format",
		})
	}

	detail, err := h.evalRepo.DetailByID(id)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			return nil, false, c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Evaluation not found",
			})
		}
		return nil, false, storedDataError(c, err, "Failed to load evaluation")
	}

	return detail, true, nil
}

func exportFilename(detail *models.EvaluationDetail, ext string) string {
	name := strings.TrimSuffix(detail.ResumeName, "."+strings.ToLower(ext))
	name = strings.ReplaceAll(name, " ", "_")
	return fmt.Sprintf("evaluation_%d_%s.%s", detail.ID, name, ext)
}
