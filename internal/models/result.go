package models

type CreateJobRequest struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Criteria    *CriteriaInput `json:"criteria,omitempty"`
}

type CreateJobResponse struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}

// BatchItemResult reports one resume of a batch. A failed item carries the
// error message; a completed one carries the persisted record's identity.
type BatchItemResult struct {
	ResumeName   string  `json:"resume_name"`
	Status       string  `json:"status"`
	EvaluationID uint    `json:"evaluation_id,omitempty"`
	Decision     string  `json:"decision,omitempty"`
	MatchScore   float64 `json:"match_score,omitempty"`
	Error        string  `json:"error,omitempty"`
}

const (
	BatchItemCompleted = "completed"
	BatchItemFailed    = "failed"
)

type BatchSummaryResponse struct {
	BatchID   string            `json:"batch_id"`
	JobID     uint              `json:"job_id"`
	Processed int               `json:"processed"`
	Succeeded int               `json:"succeeded"`
	Failed    int               `json:"failed"`
	Items     []BatchItemResult `json:"items"`
}

type DashboardResponse struct {
	ActiveJobs       int64 `json:"active_jobs"`
	EvaluationsToday int64 `json:"evaluations_today"`
	Shortlisted      int64 `json:"shortlisted"`
	Rejected         int64 `json:"rejected"`
}

type StatsResponse struct {
	TotalEvaluations int     `json:"total_evaluations"`
	Shortlisted      int     `json:"shortlisted"`
	Rejected         int     `json:"rejected"`
	RejectionRate    float64 `json:"rejection_rate"`
}

// TrendPoint is one day of the evaluation trend series.
type TrendPoint struct {
	Date        string `json:"date"`
	Shortlisted int    `json:"shortlisted"`
	Rejected    int    `json:"rejected"`
}

// JobBreakdown is one bar of the per-job outcome distribution.
type JobBreakdown struct {
	JobTitle    string `json:"job_title"`
	Shortlisted int    `json:"shortlisted"`
	Rejected    int    `json:"rejected"`
}

// SimilarCandidate is one hit from the vector search over past resumes.
type SimilarCandidate struct {
	EvaluationID uint    `json:"evaluation_id"`
	ResumeName   string  `json:"resume_name"`
	Decision     string  `json:"decision"`
	Score        float32 `json:"score"`
}
