package dto

// CreateCandidateRequest is a manually entered candidate.
type CreateCandidateRequest struct {
	JobID             *string  `json:"job_id"`
	Name              string   `json:"name"`
	Email             string   `json:"email"`
	Phone             *string  `json:"phone"`
	Role              string   `json:"role"`
	Location          *string  `json:"location"`
	Skills            []string `json:"skills"`
	Experience        any      `json:"experience"`
	Education         any      `json:"education"`
	YearsOfExperience *int     `json:"years_of_experience"`
	Stage             string   `json:"stage"`
	Source            string   `json:"source"`
}

// UpdateCandidateRequest patches pipeline fields.
type UpdateCandidateRequest struct {
	Stage             *string        `json:"stage"`
	FitScore          *int           `json:"fit_score"`
	FitScoreBreakdown map[string]any `json:"fit_score_breakdown"`
}

// AnalyzeCandidateRequest optionally names the job to assess against.
type AnalyzeCandidateRequest struct {
	JobID *string `json:"job_id"`
}

// ParsedResume is the model's structured reading of a resume.
type ParsedResume struct {
	Name              LooseString  `json:"name"`
	Email             LooseString  `json:"email"`
	Phone             LooseString  `json:"phone"`
	Location          LooseString  `json:"location"`
	Role              LooseString  `json:"role"`
	Summary           LooseString  `json:"summary"`
	Skills            LooseStrings `json:"skills"`
	Experience        any          `json:"experience"`
	Education         any          `json:"education"`
	YearsOfExperience LooseNumber  `json:"yearsOfExperience"`
}

// FitScore is a 0-100 rating with its per-dimension parts.
type FitScore struct {
	Overall    float64 `json:"overall"`
	Skills     float64 `json:"skills"`
	Experience float64 `json:"experience"`
	Education  float64 `json:"education"`
}

// DealBreakerCheck reports whether a candidate clears a job's hard constraints.
type DealBreakerCheck struct {
	Passed  bool     `json:"passed"`
	Details []string `json:"details"`
}

// CandidateAnalysis is the assessment returned by the analyze endpoint. It is not stored.
type CandidateAnalysis struct {
	Summary          string           `json:"summary"`
	Strengths        []string         `json:"strengths"`
	Gaps             []string         `json:"gaps"`
	FitScore         FitScore         `json:"fitScore"`
	DealBreakerCheck DealBreakerCheck `json:"dealBreakerCheck"`
	Recommendation   string           `json:"recommendation"`
}

// SourcingRequest starts an auto-sourcing run for a job.
type SourcingRequest struct {
	JobID string `json:"jobId"`
}

// SourcedProfile is one generated candidate profile.
type SourcedProfile struct {
	Name              LooseString  `json:"name"`
	Email             LooseString  `json:"email"`
	Role              LooseString  `json:"role"`
	Location          LooseString  `json:"location"`
	YearsOfExperience LooseNumber  `json:"years_of_experience"`
	Skills            LooseStrings `json:"skills"`
	Experience        any          `json:"experience"`
	Education         any          `json:"education"`
	FitScore          LooseNumber  `json:"fit_score"`
	Summary           LooseString  `json:"summary"`
}
