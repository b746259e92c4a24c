package entity

// Candidate pipeline stages.
const (
	StageNew       = "new"
	StageScreening = "screening"
	StageInterview = "interview"
	StageOffer     = "offer"
	StageHired     = "hired"
	StageRejected  = "rejected"
)

// Stages lists the pipeline stages in board order.
var Stages = []string{StageNew, StageScreening, StageInterview, StageOffer, StageHired, StageRejected}

// ValidStage reports whether stage belongs to the pipeline.
func ValidStage(stage string) bool {
	for _, s := range Stages {
		if s == stage {
			return true
		}
	}
	return false
}

// Candidate is a person in the hiring pipeline.
//
// Experience and Education hold whatever was stored: a decoded JSON list or
// object when the column parses, otherwise the raw text.
type Candidate struct {
	ID                string         `json:"id"`
	JobID             *string        `json:"job_id"`
	Name              string         `json:"name"`
	Email             string         `json:"email"`
	Phone             *string        `json:"phone"`
	Role              string         `json:"role"`
	Location          *string        `json:"location"`
	Skills            []string       `json:"skills"`
	Experience        any            `json:"experience"`
	Education         any            `json:"education"`
	YearsOfExperience *int           `json:"years_of_experience"`
	Stage             string         `json:"stage"`
	FitScore          *int           `json:"fit_score"`
	FitScoreBreakdown map[string]any `json:"fit_score_breakdown"`
	ResumeText        *string        `json:"resume_text,omitempty"`
	Source            string         `json:"source"`
	CreatedAt         string         `json:"created_at"`
	UpdatedAt         string         `json:"updated_at"`
}

// JobCandidate links a candidate to a job's shortlist with a match assessment.
type JobCandidate struct {
	ID          string   `json:"id"`
	JobID       string   `json:"job_id"`
	CandidateID string   `json:"candidate_id"`
	MatchScore  *int     `json:"match_score"`
	Strengths   []string `json:"strengths"`
	Gaps        []string `json:"gaps"`
	Status      string   `json:"status"`
	CreatedAt   string   `json:"created_at"`

	CandidateName  string `json:"candidate_name,omitempty"`
	CandidateEmail string `json:"candidate_email,omitempty"`
	CandidateStage string `json:"candidate_stage,omitempty"`
	FitScore       *int   `json:"fit_score,omitempty"`
}

// Shortlist statuses for a candidate's entry on a job.
const (
	ShortlistSourced     = "sourced"
	ShortlistReviewed    = "reviewed"
	ShortlistShortlisted = "shortlisted"
	ShortlistContacted   = "contacted"
	ShortlistRejected    = "rejected"
)

// ValidShortlistStatus reports whether status is a known shortlist status.
func ValidShortlistStatus(status string) bool {
	switch status {
	case ShortlistSourced, ShortlistReviewed, ShortlistShortlisted, ShortlistContacted, ShortlistRejected:
		return true
	}
	return false
}
