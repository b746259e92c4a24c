package dto

import "github.com/octobees/hireloop/api/internal/entity"

// JobRequest is the body of job create and update calls. Absent fields are left
// to their defaults on create and untouched on update.
type JobRequest struct {
	Title               *string              `json:"title"`
	Department          *string              `json:"department"`
	Location            *string              `json:"location"`
	Type                *string              `json:"type"`
	Status              *string              `json:"status"`
	Description         *string              `json:"description"`
	Requirements        *[]string            `json:"requirements"`
	Responsibilities    *[]string            `json:"responsibilities"`
	DealBreakers        *entity.DealBreakers `json:"deal_breakers"`
	AutoSourcingEnabled *bool                `json:"auto_sourcing_enabled"`
	SourcingThreshold   *int                 `json:"sourcing_threshold"`
}

// ParseJobRequest carries a pasted job description.
type ParseJobRequest struct {
	JobText string `json:"jobText"`
}

// ParsedJob is the model's structured reading of a job description.
type ParsedJob struct {
	Title            string   `json:"title"`
	Department       string   `json:"department"`
	Location         string   `json:"location"`
	Type             string   `json:"type"`
	Description      string   `json:"description"`
	Requirements     []string `json:"requirements"`
	Responsibilities []string `json:"responsibilities"`
}

// JobInsights is the hiring advice generated for a job dashboard.
type JobInsights struct {
	MustHaveSkills   []string `json:"mustHaveSkills"`
	NiceToHaveSkills []string `json:"niceToHaveSkills"`
	DealBreakers     []string `json:"dealBreakers"`
	HiringGuide      string   `json:"hiringGuide"`
	KeyCompetencies  []string `json:"keyCompetencies"`
	InterviewFocus   []string `json:"interviewFocus"`
}

// PipelineStats counts candidates per stage.
type PipelineStats struct {
	New       int `json:"new"`
	Screening int `json:"screening"`
	Interview int `json:"interview"`
	Offer     int `json:"offer"`
	Hired     int `json:"hired"`
	Rejected  int `json:"rejected"`
	Total     int `json:"total"`
}

// HealthMetrics grades a pipeline by how close it is to the candidate target.
type HealthMetrics struct {
	Score            int    `json:"score"`
	Status           string `json:"status"`
	TotalCandidates  int    `json:"totalCandidates"`
	TargetCandidates int    `json:"targetCandidates"`
}

// JobDashboard is the composite job view.
type JobDashboard struct {
	Job           *entity.Job   `json:"job"`
	AIInsights    *JobInsights  `json:"aiInsights"`
	PipelineStats PipelineStats `json:"pipelineStats"`
	HealthMetrics HealthMetrics `json:"healthMetrics"`
}
