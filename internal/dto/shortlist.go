package dto

// ShortlistAddRequest evaluates a candidate for a job's shortlist.
type ShortlistAddRequest struct {
	CandidateID string `json:"candidate_id"`
}

// ShortlistStatusRequest moves a shortlist entry.
type ShortlistStatusRequest struct {
	Status string `json:"status"`
}

// FitEvaluation is the model's job-specific assessment of a candidate.
type FitEvaluation struct {
	Overall   float64        `json:"overall"`
	Breakdown map[string]any `json:"breakdown"`
	Reasoning string         `json:"reasoning"`
	Strengths []string       `json:"strengths"`
	Concerns  []string       `json:"concerns"`
}
