package dto

// CreateInterviewRequest schedules an interview.
type CreateInterviewRequest struct {
	CandidateID string  `json:"candidate_id"`
	JobID       *string `json:"job_id"`
	StartTime   string  `json:"start_time"`
	EndTime     string  `json:"end_time"`
	VideoLink   *string `json:"video_link"`
	Status      string  `json:"status"`
}

// UpdateInterviewRequest reschedules or closes an interview.
type UpdateInterviewRequest struct {
	StartTime *string `json:"start_time"`
	EndTime   *string `json:"end_time"`
	VideoLink *string `json:"video_link"`
	Status    *string `json:"status"`
}

// PrepRequest asks for an interview question pack.
type PrepRequest struct {
	Count *int   `json:"count"`
	Type  string `json:"type"`
}

// PrepQuestion is one generated interview question.
type PrepQuestion struct {
	Question  string `json:"question"`
	Criterion string `json:"criterion"`
	ListenFor string `json:"listen_for"`
}

// UpdateEvaluationRequest rates a prep question after the interview.
type UpdateEvaluationRequest struct {
	Rating *int    `json:"rating"`
	Notes  *string `json:"notes"`
}

// CreateScorecardRequest records an interviewer's ratings.
type CreateScorecardRequest struct {
	CandidateID   string         `json:"candidateId"`
	JobID         string         `json:"jobId"`
	Stage         string         `json:"stage"`
	Scores        map[string]any `json:"scores"`
	Feedback      *string        `json:"feedback"`
	InterviewerID *string        `json:"interviewerId"`
}
