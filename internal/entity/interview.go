package entity

// Interview statuses.
const (
	InterviewScheduled = "scheduled"
	InterviewCompleted = "completed"
	InterviewCancelled = "cancelled"
)

// Interview is a scheduled meeting with a candidate.
type Interview struct {
	ID          string  `json:"id"`
	CandidateID string  `json:"candidate_id"`
	JobID       *string `json:"job_id"`
	StartTime   string  `json:"start_time"`
	EndTime     string  `json:"end_time"`
	VideoLink   *string `json:"video_link"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"created_at"`
}

// Evaluation is one prep-pack question and its rating for an interview.
type Evaluation struct {
	ID          string  `json:"id"`
	InterviewID string  `json:"interview_id"`
	Question    string  `json:"question"`
	Criterion   string  `json:"criterion"`
	ListenFor   *string `json:"listen_for"`
	Rating      *int    `json:"rating"`
	Notes       *string `json:"notes"`
	CreatedAt   string  `json:"created_at"`
}

// Scorecard records an interviewer's competency ratings. Scorecards are never edited.
type Scorecard struct {
	ID            string         `json:"id"`
	CandidateID   string         `json:"candidate_id"`
	JobID         string         `json:"job_id"`
	InterviewerID *string        `json:"interviewer_id"`
	Stage         string         `json:"stage"`
	Scores        map[string]any `json:"scores"`
	Feedback      *string        `json:"feedback"`
	CreatedAt     string         `json:"created_at"`
}
