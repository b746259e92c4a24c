package entity

// Outreach email statuses.
const (
	OutreachSent    = "sent"
	OutreachFailed  = "failed"
	OutreachOpened  = "opened"
	OutreachReplied = "replied"
	OutreachDraft   = "draft"
)

// OutreachEmail is a message sent (or queued) to a candidate.
type OutreachEmail struct {
	ID          string  `json:"id"`
	CandidateID string  `json:"candidate_id"`
	JobID       *string `json:"job_id"`
	SequenceDay int     `json:"sequence_day"`
	Subject     string  `json:"subject"`
	Body        string  `json:"body"`
	Status      string  `json:"status"`
	SentAt      *string `json:"sent_at"`
	OpenedAt    *string `json:"opened_at"`
	RepliedAt   *string `json:"replied_at"`
	CreatedAt   string  `json:"created_at"`
}

// EmailTemplate is a reusable outreach message.
type EmailTemplate struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
	Category  string `json:"category"`
	CreatedAt string `json:"created_at,omitempty"`
}
