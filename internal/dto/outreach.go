package dto

// GenerateEmailRequest asks for a drafted outreach email.
type GenerateEmailRequest struct {
	CandidateID string `json:"candidateId"`
	JobID       string `json:"jobId"`
	Type        string `json:"type"`
}

// GeneratedEmail is a drafted subject and body.
type GeneratedEmail struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// CreateOutreachEmailRequest records, and when possible delivers, an outreach email.
type CreateOutreachEmailRequest struct {
	CandidateID string  `json:"candidateId"`
	JobID       *string `json:"jobId"`
	SequenceDay *int    `json:"sequence_day"`
	Subject     string  `json:"subject"`
	Body        string  `json:"body"`
	Status      string  `json:"status"`
}

// OutreachStatusRequest records an open or reply.
type OutreachStatusRequest struct {
	Status string `json:"status"`
}

// TemplateRequest creates or replaces an email template.
type TemplateRequest struct {
	Name     string `json:"name"`
	Subject  string `json:"subject"`
	Body     string `json:"body"`
	Category string `json:"category"`
}
