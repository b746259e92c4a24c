package entity

// Job statuses.
const (
	JobStatusDraft     = "draft"
	JobStatusPublished = "published"
	JobStatusClosed    = "closed"
)

// DealBreakers are hard constraints a candidate must satisfy for a job.
type DealBreakers struct {
	LocationMatch  bool `json:"location_match"`
	NoSponsorship  bool `json:"no_sponsorship"`
	OnsiteRequired bool `json:"onsite_required"`
}

// Job is an open or draft position.
type Job struct {
	ID                  string       `json:"id"`
	Title               string       `json:"title"`
	Department          string       `json:"department"`
	Location            string       `json:"location"`
	Type                string       `json:"type"`
	Status              string       `json:"status"`
	Description         string       `json:"description"`
	Requirements        []string     `json:"requirements"`
	Responsibilities    []string     `json:"responsibilities"`
	DealBreakers        DealBreakers `json:"deal_breakers"`
	AutoSourcingEnabled bool         `json:"auto_sourcing_enabled"`
	SourcingThreshold   int          `json:"sourcing_threshold"`
	CreatedAt           string       `json:"created_at"`
	UpdatedAt           string       `json:"updated_at"`
}

// ValidJobStatus reports whether status is one of the known job statuses.
func ValidJobStatus(status string) bool {
	switch status {
	case JobStatusDraft, JobStatusPublished, JobStatusClosed:
		return true
	}
	return false
}
