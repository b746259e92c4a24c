package dto

// Activity is one entry of the recent activity feed.
type Activity struct {
	Type        string `json:"type"`
	ID          string `json:"id"`
	Description string `json:"description"`
	Timestamp   string `json:"timestamp"`
}

// AnalyticsOverview summarises the whole workspace.
type AnalyticsOverview struct {
	TotalCandidates    int            `json:"totalCandidates"`
	ActiveJobs         int            `json:"activeJobs"`
	Pipeline           map[string]int `json:"pipeline"`
	AverageFitScore    float64        `json:"averageFitScore"`
	PipelineHealth     HealthMetrics  `json:"pipelineHealth"`
	UpcomingInterviews int            `json:"upcomingInterviews"`
	RecentActivity     []Activity     `json:"recentActivity"`
}
