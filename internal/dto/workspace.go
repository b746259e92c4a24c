package dto

// SettingsRequest saves workspace preferences.
type SettingsRequest struct {
	CompanyName         *string `json:"company_name"`
	Website             *string `json:"website"`
	AutoRejectThreshold *string `json:"auto_reject_threshold"`
	EmailNotifications  *bool   `json:"email_notifications"`
}

// IntegrationRequest connects or disconnects an integration.
type IntegrationRequest struct {
	ID     string         `json:"id"`
	Name   string         `json:"name"`
	Status string         `json:"status"`
	Config map[string]any `json:"config"`
}

// ContactRequest is a public contact form submission.
type ContactRequest struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Company *string `json:"company"`
	Message string  `json:"message"`
}
