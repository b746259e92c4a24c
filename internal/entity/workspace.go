package entity

// Settings is the single row of workspace preferences.
type Settings struct {
	ID                  string  `json:"id"`
	CompanyName         *string `json:"company_name"`
	Website             *string `json:"website"`
	AutoRejectThreshold *string `json:"auto_reject_threshold"`
	EmailNotifications  bool    `json:"email_notifications"`
	UpdatedAt           string  `json:"updated_at"`
}

// Integration statuses.
const (
	IntegrationConnected    = "connected"
	IntegrationDisconnected = "disconnected"
)

// Integration tracks a third-party connection toggled from the settings page.
type Integration struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Status    string         `json:"status"`
	Config    map[string]any `json:"config,omitempty"`
	UpdatedAt string         `json:"updated_at"`
}

// ContactRequest is a message left through the public contact form.
type ContactRequest struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Company   *string `json:"company"`
	Message   string  `json:"message"`
	CreatedAt string  `json:"created_at"`
}

// User is an authenticated recruiter or administrator.
type User struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"`
	CreatedAt    string `json:"created_at"`
}

// User roles.
const (
	RoleAdmin     = "admin"
	RoleRecruiter = "recruiter"
)
