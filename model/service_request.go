package model

// Service request types offered by the store.
const (
	ServiceInstallation = "installation"
	ServiceTransport    = "transport"
	ServiceCutting      = "cutting"
)

// Service request statuses, progressed by the backend.
const (
	ServiceRequested  = "requested"
	ServiceScheduled  = "scheduled"
	ServiceInProgress = "in_progress"
	ServiceCompleted  = "completed"
	ServiceRejected   = "rejected"
)

type ServiceRequest struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Status      string `json:"status"`
	Description string `json:"description,omitempty"`
	Address     string `json:"address,omitempty"`
	PreferredAt string `json:"preferred_at,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
}

type CreateServiceRequestInput struct {
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
	Address     string `json:"address"`
	PreferredAt string `json:"preferred_at,omitempty"`
}
