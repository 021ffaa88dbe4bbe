package domain

// DashboardOverview is the admin landing summary.
type DashboardOverview struct {
	TotalUsers          int32          `json:"total_users"`
	PendingApplications int32          `json:"pending_applications"`
	PendingRequests     int32          `json:"pending_requests"`
	UpcomingEvents      []EventDetails `json:"upcoming_events"`
}
