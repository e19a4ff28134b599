package models

import "time"

var (
	ReportStatuses   = []string{"pending", "reviewing", "resolved", "dismissed"}
	ReportPriorities = []string{"low", "medium", "high", "critical"}
	ReportCategories = []string{"spam", "harassment", "inappropriate", "fake", "violence", "other"}
	ReportTypes      = []string{"user", "post", "donation", "comment", "other"}

	FeedbackStatuses   = []string{"new", "reviewed", "responded", "resolved", "archived"}
	FeedbackPriorities = []string{"low", "medium", "high", "urgent"}
	FeedbackTypes      = []string{"platform", "feature", "donation", "announcement", "support", "other"}
)

// UserReport is a moderation report filed against a user, post or donation.
type UserReport struct {
	ID             int64     `json:"id"`
	ReporterID     int64     `json:"reporter_id"`
	ReportedUserID *int64    `json:"reported_user_id"`
	ReportedPostID *int64    `json:"reported_post_id"`
	ReportType     string    `json:"report_type"`
	Category       string    `json:"category"`
	Description    string    `json:"description"`
	Status         string    `json:"status"`
	Priority       string    `json:"priority"`
	ResolvedBy     *int64    `json:"resolved_by"`
	ResolutionNote string    `json:"resolution_note,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	ReporterName      string `json:"reporter_name,omitempty"`
	ReporterEmail     string `json:"reporter_email,omitempty"`
	ReportedUserName  string `json:"reported_user_name,omitempty"`
	ReportedUserEmail string `json:"reported_user_email,omitempty"`
	ResolverName      string `json:"resolver_name,omitempty"`
}

type Feedback struct {
	ID           int64      `json:"id"`
	UserID       int64      `json:"user_id"`
	FeedbackType string     `json:"feedback_type"`
	Rating       int        `json:"rating"`
	Subject      string     `json:"subject"`
	Message      string     `json:"message"`
	Status       string     `json:"status"`
	Priority     string     `json:"priority"`
	Response     string     `json:"response,omitempty"`
	RespondedBy  *int64     `json:"responded_by"`
	RespondedAt  *time.Time `json:"responded_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	UserName      string `json:"user_name,omitempty"`
	UserEmail     string `json:"user_email,omitempty"`
	ResponderName string `json:"responder_name,omitempty"`
}
