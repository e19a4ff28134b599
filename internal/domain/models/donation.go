package models

import "time"

var (
	DonationStatuses         = []string{"available", "reserved", "claimed", "expired", "cancelled"}
	ReservationStatuses      = []string{"pending", "approved", "rejected", "completed", "cancelled"}
	ReservationFinalStatuses = []string{"approved", "rejected", "completed", "cancelled"}
)

type Donation struct {
	ID              int64      `json:"id"`
	UserID          int64      `json:"user_id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	FoodType        string     `json:"food_type"`
	Quantity        string     `json:"quantity"`
	LocationAddress string     `json:"location_address"`
	ExpirationDate  *time.Time `json:"expiration_date"`
	Status          string     `json:"status"`
	ApprovalStatus  string     `json:"approval_status"`
	ApprovedBy      *int64     `json:"approved_by"`
	ApprovedAt      *time.Time `json:"approved_at"`
	RejectionReason string     `json:"rejection_reason,omitempty"`
	AssignedToID    *int64     `json:"assigned_to_user_id"`
	AssignedAt      *time.Time `json:"assigned_at"`
	AssignmentNotes string     `json:"assignment_notes,omitempty"`
	Images          []string   `json:"images"`
	ViewsCount      int        `json:"views_count"`
	CreatedAt       time.Time  `json:"created_at"`

	DonorName      string `json:"donor_name,omitempty"`
	DonorEmail     string `json:"donor_email,omitempty"`
	DonorPhone     string `json:"donor_phone,omitempty"`
	ApprovedByName string `json:"approved_by_name,omitempty"`
	AssignedToName string `json:"assigned_to_name,omitempty"`
	AssignedToMail string `json:"assigned_to_email,omitempty"`
}

// Reservation is a donation request made by (or on behalf of) a resident.
type Reservation struct {
	ID          int64      `json:"id"`
	DonationID  int64      `json:"donation_id"`
	RequesterID int64      `json:"requester_id"`
	Message     string     `json:"message"`
	ContactInfo string     `json:"contact_info"`
	Status      string     `json:"status"`
	AdminNotes  string     `json:"admin_notes,omitempty"`
	ReservedAt  time.Time  `json:"reserved_at"`
	RespondedAt *time.Time `json:"responded_at"`

	DonationTitle       string `json:"donation_title,omitempty"`
	DonationDescription string `json:"donation_description,omitempty"`
	FoodType            string `json:"food_type,omitempty"`
	Quantity            string `json:"quantity,omitempty"`
	LocationAddress     string `json:"location_address,omitempty"`
	RequesterName       string `json:"requester_name,omitempty"`
	RequesterEmail      string `json:"requester_email,omitempty"`
	RequesterPhone      string `json:"requester_phone,omitempty"`
	DonorName           string `json:"donor_name,omitempty"`
	DonorEmail          string `json:"donor_email,omitempty"`
	DonorPhone          string `json:"donor_phone,omitempty"`
}
