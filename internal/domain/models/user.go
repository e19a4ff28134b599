package models

// User mirrors the user_accounts table.
type User struct {
	ID          int64  `json:"user_id"`
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Address     string `json:"address"`
	Role        string `json:"role"`
	Status      string `json:"status"`
	ProfileImg  string `json:"profile_img,omitempty"`
}
