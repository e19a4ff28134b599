package models

import "time"

// Announcement enum values as stored in the database.
var (
	AnnouncementTypes      = []string{"announcement", "guideline", "reminder", "alert"}
	AnnouncementPriorities = []string{"low", "medium", "high", "critical"}
	AnnouncementStatuses   = []string{"draft", "published", "archived"}
)

// Attachment is the typed form of the JSON documents stored on the
// announcements.attachments column.
type Attachment struct {
	Path         string `json:"path"`
	OriginalName string `json:"original_name"`
	Size         int64  `json:"size"`
	Type         string `json:"type"`
}

type Announcement struct {
	ID            int64        `json:"id"`
	UserID        int64        `json:"user_id"`
	Title         string       `json:"title"`
	Content       string       `json:"content"`
	Type          string       `json:"type"`
	Priority      string       `json:"priority"`
	Status        string       `json:"status"`
	IsPinned      bool         `json:"is_pinned"`
	Images        []string     `json:"images"`
	Attachments   []Attachment `json:"attachments"`
	LikesCount    int          `json:"likes_count"`
	SharesCount   int          `json:"shares_count"`
	CommentsCount int          `json:"comments_count"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`

	// Joined author fields.
	AuthorName string `json:"author_name,omitempty"`
	AuthorImg  string `json:"author_img,omitempty"`

	// Per-viewer flags for feed listings.
	IsLiked bool `json:"is_liked"`
	IsSaved bool `json:"is_saved"`
}

type Comment struct {
	ID           int64     `json:"id"`
	PostID       int64     `json:"post_id"`
	PostType     string    `json:"post_type"`
	UserID       int64     `json:"user_id"`
	Comment      string    `json:"comment"`
	UserName     string    `json:"user_name"`
	ProfileImg   string    `json:"profile_img"`
	CreatedAt    time.Time `json:"created_at"`
	IsOwnComment bool      `json:"is_own_comment"`
}
