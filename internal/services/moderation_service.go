package services

import (
	"context"
	"database/sql"

	"foodshare/internal/config"
	"foodshare/internal/domain"
	"foodshare/internal/domain/models"
	"foodshare/internal/query"
	"foodshare/internal/repositories"
	"foodshare/internal/storage"
	"foodshare/internal/utils"
)

// ModerationService handles the user-reports queue: status/priority changes
// and the enforcement actions an officer can take on a report.
type ModerationService struct {
	Reports       repositories.ReportRepository
	Users         repositories.UserRepository
	Announcements repositories.AnnouncementRepository
	Store         *storage.Store
	DB            *sql.DB
	RequestID     string
}

func (s ModerationService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return config.DB
}

func (s ModerationService) reports() repositories.ReportRepository {
	if s.Reports.DB != nil {
		return s.Reports
	}
	return repositories.ReportRepository{DB: s.db()}
}

func (s ModerationService) users() repositories.UserRepository {
	if s.Users.DB != nil {
		return s.Users
	}
	return repositories.UserRepository{DB: s.db()}
}

func (s ModerationService) announcements() repositories.AnnouncementRepository {
	if s.Announcements.DB != nil {
		return s.Announcements
	}
	return repositories.AnnouncementRepository{DB: s.db()}
}

func (s ModerationService) UpdateStatus(ctx context.Context, reportID int64, status, resolutionNote string, resolvedBy int64) error {
	if reportID <= 0 {
		return domain.Validationf("Invalid report ID.")
	}
	if err := query.EnumStrict("status", status, models.ReportStatuses); err != nil {
		return err
	}
	return s.reports().UpdateStatus(ctx, reportID, status, resolutionNote, resolvedBy)
}

func (s ModerationService) UpdatePriority(ctx context.Context, reportID int64, priority string) error {
	if reportID <= 0 {
		return domain.Validationf("Invalid report ID.")
	}
	if err := query.EnumStrict("priority", priority, models.ReportPriorities); err != nil {
		return err
	}
	return s.reports().UpdatePriority(ctx, reportID, priority)
}

func (s ModerationService) Delete(ctx context.Context, reportID int64) error {
	if reportID <= 0 {
		return domain.Validationf("Invalid report ID.")
	}
	return s.reports().Delete(ctx, reportID)
}

// TakeAction executes an enforcement decision and resolves the report.
// warn_user only records the resolution; suspend_user flips the reported
// account to suspended; delete_content removes the reported post and its
// stored media.
func (s ModerationService) TakeAction(ctx context.Context, reportID int64, actionType string, officerID int64) (string, error) {
	if reportID <= 0 {
		return "", domain.Validationf("Invalid report ID.")
	}

	report, err := s.reports().Get(ctx, reportID)
	if err != nil {
		return "", err
	}

	var message string
	switch actionType {
	case "warn_user":
		message = "Warning issued to user."
	case "suspend_user":
		if report.ReportedUserID == nil {
			return "", domain.Validationf("Report has no reported user.")
		}
		if err := s.users().Suspend(ctx, *report.ReportedUserID); err != nil {
			return "", err
		}
		message = "User has been suspended."
	case "delete_content":
		if report.ReportedPostID == nil {
			return "", domain.Validationf("Report has no reported content.")
		}
		postID := *report.ReportedPostID
		images, docs, err := s.announcements().Media(ctx, postID)
		if err != nil && !domain.IsNotFound(err) {
			return "", err
		}
		if err := s.announcements().Delete(ctx, postID); err != nil {
			return "", err
		}
		if s.Store != nil {
			s.Store.Remove(images...)
			s.Store.RemoveAttachment(docs)
		}
		message = "Reported content has been deleted."
	default:
		return "", domain.Validationf("Invalid action type.")
	}

	if err := s.reports().Resolve(ctx, reportID, officerID); err != nil {
		return "", err
	}
	utils.LogEvent(s.RequestID, "user-reports", "take_action", actionType)
	return message, nil
}

// ReportsPage is the GET read model for the moderation page.
type ReportsPage struct {
	Stats        repositories.ReportStats   `json:"stats"`
	Reports      []models.UserReport        `json:"reports"`
	ByCategory   []repositories.CountBucket `json:"by_category"`
	ByType       []repositories.CountBucket `json:"by_type"`
	TopReporters []repositories.CountBucket `json:"top_reporters"`
	MostReported []repositories.CountBucket `json:"most_reported"`
	DailyTrend   []repositories.CountBucket `json:"daily_trend"`
}

func (s ModerationService) Page(ctx context.Context, f repositories.ReportFilter) (ReportsPage, error) {
	var page ReportsPage
	var err error

	if f.Status, err = query.Enum("status", f.Status, models.ReportStatuses); err != nil {
		return page, err
	}
	if f.Category, err = query.Enum("category", f.Category, models.ReportCategories); err != nil {
		return page, err
	}

	if page.Stats, err = s.reports().Overview(ctx); err != nil {
		return page, err
	}
	if page.Reports, err = s.reports().List(ctx, f); err != nil {
		return page, err
	}
	if page.ByCategory, err = s.reports().ByCategory(ctx); err != nil {
		return page, err
	}
	if page.ByType, err = s.reports().ByType(ctx); err != nil {
		return page, err
	}
	if page.TopReporters, err = s.reports().TopReporters(ctx); err != nil {
		return page, err
	}
	if page.MostReported, err = s.reports().MostReported(ctx); err != nil {
		return page, err
	}
	if page.DailyTrend, err = s.reports().DailyTrend(ctx); err != nil {
		return page, err
	}
	if page.Reports == nil {
		page.Reports = []models.UserReport{}
	}
	return page, nil
}
