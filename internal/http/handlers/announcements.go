package handlers

import (
	"context"
	"mime/multipart"

	"github.com/gin-gonic/gin"

	"foodshare/internal/dispatch"
	"foodshare/internal/http/middleware"
	"foodshare/internal/services"
)

// fileHeaders pulls multipart uploads for a field, accepting both the bare
// and the []-suffixed field names used by the page forms.
func fileHeaders(c *gin.Context, field string) []*multipart.FileHeader {
	if c.Request.MultipartForm == nil {
		return nil
	}
	files := c.Request.MultipartForm.File[field]
	if len(files) == 0 {
		files = c.Request.MultipartForm.File[field+"[]"]
	}
	return files
}

func announcementInput(c *gin.Context, p dispatch.Params) services.AnnouncementInput {
	return services.AnnouncementInput{
		ID:          p.Int64("announcement_id"),
		Title:       p.Get("title"),
		Content:     p.Get("content"),
		Type:        p.GetDefault("type", "announcement"),
		Priority:    p.GetDefault("priority", "medium"),
		Status:      p.GetDefault("status", "published"),
		IsPinned:    p.Bool("is_pinned"),
		Images:      fileHeaders(c, "images"),
		Attachments: fileHeaders(c, "attachments"),
	}
}

func announcementsRouter(c *gin.Context) *dispatch.Router {
	rid := middleware.GetRequestID(c)
	ann := services.AnnouncementService{Store: store, RequestID: rid}
	eng := services.EngagementService{}

	r := dispatch.NewRouter("announcements")

	r.Register("create_announcement", func(ctx context.Context, id dispatch.Identity, p dispatch.Params) (*dispatch.Result, error) {
		newID, err := ann.Create(ctx, id.UserID, announcementInput(c, p))
		if err != nil {
			return nil, err
		}
		return &dispatch.Result{
			Message: "Announcement created successfully.",
			Fields:  dispatch.Fields{"announcement_id": newID},
		}, nil
	})

	r.Register("update_announcement", func(ctx context.Context, id dispatch.Identity, p dispatch.Params) (*dispatch.Result, error) {
		if err := ann.Update(ctx, announcementInput(c, p)); err != nil {
			return nil, err
		}
		return &dispatch.Result{Message: "Announcement updated successfully."}, nil
	})

	r.Register("delete_announcement", func(ctx context.Context, id dispatch.Identity, p dispatch.Params) (*dispatch.Result, error) {
		if err := ann.Delete(ctx, p.Int64("announcement_id")); err != nil {
			return nil, err
		}
		return &dispatch.Result{Message: "Announcement deleted successfully."}, nil
	})

	r.Register("toggle_like", func(ctx context.Context, id dispatch.Identity, p dispatch.Params) (*dispatch.Result, error) {
		liked, count, err := eng.ToggleLike(ctx, p.Int64("post_id"), p.GetDefault("post_type", "announcement"), id.UserID)
		if err != nil {
			return nil, err
		}
		return &dispatch.Result{Fields: dispatch.Fields{"liked": liked, "likes_count": count}}, nil
	})

	r.Register("add_comment", func(ctx context.Context, id dispatch.Identity, p dispatch.Params) (*dispatch.Result, error) {
		err := eng.AddComment(ctx, p.Int64("post_id"), p.GetDefault("post_type", "announcement"), id.UserID, p.Get("comment"))
		if err != nil {
			return nil, err
		}
		return &dispatch.Result{Message: "Comment added successfully."}, nil
	})

	r.Register("get_comments", func(ctx context.Context, id dispatch.Identity, p dispatch.Params) (*dispatch.Result, error) {
		page, err := eng.GetComments(ctx, p.Int64("post_id"), p.GetDefault("post_type", "announcement"), id.UserID, p.Int("page"))
		if err != nil {
			return nil, err
		}
		return &dispatch.Result{Fields: dispatch.Fields{
			"comments":     page.Comments,
			"total_count":  page.TotalCount,
			"current_page": page.CurrentPage,
			"has_more":     page.HasMore,
		}}, nil
	})

	r.Register("share_post", func(ctx context.Context, id dispatch.Identity, p dispatch.Params) (*dispatch.Result, error) {
		err := eng.SharePost(ctx, p.Int64("post_id"), p.GetDefault("post_type", "announcement"), id.UserID, p.Get("share_message"))
		if err != nil {
			return nil, err
		}
		return &dispatch.Result{Message: "Post shared successfully."}, nil
	})

	r.Register("save_post", func(ctx context.Context, id dispatch.Identity, p dispatch.Params) (*dispatch.Result, error) {
		saved, err := eng.ToggleSave(ctx, p.Int64("post_id"), p.GetDefault("post_type", "announcement"), id.UserID)
		if err != nil {
			return nil, err
		}
		msg := "Post removed from saved items."
		if saved {
			msg = "Post saved successfully."
		}
		return &dispatch.Result{Message: msg, Fields: dispatch.Fields{"saved": saved}}, nil
	})

	r.Register("get_post_details", func(ctx context.Context, id dispatch.Identity, p dispatch.Params) (*dispatch.Result, error) {
		post, err := ann.Details(ctx, p.Int64("post_id"))
		if err != nil {
			return nil, err
		}
		return &dispatch.Result{Fields: dispatch.Fields{"post": post}}, nil
	})

	r.Register("load_posts", func(ctx context.Context, id dispatch.Identity, p dispatch.Params) (*dispatch.Result, error) {
		posts, err := ann.Feed(ctx, p.GetDefault("filter_type", "all"), id.UserID, p.Int("page"))
		if err != nil {
			return nil, err
		}
		return &dispatch.Result{Fields: dispatch.Fields{"posts": posts, "page": p.Int("page")}}, nil
	})

	return r
}

// POST /api/officer/announcements/actions
func AnnouncementActions(c *gin.Context) {
	dispatchAction(c, announcementsRouter(c))
}

// GET /api/officer/announcements
func AnnouncementFeed(c *gin.Context) {
	ann := services.AnnouncementService{Store: store, RequestID: middleware.GetRequestID(c)}
	id := middleware.GetIdentity(c)
	p := formParams(c)

	posts, err := ann.Feed(c.Request.Context(), p.GetDefault("filter_type", "all"), id.UserID, p.Int("page"))
	if err != nil {
		respondPageError(c, err)
		return
	}
	respond(c, dispatch.Envelope{Success: true, Fields: dispatch.Fields{"posts": posts}})
}
