package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"foodshare/internal/domain"
)

func TestUnknownActionNeverExecutesHandler(t *testing.T) {
	calls := 0
	r := NewRouter("announcements")
	r.Register("create_announcement", func(ctx context.Context, id Identity, p Params) (*Result, error) {
		calls++
		return &Result{Message: "ok"}, nil
	})

	env := r.Dispatch(context.Background(), "drop_everything", Identity{UserID: 1, Role: "team officer"}, NewParams(nil))
	require.False(t, env.Success)
	require.Equal(t, "Invalid action.", env.Message)
	require.Zero(t, calls)
}

func TestDispatchSuccessFlattensFields(t *testing.T) {
	r := NewRouter("announcements")
	r.Register("toggle_like", func(ctx context.Context, id Identity, p Params) (*Result, error) {
		return &Result{Message: "Post liked!", Fields: Fields{"liked": true, "likes_count": 6}}, nil
	})

	env := r.Dispatch(context.Background(), "toggle_like", Identity{UserID: 7, Role: "team officer"}, NewParams(url.Values{"post_id": {"5"}}))
	require.True(t, env.Success)

	raw, err := json.Marshal(env)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))
	require.Equal(t, true, got["success"])
	require.Equal(t, "Post liked!", got["message"])
	require.Equal(t, true, got["liked"])
	require.EqualValues(t, 6, got["likes_count"])
}

func TestValidationErrorShortCircuits(t *testing.T) {
	r := NewRouter("announcements")
	r.Register("create_announcement", func(ctx context.Context, id Identity, p Params) (*Result, error) {
		if p.Get("title") == "" || p.Get("content") == "" {
			return nil, domain.ValidationError{Msg: "Title and content are required."}
		}
		return &Result{Message: "Announcement created successfully!"}, nil
	})

	env := r.Dispatch(context.Background(), "create_announcement", Identity{}, NewParams(url.Values{"title": {""}}))
	require.False(t, env.Success)
	require.Equal(t, "Title and content are required.", env.Message)
}

func TestNotFoundAndDatabaseErrorMapping(t *testing.T) {
	r := NewRouter("donation_request")
	r.Register("update_request_status", func(ctx context.Context, id Identity, p Params) (*Result, error) {
		return nil, domain.NotFoundError{Resource: "Request"}
	})
	r.Register("get_statistics", func(ctx context.Context, id Identity, p Params) (*Result, error) {
		return nil, errors.New("driver: bad connection")
	})

	env := r.Dispatch(context.Background(), "update_request_status", Identity{}, NewParams(nil))
	require.False(t, env.Success)
	require.Equal(t, "Request not found", env.Message)

	env = r.Dispatch(context.Background(), "get_statistics", Identity{}, NewParams(nil))
	require.False(t, env.Success)
	require.Equal(t, "Database error: driver: bad connection", env.Message)
}

func TestParamsMultiValueAndNumbers(t *testing.T) {
	p := NewParams(url.Values{
		"request_ids[]": {"3", "9", "x", "12"},
		"page":          {"-4"},
		"post_id":       {"5"},
		"is_pinned":     {"on"},
		"status":        {"  approved  "},
	})

	require.Equal(t, []int64{3, 9, 12}, p.Int64s("request_ids"))
	require.Equal(t, -4, p.Int("page"))
	require.EqualValues(t, 5, p.Int64("post_id"))
	require.True(t, p.Bool("is_pinned"))
	require.False(t, p.Bool("missing"))
	require.Equal(t, "approved", p.Get("status"))
	require.Equal(t, "announcement", p.GetDefault("post_type", "announcement"))
}
