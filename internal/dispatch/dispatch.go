// Package dispatch implements the shared action router used by every
// back-office page: one endpoint, an `action` field, a registered handler map,
// and a uniform JSON envelope.
package dispatch

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
	"strings"

	"foodshare/internal/domain"
)

// Identity is the authenticated caller, passed explicitly into every handler.
type Identity struct {
	UserID int64
	Role   string
}

// Params is the bag of request parameters for one action call.
// Multi-value keys (e.g. request_ids[]) are preserved.
type Params struct {
	values url.Values
}

func NewParams(values url.Values) Params {
	if values == nil {
		values = url.Values{}
	}
	return Params{values: values}
}

func (p Params) Get(key string) string {
	return strings.TrimSpace(p.values.Get(key))
}

// GetDefault returns the trimmed value or fallback when the key is empty.
func (p Params) GetDefault(key, fallback string) string {
	if v := p.Get(key); v != "" {
		return v
	}
	return fallback
}

func (p Params) Int(key string) int {
	n, _ := strconv.Atoi(p.Get(key))
	return n
}

func (p Params) Int64(key string) int64 {
	n, _ := strconv.ParseInt(p.Get(key), 10, 64)
	return n
}

// Bool reports whether the key is present at all (checkbox semantics).
func (p Params) Bool(key string) bool {
	_, ok := p.values[key]
	return ok
}

// Int64s collects a multi-value integer list, accepting both "ids" and
// "ids[]" form conventions. Non-numeric entries are skipped.
func (p Params) Int64s(key string) []int64 {
	raw := p.values[key]
	if len(raw) == 0 {
		raw = p.values[key+"[]"]
	}
	var out []int64
	for _, s := range raw {
		if n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64); err == nil {
			out = append(out, n)
		}
	}
	return out
}

// Fields are extra top-level members merged into a success envelope.
type Fields map[string]any

// Result is what a handler produces on success.
type Result struct {
	Message string
	Fields  Fields
}

// Handler performs one database operation for one named action.
type Handler func(ctx context.Context, id Identity, p Params) (*Result, error)

// Envelope is the uniform response contract returned to the browser.
type Envelope struct {
	Success bool
	Message string
	Fields  Fields
}

// MarshalJSON flattens Fields into the top-level object alongside
// success/message, matching the shape the page scripts expect.
func (e Envelope) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(e.Fields)+2)
	for k, v := range e.Fields {
		out[k] = v
	}
	out["success"] = e.Success
	if e.Message != "" {
		out["message"] = e.Message
	}
	return json.Marshal(out)
}

// Router holds the registered handler map for one page.
type Router struct {
	page     string
	handlers map[string]Handler
}

func NewRouter(page string) *Router {
	return &Router{page: page, handlers: map[string]Handler{}}
}

func (r *Router) Page() string { return r.page }

// Register binds an action name to its handler. Last registration wins.
func (r *Router) Register(action string, h Handler) *Router {
	r.handlers[action] = h
	return r
}

// Actions lists the registered action names.
func (r *Router) Actions() []string {
	out := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		out = append(out, name)
	}
	return out
}

// Dispatch selects and invokes exactly one handler, then folds the result or
// error into an Envelope. Unknown actions never reach a handler.
func (r *Router) Dispatch(ctx context.Context, action string, id Identity, p Params) Envelope {
	h, ok := r.handlers[action]
	if !ok {
		return Envelope{Success: false, Message: "Invalid action."}
	}

	res, err := h(ctx, id, p)
	if err != nil {
		return envelopeForError(err)
	}

	env := Envelope{Success: true}
	if res != nil {
		env.Message = res.Message
		env.Fields = res.Fields
	}
	return env
}

func envelopeForError(err error) Envelope {
	switch {
	case domain.IsValidation(err), domain.IsNotFound(err), domain.IsConflict(err):
		return Envelope{Success: false, Message: err.Error()}
	default:
		return Envelope{Success: false, Message: "Database error: " + err.Error()}
	}
}
