package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"foodshare/internal/config"
	"foodshare/internal/dispatch"
	"foodshare/internal/domain"
	"foodshare/internal/http/middleware"
	"foodshare/internal/notify"
	"foodshare/internal/storage"
)

const maxUploadMemory = 32 << 20

// Runtime settings shared by the handler funcs, wired once at startup.
var (
	jwtSecret                 = []byte("super-secret-key-change-me")
	store                     = storage.NewStore("uploads")
	notifier  notify.Notifier = &notify.NoopNotifier{}
)

// Configure applies environment settings to the handler package.
func Configure(env config.Env) {
	jwtSecret = []byte(env.JWTSecret)
	store = storage.NewStore(env.UploadDir)
	if env.ResendAPIKey != "" {
		notifier = notify.NewResendNotifier(env.ResendAPIKey, env.EmailFrom)
	}
}

// JWTSecret exposes the configured signing key to the auth middleware.
func JWTSecret() []byte { return jwtSecret }

// formParams collects query, form and multipart fields into one Params bag.
// Action endpoints accept both urlencoded and multipart bodies.
func formParams(c *gin.Context) dispatch.Params {
	if err := c.Request.ParseMultipartForm(maxUploadMemory); err != nil {
		_ = c.Request.ParseForm()
	}
	return dispatch.NewParams(c.Request.Form)
}

// respond writes the action envelope. Envelope errors are reported inside the
// payload, so the HTTP status is always 200 for dispatched actions.
func respond(c *gin.Context, env dispatch.Envelope) {
	c.JSON(http.StatusOK, env)
}

// dispatchAction runs the shared action flow for one page router.
func dispatchAction(c *gin.Context, r *dispatch.Router) {
	p := formParams(c)
	env := r.Dispatch(c.Request.Context(), p.Get("action"), middleware.GetIdentity(c), p)
	respond(c, env)
}

// respondPageError maps domain errors on GET read models, where a plain
// envelope is still the contract.
func respondPageError(c *gin.Context, err error) {
	env := dispatch.Envelope{Success: false}
	if domain.IsValidation(err) || domain.IsNotFound(err) || domain.IsConflict(err) {
		env.Message = err.Error()
	} else {
		env.Message = "Database error: " + err.Error()
	}
	c.JSON(http.StatusOK, env)
}
