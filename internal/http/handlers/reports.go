package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"foodshare/internal/dispatch"
	"foodshare/internal/http/middleware"
	"foodshare/internal/services"
)

func reportsRouter(c *gin.Context, out *services.Export) *dispatch.Router {
	svc := services.ExportService{RequestID: middleware.GetRequestID(c)}

	r := dispatch.NewRouter("reports")

	r.Register("generate_report", func(ctx context.Context, id dispatch.Identity, p dispatch.Params) (*dispatch.Result, error) {
		export, err := svc.Generate(ctx,
			p.Get("report_type"),
			p.Get("date_from"),
			p.Get("date_to"),
			p.GetDefault("format", "json"),
		)
		if err != nil {
			return nil, err
		}
		*out = export

		if export.Bytes != nil {
			// Binary formats are written by the caller, not the envelope.
			return &dispatch.Result{}, nil
		}
		return &dispatch.Result{Fields: dispatch.Fields{
			"report_type": export.ReportType,
			"filename":    export.Filename,
			"row_count":   export.RowCount,
			"columns":     export.Dataset.Columns,
			"rows":        export.Dataset.Rows,
		}}, nil
	})

	return r
}

// POST /api/officer/reports/actions
//
// The json format answers with the usual envelope; csv and pdf answer with
// the generated document as a download.
func ReportActions(c *gin.Context) {
	var export services.Export
	r := reportsRouter(c, &export)

	p := formParams(c)
	env := r.Dispatch(c.Request.Context(), p.Get("action"), middleware.GetIdentity(c), p)

	if env.Success && export.Bytes != nil {
		c.Header("Content-Disposition", `attachment; filename="`+export.Filename+`"`)
		c.Data(http.StatusOK, export.ContentType, export.Bytes)
		return
	}
	respond(c, env)
}
