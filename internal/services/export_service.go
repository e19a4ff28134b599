package services

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/phpdave11/gofpdf"

	"foodshare/internal/config"
	"foodshare/internal/domain"
	"foodshare/internal/repositories"
	"foodshare/internal/utils"
)

// Export is one generated report, ready to return to the browser. Bytes is
// nil for the json format, where the handler embeds the dataset instead.
type Export struct {
	ReportType  string
	Format      string
	Filename    string
	RowCount    int
	Dataset     repositories.Dataset
	ContentType string
	Bytes       []byte
}

// ExportService generates the downloadable reports: donations, users,
// announcements, requests, engagement and the one-row platform summary.
type ExportService struct {
	Repo      repositories.ExportRepository
	DB        *sql.DB
	RequestID string
}

func (s ExportService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return config.DB
}

func (s ExportService) repo() repositories.ExportRepository {
	if s.Repo.DB != nil {
		return s.Repo
	}
	return repositories.ExportRepository{DB: s.db()}
}

// Generate builds the requested dataset and renders it in the requested
// format. Date criteria are optional and always bound, never interpolated.
func (s ExportService) Generate(ctx context.Context, reportType, dateFrom, dateTo, format string) (Export, error) {
	var (
		out Export
		ds  repositories.Dataset
		err error
	)

	switch format {
	case "", "json":
		format = "json"
	case "csv", "pdf":
	default:
		return out, domain.Validationf("Invalid format.")
	}

	for _, d := range []string{dateFrom, dateTo} {
		if d == "" {
			continue
		}
		if _, err := utils.ParseDate(d); err != nil {
			return out, domain.Validationf("Invalid date range.")
		}
	}

	switch reportType {
	case "donations":
		ds, err = s.repo().Donations(ctx, dateFrom, dateTo)
	case "users":
		ds, err = s.repo().Users(ctx, dateFrom, dateTo)
	case "announcements":
		ds, err = s.repo().Announcements(ctx, dateFrom, dateTo)
	case "requests":
		ds, err = s.repo().Requests(ctx, dateFrom, dateTo)
	case "engagement":
		ds, err = s.repo().Engagement(ctx)
	case "summary":
		ds, err = s.repo().Summary(ctx)
	default:
		return out, domain.Validationf("Invalid report type.")
	}
	if err != nil {
		return out, err
	}

	out = Export{
		ReportType: reportType,
		Format:     format,
		Filename:   fmt.Sprintf("%s_report_%s.%s", reportType, utils.FormatDate(time.Now()), format),
		RowCount:   len(ds.Rows),
		Dataset:    ds,
	}

	switch format {
	case "csv":
		out.ContentType = "text/csv"
		out.Bytes, err = renderCSV(ds)
	case "pdf":
		out.ContentType = "application/pdf"
		out.Bytes, err = renderReportPDF(reportType, dateFrom, dateTo, ds)
	default:
		out.ContentType = "application/json"
	}
	if err != nil {
		return Export{}, err
	}

	utils.LogEvent(s.RequestID, "reports", "generate_report", reportType+" as "+format)
	return out, nil
}

func renderCSV(ds repositories.Dataset) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(ds.Columns); err != nil {
		return nil, err
	}
	for _, row := range ds.Rows {
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderReportPDF(reportType, dateFrom, dateTo string, ds repositories.Dataset) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("FoodShare Report", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, fmt.Sprintf("FoodShare %s report", reportType))
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, "Generated: "+time.Now().Format("2006-01-02 15:04"))
	pdf.Ln(6)
	if dateFrom != "" || dateTo != "" {
		pdf.Cell(0, 6, fmt.Sprintf("Period: %s to %s", orDash(dateFrom), orDash(dateTo)))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	pageW, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	colW := (pageW - left - right) / float64(len(ds.Columns))

	pdf.SetFont("Helvetica", "B", 9)
	for _, col := range ds.Columns {
		pdf.CellFormat(colW, 7, col, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	for _, row := range ds.Rows {
		for _, cell := range row {
			pdf.CellFormat(colW, 6, clipCell(cell, 40), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// clipCell shortens long cell text on rune boundaries.
func clipCell(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
