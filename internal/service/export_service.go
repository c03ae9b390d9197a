package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/translation-qa-api/internal/dto"
	"github.com/noah-isme/translation-qa-api/internal/models"
	appErrors "github.com/noah-isme/translation-qa-api/pkg/errors"
	"github.com/noah-isme/translation-qa-api/pkg/export"
)

// Supported export formats.
const (
	ExportFormatCSV = "csv"
	ExportFormatPDF = "pdf"
)

var issueExportColumns = []export.Column{
	{Key: "id", Label: "ID"},
	{Key: "key", Label: "Key"},
	{Key: "category", Label: "Category"},
	{Key: "language", Label: "Language"},
	{Key: "severity", Label: "Severity"},
	{Key: "type", Label: "Issue type"},
	{Key: "description", Label: "Description"},
	{Key: "resolved", Label: "Resolved"},
	{Key: "created_at", Label: "Created at"},
}

type issueLister interface {
	List(ctx context.Context, filter models.IssueFilter) ([]models.TranslationIssueDetail, int, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
	ContentType() string
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
	ContentType() string
}

// ExportFile is a rendered download.
type ExportFile struct {
	Filename    string
	ContentType string
	Body        []byte
	Rows        int
}

// ExportService renders the issue backlog as CSV or PDF.
type ExportService struct {
	issues issueLister
	csv    csvRenderer
	pdf    pdfRenderer
	logger *zap.Logger
	now    func() time.Time
}

// NewExportService constructs an ExportService.
func NewExportService(issues issueLister, csv csvRenderer, pdf pdfRenderer, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{issues: issues, csv: csv, pdf: pdf, logger: logger, now: func() time.Time { return time.Now().UTC() }}
}

// ExportIssues renders every issue matching the listing filters. Limit and offset are
// honoured only when given explicitly.
func (s *ExportService) ExportIssues(ctx context.Context, query dto.IssueExportQuery) (*ExportFile, error) {
	format := strings.ToLower(strings.TrimSpace(query.Format))
	if format == "" {
		format = ExportFormatCSV
	}
	if format != ExportFormatCSV && format != ExportFormatPDF {
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}

	filter, err := ParseIssueFilter(query.IssueListQuery)
	if err != nil {
		return nil, err
	}
	if query.Limit <= 0 {
		filter.Limit = 0
	}

	issues, _, err := s.issues.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load issues for export")
	}
	dataset := issueDataset(issues)

	stamp := s.now().Format("20060102-150405")
	file := &ExportFile{Filename: fmt.Sprintf("translation-issues-%s.%s", stamp, format), Rows: len(issues)}
	switch format {
	case ExportFormatPDF:
		file.Body, err = s.pdf.Render(dataset, "Translation issues")
		file.ContentType = s.pdf.ContentType()
	default:
		file.Body, err = s.csv.Render(dataset)
		file.ContentType = s.csv.ContentType()
	}
	if err != nil {
		return nil, appErrors.Internal(err, "failed to render export")
	}
	s.logger.Info("issue export rendered", zap.String("format", format), zap.Int("rows", file.Rows))
	return file, nil
}

func issueDataset(issues []models.TranslationIssueDetail) export.Dataset {
	rows := make([]map[string]string, 0, len(issues))
	for _, issue := range issues {
		rows = append(rows, map[string]string{
			"id":          strconv.FormatInt(issue.ID, 10),
			"key":         issue.KeyName,
			"category":    issue.Category,
			"language":    issue.LanguageCode,
			"severity":    string(issue.Severity),
			"type":        issue.IssueType,
			"description": issue.IssueDescription,
			"resolved":    strconv.FormatBool(issue.IsResolved),
			"created_at":  issue.CreatedAt.Format(time.RFC3339),
		})
	}
	return export.Dataset{Columns: issueExportColumns, Rows: rows}
}
