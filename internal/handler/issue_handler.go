package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/translation-qa-api/internal/dto"
	"github.com/noah-isme/translation-qa-api/internal/middleware"
	"github.com/noah-isme/translation-qa-api/internal/service"
	appErrors "github.com/noah-isme/translation-qa-api/pkg/errors"
	"github.com/noah-isme/translation-qa-api/pkg/response"
)

type issueService interface {
	List(ctx context.Context, query dto.IssueListQuery) (*dto.IssueListResult, bool, error)
	Apply(ctx context.Context, req dto.IssueActionRequest, actor string) (*dto.IssueActionResult, error)
}

type issueExporter interface {
	ExportIssues(ctx context.Context, query dto.IssueExportQuery) (*service.ExportFile, error)
}

// IssueHandler exposes the translation issue backlog.
type IssueHandler struct {
	service  issueService
	exporter issueExporter
}

// NewIssueHandler builds a new handler.
func NewIssueHandler(service issueService, exporter issueExporter) *IssueHandler {
	return &IssueHandler{service: service, exporter: exporter}
}

// List godoc
// @Summary List translation issues
// @Description Unresolved issues by default, ordered by severity then newest first.
// @Tags Translation Issues
// @Produce json
// @Param language_id query int false "Language ID"
// @Param category query string false "Key category"
// @Param severity query string false "critical, high, medium or low"
// @Param resolved query string false "true, false (default) or all"
// @Param limit query int false "Page size (default 100, max 500)"
// @Param offset query int false "Offset"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /translation-issues [get]
func (h *IssueHandler) List(c *gin.Context) {
	var query dto.IssueListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid query parameters"))
		return
	}
	result, cacheHit, err := h.service.List(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	response.JSON(c, http.StatusOK, result, nil, middleware.ExtractMeta(c))
}

// Apply godoc
// @Summary Resolve, unresolve or delete translation issues
// @Description Targets issue_ids, or every issue of a key/language pair. Pair requests cascade to the translation's approval flag.
// @Tags Translation Issues
// @Accept json
// @Produce json
// @Param X-Actor header string false "Reviewer identity"
// @Param payload body dto.IssueActionRequest true "Issue action"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /translation-issues/actions [post]
func (h *IssueHandler) Apply(c *gin.Context) {
	var req dto.IssueActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid issue action payload"))
		return
	}
	result, err := h.service.Apply(c.Request.Context(), req, actorFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Export godoc
// @Summary Export translation issues
// @Tags Translation Issues
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv (default) or pdf"
// @Param language_id query int false "Language ID"
// @Param category query string false "Key category"
// @Param severity query string false "Severity"
// @Param resolved query string false "true, false (default) or all"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /translation-issues/export [get]
func (h *IssueHandler) Export(c *gin.Context) {
	var query dto.IssueExportQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid query parameters"))
		return
	}
	file, err := h.exporter.ExportIssues(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Body)
}
