package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/translation-qa-api/internal/models"
	appErrors "github.com/noah-isme/translation-qa-api/pkg/errors"
	"github.com/noah-isme/translation-qa-api/pkg/response"
)

type catalogService interface {
	Languages(ctx context.Context, activeOnly bool) ([]models.Language, error)
	Keys(ctx context.Context, category string) ([]models.TranslationKey, error)
}

// CatalogHandler lists languages and translation keys.
type CatalogHandler struct {
	service catalogService
}

// NewCatalogHandler builds a new handler.
func NewCatalogHandler(service catalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// Languages godoc
// @Summary List languages
// @Tags Catalog
// @Produce json
// @Param include_inactive query bool false "Include inactive languages"
// @Success 200 {object} response.Envelope
// @Router /languages [get]
func (h *CatalogHandler) Languages(c *gin.Context) {
	includeInactive := false
	if raw := c.Query("include_inactive"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "include_inactive must be a boolean"))
			return
		}
		includeInactive = parsed
	}
	languages, err := h.service.Languages(c.Request.Context(), !includeInactive)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, languages, nil)
}

// Keys godoc
// @Summary List translation keys
// @Tags Catalog
// @Produce json
// @Param category query string false "Key category"
// @Success 200 {object} response.Envelope
// @Router /translation-keys [get]
func (h *CatalogHandler) Keys(c *gin.Context) {
	keys, err := h.service.Keys(c.Request.Context(), c.Query("category"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, keys, nil)
}
