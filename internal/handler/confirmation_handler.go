package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/translation-qa-api/internal/dto"
	"github.com/noah-isme/translation-qa-api/internal/models"
	appErrors "github.com/noah-isme/translation-qa-api/pkg/errors"
	"github.com/noah-isme/translation-qa-api/pkg/response"
)

type confirmationService interface {
	Confirm(ctx context.Context, req dto.ConfirmTranslationRequest, actor string) (*dto.ConfirmTranslationResult, error)
	List(ctx context.Context, languageID *int64) ([]models.ConfirmationDetail, error)
	Remove(ctx context.Context, keyID, languageID int64) error
}

// ConfirmationHandler exposes manual translation overrides.
type ConfirmationHandler struct {
	service confirmationService
}

// NewConfirmationHandler builds a new handler.
func NewConfirmationHandler(service confirmationService) *ConfirmationHandler {
	return &ConfirmationHandler{service: service}
}

// Confirm godoc
// @Summary Confirm a translation
// @Description Resolves the pair's open issues, approves its translation and records the override.
// @Tags Translation Confirmations
// @Accept json
// @Produce json
// @Param X-Actor header string false "Reviewer identity"
// @Param payload body dto.ConfirmTranslationRequest true "Confirmation payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /translation-confirmations [post]
func (h *ConfirmationHandler) Confirm(c *gin.Context) {
	var req dto.ConfirmTranslationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid confirmation payload"))
		return
	}
	result, err := h.service.Confirm(c.Request.Context(), req, actorFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// List godoc
// @Summary List confirmations
// @Tags Translation Confirmations
// @Produce json
// @Param language_id query int false "Language ID"
// @Success 200 {object} response.Envelope
// @Router /translation-confirmations [get]
func (h *ConfirmationHandler) List(c *gin.Context) {
	languageID, err := optionalInt64Query(c, "language_id")
	if err != nil {
		response.Error(c, err)
		return
	}
	items, err := h.service.List(c.Request.Context(), languageID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, nil)
}

// Delete godoc
// @Summary Remove a confirmation
// @Description Approval and issues are left unchanged.
// @Tags Translation Confirmations
// @Produce json
// @Param keyId path int true "Key ID"
// @Param languageId path int true "Language ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /translation-confirmations/{keyId}/{languageId} [delete]
func (h *ConfirmationHandler) Delete(c *gin.Context) {
	keyID, err := int64Param(c, "keyId")
	if err != nil {
		response.Error(c, err)
		return
	}
	languageID, err := int64Param(c, "languageId")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.service.Remove(c.Request.Context(), keyID, languageID); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"deleted": true}, nil)
}
