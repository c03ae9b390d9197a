package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/translation-qa-api/internal/dto"
	appErrors "github.com/noah-isme/translation-qa-api/pkg/errors"
	"github.com/noah-isme/translation-qa-api/pkg/response"
)

type regenerationService interface {
	Regenerate(ctx context.Context, req dto.RegenerateRequest) (*dto.RegenerateResult, error)
}

type verificationService interface {
	Verify(ctx context.Context, req dto.VerifyRequest) (*dto.VerifyResult, error)
	Scan(ctx context.Context, req dto.ScanRequest) (*dto.ScanResult, error)
}

type translationService interface {
	Upsert(ctx context.Context, req dto.UpsertTranslationRequest, actor string) (*dto.UpsertTranslationResult, error)
}

// TranslationHandler exposes regeneration, verification and manual edits.
type TranslationHandler struct {
	regeneration regenerationService
	verification verificationService
	translations translationService
}

// NewTranslationHandler builds a new handler.
func NewTranslationHandler(regeneration regenerationService, verification verificationService, translations translationService) *TranslationHandler {
	return &TranslationHandler{regeneration: regeneration, verification: verification, translations: translations}
}

// Regenerate godoc
// @Summary Regenerate machine translations
// @Description Translates baseline text into each target language. overwrite=false skips pairs that already have a translation.
// @Tags Translations
// @Accept json
// @Produce json
// @Param payload body dto.RegenerateRequest true "Regeneration payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /translations/regenerate [post]
func (h *TranslationHandler) Regenerate(c *gin.Context) {
	var req dto.RegenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid regeneration payload"))
		return
	}
	result, err := h.regeneration.Regenerate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Verify godoc
// @Summary Score a candidate translation
// @Tags Translations
// @Accept json
// @Produce json
// @Param payload body dto.VerifyRequest true "Verification payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /translations/verify [post]
func (h *TranslationHandler) Verify(c *gin.Context) {
	var req dto.VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid verification payload"))
		return
	}
	result, err := h.verification.Verify(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Scan godoc
// @Summary Run a verification scan
// @Description Scores every translation of a language and files auto-detected issues under one run id.
// @Tags Translations
// @Accept json
// @Produce json
// @Param payload body dto.ScanRequest true "Scan payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /translations/verification-runs [post]
func (h *TranslationHandler) Scan(c *gin.Context) {
	var req dto.ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid scan payload"))
		return
	}
	result, err := h.verification.Scan(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Upsert godoc
// @Summary Edit a translation
// @Description Blank translation_text removes the translation.
// @Tags Translations
// @Accept json
// @Produce json
// @Param X-Actor header string false "Editor identity"
// @Param payload body dto.UpsertTranslationRequest true "Translation payload"
// @Success 200 {object} response.Envelope
// @Success 201 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /translations [put]
func (h *TranslationHandler) Upsert(c *gin.Context) {
	var req dto.UpsertTranslationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid translation payload"))
		return
	}
	result, err := h.translations.Upsert(c.Request.Context(), req, actorFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	if result.Created {
		response.Created(c, result)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}
