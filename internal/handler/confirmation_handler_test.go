package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/translation-qa-api/internal/dto"
	"github.com/noah-isme/translation-qa-api/internal/middleware"
	"github.com/noah-isme/translation-qa-api/internal/models"
	appErrors "github.com/noah-isme/translation-qa-api/pkg/errors"
)

type confirmationServiceStub struct {
	req        dto.ConfirmTranslationRequest
	actor      string
	languageID *int64
	removed    [2]int64
	removeErr  error
}

func (s *confirmationServiceStub) Confirm(ctx context.Context, req dto.ConfirmTranslationRequest, actor string) (*dto.ConfirmTranslationResult, error) {
	s.req, s.actor = req, actor
	return &dto.ConfirmTranslationResult{ResolvedIssuesCount: 1, TranslationApproved: true}, nil
}

func (s *confirmationServiceStub) List(ctx context.Context, languageID *int64) ([]models.ConfirmationDetail, error) {
	s.languageID = languageID
	return []models.ConfirmationDetail{}, nil
}

func (s *confirmationServiceStub) Remove(ctx context.Context, keyID, languageID int64) error {
	s.removed = [2]int64{keyID, languageID}
	return s.removeErr
}

func TestConfirmationHandlerConfirm(t *testing.T) {
	svc := &confirmationServiceStub{}
	h := NewConfirmationHandler(svc)
	c, w := newTestContext(http.MethodPost, "/translation-confirmations", dto.ConfirmTranslationRequest{KeyID: 1, LanguageID: 2, OverrideReason: "Brand term"})
	c.Set(middleware.ContextActorKey, "lead")

	h.Confirm(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "lead", svc.actor)
	assert.Equal(t, "Brand term", svc.req.OverrideReason)
	var data map[string]interface{}
	decodeEnvelope(t, w, &data)
	assert.Equal(t, float64(1), data["resolved_issues_count"])
	assert.Equal(t, true, data["translation_approved"])
}

func TestConfirmationHandlerListParsesLanguage(t *testing.T) {
	svc := &confirmationServiceStub{}
	h := NewConfirmationHandler(svc)
	c, w := newTestContext(http.MethodGet, "/translation-confirmations?language_id=3", nil)

	h.List(c)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, svc.languageID)
	assert.Equal(t, int64(3), *svc.languageID)

	c, w = newTestContext(http.MethodGet, "/translation-confirmations?language_id=x", nil)
	h.List(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestConfirmationHandlerDelete(t *testing.T) {
	svc := &confirmationServiceStub{}
	h := NewConfirmationHandler(svc)
	c, w := newTestContext(http.MethodDelete, "/translation-confirmations/4/2", nil)
	c.Params = gin.Params{{Key: "keyId", Value: "4"}, {Key: "languageId", Value: "2"}}

	h.Delete(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, [2]int64{4, 2}, svc.removed)

	svc.removeErr = appErrors.Clone(appErrors.ErrNotFound, "confirmation not found")
	c, w = newTestContext(http.MethodDelete, "/translation-confirmations/4/2", nil)
	c.Params = gin.Params{{Key: "keyId", Value: "4"}, {Key: "languageId", Value: "2"}}
	h.Delete(c)
	assert.Equal(t, http.StatusNotFound, w.Code)

	c, w = newTestContext(http.MethodDelete, "/translation-confirmations/x/2", nil)
	c.Params = gin.Params{{Key: "keyId", Value: "x"}, {Key: "languageId", Value: "2"}}
	h.Delete(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
