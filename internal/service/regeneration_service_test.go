package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/translation-qa-api/internal/dto"
	"github.com/noah-isme/translation-qa-api/internal/models"
	appErrors "github.com/noah-isme/translation-qa-api/pkg/errors"
)

func newRegenerationFixture(cfg RegenerationConfig) (*memStore, *recordingCache, *RegenerationService) {
	store := newMemStore()
	store.addKey(1, "auth.sign_in", "Sign In", "auth")
	store.addKey(2, "nav.home", "Home", "navigation")
	store.addKey(3, "auth.blank", "", "auth")
	store.addTranslation(1, 1, "Sign In", true)
	cache := newRecordingCache()
	svc := NewRegenerationService(RegenerationDeps{
		Translations: memTranslations{store},
		Keys:         memKeys{store},
		Languages:    memLanguages{store},
		Issues:       memIssues{store},
		Tx:           &memTx{store: store},
		Cache:        cache,
	}, cfg, nil, nil)
	return store, cache, svc
}

func spanish() dto.TargetLanguage { return dto.TargetLanguage{ID: 2, Name: "Spanish"} }

func TestRegenerateSignInForSpanish(t *testing.T) {
	store, _, svc := newRegenerationFixture(RegenerationConfig{AutoApprove: true})

	result, err := svc.Regenerate(context.Background(), dto.RegenerateRequest{KeyIDs: []int64{1}, TargetLanguages: []dto.TargetLanguage{spanish()}})
	require.NoError(t, err)
	require.Len(t, result.Results, 1)
	require.Len(t, result.Results[0].Translations, 1)
	item := result.Results[0].Translations[0]
	assert.Equal(t, "auth.sign_in", item.Key)
	assert.Equal(t, "Sign In", item.Original)
	assert.Equal(t, "Iniciar Sesión", item.Translation)
	assert.Equal(t, 1, result.TotalTranslations)
	assert.True(t, result.Approved)

	translation, ok := store.translation(1, 2)
	require.True(t, ok)
	assert.Equal(t, "Iniciar Sesión", translation.TranslationText)
	assert.True(t, translation.IsApproved)
}

func TestRegenerateSkipModeIsIdempotent(t *testing.T) {
	store, _, svc := newRegenerationFixture(RegenerationConfig{AutoApprove: true})
	req := dto.RegenerateRequest{Category: "auth", TargetLanguages: []dto.TargetLanguage{spanish()}}

	first, err := svc.Regenerate(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 1, first.TotalTranslations)
	require.Len(t, first.Skipped, 1)
	assert.Equal(t, "empty baseline text", first.Skipped[0].Reason)

	writes := store.writes
	second, err := svc.Regenerate(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 0, second.TotalTranslations)
	assert.Equal(t, writes, store.writes)
	require.Len(t, second.Skipped, 2)
	reasons := map[int64]string{}
	for _, skipped := range second.Skipped {
		reasons[skipped.KeyID] = skipped.Reason
	}
	assert.Equal(t, "translation already exists", reasons[1])
	assert.Equal(t, "empty baseline text", reasons[3])
}

func TestRegenerateOverwriteReplacesExisting(t *testing.T) {
	store, _, svc := newRegenerationFixture(RegenerationConfig{AutoApprove: true})
	store.addTranslation(1, 2, "Entrar mal", false)

	result, err := svc.Regenerate(context.Background(), dto.RegenerateRequest{KeyIDs: []int64{1}, TargetLanguages: []dto.TargetLanguage{spanish()}, Overwrite: true})
	require.NoError(t, err)
	assert.Equal(t, 1, result.TotalTranslations)
	translation, _ := store.translation(1, 2)
	assert.Equal(t, "Iniciar Sesión", translation.TranslationText)
	assert.True(t, translation.IsApproved)
}

func TestRegenerateWithoutAutoApproveOpensReviewIssue(t *testing.T) {
	store, cache, svc := newRegenerationFixture(RegenerationConfig{AutoApprove: false})

	result, err := svc.Regenerate(context.Background(), dto.RegenerateRequest{KeyIDs: []int64{1, 2, 1}, TargetLanguages: []dto.TargetLanguage{spanish()}})
	require.NoError(t, err)
	assert.False(t, result.Approved)
	assert.Equal(t, 2, result.TotalTranslations)

	translation, _ := store.translation(2, 2)
	assert.Equal(t, "Inicio", translation.TranslationText)
	assert.False(t, translation.IsApproved)

	reviews := 0
	for _, issue := range store.issues {
		if issue.IssueType == models.IssueTypeMachineReview {
			reviews++
			assert.Equal(t, models.SeverityLow, issue.Severity)
			assert.True(t, issue.AutoDetected)
		}
	}
	assert.Equal(t, 2, reviews)
	assert.Equal(t, []string{issueStatsPattern}, cache.invalidated)
}

func TestRegenerateFailureStillInvalidatesCommittedReviews(t *testing.T) {
	store, cache, svc := newRegenerationFixture(RegenerationConfig{AutoApprove: false, Concurrency: 1})
	store.failInsertKey = 2

	_, err := svc.Regenerate(context.Background(), dto.RegenerateRequest{KeyIDs: []int64{1, 2}, TargetLanguages: []dto.TargetLanguage{spanish()}})
	require.Error(t, err)

	assert.Equal(t, 1, store.openIssues(1, 2))
	_, written := store.translation(2, 2)
	assert.False(t, written)
	assert.Equal(t, []string{issueStatsPattern}, cache.invalidated)
}

func TestRegenerateFailureBeforeAnyReviewKeepsCache(t *testing.T) {
	store, cache, svc := newRegenerationFixture(RegenerationConfig{AutoApprove: false, Concurrency: 1})
	store.failInsertKey = 1

	_, err := svc.Regenerate(context.Background(), dto.RegenerateRequest{KeyIDs: []int64{1, 2}, TargetLanguages: []dto.TargetLanguage{spanish()}})
	require.Error(t, err)
	assert.Empty(t, cache.invalidated)
}

func TestRegenerateKeepsRequestLanguageOrder(t *testing.T) {
	_, _, svc := newRegenerationFixture(RegenerationConfig{AutoApprove: true, Concurrency: 4})

	result, err := svc.Regenerate(context.Background(), dto.RegenerateRequest{
		KeyIDs:          []int64{2},
		TargetLanguages: []dto.TargetLanguage{{ID: 3, Name: "French"}, spanish()},
	})
	require.NoError(t, err)
	require.Len(t, result.Results, 2)
	assert.Equal(t, "French", result.Results[0].LanguageName)
	assert.Equal(t, "Accueil", result.Results[0].Translations[0].Translation)
	assert.Equal(t, "Spanish", result.Results[1].LanguageName)
	assert.Equal(t, "Inicio", result.Results[1].Translations[0].Translation)
}

func TestRegenerateRejectsBaselineTarget(t *testing.T) {
	_, _, svc := newRegenerationFixture(RegenerationConfig{AutoApprove: true})

	_, err := svc.Regenerate(context.Background(), dto.RegenerateRequest{KeyIDs: []int64{1}, TargetLanguages: []dto.TargetLanguage{{ID: 1, Name: "English"}}})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestRegenerateValidation(t *testing.T) {
	_, _, svc := newRegenerationFixture(RegenerationConfig{AutoApprove: true})

	_, err := svc.Regenerate(context.Background(), dto.RegenerateRequest{KeyIDs: []int64{1}})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = svc.Regenerate(context.Background(), dto.RegenerateRequest{TargetLanguages: []dto.TargetLanguage{spanish()}})
	require.Error(t, err)
	assert.Equal(t, "key_ids or category is required", appErrors.FromError(err).Message)

	_, err = svc.Regenerate(context.Background(), dto.RegenerateRequest{KeyIDs: []int64{1}, TargetLanguages: []dto.TargetLanguage{{ID: 42}}})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestRegenerateEmptyCategoryYieldsEmptyResults(t *testing.T) {
	_, _, svc := newRegenerationFixture(RegenerationConfig{AutoApprove: true})

	result, err := svc.Regenerate(context.Background(), dto.RegenerateRequest{Category: "billing", TargetLanguages: []dto.TargetLanguage{spanish()}})
	require.NoError(t, err)
	require.Len(t, result.Results, 1)
	assert.Empty(t, result.Results[0].Translations)
	assert.Equal(t, 0, result.TotalTranslations)
}

func TestRegenerateSurfacesStorageFailure(t *testing.T) {
	store, _, svc := newRegenerationFixture(RegenerationConfig{AutoApprove: true})
	store.failUpsert = errStoreDown

	_, err := svc.Regenerate(context.Background(), dto.RegenerateRequest{KeyIDs: []int64{1}, TargetLanguages: []dto.TargetLanguage{spanish()}, Overwrite: true})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInternal.Code, appErrors.FromError(err).Code)
	_, exists := store.translation(1, 2)
	assert.False(t, exists)
}
