package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/translation-qa-api/internal/models"
)

func TestLanguageRepositoryFindByCode(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewLanguageRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("FROM languages WHERE LOWER(code) = LOWER($1)")).
		WithArgs("es").
		WillReturnRows(sqlmock.NewRows([]string{"id", "code", "name", "native_name", "flag", "is_default", "sort_order", "is_active"}).
			AddRow(int64(2), "es", "Spanish", "Español", "", false, 2, true))

	language, err := repo.FindByCode(context.Background(), "es")
	require.NoError(t, err)
	assert.Equal(t, "Spanish", language.Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTranslationKeyRepositoryListByCategory(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewTranslationKeyRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, key_name, description, category, created_at FROM translation_keys WHERE category = $1 ORDER BY key_name ASC")).
		WithArgs("auth").
		WillReturnRows(sqlmock.NewRows([]string{"id", "key_name", "description", "category", "created_at"}).
			AddRow(int64(1), "auth.sign_in", "Sign In", "auth", time.Now()))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM translation_keys WHERE category = $1")).
		WithArgs("auth").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)).AddRow(int64(3)))

	keys, err := repo.List(context.Background(), "auth")
	require.NoError(t, err)
	require.Len(t, keys, 1)

	ids, err := repo.IDsByCategory(context.Background(), "auth")
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 3}, ids)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTranslationConfirmationRepositoryUpsert(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewTranslationConfirmationRepository(db)
	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO translation_confirmations")+".*"+
		regexp.QuoteMeta("ON CONFLICT (key_id, language_id) DO UPDATE")).
		WithArgs(int64(5), int64(2), "maria", "brand name", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(3), now, now))

	confirmation := &models.TranslationConfirmation{KeyID: 5, LanguageID: 2, ConfirmedBy: "maria", ConfirmationReason: "brand name"}
	require.NoError(t, repo.Upsert(context.Background(), confirmation))
	assert.Equal(t, int64(3), confirmation.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTranslationConfirmationRepositoryListByLanguage(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewTranslationConfirmationRepository(db)
	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("FROM translation_confirmations c") + ".*" + regexp.QuoteMeta("WHERE c.language_id = $1")).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "key_id", "language_id", "confirmed_by", "confirmation_reason", "created_at", "updated_at", "key_name", "language_code"}).
			AddRow(int64(3), int64(5), int64(2), "maria", "brand name", now, now, "brand.name", "es"))

	languageID := int64(2)
	list, err := repo.List(context.Background(), &languageID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "brand.name", list[0].KeyName)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCacheRepositoryWithoutClientMisses(t *testing.T) {
	repo := NewCacheRepository(nil, nil)
	var dest map[string]int
	assert.Error(t, repo.Get(context.Background(), "translation_issues:stats:all", &dest))
	assert.NoError(t, repo.Set(context.Background(), "k", 1, time.Minute))
	assert.NoError(t, repo.DeleteByPattern(context.Background(), "translation_issues:stats:*"))
	assert.NoError(t, repo.Close())
}
