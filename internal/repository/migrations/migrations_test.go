package migrations

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrationsCarryGooseDirections(t *testing.T) {
	files, err := fs.Glob(FS, "*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, name := range files {
		body, err := fs.ReadFile(FS, name)
		require.NoError(t, err)
		assert.Contains(t, string(body), "-- +goose Up", name)
		assert.Contains(t, string(body), "-- +goose Down", name)
	}
}

func TestSchemaDeclaresPairUniqueness(t *testing.T) {
	body, err := fs.ReadFile(FS, "00001_translation_schema.sql")
	require.NoError(t, err)
	schema := string(body)
	assert.True(t, strings.Contains(schema, "uq_translations_key_language UNIQUE (key_id, language_id)"))
	assert.True(t, strings.Contains(schema, "uq_translation_confirmations_key_language UNIQUE (key_id, language_id)"))
}
