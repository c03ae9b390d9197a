package service

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/noah-isme/translation-qa-api/internal/models"
	"github.com/noah-isme/translation-qa-api/internal/repository"
)

type pairKey struct {
	keyID      int64
	languageID int64
}

// memStore is an in-memory stand-in for the translation tables.
type memStore struct {
	mu            sync.Mutex
	keys          map[int64]models.TranslationKey
	languages     map[int64]models.Language
	translations  map[pairKey]models.Translation
	issues        map[int64]models.TranslationIssue
	confirmations map[pairKey]models.TranslationConfirmation
	nextID        int64
	writes        int

	failSetApproved error
	failUpsert      error
	failInsertKey   int64
}

func newMemStore() *memStore {
	s := &memStore{
		keys:          map[int64]models.TranslationKey{},
		languages:     map[int64]models.Language{},
		translations:  map[pairKey]models.Translation{},
		issues:        map[int64]models.TranslationIssue{},
		confirmations: map[pairKey]models.TranslationConfirmation{},
		nextID:        1000,
	}
	s.languages[1] = models.Language{ID: 1, Code: "en", Name: "English", IsActive: true, IsDefault: true, SortOrder: 1}
	s.languages[2] = models.Language{ID: 2, Code: "es", Name: "Spanish", IsActive: true, SortOrder: 2}
	s.languages[3] = models.Language{ID: 3, Code: "fr", Name: "French", IsActive: true, SortOrder: 3}
	return s
}

func (s *memStore) addKey(id int64, name, description, category string) {
	s.keys[id] = models.TranslationKey{ID: id, KeyName: name, Description: description, Category: category}
}

func (s *memStore) addTranslation(keyID, languageID int64, text string, approved bool) {
	s.nextID++
	s.translations[pairKey{keyID, languageID}] = models.Translation{
		ID: s.nextID, KeyID: keyID, LanguageID: languageID, TranslationText: text, IsApproved: approved,
	}
}

func (s *memStore) addIssue(keyID, languageID int64, issueType string, severity models.IssueSeverity, resolved bool) int64 {
	s.nextID++
	s.issues[s.nextID] = models.TranslationIssue{
		ID: s.nextID, KeyID: keyID, LanguageID: languageID, IssueType: issueType, Severity: severity,
		IsResolved: resolved, CreatedAt: time.Unix(s.nextID, 0),
	}
	return s.nextID
}

func (s *memStore) translation(keyID, languageID int64) (models.Translation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.translations[pairKey{keyID, languageID}]
	return t, ok
}

func (s *memStore) openIssues(keyID, languageID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, issue := range s.issues {
		if issue.KeyID == keyID && issue.LanguageID == languageID && !issue.IsResolved {
			count++
		}
	}
	return count
}

type memSnapshot struct {
	translations  map[pairKey]models.Translation
	issues        map[int64]models.TranslationIssue
	confirmations map[pairKey]models.TranslationConfirmation
	writes        int
}

func (s *memStore) snapshot() memSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := memSnapshot{
		translations:  map[pairKey]models.Translation{},
		issues:        map[int64]models.TranslationIssue{},
		confirmations: map[pairKey]models.TranslationConfirmation{},
		writes:        s.writes,
	}
	for k, v := range s.translations {
		snap.translations[k] = v
	}
	for k, v := range s.issues {
		snap.issues[k] = v
	}
	for k, v := range s.confirmations {
		snap.confirmations[k] = v
	}
	return snap
}

func (s *memStore) restore(snap memSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.translations = snap.translations
	s.issues = snap.issues
	s.confirmations = snap.confirmations
	s.writes = snap.writes
}

// memTx runs fn and restores the store when fn fails, mimicking a rollback.
type memTx struct {
	store *memStore
	calls int
	mu    sync.Mutex
}

func (t *memTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.mu.Lock()
	t.calls++
	t.mu.Unlock()
	snap := t.store.snapshot()
	if err := fn(ctx); err != nil {
		t.store.restore(snap)
		return err
	}
	return nil
}

func matchesSelector(issue models.TranslationIssue, selector models.IssueSelector) bool {
	if len(selector.IDs) > 0 {
		for _, id := range selector.IDs {
			if issue.ID == id {
				return true
			}
		}
		return false
	}
	return issue.KeyID == *selector.KeyID && issue.LanguageID == *selector.LanguageID
}

type memIssues struct{ *memStore }

func (r memIssues) List(_ context.Context, filter models.IssueFilter) ([]models.TranslationIssueDetail, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.TranslationIssueDetail
	for _, issue := range r.issues {
		key := r.keys[issue.KeyID]
		if filter.LanguageID != nil && issue.LanguageID != *filter.LanguageID {
			continue
		}
		if filter.Resolved != nil && issue.IsResolved != *filter.Resolved {
			continue
		}
		if filter.Severity != "" && issue.Severity != filter.Severity {
			continue
		}
		if filter.Category != "" && key.Category != filter.Category {
			continue
		}
		out = append(out, models.TranslationIssueDetail{
			TranslationIssue: issue,
			KeyName:          key.KeyName,
			Category:         key.Category,
			LanguageCode:     r.languages[issue.LanguageID].Code,
			LanguageName:     r.languages[issue.LanguageID].Name,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Severity.Rank() != out[j].Severity.Rank() {
			return out[i].Severity.Rank() < out[j].Severity.Rank()
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	total := len(out)
	if filter.Offset >= len(out) {
		return []models.TranslationIssueDetail{}, total, nil
	}
	out = out[filter.Offset:]
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, total, nil
}

func (r memIssues) Breakdown(_ context.Context, languageID *int64) (models.IssueBreakdown, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b := models.IssueBreakdown{Severity: map[string]int{}, Category: map[string]int{}}
	for _, issue := range r.issues {
		if issue.IsResolved || (languageID != nil && issue.LanguageID != *languageID) {
			continue
		}
		b.Severity[string(issue.Severity)]++
		b.Category[r.keys[issue.KeyID].Category]++
	}
	return b, nil
}

func (r memIssues) Resolve(_ context.Context, selector models.IssueSelector, actor string, at time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, issue := range r.issues {
		if issue.IsResolved || !matchesSelector(issue, selector) {
			continue
		}
		by := actor
		issue.IsResolved, issue.ResolvedAt, issue.ResolvedBy, issue.UpdatedAt = true, &at, &by, at
		r.issues[id] = issue
		n++
	}
	r.writes += int(n)
	return n, nil
}

func (r memIssues) Unresolve(_ context.Context, selector models.IssueSelector, at time.Time) ([]models.IssuePair, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var pairs []models.IssuePair
	for id, issue := range r.issues {
		if !issue.IsResolved || !matchesSelector(issue, selector) {
			continue
		}
		issue.IsResolved, issue.ResolvedAt, issue.ResolvedBy, issue.UpdatedAt = false, nil, nil, at
		r.issues[id] = issue
		pairs = append(pairs, models.IssuePair{KeyID: issue.KeyID, LanguageID: issue.LanguageID})
	}
	r.writes += len(pairs)
	return pairs, nil
}

func (r memIssues) Delete(_ context.Context, selector models.IssueSelector) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, issue := range r.issues {
		if matchesSelector(issue, selector) {
			delete(r.issues, id)
			n++
		}
	}
	r.writes += int(n)
	return n, nil
}

func (r memIssues) CountUnresolved(_ context.Context, keyID, languageID int64) (int, error) {
	return r.openIssues(keyID, languageID), nil
}

func (r memIssues) ExistsUnresolved(_ context.Context, keyID, languageID int64, issueType string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, issue := range r.issues {
		if issue.KeyID == keyID && issue.LanguageID == languageID && issue.IssueType == issueType && !issue.IsResolved {
			return true, nil
		}
	}
	return false, nil
}

func (r memIssues) Create(_ context.Context, issue *models.TranslationIssue) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	issue.ID = r.nextID
	r.issues[issue.ID] = *issue
	r.writes++
	return nil
}

type memTranslations struct{ *memStore }

func (r memTranslations) Get(_ context.Context, keyID, languageID int64) (*models.Translation, error) {
	t, ok := r.translation(keyID, languageID)
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &t, nil
}

func (r memTranslations) LockForUpdate(_ context.Context, keyID, languageID int64) (*models.Translation, error) {
	t, ok := r.translation(keyID, languageID)
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (r memTranslations) SetApproved(_ context.Context, keyID, languageID int64, approved bool, at time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failSetApproved != nil {
		return 0, r.failSetApproved
	}
	t, ok := r.translations[pairKey{keyID, languageID}]
	if !ok {
		return 0, nil
	}
	t.IsApproved, t.UpdatedAt = approved, at
	r.translations[pairKey{keyID, languageID}] = t
	r.writes++
	return 1, nil
}

func (r memTranslations) Upsert(_ context.Context, keyID, languageID int64, text string, approved bool, at time.Time) (models.UpsertResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failUpsert != nil {
		return models.UpsertResult{}, r.failUpsert
	}
	k := pairKey{keyID, languageID}
	t, exists := r.translations[k]
	if !exists {
		r.nextID++
		t = models.Translation{ID: r.nextID, KeyID: keyID, LanguageID: languageID, CreatedAt: at}
	}
	t.TranslationText, t.IsApproved, t.UpdatedAt = text, approved, at
	r.translations[k] = t
	r.writes++
	return models.UpsertResult{ID: t.ID, Inserted: !exists}, nil
}

func (r memTranslations) InsertIfAbsent(_ context.Context, keyID, languageID int64, text string, approved bool, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failInsertKey != 0 && r.failInsertKey == keyID {
		return false, errStoreDown
	}
	k := pairKey{keyID, languageID}
	if _, exists := r.translations[k]; exists {
		return false, nil
	}
	r.nextID++
	r.translations[k] = models.Translation{ID: r.nextID, KeyID: keyID, LanguageID: languageID, TranslationText: text, IsApproved: approved, CreatedAt: at, UpdatedAt: at}
	r.writes++
	return true, nil
}

func (r memTranslations) Delete(_ context.Context, keyID, languageID int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := pairKey{keyID, languageID}
	if _, ok := r.translations[k]; !ok {
		return 0, nil
	}
	delete(r.translations, k)
	r.writes++
	return 1, nil
}

func (r memTranslations) ExistingKeyIDs(_ context.Context, languageID int64, keyIDs []int64) (map[int64]struct{}, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := map[int64]struct{}{}
	for _, id := range keyIDs {
		if _, ok := r.translations[pairKey{id, languageID}]; ok {
			out[id] = struct{}{}
		}
	}
	return out, nil
}

func (r memTranslations) baseline(key models.TranslationKey, baselineLanguageID int64) string {
	if t, ok := r.translations[pairKey{key.ID, baselineLanguageID}]; ok && strings.TrimSpace(t.TranslationText) != "" {
		return t.TranslationText
	}
	return key.Description
}

func (r memTranslations) BaselineTexts(_ context.Context, baselineLanguageID int64, keyIDs []int64) ([]models.BaselineText, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.BaselineText
	for _, id := range keyIDs {
		key, ok := r.keys[id]
		if !ok {
			continue
		}
		out = append(out, models.BaselineText{KeyID: id, KeyName: key.KeyName, Text: r.baseline(key, baselineLanguageID)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].KeyID < out[j].KeyID })
	return out, nil
}

func (r memTranslations) ListMatrix(_ context.Context, filter repository.MatrixFilter) ([]models.TranslationMatrixRow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.TranslationMatrixRow
	for _, key := range r.keys {
		if filter.Category != "" && key.Category != filter.Category {
			continue
		}
		if len(filter.KeyIDs) > 0 && !containsID(filter.KeyIDs, key.ID) {
			continue
		}
		row := models.TranslationMatrixRow{
			KeyID:        key.ID,
			KeyName:      key.KeyName,
			Category:     key.Category,
			BaselineText: r.baseline(key, filter.BaselineLanguageID),
		}
		if t, ok := r.translations[pairKey{key.ID, filter.TargetLanguageID}]; ok {
			id, text := t.ID, t.TranslationText
			row.TranslationID, row.TargetText = &id, &text
		}
		_, row.HasConfirmation = r.confirmations[pairKey{key.ID, filter.TargetLanguageID}]
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].KeyID < out[j].KeyID })
	return out, nil
}

func containsID(ids []int64, id int64) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

type memKeys struct{ *memStore }

func (r memKeys) FindByID(_ context.Context, id int64) (*models.TranslationKey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key, ok := r.keys[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &key, nil
}

func (r memKeys) List(_ context.Context, category string) ([]models.TranslationKey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.TranslationKey
	for _, key := range r.keys {
		if category == "" || key.Category == category {
			out = append(out, key)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].KeyName < out[j].KeyName })
	return out, nil
}

func (r memKeys) IDsByCategory(ctx context.Context, category string) ([]int64, error) {
	keys, _ := r.List(ctx, category)
	ids := make([]int64, 0, len(keys))
	for _, key := range keys {
		ids = append(ids, key.ID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

type memLanguages struct{ *memStore }

func (r memLanguages) FindByID(_ context.Context, id int64) (*models.Language, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	language, ok := r.languages[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &language, nil
}

func (r memLanguages) FindByCode(_ context.Context, code string) (*models.Language, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, language := range r.languages {
		if strings.EqualFold(language.Code, code) {
			l := language
			return &l, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r memLanguages) List(_ context.Context, activeOnly bool) ([]models.Language, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Language
	for _, language := range r.languages {
		if !activeOnly || language.IsActive {
			out = append(out, language)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out, nil
}

type memConfirmations struct{ *memStore }

func (r memConfirmations) Upsert(_ context.Context, confirmation *models.TranslationConfirmation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := pairKey{confirmation.KeyID, confirmation.LanguageID}
	existing, ok := r.confirmations[k]
	if ok {
		confirmation.ID, confirmation.CreatedAt = existing.ID, existing.CreatedAt
	} else {
		r.nextID++
		confirmation.ID, confirmation.CreatedAt = r.nextID, time.Now()
	}
	confirmation.UpdatedAt = time.Now()
	r.confirmations[k] = *confirmation
	r.writes++
	return nil
}

func (r memConfirmations) List(_ context.Context, languageID *int64) ([]models.ConfirmationDetail, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.ConfirmationDetail
	for _, c := range r.confirmations {
		if languageID != nil && c.LanguageID != *languageID {
			continue
		}
		out = append(out, models.ConfirmationDetail{TranslationConfirmation: c, KeyName: r.keys[c.KeyID].KeyName, LanguageCode: r.languages[c.LanguageID].Code})
	}
	return out, nil
}

func (r memConfirmations) Delete(_ context.Context, keyID, languageID int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := pairKey{keyID, languageID}
	if _, ok := r.confirmations[k]; !ok {
		return 0, nil
	}
	delete(r.confirmations, k)
	return 1, nil
}

// recordingCache is an in-memory statsCache.
type recordingCache struct {
	mu          sync.Mutex
	values      map[string]models.IssueBreakdown
	invalidated []string
}

func newRecordingCache() *recordingCache {
	return &recordingCache{values: map[string]models.IssueBreakdown{}}
}

func (c *recordingCache) Get(_ context.Context, key string, dest interface{}) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	value, ok := c.values[key]
	if !ok {
		return false
	}
	*(dest.(*models.IssueBreakdown)) = value
	return true
}

func (c *recordingCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value.(models.IssueBreakdown)
}

func (c *recordingCache) Invalidate(_ context.Context, pattern string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated = append(c.invalidated, pattern)
	c.values = map[string]models.IssueBreakdown{}
}

var errStoreDown = errors.New("store down")
