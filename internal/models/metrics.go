package models

import "time"

// MetricsSnapshot is a lightweight JSON view over process counters.
type MetricsSnapshot struct {
	RequestsTotal            uint64           `json:"requests_total"`
	AverageRequestDurationMs float64          `json:"average_request_duration_ms"`
	CacheHits                uint64           `json:"cache_hits"`
	CacheMisses              uint64           `json:"cache_misses"`
	CacheHitRatio            float64          `json:"cache_hit_ratio"`
	IssueTransitions         map[string]int64 `json:"issue_transitions"`
	TranslationsRegenerated  int64            `json:"translations_regenerated"`
	Verifications            map[string]int64 `json:"verifications"`
	Goroutines               int              `json:"goroutines"`
	GeneratedAt              time.Time        `json:"generated_at"`
}
