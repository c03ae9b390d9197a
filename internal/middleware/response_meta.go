package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/translation-qa-api/pkg/middleware/requestid"
)

const (
	responseMetaKey = "response_meta"
	cacheHitKey     = "cache_hit"
)

type responseMeta struct {
	startedAt time.Time
	values    map[string]interface{}
}

// WithResponseMeta starts collecting envelope metadata for the request.
func WithResponseMeta() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(responseMetaKey, &responseMeta{startedAt: time.Now(), values: map[string]interface{}{}})
		c.Next()
	}
}

// SetCacheHit records whether the response was served from cache.
func SetCacheHit(c *gin.Context, hit bool) {
	if meta := metaFrom(c); meta != nil {
		meta.values[cacheHitKey] = hit
	}
}

// ExtractMeta snapshots the collected metadata, stamping elapsed time and the
// request id. It returns nil when WithResponseMeta is not installed.
func ExtractMeta(c *gin.Context) map[string]interface{} {
	meta := metaFrom(c)
	if meta == nil {
		return nil
	}
	out := make(map[string]interface{}, len(meta.values)+2)
	for k, v := range meta.values {
		out[k] = v
	}
	out["processing_time_ms"] = time.Since(meta.startedAt).Milliseconds()
	if id := requestid.Value(c); id != "" {
		out["request_id"] = id
	}
	return out
}

func metaFrom(c *gin.Context) *responseMeta {
	if c == nil {
		return nil
	}
	if v, exists := c.Get(responseMetaKey); exists {
		if meta, ok := v.(*responseMeta); ok {
			return meta
		}
	}
	return nil
}
