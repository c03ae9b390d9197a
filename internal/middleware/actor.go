package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	// ActorHeader identifies the reviewer performing a mutation.
	ActorHeader = "X-Actor"
	// ContextActorKey stores the resolved actor on the gin context.
	ContextActorKey = "actor"

	maxActorLength = 255
)

// Actor copies the X-Actor header into the request context. Requests without it run
// anonymously and services stamp their default actor.
func Actor() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := strings.TrimSpace(c.GetHeader(ActorHeader))
		if len(actor) > maxActorLength {
			actor = actor[:maxActorLength]
		}
		if actor != "" {
			c.Set(ContextActorKey, actor)
		}
		c.Next()
	}
}

// ActorFromContext returns the actor stored by Actor, or an empty string.
func ActorFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	return c.GetString(ContextActorKey)
}
