package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/translation-qa-api/internal/middleware"
	appErrors "github.com/noah-isme/translation-qa-api/pkg/errors"
)

func actorFromContext(c *gin.Context) string {
	return middleware.ActorFromContext(c)
}

func int64Param(c *gin.Context, name string) (int64, error) {
	value, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || value <= 0 {
		return 0, appErrors.Clone(appErrors.ErrValidation, name+" must be a positive integer")
	}
	return value, nil
}

func optionalInt64Query(c *gin.Context, name string) (*int64, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value <= 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, name+" must be a positive integer")
	}
	return &value, nil
}
