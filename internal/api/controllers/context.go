package controllers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// currentAccountID reads the authenticated account id placed on the context
// by the JWT middleware.
func currentAccountID(c *gin.Context) (uuid.UUID, error) {
	raw := c.GetString("user_id")
	if raw == "" {
		return uuid.Nil, errors.New("user_id missing from context")
	}
	return uuid.Parse(raw)
}
