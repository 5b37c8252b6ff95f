package middlewares

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/logixshuvo/parcelhub/internal/config"
	"github.com/logixshuvo/parcelhub/internal/domain/user"
)

// RoleLookup resolves the authenticated email to a directory record. The
// lookup happens on every request on purpose: a role change must be visible
// on the very next request, so nothing here may cache.
type RoleLookup interface {
	GetByEmail(ctx context.Context, email string) (user.User, error)
}

type RoleGate struct {
	directory RoleLookup
}

func NewRoleGate(directory RoleLookup) *RoleGate {
	return &RoleGate{directory: directory}
}

// RequireRole admits the request only when the identity established by the
// auth gate holds the required role right now.
func (g *RoleGate) RequireRole(required string) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, ok := EmailFromContext(c)

		if !ok {
			unauthorized(c)
			return
		}

		cctx, cancel := config.WithTimeout(2 * time.Second)
		defer cancel()

		u, err := g.directory.GetByEmail(cctx, email)

		if err != nil {
			if errors.Is(err, user.ErrNotFound) {
				forbidden(c)
				return
			}

			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"message": "could not resolve role",
				"code":    "internal_error",
			})
			return
		}

		if u.Role != required {
			forbidden(c)
			return
		}

		c.Next()
	}
}

func (g *RoleGate) RequireAdmin() gin.HandlerFunc {
	return g.RequireRole(user.RoleAdmin)
}

func (g *RoleGate) RequireDeliveryman() gin.HandlerFunc {
	return g.RequireRole(user.RoleDeliveryman)
}

// RequireSelf guards the role-probe endpoints keyed by email: only the
// authenticated user may ask about their own email.
func RequireSelf(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, ok := EmailFromContext(c)

		if !ok {
			unauthorized(c)
			return
		}

		if c.Param(param) != email {
			forbidden(c)
			return
		}

		c.Next()
	}
}

func forbidden(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
		"message": "forbidden access",
		"code":    "forbidden",
	})
}
