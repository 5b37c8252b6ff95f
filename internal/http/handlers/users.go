package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/logixshuvo/parcelhub/internal/config"
	"github.com/logixshuvo/parcelhub/internal/domain/user"
)

// Directory is the identity store as the user endpoints see it.
type Directory interface {
	GetByEmail(ctx context.Context, email string) (user.User, error)
	List(ctx context.Context) ([]user.User, error)
	Register(ctx context.Context, req user.RegisterRequest) (user.User, error)
	SetRole(ctx context.Context, id, role string) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	CountAll(ctx context.Context) (int, error)
	CountByRole(ctx context.Context, role string) (int, error)
}

type UsersHandler struct {
	directory Directory
}

func NewUsersHandler(directory Directory) *UsersHandler {
	return &UsersHandler{directory: directory}
}

// Register is idempotent on email: a duplicate is a soft outcome with a
// null insertedId, not an error status.
func (h *UsersHandler) Register(ctx *gin.Context) {
	var req user.RegisterRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	u, err := h.directory.Register(cctx, req)

	if err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			ctx.JSON(http.StatusOK, gin.H{
				"message":    "User Already exists",
				"insertedId": nil,
			})
			return
		}

		RespondInternal(ctx, "Could not register user")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"acknowledged": true,
		"insertedId":   u.ID,
	})
}

func (h *UsersHandler) List(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	users, err := h.directory.List(cctx)

	if err != nil {
		RespondInternal(ctx, "Could not list users")
		return
	}

	ctx.JSON(http.StatusOK, users)
}

// IsAdmin answers the role probe for the caller's own email; the self gate
// has already matched the path email against the token.
func (h *UsersHandler) IsAdmin(ctx *gin.Context) {
	h.roleProbe(ctx, user.RoleAdmin, "admin")
}

func (h *UsersHandler) IsDeliveryman(ctx *gin.Context) {
	h.roleProbe(ctx, user.RoleDeliveryman, "deliveryman")
}

func (h *UsersHandler) roleProbe(ctx *gin.Context, role, field string) {
	email := ctx.Param("email")

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	u, err := h.directory.GetByEmail(cctx, email)

	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			ctx.JSON(http.StatusOK, gin.H{field: false})
			return
		}

		RespondInternal(ctx, "Could not resolve user")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{field: u.Role == role})
}

func (h *UsersHandler) ChangeRole(ctx *gin.Context) {
	id := ctx.Param("id")

	var req user.ChangeRoleRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	modified, err := h.directory.SetRole(cctx, id, req.Role)

	if err != nil {
		RespondInternal(ctx, "Could not change role")
		return
	}

	if !modified {
		ctx.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": "No changes made",
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success":       true,
		"modifiedCount": 1,
	})
}

func (h *UsersHandler) Delete(ctx *gin.Context) {
	id := ctx.Param("id")

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	deleted, err := h.directory.Delete(cctx, id)

	if err != nil {
		RespondInternal(ctx, "Could not delete user")
		return
	}

	count := 0

	if deleted {
		count = 1
	}

	ctx.JSON(http.StatusOK, gin.H{"deletedCount": count})
}
