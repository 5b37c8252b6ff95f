package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/logixshuvo/parcelhub/internal/auth"
)

type TokenHandler struct {
	jwt *auth.Manager
}

func NewTokenHandler(jwt *auth.Manager) *TokenHandler {
	return &TokenHandler{jwt: jwt}
}

type tokenRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// Issue mints a 1h session token for the posted identity claim. There is no
// credential check here: the upstream frontend authenticates elsewhere and
// this endpoint just seals the identity it is handed.
func (h *TokenHandler) Issue(ctx *gin.Context) {
	var req tokenRequest

	if !BindJSON(ctx, &req) {
		return
	}

	token, err := h.jwt.IssueToken(req.Email)

	if err != nil {
		RespondInternal(ctx, "Could not issue token")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"token": token})
}
