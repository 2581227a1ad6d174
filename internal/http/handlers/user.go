package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/wishlist-backend/internal/http/response"
	"github.com/yungbote/wishlist-backend/internal/platform/dbctx"
	"github.com/yungbote/wishlist-backend/internal/services"
)

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GET /me
func (uh *UserHandler) GetMe(c *gin.Context) {
	me, err := uh.userService.GetMe(dbctx.Context{Ctx: c.Request.Context()})
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.RespondOK(c, gin.H{"user": viewUser(me, "")})
}
