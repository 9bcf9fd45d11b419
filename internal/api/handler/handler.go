package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/d60-Lab/social-feed/config"
	"github.com/d60-Lab/social-feed/internal/api/middleware"
	"github.com/d60-Lab/social-feed/internal/lock"
	"github.com/d60-Lab/social-feed/internal/model"
	"github.com/d60-Lab/social-feed/internal/service"
	"github.com/d60-Lab/social-feed/pkg/response"
)

// Handler HTTP 边界层：把 id 解析为实体、把"未找到"转换为客户端错误
type Handler struct {
	postService service.PostService
	userService service.UserService
	relService  service.RelationshipService
	jwt         config.JWTConfig
}

func New(postService service.PostService, userService service.UserService, relService service.RelationshipService, jwt config.JWTConfig) *Handler {
	return &Handler{postService: postService, userService: userService, relService: relService, jwt: jwt}
}

type valueRequest struct {
	Value string `json:"value" binding:"required"`
}

func parseID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil || id == 0 {
		response.BadRequest(c, "invalid "+param)
		return 0, false
	}
	return uint(id), true
}

// loadPost 未找到时已写出响应
func (h *Handler) loadPost(c *gin.Context, param, notFound string) (*model.Post, bool) {
	id, ok := parseID(c, param)
	if !ok {
		return nil, false
	}
	p, err := h.postService.FindByID(c.Request.Context(), id)
	if err != nil {
		response.InternalError(c, err)
		return nil, false
	}
	if p == nil {
		response.NotFound(c, notFound)
		return nil, false
	}
	return p, true
}

func (h *Handler) loadUser(c *gin.Context, param, notFound string) (*model.User, bool) {
	id, ok := parseID(c, param)
	if !ok {
		return nil, false
	}
	return h.findUser(c, id, notFound)
}

func (h *Handler) findUser(c *gin.Context, id uint, notFound string) (*model.User, bool) {
	u, err := h.userService.FindByID(c.Request.Context(), id)
	if err != nil {
		response.InternalError(c, err)
		return nil, false
	}
	if u == nil {
		response.NotFound(c, notFound)
		return nil, false
	}
	return u, true
}

// actor 当前认证用户，用于审计日志
func actor(c *gin.Context) zap.Field {
	id, _ := middleware.CurrentUserID(c)
	return zap.Uint("actor_id", id)
}

// writeError 领域错误 -> HTTP 状态
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrFollowSelf),
		errors.Is(err, service.ErrCommentNotPersisted),
		errors.Is(err, service.ErrInvalidComment):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrUsernameTaken), errors.Is(err, service.ErrEmailTaken):
		response.Conflict(c, err.Error())
	case errors.Is(err, lock.ErrNotAcquired):
		response.Conflict(c, "resource is busy, try again")
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Unauthorized(c, err.Error())
	default:
		response.InternalError(c, err)
	}
}

// Health 存活探针
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
