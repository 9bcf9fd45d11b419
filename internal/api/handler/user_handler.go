package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/social-feed/internal/model"
	"github.com/d60-Lab/social-feed/internal/service"
	"github.com/d60-Lab/social-feed/pkg/response"
)

type emailRequest struct {
	Value string `json:"value" binding:"required,email"`
}

// ListUsers 用户列表
// @Summary 用户列表
// @Tags 用户
// @Produce json
// @Success 200 {object} response.Response{data=[]model.User}
// @Router /api/v1/users [get]
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListAll(c.Request.Context())
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, users)
}

// GetUser 按 id 查询
// @Summary 查询用户
// @Tags 用户
// @Param id path int true "用户ID"
// @Success 200 {object} response.Response{data=model.User}
// @Failure 404 {object} response.Response
// @Router /api/v1/users/{id} [get]
func (h *Handler) GetUser(c *gin.Context) {
	u, ok := h.loadUser(c, "id", "no user was found with this id")
	if !ok {
		return
	}
	response.Success(c, u)
}

// GetUserByUsername 按用户名查询
// @Summary 按用户名查询
// @Tags 用户
// @Param username path string true "用户名"
// @Success 200 {object} response.Response{data=model.User}
// @Failure 404 {object} response.Response
// @Router /api/v1/users/by-username/{username} [get]
func (h *Handler) GetUserByUsername(c *gin.Context) {
	u, err := h.userService.FindByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if u == nil {
		response.NotFound(c, "no user was found with this username")
		return
	}
	response.Success(c, u)
}

// EditPassword 修改密码
// @Summary 修改密码
// @Tags 用户
// @Security Bearer
// @Param id path int true "用户ID"
// @Param request body valueRequest true "新密码"
// @Success 200 {object} response.Response{data=model.User}
// @Router /api/v1/users/{id}/password [put]
func (h *Handler) EditPassword(c *gin.Context) {
	var req valueRequest
	h.editUser(c, &req, func() string { return req.Value }, h.userService.EditPassword)
}

// EditEmail 修改邮箱
// @Summary 修改邮箱
// @Tags 用户
// @Security Bearer
// @Param id path int true "用户ID"
// @Param request body emailRequest true "新邮箱"
// @Success 200 {object} response.Response{data=model.User}
// @Failure 409 {object} response.Response
// @Router /api/v1/users/{id}/email [put]
func (h *Handler) EditEmail(c *gin.Context) {
	var req emailRequest
	h.editUser(c, &req, func() string { return req.Value }, h.userService.EditEmail)
}

// EditUsername 修改用户名
// @Summary 修改用户名
// @Tags 用户
// @Security Bearer
// @Param id path int true "用户ID"
// @Param request body valueRequest true "新用户名"
// @Success 200 {object} response.Response{data=model.User}
// @Failure 409 {object} response.Response
// @Router /api/v1/users/{id}/username [put]
func (h *Handler) EditUsername(c *gin.Context) {
	var req valueRequest
	h.editUser(c, &req, func() string { return req.Value }, h.userService.EditUsername)
}

// EditImage 修改头像
// @Summary 修改头像
// @Tags 用户
// @Security Bearer
// @Param id path int true "用户ID"
// @Param request body valueRequest true "头像地址"
// @Success 200 {object} response.Response{data=model.User}
// @Router /api/v1/users/{id}/image [put]
func (h *Handler) EditImage(c *gin.Context) {
	var req valueRequest
	h.editUser(c, &req, func() string { return req.Value }, h.userService.EditImage)
}

type userEdit func(ctx context.Context, id uint, value string) (*model.User, error)

func (h *Handler) editUser(c *gin.Context, req interface{}, value func() string, apply userEdit) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := c.ShouldBindJSON(req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	u, err := apply(c.Request.Context(), id, value())
	if err != nil {
		writeError(c, err)
		return
	}
	if u == nil {
		response.NotFound(c, "no user was found with this id")
		return
	}
	response.Success(c, u)
}

// GetFeed 用户时间线
// @Summary 关注的人的 Top 帖子
// @Tags 用户
// @Param id path int true "用户ID"
// @Success 200 {object} response.Response{data=[]model.Post}
// @Failure 404 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /api/v1/users/{id}/feed [get]
func (h *Handler) GetFeed(c *gin.Context) {
	u, ok := h.loadUser(c, "id", "no user was found with this id")
	if !ok {
		return
	}
	feed, err := h.userService.GetFeedForUser(c.Request.Context(), u)
	if err != nil || feed.State == service.FeedNotComputed {
		if err != nil {
			_ = c.Error(err)
		}
		c.JSON(http.StatusInternalServerError, response.Response{
			Code:    http.StatusInternalServerError,
			Message: "feed could not be computed",
		})
		return
	}
	response.Success(c, feed.Posts)
}

// GetUserPosts 用户自己的 Top 帖子
// @Summary 用户的 Top 帖子
// @Tags 用户
// @Param id path int true "用户ID"
// @Success 200 {object} response.Response{data=[]model.Post}
// @Failure 404 {object} response.Response
// @Router /api/v1/users/{id}/posts [get]
func (h *Handler) GetUserPosts(c *gin.Context) {
	u, ok := h.loadUser(c, "id", "no user was found with this id")
	if !ok {
		return
	}
	posts, err := h.userService.GetAllPostsByUser(c.Request.Context(), u)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, posts)
}
