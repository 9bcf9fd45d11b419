package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/social-feed/pkg/response"
)

type followRequest struct {
	FollowerID uint `json:"follower_id" binding:"required"`
}

// Follow 建立关注
// @Summary 关注用户
// @Tags 关系链
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "被关注用户ID"
// @Param request body followRequest true "关注者"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/users/{id}/follow [put]
func (h *Handler) Follow(c *gin.Context) {
	h.changeFollow(c, true)
}

// Unfollow 取消关注
// @Summary 取消关注
// @Tags 关系链
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "被关注用户ID"
// @Param request body followRequest true "关注者"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/users/{id}/unfollow [put]
func (h *Handler) Unfollow(c *gin.Context) {
	h.changeFollow(c, false)
}

func (h *Handler) changeFollow(c *gin.Context, follow bool) {
	followed, ok := h.loadUser(c, "id", "no user was found with this id")
	if !ok {
		return
	}
	var req followRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	follower, ok := h.findUser(c, req.FollowerID, "no user was found with the follower id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	var err error
	if follow {
		err = h.userService.AddFollower(ctx, followed, follower)
	} else {
		err = h.userService.RemoveFollower(ctx, followed, follower)
	}
	if err != nil {
		writeError(c, err)
		return
	}
	following, err := h.relService.IsFollowing(ctx, follower.ID, followed.ID)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, gin.H{"user_id": followed.ID, "follower_id": follower.ID, "following": following})
}

// ListFollowing 查询某用户关注的人
// @Summary 查询关注列表
// @Tags 关系链
// @Param id path int true "用户ID"
// @Success 200 {object} response.Response{data=[]model.User}
// @Failure 404 {object} response.Response
// @Router /api/v1/users/{id}/following [get]
func (h *Handler) ListFollowing(c *gin.Context) {
	u, ok := h.loadUser(c, "id", "no user was found with this id")
	if !ok {
		return
	}
	list, err := h.relService.ListFollowing(c.Request.Context(), u.ID)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, list)
}

// ListFollowers 查询某用户的粉丝
// @Summary 查询粉丝列表
// @Tags 关系链
// @Param id path int true "用户ID"
// @Success 200 {object} response.Response{data=[]model.User}
// @Failure 404 {object} response.Response
// @Router /api/v1/users/{id}/followers [get]
func (h *Handler) ListFollowers(c *gin.Context) {
	u, ok := h.loadUser(c, "id", "no user was found with this id")
	if !ok {
		return
	}
	list, err := h.relService.ListFollowers(c.Request.Context(), u.ID)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, list)
}
