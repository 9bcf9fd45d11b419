package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/d60-Lab/social-feed/internal/model"
	"github.com/d60-Lab/social-feed/pkg/logger"
	"github.com/d60-Lab/social-feed/pkg/response"
)

type postRequest struct {
	Text     string         `json:"text" binding:"max=10000"`
	ImageURL string         `json:"image_url"`
	AuthorID uint           `json:"author_id" binding:"required"`
	PostType model.PostType `json:"post_type"`
}

func (r postRequest) toPost(defaultType model.PostType) *model.Post {
	t := r.PostType
	if t == "" {
		t = defaultType
	}
	return &model.Post{Text: r.Text, ImageURL: r.ImageURL, AuthorID: r.AuthorID, Type: t}
}

// ListPosts 全部帖子
// @Summary 帖子列表
// @Tags 帖子
// @Produce json
// @Success 200 {object} response.Response{data=[]model.Post}
// @Router /api/v1/posts [get]
func (h *Handler) ListPosts(c *gin.Context) {
	posts, err := h.postService.ListAll(c.Request.Context())
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, posts)
}

// ListTopPosts 全站 Top 帖子
// @Summary Top 帖子
// @Tags 帖子
// @Produce json
// @Success 200 {object} response.Response{data=[]model.Post}
// @Router /api/v1/posts/feed [get]
func (h *Handler) ListTopPosts(c *gin.Context) {
	posts, err := h.postService.ListTop(c.Request.Context())
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, posts)
}

// GetPost 单个帖子
// @Summary 查询帖子
// @Tags 帖子
// @Produce json
// @Param id path int true "帖子ID"
// @Success 200 {object} response.Response{data=model.Post}
// @Failure 404 {object} response.Response
// @Router /api/v1/posts/{id} [get]
func (h *Handler) GetPost(c *gin.Context) {
	p, ok := h.loadPost(c, "id", "no post was found with this id")
	if !ok {
		return
	}
	response.Success(c, p)
}

// CreatePost 发帖
// @Summary 发帖
// @Tags 帖子
// @Accept json
// @Produce json
// @Param request body postRequest true "帖子"
// @Success 201 {object} response.Response{data=model.Post}
// @Failure 400 {object} response.Response
// @Router /api/v1/posts [post]
func (h *Handler) CreatePost(c *gin.Context) {
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if _, ok := h.findUser(c, req.AuthorID, "no user was found with this author id"); !ok {
		return
	}
	p, err := h.postService.Upsert(c.Request.Context(), req.toPost(model.PostTypeTop))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Created(c, p)
}

// UpsertPost 整体覆盖写入
// @Summary 新增或覆盖帖子
// @Tags 帖子
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body model.Post true "帖子"
// @Success 200 {object} response.Response{data=model.Post}
// @Router /api/v1/posts [put]
func (h *Handler) UpsertPost(c *gin.Context) {
	var p model.Post
	if err := c.ShouldBindJSON(&p); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if _, ok := h.findUser(c, p.AuthorID, "no user was found with this author id"); !ok {
		return
	}
	saved, err := h.postService.Upsert(c.Request.Context(), &p)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, saved)
}

// DeletePost 删除帖子（幂等）
// @Summary 删除帖子
// @Tags 帖子
// @Security Bearer
// @Param id path int true "帖子ID"
// @Success 200 {object} response.Response
// @Router /api/v1/posts/{id} [delete]
func (h *Handler) DeletePost(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.postService.DeleteByID(c.Request.Context(), id); err != nil {
		response.InternalError(c, err)
		return
	}
	logger.Info("post deleted", zap.Uint("post_id", id), actor(c))
	response.Success(c, nil)
}

// LikePost 点赞
// @Summary 点赞
// @Tags 帖子
// @Security Bearer
// @Param id path int true "帖子ID"
// @Param userId path int true "用户ID"
// @Success 200 {object} response.Response{data=model.Post}
// @Failure 404 {object} response.Response
// @Router /api/v1/posts/{id}/like/{userId} [put]
func (h *Handler) LikePost(c *gin.Context) {
	p, ok := h.loadPost(c, "id", "no post was found with this id")
	if !ok {
		return
	}
	u, ok := h.loadUser(c, "userId", "no user was found with this id")
	if !ok {
		return
	}
	liked, err := h.postService.AddPostLike(c.Request.Context(), p, u)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, liked)
}

// UnlikePost 取消点赞
// @Summary 取消点赞
// @Tags 帖子
// @Security Bearer
// @Param id path int true "帖子ID"
// @Param userId path int true "用户ID"
// @Success 200 {object} response.Response{data=model.Post}
// @Failure 404 {object} response.Response
// @Router /api/v1/posts/{id}/unlike/{userId} [put]
func (h *Handler) UnlikePost(c *gin.Context) {
	p, ok := h.loadPost(c, "id", "no post was found with this id")
	if !ok {
		return
	}
	u, ok := h.loadUser(c, "userId", "no user was found with this id")
	if !ok {
		return
	}
	unliked, err := h.postService.RemovePostLike(c.Request.Context(), p, u)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, unliked)
}

// EditPostText 修改正文
// @Summary 修改帖子正文
// @Tags 帖子
// @Security Bearer
// @Param id path int true "帖子ID"
// @Param request body valueRequest true "新正文"
// @Success 200 {object} response.Response{data=model.Post}
// @Router /api/v1/posts/{id}/text [put]
func (h *Handler) EditPostText(c *gin.Context) {
	h.editPost(c, func(c *gin.Context, id uint, v string) (*model.Post, error) {
		return h.postService.EditText(c.Request.Context(), id, v)
	})
}

// EditPostImage 修改图片
// @Summary 修改帖子图片
// @Tags 帖子
// @Security Bearer
// @Param id path int true "帖子ID"
// @Param request body valueRequest true "新图片地址"
// @Success 200 {object} response.Response{data=model.Post}
// @Router /api/v1/posts/{id}/image [put]
func (h *Handler) EditPostImage(c *gin.Context) {
	h.editPost(c, func(c *gin.Context, id uint, v string) (*model.Post, error) {
		return h.postService.EditImage(c.Request.Context(), id, v)
	})
}

func (h *Handler) editPost(c *gin.Context, apply func(*gin.Context, uint, string) (*model.Post, error)) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req valueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	p, err := apply(c, id, req.Value)
	if err != nil {
		writeError(c, err)
		return
	}
	if p == nil {
		response.NotFound(c, "no post was found with this id")
		return
	}
	response.Success(c, p)
}

// CreateComment 在一个事务内保存评论并挂到父帖子下
// @Summary 评论
// @Tags 评论
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "父帖子ID"
// @Param request body postRequest true "评论"
// @Success 200 {object} response.Response{data=model.Post}
// @Failure 404 {object} response.Response
// @Router /api/v1/posts/{id}/comments [post]
func (h *Handler) CreateComment(c *gin.Context) {
	parent, ok := h.loadPost(c, "id", "the parent post could not be found")
	if !ok {
		return
	}
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if _, ok := h.findUser(c, req.AuthorID, "no user was found with this author id"); !ok {
		return
	}
	updated, err := h.postService.CreateComment(c.Request.Context(), parent, req.toPost(model.PostTypeReply))
	if err != nil {
		writeError(c, err)
		return
	}
	if updated == nil {
		response.NotFound(c, "the parent post could not be found")
		return
	}
	response.Success(c, updated)
}

// DeleteComment 删除评论
// @Summary 删除评论
// @Tags 评论
// @Security Bearer
// @Param id path int true "父帖子ID"
// @Param commentId path int true "评论ID"
// @Success 200 {object} response.Response{data=model.Post}
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/posts/{id}/comments/{commentId} [delete]
func (h *Handler) DeleteComment(c *gin.Context) {
	parent, ok := h.loadPost(c, "id", "the post id provided does not link to an existing post")
	if !ok {
		return
	}
	comment, ok := h.loadPost(c, "commentId", "the comment id provided does not link to an existing comment")
	if !ok {
		return
	}
	if !parent.HasComment(comment.ID) {
		response.BadRequest(c, "the comment does not belong to this post")
		return
	}
	updated, err := h.postService.DeleteComment(c.Request.Context(), parent, comment)
	if err != nil {
		writeError(c, err)
		return
	}
	logger.Info("comment deleted", zap.Uint("post_id", parent.ID), zap.Uint("comment_id", comment.ID), actor(c))
	response.Success(c, updated)
}
