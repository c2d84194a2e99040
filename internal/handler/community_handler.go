package handler

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/serenitybot/serenity/internal/middleware"
	"github.com/serenitybot/serenity/internal/service"
	"github.com/serenitybot/serenity/internal/service/community"
)

// CommunityHandler 社区处理器
type CommunityHandler struct {
	svc *service.Services
}

// NewCommunityHandler 创建社区处理器
func NewCommunityHandler(svc *service.Services) *CommunityHandler {
	return &CommunityHandler{svc: svc}
}

// CreatePost 发帖
func (h *CommunityHandler) CreatePost(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	var req community.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	post, err := h.svc.Community.CreatePost(c.Request.Context(), userID, &req)
	if err != nil {
		log.Printf("createPost failed: %v", err)
		Error(c, err)
		return
	}

	Created(c, post)
}

// ListPosts 列出全部帖子
func (h *CommunityHandler) ListPosts(c *gin.Context) {
	posts, err := h.svc.Community.ListPosts(c.Request.Context())
	if err != nil {
		log.Printf("listPosts failed: %v", err)
		Error(c, err)
		return
	}

	Success(c, posts)
}

// GetPost 获取单个帖子
func (h *CommunityHandler) GetPost(c *gin.Context) {
	post, err := h.svc.Community.GetPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		Error(c, err)
		return
	}

	Success(c, post)
}

// AddComment 评论
func (h *CommunityHandler) AddComment(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	var req community.AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	post, err := h.svc.Community.AddComment(c.Request.Context(), c.Param("id"), userID, &req)
	if err != nil {
		Error(c, err)
		return
	}

	Created(c, post)
}

// LikePost 点赞
func (h *CommunityHandler) LikePost(c *gin.Context) {
	likes, err := h.svc.Community.LikePost(c.Request.Context(), c.Param("id"))
	if err != nil {
		Error(c, err)
		return
	}

	Success(c, gin.H{"likes": likes})
}
