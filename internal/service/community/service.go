// Package community 提供社区帖子、评论与点赞。
package community

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/serenitybot/serenity/internal/model"
)

// 匿名内容对外展示的作者名
const anonymousName = "Anonymous User"

// Store 帖子存储契约
type Store interface {
	CreatePost(ctx context.Context, post *model.Post) error
	GetPostByID(ctx context.Context, id string) (*model.Post, error)
	ListPosts(ctx context.Context) ([]*model.Post, error)
	AddComment(ctx context.Context, comment *model.Comment) error
	LikePost(ctx context.Context, id string) (int, error)
}

// Service 社区服务
type Service struct {
	store Store
}

// NewService 创建社区服务
func NewService(store Store) *Service {
	return &Service{store: store}
}

// CreatePostRequest 发帖请求
type CreatePostRequest struct {
	Content     string `json:"content" binding:"required"`
	IsAnonymous bool   `json:"isAnonymous"`
}

// AddCommentRequest 评论请求
type AddCommentRequest struct {
	Content     string `json:"content" binding:"required"`
	IsAnonymous bool   `json:"isAnonymous"`
}

// AuthorView 对外暴露的作者信息
type AuthorView struct {
	Username string `json:"username"`
}

// CommentView 对外暴露的评论
type CommentView struct {
	ID          string     `json:"_id"`
	Content     string     `json:"content"`
	Author      AuthorView `json:"author"`
	IsAnonymous bool       `json:"isAnonymous"`
	Likes       int        `json:"likes"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// PostView 对外暴露的帖子，匿名内容在此处抹去作者
type PostView struct {
	ID          string        `json:"_id"`
	Content     string        `json:"content"`
	Author      AuthorView    `json:"author"`
	IsAnonymous bool          `json:"isAnonymous"`
	Likes       int           `json:"likes"`
	Comments    []CommentView `json:"comments"`
	CreatedAt   time.Time     `json:"createdAt"`
}

// CreatePost 创建帖子
func (s *Service) CreatePost(ctx context.Context, userID string, req *CreatePostRequest) (*PostView, error) {
	post := &model.Post{
		ID:          uuid.New().String(),
		Content:     req.Content,
		AuthorID:    userID,
		IsAnonymous: req.IsAnonymous,
	}
	if err := s.store.CreatePost(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	created, err := s.store.GetPostByID(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	return toPostView(created), nil
}

// ListPosts 列出全部帖子，最新在前
func (s *Service) ListPosts(ctx context.Context) ([]*PostView, error) {
	posts, err := s.store.ListPosts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	views := make([]*PostView, 0, len(posts))
	for _, post := range posts {
		views = append(views, toPostView(post))
	}
	return views, nil
}

// GetPost 获取单个帖子
func (s *Service) GetPost(ctx context.Context, id string) (*PostView, error) {
	post, err := s.store.GetPostByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toPostView(post), nil
}

// AddComment 给帖子追加评论，返回更新后的帖子
func (s *Service) AddComment(ctx context.Context, postID, userID string, req *AddCommentRequest) (*PostView, error) {
	comment := &model.Comment{
		ID:          uuid.New().String(),
		PostID:      postID,
		Content:     req.Content,
		AuthorID:    userID,
		IsAnonymous: req.IsAnonymous,
	}
	if err := s.store.AddComment(ctx, comment); err != nil {
		return nil, err
	}

	post, err := s.store.GetPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	return toPostView(post), nil
}

// LikePost 点赞，计数只增不减
func (s *Service) LikePost(ctx context.Context, postID string) (int, error) {
	return s.store.LikePost(ctx, postID)
}

// toPostView 组装帖子视图并处理匿名展示
func toPostView(post *model.Post) *PostView {
	view := &PostView{
		ID:          post.ID,
		Content:     post.Content,
		Author:      maskAuthor(post.Author, post.IsAnonymous),
		IsAnonymous: post.IsAnonymous,
		Likes:       post.Likes,
		Comments:    make([]CommentView, 0, len(post.Comments)),
		CreatedAt:   post.CreatedAt,
	}

	for _, comment := range post.Comments {
		view.Comments = append(view.Comments, CommentView{
			ID:          comment.ID,
			Content:     comment.Content,
			Author:      maskAuthor(comment.Author, comment.IsAnonymous),
			IsAnonymous: comment.IsAnonymous,
			Likes:       comment.Likes,
			CreatedAt:   comment.CreatedAt,
		})
	}
	return view
}

func maskAuthor(author *model.User, isAnonymous bool) AuthorView {
	if isAnonymous || author == nil {
		return AuthorView{Username: anonymousName}
	}
	return AuthorView{Username: author.Username}
}
