package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/serenitybot/serenity/internal/model"
)

// PostRepository 社区帖子数据访问
type PostRepository struct {
	db *gorm.DB
}

// NewPostRepository 创建帖子仓库
func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

// CreatePost 创建帖子
func (r *PostRepository) CreatePost(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

// GetPostByID 获取帖子（含作者与评论）
func (r *PostRepository) GetPostByID(ctx context.Context, id string) (*model.Post, error) {
	var post model.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Comments.Author").
		Where("id = ?", id).
		First(&post).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// ListPosts 列出全部帖子，最新在前
func (r *PostRepository) ListPosts(ctx context.Context) ([]*model.Post, error) {
	var posts []*model.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Comments.Author").
		Order("created_at DESC").
		Find(&posts).Error
	return posts, err
}

// AddComment 追加评论
func (r *PostRepository) AddComment(ctx context.Context, comment *model.Comment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post model.Post
		err := tx.Where("id = ?", comment.PostID).First(&post).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return tx.Create(comment).Error
	})
}

// LikePost 点赞计数原子加一，返回新值
func (r *PostRepository) LikePost(ctx context.Context, id string) (int, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Post{}).
		Where("id = ?", id).
		Update("likes", gorm.Expr("likes + 1"))
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, ErrNotFound
	}

	var post model.Post
	if err := r.db.WithContext(ctx).Select("likes").Where("id = ?", id).First(&post).Error; err != nil {
		return 0, err
	}
	return post.Likes, nil
}
