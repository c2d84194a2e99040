package repository

import "gorm.io/gorm"

// Repositories 仓库集合
type Repositories struct {
	Auth *AuthRepository
	Chat *ChatRepository
	Post *PostRepository
}

// NewRepositories 创建所有仓库
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Auth: NewAuthRepository(db),
		Chat: NewChatRepository(db),
		Post: NewPostRepository(db),
	}
}
