package handler

import "github.com/serenitybot/serenity/internal/service"

// Handlers 处理器集合
type Handlers struct {
	Auth      *AuthHandler
	Chat      *ChatHandler
	Community *CommunityHandler
}

// NewHandlers 创建所有处理器
func NewHandlers(svc *service.Services) *Handlers {
	return &Handlers{
		Auth:      NewAuthHandler(svc),
		Chat:      NewChatHandler(svc),
		Community: NewCommunityHandler(svc),
	}
}
