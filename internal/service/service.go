package service

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/serenitybot/serenity/internal/config"
	"github.com/serenitybot/serenity/internal/repository"
	"github.com/serenitybot/serenity/internal/service/auth"
	"github.com/serenitybot/serenity/internal/service/chat"
	"github.com/serenitybot/serenity/internal/service/community"
	"github.com/serenitybot/serenity/internal/service/emotion"
	"github.com/serenitybot/serenity/internal/service/llm"
	"github.com/serenitybot/serenity/internal/service/thought"
)

// Services 服务集合
type Services struct {
	Auth      *auth.Service
	Chat      *chat.Service
	Emotion   *emotion.Scorer
	Thought   *thought.Service
	Community *community.Service

	Gateway *llm.Gateway
	Config  *config.Config
}

// NewServices 创建所有服务
func NewServices(ctx context.Context, repo *repository.Repositories, cfg *config.Config, redisClient *redis.Client) (*Services, error) {
	gateway, err := llm.New(ctx, &cfg.AI)
	if err != nil {
		return nil, fmt.Errorf("failed to create llm gateway: %w", err)
	}

	scorer := emotion.NewScorer(gateway, emotion.NeutralVoiceClassifier{}, emotion.NeutralFaceClassifier{})
	cache := chat.NewSessionCache(redisClient)

	return &Services{
		Auth:      auth.NewService(repo.Auth, &cfg.Auth),
		Chat:      chat.NewService(repo.Chat, scorer, gateway, cache),
		Emotion:   scorer,
		Thought:   thought.NewService(gateway),
		Community: community.NewService(repo.Post),

		Gateway: gateway,
		Config:  cfg,
	}, nil
}
