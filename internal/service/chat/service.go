// Package chat 负责会话的装配与编排：加载历史、合成情绪上下文、
// 调用模型并将一对 user/assistant 消息原子落库。
package chat

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/serenitybot/serenity/internal/model"
	"github.com/serenitybot/serenity/internal/service/llm"
)

// SessionStore 会话存储契约
type SessionStore interface {
	CreateSession(ctx context.Context, session *model.ChatSession) error
	GetSession(ctx context.Context, id, userID string) (*model.ChatSession, error)
	ListSessions(ctx context.Context, userID string) ([]*model.ChatSession, error)
	AppendTurn(ctx context.Context, sessionID, userID string, expectedCount int, userMsg, assistantMsg *model.ChatMessage) error
	DeleteSession(ctx context.Context, id, userID string) error
}

// EmotionScorer 情绪合成契约
type EmotionScorer interface {
	Combine(ctx context.Context, text string, audio, image []byte, clientHint string) model.EmotionalContext
}

// Service 聊天服务
type Service struct {
	store  SessionStore
	scorer EmotionScorer
	gen    llm.Generator
	cache  *SessionCache
}

// NewService 创建聊天服务，cache 可为 nil
func NewService(store SessionStore, scorer EmotionScorer, gen llm.Generator, cache *SessionCache) *Service {
	return &Service{store: store, scorer: scorer, gen: gen, cache: cache}
}

// SendMessageRequest 发送消息请求
type SendMessageRequest struct {
	Message         string `json:"message"`
	ChatID          string `json:"chatId"`
	AudioData       string `json:"audioData"`
	ImageData       string `json:"imageData"`
	DetectedEmotion string `json:"detectedEmotion"`
}

// SendMessage 处理一轮对话
//
// 回复获取成功之前不落任何消息，保证 user/assistant 始终成对提交。
// 返回值第二项表示会话是否为本次新建。
func (s *Service) SendMessage(ctx context.Context, userID string, req *SendMessageRequest) (*model.ChatSession, bool, error) {
	var session *model.ChatSession
	created := false

	if req.ChatID != "" {
		var err error
		session, err = s.store.GetSession(ctx, req.ChatID, userID)
		if err != nil {
			return nil, false, err
		}
	} else {
		session = &model.ChatSession{
			ID:     uuid.New().String(),
			UserID: userID,
			Title:  "New Chat",
		}
		if err := s.store.CreateSession(ctx, session); err != nil {
			return nil, false, fmt.Errorf("failed to create session: %w", err)
		}
		created = true
	}

	userMsg := &model.ChatMessage{
		ID:      uuid.New().String(),
		Role:    model.RoleUser,
		Content: req.Message,
	}

	// 只有带文本的消息才触发情绪分析
	if req.Message != "" {
		ec := s.scorer.Combine(ctx, req.Message, []byte(req.AudioData), []byte(req.ImageData), req.DetectedEmotion)
		jsonEC := datatypes.NewJSONType(ec)
		userMsg.EmotionalContext = &jsonEC
	}

	history := append(append([]model.ChatMessage{}, session.Messages...), *userMsg)
	reply, err := s.gen.Generate(ctx, BuildPrompt(history))
	if err != nil {
		// 生成失败不吸收，本轮不持久化任何消息
		return nil, false, err
	}

	assistantMsg := &model.ChatMessage{
		ID:      uuid.New().String(),
		Role:    model.RoleAssistant,
		Content: reply,
	}

	if err := s.store.AppendTurn(ctx, session.ID, userID, len(session.Messages), userMsg, assistantMsg); err != nil {
		return nil, false, err
	}
	s.invalidate(ctx, session.ID)

	updated, err := s.store.GetSession(ctx, session.ID, userID)
	if err != nil {
		return nil, false, err
	}
	return updated, created, nil
}

// GetSession 获取单个会话，优先走缓存
func (s *Service) GetSession(ctx context.Context, id, userID string) (*model.ChatSession, error) {
	if s.cache != nil {
		// 归属不符时回落到存储层，由其给出统一的 not found
		if session, ok := s.cache.Get(ctx, id); ok && session.UserID == userID {
			return session, nil
		}
	}

	session, err := s.store.GetSession(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, session); err != nil {
			log.Printf("chat: session cache set failed: %v", err)
		}
	}
	return session, nil
}

// ListSessions 列出用户会话，最近更新在前
func (s *Service) ListSessions(ctx context.Context, userID string) ([]*model.ChatSession, error) {
	return s.store.ListSessions(ctx, userID)
}

// DeleteSession 删除会话
func (s *Service) DeleteSession(ctx context.Context, id, userID string) error {
	if err := s.store.DeleteSession(ctx, id, userID); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *Service) invalidate(ctx context.Context, sessionID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, sessionID); err != nil {
		log.Printf("chat: session cache invalidate failed: %v", err)
	}
}
