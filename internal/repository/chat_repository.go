package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/serenitybot/serenity/internal/model"
)

// 会话标题取自首条用户消息的前 30 个字符
const titleMaxLen = 30

// ChatRepository 聊天数据访问
type ChatRepository struct {
	db *gorm.DB
}

// NewChatRepository 创建聊天仓库
func NewChatRepository(db *gorm.DB) *ChatRepository {
	return &ChatRepository{db: db}
}

// CreateSession 创建会话
func (r *ChatRepository) CreateSession(ctx context.Context, session *model.ChatSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

// GetSession 按 id 和归属用户获取会话（含消息）
// 跨用户访问与不存在同样返回 ErrNotFound
func (r *ChatRepository) GetSession(ctx context.Context, id, userID string) (*model.ChatSession, error) {
	var session model.ChatSession
	err := r.db.WithContext(ctx).
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("seq ASC")
		}).
		Where("id = ? AND user_id = ?", id, userID).
		First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// ListSessions 列出用户的全部会话，按最近更新排序
func (r *ChatRepository) ListSessions(ctx context.Context, userID string) ([]*model.ChatSession, error) {
	var sessions []*model.ChatSession
	err := r.db.WithContext(ctx).
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("seq ASC")
		}).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&sessions).Error
	return sessions, err
}

// AppendTurn 在单个事务内追加一对 user/assistant 消息
//
// 会话行加锁后校验 expectedCount，并发追加会以 ErrConflict 失败而不是
// 静默覆盖。当本次追加使消息数恰好达到 2 时，用用户消息前缀覆盖标题，
// 该规则在会话生命周期内只触发一次（消息不支持单独删除）。
func (r *ChatRepository) AppendTurn(ctx context.Context, sessionID, userID string, expectedCount int, userMsg, assistantMsg *model.ChatMessage) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var session model.ChatSession
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND user_id = ?", sessionID, userID).
			First(&session).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&model.ChatMessage{}).
			Where("session_id = ?", sessionID).
			Count(&count).Error; err != nil {
			return err
		}
		if int(count) != expectedCount {
			return ErrConflict
		}

		now := time.Now()
		userMsg.SessionID = sessionID
		userMsg.Seq = int(count)
		userMsg.Role = model.RoleUser
		userMsg.Timestamp = now

		assistantMsg.SessionID = sessionID
		assistantMsg.Seq = int(count) + 1
		assistantMsg.Role = model.RoleAssistant
		assistantMsg.Timestamp = now

		if err := tx.Create(userMsg).Error; err != nil {
			return err
		}
		if err := tx.Create(assistantMsg).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{"updated_at": now}
		if int(count)+2 == 2 {
			updates["title"] = deriveTitle(userMsg.Content)
		}
		return tx.Model(&model.ChatSession{}).
			Where("id = ?", sessionID).
			Updates(updates).Error
	})
}

// DeleteSession 删除会话及其消息，第二次删除返回 ErrNotFound
func (r *ChatRepository) DeleteSession(ctx context.Context, id, userID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var session model.ChatSession
		err := tx.Where("id = ? AND user_id = ?", id, userID).First(&session).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		if err := tx.Delete(&model.ChatMessage{}, "session_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&model.ChatSession{}, "id = ?", id).Error
	})
}

// deriveTitle 从首条用户消息生成会话标题
func deriveTitle(content string) string {
	runes := []rune(content)
	if len(runes) <= titleMaxLen {
		return content
	}
	return string(runes[:titleMaxLen]) + "..."
}
