// Package llm 封装对外部大模型补全接口的单次调用边界。
package llm

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/serenitybot/serenity/internal/config"
)

// ErrGeneration 上游生成失败，调用方应中止本轮并返回错误
var ErrGeneration = errors.New("failed to get response from AI")

// Generator 文本生成能力
type Generator interface {
	Generate(ctx context.Context, messages []*schema.Message) (string, error)
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// Gateway LLM 网关
// 单次调用，不重试，超时按生成失败处理
type Gateway struct {
	chatModel model.ChatModel
	timeout   time.Duration
}

// New 创建 LLM 网关
func New(ctx context.Context, cfg *config.AIConfig) (*Gateway, error) {
	chatModel, err := newChatModel(ctx, cfg)
	if err != nil {
		return nil, err
	}

	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return &Gateway{chatModel: chatModel, timeout: timeout}, nil
}

// newChatModel 创建 ChatModel
// Gemini 走其 OpenAI 兼容端点，其余 provider 直接使用对应 BaseURL
func newChatModel(ctx context.Context, cfg *config.AIConfig) (model.ChatModel, error) {
	switch cfg.Provider {
	case "gemini", "openai", "deepseek":
	default:
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	if cfg.APIKey == "" {
		return nil, fmt.Errorf("api_key is required for provider: %s", cfg.Provider)
	}

	modelName := cfg.Model
	if modelName == "" {
		modelName = "gemini-1.5-flash"
	}

	temperature := cfg.Temperature
	maxTokens := cfg.MaxTokens

	return openai.NewChatModel(ctx, &openai.ChatModelConfig{
		APIKey:      cfg.APIKey,
		BaseURL:     cfg.BaseURL,
		Model:       modelName,
		Temperature: &temperature,
		MaxTokens:   &maxTokens,
	})
}

// Generate 发送消息序列并返回生成的回复文本
func (g *Gateway) Generate(ctx context.Context, messages []*schema.Message) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.chatModel.Generate(ctx, messages)
	if err != nil {
		log.Printf("llm generate error: %v", err)
		return "", ErrGeneration
	}
	if resp == nil || strings.TrimSpace(resp.Content) == "" {
		return "", ErrGeneration
	}
	return resp.Content, nil
}

// GenerateText 单条提示词的便捷调用
func (g *Gateway) GenerateText(ctx context.Context, prompt string) (string, error) {
	return g.Generate(ctx, []*schema.Message{schema.UserMessage(prompt)})
}
