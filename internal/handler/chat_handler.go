package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/serenitybot/serenity/internal/middleware"
	"github.com/serenitybot/serenity/internal/service"
	"github.com/serenitybot/serenity/internal/service/chat"
)

// 准入阈值，略低于传输层 50MiB 硬上限
const maxMessagePayload = 45 * 1024 * 1024

// ChatHandler 聊天处理器
type ChatHandler struct {
	svc *service.Services
}

// NewChatHandler 创建聊天处理器
func NewChatHandler(svc *service.Services) *ChatHandler {
	return &ChatHandler{svc: svc}
}

// SendMessage 发送消息并获取助手回复
// 新建会话返回 201，续写已有会话返回 200
func (h *ChatHandler) SendMessage(c *gin.Context) {
	// 准入检查先于任何会话加载与模型调用
	if c.Request.ContentLength > maxMessagePayload {
		PayloadTooLarge(c, "Payload too large. Please reduce the size of your message or media.")
		return
	}
	// 分块传输不带 Content-Length，读取阶段用同一阈值兜底
	if c.Request.ContentLength < 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxMessagePayload)
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		Unauthorized(c, "Not authorized")
		return
	}

	var req chat.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			PayloadTooLarge(c, "Payload too large. Please reduce the size of your message or media.")
			return
		}
		BadRequest(c, err.Error())
		return
	}

	session, created, err := h.svc.Chat.SendMessage(c.Request.Context(), userID, &req)
	if err != nil {
		log.Printf("sendMessage failed: %v", err)
		Error(c, err)
		return
	}

	if created {
		Created(c, session)
		return
	}
	Success(c, session)
}

// ListChats 列出当前用户的会话
func (h *ChatHandler) ListChats(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	sessions, err := h.svc.Chat.ListSessions(c.Request.Context(), userID)
	if err != nil {
		log.Printf("listChats failed: %v", err)
		Error(c, err)
		return
	}

	Success(c, sessions)
}

// GetChat 获取单个会话
func (h *ChatHandler) GetChat(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	session, err := h.svc.Chat.GetSession(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		Error(c, err)
		return
	}

	Success(c, session)
}

// DeleteChat 删除会话
func (h *ChatHandler) DeleteChat(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	if err := h.svc.Chat.DeleteSession(c.Request.Context(), c.Param("id"), userID); err != nil {
		Error(c, err)
		return
	}

	Success(c, gin.H{"message": "Chat deleted successfully"})
}

// AnalyzeMood 文本情绪分析
func (h *ChatHandler) AnalyzeMood(c *gin.Context) {
	var req struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Text == "" {
		BadRequest(c, "Text is required")
		return
	}

	mood, err := h.svc.Emotion.ClassifyText(c.Request.Context(), req.Text)
	if err != nil {
		log.Printf("analyzeMood failed: %v", err)
		Error(c, err)
		return
	}

	c.JSON(200, gin.H{"mood": mood})
}

// AnalyzeVoice 语音情绪分析
func (h *ChatHandler) AnalyzeVoice(c *gin.Context) {
	var req struct {
		AudioData string `json:"audioData"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.AudioData == "" {
		BadRequest(c, "Audio data is required")
		return
	}

	tone, err := h.svc.Emotion.ClassifyVoice(c.Request.Context(), []byte(req.AudioData))
	if err != nil {
		Error(c, err)
		return
	}

	c.JSON(200, gin.H{"tone": tone})
}

// AnalyzeFace 表情情绪分析
func (h *ChatHandler) AnalyzeFace(c *gin.Context) {
	var req struct {
		ImageData       string `json:"imageData"`
		DetectedEmotion string `json:"detectedEmotion"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.ImageData == "" {
		BadRequest(c, "Image data is required")
		return
	}

	label, err := h.svc.Emotion.ClassifyFace(c.Request.Context(), []byte(req.ImageData), req.DetectedEmotion)
	if err != nil {
		Error(c, err)
		return
	}

	c.JSON(200, gin.H{"emotion": label})
}

// AnalyzeEmotion 合成情绪分析
func (h *ChatHandler) AnalyzeEmotion(c *gin.Context) {
	var req struct {
		Text            string `json:"text"`
		AudioData       string `json:"audioData"`
		ImageData       string `json:"imageData"`
		DetectedEmotion string `json:"detectedEmotion"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Text == "" {
		BadRequest(c, "Text is required")
		return
	}

	ec := h.svc.Emotion.Combine(c.Request.Context(), req.Text, []byte(req.AudioData), []byte(req.ImageData), req.DetectedEmotion)
	c.JSON(200, ec)
}

// AnalyzeThought 认知扭曲识别
func (h *ChatHandler) AnalyzeThought(c *gin.Context) {
	var req struct {
		NegativeThought string `json:"negativeThought"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.NegativeThought == "" {
		BadRequest(c, "Negative thought is required")
		return
	}

	distortion, err := h.svc.Thought.AnalyzeDistortion(c.Request.Context(), req.NegativeThought)
	if err != nil {
		log.Printf("analyzeThought failed: %v", err)
		Error(c, err)
		return
	}

	Success(c, gin.H{
		"negativeThought": req.NegativeThought,
		"distortion":      distortion,
	})
}

// ReframeThought 想法重构
func (h *ChatHandler) ReframeThought(c *gin.Context) {
	var req struct {
		NegativeThought string `json:"negativeThought"`
		Distortion      string `json:"distortion"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.NegativeThought == "" {
		BadRequest(c, "Negative thought is required")
		return
	}

	reframed, distortion, err := h.svc.Thought.Reframe(c.Request.Context(), req.NegativeThought, req.Distortion)
	if err != nil {
		log.Printf("reframeThought failed: %v", err)
		Error(c, err)
		return
	}

	Success(c, gin.H{
		"negativeThought": req.NegativeThought,
		"distortion":      distortion,
		"reframedThought": reframed,
	})
}
