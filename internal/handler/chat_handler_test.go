package handler

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/serenitybot/serenity/internal/service"
)

// neverEnding 无限重复单字节的读取器，用于构造超大请求体
type neverEnding byte

func (b neverEnding) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = byte(b)
	}
	return len(p), nil
}

// 超限请求必须在准入检查处被拒绝，不触达会话加载或模型调用。
// 处理器持有空服务集合，一旦越过检查就会空指针崩溃。
func TestSendMessagePayloadTooLarge(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := NewChatHandler(&service.Services{})
	r := gin.New()
	r.POST("/api/chat/message", h.SendMessage)

	req := httptest.NewRequest(http.MethodPost, "/api/chat/message", strings.NewReader(`{"message":"hi"}`))
	req.Header.Set("Content-Type", "application/json")
	req.ContentLength = maxMessagePayload + 1

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusRequestEntityTooLarge)
	}
	if !strings.Contains(w.Body.String(), "Payload too large") {
		t.Errorf("body = %q, want payload-too-large message", w.Body.String())
	}
}

// 分块传输没有 Content-Length，超限必须在读取阶段被同一阈值拦下
func TestSendMessageChunkedOversizeRejected(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := NewChatHandler(&service.Services{})
	r := gin.New()
	r.POST("/api/chat/message", func(c *gin.Context) { c.Set("user_id", "user-1") }, h.SendMessage)

	body := io.LimitReader(neverEnding('a'), maxMessagePayload+1024)
	req := httptest.NewRequest(http.MethodPost, "/api/chat/message", body)
	req.Header.Set("Content-Type", "application/json")
	if req.ContentLength != -1 {
		t.Fatalf("ContentLength = %d, want -1 for chunked body", req.ContentLength)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusRequestEntityTooLarge)
	}
}

func TestSendMessageAtThresholdPassesAdmission(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := NewChatHandler(&service.Services{})
	r := gin.New()
	r.POST("/api/chat/message", h.SendMessage)

	// 恰好等于阈值时放行准入检查；无认证上下文则停在 401
	req := httptest.NewRequest(http.MethodPost, "/api/chat/message", strings.NewReader(`{"message":"hi"}`))
	req.Header.Set("Content-Type", "application/json")
	req.ContentLength = maxMessagePayload

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}
