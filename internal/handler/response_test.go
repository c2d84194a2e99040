package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/serenitybot/serenity/internal/repository"
	"github.com/serenitybot/serenity/internal/service/auth"
	"github.com/serenitybot/serenity/internal/service/llm"
)

func TestErrorStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{name: "not found", err: repository.ErrNotFound, wantCode: http.StatusNotFound},
		{name: "concurrent conflict", err: repository.ErrConflict, wantCode: http.StatusConflict},
		{name: "invalid credentials", err: auth.ErrInvalidCredentials, wantCode: http.StatusUnauthorized},
		{name: "invalid token", err: auth.ErrInvalidToken, wantCode: http.StatusUnauthorized},
		{name: "user exists", err: auth.ErrUserExists, wantCode: http.StatusBadRequest},
		{name: "generation failure", err: llm.ErrGeneration, wantCode: http.StatusInternalServerError},
		{name: "unexpected error", err: errors.New("boom"), wantCode: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			Error(c, tt.err)

			if w.Code != tt.wantCode {
				t.Errorf("Error(%v) status = %d, want %d", tt.err, w.Code, tt.wantCode)
			}
		})
	}
}

func TestErrorWrappedSentinel(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	// 包装后的哨兵错误同样按类型映射
	Error(c, errors.Join(errors.New("append turn"), repository.ErrConflict))

	if w.Code != http.StatusConflict {
		t.Errorf("wrapped conflict status = %d, want %d", w.Code, http.StatusConflict)
	}
}
