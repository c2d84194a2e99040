// Package auth 提供注册、登录与令牌校验。
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/serenitybot/serenity/internal/config"
	"github.com/serenitybot/serenity/internal/model"
)

var (
	// ErrInvalidCredentials 邮箱或密码不正确
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrUserExists 邮箱或用户名已被占用
	ErrUserExists = errors.New("user already exists")
	// ErrInvalidToken 令牌无效、过期或已撤销
	ErrInvalidToken = errors.New("invalid or expired token")
)

// Store 用户与令牌存储契约
type Store interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	CreateToken(ctx context.Context, token *model.AuthToken) error
	GetTokenByValue(ctx context.Context, value string) (*model.AuthToken, error)
	RevokeToken(ctx context.Context, id string) error
}

// Service 认证服务
type Service struct {
	repo     Store
	secret   []byte
	tokenTTL time.Duration
}

// NewService 创建认证服务
func NewService(repo Store, cfg *config.AuthConfig) *Service {
	ttlDays := cfg.TokenTTLDays
	if ttlDays <= 0 {
		ttlDays = 30
	}
	return &Service{
		repo:     repo,
		secret:   []byte(cfg.JWTSecret),
		tokenTTL: time.Duration(ttlDays) * 24 * time.Hour,
	}
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse 注册/登录响应
type AuthResponse struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Token    string `json:"token"`
}

// Register 注册用户并直接签发令牌
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	if existing, _ := s.repo.GetUserByEmail(ctx, req.Email); existing != nil {
		return nil, ErrUserExists
	}
	if existing, _ := s.repo.GetUserByUsername(ctx, req.Username); existing != nil {
		return nil, ErrUserExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.New().String(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hashed),
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.issueToken(ctx, user)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{ID: user.ID, Username: user.Username, Email: user.Email, Token: token}, nil
}

// Login 用户登录
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	user, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.issueToken(ctx, user)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{ID: user.ID, Username: user.Username, Email: user.Email, Token: token}, nil
}

// ValidateToken 校验令牌并返回对应用户
func (s *Service) ValidateToken(ctx context.Context, tokenString string) (*model.User, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	userID, ok := claims["id"].(string)
	if !ok {
		return nil, ErrInvalidToken
	}

	// 登出过的令牌视为无效
	record, err := s.repo.GetTokenByValue(ctx, tokenString)
	if err != nil || record.IsRevoked {
		return nil, ErrInvalidToken
	}

	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, ErrInvalidToken
	}
	return user, nil
}

// Logout 撤销令牌
func (s *Service) Logout(ctx context.Context, tokenString string) error {
	record, err := s.repo.GetTokenByValue(ctx, tokenString)
	if err != nil {
		return ErrInvalidToken
	}
	return s.repo.RevokeToken(ctx, record.ID)
}

// GetProfile 获取用户信息
func (s *Service) GetProfile(ctx context.Context, userID string) (*model.User, error) {
	return s.repo.GetUserByID(ctx, userID)
}

// issueToken 签发 JWT，负载只携带用户 id
func (s *Service) issueToken(ctx context.Context, user *model.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"id":  user.ID,
		"iat": now.Unix(),
		"exp": now.Add(s.tokenTTL).Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	record := &model.AuthToken{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		Token:     token,
		ExpiresAt: now.Add(s.tokenTTL),
	}
	if err := s.repo.CreateToken(ctx, record); err != nil {
		return "", fmt.Errorf("failed to store token: %w", err)
	}

	return token, nil
}
