package service

import (
	"context"
	"errors"
	"skillpath_backend/internal/config"
	"skillpath_backend/internal/model"
	"skillpath_backend/internal/util"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	passwordResetSuccessMessage = "Please follow the instructions below to reset your password."
	passwordResetFailureMessage = "An unexpected error occurred. Please try again."
	adminSelfRegisterMessage    = "Admin accounts cannot be registered here."
)

// ownerNamespace 由邮箱派生稳定的用户 id
var ownerNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("skillpath"))

// OwnerID 同一邮箱（忽略大小写和首尾空格）总是得到同一个 id
func OwnerID(email string) string {
	return uuid.NewSHA1(ownerNamespace, []byte(strings.ToLower(strings.TrimSpace(email)))).String()
}

type LoginResult struct {
	Token     string         `json:"token"`
	ExpiresAt time.Time      `json:"expiresAt"`
	Email     string         `json:"email"`
	Role      model.UserRole `json:"role"`
	Redirect  string         `json:"redirect"`
}

type AuthService struct {
	state      *StateService
	generation *GenerationService
	Cfg        *config.Config
}

func NewAuthService(state *StateService, generation *GenerationService, cfg *config.Config) *AuthService {
	return &AuthService{
		state:      state,
		generation: generation,
		Cfg:        cfg,
	}
}

func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) error {
	if err := util.ValidateStruct(req); err != nil {
		return err
	}
	// 管理员由 auth.admin_emails 指定，不能自行注册
	if req.Role != model.Learner {
		return util.NewFieldError("role", adminSelfRegisterMessage)
	}

	owner := OwnerID(req.Email)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.state.CreateAccount(ctx, owner, model.Account{
		Email:        strings.TrimSpace(req.Email),
		PasswordHash: string(hashedPassword),
		Role:         model.Learner,
		CreatedAt:    time.Now(),
	})
}

// Login 校验密码后写入新的会话标记，旧会话随之失效
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (*LoginResult, error) {
	if err := util.ValidateStruct(req); err != nil {
		return nil, err
	}

	owner := OwnerID(req.Email)
	account, err := s.state.LoadAccount(ctx, owner)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, util.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		return nil, util.ErrInvalidCredentials
	}

	// 角色每次登录按配置计算，账号记录里的角色不授予管理员权限
	role := model.Learner
	if s.Cfg.Auth.IsAdmin(account.Email) {
		role = model.Admin
	}

	ttl := s.Cfg.JWT.ExpireTime
	session := model.Session{
		ID:        uuid.NewString(),
		Email:     account.Email,
		Role:      role,
		ExpiresAt: time.Now().Add(ttl),
	}
	if err := s.state.SaveSession(ctx, owner, session, ttl); err != nil {
		return nil, err
	}

	token, err := util.GenerateJWT(owner, account.Email, string(role), session.ID, s.Cfg.JWT.Secret, ttl)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Token:     token,
		ExpiresAt: session.ExpiresAt,
		Email:     account.Email,
		Role:      role,
		Redirect:  util.RouteDashboard,
	}, nil
}

func (s *AuthService) Logout(ctx context.Context, owner string) error {
	return s.state.DeleteSession(ctx, owner)
}

// ValidateSession token 有效之外还要求会话标记存在且 id 一致
func (s *AuthService) ValidateSession(ctx context.Context, claims *util.Claims) error {
	session, err := s.state.LoadSession(ctx, claims.Owner)
	if err != nil {
		return err
	}
	if session == nil || session.ID != claims.SessionID {
		return util.ErrSessionExpired
	}
	return nil
}

// ForgotPassword 总是返回表单状态；出错时同时返回 error 供调用方决定状态码
func (s *AuthService) ForgotPassword(ctx context.Context, email string) (*model.PasswordResetState, error) {
	result, err := s.generation.PasswordResetAssistance(ctx, model.PasswordResetInput{Email: strings.TrimSpace(email)})
	if err != nil {
		message := passwordResetFailureMessage
		var verr *util.ValidationError
		if errors.As(err, &verr) {
			message = firstFieldMessage(verr, "email")
		}
		return &model.PasswordResetState{Message: message, Success: false}, err
	}

	instructions := result.Instructions
	return &model.PasswordResetState{
		Message:      passwordResetSuccessMessage,
		Instructions: &instructions,
		Success:      true,
	}, nil
}

func firstFieldMessage(verr *util.ValidationError, field string) string {
	if msg, ok := verr.Fields[field]; ok {
		return msg
	}
	return "Invalid input."
}
