package model

import "time"

type UserRole string

const (
	Learner UserRole = "learner"
	Admin   UserRole = "admin"
)

// Account 注册信息，保存在状态存储的 account 键下
type Account struct {
	Email        string    `json:"email"`
	PasswordHash string    `json:"passwordHash"`
	Role         UserRole  `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

type RegisterRequest struct {
	Email           string   `json:"email" validate:"required,email"`
	Password        string   `json:"password" validate:"required,min=8"`
	ConfirmPassword string   `json:"confirmPassword" validate:"required,eqfield=Password"`
	Role            UserRole `json:"role" validate:"required,oneof=learner admin"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Session 会话标记，退出登录时删除
type Session struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      UserRole  `json:"role"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type PasswordResetInput struct {
	Email string `json:"email" validate:"required,email"`
}

type PasswordResetAssistance struct {
	Instructions string `json:"instructions" validate:"notblank" jsonschema_description:"The instructions to follow in order to reset the password."`
}

// PasswordResetState 忘记密码表单的返回状态
type PasswordResetState struct {
	Message      string  `json:"message"`
	Instructions *string `json:"instructions"`
	Success      bool    `json:"success"`
}
