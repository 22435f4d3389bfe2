package service

import (
	"context"
	"errors"
	"fmt"
	"skillpath_backend/internal/model"
	"skillpath_backend/internal/util"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerRequest() model.RegisterRequest {
	return model.RegisterRequest{
		Email:           "ada@example.com",
		Password:        "correct-horse",
		ConfirmPassword: "correct-horse",
		Role:            model.Learner,
	}
}

func TestOwnerID_NormalisesEmail(t *testing.T) {
	assert.Equal(t, OwnerID("ada@example.com"), OwnerID("  ADA@Example.com "))
	assert.NotEqual(t, OwnerID("ada@example.com"), OwnerID("bob@example.com"))
}

func TestAuthService_RegisterLoginLogout(t *testing.T) {
	ctx := context.Background()
	s := newTestServices(t, nil)

	require.NoError(t, s.auth.Register(ctx, registerRequest()))
	assert.ErrorIs(t, s.auth.Register(ctx, registerRequest()), util.ErrEmailRegistered)

	_, err := s.auth.Login(ctx, model.LoginRequest{Email: "ada@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)

	_, err = s.auth.Login(ctx, model.LoginRequest{Email: "nobody@example.com", Password: "whatever"})
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)

	result, err := s.auth.Login(ctx, model.LoginRequest{Email: "ada@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	assert.Equal(t, util.RouteDashboard, result.Redirect)
	assert.Equal(t, model.Learner, result.Role)

	claims, err := util.ParseJWT(result.Token, s.auth.Cfg.JWT.Secret)
	require.NoError(t, err)
	assert.Equal(t, OwnerID("ada@example.com"), claims.Owner)
	require.NoError(t, s.auth.ValidateSession(ctx, claims))

	// 再次登录后旧 token 失效
	second, err := s.auth.Login(ctx, model.LoginRequest{Email: "ada@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	assert.ErrorIs(t, s.auth.ValidateSession(ctx, claims), util.ErrSessionExpired)

	secondClaims, err := util.ParseJWT(second.Token, s.auth.Cfg.JWT.Secret)
	require.NoError(t, err)
	require.NoError(t, s.auth.Logout(ctx, secondClaims.Owner))
	assert.ErrorIs(t, s.auth.ValidateSession(ctx, secondClaims), util.ErrSessionExpired)
}

func TestAuthService_AdminOnlyFromConfig(t *testing.T) {
	ctx := context.Background()
	s := newTestServices(t, nil)

	req := registerRequest()
	req.Role = model.Admin
	err := s.auth.Register(ctx, req)
	var verr *util.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Admin accounts cannot be registered here.", verr.Fields["role"])

	account, err := s.state.LoadAccount(ctx, OwnerID(req.Email))
	require.NoError(t, err)
	assert.Nil(t, account)

	// 配置里的管理员邮箱以普通身份注册，登录时获得 admin 角色
	root := registerRequest()
	root.Email = "Root@Example.com"
	require.NoError(t, s.auth.Register(ctx, root))

	result, err := s.auth.Login(ctx, model.LoginRequest{Email: "root@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	assert.Equal(t, model.Admin, result.Role)

	claims, err := util.ParseJWT(result.Token, s.auth.Cfg.JWT.Secret)
	require.NoError(t, err)
	assert.Equal(t, string(model.Admin), claims.Role)

	stored, err := s.state.LoadAccount(ctx, OwnerID("root@example.com"))
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, model.Learner, stored.Role)

	require.NoError(t, s.auth.Register(ctx, registerRequest()))
	learner, err := s.auth.Login(ctx, model.LoginRequest{Email: "ada@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	assert.Equal(t, model.Learner, learner.Role)
}

func TestAuthService_ConcurrentRegisterSingleWinner(t *testing.T) {
	ctx := context.Background()
	s := newTestServices(t, nil)

	const workers = 8
	errs := make(chan error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := registerRequest()
			req.Password = fmt.Sprintf("password-%d", i)
			req.ConfirmPassword = req.Password
			errs <- s.auth.Register(ctx, req)
		}(i)
	}
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, util.ErrEmailRegistered)
	}
	assert.Equal(t, 1, succeeded)
}

func TestAuthService_RegisterValidation(t *testing.T) {
	s := newTestServices(t, nil)
	req := registerRequest()
	req.ConfirmPassword = "something-else"
	req.Password = "short"

	err := s.auth.Register(context.Background(), req)
	var verr *util.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Password must be at least 8 characters.", verr.Fields["password"])
	assert.Equal(t, "Passwords don't match.", verr.Fields["confirmPassword"])
}

func TestAuthService_ForgotPassword(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid email", func(t *testing.T) {
		s := newTestServices(t, nil)
		state, err := s.auth.ForgotPassword(ctx, "not-an-email")
		require.Error(t, err)
		assert.False(t, state.Success)
		assert.Nil(t, state.Instructions)
		assert.Equal(t, "Please enter a valid email address.", state.Message)
		assert.Equal(t, 0, s.gen.callCount())
	})

	t.Run("success", func(t *testing.T) {
		s := newTestServices(t, nil)
		state, err := s.auth.ForgotPassword(ctx, "ada@example.com")
		require.NoError(t, err)
		assert.True(t, state.Success)
		require.NotNil(t, state.Instructions)
		assert.Equal(t, "Open the link we sent to your inbox.", *state.Instructions)
		assert.Equal(t, "Please follow the instructions below to reset your password.", state.Message)
	})

	t.Run("generation failure", func(t *testing.T) {
		s := newTestServices(t, nil)
		s.gen.errs[FlowPasswordAssistant] = errors.New("timeout")
		state, err := s.auth.ForgotPassword(ctx, "ada@example.com")
		assert.ErrorIs(t, err, util.ErrGenerationFailed)
		assert.False(t, state.Success)
		assert.Equal(t, "An unexpected error occurred. Please try again.", state.Message)
	})
}

func TestCommunityService_Search(t *testing.T) {
	s := NewCommunityService()

	all := s.Search("")
	assert.Len(t, all.Peers, len(model.DefaultPeers))
	assert.Len(t, all.Forums, len(model.DefaultForums))

	dir := s.Search("  DEVELOPER ")
	assert.Len(t, dir.Peers, 3)

	dir = s.Search("react")
	assert.Empty(t, dir.Peers)
	require.Len(t, dir.Forums, 1)
	assert.Equal(t, "React & Next.js", dir.Forums[0].Name)

	dir = s.Search("no such thing")
	assert.NotNil(t, dir.Peers)
	assert.Empty(t, dir.Forums)
}
