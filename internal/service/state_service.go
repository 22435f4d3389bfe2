package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"skillpath_backend/internal/model"
	"skillpath_backend/internal/repository"
	"skillpath_backend/internal/util"
	"skillpath_backend/pkg/logger"
	"time"

	"go.uber.org/zap"
)

// StateService 对状态存储做类型化读写
// 没有版本号，解析失败或校验失败的记录会被清掉并视为不存在
type StateService struct {
	store repository.StateStore
}

func NewStateService(store repository.StateStore) *StateService {
	return &StateService{store: store}
}

func (s *StateService) LoadGoals(ctx context.Context, owner string) (*model.GoalProfile, error) {
	var goals model.GoalProfile
	ok, err := s.load(ctx, owner, util.KeyLearningGoals, &goals, true)
	if err != nil || !ok {
		return nil, err
	}
	return &goals, nil
}

// RequireGoals 依赖目标的页面调用，缺少目标时返回 ErrPreconditionMissing
func (s *StateService) RequireGoals(ctx context.Context, owner string) (*model.GoalProfile, error) {
	goals, err := s.LoadGoals(ctx, owner)
	if err != nil {
		return nil, err
	}
	if goals == nil {
		return nil, util.ErrPreconditionMissing
	}
	return goals, nil
}

func (s *StateService) SaveGoals(ctx context.Context, owner string, goals model.GoalProfile) error {
	return s.save(ctx, owner, util.KeyLearningGoals, goals, 0)
}

func (s *StateService) LoadPlan(ctx context.Context, owner string) (*model.LearningPlan, error) {
	var plan model.LearningPlan
	ok, err := s.load(ctx, owner, util.KeyLearningPlan, &plan, true)
	if err != nil || !ok {
		return nil, err
	}
	return &plan, nil
}

func (s *StateService) SavePlan(ctx context.Context, owner string, plan model.LearningPlan) error {
	return s.save(ctx, owner, util.KeyLearningPlan, plan, 0)
}

func (s *StateService) LoadSession(ctx context.Context, owner string) (*model.Session, error) {
	var session model.Session
	ok, err := s.load(ctx, owner, util.KeyUserSession, &session, false)
	if err != nil || !ok {
		return nil, err
	}
	return &session, nil
}

func (s *StateService) SaveSession(ctx context.Context, owner string, session model.Session, ttl time.Duration) error {
	return s.save(ctx, owner, util.KeyUserSession, session, ttl)
}

func (s *StateService) DeleteSession(ctx context.Context, owner string) error {
	return s.store.Delete(ctx, owner, util.KeyUserSession)
}

func (s *StateService) LoadAccount(ctx context.Context, owner string) (*model.Account, error) {
	var account model.Account
	ok, err := s.load(ctx, owner, util.KeyAccount, &account, false)
	if err != nil || !ok {
		return nil, err
	}
	return &account, nil
}

// CreateAccount 只在账号不存在时写入，并发注册同一邮箱只有一个成功
func (s *StateService) CreateAccount(ctx context.Context, owner string, account model.Account) error {
	raw, err := json.Marshal(account)
	if err != nil {
		return fmt.Errorf("encode %s: %w", util.KeyAccount, err)
	}
	created, err := s.store.SetNX(ctx, owner, util.KeyAccount, raw, 0)
	if err != nil {
		return fmt.Errorf("save %s: %w", util.KeyAccount, err)
	}
	if !created {
		return util.ErrEmailRegistered
	}
	return nil
}

// Clear 删除该用户的全部状态
func (s *StateService) Clear(ctx context.Context, owner string) error {
	return s.store.Clear(ctx, owner)
}

func (s *StateService) load(ctx context.Context, owner, key string, v interface{}, validate bool) (bool, error) {
	raw, err := s.store.Get(ctx, owner, key)
	if errors.Is(err, util.ErrStateNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load %s: %w", key, err)
	}

	decodeErr := json.Unmarshal(raw, v)
	if decodeErr == nil && validate {
		decodeErr = util.ValidateStruct(v)
	}
	if decodeErr != nil {
		logger.Log.Warn("Discarding unreadable state record",
			zap.String("owner", owner),
			zap.String("key", key),
			zap.Error(decodeErr))
		if err := s.store.Delete(ctx, owner, key); err != nil {
			return false, fmt.Errorf("discard %s: %w", key, err)
		}
		return false, nil
	}
	return true, nil
}

func (s *StateService) save(ctx context.Context, owner, key string, v interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.store.Set(ctx, owner, key, raw, ttl); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}
