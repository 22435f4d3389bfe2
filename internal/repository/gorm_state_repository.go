package repository

import (
	"context"
	"errors"
	"skillpath_backend/internal/model"
	"skillpath_backend/internal/util"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StateRepository 基于 gorm(mysql) 的状态存储
type StateRepository struct {
	DB *gorm.DB
}

func NewStateRepository(db *gorm.DB) *StateRepository {
	return &StateRepository{DB: db}
}

func (r *StateRepository) Get(ctx context.Context, owner, key string) ([]byte, error) {
	var state model.UserState
	err := r.DB.WithContext(ctx).
		Where("owner = ? AND state_key = ?", owner, key).
		Where("expires_at IS NULL OR expires_at > ?", time.Now()).
		First(&state).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrStateNotFound
	}
	if err != nil {
		return nil, err
	}
	return state.Value, nil
}

// Set 按 (owner, key) 覆盖写入
func (r *StateRepository) Set(ctx context.Context, owner, key string, value []byte, ttl time.Duration) error {
	state := model.UserState{
		Owner:     owner,
		Key:       key,
		Value:     value,
		ExpiresAt: expiresAt(time.Now(), ttl),
	}
	return r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "owner"}, {Name: "state_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "expires_at", "updated_at"}),
	}).Create(&state).Error
}

// SetNX 依赖 (owner, state_key) 唯一索引，先清掉已过期的同名记录再插入
func (r *StateRepository) SetNX(ctx context.Context, owner, key string, value []byte, ttl time.Duration) (bool, error) {
	db := r.DB.WithContext(ctx)
	if err := db.
		Where("owner = ? AND state_key = ?", owner, key).
		Where("expires_at IS NOT NULL AND expires_at <= ?", time.Now()).
		Delete(&model.UserState{}).Error; err != nil {
		return false, err
	}

	state := model.UserState{
		Owner:     owner,
		Key:       key,
		Value:     value,
		ExpiresAt: expiresAt(time.Now(), ttl),
	}
	result := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&state)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *StateRepository) Delete(ctx context.Context, owner, key string) error {
	return r.DB.WithContext(ctx).
		Where("owner = ? AND state_key = ?", owner, key).
		Delete(&model.UserState{}).Error
}

func (r *StateRepository) Clear(ctx context.Context, owner string) error {
	return r.DB.WithContext(ctx).
		Where("owner = ?", owner).
		Delete(&model.UserState{}).Error
}

func (r *StateRepository) PurgeExpired(ctx context.Context) (int64, error) {
	result := r.DB.WithContext(ctx).
		Where("expires_at IS NOT NULL AND expires_at <= ?", time.Now()).
		Delete(&model.UserState{})
	return result.RowsAffected, result.Error
}

// Migrate 建表
func (r *StateRepository) Migrate() error {
	return r.DB.AutoMigrate(&model.UserState{})
}
