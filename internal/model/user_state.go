package model

import "time"

// UserState 状态存储的数据库实现使用的表，(owner, key) 唯一
type UserState struct {
	ID        uint       `gorm:"primaryKey;autoIncrement"`
	Owner     string     `gorm:"size:64;not null;uniqueIndex:idx_owner_key"`
	Key       string     `gorm:"column:state_key;size:64;not null;uniqueIndex:idx_owner_key"`
	Value     []byte     `gorm:"type:mediumblob"`
	ExpiresAt *time.Time `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (UserState) TableName() string {
	return "user_states"
}
