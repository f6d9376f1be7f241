package models

import (
	"time"
)

// NullifierRecord 去重集合，唯一索引保证同一物品同一会话只能提交一次
// 只由 contentHash + sessionSecret 派生，不含区域和时间，
// 换地点或隔天重交同一张照片仍会命中
type NullifierRecord struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Hash       string    `gorm:"uniqueIndex;size:64;not null" json:"hash"`
	Commitment string    `gorm:"size:64;index" json:"commitment"`
	CreatedAt  time.Time `json:"created_at"`
}
