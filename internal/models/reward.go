package models

import (
	"time"
)

// RewardAccount 匿名积分账户，按承诺聚合
// 与任何实名账户体系完全隔离，两边的账本永远不会合并，
// 保证无法通过积分流水把匿名提交追溯到真实账号
type RewardAccount struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Commitment       string    `gorm:"uniqueIndex;size:64;not null" json:"commitment"`
	TotalPoints      int       `gorm:"not null;default:0" json:"total_points"`
	TotalSubmissions int       `gorm:"not null;default:0" json:"total_submissions"`
	LastActivityAt   time.Time `json:"last_activity_at"`
	CreatedAt        time.Time `json:"created_at"`
}

// RewardLog 积分明细记录
type RewardLog struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Commitment string    `gorm:"size:64;index;not null" json:"commitment"`
	Amount     int       `gorm:"not null" json:"amount"`          // 正数为增加
	Action     string    `gorm:"size:100;not null" json:"action"` // 动作描述
	CreatedAt  time.Time `json:"created_at"`
}
