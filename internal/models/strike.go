package models

import (
	"time"
)

// BanThreshold 累计违规达到该值即封禁，封禁后不自动恢复
const BanThreshold = 5

// StrikeRecord 按承诺聚合的违规计数
// StrikeCount 单调不减；BannedAt 一旦写入不会被正常流程清除
type StrikeRecord struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Commitment   string     `gorm:"uniqueIndex;size:64;not null" json:"commitment"`
	StrikeCount  int        `gorm:"not null;default:0" json:"strike_count"`
	LastStrikeAt time.Time  `json:"last_strike_at"`
	BannedAt     *time.Time `json:"banned_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// Banned 判断是否处于封禁状态
func (r *StrikeRecord) Banned() bool {
	return r.StrikeCount >= BanThreshold || r.BannedAt != nil
}

// StrikeLog 违规明细，只追加不修改
type StrikeLog struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Commitment string    `gorm:"size:64;index;not null" json:"commitment"`
	Reason     string    `gorm:"size:200;not null" json:"reason"`
	CreatedAt  time.Time `json:"created_at"`
}
