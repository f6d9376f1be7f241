package models

import (
	"time"
)

// 授权角色
const (
	RoleAdmin    = "admin"    // 可记违规、查封禁状态
	RoleReviewer = "reviewer" // 只能查看复核队列
)

// AdminGrant 持久化的管理授权记录
// 按令牌哈希查找并校验角色，不做任何邮箱/ID 字符串比对
type AdminGrant struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	TokenHash string    `gorm:"uniqueIndex;size:64;not null" json:"-"` // SHA3-256(token) 的 hex
	Role      string    `gorm:"size:20;default:'reviewer';not null" json:"role"`
	Label     string    `gorm:"size:50" json:"label"` // 备注，方便辨认是谁的令牌
	CreatedAt time.Time `json:"created_at"`
}

// CanStrike 是否允许执行违规/封禁操作
func (g *AdminGrant) CanStrike() bool {
	return g.Role == RoleAdmin
}
