package models

import (
	"time"
)

// Submission 一条已接受的匿名提交记录
// 只保存匿名化后的区域中心，原始经纬度在匿名化边界处丢弃
// 记录创建后不再修改，只有 Flagged / ReviewedAt 允许管理端覆盖
type Submission struct {
	ID             uint           `gorm:"primaryKey" json:"-"`
	Sid            string         `gorm:"uniqueIndex;size:36;not null" json:"sid"` // 对外公开的提交 ID (UUID)
	Commitment     string         `gorm:"size:64;index;not null" json:"commitment"`
	Nullifier      string         `gorm:"size:64;not null" json:"nullifier"`
	Classification Classification `gorm:"type:varchar(20);not null" json:"classification"`
	CustomLabel    string         `gorm:"size:100" json:"custom_label,omitempty"` // pending_custom 时保留的原始标签
	Confidence     float64        `json:"confidence"`
	CenterLat      float64        `json:"center_lat"`
	CenterLng      float64        `json:"center_lng"`
	RadiusKm       float64        `json:"radius_km"`
	PrivacyLevel   PrivacyLevel   `gorm:"type:varchar(20);not null" json:"privacy_level"`
	RiskScore      int            `gorm:"default:0" json:"risk_score"`
	RiskLevel      string         `gorm:"size:10" json:"risk_level"`
	Flagged        bool           `gorm:"default:false;index" json:"flagged"`
	Points         int            `gorm:"default:0" json:"points"`
	ReviewedAt     *time.Time     `json:"reviewed_at,omitempty"` // 管理端复核时间
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`
}

// Zone 还原提交保存的匿名区域
func (s *Submission) Zone() LocationZone {
	return LocationZone{
		CenterLat:    s.CenterLat,
		CenterLng:    s.CenterLng,
		RadiusKm:     s.RadiusKm,
		PrivacyLevel: s.PrivacyLevel,
	}
}
