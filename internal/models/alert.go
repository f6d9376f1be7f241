package models

import (
	"time"
)

// ReviewAlert 风险提示，进入管理端人工复核队列
// 只做提示，不会阻断提交，也不会自动记违规
type ReviewAlert struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Aid           string    `gorm:"uniqueIndex;size:36;not null" json:"aid"`
	Commitment    string    `gorm:"size:64;index;not null" json:"commitment"`
	SubmissionSid string    `gorm:"size:36;index" json:"submission_sid"`
	RiskLevel     string    `gorm:"size:10;not null" json:"risk_level"`
	RiskScore     int       `gorm:"not null" json:"risk_score"`
	Reason        string    `gorm:"type:text" json:"reason"`
	Acknowledged  bool      `gorm:"default:false;index" json:"acknowledged"`
	CreatedAt     time.Time `json:"created_at"`
}
