package services

import (
	"greensnap/internal/db"
	"greensnap/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// 复核队列：被标记的提交会生成一条提示，等管理端确认
// 提示本身不带任何处罚，记违规必须由管理端显式调用 AddStrike

// CreateReviewAlert 创建复核提示
func CreateReviewAlert(commitment, submissionSid, riskLevel string, riskScore int, reason string) error {
	alert := models.ReviewAlert{
		Aid:           uuid.NewString(),
		Commitment:    commitment,
		SubmissionSid: submissionSid,
		RiskLevel:     riskLevel,
		RiskScore:     riskScore,
		Reason:        SanitizeText(reason, 500),
	}
	if err := db.DB.Create(&alert).Error; err != nil {
		return wrapStorage("create_review_alert", err)
	}
	return nil
}

// ListReviewAlerts 列出复核提示，unackedOnly 只看未确认的
func ListReviewAlerts(unackedOnly bool, limit int) ([]models.ReviewAlert, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	query := db.DB.Order("created_at DESC").Limit(limit)
	if unackedOnly {
		query = query.Where("acknowledged = ?", false)
	}
	var alerts []models.ReviewAlert
	if err := query.Find(&alerts).Error; err != nil {
		return nil, wrapStorage("list_review_alerts", err)
	}
	return alerts, nil
}

// AcknowledgeAlert 确认一条提示，找不到返回 ErrRecordNotFound
func AcknowledgeAlert(aid string) error {
	result := db.DB.Model(&models.ReviewAlert{}).
		Where("aid = ?", aid).
		UpdateColumn("acknowledged", true)
	if result.Error != nil {
		return wrapStorage("acknowledge_alert", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
