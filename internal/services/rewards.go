package services

import (
	"errors"
	"time"

	"greensnap/internal/db"
	"greensnap/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// 积分动作常量
const (
	ActionSubmissionAccepted = "submission accepted"
)

// CreditReward 给承诺记积分：明细 + 账户原子累加，一个事务完成
// 封禁检查由提交管道在更早的位置完成，这里不再重复判断
func CreditReward(commitment string, points int, action string) error {
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		return creditReward(tx, commitment, points, action)
	})
	if err != nil {
		return wrapStorage("credit_reward", err)
	}
	return nil
}

// creditReward 事务内记积分，提交管道把它和其他写操作合进同一个事务
func creditReward(tx *gorm.DB, commitment string, points int, action string) error {
	now := time.Now()

	// 1. 积分明细
	rewardLog := models.RewardLog{
		Commitment: commitment,
		Amount:     points,
		Action:     action,
	}
	if err := tx.Create(&rewardLog).Error; err != nil {
		return err
	}

	// 2. 账户余额 upsert，自增表达式保证并发下不丢更新
	account := models.RewardAccount{
		Commitment:       commitment,
		TotalPoints:      points,
		TotalSubmissions: 1,
		LastActivityAt:   now,
	}
	return tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "commitment"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"total_points":      gorm.Expr("reward_accounts.total_points + ?", points),
			"total_submissions": gorm.Expr("reward_accounts.total_submissions + 1"),
			"last_activity_at":  now,
		}),
	}).Create(&account).Error
}

// GetRewardAccount 查询匿名积分账户，不存在时返回零值账户
func GetRewardAccount(commitment string) (models.RewardAccount, error) {
	var account models.RewardAccount
	err := db.DB.Where("commitment = ?", commitment).First(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.RewardAccount{Commitment: commitment}, nil
	}
	if err != nil {
		return account, wrapStorage("get_reward_account", err)
	}
	return account, nil
}
