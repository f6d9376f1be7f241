package services

import (
	"context"
	"errors"
	"os"
	"time"

	"greensnap/internal/db"
	"greensnap/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// 状态机：Clean(0) → Warned(1-4) → Banned(≥5)，封禁是终态
// 解封只能由管理端显式操作，正常流程不会清除 BannedAt

// AddStrike 给承诺原子记一次违规，返回最新计数和是否封禁
// 计数自增走单条 ON CONFLICT ... DO UPDATE ... RETURNING，
// 两个并发请求不可能都看到 4 然后都写 5
func AddStrike(commitment, reason string) (int, bool, error) {
	if commitment == "" {
		return 0, false, &ValidationError{Field: "commitment", Message: "must not be empty"}
	}
	reason = SanitizeText(reason, 200)
	if reason == "" {
		reason = "unspecified"
	}

	now := time.Now()
	var rec models.StrikeRecord

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		// 1. 违规明细，只追加
		strikeLog := models.StrikeLog{
			Commitment: commitment,
			Reason:     reason,
		}
		if err := tx.Create(&strikeLog).Error; err != nil {
			return err
		}

		// 2. 原子自增计数
		rec = models.StrikeRecord{
			Commitment:   commitment,
			StrikeCount:  1,
			LastStrikeAt: now,
		}
		if err := tx.Clauses(
			clause.OnConflict{
				Columns: []clause.Column{{Name: "commitment"}},
				DoUpdates: clause.Assignments(map[string]interface{}{
					"strike_count":   gorm.Expr("strike_records.strike_count + 1"),
					"last_strike_at": now,
				}),
			},
			clause.Returning{},
		).Create(&rec).Error; err != nil {
			return err
		}

		// 3. 首次达到阈值时写入封禁时间，banned_at 只写一次
		if rec.StrikeCount >= models.BanThreshold && rec.BannedAt == nil {
			if err := tx.Model(&models.StrikeRecord{}).
				Where("commitment = ? AND banned_at IS NULL", commitment).
				UpdateColumn("banned_at", now).Error; err != nil {
				return err
			}
			rec.BannedAt = &now
		}
		return nil
	})
	if err != nil {
		return 0, false, wrapStorage("add_strike", err)
	}

	return rec.StrikeCount, rec.Banned(), nil
}

// CheckStatus 查询承诺的违规状态，纯读
func CheckStatus(commitment string) (int, bool, error) {
	var rec models.StrikeRecord
	err := db.DB.Where("commitment = ?", commitment).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, wrapStorage("check_status", err)
	}
	return rec.StrikeCount, rec.Banned(), nil
}

// StrikeReasons 返回承诺的违规原因明细（管理端用）
func StrikeReasons(commitment string) ([]string, error) {
	var logs []models.StrikeLog
	if err := db.DB.Where("commitment = ?", commitment).
		Order("created_at ASC").
		Find(&logs).Error; err != nil {
		return nil, wrapStorage("strike_reasons", err)
	}
	reasons := make([]string, 0, len(logs))
	for _, l := range logs {
		reasons = append(reasons, l.Reason)
	}
	return reasons, nil
}

// wrapStorage 把存储层超时归入可重试的 StorageTimeoutError
// 所有派生都是确定性的，重算承诺/作废符得到完全一样的值，重试总是安全
func wrapStorage(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded) {
		return &StorageTimeoutError{Op: op, Err: err}
	}
	return err
}
