package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"greensnap/internal/db"
	"greensnap/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// 提交管道：校验 → 位置匿名化 → 派生承诺/作废符 → 封禁硬门槛 →
// 去重预检 → 外部分类（可降级）→ 风险评分（仅提示）→ 事务落库
// 封禁检查必须在任何写操作之前，被封禁的承诺不产生任何副作用
// 作废符、提交记录、积分在同一个事务里写入：中途失败整体回滚，
// 不会留下孤儿作废符把后续重试误判成重复提交

// SubmitInput 原始提交请求
type SubmitInput struct {
	ContentHash    string
	Latitude       float64
	Longitude      float64
	Classification string // 提交方声称的分类标签
	SessionSecret  string
	PrivacyLevel   models.PrivacyLevel
	AllowPublic    bool // 携带管理授权时才允许 public 级别
}

// SubmitResult 已接受提交的响应
type SubmitResult struct {
	Sid            string
	Commitment     string
	Nullifier      string
	Zone           models.LocationZone
	Classification models.Classification
	Confidence     float64
	Points         int
	Flagged        bool
	RiskScore      int
	RiskLevel      string
}

func isHex(s string) bool {
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}

func validateSubmit(in *SubmitInput) error {
	if len(in.ContentHash) != 64 || !isHex(in.ContentHash) {
		return &ValidationError{Field: "contentHash", Message: "must be a 64-char hex digest"}
	}
	if in.Classification == "" {
		return &ValidationError{Field: "classification", Message: "must not be empty"}
	}
	if in.PrivacyLevel == "" {
		// 普通提交默认最高隐私级别
		in.PrivacyLevel = models.PrivacyAnonymous
	}
	if in.PrivacyLevel == models.PrivacyPublic && !in.AllowPublic {
		return &ValidationError{Field: "privacyLevel", Message: "public level requires an admin grant"}
	}
	return nil
}

// Submit 执行完整的匿名提交管道
func Submit(in SubmitInput) (*SubmitResult, error) {
	// 1. 校验
	if err := validateSubmit(&in); err != nil {
		return nil, err
	}

	// 2. 位置匿名化：这一行之后任何组件都不再接触原始坐标
	zone, err := AnonymizeLocation(in.Latitude, in.Longitude, in.PrivacyLevel)
	if err != nil {
		return nil, err
	}

	// 3. 派生承诺与作废符（纯计算，重试安全）
	now := time.Now()
	commitment := GenerateCommitment(in.ContentHash, zone, now.UnixMilli(), in.SessionSecret)
	nullifier := GenerateNullifier(in.ContentHash, in.SessionSecret)

	// 4. 封禁硬门槛：在去重插入和记积分之前
	strikeCount, banned, err := CheckStatus(commitment)
	if err != nil {
		return nil, err
	}
	if banned {
		return nil, &BannedCommitmentError{Commitment: commitment, StrikeCount: strikeCount}
	}

	// 5. 去重预检：先查一遍作废符，别为注定重复的提交白跑一趟外部分类
	// 真正的互斥由第 8 步事务里的唯一索引插入保证，这里只是快速失败
	var dupCount int64
	if err := db.DB.Model(&models.NullifierRecord{}).
		Where("hash = ?", nullifier).Count(&dupCount).Error; err != nil {
		return nil, wrapStorage("nullifier_lookup", err)
	}
	if dupCount > 0 {
		return nil, &DuplicateSubmissionError{Nullifier: nullifier}
	}

	// 6. 外部分类，失败时降级为低置信度并强制进复核，不丢提交
	fallback := false
	predictedLabel, confidence, cerr := GetClassifierService().Classify(in.ContentHash, in.Classification)
	if cerr != nil {
		log.Printf("classifier unavailable, falling back to claimed label: %v", cerr)
		fallback = true
		predictedLabel = in.Classification
		confidence = 0
	}
	classification, custom := models.ParseClassification(predictedLabel)
	customLabel := ""
	if custom {
		customLabel = SanitizeText(predictedLabel, 100)
	}

	// 7. 风险评分：只提示，不拦截
	history, err := BuildRiskHistory(commitment)
	if err != nil {
		return nil, err
	}
	riskScore, riskLevel, riskAction := ScoreRisk(history)

	flagged := fallback || custom || confidence < 0.5 || riskLevel != RiskLevelLow

	// 8. 事务落库：作废符、提交记录、积分要么全部写入要么全部回滚
	// 唯一索引插入在这里兜底去重，并发下撞上的一方拿到重复错误
	sub := models.Submission{
		Sid:            uuid.NewString(),
		Commitment:     commitment,
		Nullifier:      nullifier,
		Classification: classification,
		CustomLabel:    customLabel,
		Confidence:     confidence,
		CenterLat:      zone.CenterLat,
		CenterLng:      zone.CenterLng,
		RadiusKm:       zone.RadiusKm,
		PrivacyLevel:   zone.PrivacyLevel,
		RiskScore:      riskScore,
		RiskLevel:      riskLevel,
		Flagged:        flagged,
		Points:         classification.Points(),
	}
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		record := models.NullifierRecord{
			Hash:       nullifier,
			Commitment: commitment,
		}
		if err := tx.Create(&record).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return &DuplicateSubmissionError{Nullifier: nullifier}
			}
			return err
		}
		if err := tx.Create(&sub).Error; err != nil {
			return err
		}
		return creditReward(tx, commitment, sub.Points, ActionSubmissionAccepted)
	})
	if err != nil {
		if IsDuplicate(err) {
			return nil, err
		}
		return nil, wrapStorage("submission_pipeline", err)
	}

	// 9. 被标记的提交进复核队列，提示失败不影响提交结果
	if flagged {
		reason := fmt.Sprintf("action=%s confidence=%.2f last24h=%d fallback=%t custom=%t",
			riskAction, confidence, history.SubmissionsLast24h, fallback, custom)
		if err := CreateReviewAlert(commitment, sub.Sid, riskLevel, riskScore, reason); err != nil {
			log.Printf("failed to create review alert for %s: %v", sub.Sid, err)
		}
	}

	return &SubmitResult{
		Sid:            sub.Sid,
		Commitment:     commitment,
		Nullifier:      nullifier,
		Zone:           zone,
		Classification: classification,
		Confidence:     confidence,
		Points:         sub.Points,
		Flagged:        flagged,
		RiskScore:      riskScore,
		RiskLevel:      riskLevel,
	}, nil
}

// GetSubmission 按对外 ID 查询提交记录
func GetSubmission(sid string) (*models.Submission, error) {
	var sub models.Submission
	if err := db.DB.Where("sid = ?", sid).First(&sub).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

// ListFlagged 列出被标记的提交（管理端复核用）
func ListFlagged(riskLevel string, classification string, limit int) ([]models.Submission, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	query := db.DB.Where("flagged = ?", true).Order("created_at DESC").Limit(limit)
	if riskLevel != "" {
		query = query.Where("risk_level = ?", riskLevel)
	}
	if classification != "" {
		query = query.Where("classification = ?", classification)
	}
	var subs []models.Submission
	if err := query.Find(&subs).Error; err != nil {
		return nil, wrapStorage("list_flagged", err)
	}
	return subs, nil
}
